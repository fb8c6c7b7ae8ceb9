package scorebot

import (
	"context"
	"fmt"
	"github.com/marcsantiago/gocron"
	"github.com/shinyhunt/scorebot/config"
	"github.com/shinyhunt/scorebot/interaction"
	"github.com/shinyhunt/scorebot/schedule"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultLogPrefix = "scorebot: "
	defaultLogFlag   = log.Lshortfile | log.LstdFlags
)

// Scorebot represents the bot engine (mostly, a name and its plugins)
type Scorebot struct {
	name    string
	config  *viper.Viper
	plugins []*Plugin
	closers []io.Closer

	log   *sLogger
	meter metric.Meter
	*instrumenter

	health         *healthMonitor
	userInfoFinder UserInfoFinder

	// commands by name, built when starting
	commands map[string]commandRoute
}

// commandRoute holds a command definition along with the name of the plugin it belongs to
type commandRoute struct {
	CommandDefinition
	plugin string
}

// Option defines an option for a Scorebot
type Option func(*Scorebot)

// OptionLog sets a logger for Scorebot
func OptionLog(logger *log.Logger) Option {
	return func(s *Scorebot) {
		s.log.logger = logger
	}
}

// OptionLogfile sets a logfile for Scorebot (using the standard prefix and flag)
func OptionLogfile(logfile *os.File) Option {
	return func(s *Scorebot) {
		s.log.logger = log.New(logfile, defaultLogPrefix, defaultLogFlag)
	}
}

// OptionMeter sets the open telemetry meter used for instrumentation. The meter of the global meter
// provider is used by default
func OptionMeter(meter metric.Meter) Option {
	return func(s *Scorebot) {
		s.meter = meter
	}
}

// New creates a new scorebot from a name and configuration
func New(name string, v *viper.Viper, options ...Option) (s *Scorebot, err error) {
	s = new(Scorebot)
	s.name = name
	s.config = v
	s.plugins = []*Plugin{}
	s.log = NewSLogger(log.New(os.Stdout, defaultLogPrefix, defaultLogFlag), v.GetBool(config.DebugKey))
	s.meter = otel.GetMeterProvider().Meter("github.com/shinyhunt/scorebot")

	for _, opt := range options {
		opt(s)
	}

	s.instrumenter, err = newInstrumenter(name, s.meter)
	if err != nil {
		return nil, err
	}

	s.health = newHealthMonitor(v.GetDuration(config.HealthProbeIntervalKey), time.Now)

	return s, nil
}

// RegisterPlugin registers a plugin with the Scorebot engine. This should be invoked
// prior to calling Run
func (s *Scorebot) RegisterPlugin(p *Plugin) {
	s.plugins = append(s.plugins, p)
}

// Close closes all closers registered with the instance
func (s *Scorebot) Close() (err error) {
	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

// Run starts the Scorebot and loops until the process is interrupted
func (s *Scorebot) Run() (err error) {
	timeLoc, err := config.GetTimeLocation(s.config)
	if err != nil {
		return err
	}

	debug := s.config.GetBool(config.DebugKey)
	api := slack.New(
		s.config.GetString(config.BotTokenKey),
		slack.OptionDebug(debug),
		slack.OptionLog(log.New(os.Stdout, "slack: ", defaultLogFlag)),
		slack.OptionAppLevelToken(s.config.GetString(config.AppTokenKey)),
	)

	client := socketmode.New(
		api,
		socketmode.OptionDebug(debug),
		socketmode.OptionLog(log.New(os.Stdout, "socketmode: ", defaultLogFlag)),
	)

	uf, err := NewCachingUserInfoFinder(s.config, NewUserInfoFinderWithTelemetry(api, s.name, s.meter), s.log)
	if err != nil {
		return err
	}

	driver := newChatDriverWithTelemetry(api, s.name, s.meter)
	s.init(driver, uf)

	stopScheduler := s.startActionScheduler(timeLoc)
	defer func() { stopScheduler <- true }()

	shutdownHealth, err := s.startHealthServer()
	if err != nil {
		return err
	}
	defer shutdownHealth()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.watchForTerminationSignalToAbort(cancel)
	go func() {
		if err := client.RunContext(ctx); err != nil && ctx.Err() == nil {
			s.log.Printf("Socket mode connection ended: %v\n", err)
		}
		cancel()
	}()

	termination := make(chan bool)
	go s.handleIncomingEvents(ctx, client.Events, termination, transport{acker: client, driver: driver, postWebhook: slack.PostWebhookContext})

	<-termination
	s.log.Printf("Scorebot [%s] terminated\n", s.name)

	return nil
}

// init registers the built-in plugins, injects the bot services into all plugins and indexes commands
func (s *Scorebot) init(driver chatDriver, uf UserInfoFinder) {
	if !s.hasPlugin(healthPluginName) {
		s.RegisterPlugin(&s.health.Plugin)
	}

	if !s.hasPlugin(helpPluginName) {
		s.RegisterPlugin(&s.newHelpPlugin(VERSION).Plugin)
	}

	s.userInfoFinder = uf
	publisher := newMessagePublisher(driver, s.log)

	s.commands = make(map[string]commandRoute)
	for _, p := range s.plugins {
		p.BotServices = BotServices{Logger: s.log, UserInfoFinder: uf, Publisher: publisher}

		for _, c := range p.Commands {
			if existing, ok := s.commands[c.Name]; ok {
				s.log.Printf("Command [/%s] of plugin [%s] is already defined by plugin [%s], ignoring it\n", c.Name, p.Name, existing.plugin)
				continue
			}

			s.commands[c.Name] = commandRoute{CommandDefinition: c, plugin: p.Name}
		}
	}
}

// hasPlugin returns true if a plugin with that name is registered
func (s *Scorebot) hasPlugin(name string) bool {
	for _, p := range s.plugins {
		if p.Name == name {
			return true
		}
	}

	return false
}

// watchForTerminationSignalToAbort waits for a SIGTERM or SIGINT and cancels the context of the main Run() loop
// to terminate cleanly. Note that this is meant to run in a go routine given that this is blocking
func (s *Scorebot) watchForTerminationSignalToAbort(cancel context.CancelFunc) {
	tSignals := make(chan os.Signal, 1)
	// Register to be notified of termination signals so we can abort
	signal.Notify(tSignals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-tSignals

	s.log.Debugf("Received termination signal [%s], terminating event processing\n", sig)
	cancel()
}

// startActionScheduler creates all ScheduledActionDefinition from all plugins and registers them with the scheduler.
// Very importantly, it also starts the scheduler. Sending true on the returned channel stops it
func (s *Scorebot) startActionScheduler(timeLoc *time.Location) (stop chan bool) {
	gocron.ChangeLoc(timeLoc)
	sc := gocron.NewScheduler()

	for _, p := range s.plugins {
		for _, sa := range p.ScheduledActions {
			j, err := schedule.NewJob(sc, sa.Schedule)
			if err != nil {
				s.log.Printf("Unable to schedule action [%s] of plugin [%s]: %v\n", sa, p.Name, err)
				continue
			}

			s.log.Debugf("Adding job [%s] of plugin [%s] to scheduler\n", sa.Schedule, p.Name)
			j.Do(sa.Action)
		}
	}

	_, t := sc.NextRun()
	s.log.Debugf("Starting scheduler with first job scheduled at [%s]\n", t)

	return sc.Start()
}

// handleIncomingEvents handles all incoming socket mode events until the context is done or the events channel is closed.
// Commands and interactions are routed to a worker of the user's partition. The termination channel is signaled once
// all routed events are processed
func (s *Scorebot) handleIncomingEvents(ctx context.Context, ec <-chan socketmode.Event, termination chan<- bool, t transport) {
	defer func() { termination <- true }()

	router, err := newPartitionRouter(s.config.GetInt(config.MessageProcessingPartitionCount), s.config.GetInt(config.MessageProcessingBufferedMessageCount), s.log, s.instrumenter)
	if err != nil {
		s.log.Printf("Unable to start event processing: %v\n", err)
		return
	}

	router.start(func(evt socketmode.Event) {
		s.processEvent(ctx, t, evt)
	})
	defer router.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-ec:
			if !ok {
				return
			}

			switch evt.Type {
			case socketmode.EventTypeConnecting:
				s.log.Printf("Connecting to slack with socket mode...\n")

			case socketmode.EventTypeConnected:
				s.log.Printf("Connected to slack\n")
				s.runReadyHooks()

			case socketmode.EventTypeConnectionError:
				s.log.Printf("Connection failed, retrying later: %v\n", evt.Data)

			case socketmode.EventTypeInvalidAuth:
				s.log.Printf("Invalid credentials\n")
				return

			case socketmode.EventTypeSlashCommand:
				cmd, ok := evt.Data.(slack.SlashCommand)
				if !ok {
					s.log.Printf("Ignoring slash command event with unexpected data [%T]\n", evt.Data)
					s.ack(t, evt)
					continue
				}

				s.eventSeen(ctx, commandEventType)
				router.routeEvent(cmd.UserID, evt)

			case socketmode.EventTypeInteractive:
				cb, ok := evt.Data.(slack.InteractionCallback)
				if !ok {
					s.log.Printf("Ignoring interactive event with unexpected data [%T]\n", evt.Data)
					s.ack(t, evt)
					continue
				}

				s.eventSeen(ctx, interactionEventType)
				router.routeEvent(cb.User.ID, evt)

			case socketmode.EventTypeEventsAPI:
				// Scorebot doesn't subscribe to any event but they still need to be acknowledged
				s.ack(t, evt)

			default:
				s.log.Debugf("Ignoring socket mode event [%s]\n", evt.Type)
			}
		}
	}
}

// runReadyHooks invokes the OnReady hook of every plugin
func (s *Scorebot) runReadyHooks() {
	for _, p := range s.plugins {
		if p.OnReady != nil {
			s.log.Debugf("Running ready hook of plugin [%s]\n", p.Name)
			p.OnReady()
		}
	}
}

// ack acknowledges an event carrying a request, optionally with a payload
func (s *Scorebot) ack(t transport, evt socketmode.Event, payload ...interface{}) {
	if evt.Request == nil {
		return
	}

	t.acker.Ack(*evt.Request, payload...)
}

// processEvent processes a command or interaction event and delivers the reply
func (s *Scorebot) processEvent(ctx context.Context, t transport, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeSlashCommand:
		d := measure(func() {
			s.processCommand(ctx, t, evt, evt.Data.(slack.SlashCommand))
		})
		s.eventProcessed(ctx, commandEventType, d)

	case socketmode.EventTypeInteractive:
		d := measure(func() {
			s.processInteraction(ctx, t, evt, evt.Data.(slack.InteractionCallback))
		})
		s.eventProcessed(ctx, interactionEventType, d)
	}
}

// processCommand answers a slash command. The reply is sent as the ephemeral response of the acknowledgement
func (s *Scorebot) processCommand(ctx context.Context, t transport, evt socketmode.Event, cmd slack.SlashCommand) {
	e := interaction.FromSlashCommand(cmd)
	s.log.Debugf("Processing %s\n", e)

	reply := s.answerCommand(ctx, e)
	s.ack(t, evt, newEphemeralResponse(reply))

	if reply.Modal != nil {
		if _, err := t.driver.OpenView(e.TriggerID, *reply.Modal); err != nil {
			s.log.Printf("Unable to open view for [%s]: %v\n", e, err)
		}
	}
}

// answerCommand routes a command event to its command definition after checking permissions. Unknown commands
// and commands invoked with "help" are answered with the help
func (s *Scorebot) answerCommand(ctx context.Context, e interaction.Event) (reply *Reply) {
	route, ok := s.commands[e.Command]
	if !ok || e.Text == helpPluginName {
		help := s.commands[helpPluginName]
		reply = help.Answer(ctx, e)
		if !ok {
			reply.Text = fmt.Sprintf("I don't know `/%s`. ", e.Command) + reply.Text
		}

		return reply
	}

	if route.AdminOnly {
		u, err := s.userInfoFinder.GetUserInfo(e.UserID)
		if err != nil {
			s.log.Printf("Unable to verify permissions of user [%s] for [/%s]: %v\n", e.UserID, e.Command, err)
			return &Reply{Text: fmt.Sprintf("⚠️ I couldn't verify your permissions to use `/%s`, please try again.", e.Command)}
		}

		if !isAdmin(u) {
			s.log.Printf("User [%s] isn't allowed to use [/%s]\n", e.UserID, e.Command)
			return &Reply{Text: fmt.Sprintf("⛔ Only workspace admins can use `/%s`.", e.Command)}
		}
	}

	pm := s.getOrCreatePluginMetrics(route.plugin)
	d := measure(func() {
		reply = route.Answer(ctx, e)
	})
	pm.processingTimeMillis.Record(ctx, d.Milliseconds(), pm.attributes)

	if reply == nil {
		return &Reply{Text: "✅"}
	}

	pm.replyCount.Add(ctx, 1, pm.attributes)

	return reply
}

// processInteraction handles a block action or a view submission. Block actions are acknowledged right away and
// answered with the response url (or a modal). View submissions are acknowledged once handled since validation
// errors have to be part of the acknowledgement
func (s *Scorebot) processInteraction(ctx context.Context, t transport, evt socketmode.Event, cb slack.InteractionCallback) {
	e, err := interaction.FromCallback(cb)
	if err != nil {
		s.log.Printf("Ignoring interaction of type [%s] from user [%s]: %v\n", cb.Type, cb.User.ID, err)
		s.ack(t, evt)
		return
	}

	s.log.Debugf("Processing %s\n", e)

	if cb.Type == slack.InteractionTypeViewSubmission {
		reply := s.handleInteraction(ctx, e)
		if reply != nil && len(reply.FieldErrors) > 0 {
			s.ack(t, evt, slack.NewErrorsViewSubmissionResponse(reply.FieldErrors))
			return
		}

		s.ack(t, evt)
		if reply != nil {
			if _, err := t.driver.PostEphemeral(e.ChannelID, e.UserID, reply.msgOptions()...); err != nil {
				s.log.Printf("Unable to send reply to [%s]: %v\n", e, err)
			}
		}

		return
	}

	s.ack(t, evt)

	reply := s.handleInteraction(ctx, e)
	if reply == nil {
		return
	}

	if reply.Modal != nil {
		if _, err := t.driver.OpenView(e.TriggerID, *reply.Modal); err != nil {
			s.log.Printf("Unable to open view for [%s]: %v\n", e, err)
		}

		return
	}

	if err := t.postWebhook(ctx, e.ResponseURL, reply.webhookMessage()); err != nil {
		s.log.Printf("Unable to send reply to [%s]: %v\n", e, err)
	}
}

// handleInteraction offers the event to every plugin's interaction handler until one replies
func (s *Scorebot) handleInteraction(ctx context.Context, e interaction.Event) (reply *Reply) {
	for _, p := range s.plugins {
		if p.InteractionHandler == nil {
			continue
		}

		pm := s.getOrCreatePluginMetrics(p.Name)
		d := measure(func() {
			reply = p.InteractionHandler(ctx, e)
		})
		pm.processingTimeMillis.Record(ctx, d.Milliseconds(), pm.attributes)

		if reply != nil {
			pm.replyCount.Add(ctx, 1, pm.attributes)
			return reply
		}
	}

	s.log.Printf("No plugin handled %s\n", e)

	return nil
}
