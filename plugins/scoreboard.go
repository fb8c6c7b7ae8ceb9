package plugins

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	"github.com/shinyhunt/scorebot"
	"github.com/shinyhunt/scorebot/actions"
	"github.com/shinyhunt/scorebot/catalog"
	"github.com/shinyhunt/scorebot/draft"
	"github.com/shinyhunt/scorebot/interaction"
	"github.com/shinyhunt/scorebot/render"
	"github.com/shinyhunt/scorebot/schedule"
	"github.com/shinyhunt/scorebot/scoreboard"
	"strings"
	"sync"
	"time"
)

const (
	// ScoreboardPluginName holds identifying name for the scoreboard plugin
	ScoreboardPluginName = "scoreboard"

	draftSweepInterval = 15 * time.Minute
)

// User-visible notices
const (
	invalidAmountNotice = "Please enter a valid positive integer."
	noDraftNotice       = "No pending selection to confirm. Run `/add` to start over."
	teamMismatchNotice  = "⚠️ This selection is out of date: your pending addition is for another team. Run `/add` to start over."
	unknownOptionNotice = "⚠️ That point option doesn't exist. Pick one from the list."
	unknownTeamNotice   = "⚠️ That team doesn't exist."
	persistenceNotice   = "⚠️ The scoreboard couldn't be saved so nothing changed. Please try again."
	unexpectedNotice    = "⚠️ Something went wrong (see logs)."
)

// Scoreboard holds the plugin data for the scoreboard plugin. It runs the add and remove flows and
// keeps the summary message in the scoreboard channel up to date
type Scoreboard struct {
	scorebot.Plugin

	store         *scoreboard.Store
	drafts        *draft.Registry
	channelID     string
	renderOptions []render.Option

	// publishMu serializes summary publishing so concurrent mutations can't post two messages
	publishMu sync.Mutex
}

// NewScoreboard creates a new instance of the Scoreboard plugin publishing the summary message to
// channelID. Drafts untouched for longer than maxDraftAge are discarded periodically, unless
// maxDraftAge is 0
func NewScoreboard(store *scoreboard.Store, drafts *draft.Registry, channelID string, maxDraftAge time.Duration, renderOptions ...render.Option) (sb *Scoreboard) {
	sb = new(Scoreboard)
	sb.store = store
	sb.drafts = drafts
	sb.channelID = channelID
	sb.renderOptions = renderOptions

	sb.Plugin = scorebot.Plugin{
		Name: ScoreboardPluginName,
		Commands: []scorebot.CommandDefinition{
			actions.NewCommand("add").
				AdminOnly().
				WithDescription("Add points to a team").
				WithAnswerer(sb.startAdd).
				Build(),
			actions.NewCommand("remove").
				AdminOnly().
				WithDescription("Remove points from a team").
				WithAnswerer(sb.startRemove).
				Build(),
		},
		InteractionHandler: sb.Dispatch,
		OnReady:            sb.ensureSummary,
	}

	if maxDraftAge > 0 {
		sb.ScheduledActions = append(sb.ScheduledActions, actions.NewScheduledAction().
			WithSchedule(schedule.EveryDuration(draftSweepInterval)).
			WithDescriptionf("Discard pending additions untouched for %s", maxDraftAge).
			WithAction(func() { sb.sweepDrafts(maxDraftAge) }).
			Build())
	}

	return sb
}

func (sb *Scoreboard) startAdd(ctx context.Context, e interaction.Event) *scorebot.Reply {
	return &scorebot.Reply{Text: "Choose a team to add points to:", Blocks: interaction.TeamSelect()}
}

func (sb *Scoreboard) startRemove(ctx context.Context, e interaction.Event) *scorebot.Reply {
	return &scorebot.Reply{Text: "Choose a team to remove points from:", Blocks: interaction.RemovalTeamSelect()}
}

// Dispatch maps an interaction of the add or remove flows to the draft registry and the score store
// and returns the reply to show the user. Errors are never returned: they are turned into notices.
// Interactions that aren't part of the flows get a nil reply
func (sb *Scoreboard) Dispatch(ctx context.Context, e interaction.Event) *scorebot.Reply {
	switch e.Kind {
	case interaction.SelectTeam:
		return sb.selectTeam(e)
	case interaction.SelectOption:
		return sb.selectOption(e)
	case interaction.ToggleFlag:
		return sb.toggleFlag(e)
	case interaction.ConfirmAdd:
		return sb.confirmAdd(e)
	case interaction.CancelAdd:
		sb.drafts.Discard(e.UserID)
		return &scorebot.Reply{Text: "Canceled pending addition."}
	case interaction.SelectRemovalTeam:
		modal := interaction.RemovalModal(e.Team, e.ChannelID)
		return &scorebot.Reply{Modal: &modal}
	case interaction.SubmitRemoval:
		return sb.submitRemoval(e)
	}

	return nil
}

func (sb *Scoreboard) selectTeam(e interaction.Event) *scorebot.Reply {
	if _, err := sb.drafts.SelectTeam(e.UserID, e.Team); err != nil {
		return sb.noticeOf(e, err)
	}

	return &scorebot.Reply{Text: fmt.Sprintf("Selected *%s*, choose points:", e.Team.Label()), Blocks: interaction.PointsSelect(e.Team)}
}

func (sb *Scoreboard) selectOption(e interaction.Event) *scorebot.Reply {
	d, err := sb.drafts.StartOrReplace(e.UserID, e.Team, e.Option)
	if err != nil {
		return sb.noticeOf(e, err)
	}

	return &scorebot.Reply{
		Text:   fmt.Sprintf("You selected *%s - %s* (base %d). Toggle optional flags then press Confirm or Cancel.", d.Team.Label(), d.Option.Label, d.BasePoints()),
		Blocks: interaction.FlagButtons(d),
	}
}

func (sb *Scoreboard) toggleFlag(e interaction.Event) *scorebot.Reply {
	d, err := sb.drafts.ToggleFlag(e.UserID, e.Team, e.Flag)
	if err != nil {
		return sb.noticeOf(e, err)
	}

	return &scorebot.Reply{
		Text:   fmt.Sprintf("Flags selected: *%s*. Press Confirm to apply or Cancel to abort.", describeFlags(d.Flags)),
		Blocks: interaction.FlagButtons(d),
	}
}

func (sb *Scoreboard) confirmAdd(e interaction.Event) *scorebot.Reply {
	c, err := sb.drafts.Commit(e.UserID, e.Team, sb.store.Increment)
	if err != nil {
		reply := sb.noticeOf(e, err)

		// The draft survives a failed save, keep the buttons so the user can retry
		if d, ok := sb.drafts.Get(e.UserID); ok && d.Stage == draft.AwaitingConfirmation && d.Team == e.Team {
			reply.Blocks = interaction.FlagButtons(d)
		}

		return reply
	}

	sb.Logger.Printf("[%s] User [%s] added [%d] points to [%s] with draft [%s]\n", ScoreboardPluginName, e.UserID, c.Total, c.Team, c.DraftID)
	added := fmt.Sprintf("Added *%d* points to *%s* (base %d, flags: %s). New total: *%d*.", c.Total, c.Team.Label(), c.Base, describeFlags(c.Flags), c.NewScore)

	if err = sb.publishSummary(); err != nil {
		sb.Logger.Printf("[%s] Points were added but the summary couldn't be published: %v\n", ScoreboardPluginName, err)
		return &scorebot.Reply{Text: added + "\n⚠️ The points were added but the scoreboard message could not be updated (see logs)."}
	}

	return &scorebot.Reply{Text: added}
}

func (sb *Scoreboard) submitRemoval(e interaction.Event) *scorebot.Reply {
	amount, err := scoreboard.ParseAmount(e.AmountText)
	if err != nil {
		return &scorebot.Reply{FieldErrors: map[string]string{interaction.BlockPointsToRemove: invalidAmountNotice}}
	}

	r, err := sb.store.RemovePoints(e.Team, amount)
	if err != nil {
		return sb.noticeOf(e, err)
	}

	sb.Logger.Printf("[%s] User [%s] removed [%d] points from [%s]\n", ScoreboardPluginName, e.UserID, r.Removed, r.Team)
	removed := fmt.Sprintf("Removed *%d* points from *%s*. New total: *%d*.", r.Removed, r.Team.Label(), r.NewScore)

	if err = sb.publishSummary(); err != nil {
		sb.Logger.Printf("[%s] Points were removed but the summary couldn't be published: %v\n", ScoreboardPluginName, err)
		return &scorebot.Reply{Text: removed + "\n⚠️ The points were removed but the scoreboard message could not be updated (see logs)."}
	}

	return &scorebot.Reply{Text: removed}
}

// publishSummary renders the scores to the summary message, editing the known message in place or
// posting a new one whose reference is then persisted
func (sb *Scoreboard) publishSummary() (err error) {
	sb.publishMu.Lock()
	defer sb.publishMu.Unlock()

	summary := render.Render(sb.store.Scores(), sb.renderOptions...)

	var existing *scorebot.SlackMessageID
	if ref, ok := sb.store.SummaryMessageRef(); ok {
		existing = &scorebot.SlackMessageID{ChannelID: ref.ChannelID, Timestamp: ref.Timestamp}
	}

	id, err := sb.Publisher.Publish(sb.channelID, existing, summary.Text(), render.Blocks(summary))
	if err != nil {
		return err
	}

	if existing != nil && *existing == id {
		return nil
	}

	sb.Logger.Printf("[%s] Summary message is now [%s]\n", ScoreboardPluginName, id)
	return sb.store.SetSummaryMessageRef(scoreboard.MessageRef{ChannelID: id.ChannelID, Timestamp: id.Timestamp})
}

// ensureSummary publishes the summary once connected so that the message exists and reflects the
// persisted scores
func (sb *Scoreboard) ensureSummary() {
	if err := sb.publishSummary(); err != nil {
		sb.Logger.Printf("[%s] Unable to publish the summary message: %v\n", ScoreboardPluginName, err)
	}
}

func (sb *Scoreboard) sweepDrafts(maxAge time.Duration) {
	if removed := sb.drafts.Sweep(maxAge); removed > 0 {
		sb.Logger.Printf("[%s] Discarded [%d] pending additions older than [%s]\n", ScoreboardPluginName, removed, maxAge)
	}
}

// noticeOf logs the error of the event and returns the notice explaining it to the user
func (sb *Scoreboard) noticeOf(e interaction.Event, err error) *scorebot.Reply {
	sb.Logger.Debugf("[%s] Error handling %s: %v\n", ScoreboardPluginName, e, err)

	var persistenceErr *scoreboard.PersistenceError
	switch {
	case errors.Is(err, scoreboard.ErrInvalidAmount):
		return &scorebot.Reply{Text: invalidAmountNotice}
	case errors.Is(err, draft.ErrNoActiveDraft):
		return &scorebot.Reply{Text: noDraftNotice}
	case errors.Is(err, draft.ErrTeamMismatch):
		return &scorebot.Reply{Text: teamMismatchNotice}
	case errors.Is(err, catalog.ErrUnknownOption):
		return &scorebot.Reply{Text: unknownOptionNotice}
	case errors.Is(err, scoreboard.ErrUnknownTeam):
		return &scorebot.Reply{Text: unknownTeamNotice}
	case errors.As(err, &persistenceErr):
		sb.Logger.Printf("[%s] Error saving the scoreboard for %s: %v\n", ScoreboardPluginName, e, err)
		return &scorebot.Reply{Text: persistenceNotice}
	}

	sb.Logger.Printf("[%s] Unexpected error handling %s: %v\n", ScoreboardPluginName, e, err)
	return &scorebot.Reply{Text: unexpectedNotice}
}

func describeFlags(fs draft.FlagSet) string {
	flags := fs.List()
	if len(flags) == 0 {
		return "none"
	}

	labels := make([]string, 0, len(flags))
	for _, f := range flags {
		labels = append(labels, f.Label())
	}

	return strings.Join(labels, ", ")
}
