// Command scorebot runs the scoreboard bot over a slack socket mode connection.
//
// Configuration comes from the environment (a .env file is loaded first when present) and an
// optional configuration file:
//
//	SLACK_BOT_TOKEN=xoxb-... SLACK_APP_TOKEN=xapp-... SCOREBOARD_CHANNEL_ID=C0123 scorebot
package main

import (
	"github.com/joho/godotenv"
	"github.com/shinyhunt/scorebot"
	"github.com/shinyhunt/scorebot/config"
	"github.com/shinyhunt/scorebot/draft"
	"github.com/shinyhunt/scorebot/plugins"
	"github.com/shinyhunt/scorebot/scoreboard"
	"gopkg.in/alecthomas/kingpin.v2"
	"log"
	"os"
)

const name = "scorebot"

var (
	configFile = kingpin.Flag("configFile", "path to an optional configuration file (yaml, json or toml)").Short('c').String()
	envFile    = kingpin.Flag("envFile", "path to the .env file loaded into the environment when it exists").Default(".env").String()
	logfile    = kingpin.Flag("log", "path to a log file (defaults to stdout)").Short('l').String()
)

func main() {
	kingpin.Version(scorebot.VERSION)
	kingpin.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading env file [%s]: %v", *envFile, err)
	}

	v := config.NewViperWithDefaults()
	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("Error loading configuration file [%s]: %v", *configFile, err)
		}
	}

	if err := config.Validate(v); err != nil {
		log.Fatal(err)
	}

	options := make([]scorebot.Option, 0)
	if *logfile != "" {
		f, err := os.OpenFile(*logfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0660)
		if err != nil {
			log.Fatalf("Unable to open log file [%s]: %v", *logfile, err)
		}
		defer f.Close()

		options = append(options, scorebot.OptionLogfile(f))
	}

	storer, err := newDocumentStorer(v)
	if err != nil {
		log.Fatalf("Error opening [%s] storage: %v", v.GetString(config.StorageBackendKey), err)
	}

	st, err := scoreboard.Open(storer)
	if err != nil {
		storer.Close()
		log.Fatal(err)
	}

	renderOptions, err := newRenderOptions(v)
	if err != nil {
		st.Close()
		log.Fatal(err)
	}

	sb := plugins.NewScoreboard(st, draft.NewRegistry(), v.GetString(config.ScoreboardChannelIDKey), v.GetDuration(config.DraftsMaxAgeKey), renderOptions...)

	bot, err := scorebot.NewBot(name, v, options...).
		WithPluginCloserErr(st, &sb.Plugin, nil).
		WithPlugin(plugins.NewVersioner(name, scorebot.VERSION)).
		Build()
	if err != nil {
		st.Close()
		log.Fatal(err)
	}
	defer bot.Close()

	if err = bot.Run(); err != nil {
		log.Fatal(err)
	}
}
