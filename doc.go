/*
Package scorebot provides the engine of a slack bot keeping a two-team scoreboard.

The engine connects to slack in socket mode and dispatches slash commands and interactions
(menu selections, button presses and modal submissions) to plugins. Events of a given user are
processed in order while events of different users are processed concurrently.

Plugins combine slash commands, an interaction handler, scheduled actions and a ready hook. They
also have access to services injected on startup by scorebot such as:
  - UserInfoFinder: To query user info
  - SLogger: To log debug/info statements
  - MessagePublisher: To keep a single message per channel up to date, editing it in place

The engine also provides a /help command, a liveness probe exposed on a /health http endpoint and
the slack app manifest declaring the commands of all plugins.

Example code (see cmd/scorebot for the complete version):

	package main

	import (
		"github.com/shinyhunt/scorebot"
		"github.com/shinyhunt/scorebot/config"
		"github.com/shinyhunt/scorebot/draft"
		"github.com/shinyhunt/scorebot/plugins"
		"github.com/shinyhunt/scorebot/scoreboard"
		"github.com/shinyhunt/scorebot/store"
		"log"
	)

	func main() {
		v := config.NewViperWithDefaults()

		storer, err := store.NewJSONFile("~/scoreboard.json")
		if err != nil {
			log.Fatal(err)
		}

		st, err := scoreboard.Open(storer)
		if err != nil {
			log.Fatal(err)
		}

		sb := plugins.NewScoreboard(st, draft.NewRegistry(), v.GetString(config.ScoreboardChannelIDKey), v.GetDuration(config.DraftsMaxAgeKey))

		bot, err := scorebot.NewBot("scorebot", v).
			WithPluginCloserErr(st, &sb.Plugin, nil).
			Build()
		if err != nil {
			log.Fatal(err)
		}
		defer bot.Close()

		err = bot.Run()
		if err != nil {
			log.Fatal(err)
		}
	}
*/
package scorebot
