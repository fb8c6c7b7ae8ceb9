// Command register prints the slack app manifest declaring the scoreboard's slash commands. Paste it
// when creating the app (or updating its manifest) at https://api.slack.com/apps
package main

import (
	"fmt"
	"github.com/shinyhunt/scorebot"
	"github.com/shinyhunt/scorebot/config"
	"github.com/shinyhunt/scorebot/plugins"
	"gopkg.in/alecthomas/kingpin.v2"
	"io/ioutil"
	"log"
)

var (
	name        = kingpin.Flag("name", "name of the slack app and bot user").Default("scorebot").String()
	description = kingpin.Flag("description", "description of the slack app").Default("Keeps the NyanCat vs Bocchi scoreboard").String()
	output      = kingpin.Flag("output", "file to write the manifest to (defaults to stdout)").Short('o').String()
)

func main() {
	kingpin.Version(scorebot.VERSION)
	kingpin.Parse()

	// Only the command declarations of the plugin are used so it needs no storage
	sb := plugins.NewScoreboard(nil, nil, "", 0)

	bot, err := scorebot.NewBot(*name, config.NewViperWithDefaults()).
		WithPlugin(&sb.Plugin).
		WithPlugin(plugins.NewVersioner(*name, scorebot.VERSION)).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	manifest, err := bot.Manifest(*description).Bytes()
	if err != nil {
		log.Fatalf("Error generating the manifest: %v", err)
	}

	if *output == "" {
		fmt.Print(string(manifest))
		return
	}

	if err = ioutil.WriteFile(*output, manifest, 0644); err != nil {
		log.Fatalf("Error writing the manifest to [%s]: %v", *output, err)
	}
}
