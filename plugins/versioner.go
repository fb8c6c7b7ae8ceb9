// Package plugins provides the plugins of scorebot: the scoreboard itself and a version reporter
package plugins

import (
	"context"
	"fmt"
	"github.com/shinyhunt/scorebot"
	"github.com/shinyhunt/scorebot/actions"
	"github.com/shinyhunt/scorebot/interaction"
	"github.com/shinyhunt/scorebot/plugin"
)

const (
	// VersionerPluginName holds identifying name for the versioner plugin
	VersionerPluginName = "versioner"
)

// NewVersioner creates a new instance of the versioner plugin
func NewVersioner(name string, version string) (p *scorebot.Plugin) {
	return plugin.New(VersionerPluginName).
		WithCommand(actions.NewCommand("version").
			WithDescriptionf("Reply with `%s`'s `version` number", name).
			WithAnswerer(func(ctx context.Context, e interaction.Event) *scorebot.Reply {
				return &scorebot.Reply{Text: fmt.Sprintf("I'm `%s`, version `%s`", name, version)}
			}).
			Build()).
		Build()
}
