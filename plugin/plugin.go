// Package plugin provides a fluent API for assembling a scorebot.Plugin from commands built
// with github.com/shinyhunt/scorebot/actions
package plugin

import (
	"github.com/shinyhunt/scorebot"
)

// PluginBuilder holds a plugin to build
type PluginBuilder struct {
	plugin *scorebot.Plugin
}

// New creates a new PluginBuilder with a plugin with the given name and empty set of actions
func New(name string) (pb *PluginBuilder) {
	pb = new(PluginBuilder)
	pb.plugin = new(scorebot.Plugin)
	pb.plugin.Name = name
	pb.plugin.Commands = make([]scorebot.CommandDefinition, 0)
	pb.plugin.ScheduledActions = make([]scorebot.ScheduledActionDefinition, 0)

	return pb
}

// WithCommand adds a command to the plugin
func (pb *PluginBuilder) WithCommand(command scorebot.CommandDefinition) *PluginBuilder {
	pb.plugin.Commands = append(pb.plugin.Commands, command)
	return pb
}

// WithInteractionHandler sets the handler of interactions on the plugin's components
func (pb *PluginBuilder) WithInteractionHandler(handler scorebot.InteractionHandler) *PluginBuilder {
	pb.plugin.InteractionHandler = handler
	return pb
}

// WithScheduledAction adds a scheduled action to the plugin
func (pb *PluginBuilder) WithScheduledAction(scheduledAction scorebot.ScheduledActionDefinition) *PluginBuilder {
	pb.plugin.ScheduledActions = append(pb.plugin.ScheduledActions, scheduledAction)
	return pb
}

// OnReady sets the function called every time the connection to slack is established
func (pb *PluginBuilder) OnReady(onReady func()) *PluginBuilder {
	pb.plugin.OnReady = onReady
	return pb
}

// Build returns the created Plugin instance
func (pb *PluginBuilder) Build() (p *scorebot.Plugin) {
	return pb.plugin
}
