/*
Package actions provides a fluent API for creating scorebot commands and scheduled actions. Typical usages
will also involve using the plugin fluent API from github.com/shinyhunt/scorebot/plugin.

A quick example could look like:

	import (
		"github.com/shinyhunt/scorebot"
		"github.com/shinyhunt/scorebot/actions"
		"github.com/shinyhunt/scorebot/plugin"
	)

	func newPlugin() (p *scorebot.Plugin) {
		p = plugin.New("maker").
			WithCommand(actions.NewCommand("make").
				WithUsage("/make <something>").
				WithDescription("Make the `<something>` you need").
				WithAnswerer(func(ctx context.Context, e interaction.Event) *scorebot.Reply {
					return &scorebot.Reply{Text: ":white_check_mark: It's ready for you!"}
				}).
				Build()).
			WithScheduledAction(actions.NewScheduledAction().
				WithSchedule(schedule.New().Every(time.Monday.String()).AtTime("10:00").Build()).
				WithDescription("Start the week off").
				WithAction(weeklyKickoff).
				Build()).
			Build()
		return p
	}
*/
package actions

import (
	"context"
	"fmt"
	"github.com/shinyhunt/scorebot"
	"github.com/shinyhunt/scorebot/interaction"
	"github.com/shinyhunt/scorebot/schedule"
)

// CommandBuilder holds the command to build
type CommandBuilder struct {
	command scorebot.CommandDefinition
}

// ScheduledActionBuilder holds the scheduled action to build
type ScheduledActionBuilder struct {
	scheduledAction scorebot.ScheduledActionDefinition
}

// Default to always return nil. This is not a default you want to use in most cases
var defaultAnswerer = func(ctx context.Context, e interaction.Event) *scorebot.Reply {
	return nil
}

// NewCommand returns a new CommandBuilder to build the slash command with the given name. The usage
// defaults to the bare command. When done with the setup, the caller is expected to call Build() to get
// the command
func NewCommand(name string) (cb *CommandBuilder) {
	cb = new(CommandBuilder)
	cb.command = scorebot.CommandDefinition{Name: name, Usage: "/" + name, Answer: defaultAnswerer}

	return cb
}

// WithUsage sets the command usage
func (cb *CommandBuilder) WithUsage(usage string) *CommandBuilder {
	cb.command.Usage = usage
	return cb
}

// WithDescription sets the command description
func (cb *CommandBuilder) WithDescription(description string) *CommandBuilder {
	cb.command.Description = description
	return cb
}

// WithDescriptionf sets the command description delegating format and arguments to fmt.Sprintf
func (cb *CommandBuilder) WithDescriptionf(format string, a ...interface{}) *CommandBuilder {
	cb.command.Description = fmt.Sprintf(format, a...)
	return cb
}

// WithAnswerer sets the command's answerer function
func (cb *CommandBuilder) WithAnswerer(answerer scorebot.Answerer) *CommandBuilder {
	cb.command.Answer = answerer
	return cb
}

// Hidden sets the command to hidden
func (cb *CommandBuilder) Hidden() *CommandBuilder {
	cb.command.Hidden = true
	return cb
}

// AdminOnly restricts the command to workspace admins and owners
func (cb *CommandBuilder) AdminOnly() *CommandBuilder {
	cb.command.AdminOnly = true
	return cb
}

// Build returns the CommandDefinition
func (cb *CommandBuilder) Build() scorebot.CommandDefinition {
	return cb.command
}

// NewScheduledAction returns a new ScheduledActionBuilder to build a new ScheduledActionDefinition
func NewScheduledAction() (sab *ScheduledActionBuilder) {
	sab = new(ScheduledActionBuilder)
	sab.scheduledAction = scorebot.ScheduledActionDefinition{Hidden: false}
	sab.scheduledAction.Action = func() {}

	return sab
}

// WithSchedule sets the schedule for the scheduled action
func (sab *ScheduledActionBuilder) WithSchedule(schedule schedule.Definition) *ScheduledActionBuilder {
	sab.scheduledAction.Schedule = schedule
	return sab
}

// WithDescription sets the scheduled action description
func (sab *ScheduledActionBuilder) WithDescription(desc string) *ScheduledActionBuilder {
	sab.scheduledAction.Description = desc
	return sab
}

// WithDescriptionf sets the scheduled action description delegating format and arguments to fmt.Sprintf
func (sab *ScheduledActionBuilder) WithDescriptionf(format string, a ...interface{}) *ScheduledActionBuilder {
	sab.scheduledAction.Description = fmt.Sprintf(format, a...)
	return sab
}

// WithAction sets the action function to run on schedule
func (sab *ScheduledActionBuilder) WithAction(action scorebot.ScheduledAction) *ScheduledActionBuilder {
	sab.scheduledAction.Action = action
	return sab
}

// Hidden sets the scheduled action to hidden
func (sab *ScheduledActionBuilder) Hidden() *ScheduledActionBuilder {
	sab.scheduledAction.Hidden = true
	return sab
}

// Build returns the ScheduledActionDefinition
func (sab *ScheduledActionBuilder) Build() scorebot.ScheduledActionDefinition {
	return sab.scheduledAction
}
