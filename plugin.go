package scorebot

import (
	"context"
	"fmt"
	"github.com/shinyhunt/scorebot/interaction"
	"github.com/shinyhunt/scorebot/schedule"
)

// Plugin represents a plugin (its name, commands, interaction handler and scheduled actions)
type Plugin struct {
	Name string

	// Commands are the slash commands handled by the plugin
	Commands []CommandDefinition

	// InteractionHandler receives the interactions (block actions and view submissions) on the
	// components sent by the plugin. A nil reply means the interaction isn't for this plugin
	InteractionHandler InteractionHandler

	ScheduledActions []ScheduledActionDefinition

	// OnReady is invoked every time the connection to slack is established
	OnReady func()

	// BotServices are injected by the engine before it starts processing events
	BotServices
}

// BotServices holds the services the engine makes available to plugins
type BotServices struct {
	Logger         SLogger
	UserInfoFinder UserInfoFinder
	Publisher      MessagePublisher
}

// CommandDefinition represents a slash command, how it's described and the function defining its behavior
type CommandDefinition struct {
	// Indicates whether the command should be omitted from the help message
	Hidden bool

	// Name of the slash command, without its leading slash
	Name string

	// Usage example
	Usage string

	// Help description for the command
	Description string

	// AdminOnly restricts the command to workspace administrators and owners
	AdminOnly bool

	// Function to execute when the command is invoked
	Answer Answerer
}

// String returns a friendly description of a CommandDefinition
func (c CommandDefinition) String() string {
	return fmt.Sprintf("`%s` - %s", c.Usage, c.Description)
}

// ScheduledActionDefinition represents when a scheduled action is triggered as well
// as what it does and how
type ScheduledActionDefinition struct {
	// Indicates whether the action should be omitted from the help message
	Hidden bool

	// Schedule definition determining when the action runs
	Schedule schedule.Definition

	// Help description for the scheduled action
	Description string

	// Action is the function that is invoked when the schedule activates
	Action ScheduledAction
}

// String returns a friendly description of a ScheduledActionDefinition
func (a ScheduledActionDefinition) String() string {
	return fmt.Sprintf("`%s` - %s", a.Schedule, a.Description)
}

// Answerer is what gets executed when a command is invoked
type Answerer func(ctx context.Context, e interaction.Event) *Reply

// InteractionHandler is what gets executed when a user interacts with a plugin's components
type InteractionHandler func(ctx context.Context, e interaction.Event) *Reply

// ScheduledAction is what gets executed when a ScheduledActionDefinition is triggered (by its Schedule)
type ScheduledAction func()
