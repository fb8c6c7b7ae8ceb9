package scorebot

import (
	"context"
	"fmt"
	"github.com/shinyhunt/scorebot/config"
	"github.com/shinyhunt/scorebot/interaction"
	"io"
	"strings"
)

type helpPlugin struct {
	Plugin

	name                   string
	scorebotVersion        string
	timeLocation           string
	commands               []CommandDefinition
	pluginScheduledActions []pluginScheduledAction
}

const (
	helpPluginName = "help"
)

// pluginScheduledAction represents a plugin's scheduled action with the plugin name and the action's definition
type pluginScheduledAction struct {
	plugin string
	ScheduledActionDefinition
}

func (s *Scorebot) newHelpPlugin(version string) *helpPlugin {
	commands, scheduledActions := findAllActions(s.plugins)

	helpPlugin := new(helpPlugin)
	helpPlugin.timeLocation = s.config.GetString(config.TimeLocationKey)
	helpPlugin.name = s.name
	helpPlugin.scorebotVersion = version
	helpPlugin.commands = commands
	helpPlugin.pluginScheduledActions = scheduledActions

	helpPlugin.Plugin = Plugin{Name: helpPluginName, Commands: []CommandDefinition{{
		Name:        helpPluginName,
		Usage:       "/" + helpPluginName,
		Description: "Reply with usage instructions",
		Answer:      helpPlugin.showHelp,
	}}}

	// The help command lists itself
	helpPlugin.commands = append(helpPlugin.commands, helpPlugin.Plugin.Commands...)

	return helpPlugin
}

// showHelp generates a message providing a list of all of the scorebot commands and scheduled actions.
// Note that definitions with the flag Hidden set to true won't be included in the list
func (h *helpPlugin) showHelp(ctx context.Context, e interaction.Event) *Reply {
	var b strings.Builder

	if h.UserInfoFinder != nil {
		user, err := h.UserInfoFinder.GetUserInfo(e.UserID)
		if err != nil {
			h.Logger.Debugf("Error getting user info for user id [%s] so skipping mentioning the name (it would be awkward): %v\n", e.UserID, err)
		} else {
			fmt.Fprintf(&b, "🤝 You're `%s` and ", user.RealName)
		}
	}

	fmt.Fprintf(&b, "I'm `%s` (engine `v%s`). I keep the team scoreboard :trophy:.\n", h.name, h.scorebotVersion)

	if len(h.commands) > 0 {
		fmt.Fprintf(&b, "\nI currently support the following commands:\n")

		appendCommands(&b, h.commands)
	}

	if len(h.pluginScheduledActions) > 0 {
		fmt.Fprintf(&b, "\nAnd do those things periodically:\n")

		appendScheduledActions(&b, h.timeLocation, h.pluginScheduledActions)
	}

	return &Reply{Text: b.String()}
}

func appendCommands(w io.Writer, commands []CommandDefinition) {
	for _, value := range commands {
		if value.Usage != "" && !value.Hidden {
			fmt.Fprintf(w, "\t• `%s` - %s\n", value.Usage, value.Description)
		}
	}
}

func appendScheduledActions(w io.Writer, timeLocationName string, scheduledActions []pluginScheduledAction) {
	for _, value := range scheduledActions {
		if !value.ScheduledActionDefinition.Hidden {
			fmt.Fprintf(w, "\t• [`%s`] `%s` (`%s`) - %s\n", value.plugin, value.ScheduledActionDefinition.Schedule, timeLocationName, value.ScheduledActionDefinition.Description)
		}
	}
}

func findAllActions(plugins []*Plugin) (commands []CommandDefinition, pluginScheduledActions []pluginScheduledAction) {
	commands = make([]CommandDefinition, 0)
	pluginScheduledActions = make([]pluginScheduledAction, 0)

	for _, p := range plugins {
		commands = append(commands, filterNonHiddenCommands(p.Commands)...)
		pluginScheduledActions = append(pluginScheduledActions, filterNonHiddenScheduledActions(p.Name, p.ScheduledActions)...)
	}

	return commands, pluginScheduledActions
}

func filterNonHiddenCommands(commands []CommandDefinition) (visibleCommands []CommandDefinition) {
	visibleCommands = make([]CommandDefinition, 0)
	for _, c := range commands {
		if !c.Hidden {
			visibleCommands = append(visibleCommands, c)
		}
	}

	return visibleCommands
}

func filterNonHiddenScheduledActions(pluginName string, actions []ScheduledActionDefinition) (visibleActions []pluginScheduledAction) {
	visibleActions = make([]pluginScheduledAction, 0)

	for _, sa := range actions {
		if !sa.Hidden {
			visibleActions = append(visibleActions, pluginScheduledAction{plugin: pluginName, ScheduledActionDefinition: sa})
		}
	}

	return visibleActions
}
