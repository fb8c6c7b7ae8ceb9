package scorebot

import (
	"gopkg.in/yaml.v3"
	"strings"
)

// botScopes are the oauth scopes needed by the engine
var botScopes = []string{"commands", "chat:write", "users:read"}

// AppManifest is the slack app manifest declaring the bot's slash commands along with socket mode
// and interactivity. See https://api.slack.com/reference/manifests
type AppManifest struct {
	DisplayInformation DisplayInformation `yaml:"display_information"`
	Features           Features           `yaml:"features"`
	OAuthConfig        OAuthConfig        `yaml:"oauth_config"`
	Settings           Settings           `yaml:"settings"`
}

// DisplayInformation holds the app's name and description
type DisplayInformation struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// Features holds the bot user and slash command declarations
type Features struct {
	BotUser       BotUser        `yaml:"bot_user"`
	SlashCommands []SlashCommand `yaml:"slash_commands,omitempty"`
}

// BotUser is the bot user declaration
type BotUser struct {
	DisplayName  string `yaml:"display_name"`
	AlwaysOnline bool   `yaml:"always_online"`
}

// SlashCommand is the declaration of a slash command
type SlashCommand struct {
	Command      string `yaml:"command"`
	Description  string `yaml:"description"`
	UsageHint    string `yaml:"usage_hint,omitempty"`
	ShouldEscape bool   `yaml:"should_escape"`
}

// OAuthConfig holds the scopes requested by the app
type OAuthConfig struct {
	Scopes Scopes `yaml:"scopes"`
}

// Scopes holds the bot scopes
type Scopes struct {
	Bot []string `yaml:"bot"`
}

// Settings holds the app settings
type Settings struct {
	Interactivity     Interactivity `yaml:"interactivity"`
	OrgDeployEnabled  bool          `yaml:"org_deploy_enabled"`
	SocketModeEnabled bool          `yaml:"socket_mode_enabled"`
}

// Interactivity holds the interactivity settings
type Interactivity struct {
	IsEnabled bool `yaml:"is_enabled"`
}

// Manifest returns the app manifest declaring the commands of all registered plugins, including
// the built-in help command
func (s *Scorebot) Manifest(description string) (m AppManifest) {
	m.DisplayInformation = DisplayInformation{Name: s.name, Description: description}
	m.Features.BotUser = BotUser{DisplayName: s.name, AlwaysOnline: true}
	m.OAuthConfig.Scopes.Bot = botScopes
	m.Settings = Settings{Interactivity: Interactivity{IsEnabled: true}, SocketModeEnabled: true}

	plugins := append([]*Plugin{}, s.plugins...)
	if !s.hasPlugin(helpPluginName) {
		plugins = append(plugins, &s.newHelpPlugin(VERSION).Plugin)
	}

	for _, p := range plugins {
		for _, c := range p.Commands {
			m.Features.SlashCommands = append(m.Features.SlashCommands, SlashCommand{
				Command:     "/" + c.Name,
				Description: c.Description,
				UsageHint:   usageHint(c),
			})
		}
	}

	return m
}

// Bytes returns the yaml document of the manifest
func (m AppManifest) Bytes() (b []byte, err error) {
	return yaml.Marshal(m)
}

// usageHint returns the arguments part of a command's usage
func usageHint(c CommandDefinition) string {
	return strings.TrimSpace(strings.TrimPrefix(c.Usage, "/"+c.Name))
}
