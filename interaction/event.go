// Package interaction translates slack slash commands and interaction callbacks to transport
// independent events and builds the interactive components of the scoreboard flows
package interaction

import (
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	"github.com/shinyhunt/scorebot/draft"
	"github.com/shinyhunt/scorebot/scoreboard"
	"github.com/slack-go/slack"
	"strings"
)

// ErrUnsupportedInteraction is returned for callbacks that aren't part of the scoreboard flows
var ErrUnsupportedInteraction = errors.New("unsupported interaction")

// Kind identifies the type of an Event
type Kind int

// Event kinds
const (
	Unknown Kind = iota
	Command
	SelectTeam
	SelectOption
	ToggleFlag
	ConfirmAdd
	CancelAdd
	SelectRemovalTeam
	SubmitRemoval
)

var kindNames = map[Kind]string{
	Unknown:           "unknown",
	Command:           "command",
	SelectTeam:        "select team",
	SelectOption:      "select option",
	ToggleFlag:        "toggle flag",
	ConfirmAdd:        "confirm add",
	CancelAdd:         "cancel add",
	SelectRemovalTeam: "select removal team",
	SubmitRemoval:     "submit removal",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Component identifiers
const (
	ActionSelectTeam        = "select_team"
	ActionSelectPoints      = "select_points"
	ActionToggleFlag        = "toggle_flag"
	ActionConfirmAdd        = "confirm_add"
	ActionCancelAdd         = "cancel_add"
	ActionSelectRemovalTeam = "select_team_remove"
	ActionPointsToRemove    = "amount"
	BlockPointsToRemove     = "points_to_remove"
	CallbackRemovePoints    = "remove_points"
)

// Event is an inbound interaction
type Event struct {
	Kind        Kind
	UserID      string
	ChannelID   string
	TriggerID   string
	ResponseURL string

	// Command is the slash command name without its leading slash, set for Command events
	Command string
	Text    string

	Team       scoreboard.Team
	Option     string
	Flag       draft.Flag
	AmountText string
}

func (e Event) String() string {
	return fmt.Sprintf("%s event from user [%s] in channel [%s] (command [%s], team [%s], option [%s], flag [%s])", e.Kind, e.UserID, e.ChannelID, e.Command, e.Team, e.Option, e.Flag)
}

// componentValue is the value carried by interactive components of the add flow
type componentValue struct {
	Team   scoreboard.Team `json:"team"`
	Option string          `json:"option,omitempty"`
	Flag   draft.Flag      `json:"flag,omitempty"`
}

func (cv componentValue) encode() string {
	b, _ := json.Marshal(cv)
	return string(b)
}

func decodeComponentValue(value string) (cv componentValue, err error) {
	if err = json.Unmarshal([]byte(value), &cv); err != nil {
		return componentValue{}, errors.Wrapf(err, "invalid component value [%s]", value)
	}

	return cv, nil
}

// removalMetadata is carried in the private metadata of the removal modal
type removalMetadata struct {
	Team    scoreboard.Team `json:"team"`
	Channel string          `json:"channel"`
}

// FromSlashCommand returns the Command event of a slash command invocation
func FromSlashCommand(cmd slack.SlashCommand) (e Event) {
	return Event{
		Kind:        Command,
		UserID:      cmd.UserID,
		ChannelID:   cmd.ChannelID,
		TriggerID:   cmd.TriggerID,
		ResponseURL: cmd.ResponseURL,
		Command:     strings.TrimPrefix(cmd.Command, "/"),
		Text:        strings.TrimSpace(cmd.Text),
	}
}

// FromCallback returns the event of a block action or view submission callback
func FromCallback(cb slack.InteractionCallback) (e Event, err error) {
	e = Event{UserID: cb.User.ID, ChannelID: cb.Channel.ID, TriggerID: cb.TriggerID, ResponseURL: cb.ResponseURL}

	switch cb.Type {
	case slack.InteractionTypeBlockActions:
		if len(cb.ActionCallback.BlockActions) == 0 {
			return Event{}, errors.Wrap(ErrUnsupportedInteraction, "block actions callback without action")
		}

		return fromBlockAction(e, cb.ActionCallback.BlockActions[0])
	case slack.InteractionTypeViewSubmission:
		return fromViewSubmission(e, cb.View)
	}

	return Event{}, errors.Wrapf(ErrUnsupportedInteraction, "type [%s]", cb.Type)
}

func fromBlockAction(e Event, action *slack.BlockAction) (Event, error) {
	switch {
	case action.ActionID == ActionSelectTeam || action.ActionID == ActionSelectRemovalTeam:
		team, err := scoreboard.ParseTeam(action.SelectedOption.Value)
		if err != nil {
			return Event{}, err
		}

		e.Kind = SelectTeam
		if action.ActionID == ActionSelectRemovalTeam {
			e.Kind = SelectRemovalTeam
		}
		e.Team = team

		return e, nil
	case action.ActionID == ActionSelectPoints:
		return withComponentValue(e, SelectOption, action.SelectedOption.Value)
	case strings.HasPrefix(action.ActionID, ActionToggleFlag):
		return withComponentValue(e, ToggleFlag, action.Value)
	case action.ActionID == ActionConfirmAdd:
		return withComponentValue(e, ConfirmAdd, action.Value)
	case action.ActionID == ActionCancelAdd:
		return withComponentValue(e, CancelAdd, action.Value)
	}

	return Event{}, errors.Wrapf(ErrUnsupportedInteraction, "action [%s]", action.ActionID)
}

func withComponentValue(e Event, kind Kind, value string) (Event, error) {
	cv, err := decodeComponentValue(value)
	if err != nil {
		return Event{}, err
	}

	if _, err = scoreboard.ParseTeam(string(cv.Team)); err != nil {
		return Event{}, err
	}

	e.Kind = kind
	e.Team = cv.Team
	e.Option = cv.Option
	e.Flag = cv.Flag

	return e, nil
}

func fromViewSubmission(e Event, view slack.View) (Event, error) {
	if view.CallbackID != CallbackRemovePoints {
		return Event{}, errors.Wrapf(ErrUnsupportedInteraction, "view [%s]", view.CallbackID)
	}

	var md removalMetadata
	if err := json.Unmarshal([]byte(view.PrivateMetadata), &md); err != nil {
		return Event{}, errors.Wrapf(err, "invalid removal metadata [%s]", view.PrivateMetadata)
	}

	team, err := scoreboard.ParseTeam(string(md.Team))
	if err != nil {
		return Event{}, err
	}

	e.Kind = SubmitRemoval
	e.Team = team
	e.ChannelID = md.Channel

	if view.State != nil {
		if inputs, ok := view.State.Values[BlockPointsToRemove]; ok {
			e.AmountText = inputs[ActionPointsToRemove].Value
		}
	}

	return e, nil
}
