package interaction

import (
	"encoding/json"
	"fmt"
	"github.com/shinyhunt/scorebot/catalog"
	"github.com/shinyhunt/scorebot/draft"
	"github.com/shinyhunt/scorebot/scoreboard"
	"github.com/slack-go/slack"
	"strings"
)

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

// teamSelect returns a section with a team menu
func teamSelect(prompt string, actionID string) []slack.Block {
	options := make([]*slack.OptionBlockObject, 0, len(scoreboard.Teams))
	for _, t := range scoreboard.Teams {
		options = append(options, slack.NewOptionBlockObject(string(t), plainText(t.Label()), nil))
	}

	menu := slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plainText("Choose a team"), actionID, options...)

	return []slack.Block{slack.NewSectionBlock(markdown(prompt), nil, slack.NewAccessory(menu))}
}

// TeamSelect returns the first step of the add flow
func TeamSelect() []slack.Block {
	return teamSelect("Select a team to add points to:", ActionSelectTeam)
}

// RemovalTeamSelect returns the first step of the remove flow
func RemovalTeamSelect() []slack.Block {
	return teamSelect("Select a team to remove points from:", ActionSelectRemovalTeam)
}

// PointsSelect returns the point option menu for a team
func PointsSelect(team scoreboard.Team) []slack.Block {
	all := catalog.Options()
	options := make([]*slack.OptionBlockObject, 0, len(all))
	for _, o := range all {
		value := componentValue{Team: team, Option: o.Key}.encode()
		options = append(options, slack.NewOptionBlockObject(value, plainText(fmt.Sprintf("%s (%d)", o.Label, o.BasePoints)), nil))
	}

	menu := slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plainText("Choose points"), ActionSelectPoints, options...)

	return []slack.Block{slack.NewSectionBlock(markdown(fmt.Sprintf("Select points for *%s*:", team.Label())), nil, slack.NewAccessory(menu))}
}

// ToggleFlagActionID returns the action id of the toggle button of a flag. Action ids must be
// unique within a block
func ToggleFlagActionID(f draft.Flag) string {
	return ActionToggleFlag + "_" + string(f)
}

// DescribeDraft returns the mrkdwn description of a draft's points
func DescribeDraft(d draft.Draft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*: %s (%d)", d.Team.Label(), d.Option.Label, d.BasePoints())
	for _, f := range d.Flags.List() {
		fmt.Fprintf(&b, " + %s (+%d)", f.Label(), f.Bonus())
	}
	fmt.Fprintf(&b, " = *%d* points", d.Total())

	return b.String()
}

// FlagButtons returns the confirmation step of a draft: the draft summary, a toggle button per
// flag (highlighted when active) and the confirm and cancel buttons
func FlagButtons(d draft.Draft) []slack.Block {
	elements := make([]slack.BlockElement, 0, len(draft.Flags)+2)
	for _, f := range draft.Flags {
		label := f.Label()
		if d.Flags.Has(f) {
			label = "✅ " + label
		}

		button := slack.NewButtonBlockElement(ToggleFlagActionID(f), componentValue{Team: d.Team, Flag: f}.encode(), plainText(fmt.Sprintf("%s (+%d)", label, f.Bonus())))
		if d.Flags.Has(f) {
			button = button.WithStyle(slack.StylePrimary)
		}
		elements = append(elements, button)
	}

	teamValue := componentValue{Team: d.Team}.encode()
	elements = append(elements,
		slack.NewButtonBlockElement(ActionConfirmAdd, teamValue, plainText("Confirm")).WithStyle(slack.StylePrimary),
		slack.NewButtonBlockElement(ActionCancelAdd, teamValue, plainText("Cancel")).WithStyle(slack.StyleDanger))

	return []slack.Block{
		slack.NewSectionBlock(markdown(DescribeDraft(d)), nil, nil),
		slack.NewActionBlock("draft_actions", elements...),
	}
}

// RemovalModal returns the modal asking how many points to remove from the team. The channel
// is where the outcome is reported
func RemovalModal(team scoreboard.Team, channelID string) slack.ModalViewRequest {
	md, _ := json.Marshal(removalMetadata{Team: team, Channel: channelID})

	input := &slack.InputBlock{
		Type:    slack.MBTInput,
		BlockID: BlockPointsToRemove,
		Label:   plainText(fmt.Sprintf("Points to remove from %s", team.Label())),
		Element: slack.NewPlainTextInputBlockElement(plainText("Enter a positive number"), ActionPointsToRemove),
	}

	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		Title:           plainText("Remove points"),
		Close:           plainText("Cancel"),
		Submit:          plainText("Remove"),
		CallbackID:      CallbackRemovePoints,
		PrivateMetadata: string(md),
		Blocks:          slack.Blocks{BlockSet: []slack.Block{input}},
	}
}
