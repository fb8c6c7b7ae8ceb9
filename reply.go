package scorebot

import (
	"github.com/slack-go/slack"
)

// Reply describes what a plugin answers to a command or interaction. Replies are only visible
// to the user who triggered them:
//   - a command reply is the ephemeral response of the slash command
//   - a block action reply replaces the message holding the component, unless Modal is set in
//     which case the modal is opened instead
//   - a view submission reply is posted as an ephemeral message in the event's channel, unless
//     FieldErrors is set in which case the errors are shown on the view's inputs
type Reply struct {
	Text   string
	Blocks []slack.Block

	Modal *slack.ModalViewRequest

	// FieldErrors maps input block ids to validation error messages
	FieldErrors map[string]string
}

// ephemeralResponse is the acknowledgement payload of a slash command
type ephemeralResponse struct {
	ResponseType string        `json:"response_type"`
	Text         string        `json:"text,omitempty"`
	Blocks       []slack.Block `json:"blocks,omitempty"`
}

// newEphemeralResponse returns the slash command response of a reply
func newEphemeralResponse(r *Reply) ephemeralResponse {
	return ephemeralResponse{ResponseType: slack.ResponseTypeEphemeral, Text: r.Text, Blocks: r.Blocks}
}

// msgOptions returns the message options of a reply's content
func (r *Reply) msgOptions() (options []slack.MsgOption) {
	options = []slack.MsgOption{slack.MsgOptionText(r.Text, false)}
	if len(r.Blocks) > 0 {
		options = append(options, slack.MsgOptionBlocks(r.Blocks...))
	}

	return options
}

// webhookMessage returns the response url message replacing the original message with the reply
func (r *Reply) webhookMessage() *slack.WebhookMessage {
	msg := &slack.WebhookMessage{Text: r.Text, ReplaceOriginal: true}
	if len(r.Blocks) > 0 {
		msg.Blocks = &slack.Blocks{BlockSet: r.Blocks}
	}

	return msg
}
