package scorebot

import (
	"context"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// messagePoster is implemented by any value that has the PostMessage method.
//
// slack.Client implements this interface
type messagePoster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error)
}

// messageUpdater is implemented by any value that has the UpdateMessage method.
//
// slack.Client implements this interface
type messageUpdater interface {
	UpdateMessage(channelID, timestamp string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, rText string, err error)
}

// ephemeralPoster is implemented by any value that has the PostEphemeral method.
//
// slack.Client implements this interface
type ephemeralPoster interface {
	PostEphemeral(channelID, userID string, options ...slack.MsgOption) (rTimestamp string, err error)
}

// viewOpener is implemented by any value that has the OpenView method.
//
// slack.Client implements this interface
type viewOpener interface {
	OpenView(triggerID string, view slack.ModalViewRequest) (resp *slack.ViewResponse, err error)
}

// chatDriver encompasses all the slack web api calls scorebot makes and is implemented by slack.Client
type chatDriver interface {
	messagePoster
	messageUpdater
	ephemeralPoster
	viewOpener
}

// acker acknowledges socket mode requests, optionally with a response payload.
//
// socketmode.Client implements this interface
type acker interface {
	Ack(req socketmode.Request, payload ...interface{})
}

// webhookPoster posts a message to an interaction's response url. slack.PostWebhookContext has this signature
type webhookPoster func(ctx context.Context, url string, msg *slack.WebhookMessage) error

// transport holds everything needed to acknowledge and answer incoming events
type transport struct {
	acker       acker
	driver      chatDriver
	postWebhook webhookPoster
}
