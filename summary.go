package scorebot

import (
	"fmt"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// SlackMessageID holds the elements that form a unique message identifier for slack. Technically, slack also uses
// the workspace id as the first part of that unique identifier but since an instance of scorebot only lives within
// a single workspace, that part is left out
type SlackMessageID struct {
	ChannelID string
	Timestamp string
}

func (id SlackMessageID) String() string {
	return fmt.Sprintf("%s/%s", id.ChannelID, id.Timestamp)
}

// MessageSyncError is returned when a managed message could neither be updated nor posted
type MessageSyncError struct {
	ChannelID string
	err       error
}

// NewMessageSyncError returns a MessageSyncError for the channel
func NewMessageSyncError(channelID string, err error) *MessageSyncError {
	return &MessageSyncError{ChannelID: channelID, err: err}
}

func (e *MessageSyncError) Error() string {
	return fmt.Sprintf("unable to sync message in channel [%s]: %v", e.ChannelID, e.err)
}

// Cause returns the slack error
func (e *MessageSyncError) Cause() error {
	return e.err
}

// Unwrap returns the slack error
func (e *MessageSyncError) Unwrap() error {
	return e.err
}

// MessagePublisher keeps a single message per channel up to date
type MessagePublisher interface {
	// Publish edits the existing message in place when it's known and still editable. Otherwise, a new
	// message is posted to the channel. The returned identifier is the one of the message now holding the content
	Publish(channelID string, existing *SlackMessageID, text string, blocks []slack.Block) (id SlackMessageID, err error)
}

// messagePublisher implements MessagePublisher with the slack web api
type messagePublisher struct {
	poster  messagePoster
	updater messageUpdater
	log     SLogger
}

// newMessagePublisher returns a MessagePublisher using the chat driver
func newMessagePublisher(driver chatDriver, log SLogger) *messagePublisher {
	return &messagePublisher{poster: driver, updater: driver, log: log}
}

// Publish implements MessagePublisher
func (mp *messagePublisher) Publish(channelID string, existing *SlackMessageID, text string, blocks []slack.Block) (id SlackMessageID, err error) {
	options := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if len(blocks) > 0 {
		options = append(options, slack.MsgOptionBlocks(blocks...))
	}

	if existing != nil && existing.ChannelID == channelID && existing.Timestamp != "" {
		_, _, _, err = mp.updater.UpdateMessage(existing.ChannelID, existing.Timestamp, options...)
		if err == nil {
			mp.log.Debugf("Updated message [%s]\n", existing)
			return *existing, nil
		}

		mp.log.Printf("Unable to update message [%s], posting a new one instead: %v\n", existing, err)
	}

	rChannelID, rTimestamp, err := mp.poster.PostMessage(channelID, options...)
	if err != nil {
		return SlackMessageID{}, NewMessageSyncError(channelID, errors.Wrap(err, "post failed"))
	}

	id = SlackMessageID{ChannelID: rChannelID, Timestamp: rTimestamp}
	mp.log.Printf("Posted new message [%s]\n", id)

	return id, nil
}
