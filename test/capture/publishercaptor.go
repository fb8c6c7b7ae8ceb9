// Package capture provides captors standing in for the services the engine injects into plugins
package capture

import (
	"fmt"
	"github.com/shinyhunt/scorebot"
	"github.com/slack-go/slack"
	"sync"
)

// PublishedMessage holds the content of a published message
type PublishedMessage struct {
	ID     scorebot.SlackMessageID
	Text   string
	Blocks []slack.Block
}

// PublisherCaptor implements scorebot.MessagePublisher and records every published message. Messages
// are updated in place when the existing message is known to the captor, like slack does
type PublisherCaptor struct {
	mu         sync.Mutex
	timeCursor uint64
	messages   map[scorebot.SlackMessageID]PublishedMessage
	posts      []PublishedMessage
	updates    []PublishedMessage
	err        error
}

// NewPublisher returns a new initialized PublisherCaptor
func NewPublisher() (pc *PublisherCaptor) {
	pc = new(PublisherCaptor)
	pc.messages = make(map[scorebot.SlackMessageID]PublishedMessage)

	return pc
}

// Fail makes every subsequent Publish fail with a *scorebot.MessageSyncError wrapping err. A nil
// err restores normal behavior
func (pc *PublisherCaptor) Fail(err error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.err = err
}

// Publish implements scorebot.MessagePublisher
func (pc *PublisherCaptor) Publish(channelID string, existing *scorebot.SlackMessageID, text string, blocks []slack.Block) (id scorebot.SlackMessageID, err error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.err != nil {
		return scorebot.SlackMessageID{}, scorebot.NewMessageSyncError(channelID, pc.err)
	}

	if existing != nil && existing.ChannelID == channelID {
		if _, ok := pc.messages[*existing]; ok {
			m := PublishedMessage{ID: *existing, Text: text, Blocks: blocks}
			pc.messages[*existing] = m
			pc.updates = append(pc.updates, m)

			return *existing, nil
		}
	}

	pc.timeCursor = pc.timeCursor + 10
	m := PublishedMessage{ID: scorebot.SlackMessageID{ChannelID: channelID, Timestamp: fmt.Sprintf("%d.000", pc.timeCursor)}, Text: text, Blocks: blocks}
	pc.messages[m.ID] = m
	pc.posts = append(pc.posts, m)

	return m.ID, nil
}

// Posts returns the messages posted as new messages
func (pc *PublisherCaptor) Posts() []PublishedMessage {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	return append([]PublishedMessage{}, pc.posts...)
}

// Updates returns the messages edited in place
func (pc *PublisherCaptor) Updates() []PublishedMessage {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	return append([]PublishedMessage{}, pc.updates...)
}

// Message returns the current content of a message
func (pc *PublisherCaptor) Message(id scorebot.SlackMessageID) (m PublishedMessage, ok bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	m, ok = pc.messages[id]
	return m, ok
}

// Forget drops a message as if it had been deleted in slack
func (pc *PublisherCaptor) Forget(id scorebot.SlackMessageID) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	delete(pc.messages, id)
}
