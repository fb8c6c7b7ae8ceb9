package scorebot

import (
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestPublishWithoutExistingMessagePostsNewMessage(t *testing.T) {
	driver := &inMemoryChatDriver{timeCursor: 1000}
	mp := newMessagePublisher(driver, newDiscardingSLogger())

	id, err := mp.Publish("C-board", nil, "scores", nil)
	require.NoError(t, err)

	assert.Equal(t, SlackMessageID{ChannelID: "C-board", Timestamp: "1010.000"}, id)
	assert.Len(t, driver.postedMsgs, 1)
	assert.Len(t, driver.updatedMsgs, 0)
}

func TestPublishUpdatesExistingMessageInPlace(t *testing.T) {
	driver := &inMemoryChatDriver{timeCursor: 1000}
	mp := newMessagePublisher(driver, newDiscardingSLogger())

	existing := SlackMessageID{ChannelID: "C-board", Timestamp: "42.000"}
	id, err := mp.Publish("C-board", &existing, "scores", nil)
	require.NoError(t, err)

	assert.Equal(t, existing, id)
	assert.Len(t, driver.postedMsgs, 0)
	require.Len(t, driver.updatedMsgs, 1)
	assert.Equal(t, "42.000", driver.updatedMsgs[0].timestamp)
}

func TestPublishPostsNewMessageWhenUpdateFails(t *testing.T) {
	driver := &inMemoryChatDriver{timeCursor: 1000, failUpdates: true}
	mp := newMessagePublisher(driver, newDiscardingSLogger())

	existing := SlackMessageID{ChannelID: "C-board", Timestamp: "42.000"}
	id, err := mp.Publish("C-board", &existing, "scores", nil)
	require.NoError(t, err)

	assert.Equal(t, SlackMessageID{ChannelID: "C-board", Timestamp: "1010.000"}, id)
	assert.Len(t, driver.postedMsgs, 1)
}

func TestPublishPostsNewMessageWhenChannelChanged(t *testing.T) {
	driver := &inMemoryChatDriver{timeCursor: 1000}
	mp := newMessagePublisher(driver, newDiscardingSLogger())

	existing := SlackMessageID{ChannelID: "C-old", Timestamp: "42.000"}
	id, err := mp.Publish("C-board", &existing, "scores", nil)
	require.NoError(t, err)

	assert.Equal(t, "C-board", id.ChannelID)
	assert.Len(t, driver.postedMsgs, 1)
	assert.Len(t, driver.updatedMsgs, 0)
}

func TestPublishFailure(t *testing.T) {
	driver := &inMemoryChatDriver{timeCursor: 1000, failUpdates: true, failPosts: true}
	mp := newMessagePublisher(driver, newDiscardingSLogger())

	existing := SlackMessageID{ChannelID: "C-board", Timestamp: "42.000"}
	_, err := mp.Publish("C-board", &existing, "scores", nil)
	require.Error(t, err)

	var syncErr *MessageSyncError
	require.True(t, errors.As(err, &syncErr))
	assert.Equal(t, "C-board", syncErr.ChannelID)
	assert.EqualError(t, err, "unable to sync message in channel [C-board]: post failed: channel_not_found")
}
