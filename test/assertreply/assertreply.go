// Package assertreply provides testing functions to validate a plugin's reply
package assertreply

import (
	"github.com/shinyhunt/scorebot"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"testing"
)

// HasText asserts that the reply's text is the expected text
func HasText(t *testing.T, reply *scorebot.Reply, text string) bool {
	if assert.NotNil(t, reply) {
		return assert.Equalf(t, text, reply.Text, "Reply text expected to be [%s] but was [%s]", text, reply.Text)
	}
	return false
}

// HasTextContaining asserts that the reply's text contains the expected subString
func HasTextContaining(t *testing.T, reply *scorebot.Reply, subString string) bool {
	if assert.NotNil(t, reply) {
		return assert.Containsf(t, reply.Text, subString, "Reply expected to have text containing [%s] but its text [%s] didn't", subString, reply.Text)
	}
	return false
}

// HasActionIDs asserts that the reply's blocks hold interactive elements with exactly the expected
// action ids, in order
func HasActionIDs(t *testing.T, reply *scorebot.Reply, actionIDs ...string) bool {
	if assert.NotNil(t, reply) {
		ids := ActionIDs(reply.Blocks)
		return assert.Equalf(t, actionIDs, ids, "Reply action ids expected %s but were %s", actionIDs, ids)
	}
	return false
}

// HasNoComponents asserts that the reply carries neither blocks nor a modal
func HasNoComponents(t *testing.T, reply *scorebot.Reply) bool {
	if assert.NotNil(t, reply) {
		return assert.Empty(t, reply.Blocks, "Reply expected to have no blocks") && assert.Nil(t, reply.Modal, "Reply expected to have no modal")
	}
	return false
}

// HasFieldError asserts that the reply rejects a view submission with the error on the block
func HasFieldError(t *testing.T, reply *scorebot.Reply, blockID string, msg string) bool {
	if assert.NotNil(t, reply) {
		return assert.Equalf(t, map[string]string{blockID: msg}, reply.FieldErrors, "Reply field errors expected [%s: %s] but were %v", blockID, msg, reply.FieldErrors)
	}
	return false
}

// ActionIDs returns the action ids of the interactive elements of section accessories and
// action blocks
func ActionIDs(blocks []slack.Block) (ids []string) {
	ids = make([]string, 0)

	for _, b := range blocks {
		switch block := b.(type) {
		case *slack.SectionBlock:
			if block.Accessory != nil && block.Accessory.SelectElement != nil {
				ids = append(ids, block.Accessory.SelectElement.ActionID)
			}
		case *slack.ActionBlock:
			if block.Elements == nil {
				continue
			}

			for _, e := range block.Elements.ElementSet {
				if button, ok := e.(*slack.ButtonBlockElement); ok {
					ids = append(ids, button.ActionID)
				}
			}
		}
	}

	return ids
}
