package scorebot_test

import (
	"context"
	"github.com/pkg/errors"
	"github.com/shinyhunt/scorebot"
	"github.com/shinyhunt/scorebot/config"
	"github.com/shinyhunt/scorebot/interaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func TestNewScorebotWithoutPlugins(t *testing.T) {
	b, err := scorebot.NewBot("jane", config.NewViperWithDefaults()).
		Build()

	require.NoError(t, err)
	require.NotNil(t, b)
}

func TestNewScorebotWithSimplePlugin(t *testing.T) {
	b, err := scorebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPlugin(newPlugin()).
		Build()

	require.NoError(t, err)
	require.NotNil(t, b)
}

func TestNewScorebotWithPluginAndError(t *testing.T) {
	b, err := scorebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginErr(newPluginWithErr("")).
		Build()

	require.NoError(t, err)
	require.NotNil(t, b)
}

func TestNewScorebotWithPluginAndErrorSet(t *testing.T) {
	b, err := scorebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginErr(newPluginWithErr("error1")).
		Build()

	require.Error(t, err)
	assert.EqualError(t, err, "error1")
	assert.Nil(t, b)
}

func TestNewScorebotWithPluginAndManyErrors(t *testing.T) {
	b, err := scorebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginErr(newPluginWithErr("error1")).
		WithPluginErr(newPluginWithErr("error2")).
		WithPlugin(newPlugin()).
		Build()

	require.Error(t, err)
	assert.EqualError(t, err, "error1")
	assert.Nil(t, b)
}

func TestNewScorebotWithCloserPluginClosingWithError(t *testing.T) {
	b, err := scorebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginCloserErr(newPluginWithErrAndCloser("", CloseTester{errorMsg: "should be called"})).
		Build()

	require.NoError(t, err)
	require.NotNil(t, b)

	err = b.Close()
	assert.EqualError(t, err, "should be called")
}

func TestNewScorebotWithCloserPluginClosingWithoutError(t *testing.T) {
	b, err := scorebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginCloserErr(newPluginWithErrAndCloser("", CloseTester{errorMsg: ""})).
		Build()

	require.NoError(t, err)
	require.NotNil(t, b)

	err = b.Close()
	assert.NoError(t, err)
}

func TestNewScorebotWithCloserAndErr(t *testing.T) {
	b, err := scorebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginCloserErr(newPluginWithErrAndCloser("error1", CloseTester{})).
		WithPluginCloserErr(newPluginWithErrAndCloser("error2", CloseTester{})).
		Build()

	require.Error(t, err)
	assert.EqualError(t, err, "error1")
	assert.Nil(t, b)
}

func TestNewScorebotWithStandaloneCloser(t *testing.T) {
	closer := &countingCloser{}

	b, err := scorebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPlugin(newPlugin()).
		WithCloser(closer).
		Build()

	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.Equal(t, 1, closer.count)
}

// newPlugin returns a new tester plugin
func newPlugin() (p *scorebot.Plugin) {
	p = new(scorebot.Plugin)
	p.Name = "tester"
	p.Commands = []scorebot.CommandDefinition{{
		Name:        "make",
		Usage:       "/make <something>",
		Description: "Have the test bot make something for you",
		Answer: func(ctx context.Context, e interaction.Event) *scorebot.Reply {
			return &scorebot.Reply{Text: "Ready"}
		},
	}}

	return p
}

// newPluginWithErr returns the plugin along with an error if errorMsg is not empty
func newPluginWithErr(errorMsg string) (p *scorebot.Plugin, err error) {
	if errorMsg != "" {
		return nil, errors.New(errorMsg)
	}

	return newPlugin(), nil
}

// newPluginWithErrAndCloser returns the plugin along with an error if errorMsg is not empty and the closer
func newPluginWithErrAndCloser(errorMsg string, closer io.Closer) (c io.Closer, p *scorebot.Plugin, err error) {
	p, err = newPluginWithErr(errorMsg)

	return closer, p, err
}

// CloseTester is an empty struct that has is a Closer that either doesn't do anything
// or returns the error set on the CloseTester
type CloseTester struct {
	errorMsg string
}

// Close returns the CloseTester error if set, or just returns nil and does nothing otherwise
func (c CloseTester) Close() (err error) {
	if c.errorMsg != "" {
		return errors.New(c.errorMsg)
	}

	return nil
}

type countingCloser struct {
	count int
}

func (c *countingCloser) Close() (err error) {
	c.count++
	return nil
}
