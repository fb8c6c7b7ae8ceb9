package scorebot

import (
	"context"
	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"time"
)

// methodTelemetry holds the call, error and latency instruments shared by the telemetry decorators
type methodTelemetry struct {
	appName string
	calls   metric.Int64Counter
	errs    metric.Int64Counter
	latency metric.Int64Histogram
}

// newMethodTelemetry creates the instruments of a decorated interface. Instruments are named
// <interfaceName>Calls, <interfaceName>Errors and <interfaceName>ProcessingTimeMillis. Instruments that
// can't be created fall back to no-op ones
func newMethodTelemetry(interfaceName string, appName string, meter metric.Meter) (mt methodTelemetry) {
	mt.appName = appName

	var err error
	if mt.calls, err = meter.Int64Counter(interfaceName + "Calls"); err != nil {
		mt.calls = noop.Int64Counter{}
	}

	if mt.errs, err = meter.Int64Counter(interfaceName + "Errors"); err != nil {
		mt.errs = noop.Int64Counter{}
	}

	if mt.latency, err = meter.Int64Histogram(interfaceName+"ProcessingTimeMillis", metric.WithUnit("ms")); err != nil {
		mt.latency = noop.Int64Histogram{}
	}

	return mt
}

// observe records a call to method that started at since and completed with err
func (mt methodTelemetry) observe(method string, since time.Time, err error) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("name", mt.appName), attribute.String("method", method))

	if err != nil {
		mt.errs.Add(ctx, 1, attrs)
	}

	mt.calls.Add(ctx, 1, attrs)
	mt.latency.Record(ctx, time.Since(since).Milliseconds(), attrs)
}

// chatDriverWithTelemetry implements chatDriver interface with all methods wrapped
// with open telemetry metrics
type chatDriverWithTelemetry struct {
	base chatDriver
	methodTelemetry
}

// newChatDriverWithTelemetry returns an instance of the chatDriver decorated with open telemetry timing and count metrics
func newChatDriverWithTelemetry(base chatDriver, name string, meter metric.Meter) chatDriverWithTelemetry {
	return chatDriverWithTelemetry{base: base, methodTelemetry: newMethodTelemetry("chatDriver", name, meter)}
}

// PostMessage implements chatDriver
func (_d chatDriverWithTelemetry) PostMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error) {
	defer func(since time.Time) { _d.observe("PostMessage", since, err) }(time.Now())

	return _d.base.PostMessage(channelID, options...)
}

// UpdateMessage implements chatDriver
func (_d chatDriverWithTelemetry) UpdateMessage(channelID string, timestamp string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, rText string, err error) {
	defer func(since time.Time) { _d.observe("UpdateMessage", since, err) }(time.Now())

	return _d.base.UpdateMessage(channelID, timestamp, options...)
}

// PostEphemeral implements chatDriver
func (_d chatDriverWithTelemetry) PostEphemeral(channelID string, userID string, options ...slack.MsgOption) (rTimestamp string, err error) {
	defer func(since time.Time) { _d.observe("PostEphemeral", since, err) }(time.Now())

	return _d.base.PostEphemeral(channelID, userID, options...)
}

// OpenView implements chatDriver
func (_d chatDriverWithTelemetry) OpenView(triggerID string, view slack.ModalViewRequest) (resp *slack.ViewResponse, err error) {
	defer func(since time.Time) { _d.observe("OpenView", since, err) }(time.Now())

	return _d.base.OpenView(triggerID, view)
}
