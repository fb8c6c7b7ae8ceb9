package scorebot

import (
	"context"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"sync"
	"time"
)

const (
	commandEventType     = "command"
	interactionEventType = "interaction"
)

// instrumenter holds data for core instrumentation
type instrumenter struct {
	appName     string
	coreMetrics coreMetrics

	pluginMetricsMu sync.Mutex
	pluginMetrics   map[string]pluginMetrics
	meter           metric.Meter
}

// coreMetrics holds core scorebot metrics
type coreMetrics struct {
	eventsSeen                   metric.Int64Counter
	eventsProcessed              metric.Int64Counter
	eventProcessingLatencyMillis metric.Int64Histogram
	eventDispatchLatencyMillis   metric.Int64Histogram
}

// pluginMetrics holds metrics specific to a plugin
type pluginMetrics struct {
	attributes           metric.MeasurementOption
	processingTimeMillis metric.Int64Histogram
	replyCount           metric.Int64Counter
}

// newInstrumenter creates a new core instrumenter
func newInstrumenter(appName string, meter metric.Meter) (ins *instrumenter, err error) {
	ins = new(instrumenter)

	if ins.coreMetrics.eventsSeen, err = meter.Int64Counter("eventsSeen"); err != nil {
		return nil, errors.Wrap(err, "error creating eventsSeen counter")
	}

	if ins.coreMetrics.eventsProcessed, err = meter.Int64Counter("eventsProcessed"); err != nil {
		return nil, errors.Wrap(err, "error creating eventsProcessed counter")
	}

	if ins.coreMetrics.eventProcessingLatencyMillis, err = meter.Int64Histogram("eventProcessingLatencyMillis", metric.WithUnit("ms")); err != nil {
		return nil, errors.Wrap(err, "error creating eventProcessingLatencyMillis histogram")
	}

	if ins.coreMetrics.eventDispatchLatencyMillis, err = meter.Int64Histogram("eventDispatchLatencyMillis", metric.WithUnit("ms")); err != nil {
		return nil, errors.Wrap(err, "error creating eventDispatchLatencyMillis histogram")
	}

	ins.appName = appName
	ins.pluginMetrics = make(map[string]pluginMetrics)
	ins.meter = meter

	return ins, nil
}

// appAttributes returns the measurement attributes of the instance, with extra attributes appended
func (ins *instrumenter) appAttributes(extra ...attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(append([]attribute.KeyValue{attribute.String("name", ins.appName)}, extra...)...)
}

// eventSeen counts an incoming event
func (ins *instrumenter) eventSeen(ctx context.Context, eventType string) {
	ins.coreMetrics.eventsSeen.Add(ctx, 1, ins.appAttributes(attribute.String("eventType", eventType)))
}

// eventProcessed counts a processed event along with its processing time
func (ins *instrumenter) eventProcessed(ctx context.Context, eventType string, d time.Duration) {
	attrs := ins.appAttributes(attribute.String("eventType", eventType))
	ins.coreMetrics.eventsProcessed.Add(ctx, 1, attrs)
	ins.coreMetrics.eventProcessingLatencyMillis.Record(ctx, d.Milliseconds(), attrs)
}

// getOrCreatePluginMetrics returns an existing pluginMetrics for a plugin or creates a new one, if necessary
func (ins *instrumenter) getOrCreatePluginMetrics(pluginName string) (pm pluginMetrics) {
	ins.pluginMetricsMu.Lock()
	defer ins.pluginMetricsMu.Unlock()

	if pm, ok := ins.pluginMetrics[pluginName]; ok {
		return pm
	}

	pm = newPluginMetrics(ins, pluginName)
	ins.pluginMetrics[pluginName] = pm

	return pm
}

// newPluginMetrics returns a new pluginMetrics instance for a plugin. Instruments that can't be created
// fall back to no-op ones
func newPluginMetrics(ins *instrumenter, pluginName string) (pm pluginMetrics) {
	pm.attributes = ins.appAttributes(attribute.String("plugin", pluginName))

	c, err := ins.meter.Int64Counter("replyCount")
	if err != nil {
		c = noop.Int64Counter{}
	}

	h, err := ins.meter.Int64Histogram("processingTimeMillis", metric.WithUnit("ms"))
	if err != nil {
		h = noop.Int64Histogram{}
	}

	pm.replyCount = c
	pm.processingTimeMillis = h

	return pm
}

type timed func()

// measure returns the execution duration of a timed function
func measure(operation timed) (d time.Duration) {
	before := time.Now()

	operation()

	return time.Since(before)
}
