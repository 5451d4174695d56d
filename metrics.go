package devrand

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/opd-ai/go-devrand"

// Dispatcher instruments. Created lazily from the global MeterProvider, so
// they bind to whatever SDK the application installs; without one they are
// no-ops. Creation errors are ignored because the API returns usable no-op
// instruments alongside them.
var (
	metricsOnce sync.Once
	launches    metric.Int64Counter
	elements    metric.Int64Counter
	launchTime  metric.Float64Histogram
	faults      metric.Int64Counter
)

func instruments() {
	metricsOnce.Do(func() {
		m := otel.GetMeterProvider().Meter(meterName)
		launches, _ = m.Int64Counter("devrand.kernel.launches",
			metric.WithDescription("Kernel launches dispatched by queues"))
		elements, _ = m.Int64Counter("devrand.kernel.elements",
			metric.WithDescription("Elements processed by kernel launches"))
		launchTime, _ = m.Float64Histogram("devrand.kernel.duration",
			metric.WithDescription("Kernel launch execution time"),
			metric.WithUnit("s"))
		faults, _ = m.Int64Counter("devrand.kernel.faults",
			metric.WithDescription("Kernel launches that failed"))
	})
}

func recordLaunch(dev int32, op string, n int64, elapsed time.Duration, err error) {
	instruments()
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.Int("device", int(dev)),
	)
	launches.Add(ctx, 1, attrs)
	elements.Add(ctx, n, attrs)
	launchTime.Record(ctx, elapsed.Seconds(), attrs)
	if err != nil {
		faults.Add(ctx, 1, attrs)
	}
}
