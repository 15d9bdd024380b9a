// Package telemetry counts render loop events through OpenTelemetry. Setup
// installs an SDK meter provider that periodically writes the counters out.
// Without it the global no-op provider is used.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const (
	meterName   = "github.com/ThatOtherAndrew/netsphere"
	serviceName = "netsphere"
)

// Setup installs a global meter provider exporting to w every interval. The
// returned shutdown flushes the last collection and must be called on exit.
func Setup(w io.Writer, interval time.Duration) (func(context.Context) error, error) {
	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(interval),
		)),
	)
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

type Metrics struct {
	frames        metric.Int64Counter
	linksOpened   metric.Int64Counter
	regenerations metric.Int64Counter
	dots          metric.Int64Gauge
}

func New() (*Metrics, error) {
	return NewWithMeter(otel.Meter(meterName))
}

func NewWithMeter(meter metric.Meter) (*Metrics, error) {
	frames, err := meter.Int64Counter("netsphere.frames",
		metric.WithDescription("Frames rendered"))
	if err != nil {
		return nil, fmt.Errorf("failed to create frames counter: %w", err)
	}
	linksOpened, err := meter.Int64Counter("netsphere.links.opened",
		metric.WithDescription("Links opened by clicking a dot"))
	if err != nil {
		return nil, fmt.Errorf("failed to create links counter: %w", err)
	}
	regenerations, err := meter.Int64Counter("netsphere.regenerations",
		metric.WithDescription("Globe regenerations after a resize"))
	if err != nil {
		return nil, fmt.Errorf("failed to create regenerations counter: %w", err)
	}
	dots, err := meter.Int64Gauge("netsphere.dots",
		metric.WithDescription("Dots in the current globe"))
	if err != nil {
		return nil, fmt.Errorf("failed to create dots gauge: %w", err)
	}

	return &Metrics{
		frames:        frames,
		linksOpened:   linksOpened,
		regenerations: regenerations,
		dots:          dots,
	}, nil
}

func (m *Metrics) Frame(ctx context.Context) {
	m.frames.Add(ctx, 1)
}

func (m *Metrics) LinkOpened(ctx context.Context, link string, err error) {
	m.linksOpened.Add(ctx, 1, metric.WithAttributes(
		attribute.String("link", link),
		attribute.Bool("error", err != nil),
	))
}

func (m *Metrics) Regenerated(ctx context.Context, dots int) {
	m.regenerations.Add(ctx, 1)
	m.dots.Record(ctx, int64(dots))
}
