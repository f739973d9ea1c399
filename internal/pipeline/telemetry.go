package pipeline

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/rickgao/disclosure-data/internal/api"
)

const instrumentationName = "github.com/rickgao/disclosure-data/internal/pipeline"

// Attribute keys recorded on lookup spans and metrics.
const (
	AttrDataset = attribute.Key("disclosure.dataset")
	AttrStatus  = attribute.Key("disclosure.status")
	AttrStage   = attribute.Key("disclosure.stage")
	AttrOutcome = attribute.Key("disclosure.outcome")
	AttrRows    = attribute.Key("disclosure.rows")
)

type telemetry struct {
	tracer   trace.Tracer
	lookups  metric.Int64Counter
	duration metric.Float64Histogram
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider, logger *slog.Logger) telemetry {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	t := telemetry{tracer: tp.Tracer(instrumentationName)}

	var err error
	t.lookups, err = meter.Int64Counter("disclosure.lookups",
		metric.WithDescription("Lookups by dataset and status"),
	)
	if err != nil {
		logger.Warn("create lookup counter", "error", err)
		t.lookups, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("disclosure.lookups")
	}

	t.duration, err = meter.Float64Histogram("disclosure.lookup.duration",
		metric.WithDescription("Lookup latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		logger.Warn("create lookup histogram", "error", err)
		t.duration, _ = noop.NewMeterProvider().Meter(instrumentationName).Float64Histogram("disclosure.lookup.duration")
	}

	return t
}

// observe finishes span for res and records its metrics.
func (t telemetry) observe(ctx context.Context, span trace.Span, res Result) {
	attrs := []attribute.KeyValue{
		AttrDataset.String(res.Dataset.String()),
		AttrStatus.String(res.Status.String()),
	}

	span.SetAttributes(attrs...)
	if res.Table != nil {
		span.SetAttributes(AttrRows.Int(res.Table.Len()))
	}
	if res.Err != nil {
		span.SetAttributes(AttrStage.String(res.Err.Stage.String()))
		if res.Outcome != api.OutcomeNone {
			span.SetAttributes(AttrOutcome.String(res.Outcome.String()))
		}
		span.RecordError(res.Err.Err)
		span.SetStatus(codes.Error, res.Err.Stage.String())
	}

	t.lookups.Add(ctx, 1, metric.WithAttributes(attrs...))
	t.duration.Record(ctx, res.Duration.Seconds(), metric.WithAttributes(attrs...))
}
