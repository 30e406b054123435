package wfc

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tilewave/collapse"
)

const instrumentationName = "github.com/katalvlaran/tilewave/wfc"

// startGenerateSpan opens the span covering one Generate call. A nil
// provider falls back to the global one.
func startGenerateSpan(ctx context.Context, tp trace.TracerProvider, runID string, width, height, tiles int) (context.Context, trace.Span) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return tp.Tracer(instrumentationName).Start(ctx, "tilewave.Generate",
		trace.WithAttributes(
			attribute.String("tilewave.run_id", runID),
			attribute.Int("tilewave.width", width),
			attribute.Int("tilewave.height", height),
			attribute.Int("tilewave.tiles", tiles),
		),
	)
}

// setGenerateSpanResult records the outcome of a Generate call.
func setGenerateSpanResult(span trace.Span, state collapse.State, attempts int, stats collapse.Stats, err error) {
	span.SetAttributes(
		attribute.String("tilewave.state", state.String()),
		attribute.Int("tilewave.attempts", attempts),
		attribute.Int("tilewave.waves", stats.Waves),
		attribute.Int("tilewave.propagations", stats.Propagations),
		attribute.Int("tilewave.pruned", stats.Pruned),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
