package metricsink_test

import (
	"context"
	"strings"
	"testing"

	"github.com/luxas/tracing"
	"github.com/luxas/tracing/metricsink"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickEvent exports one labeled and one unlabeled metric.
type tickEvent struct {
	N     int
	Ratio float64
}

func (e tickEvent) AsMetrics() []tracing.Metric {
	return []tracing.Metric{
		tracing.IntM(int64(e.N)).WithLabel("tick.count"),
		tracing.DoubleM(e.Ratio),
	}
}

func TestEmit(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	s, err := metricsink.New[tickEvent](reg, "trace_metrics")
	require.NoError(t, err)

	lc := tracing.NewLoggingContext(tracing.ParseNamespace("node.tick"))
	require.NoError(t, s.Emit(ctx, lc, tickEvent{N: 3, Ratio: 0.5}))

	// The unlabeled metric is attributed to the namespace.
	expected := `
# HELP trace_metrics Trace metrics exported by the trace_metrics backend.
# TYPE trace_metrics gauge
trace_metrics{metric="node.tick"} 0.5
trace_metrics{metric="tick.count"} 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "trace_metrics"))

	// Gauges track the latest value.
	require.NoError(t, s.Emit(ctx, lc, tickEvent{N: 5, Ratio: 0.25}))
	expected = `
# HELP trace_metrics Trace metrics exported by the trace_metrics backend.
# TYPE trace_metrics gauge
trace_metrics{metric="node.tick"} 0.25
trace_metrics{metric="tick.count"} 5
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "trace_metrics"))
}

func TestEmitWithoutMetricsView(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	s, err := metricsink.New[string](reg, "trace_metrics")
	require.NoError(t, err)

	lc := tracing.NewLoggingContext(tracing.ParseNamespace("node"))
	require.NoError(t, s.Emit(ctx, lc, "no metrics here"))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestRegisterConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metricsink.New[string](reg, "trace_metrics")
	require.NoError(t, err)

	_, err = metricsink.New[string](reg, "trace_metrics")
	assert.Error(t, err)
}

func TestDocumentSignal(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	s, err := metricsink.New[tickEvent](reg, "trace_metrics")
	require.NoError(t, err)

	col, err := tracing.CollectDocs(ctx, s, "Clock ticks.",
		tracing.Prototype[tickEvent]{
			Context: tracing.NewLoggingContext(tracing.ParseNamespace("node.tick")),
			Value:   tickEvent{},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []tracing.Backend{tracing.MetricsBackend("trace_metrics")}, col.Backends)

	// The documentation pass wrote no samples.
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}
