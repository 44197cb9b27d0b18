package logsink_test

import (
	"context"
	"testing"

	"github.com/luxas/tracing"
	"github.com/luxas/tracing/logsink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// tickEvent is a payload with machine, human and metrics views.
type tickEvent struct {
	N    int
	Node string
}

func (e tickEvent) ForMachine(d tracing.DetailLevel) map[string]any {
	m := map[string]any{"n": e.N}
	if d >= tracing.DetailDetailed {
		m["node"] = e.Node
	}
	return m
}

func (e tickEvent) ForHuman() string { return "clock ticked" }

func newObserved(t *testing.T) (tracing.Sink[tickEvent], *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return logsink.New[tickEvent](zap.New(core), "stdout"), logs
}

func TestEmit(t *testing.T) {
	ctx := context.Background()
	s, logs := newObserved(t)

	lc := tracing.NewLoggingContext(tracing.ParseNamespace("node.tick")).
		WithSeverity(tracing.Error)
	require.NoError(t, s.Emit(ctx, lc, tickEvent{N: 7, Node: "relay-1"}))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "clock ticked", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "node.tick", fields["ns"])
	assert.Equal(t, "Error", fields["severity"])
	assert.Equal(t, int64(7), fields["n"])
	// Regular detail omits the detailed-only field.
	assert.NotContains(t, fields, "node")
}

func TestEmitDetailLevel(t *testing.T) {
	ctx := context.Background()
	s, logs := newObserved(t)

	lc := tracing.NewLoggingContext(tracing.ParseNamespace("node.tick")).
		WithDetails(tracing.DetailDetailed)
	require.NoError(t, s.Emit(ctx, lc, tickEvent{N: 7, Node: "relay-1"}))

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "relay-1", fields["node"])
}

func TestEmitDefaults(t *testing.T) {
	ctx := context.Background()
	s, logs := newObserved(t)

	// No severity annotation: logged at Info.
	lc := tracing.NewLoggingContext(tracing.ParseNamespace("node.tick"))
	require.NoError(t, s.Emit(ctx, lc, tickEvent{N: 1}))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Info", entries[0].ContextMap()["severity"])
}

func TestHumanViewFallsBackToNamespace(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	s := logsink.New[string](zap.New(core), "stdout")

	lc := tracing.NewLoggingContext(tracing.ParseNamespace("node.shutdown"))
	require.NoError(t, s.Emit(ctx, lc, "raw payload"))

	entries := logs.All()
	require.Len(t, entries, 1)
	// A payload without a human view logs under its namespace, with the
	// generic machine view attached.
	assert.Equal(t, "node.shutdown", entries[0].Message)
	assert.Equal(t, "raw payload", entries[0].ContextMap()["unstructured"])
}

func TestDocumentSignal(t *testing.T) {
	ctx := context.Background()
	s, logs := newObserved(t)

	col, err := tracing.CollectDocs(ctx, s, "Clock ticks.",
		tracing.Prototype[tickEvent]{
			Context: tracing.NewLoggingContext(tracing.ParseNamespace("node.tick")),
			Value:   tickEvent{},
		},
	)
	require.NoError(t, err)

	// The backend identifies itself without writing any output.
	assert.Equal(t, []tracing.Backend{tracing.LogBackend("stdout")}, col.Backends)
	assert.Zero(t, logs.Len())
}

func TestControlSignalsProduceNoOutput(t *testing.T) {
	ctx := context.Background()
	s, logs := newObserved(t)

	require.NoError(t, tracing.Configure(ctx, tracing.NewTraceConfig(), s))
	assert.Zero(t, logs.Len())
}
