package tracing_test

import (
	"encoding/json"
	"testing"

	"github.com/luxas/tracing"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip[T any](t *testing.T, in T) T {
	t.Helper()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestMetricRoundTrip(t *testing.T) {
	for _, m := range []tracing.Metric{
		tracing.IntM(3),
		tracing.IntM(-42).WithLabel("connect.attempts"),
		tracing.DoubleM(0.99),
		tracing.DoubleM(12.5).WithLabel("hit.ratio"),
	} {
		assert.Equal(t, m, roundTrip(t, m))
	}

	var m tracing.Metric
	assert.Error(t, json.Unmarshal([]byte(`{"BoolM":[null,true]}`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"IntM":[null,1],"DoubleM":[null,2.0]}`), &m))
}

func TestLoggingContextRoundTrip(t *testing.T) {
	full := tracing.NewLoggingContext(tracing.ParseNamespace("net.connect")).
		WithSeverity(tracing.Notice).
		WithPrivacy(tracing.Confidential).
		WithDetails(tracing.DetailBrief)
	assert.Equal(t, full, roundTrip(t, full))

	// Absent annotations survive as nulls.
	bare := tracing.NewLoggingContext(tracing.Namespace{"net"})
	got := roundTrip(t, bare)
	assert.True(t, got.Namespace.Equal(bare.Namespace))
	assert.Nil(t, got.Severity)
	assert.Nil(t, got.Privacy)
	assert.Nil(t, got.Details)
}

func TestBackendRoundTrip(t *testing.T) {
	for _, b := range []tracing.Backend{
		tracing.LogBackend("stdout"),
		tracing.MetricsBackend("ekg"),
	} {
		assert.Equal(t, b, roundTrip(t, b))
	}

	var b tracing.Backend
	assert.Error(t, json.Unmarshal([]byte(`{"GraphiteBackend":"x"}`), &b))
}

func TestConfigOptionRoundTrip(t *testing.T) {
	for _, o := range []tracing.ConfigOption{
		tracing.SeverityOption(tracing.SilenceFilter),
		tracing.DetailOption(tracing.DetailDetailed),
		tracing.PrivacyOption(tracing.Confidential),
	} {
		assert.Equal(t, o, roundTrip(t, o))
	}

	var o tracing.ConfigOption
	assert.Error(t, json.Unmarshal([]byte(`{"CoVerbosity":"high"}`), &o))
	assert.Error(t, json.Unmarshal([]byte(`{"CoSeverity":"Loud"}`), &o))
}

func TestTraceConfigRoundTrip(t *testing.T) {
	cfg := tracing.NewTraceConfig().
		Set(nil, tracing.SeverityOption(tracing.InfoFilter)).
		Set(tracing.ParseNamespace("node.chaindb"),
			tracing.SeverityOption(tracing.DebugFilter),
			tracing.DetailOption(tracing.DetailDetailed),
			tracing.PrivacyOption(tracing.Confidential),
		)

	got := roundTrip(t, cfg)
	assert.Equal(t, cfg, got)
	// Resolution semantics survive the trip.
	assert.Equal(t, tracing.DebugFilter, got.ResolveSeverity(tracing.ParseNamespace("node.chaindb.block")))
	assert.Equal(t, tracing.InfoFilter, got.ResolveSeverity(tracing.ParseNamespace("node.mempool")))
}

func TestTraceControlRoundTrip(t *testing.T) {
	cfg := tracing.NewTraceConfig().
		Set(tracing.ParseNamespace("a"), tracing.SeverityOption(tracing.ErrorFilter))
	col := &tracing.DocCollector{
		Doc:        "doc",
		Namespaces: []tracing.Namespace{{"a"}},
		Backends:   []tracing.Backend{tracing.LogBackend("stdout")},
	}

	for _, sig := range []tracing.TraceControl{
		tracing.Reset(),
		tracing.Config(cfg),
		tracing.Optimize(),
		tracing.Document(col),
	} {
		assert.Equal(t, sig, roundTrip(t, sig))
	}

	var sig tracing.TraceControl
	assert.Error(t, json.Unmarshal([]byte(`{"Halt":[]}`), &sig))
}

func TestDocCollectorRoundTrip(t *testing.T) {
	col := &tracing.DocCollector{
		Doc:                  "Peer connection events.",
		Namespaces:           []tracing.Namespace{{"net", "connect"}, {"net", "disconnect"}},
		Severities:           []tracing.Severity{tracing.Notice, tracing.Info},
		Privacies:            []tracing.Privacy{tracing.Public, tracing.Public},
		Details:              []tracing.DetailLevel{tracing.DetailRegular, tracing.DetailBrief},
		Backends:             []tracing.Backend{tracing.LogBackend("stdout"), tracing.MetricsBackend("ekg")},
		ConfiguredSeverities: []tracing.SeverityFilter{tracing.InfoFilter, tracing.InfoFilter},
		ConfiguredPrivacies:  []tracing.Privacy{tracing.Public, tracing.Public},
		ConfiguredDetails:    []tracing.DetailLevel{tracing.DetailRegular, tracing.DetailRegular},
	}
	assert.Equal(t, col, roundTrip(t, col))
}

func TestWireGolden(t *testing.T) {
	g := goldie.New(t)

	marshal := func(v any) []byte {
		data, err := json.MarshalIndent(v, "", "  ")
		require.NoError(t, err)
		return data
	}

	g.Assert(t, "metric_int", marshal(tracing.IntM(3).WithLabel("connect.attempts")))

	g.Assert(t, "logging_context", marshal(
		tracing.NewLoggingContext(tracing.ParseNamespace("net.connect")).
			WithSeverity(tracing.Notice).
			WithPrivacy(tracing.Public).
			WithDetails(tracing.DetailDetailed),
	))

	g.Assert(t, "trace_control_config", marshal(
		tracing.Config(tracing.NewTraceConfig().
			Set(tracing.ParseNamespace("node.chaindb"),
				tracing.SeverityOption(tracing.DebugFilter),
				tracing.DetailOption(tracing.DetailDetailed),
			)),
	))

	g.Assert(t, "doc_collector", marshal(&tracing.DocCollector{
		Doc:                  "Peer connection events.",
		Namespaces:           []tracing.Namespace{{"net", "connect"}},
		Severities:           []tracing.Severity{tracing.Notice},
		Privacies:            []tracing.Privacy{tracing.Public},
		Details:              []tracing.DetailLevel{tracing.DetailRegular},
		Backends:             []tracing.Backend{tracing.LogBackend("stdout"), tracing.MetricsBackend("ekg")},
		ConfiguredSeverities: []tracing.SeverityFilter{tracing.InfoFilter},
		ConfiguredPrivacies:  []tracing.Privacy{tracing.Public},
		ConfiguredDetails:    []tracing.DetailLevel{tracing.DetailRegular},
	}))
}
