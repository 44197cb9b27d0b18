package tracing_test

import (
	"github.com/luxas/tracing"
)

// connectEvent is the sample payload type used across the tests. Its
// machine view grows monotonically with the detail level.
type connectEvent struct {
	Peer     string
	Attempts int
	Local    string
}

func (e connectEvent) ForMachine(d tracing.DetailLevel) map[string]any {
	m := map[string]any{"peer": e.Peer}
	if d >= tracing.DetailRegular {
		m["attempts"] = e.Attempts
	}
	if d >= tracing.DetailDetailed {
		m["local"] = e.Local
	}
	return m
}

func (e connectEvent) ForHuman() string { return "connected to " + e.Peer }

func (e connectEvent) AsMetrics() []tracing.Metric {
	return []tracing.Metric{
		tracing.IntM(int64(e.Attempts)).WithLabel("connect.attempts"),
	}
}
