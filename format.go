package tracing

import "encoding/json"

// MachineFormatter is implemented by payload types that provide a
// structured, machine-readable view of themselves. The machine view is
// meant for durable storage and querying.
//
// A higher detail level may include more fields; the view at a lower
// level must be a strict reduction of the view at a higher level, never
// contradictory data.
type MachineFormatter interface {
	ForMachine(d DetailLevel) map[string]any
}

// HumanFormatter is implemented by payload types that provide a
// human-readable rendering of themselves, meant for consoles. An empty
// string means "no human view".
type HumanFormatter interface {
	ForHuman() string
}

// MetricsFormatter is implemented by payload types that yield numeric
// measurements for metrics backends.
type MetricsFormatter interface {
	AsMetrics() []Metric
}

// MachineView returns the machine-readable view of v at the given
// detail level.
//
// If v does not implement MachineFormatter, a generic structured
// serialization is attempted: when v serializes to a scalar string, the
// string is wrapped under the synthetic "unstructured" field, otherwise
// the view is an empty object.
func MachineView(v any, d DetailLevel) map[string]any {
	if f, ok := v.(MachineFormatter); ok {
		return f.ForMachine(d)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return map[string]any{"unstructured": s}
	}
	return map[string]any{}
}

// HumanView returns the human-readable view of v, or the empty string
// if v does not implement HumanFormatter.
func HumanView(v any) string {
	if f, ok := v.(HumanFormatter); ok {
		return f.ForHuman()
	}
	return ""
}

// MetricsView returns the metrics extracted from v, or nil if v does
// not implement MetricsFormatter.
func MetricsView(v any) []Metric {
	if f, ok := v.(MetricsFormatter); ok {
		return f.AsMetrics()
	}
	return nil
}
