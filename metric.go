package tracing

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type metricKind uint8

const (
	metricInt metricKind = iota + 1
	metricDouble
)

// Metric is a single numeric measurement extracted from a payload by
// the formatting contract, destined for a metrics backend. A Metric is
// either integer- or float-valued and carries an optional label; an
// unlabeled metric is conventionally attributed to the namespace it was
// emitted under.
//
// The JSON encoding is the tagged-union form {"IntM": [label|null, i]}
// or {"DoubleM": [label|null, f]}.
type Metric struct {
	kind  metricKind
	label *string
	i     int64
	f     float64
}

// IntM returns an unlabeled integer metric.
func IntM(v int64) Metric { return Metric{kind: metricInt, i: v} }

// DoubleM returns an unlabeled float metric.
func DoubleM(v float64) Metric { return Metric{kind: metricDouble, f: v} }

// WithLabel returns a copy of the metric carrying the given label.
func (m Metric) WithLabel(label string) Metric {
	m.label = &label
	return m
}

// Label returns the metric's label, if any.
func (m Metric) Label() (string, bool) {
	if m.label == nil {
		return "", false
	}
	return *m.label, true
}

// Int returns the integer value, if this is an integer metric.
func (m Metric) Int() (int64, bool) { return m.i, m.kind == metricInt }

// Double returns the float value, if this is a float metric.
func (m Metric) Double() (float64, bool) { return m.f, m.kind == metricDouble }

// Value returns the metric value as a float64, regardless of kind.
func (m Metric) Value() float64 {
	if m.kind == metricInt {
		return float64(m.i)
	}
	return m.f
}

// MarshalJSON implements json.Marshaler.
func (m Metric) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case metricInt:
		return json.Marshal(map[string][2]any{"IntM": {m.label, m.i}})
	case metricDouble:
		return json.Marshal(map[string][2]any{"DoubleM": {m.label, m.f}})
	default:
		return nil, fmt.Errorf("cannot marshal zero Metric")
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Metric) UnmarshalJSON(data []byte) error {
	var tagged map[string][2]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("metric must have exactly one tag, got %d", len(tagged))
	}
	for tag, pair := range tagged {
		var label *string
		if err := json.Unmarshal(pair[0], &label); err != nil {
			return fmt.Errorf("metric label: %w", err)
		}
		switch tag {
		case "IntM":
			dec := json.NewDecoder(bytes.NewReader(pair[1]))
			dec.UseNumber()
			var num json.Number
			if err := dec.Decode(&num); err != nil {
				return fmt.Errorf("IntM value: %w", err)
			}
			v, err := num.Int64()
			if err != nil {
				return fmt.Errorf("IntM value: %w", err)
			}
			*m = Metric{kind: metricInt, label: label, i: v}
		case "DoubleM":
			var v float64
			if err := json.Unmarshal(pair[1], &v); err != nil {
				return fmt.Errorf("DoubleM value: %w", err)
			}
			*m = Metric{kind: metricDouble, label: label, f: v}
		default:
			return fmt.Errorf("unknown metric tag %q", tag)
		}
	}
	return nil
}
