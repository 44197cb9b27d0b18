package tracing

import (
	"encoding/json"
	"fmt"
)

// BackendKind distinguishes the two backend families a sink graph can
// terminate in.
type BackendKind uint8

const (
	// BackendLog identifies a structured-log backend.
	BackendLog BackendKind = iota + 1
	// BackendMetrics identifies a metrics backend.
	BackendMetrics
)

// Backend names a concrete sink target, e.g. a particular structured-log
// or metrics backend. Backends identify themselves in documentation
// passes so generated reference docs can state where each message ends
// up.
//
// The JSON tags "KatipBackend" and "EKGBackend" are fixed; they are the
// form the external documentation tooling consumes.
type Backend struct {
	kind BackendKind
	name string
}

// LogBackend returns a Backend identifying a structured-log target.
func LogBackend(name string) Backend { return Backend{kind: BackendLog, name: name} }

// MetricsBackend returns a Backend identifying a metrics target.
func MetricsBackend(name string) Backend { return Backend{kind: BackendMetrics, name: name} }

// Kind returns the backend family.
func (b Backend) Kind() BackendKind { return b.kind }

// Name returns the backend's identifying name.
func (b Backend) Name() string { return b.name }

// String renders the backend as "kind(name)" for human consumption.
func (b Backend) String() string {
	switch b.kind {
	case BackendLog:
		return "log(" + b.name + ")"
	case BackendMetrics:
		return "metrics(" + b.name + ")"
	default:
		return "backend(" + b.name + ")"
	}
}

// MarshalJSON implements json.Marshaler.
func (b Backend) MarshalJSON() ([]byte, error) {
	switch b.kind {
	case BackendLog:
		return json.Marshal(map[string]string{"KatipBackend": b.name})
	case BackendMetrics:
		return json.Marshal(map[string]string{"EKGBackend": b.name})
	default:
		return nil, fmt.Errorf("cannot marshal zero Backend")
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Backend) UnmarshalJSON(data []byte) error {
	var tagged map[string]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("backend must have exactly one tag, got %d", len(tagged))
	}
	for tag, name := range tagged {
		switch tag {
		case "KatipBackend":
			*b = Backend{kind: BackendLog, name: name}
		case "EKGBackend":
			*b = Backend{kind: BackendMetrics, name: name}
		default:
			return fmt.Errorf("unknown backend tag %q", tag)
		}
	}
	return nil
}
