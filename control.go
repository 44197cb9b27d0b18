package tracing

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/multierr"
)

// ControlKind enumerates the control signals of the reconfiguration
// protocol.
type ControlKind uint8

const (
	// ControlReset discards cached resolution state, reverting sinks to
	// the unresolved pass-through baseline.
	ControlReset ControlKind = iota + 1
	// ControlConfig distributes a pending TraceConfig; forwarding
	// behavior does not change yet.
	ControlConfig
	// ControlOptimize resolves the pending configuration into cached
	// fast-path filtering decisions.
	ControlOptimize
	// ControlDocument walks the sink graph collecting documentation
	// metadata instead of forwarding live data.
	ControlDocument
)

//nolint:gochecknoglobals
var controlKindNames = map[ControlKind]string{
	ControlReset:    "Reset",
	ControlConfig:   "Config",
	ControlOptimize: "Optimize",
	ControlDocument: "Document",
}

// String returns the signal name, e.g. "Reset".
func (k ControlKind) String() string {
	if n, ok := controlKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("ControlKind(%d)", uint8(k))
}

// TraceControl is a control signal carried in-band alongside payloads.
// It instructs the sink chain rather than being logged itself.
//
// Reconfiguring a live sink network requires the three-step sequence
// Reset, Config, Optimize, in that order and each broadcast to every
// entry point before the next begins; see Configure. The coordinating
// caller owns that ordering, a sink cannot detect violations. Document
// is orthogonal and may be sent at any time.
//
// The JSON encoding is the tagged-union form {"Reset": []},
// {"Config": {...}}, {"Optimize": []} or {"Document": {...}}.
type TraceControl struct {
	kind ControlKind
	cfg  *TraceConfig
	col  *DocCollector
}

// Reset returns the signal that reverts sinks to their unresolved
// pass-through baseline.
func Reset() TraceControl { return TraceControl{kind: ControlReset} }

// Config returns the signal distributing cfg as the pending
// configuration.
func Config(cfg *TraceConfig) TraceControl {
	return TraceControl{kind: ControlConfig, cfg: cfg}
}

// Optimize returns the signal that resolves pending configuration into
// cached filtering decisions.
func Optimize() TraceControl { return TraceControl{kind: ControlOptimize} }

// Document returns the signal that collects documentation metadata into
// col instead of forwarding live data.
func Document(col *DocCollector) TraceControl {
	return TraceControl{kind: ControlDocument, col: col}
}

// Kind returns which signal this is.
func (c TraceControl) Kind() ControlKind { return c.kind }

// TraceConfig returns the configuration carried by a Config signal, or
// nil.
func (c TraceControl) TraceConfig() *TraceConfig { return c.cfg }

// Collector returns the collector carried by a Document signal, or nil.
func (c TraceControl) Collector() *DocCollector { return c.col }

// MarshalJSON implements json.Marshaler.
func (c TraceControl) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case ControlReset:
		return json.Marshal(map[string][]any{"Reset": {}})
	case ControlConfig:
		return json.Marshal(map[string]*TraceConfig{"Config": c.cfg})
	case ControlOptimize:
		return json.Marshal(map[string][]any{"Optimize": {}})
	case ControlDocument:
		return json.Marshal(map[string]*DocCollector{"Document": c.col})
	default:
		return nil, fmt.Errorf("cannot marshal zero TraceControl")
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *TraceControl) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("trace control must have exactly one tag, got %d", len(tagged))
	}
	for tag, raw := range tagged {
		switch tag {
		case "Reset":
			*c = Reset()
		case "Optimize":
			*c = Optimize()
		case "Config":
			cfg := NewTraceConfig()
			if err := json.Unmarshal(raw, cfg); err != nil {
				return err
			}
			*c = Config(cfg)
		case "Document":
			col := &DocCollector{}
			if err := json.Unmarshal(raw, col); err != nil {
				return err
			}
			*c = Document(col)
		default:
			return fmt.Errorf("unknown trace control tag %q", tag)
		}
	}
	return nil
}

// ControlPoint is an entry point of a sink network that control signals
// can be broadcast to. Every Sink is a ControlPoint.
type ControlPoint interface {
	Apply(ctx context.Context, sig TraceControl) error
}

// Configure runs the three-phase reconfiguration protocol over the
// given entry points: Reset is broadcast to all of them, then
// Config(cfg), then Optimize. Errors from individual points do not stop
// the broadcast; they are combined into the returned error.
//
// Configure is also correct for the initial configuration of fresh
// sinks, where the leading Reset is a no-op.
func Configure(ctx context.Context, cfg *TraceConfig, points ...ControlPoint) error {
	var err error
	for _, sig := range []TraceControl{Reset(), Config(cfg), Optimize()} {
		for _, p := range points {
			err = multierr.Append(err, p.Apply(ctx, sig))
		}
	}
	return err
}

// Prototype is one representative log-site message used in a
// documentation pass: the context it would be emitted under and a
// payload prototype.
type Prototype[A any] struct {
	Context LoggingContext
	Value   A
}

// CollectDocs performs a documentation pass over s: for every
// prototype, a Document signal sharing one collector is sent through
// the sink graph, so each node merges its namespace, severity, privacy,
// detail and backend identity without any live data being forwarded.
// The merged collector is returned.
//
// The collector is confined to this pass; it must not be retained by
// runtime sinks.
func CollectDocs[A any](ctx context.Context, s Sink[A], doc string, protos ...Prototype[A]) (*DocCollector, error) {
	col := &DocCollector{Doc: doc}
	var err error
	for _, p := range protos {
		sig := Document(col)
		err = multierr.Append(err, s.EmitWith(ctx, p.Context, &sig, p.Value))
	}
	return col, err
}
