// Package tracetest provides sinks for verifying trace pipelines in
// tests: a Recorder capturing every triple in order, and a Failing sink
// for exercising fan-out error behavior.
package tracetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/luxas/tracing"
	yaml "gopkg.in/yaml.v2"
)

// Entry is one captured triple. Control is the control signal name
// ("Reset", "Config", "Optimize", "Document"), or the empty string for
// data.
type Entry[A any] struct {
	Context tracing.LoggingContext
	Control string
	Value   A
}

// Recorder captures everything emitted into its Sink, in emission
// order. It is safe for concurrent use.
type Recorder[A any] struct {
	mu      sync.Mutex
	entries []Entry[A]
}

// New returns an empty Recorder.
func New[A any]() *Recorder[A] { return &Recorder[A]{} }

// Sink returns a sink appending every incoming triple to the recorder.
func (r *Recorder[A]) Sink() tracing.Sink[A] {
	return tracing.New(func(_ context.Context, lc tracing.LoggingContext, sig *tracing.TraceControl, v A) error {
		e := Entry[A]{Context: lc, Value: v}
		if sig != nil {
			e.Control = sig.Kind().String()
		}
		r.mu.Lock()
		r.entries = append(r.entries, e)
		r.mu.Unlock()
		return nil
	})
}

// Entries returns a copy of everything captured so far.
func (r *Recorder[A]) Entries() []Entry[A] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry[A], len(r.entries))
	copy(out, r.entries)
	return out
}

// Values returns the data payloads captured so far, skipping control
// signals.
func (r *Recorder[A]) Values() []A {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []A
	for _, e := range r.entries {
		if e.Control == "" {
			out = append(out, e.Value)
		}
	}
	return out
}

// Clear drops everything captured so far.
func (r *Recorder[A]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// snapshotEntry is the YAML rendering of an Entry.
type snapshotEntry struct {
	Namespace string `yaml:"namespace"`
	Severity  string `yaml:"severity,omitempty"`
	Privacy   string `yaml:"privacy,omitempty"`
	Details   string `yaml:"details,omitempty"`
	Control   string `yaml:"control,omitempty"`
	Value     string `yaml:"value,omitempty"`
}

// Snapshot renders the captured entries as YAML, for golden-file
// comparisons. Optional context annotations render only when present,
// and payloads render through fmt.
func (r *Recorder[A]) Snapshot() ([]byte, error) {
	entries := r.Entries()
	out := make([]snapshotEntry, 0, len(entries))
	for _, e := range entries {
		se := snapshotEntry{
			Namespace: e.Context.Namespace.String(),
			Control:   e.Control,
		}
		if e.Context.Severity != nil {
			se.Severity = e.Context.Severity.String()
		}
		if e.Context.Privacy != nil {
			se.Privacy = e.Context.Privacy.String()
		}
		if e.Context.Details != nil {
			se.Details = e.Context.Details.String()
		}
		if e.Control == "" {
			se.Value = fmt.Sprintf("%v", e.Value)
		}
		out = append(out, se)
	}
	return yaml.Marshal(out)
}

// Failing returns a sink that rejects every data payload with err,
// while accepting control signals. It exercises the contract that a
// failing fan-out branch must not starve its siblings.
func Failing[A any](err error) tracing.Sink[A] {
	return tracing.New(func(_ context.Context, _ tracing.LoggingContext, sig *tracing.TraceControl, _ A) error {
		if sig != nil {
			return nil
		}
		return err
	})
}
