package tracing

import (
	"context"

	"go.uber.org/multierr"
)

// Sink is a consumer of (LoggingContext, optional TraceControl, payload)
// triples. It is represented by a single emit closure, so custom sinks
// are cheap to construct and composition never needs to know a sink's
// internals.
//
// Control signals travel in-band through the same closure as data: a
// non-nil signal instructs the sink chain (see TraceControl) and the
// payload argument carries no meaning for that call.
//
// The zero value is the identity sink that discards everything.
//
// A Sink makes no assumption about the surrounding execution model;
// emission is delegated entirely to the closure, and stateful wrappers
// such as Filtered serialize their own internal mutations.
type Sink[A any] struct {
	emit func(ctx context.Context, lc LoggingContext, sig *TraceControl, v A) error
}

// New constructs a Sink from an emit closure. The closure is invoked
// with sig == nil for data and a non-nil sig for control signals.
func New[A any](emit func(ctx context.Context, lc LoggingContext, sig *TraceControl, v A) error) Sink[A] {
	return Sink[A]{emit: emit}
}

// Empty returns the identity sink: it discards every triple and is the
// neutral element of Concat.
func Empty[A any]() Sink[A] { return Sink[A]{} }

// Emit feeds a data payload with its context into the sink.
func (s Sink[A]) Emit(ctx context.Context, lc LoggingContext, v A) error {
	return s.EmitWith(ctx, lc, nil, v)
}

// EmitWith is the raw emission entry point, exposing the in-band control
// slot. Most callers want Emit or Apply instead.
func (s Sink[A]) EmitWith(ctx context.Context, lc LoggingContext, sig *TraceControl, v A) error {
	if s.emit == nil {
		return nil
	}
	return s.emit(ctx, lc, sig, v)
}

// Apply broadcasts a control signal into the sink with an empty
// context and no payload.
func (s Sink[A]) Apply(ctx context.Context, sig TraceControl) error {
	var zero A
	return s.EmitWith(ctx, LoggingContext{}, &sig, zero)
}

// Remap adapts a sink over payload type A into a sink over payload type
// B, given a function from B to A. This is how a general-purpose sink is
// attached to a more specific payload type without touching the sink's
// internals.
//
// The context and any control signal pass through untouched; f is never
// invoked for control signals.
func Remap[B, A any](s Sink[A], f func(B) A) Sink[B] {
	return New(func(ctx context.Context, lc LoggingContext, sig *TraceControl, v B) error {
		if sig != nil {
			var zero A
			return s.EmitWith(ctx, lc, sig, zero)
		}
		return s.EmitWith(ctx, lc, nil, f(v))
	})
}

// Concat fans out to the given sinks in order: every incoming triple is
// forwarded to each sink, first to last. A failing branch does not
// prevent later branches from receiving the triple; branch errors are
// combined into the returned error.
//
// Concat is associative and Empty is its identity, so sinks form a
// monoid under it and can be unioned freely without special-casing
// arity.
func Concat[A any](sinks ...Sink[A]) Sink[A] {
	switch len(sinks) {
	case 0:
		return Empty[A]()
	case 1:
		return sinks[0]
	}
	ss := make([]Sink[A], len(sinks))
	copy(ss, sinks)
	return New(func(ctx context.Context, lc LoggingContext, sig *TraceControl, v A) error {
		var err error
		for _, s := range ss {
			err = multierr.Append(err, s.EmitWith(ctx, lc, sig, v))
		}
		return err
	})
}

// PrivacyGate wraps a sink with a backend-side privacy policy: data is
// forwarded only when allow accepts the message's effective privacy.
// Control signals always pass through.
func PrivacyGate[A any](next Sink[A], allow func(Privacy) bool) Sink[A] {
	return New(func(ctx context.Context, lc LoggingContext, sig *TraceControl, v A) error {
		if sig == nil && !allow(lc.EffectivePrivacy()) {
			return nil
		}
		return next.EmitWith(ctx, lc, sig, v)
	})
}
