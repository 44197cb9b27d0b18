// Package logsink provides the structured-log backend: a sink that
// renders payloads through the formatting contract and writes them to a
// zap logger.
package logsink

import (
	"context"
	"sort"

	"github.com/luxas/tracing"
	"github.com/luxas/tracing/zaplog"
	"go.uber.org/zap"
)

// New returns a sink writing to log, identifying itself in
// documentation passes as the structured-log backend named name.
//
// For every data message, the payload's machine view is rendered at the
// message's effective detail level and attached as fields, together
// with the namespace and the full severity; the log line's message text
// is the payload's human view, falling back to the namespace when the
// payload has none. Severities map onto zap levels via zaplog.Level.
//
// Control signals are not forwarded anywhere; a Document signal records
// the backend identity in the collector and, like the other signals,
// produces no output.
func New[A any](log *zap.Logger, name string) tracing.Sink[A] {
	backend := tracing.LogBackend(name)
	return tracing.New(func(_ context.Context, lc tracing.LoggingContext, sig *tracing.TraceControl, v A) error {
		if sig != nil {
			if sig.Kind() == tracing.ControlDocument && sig.Collector() != nil {
				sig.Collector().AddBackend(backend)
			}
			return nil
		}

		sev := lc.EffectiveSeverity()
		ce := log.Check(zaplog.Level(sev), message(lc, v))
		if ce == nil {
			return nil
		}

		machine := tracing.MachineView(v, lc.EffectiveDetails())
		fields := make([]zap.Field, 0, len(machine)+2)
		fields = append(fields,
			zap.String("ns", lc.Namespace.String()),
			zap.Stringer("severity", sev),
		)
		// Deterministic field order, independent of map iteration.
		keys := make([]string, 0, len(machine))
		for k := range machine {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fields = append(fields, zap.Any(k, machine[k]))
		}
		ce.Write(fields...)
		return nil
	})
}

func message[A any](lc tracing.LoggingContext, v A) string {
	if msg := tracing.HumanView(v); msg != "" {
		return msg
	}
	return lc.Namespace.String()
}
