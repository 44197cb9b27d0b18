// Package metricsink provides the metrics backend: a sink that feeds
// the metrics view of payloads into a Prometheus registry.
package metricsink

import (
	"context"

	"github.com/luxas/tracing"
	"github.com/prometheus/client_golang/prometheus"
)

// New returns a sink exporting payload metrics through reg, identifying
// itself in documentation passes as the metrics backend named name.
//
// All metrics of a sink share one gauge vector named name, with the
// "metric" label carrying the metric's own label, or the namespace the
// message was emitted under for unlabeled metrics. Payloads without a
// metrics view are ignored, as are all control signals except Document.
func New[A any](reg prometheus.Registerer, name string) (tracing.Sink[A], error) {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: "Trace metrics exported by the " + name + " backend.",
	}, []string{"metric"})
	if err := reg.Register(vec); err != nil {
		return tracing.Sink[A]{}, err
	}

	backend := tracing.MetricsBackend(name)
	return tracing.New(func(_ context.Context, lc tracing.LoggingContext, sig *tracing.TraceControl, v A) error {
		if sig != nil {
			if sig.Kind() == tracing.ControlDocument && sig.Collector() != nil {
				sig.Collector().AddBackend(backend)
			}
			return nil
		}
		for _, m := range tracing.MetricsView(v) {
			label, ok := m.Label()
			if !ok {
				label = lc.Namespace.String()
			}
			vec.WithLabelValues(label).Set(m.Value())
		}
		return nil
	}), nil
}
