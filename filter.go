package tracing

import (
	"context"
	"sync"
)

// policy is the resolved effective configuration for one namespace.
type policy struct {
	severity SeverityFilter
	detail   DetailLevel
	privacy  Privacy
}

// defaultPolicy matches what an empty TraceConfig resolves to.
func defaultPolicy() policy {
	return policy{severity: WarningFilter, detail: DetailRegular, privacy: Public}
}

// policyNode is the mutable state behind a Filtered sink. Its mutex
// serializes this instance's mutations only; distinct Filtered sinks
// reached by different callers act independently.
type policyNode struct {
	mu        sync.Mutex
	pending   *TraceConfig
	optimized bool
	resolved  map[string]policy
	seen      map[string]Namespace
}

func (n *policyNode) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = nil
	n.optimized = false
	n.resolved = nil
}

func (n *policyNode) configure(cfg *TraceConfig) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = cfg
}

func (n *policyNode) optimize() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.optimized = true
	n.resolved = make(map[string]policy, len(n.seen))
	for key, ns := range n.seen {
		n.resolved[key] = n.resolvePolicy(ns)
	}
}

// resolvePolicy computes the effective policy for ns from the pending
// configuration. A nil pending config yields the documented defaults.
// Callers hold n.mu.
func (n *policyNode) resolvePolicy(ns Namespace) policy {
	if n.pending == nil {
		return defaultPolicy()
	}
	return policy{
		severity: n.pending.ResolveSeverity(ns),
		detail:   n.pending.ResolveDetail(ns),
		privacy:  n.pending.ResolvePrivacy(ns),
	}
}

// admit decides whether a message may be forwarded and completes its
// context from the resolved policy. Unoptimized nodes pass everything
// through unchanged.
func (n *policyNode) admit(lc LoggingContext) (LoggingContext, bool) {
	n.mu.Lock()
	key := lc.Namespace.String()
	if !n.optimized {
		if n.seen == nil {
			n.seen = map[string]Namespace{}
		}
		if _, ok := n.seen[key]; !ok {
			n.seen[key] = lc.Namespace
		}
		n.mu.Unlock()
		return lc, true
	}
	pol, ok := n.resolved[key]
	if !ok {
		pol = n.resolvePolicy(lc.Namespace)
		n.resolved[key] = pol
	}
	n.mu.Unlock()

	if !pol.severity.Allows(lc.EffectiveSeverity()) {
		return lc, false
	}
	if lc.Severity == nil {
		lc = lc.WithSeverity(Info)
	}
	if lc.Privacy == nil {
		lc = lc.WithPrivacy(pol.privacy)
	}
	if lc.Details == nil {
		lc = lc.WithDetails(pol.detail)
	}
	return lc, true
}

// document merges one prototype observation into the collector, using
// whatever configuration is currently pending for the resolved values.
func (n *policyNode) document(lc LoggingContext, col *DocCollector) {
	if col == nil {
		return
	}
	n.mu.Lock()
	pol := n.resolvePolicy(lc.Namespace)
	n.mu.Unlock()
	col.addObservation(lc, pol)
}

// Filtered wraps next in the stateful policy node implementing the
// Reset, Config, Optimize control protocol and the namespace-scoped
// filtering it resolves:
//
//   - Before Optimize the node is a pass-through baseline; every
//     message is forwarded unchanged.
//   - After Optimize, a message is forwarded only when its effective
//     severity passes the threshold resolved for its namespace
//     (SilenceFilter rejects everything), and absent context fields are
//     filled from the resolved policy. Resolutions are cached; Optimize
//     precomputes the cache for every namespace seen so far and later
//     namespaces are resolved lazily on first use.
//   - Reset drops the cache and the pending configuration. Skipping
//     Reset when reconfiguring risks stale cached decisions, which is
//     why Configure always sends it.
//   - Document merges this node's view of the message into the supplied
//     collector and forwards the signal, so a full graph walk needs no
//     live data.
//
// All control signals are forwarded downstream after being acted on.
func Filtered[A any](next Sink[A]) Sink[A] {
	node := &policyNode{}
	return New(func(ctx context.Context, lc LoggingContext, sig *TraceControl, v A) error {
		if sig != nil {
			switch sig.Kind() {
			case ControlReset:
				node.reset()
			case ControlConfig:
				node.configure(sig.TraceConfig())
			case ControlOptimize:
				node.optimize()
			case ControlDocument:
				node.document(lc, sig.Collector())
			}
			return next.EmitWith(ctx, lc, sig, v)
		}
		lc, forward := node.admit(lc)
		if !forward {
			return nil
		}
		return next.EmitWith(ctx, lc, nil, v)
	})
}
