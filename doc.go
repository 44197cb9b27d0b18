/*
Package tracing implements a composable, contextual trace-sink pipeline.

A Sink consumes triples of (LoggingContext, optional TraceControl, payload).
Sinks are plain function values: they compose contravariantly with Remap,
and fan out with Concat, which together with Empty forms a monoid, so any
number of per-component sinks can be unioned into one root sink.

Configuration is namespace-scoped: a TraceConfig maps dotted namespace
paths to severity filters, detail levels and privacy directives, and a
namespace with no entry of its own inherits from its nearest configured
ancestor. The Filtered wrapper turns a resolved TraceConfig into fast-path
filtering decisions via the Reset, Config, Optimize control protocol, and
the Document signal walks a sink graph collecting reference documentation
without forwarding any live data.

The package performs no I/O itself. Concrete backends live in the logsink
and metricsink sub-packages, configuration file loading in configload, and
test helpers in tracetest.
*/
package tracing
