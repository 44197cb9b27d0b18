package tracing

// LoggingContext is the immutable envelope attached to every message
// emitted into a sink: the namespace of the log site, plus optional
// severity, privacy and detail annotations. An absent (nil) field means
// "inherit the resolved or default value"; the Filtered wrapper fills
// absent fields from the resolved policy before forwarding.
//
// The JSON field names are fixed; they are the persisted form consumed
// by external configuration loaders and documentation generators.
type LoggingContext struct {
	Namespace Namespace    `json:"lcContext"`
	Severity  *Severity    `json:"lcSeverity"`
	Privacy   *Privacy     `json:"lcPrivacy"`
	Details   *DetailLevel `json:"lcDetails"`
}

// NewLoggingContext returns a LoggingContext for the given namespace
// with all optional annotations absent.
func NewLoggingContext(ns Namespace) LoggingContext {
	return LoggingContext{Namespace: ns}
}

// WithSeverity returns a copy of the context annotated with the given
// severity.
func (c LoggingContext) WithSeverity(s Severity) LoggingContext {
	c.Severity = &s
	return c
}

// WithPrivacy returns a copy of the context annotated with the given
// privacy.
func (c LoggingContext) WithPrivacy(p Privacy) LoggingContext {
	c.Privacy = &p
	return c
}

// WithDetails returns a copy of the context annotated with the given
// detail level.
func (c LoggingContext) WithDetails(d DetailLevel) LoggingContext {
	c.Details = &d
	return c
}

// EffectiveSeverity returns the annotated severity, or Info when absent.
func (c LoggingContext) EffectiveSeverity() Severity {
	if c.Severity != nil {
		return *c.Severity
	}
	return Info
}

// EffectivePrivacy returns the annotated privacy, or Public when absent.
func (c LoggingContext) EffectivePrivacy() Privacy {
	if c.Privacy != nil {
		return *c.Privacy
	}
	return Public
}

// EffectiveDetails returns the annotated detail level, or DetailRegular
// when absent.
func (c LoggingContext) EffectiveDetails() DetailLevel {
	if c.Details != nil {
		return *c.Details
	}
	return DetailRegular
}
