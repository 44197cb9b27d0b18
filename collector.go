package tracing

// DocCollector accumulates, across documentation passes, the metadata
// observed for a log-site prototype: the namespaces, severities,
// privacies and detail levels messages are emitted under, the backends
// they reach, and separately the configured (resolved) severities,
// privacies and detail levels in effect during the pass.
//
// Collectors merge monoidally under field-wise concatenation: list
// fields concatenate without deduplication, duplicates are expected and
// meaningful (frequency of appearance across prototypes). The doc text
// keeps the receiver's value when non-empty, otherwise the argument's.
//
// A collector is created per log-site prototype and owned by the
// documentation pass that created it; it is not synchronized.
//
// The JSON field names are fixed; they are the form the external
// documentation generator consumes.
type DocCollector struct {
	Doc        string        `json:"cDoc"`
	Namespaces []Namespace   `json:"cContext"`
	Severities []Severity    `json:"cSeverity"`
	Privacies  []Privacy     `json:"cPrivacy"`
	Details    []DetailLevel `json:"cDetails"`
	Backends   []Backend     `json:"cBackends"`

	ConfiguredSeverities []SeverityFilter `json:"ccSeverity"`
	ConfiguredPrivacies  []Privacy        `json:"ccPrivacy"`
	ConfiguredDetails    []DetailLevel    `json:"ccDetails"`
}

// Merge appends other's list fields onto c, keeping c's doc text if
// non-empty. other is not modified.
func (c *DocCollector) Merge(other *DocCollector) {
	if other == nil {
		return
	}
	if c.Doc == "" {
		c.Doc = other.Doc
	}
	c.Namespaces = append(c.Namespaces, other.Namespaces...)
	c.Severities = append(c.Severities, other.Severities...)
	c.Privacies = append(c.Privacies, other.Privacies...)
	c.Details = append(c.Details, other.Details...)
	c.Backends = append(c.Backends, other.Backends...)
	c.ConfiguredSeverities = append(c.ConfiguredSeverities, other.ConfiguredSeverities...)
	c.ConfiguredPrivacies = append(c.ConfiguredPrivacies, other.ConfiguredPrivacies...)
	c.ConfiguredDetails = append(c.ConfiguredDetails, other.ConfiguredDetails...)
}

// AddBackend records that the documented message reaches the given
// backend. Backend sinks call this when handling a Document signal.
func (c *DocCollector) AddBackend(b Backend) {
	c.Backends = append(c.Backends, b)
}

// addObservation records one prototype observation: the context the
// message is emitted under and the policy resolved for its namespace.
func (c *DocCollector) addObservation(lc LoggingContext, resolved policy) {
	c.Namespaces = append(c.Namespaces, lc.Namespace)
	c.Severities = append(c.Severities, lc.EffectiveSeverity())
	c.Privacies = append(c.Privacies, lc.EffectivePrivacy())
	c.Details = append(c.Details, lc.EffectiveDetails())
	c.ConfiguredSeverities = append(c.ConfiguredSeverities, resolved.severity)
	c.ConfiguredPrivacies = append(c.ConfiguredPrivacies, resolved.privacy)
	c.ConfiguredDetails = append(c.ConfiguredDetails, resolved.detail)
}
