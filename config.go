package tracing

import (
	"encoding/json"
	"fmt"
)

type optionKind uint8

const (
	optSeverity optionKind = iota + 1
	optDetail
	optPrivacy
)

// ConfigOption is a single configuration directive attachable to a
// namespace: a severity filter, a detail level or a privacy.
//
// The JSON encoding is the tagged form {"CoSeverity": "WarningF"},
// {"CoDetail": "DBrief"} or {"CoPrivacy": "Public"}.
type ConfigOption struct {
	kind     optionKind
	severity SeverityFilter
	detail   DetailLevel
	privacy  Privacy
}

// SeverityOption returns a directive setting the severity threshold.
func SeverityOption(f SeverityFilter) ConfigOption {
	return ConfigOption{kind: optSeverity, severity: f}
}

// DetailOption returns a directive setting the detail level.
func DetailOption(d DetailLevel) ConfigOption {
	return ConfigOption{kind: optDetail, detail: d}
}

// PrivacyOption returns a directive setting the privacy.
func PrivacyOption(p Privacy) ConfigOption {
	return ConfigOption{kind: optPrivacy, privacy: p}
}

// MarshalJSON implements json.Marshaler.
func (o ConfigOption) MarshalJSON() ([]byte, error) {
	switch o.kind {
	case optSeverity:
		return json.Marshal(map[string]SeverityFilter{"CoSeverity": o.severity})
	case optDetail:
		return json.Marshal(map[string]DetailLevel{"CoDetail": o.detail})
	case optPrivacy:
		return json.Marshal(map[string]Privacy{"CoPrivacy": o.privacy})
	default:
		return nil, fmt.Errorf("cannot marshal zero ConfigOption")
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *ConfigOption) UnmarshalJSON(data []byte) error {
	var tagged map[string]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("config option must have exactly one tag, got %d", len(tagged))
	}
	for tag, value := range tagged {
		switch tag {
		case "CoSeverity":
			f, err := ParseSeverityFilter(value)
			if err != nil {
				return err
			}
			*o = SeverityOption(f)
		case "CoDetail":
			d, err := ParseDetailLevel(value)
			if err != nil {
				return err
			}
			*o = DetailOption(d)
		case "CoPrivacy":
			p, err := ParsePrivacy(value)
			if err != nil {
				return err
			}
			*o = PrivacyOption(p)
		default:
			return fmt.Errorf("unknown config option tag %q", tag)
		}
	}
	return nil
}

// TraceConfig is the sparse per-namespace option table policy is
// resolved from. Keys are dotted namespace paths; "" configures the
// root. The option list is in insertion order, and for a given option
// kind the first entry wins; later entries of the same kind are
// redundant.
//
// A TraceConfig is owned by configuration-time code. Once distributed
// to sinks via the Config control signal it must be treated as
// read-only.
type TraceConfig struct {
	Options map[string][]ConfigOption `json:"tcOptions"`
}

// NewTraceConfig returns an empty configuration, under which every
// namespace resolves to the documented defaults.
func NewTraceConfig() *TraceConfig {
	return &TraceConfig{Options: map[string][]ConfigOption{}}
}

// Set appends options for the given namespace and returns the config
// for chaining.
func (c *TraceConfig) Set(ns Namespace, opts ...ConfigOption) *TraceConfig {
	if c.Options == nil {
		c.Options = map[string][]ConfigOption{}
	}
	key := ns.String()
	c.Options[key] = append(c.Options[key], opts...)
	return c
}

// lookup finds the first option of the wanted kind for exactly ns.
func (c *TraceConfig) lookup(ns Namespace, kind optionKind) (ConfigOption, bool) {
	if c == nil || c.Options == nil {
		return ConfigOption{}, false
	}
	for _, o := range c.Options[ns.String()] {
		if o.kind == kind {
			return o, true
		}
	}
	return ConfigOption{}, false
}

// resolve walks from ns up through its ancestors, including the root
// namespace, and returns the first option of the wanted kind. Most
// specific namespace wins; each option kind resolves independently.
func (c *TraceConfig) resolve(ns Namespace, kind optionKind) (ConfigOption, bool) {
	for n := ns; ; n = n.Parent() {
		if o, ok := c.lookup(n, kind); ok {
			return o, true
		}
		if len(n) == 0 {
			return ConfigOption{}, false
		}
	}
}

// ResolveSeverity returns the effective severity threshold for ns:
// the nearest configured value, or WarningFilter.
func (c *TraceConfig) ResolveSeverity(ns Namespace) SeverityFilter {
	if o, ok := c.resolve(ns, optSeverity); ok {
		return o.severity
	}
	return WarningFilter
}

// ResolveDetail returns the effective detail level for ns: the nearest
// configured value, or DetailRegular.
func (c *TraceConfig) ResolveDetail(ns Namespace) DetailLevel {
	if o, ok := c.resolve(ns, optDetail); ok {
		return o.detail
	}
	return DetailRegular
}

// ResolvePrivacy returns the effective privacy for ns: the nearest
// configured value, or Public.
func (c *TraceConfig) ResolvePrivacy(ns Namespace) Privacy {
	if o, ok := c.resolve(ns, optPrivacy); ok {
		return o.privacy
	}
	return Public
}
