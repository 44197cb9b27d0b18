package tracing

import "fmt"

// Severity classifies a single trace message, following the syslog
// convention of eight levels.
//
// Severities are totally ordered: Debug < Info < Notice < Warning <
// Error < Critical < Alert < Emergency.
type Severity int8

const (
	Debug Severity = iota
	Info
	Notice
	Warning
	Error
	Critical
	Alert
	Emergency
)

//nolint:gochecknoglobals
var severityNames = [...]string{
	"Debug", "Info", "Notice", "Warning",
	"Error", "Critical", "Alert", "Emergency",
}

// String returns the canonical name of the severity, e.g. "Warning".
func (s Severity) String() string {
	if s < Debug || s > Emergency {
		return fmt.Sprintf("Severity(%d)", int8(s))
	}
	return severityNames[s]
}

// MarshalText implements encoding.TextMarshaler using the canonical name.
func (s Severity) MarshalText() ([]byte, error) {
	if s < Debug || s > Emergency {
		return nil, fmt.Errorf("invalid severity %d", int8(s))
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses a canonical severity name.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

// SeverityFilter is a configuration-time severity threshold: the eight
// severities plus the terminal SilenceFilter, which is ordered above
// Emergency and suppresses everything.
type SeverityFilter int8

const (
	DebugFilter SeverityFilter = iota
	InfoFilter
	NoticeFilter
	WarningFilter
	ErrorFilter
	CriticalFilter
	AlertFilter
	EmergencyFilter
	SilenceFilter
)

//nolint:gochecknoglobals
var severityFilterNames = [...]string{
	"DebugF", "InfoF", "NoticeF", "WarningF",
	"ErrorF", "CriticalF", "AlertF", "EmergencyF", "SilenceF",
}

// Allows reports whether a message of the given severity passes this
// threshold. SilenceFilter allows nothing.
func (f SeverityFilter) Allows(s Severity) bool {
	return int8(s) >= int8(f)
}

// String returns the canonical name of the filter, e.g. "WarningF".
func (f SeverityFilter) String() string {
	if f < DebugFilter || f > SilenceFilter {
		return fmt.Sprintf("SeverityFilter(%d)", int8(f))
	}
	return severityFilterNames[f]
}

// MarshalText implements encoding.TextMarshaler using the canonical name.
func (f SeverityFilter) MarshalText() ([]byte, error) {
	if f < DebugFilter || f > SilenceFilter {
		return nil, fmt.Errorf("invalid severity filter %d", int8(f))
	}
	return []byte(severityFilterNames[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *SeverityFilter) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverityFilter(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseSeverityFilter parses a canonical severity filter name.
func ParseSeverityFilter(name string) (SeverityFilter, error) {
	for i, n := range severityFilterNames {
		if n == name {
			return SeverityFilter(i), nil
		}
	}
	return 0, fmt.Errorf("unknown severity filter %q", name)
}
