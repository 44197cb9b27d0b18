package tracing

import "fmt"

// Privacy governs whether a backend is permitted to forward a value.
// There is no ordering between the two values beyond equality; which
// privacy a given backend accepts is the backend's policy, see
// PrivacyGate.
type Privacy int8

const (
	Public Privacy = iota
	Confidential
)

//nolint:gochecknoglobals
var privacyNames = [...]string{"Public", "Confidential"}

// String returns the canonical name of the privacy, e.g. "Public".
func (p Privacy) String() string {
	if p < Public || p > Confidential {
		return fmt.Sprintf("Privacy(%d)", int8(p))
	}
	return privacyNames[p]
}

// MarshalText implements encoding.TextMarshaler using the canonical name.
func (p Privacy) MarshalText() ([]byte, error) {
	if p < Public || p > Confidential {
		return nil, fmt.Errorf("invalid privacy %d", int8(p))
	}
	return []byte(privacyNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Privacy) UnmarshalText(text []byte) error {
	parsed, err := ParsePrivacy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePrivacy parses a canonical privacy name.
func ParsePrivacy(name string) (Privacy, error) {
	for i, n := range privacyNames {
		if n == name {
			return Privacy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown privacy %q", name)
}
