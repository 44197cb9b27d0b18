package tracing

import "fmt"

// DetailLevel controls how much of a payload's machine-readable view is
// emitted. Levels are totally ordered: DetailBrief < DetailRegular <
// DetailDetailed. A view rendered at a lower level must be a strict
// reduction of the view rendered at a higher level, never contradictory
// data.
//
// The default level, used when neither the message context nor the
// configuration specifies one, is DetailRegular.
type DetailLevel int8

const (
	DetailBrief DetailLevel = iota
	DetailRegular
	DetailDetailed
)

//nolint:gochecknoglobals
var detailNames = [...]string{"DBrief", "DRegular", "DDetailed"}

// String returns the canonical name of the level, e.g. "DRegular".
func (d DetailLevel) String() string {
	if d < DetailBrief || d > DetailDetailed {
		return fmt.Sprintf("DetailLevel(%d)", int8(d))
	}
	return detailNames[d]
}

// MarshalText implements encoding.TextMarshaler using the canonical name.
func (d DetailLevel) MarshalText() ([]byte, error) {
	if d < DetailBrief || d > DetailDetailed {
		return nil, fmt.Errorf("invalid detail level %d", int8(d))
	}
	return []byte(detailNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DetailLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseDetailLevel(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDetailLevel parses a canonical detail level name.
func ParseDetailLevel(name string) (DetailLevel, error) {
	for i, n := range detailNames {
		if n == name {
			return DetailLevel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown detail level %q", name)
}
