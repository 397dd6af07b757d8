package surface

import (
	"fmt"
	"strings"
)

// Horizontal is the horizontal chroma phase.
type Horizontal uint8

const (
	HorizontalUnset Horizontal = iota
	HorizontalLeft
	HorizontalCenter
	HorizontalRight
)

// Vertical is the vertical chroma phase.
type Vertical uint8

const (
	VerticalUnset Vertical = iota
	VerticalTop
	VerticalCenter
	VerticalBottom
)

// Siting positions chroma samples relative to luma. The zero value is unset.
type Siting struct {
	H Horizontal
	V Vertical
}

// SitingType is the canonical 0-5 siting index used by the resampling tables.
type SitingType int

const (
	SitingLeftCenter SitingType = iota
	SitingCenterCenter
	SitingLeftTop
	SitingCenterTop
	SitingLeftBottom
	SitingCenterBottom
	SitingTypeCount
)

var (
	horizontalNames = []string{"unset", "left", "center", "right"}
	verticalNames   = []string{"unset", "top", "center", "bottom"}
)

// IsUnset reports whether neither axis has been configured.
func (s Siting) IsUnset() bool {
	return s.H == HorizontalUnset && s.V == VerticalUnset
}

// Type maps a concrete siting onto its canonical index. Sitings that no
// resampling table covers (right-sited, or only one axis set) report false.
func (s Siting) Type() (SitingType, bool) {
	var col int
	switch s.H {
	case HorizontalLeft:
		col = 0
	case HorizontalCenter:
		col = 1
	default:
		return 0, false
	}
	switch s.V {
	case VerticalCenter:
		return SitingType(col), true
	case VerticalTop:
		return SitingType(2 + col), true
	case VerticalBottom:
		return SitingType(4 + col), true
	default:
		return 0, false
	}
}

func (s Siting) String() string {
	if s.IsUnset() {
		return "unset"
	}
	h, v := "unset", "unset"
	if int(s.H) < len(horizontalNames) {
		h = horizontalNames[s.H]
	}
	if int(s.V) < len(verticalNames) {
		v = verticalNames[s.V]
	}
	return h + "-" + v
}

// ParseSiting accepts "unset", an empty string, or "<horizontal>-<vertical>"
// such as "left-center".
func ParseSiting(value string) (Siting, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "unset" {
		return Siting{}, nil
	}
	h, v, ok := strings.Cut(value, "-")
	if !ok {
		return Siting{}, fmt.Errorf("invalid chroma siting %q: want <horizontal>-<vertical>", value)
	}
	var s Siting
	found := false
	for i, name := range horizontalNames {
		if name == h {
			s.H, found = Horizontal(i), true
		}
	}
	if !found {
		return Siting{}, fmt.Errorf("invalid horizontal siting %q", h)
	}
	found = false
	for i, name := range verticalNames {
		if name == v {
			s.V, found = Vertical(i), true
		}
	}
	if !found {
		return Siting{}, fmt.Errorf("invalid vertical siting %q", v)
	}
	return s, nil
}

func (s *Siting) UnmarshalText(text []byte) error {
	parsed, err := ParseSiting(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Siting) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
