package surface

import (
	"fmt"
	"strings"
)

// ColorSpace identifies the colour representation of a surface.
type ColorSpace int

const (
	ColorSpaceNone ColorSpace = iota
	ColorSpaceBT601
	ColorSpaceBT601Full
	ColorSpaceBT709
	ColorSpaceBT709Full
	ColorSpaceBT2020
	ColorSpaceBT2020Full
	ColorSpaceSRGB
	ColorSpaceSTRGB
	ColorSpaceBT2020RGB
	ColorSpaceBT2020STRGB
)

var colorSpaceNames = map[ColorSpace]string{
	ColorSpaceNone:        "none",
	ColorSpaceBT601:       "bt601",
	ColorSpaceBT601Full:   "bt601-full",
	ColorSpaceBT709:       "bt709",
	ColorSpaceBT709Full:   "bt709-full",
	ColorSpaceBT2020:      "bt2020",
	ColorSpaceBT2020Full:  "bt2020-full",
	ColorSpaceSRGB:        "srgb",
	ColorSpaceSTRGB:       "strgb",
	ColorSpaceBT2020RGB:   "bt2020-rgb",
	ColorSpaceBT2020STRGB: "bt2020-strgb",
}

func (c ColorSpace) String() string {
	if name, ok := colorSpaceNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ColorSpace(%d)", int(c))
}

// IsRGB reports whether the space is an RGB space of any gamut.
func (c ColorSpace) IsRGB() bool {
	switch c {
	case ColorSpaceSRGB, ColorSpaceSTRGB, ColorSpaceBT2020RGB, ColorSpaceBT2020STRGB:
		return true
	default:
		return false
	}
}

// IsBT2020 reports whether the space belongs to the wide-gamut family.
func (c ColorSpace) IsBT2020() bool {
	switch c {
	case ColorSpaceBT2020, ColorSpaceBT2020Full, ColorSpaceBT2020RGB, ColorSpaceBT2020STRGB:
		return true
	default:
		return false
	}
}

// ParseColorSpace resolves a colour space name case-insensitively.
func ParseColorSpace(value string) (ColorSpace, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ColorSpaceNone, nil
	}
	for c, name := range colorSpaceNames {
		if name == value {
			return c, nil
		}
	}
	return ColorSpaceNone, fmt.Errorf("unknown color space %q", value)
}

func (c *ColorSpace) UnmarshalText(text []byte) error {
	parsed, err := ParseColorSpace(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ColorSpace) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
