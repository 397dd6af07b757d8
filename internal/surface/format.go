package surface

import (
	"fmt"
	"sort"
	"strings"
)

// Format identifies a surface pixel format.
type Format int

const (
	FormatNone Format = iota
	FormatNV12
	FormatNV21
	FormatYV12
	FormatI420
	FormatP010
	FormatP016
	FormatYUY2
	FormatUYVY
	FormatY210
	FormatY216
	FormatAYUV
	FormatY410
	FormatY416
	FormatY8
	FormatA8R8G8B8
	FormatA8B8G8R8
	FormatX8R8G8B8
	FormatR10G10B10A2
	FormatB10G10R10A2
	FormatA16B16G16R16
	FormatA16B16G16R16F
	FormatA16R16G16B16F
	FormatBayerRGGB
)

// ColorPack is the chroma subsampling class of a format.
type ColorPack int

const (
	ColorPackUnknown ColorPack = iota
	ColorPack400
	ColorPack420
	ColorPack422
	ColorPack444
)

func (p ColorPack) String() string {
	switch p {
	case ColorPack400:
		return "4:0:0"
	case ColorPack420:
		return "4:2:0"
	case ColorPack422:
		return "4:2:2"
	case ColorPack444:
		return "4:4:4"
	default:
		return "unknown"
	}
}

// Finer reports whether p carries strictly more chroma samples than other
// within the 4:2:0 < 4:2:2 < 4:4:4 ordering. Classes outside that ordering
// never compare finer.
func (p ColorPack) Finer(other ColorPack) bool {
	rank := func(c ColorPack) int {
		switch c {
		case ColorPack420:
			return 1
		case ColorPack422:
			return 2
		case ColorPack444:
			return 3
		default:
			return 0
		}
	}
	a, b := rank(p), rank(other)
	return a != 0 && b != 0 && a > b
}

// VeboxEntry is the enhancement-engine table entry for a format.
type VeboxEntry struct {
	DenoiseSupported bool
	// HorizontalAlign and VerticalAlign are the base alignment units in
	// pixels before any feature-specific rounding.
	HorizontalAlign uint32
	VerticalAlign   uint32
}

type descriptor struct {
	name      string
	bitDepth  uint32
	pack      ColorPack
	alpha     bool
	rgb       bool
	rgb64F    bool
	planar420 bool
	vebox     VeboxEntry
}

var descriptors = map[Format]descriptor{
	FormatNone:          {name: "none"},
	FormatNV12:          {name: "NV12", bitDepth: 8, pack: ColorPack420, planar420: true, vebox: VeboxEntry{true, 2, 2}},
	FormatNV21:          {name: "NV21", bitDepth: 8, pack: ColorPack420, vebox: VeboxEntry{false, 2, 2}},
	FormatYV12:          {name: "YV12", bitDepth: 8, pack: ColorPack420, vebox: VeboxEntry{false, 2, 2}},
	FormatI420:          {name: "I420", bitDepth: 8, pack: ColorPack420, vebox: VeboxEntry{false, 2, 2}},
	FormatP010:          {name: "P010", bitDepth: 10, pack: ColorPack420, planar420: true, vebox: VeboxEntry{true, 2, 2}},
	FormatP016:          {name: "P016", bitDepth: 16, pack: ColorPack420, planar420: true, vebox: VeboxEntry{true, 2, 2}},
	FormatYUY2:          {name: "YUY2", bitDepth: 8, pack: ColorPack422, vebox: VeboxEntry{true, 2, 1}},
	FormatUYVY:          {name: "UYVY", bitDepth: 8, pack: ColorPack422, vebox: VeboxEntry{true, 2, 1}},
	FormatY210:          {name: "Y210", bitDepth: 10, pack: ColorPack422, vebox: VeboxEntry{true, 2, 1}},
	FormatY216:          {name: "Y216", bitDepth: 16, pack: ColorPack422, vebox: VeboxEntry{true, 2, 1}},
	FormatAYUV:          {name: "AYUV", bitDepth: 8, pack: ColorPack444, alpha: true, vebox: VeboxEntry{true, 1, 1}},
	FormatY410:          {name: "Y410", bitDepth: 10, pack: ColorPack444, alpha: true, vebox: VeboxEntry{true, 1, 1}},
	FormatY416:          {name: "Y416", bitDepth: 16, pack: ColorPack444, alpha: true, vebox: VeboxEntry{true, 1, 1}},
	FormatY8:            {name: "Y8", bitDepth: 8, pack: ColorPack400, vebox: VeboxEntry{true, 1, 1}},
	FormatA8R8G8B8:      {name: "A8R8G8B8", bitDepth: 8, pack: ColorPack444, alpha: true, rgb: true, vebox: VeboxEntry{false, 1, 1}},
	FormatA8B8G8R8:      {name: "A8B8G8R8", bitDepth: 8, pack: ColorPack444, alpha: true, rgb: true, vebox: VeboxEntry{false, 1, 1}},
	FormatX8R8G8B8:      {name: "X8R8G8B8", bitDepth: 8, pack: ColorPack444, rgb: true, vebox: VeboxEntry{false, 1, 1}},
	FormatR10G10B10A2:   {name: "R10G10B10A2", bitDepth: 10, pack: ColorPack444, alpha: true, rgb: true, vebox: VeboxEntry{false, 1, 1}},
	FormatB10G10R10A2:   {name: "B10G10R10A2", bitDepth: 10, pack: ColorPack444, alpha: true, rgb: true, vebox: VeboxEntry{false, 1, 1}},
	FormatA16B16G16R16:  {name: "A16B16G16R16", bitDepth: 16, pack: ColorPack444, alpha: true, rgb: true, vebox: VeboxEntry{false, 1, 1}},
	FormatA16B16G16R16F: {name: "A16B16G16R16F", bitDepth: 16, pack: ColorPack444, alpha: true, rgb: true, rgb64F: true, vebox: VeboxEntry{false, 1, 1}},
	FormatA16R16G16B16F: {name: "A16R16G16B16F", bitDepth: 16, pack: ColorPack444, alpha: true, rgb: true, rgb64F: true, vebox: VeboxEntry{false, 1, 1}},
	// Raw sensor data has no defined depth until demosaic picks one.
	FormatBayerRGGB: {name: "BayerRGGB", pack: ColorPackUnknown, vebox: VeboxEntry{false, 2, 2}},
}

// Formats returns every known format except FormatNone in declaration order.
func Formats() []Format {
	out := make([]Format, 0, len(descriptors))
	for f := range descriptors {
		if f != FormatNone {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (f Format) String() string {
	if d, ok := descriptors[f]; ok {
		return d.name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// BitDepth returns the per-channel bit depth, or zero when it is unknown.
func (f Format) BitDepth() uint32 { return descriptors[f].bitDepth }

// ColorPack returns the chroma subsampling class.
func (f Format) ColorPack() ColorPack { return descriptors[f].pack }

// HasAlpha reports whether the format carries an alpha channel.
func (f Format) HasAlpha() bool { return descriptors[f].alpha }

// IsRGB reports whether the format stores RGB samples.
func (f Format) IsRGB() bool { return descriptors[f].rgb }

// IsRGB64Float reports whether the format is a 64-bit half-float RGB layout.
func (f Format) IsRGB64Float() bool { return descriptors[f].rgb64F }

// IsPlanar420 reports whether the format is a 4:2:0 semi-planar layout whose
// enhancement statistics are gathered per four rows.
func (f Format) IsPlanar420() bool { return descriptors[f].planar420 }

// Vebox returns the enhancement-engine entry for the format.
func (f Format) Vebox() VeboxEntry { return descriptors[f].vebox }

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(value string) (Format, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return FormatNone, nil
	}
	for f, d := range descriptors {
		if strings.EqualFold(d.name, value) {
			return f, nil
		}
	}
	return FormatNone, fmt.Errorf("unknown pixel format %q", value)
}

func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
