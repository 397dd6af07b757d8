package calc

import "framepass/internal/surface"

// Offsets is a horizontal and vertical chroma phase offset pair.
type Offsets struct {
	H uint32 `json:"h"`
	V uint32 `json:"v"`
}

type resampleEntry struct {
	offsets Offsets
	valid   bool
}

func entry(h, v uint32) resampleEntry {
	return resampleEntry{offsets: Offsets{H: h, V: v}, valid: true}
}

var bypass = resampleEntry{}

// upSamplingTable is indexed [source class][deinterlace][siting type]. Source
// class 0 is 4:2:0 and 1 is 4:2:2.
var upSamplingTable = [2][2][surface.SitingTypeCount]resampleEntry{
	{ // 4:2:0
		{entry(0, 1), entry(1, 1), entry(0, 0), entry(1, 0), entry(0, 2), entry(1, 2)}, // progressive
		{entry(0, 2), entry(1, 2), entry(0, 0), entry(1, 0), entry(0, 4), entry(1, 4)}, // deinterlaced
	},
	{ // 4:2:2
		{bypass, bypass, entry(0, 0), entry(1, 0), bypass, bypass},
		{bypass, bypass, entry(0, 0), entry(1, 0), bypass, bypass},
	},
}

// downSamplingTable is indexed [destination class][siting type].
var downSamplingTable = [2][surface.SitingTypeCount]resampleEntry{
	{entry(0, 1), entry(1, 1), entry(0, 0), entry(1, 0), entry(0, 2), entry(1, 2)}, // 4:2:0
	{bypass, bypass, entry(0, 0), entry(1, 0), bypass, bypass},                     // 4:2:2
}

func resampleClass(pack surface.ColorPack) (int, bool) {
	switch pack {
	case surface.ColorPack420:
		return 0, true
	case surface.ColorPack422:
		return 1, true
	default:
		return 0, false
	}
}

// LookupUpSampling returns the up-sampling offsets for a source siting, or
// false when up-sampling is bypassed for that combination.
func LookupUpSampling(t surface.SitingType, deinterlace bool, src surface.ColorPack) (Offsets, bool) {
	class, ok := resampleClass(src)
	if !ok || t < 0 || t >= surface.SitingTypeCount {
		return Offsets{}, false
	}
	di := 0
	if deinterlace {
		di = 1
	}
	e := upSamplingTable[class][di][t]
	return e.offsets, e.valid
}

// LookupDownSampling returns the down-sampling offsets for a destination
// siting, or false when down-sampling is bypassed.
func LookupDownSampling(t surface.SitingType, dst surface.ColorPack) (Offsets, bool) {
	class, ok := resampleClass(dst)
	if !ok || t < 0 || t >= surface.SitingTypeCount {
		return Offsets{}, false
	}
	e := downSamplingTable[class][t]
	return e.offsets, e.valid
}

// DownSamplingCoef is the scaler's chroma down-sampling phase in eighths of a
// pixel.
type DownSamplingCoef uint32

const (
	Coef0Over8 DownSamplingCoef = 0
	Coef4Over8 DownSamplingCoef = 4
	Coef8Over8 DownSamplingCoef = 8
)

func sfcHorizontalCoef(h surface.Horizontal) DownSamplingCoef {
	switch h {
	case surface.HorizontalCenter:
		return Coef4Over8
	case surface.HorizontalRight:
		return Coef8Over8
	default:
		return Coef0Over8
	}
}

func sfcVerticalCoef(v surface.Vertical) DownSamplingCoef {
	switch v {
	case surface.VerticalCenter:
		return Coef4Over8
	case surface.VerticalBottom:
		return Coef8Over8
	default:
		return Coef0Over8
	}
}
