package calc

import (
	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/surface"
)

// ChromaUpSamplingNeeded reports whether the destination class is strictly
// finer than the source class.
func ChromaUpSamplingNeeded(src, dst surface.ColorPack) bool {
	return dst.Finer(src)
}

// DitheringNeeded reports whether converting in to out loses bit depth. An
// unknown depth on either side never requests dithering.
func DitheringNeeded(in, out surface.Format) bool {
	inDepth, outDepth := in.BitDepth(), out.BitDepth()
	if inDepth == 0 || outDepth == 0 {
		return false
	}
	return inDepth > outDepth
}

// NormalizeSiting resolves a siting against the subsampling class of its
// format: unset becomes left-center, 4:2:2 is forced to top, and 4:4:4 to
// left-top. 4:2:0 keeps the configured siting.
func NormalizeSiting(s surface.Siting, pack surface.ColorPack) surface.Siting {
	if s.IsUnset() {
		s = surface.Siting{H: surface.HorizontalLeft, V: surface.VerticalCenter}
	}
	switch pack {
	case surface.ColorPack422:
		s.V = surface.VerticalTop
	case surface.ColorPack444:
		s = surface.Siting{H: surface.HorizontalLeft, V: surface.VerticalTop}
	}
	return s
}

// SfcInputFormat is the format the scaler actually receives once the
// enhancement block has run ahead of it.
func SfcInputFormat(caps feature.ExecuteCaps, input surface.Format, outputSpace surface.ColorSpace) surface.Format {
	switch {
	case caps.Lut3DOutput:
		if outputSpace.IsBT2020() {
			return surface.FormatR10G10B10A2
		}
		return surface.FormatA8B8G8R8
	case caps.IECP && caps.CGC && caps.BT2020ToRGB:
		return surface.FormatA8B8G8R8
	case caps.IECP:
		return surface.FormatAYUV
	case caps.Deinterlace:
		return surface.FormatYUY2
	default:
		return input
	}
}

// SfcInputColorSpace is the colour space the scaler sees after upstream
// gamut and LUT processing.
func SfcInputColorSpace(caps feature.ExecuteCaps, input, output surface.ColorSpace, outputFormat surface.Format) surface.ColorSpace {
	if caps.Lut3DOutput {
		if outputFormat.IsRGB64Float() || output.IsBT2020() {
			return surface.ColorSpaceBT2020RGB
		}
		return surface.ColorSpaceSRGB
	}
	if caps.IECP && caps.CGC && caps.BT2020ToRGB {
		return surface.ColorSpaceSRGB
	}
	if caps.Demosaic {
		return DemosaicOutputColorSpace(output)
	}
	return input
}

// DemosaicOutputColorSpace is the RGB space demosaic produces for a target.
func DemosaicOutputColorSpace(output surface.ColorSpace) surface.ColorSpace {
	if output.IsBT2020() {
		return surface.ColorSpaceBT2020RGB
	}
	return surface.ColorSpaceSRGB
}

// BackEndCscNeededForAlphaFill reports whether the back-end colour stage must
// run to fill alpha even when input and output spaces match.
func BackEndCscNeededForAlphaFill(in, out surface.Format, alpha *filter.AlphaParams) bool {
	if alpha == nil || alpha.Mode != filter.AlphaFillBackground {
		return false
	}
	return !in.HasAlpha() && out.HasAlpha()
}

// UpSamplingConsidered reports whether the enhancement block runs chroma
// up-sampling at all for this pass.
func UpSamplingConsidered(caps feature.ExecuteCaps, cscEnabled bool) bool {
	return caps.IECP || cscEnabled || (caps.Lut3DOutput && !caps.HDR3DLut)
}

// DownSamplingConsidered reports whether the enhancement block runs chroma
// down-sampling for this pass.
func DownSamplingConsidered(caps feature.ExecuteCaps, output surface.Format) bool {
	if caps.Deinterlace && (output != surface.FormatYUY2 || caps.IECP) {
		return true
	}
	return caps.Vebox && !caps.Sfc && !caps.ForceCscToRender
}
