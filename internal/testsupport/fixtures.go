package testsupport

import (
	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/surface"
)

// CscNode returns a colour conversion between two formats with BT.601 in and
// BT.709 out.
func CscNode(t feature.Type, in, out surface.Format) *filter.Node {
	return filter.NewCsc(t, filter.CscParams{
		InputFormat:  in,
		OutputFormat: out,
		Input:        filter.ColorDesc{ColorSpace: surface.ColorSpaceBT601},
		Output:       filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
	})
}

// DenoiseNode returns an enabled luma and chroma denoise request.
func DenoiseNode(t feature.Type, format surface.Format, height uint32, stage filter.DenoiseStage) *filter.Node {
	return filter.NewDenoise(t, filter.DenoiseParams{
		Format:  format,
		Height:  height,
		Enabled: true,
		Luma:    true,
		Chroma:  true,
		Stage:   stage,
	})
}

// AdaptiveDenoise is the generic NV12 adaptive denoise used by the
// estimate-then-update scenarios.
func AdaptiveDenoise(height uint32) *filter.Node {
	n := DenoiseNode(feature.GenericDenoise, surface.FormatNV12, height, filter.StageAdaptiveEstimate)
	p, _ := n.Denoise()
	p.Adaptive = true
	p.AdaptiveParams = filter.AdaptiveParams{
		Mode:     filter.AdaptiveAutoBDRate,
		QP:       27,
		Strength: 2,
	}
	return n
}

// ScalerConversion is a generic NV12 to ARGB conversion with sharpening
// requested, the usual candidate for two-pass scaling.
func ScalerConversion() *filter.Node {
	n := CscNode(feature.GenericCsc, surface.FormatNV12, surface.FormatA8R8G8B8)
	p, _ := n.Csc()
	p.IEF = &filter.IEFParams{Enabled: true, Factor: 0.5}
	return n
}

// OneToOne wraps nodes in a single-input single-output chain.
func OneToOne(nodes ...*filter.Node) *filter.Chain {
	return filter.NewOneToOne(nodes...)
}
