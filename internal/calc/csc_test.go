package calc_test

import (
	"errors"
	"testing"

	"framepass/internal/calc"
	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/logging"
	"framepass/internal/status"
	"framepass/internal/surface"
)

func TestVeboxOnlyIdentitySitingDefaults(t *testing.T) {
	c := calc.NewCscCalculator(logging.NewNop())
	req := &filter.CscParams{
		InputFormat:  surface.FormatNV12,
		OutputFormat: surface.FormatNV12,
		Input:        filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
		Output:       filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
	}
	block, err := c.Calculate(feature.CscOnVebox, req, feature.ExecuteCaps{Vebox: true, BeCsc: true})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	p := block.(*calc.VeboxCscParams)
	leftCenter := surface.Siting{H: surface.HorizontalLeft, V: surface.VerticalCenter}
	if p.InputSiting != leftCenter || p.OutputSiting != leftCenter {
		t.Fatalf("sitings = %s / %s, want left-center", p.InputSiting, p.OutputSiting)
	}
	if p.CSCEnabled {
		t.Fatal("identical spaces must not enable conversion")
	}
	if !p.BypassCUS {
		t.Fatal("up-sampling should be bypassed without conversion or enhancement")
	}
	// Sole-engine passes run down-sampling through the 4:2:0 table.
	if p.BypassCDS || p.DownSampling != (calc.Offsets{H: 0, V: 1}) {
		t.Fatalf("down-sampling = %+v bypass=%v", p.DownSampling, p.BypassCDS)
	}
	if p.BlockType != calc.VeboxBlockBackEnd {
		t.Fatalf("block type = %s", p.BlockType)
	}
	if req.Input.Siting != (surface.Siting{}) {
		t.Fatal("calculator must not mutate the request")
	}
}

func TestVeboxDownSamplingSkippedWhenScalerFollows(t *testing.T) {
	c := calc.NewCscCalculator(nil)
	req := &filter.CscParams{InputFormat: surface.FormatNV12, OutputFormat: surface.FormatNV12}
	block, err := c.Calculate(feature.CscOnVebox, req, feature.ExecuteCaps{Vebox: true, Sfc: true, FeCsc: true})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	p := block.(*calc.VeboxCscParams)
	if !p.BypassCDS || !p.BypassCUS {
		t.Fatalf("expected both resampling stages bypassed, got cus=%v cds=%v", p.BypassCUS, p.BypassCDS)
	}
	if p.BlockType != calc.VeboxBlockFrontEnd {
		t.Fatalf("front-end flag should win, got %s", p.BlockType)
	}
}

func TestVeboxUpSamplingUsesDeinterlaceTable(t *testing.T) {
	c := calc.NewCscCalculator(nil)
	req := &filter.CscParams{
		InputFormat:  surface.FormatNV12,
		OutputFormat: surface.FormatYUY2,
		Input:        filter.ColorDesc{ColorSpace: surface.ColorSpaceBT601, Siting: surface.Siting{H: surface.HorizontalCenter, V: surface.VerticalBottom}},
		Output:       filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
	}
	block, err := c.Calculate(feature.CscOnVebox, req, feature.ExecuteCaps{Vebox: true, Deinterlace: true, BeCsc: true})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	p := block.(*calc.VeboxCscParams)
	if !p.CSCEnabled || p.BypassCUS || p.UpSampling != (calc.Offsets{H: 1, V: 4}) {
		t.Fatalf("unexpected up-sampling %+v bypass=%v", p.UpSampling, p.BypassCUS)
	}
	// YUY2 output with DI and no IECP keeps the vebox output packed; the
	// sole-engine condition still applies and YUY2 normalizes to left-top.
	if p.BypassCDS || p.DownSampling != (calc.Offsets{H: 0, V: 0}) {
		t.Fatalf("unexpected down-sampling %+v bypass=%v", p.DownSampling, p.BypassCDS)
	}
}

func TestVeboxFormatForCUSOverridesSource(t *testing.T) {
	c := calc.NewCscCalculator(nil)
	req := &filter.CscParams{
		InputFormat:  surface.FormatAYUV,
		FormatForCUS: surface.FormatNV12,
		OutputFormat: surface.FormatAYUV,
		Input:        filter.ColorDesc{ColorSpace: surface.ColorSpaceBT601},
		Output:       filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
	}
	block, err := c.Calculate(feature.CscOnVebox, req, feature.ExecuteCaps{Vebox: true, Sfc: true})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	p := block.(*calc.VeboxCscParams)
	// AYUV input normalizes to left-top, which the 4:2:0 table maps to (0,0).
	if p.BypassCUS || p.UpSampling != (calc.Offsets{}) {
		t.Fatalf("expected 4:2:0 lookup via override, got %+v bypass=%v", p.UpSampling, p.BypassCUS)
	}
}

func TestVeboxAlphaFillForcesConversion(t *testing.T) {
	c := calc.NewCscCalculator(nil)
	req := &filter.CscParams{
		InputFormat:  surface.FormatNV12,
		OutputFormat: surface.FormatAYUV,
		Input:        filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
		Output:       filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
		Alpha:        &filter.AlphaParams{Mode: filter.AlphaFillBackground, Alpha: 1},
	}
	block, err := c.Calculate(feature.CscOnVebox, req, feature.ExecuteCaps{Vebox: true})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !block.(*calc.VeboxCscParams).CSCEnabled {
		t.Fatal("alpha fill into an alpha format should touch the colour stage")
	}
}

func TestSfcConversionAcrossSpaces(t *testing.T) {
	c := calc.NewCscCalculator(logging.NewNop())
	req := &filter.CscParams{
		InputFormat:  surface.FormatNV12,
		OutputFormat: surface.FormatA8R8G8B8,
		Input:        filter.ColorDesc{ColorSpace: surface.ColorSpaceBT601},
		Output:       filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709, Siting: surface.Siting{H: surface.HorizontalCenter, V: surface.VerticalBottom}},
		IEF:          &filter.IEFParams{Enabled: true, Factor: 0},
	}
	block, err := c.Calculate(feature.CscOnSfc, req, feature.ExecuteCaps{Sfc: true, SfcCsc: true})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	p := block.(*calc.SfcCscParams)
	if !p.CSCEnabled {
		t.Fatal("bt601 to bt709 should enable conversion")
	}
	if p.DitheringNeeded {
		t.Fatal("8-bit to 8-bit never dithers")
	}
	if p.IEFEnabled {
		t.Fatal("zero strength sharpening is disabled")
	}
	if p.ChromaDownHorizontal != calc.Coef4Over8 || p.ChromaDownVertical != calc.Coef8Over8 {
		t.Fatalf("coefficients = %d/%d", p.ChromaDownHorizontal, p.ChromaDownVertical)
	}
	if !p.ChromaUpSampling {
		t.Fatal("4:2:0 to RGB 4:4:4 needs up-sampling")
	}
	if p.InputIsRGB || p.EightTapChroma {
		t.Fatal("unexpected rgb or 8-tap flags")
	}
}

func TestSfcUnsetSitingUsesZeroCoefficient(t *testing.T) {
	c := calc.NewCscCalculator(nil)
	req := &filter.CscParams{InputFormat: surface.FormatNV12, OutputFormat: surface.FormatNV12}
	block, err := c.Calculate(feature.CscOnSfc, req, feature.ExecuteCaps{Sfc: true})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	p := block.(*calc.SfcCscParams)
	if p.ChromaDownHorizontal != calc.Coef0Over8 || p.ChromaDownVertical != calc.Coef0Over8 {
		t.Fatalf("unset siting should map to 0/8, got %d/%d", p.ChromaDownHorizontal, p.ChromaDownVertical)
	}
}

func TestSfcFloatOutputExemption(t *testing.T) {
	c := calc.NewCscCalculator(nil)
	req := &filter.CscParams{
		InputFormat:     surface.FormatA8R8G8B8,
		OutputFormat:    surface.FormatA16B16G16R16F,
		Input:           filter.ColorDesc{ColorSpace: surface.ColorSpaceSRGB},
		Output:          filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
		FullRangeRGBG10: true,
	}
	block, err := c.Calculate(feature.CscOnSfc, req, feature.ExecuteCaps{Sfc: true})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	p := block.(*calc.SfcCscParams)
	if p.CSCEnabled {
		t.Fatal("exempt half-float output must skip conversion")
	}
	if !p.InputIsRGB {
		t.Fatal("sRGB input should be flagged RGB")
	}
}

func TestSfcUpstreamEnhancementRewritesInput(t *testing.T) {
	c := calc.NewCscCalculator(nil)
	req := &filter.CscParams{
		InputFormat:  surface.FormatP010,
		OutputFormat: surface.FormatNV12,
		Input:        filter.ColorDesc{ColorSpace: surface.ColorSpaceBT2020},
		Output:       filter.ColorDesc{ColorSpace: surface.ColorSpaceSRGB},
	}
	caps := feature.ExecuteCaps{Sfc: true, Vebox: true, IECP: true, CGC: true, BT2020ToRGB: true}
	block, err := c.Calculate(feature.CscOnSfc, req, caps)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	p := block.(*calc.SfcCscParams)
	if p.InputFormat != surface.FormatA8B8G8R8 || p.InputColorSpace != surface.ColorSpaceSRGB {
		t.Fatalf("input = %s/%s", p.InputFormat, p.InputColorSpace)
	}
	if p.CSCEnabled {
		t.Fatal("gamut-mapped sRGB into sRGB needs no conversion")
	}
	if !p.DitheringNeeded {
		t.Fatal("dithering uses the requested 10-bit input")
	}
	if !p.EightTapChroma {
		t.Fatal("4:4:4 scaler input behind vebox uses 8-tap chroma")
	}
}

func TestSfcLutOutputRewritesInput(t *testing.T) {
	tests := []struct {
		name       string
		output     surface.ColorSpace
		wantFormat surface.Format
		wantSpace  surface.ColorSpace
	}{
		{name: "wide gamut", output: surface.ColorSpaceBT2020, wantFormat: surface.FormatR10G10B10A2, wantSpace: surface.ColorSpaceBT2020RGB},
		{name: "standard gamut", output: surface.ColorSpaceBT709, wantFormat: surface.FormatA8B8G8R8, wantSpace: surface.ColorSpaceSRGB},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := calc.NewCscCalculator(nil)
			req := &filter.CscParams{
				InputFormat:  surface.FormatP010,
				OutputFormat: surface.FormatA8R8G8B8,
				Input:        filter.ColorDesc{ColorSpace: surface.ColorSpaceBT2020},
				Output:       filter.ColorDesc{ColorSpace: tc.output},
			}
			block, err := c.Calculate(feature.CscOnSfc, req, feature.ExecuteCaps{Sfc: true, Vebox: true, Lut3DOutput: true})
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			p := block.(*calc.SfcCscParams)
			if p.InputFormat != tc.wantFormat || p.InputColorSpace != tc.wantSpace {
				t.Fatalf("input = %s/%s, want %s/%s", p.InputFormat, p.InputColorSpace, tc.wantFormat, tc.wantSpace)
			}
			if !p.InputIsRGB {
				t.Fatal("lut output feeds the scaler rgb")
			}
			if !p.EightTapChroma {
				t.Fatal("4:4:4 scaler input behind vebox uses 8-tap chroma")
			}
		})
	}
}

func TestSfcDemosaicInputSpace(t *testing.T) {
	c := calc.NewCscCalculator(nil)
	req := &filter.CscParams{
		InputFormat:  surface.FormatA8R8G8B8,
		OutputFormat: surface.FormatA8R8G8B8,
		Input:        filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
		Output:       filter.ColorDesc{ColorSpace: surface.ColorSpaceBT2020},
	}
	block, err := c.Calculate(feature.CscOnSfc, req, feature.ExecuteCaps{Sfc: true, Demosaic: true})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	p := block.(*calc.SfcCscParams)
	if p.InputColorSpace != surface.ColorSpaceBT2020RGB || !p.DemosaicNeeded {
		t.Fatalf("input space = %s demosaic = %v", p.InputColorSpace, p.DemosaicNeeded)
	}
	if !p.CSCEnabled {
		t.Fatal("demosaiced rgb into bt2020 yuv must convert")
	}
}

func TestVeboxLutOutputDrivesUpSampling(t *testing.T) {
	tests := []struct {
		name       string
		caps       feature.ExecuteCaps
		wantBypass bool
	}{
		{name: "lut output", caps: feature.ExecuteCaps{Vebox: true, Sfc: true, BeCsc: true, Lut3DOutput: true}, wantBypass: false},
		{name: "hdr lut", caps: feature.ExecuteCaps{Vebox: true, Sfc: true, BeCsc: true, Lut3DOutput: true, HDR3DLut: true}, wantBypass: true},
		{name: "no lut", caps: feature.ExecuteCaps{Vebox: true, Sfc: true, BeCsc: true}, wantBypass: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := calc.NewCscCalculator(nil)
			req := &filter.CscParams{
				InputFormat:  surface.FormatNV12,
				OutputFormat: surface.FormatNV12,
				Input:        filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
				Output:       filter.ColorDesc{ColorSpace: surface.ColorSpaceBT709},
			}
			block, err := c.Calculate(feature.CscOnVebox, req, tc.caps)
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			p := block.(*calc.VeboxCscParams)
			if p.CSCEnabled {
				t.Fatal("identical spaces must not enable conversion")
			}
			if p.BypassCUS != tc.wantBypass {
				t.Fatalf("bypass cus = %v, want %v", p.BypassCUS, tc.wantBypass)
			}
		})
	}
}

func TestCscDispatchErrors(t *testing.T) {
	c := calc.NewCscCalculator(nil)
	req := &filter.CscParams{InputFormat: surface.FormatNV12, OutputFormat: surface.FormatNV12}

	if _, err := c.Calculate(feature.CscOnRender, req, feature.ExecuteCaps{Render: true}); !errors.Is(err, status.ErrUnimplemented) {
		t.Fatalf("render path: %v", err)
	}
	if _, err := c.Calculate(feature.GenericCsc, req, feature.ExecuteCaps{Sfc: true}); !errors.Is(err, status.ErrInvalidArgument) {
		t.Fatalf("generic path: %v", err)
	}
	if _, err := c.Calculate(feature.CscOnSfc, req, feature.ExecuteCaps{Vebox: true}); !errors.Is(err, status.ErrInvalidArgument) {
		t.Fatalf("inactive sfc: %v", err)
	}
	if _, err := c.Calculate(feature.CscOnVebox, req, feature.ExecuteCaps{Sfc: true}); !errors.Is(err, status.ErrInvalidArgument) {
		t.Fatalf("inactive vebox: %v", err)
	}
}

func TestCscBlockIsRecomputed(t *testing.T) {
	c := calc.NewCscCalculator(nil)
	first, err := c.Calculate(feature.CscOnSfc, &filter.CscParams{
		InputFormat:  surface.FormatNV12,
		OutputFormat: surface.FormatNV12,
		IEF:          &filter.IEFParams{Enabled: true, Factor: 1},
	}, feature.ExecuteCaps{Sfc: true})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	snapshot := first.Snapshot().(*calc.SfcCscParams)
	second, err := c.Calculate(feature.CscOnSfc, &filter.CscParams{
		InputFormat:  surface.FormatNV12,
		OutputFormat: surface.FormatNV12,
	}, feature.ExecuteCaps{Sfc: true})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first != second {
		t.Fatal("calculator should reuse its owned block")
	}
	if second.(*calc.SfcCscParams).IEFEnabled || second.(*calc.SfcCscParams).IEF != nil {
		t.Fatal("stale sharpening survived recompute")
	}
	if !snapshot.IEFEnabled || snapshot.IEF == nil {
		t.Fatal("snapshot should be independent of recompute")
	}
}
