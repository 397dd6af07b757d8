package calc

import (
	"log/slog"

	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/logging"
	"framepass/internal/status"
	"framepass/internal/surface"
)

// CscCalculator computes colour-conversion blocks. The zero value is not
// usable; construct with NewCscCalculator.
type CscCalculator struct {
	logger *slog.Logger
	sfc    *SfcCscParams
	vebox  *VeboxCscParams
}

// NewCscCalculator returns a calculator that logs through logger.
func NewCscCalculator(logger *slog.Logger) *CscCalculator {
	return &CscCalculator{logger: logging.NewComponentLogger(logger, "csc")}
}

// Calculate dispatches on the request's routed engine. The returned block is
// owned by c and is overwritten by the next call.
func (c *CscCalculator) Calculate(t feature.Type, params *filter.CscParams, caps feature.ExecuteCaps) (Block, error) {
	if params == nil {
		return nil, status.Wrap(status.ErrInvalidArgument, "csc", "calculate", "missing colour request", nil)
	}
	switch t {
	case feature.CscOnSfc:
		if err := c.calculateSfc(params, caps); err != nil {
			return nil, err
		}
		return c.sfc, nil
	case feature.CscOnVebox:
		if err := c.calculateVebox(params, caps); err != nil {
			return nil, err
		}
		return c.vebox, nil
	case feature.CscOnRender:
		return nil, status.Wrap(status.ErrUnimplemented, "csc", "calculate", "no render colour conversion path", nil)
	default:
		return nil, status.Wrap(status.ErrInvalidArgument, "csc", "calculate", "unsupported target "+t.String(), nil)
	}
}

func (c *CscCalculator) calculateSfc(req *filter.CscParams, caps feature.ExecuteCaps) error {
	if !caps.Sfc {
		return status.Wrap(status.ErrInvalidArgument, "csc", "sfc", "scaler not active for this pass", nil)
	}
	if c.sfc == nil {
		c.sfc = &SfcCscParams{}
	} else {
		*c.sfc = SfcCscParams{}
	}
	p := c.sfc

	if req.IEF != nil && req.IEF.Enabled && req.IEF.Factor > 0 {
		p.IEFEnabled = true
		ief := *req.IEF
		p.IEF = &ief
	}

	// Dithering compares the requested formats, before the scaler input is
	// replaced by the enhancement block's output format.
	p.DitheringNeeded = DitheringNeeded(req.InputFormat, req.OutputFormat)
	p.InputColorSpace = SfcInputColorSpace(caps, req.Input.ColorSpace, req.Output.ColorSpace, req.OutputFormat)
	p.OutputColorSpace = req.Output.ColorSpace
	p.InputFormat = SfcInputFormat(caps, req.InputFormat, req.Output.ColorSpace)
	p.OutputFormat = req.OutputFormat
	p.FullRangeRGBG10 = req.FullRangeRGBG10
	p.DemosaicNeeded = caps.Demosaic

	p.CSCEnabled = p.InputColorSpace != req.Output.ColorSpace &&
		!(p.OutputFormat.IsRGB64Float() && req.FullRangeRGBG10)
	p.InputIsRGB = p.InputColorSpace.IsRGB()

	p.SrcSiting = req.Input.Siting
	p.EightTapChroma = caps.Vebox && p.InputFormat.ColorPack() == surface.ColorPack444
	p.ChromaDownHorizontal = sfcHorizontalCoef(req.Output.Siting.H)
	p.ChromaDownVertical = sfcVerticalCoef(req.Output.Siting.V)
	p.ChromaUpSampling = ChromaUpSamplingNeeded(p.InputFormat.ColorPack(), p.OutputFormat.ColorPack())

	c.logger.Debug("sfc csc computed",
		logging.String("input_format", p.InputFormat.String()),
		logging.String("output_format", p.OutputFormat.String()),
		logging.String("input_color_space", p.InputColorSpace.String()),
		logging.Bool("csc_enabled", p.CSCEnabled),
		logging.Bool("dithering", p.DitheringNeeded),
		logging.Bool("chroma_up_sampling", p.ChromaUpSampling),
	)
	return nil
}

func (c *CscCalculator) calculateVebox(req *filter.CscParams, caps feature.ExecuteCaps) error {
	if !caps.Vebox {
		return status.Wrap(status.ErrInvalidArgument, "csc", "vebox", "enhancement block not active for this pass", nil)
	}
	if c.vebox == nil {
		c.vebox = &VeboxCscParams{}
	} else {
		*c.vebox = VeboxCscParams{}
	}
	p := c.vebox

	switch {
	case caps.FeCsc:
		p.BlockType = VeboxBlockFrontEnd
	case caps.BeCsc:
		p.BlockType = VeboxBlockBackEnd
	default:
		p.BlockType = VeboxBlockDefault
	}
	p.InputFormat = req.InputFormat
	p.OutputFormat = req.OutputFormat
	p.InputColorSpace = req.Input.ColorSpace
	p.OutputColorSpace = req.Output.ColorSpace
	p.CSCEnabled = req.Input.ColorSpace != req.Output.ColorSpace ||
		BackEndCscNeededForAlphaFill(req.InputFormat, req.OutputFormat, req.Alpha)
	if req.Alpha != nil {
		alpha := *req.Alpha
		p.Alpha = &alpha
	}

	p.InputSiting = NormalizeSiting(req.Input.Siting, req.InputFormat.ColorPack())
	p.OutputSiting = NormalizeSiting(req.Output.Siting, req.OutputFormat.ColorPack())

	p.BypassCUS = true
	if UpSamplingConsidered(caps, p.CSCEnabled) {
		src := req.InputFormat
		if req.FormatForCUS != surface.FormatNone {
			src = req.FormatForCUS
		}
		if t, ok := p.InputSiting.Type(); ok {
			if offsets, ok := LookupUpSampling(t, caps.Deinterlace, src.ColorPack()); ok {
				p.BypassCUS = false
				p.UpSampling = offsets
			}
		}
	}

	p.BypassCDS = true
	if DownSamplingConsidered(caps, req.OutputFormat) {
		if t, ok := p.OutputSiting.Type(); ok {
			if offsets, ok := LookupDownSampling(t, req.OutputFormat.ColorPack()); ok {
				p.BypassCDS = false
				p.DownSampling = offsets
			}
		}
	}

	c.logger.Debug("vebox csc computed",
		logging.String("block", p.BlockType.String()),
		logging.Bool("csc_enabled", p.CSCEnabled),
		logging.String("input_siting", p.InputSiting.String()),
		logging.String("output_siting", p.OutputSiting.String()),
		logging.Bool("bypass_cus", p.BypassCUS),
		logging.Bool("bypass_cds", p.BypassCDS),
	)
	return nil
}
