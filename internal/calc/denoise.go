package calc

import (
	"log/slog"

	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/logging"
	"framepass/internal/status"
)

const (
	// AdaptiveEstimateKernel names the render kernel that estimates adaptive
	// denoise strength.
	AdaptiveEstimateKernel = "hvs_denoise_calc"
	// AdaptiveTableSurface is the lookup-table surface the kernel writes.
	AdaptiveTableSurface = "hvs_table"
)

// DenoiseCalculator computes denoise blocks.
type DenoiseCalculator struct {
	logger *slog.Logger
	vebox  *VeboxDenoiseParams
	render *RenderKernelParams
}

// NewDenoiseCalculator returns a calculator that logs through logger.
func NewDenoiseCalculator(logger *slog.Logger) *DenoiseCalculator {
	return &DenoiseCalculator{logger: logging.NewComponentLogger(logger, "denoise")}
}

// Calculate produces the direct enhancement-block denoise block, or the
// adaptive estimate kernel descriptor when the request is routed to render.
// The returned block is owned by c.
func (c *DenoiseCalculator) Calculate(t feature.Type, req *filter.DenoiseParams, caps feature.ExecuteCaps) (Block, error) {
	if req == nil {
		return nil, status.Wrap(status.ErrInvalidArgument, "denoise", "calculate", "missing denoise request", nil)
	}
	switch t {
	case feature.DenoiseOnVebox:
		if !caps.Vebox {
			return nil, status.Wrap(status.ErrInvalidArgument, "denoise", "vebox", "enhancement block not active for this pass", nil)
		}
		c.calculateVebox(req)
		return c.vebox, nil
	case feature.DenoiseOnRender:
		if !caps.Render {
			return nil, status.Wrap(status.ErrInvalidArgument, "denoise", "render", "render engine not active for this pass", nil)
		}
		if req.Stage != filter.StageAdaptiveEstimate {
			err := status.Wrap(status.ErrInternalInconsistency, "denoise", "render", "stage "+req.Stage.String()+" expects the enhancement block", nil)
			logging.ErrorWithContext(c.logger, "denoise routed to render outside the estimate stage", "denoise_stage_mismatch",
				logging.String("stage", req.Stage.String()),
				logging.String(logging.FieldErrorHint, "route non-estimate denoise to the enhancement block"),
				logging.Error(err),
			)
			return nil, err
		}
		c.calculateRender(req)
		return c.render, nil
	default:
		return nil, status.Wrap(status.ErrInvalidArgument, "denoise", "calculate", "unsupported target "+t.String(), nil)
	}
}

func (c *DenoiseCalculator) calculateVebox(req *filter.DenoiseParams) {
	if c.vebox == nil {
		c.vebox = &VeboxDenoiseParams{}
	} else {
		*c.vebox = VeboxDenoiseParams{}
	}
	p := c.vebox
	p.DenoiseEnabled = req.Enabled && req.Luma
	p.ChromaEnabled = req.Enabled && req.ChromaEnabled()
	p.AutoDetect = req.AutoDetect
	p.Factor = req.Factor
	p.NoiseLevel = req.NoiseLevel
	p.Adaptive = req.Adaptive
	if req.Adaptive {
		p.AdaptiveParams = req.AdaptiveParams
	}
	p.Progressive = req.SampleType.Progressive()
	p.Stage = req.Stage

	c.logger.Debug("vebox denoise computed",
		logging.Bool("luma", p.DenoiseEnabled),
		logging.Bool("chroma", p.ChromaEnabled),
		logging.Bool("adaptive", p.Adaptive),
		logging.Bool("progressive", p.Progressive),
		logging.String("stage", p.Stage.String()),
	)
}

func (c *DenoiseCalculator) calculateRender(req *filter.DenoiseParams) {
	if c.render == nil {
		c.render = &RenderKernelParams{}
	} else {
		args := c.render.Args[:0]
		*c.render = RenderKernelParams{Args: args}
	}
	p := c.render
	p.KernelID = AdaptiveEstimateKernel
	p.ThreadWidth = 1
	p.ThreadHeight = 1
	p.Args = append(p.Args, KernelArg{Index: 0, Kind: KernelArgSurface, Surface: AdaptiveTableSurface})
	p.Mode = req.AdaptiveParams.Mode
	p.QP = req.AdaptiveParams.QP
	p.Strength = req.AdaptiveParams.Strength

	c.logger.Debug("adaptive estimate kernel computed",
		logging.String("kernel", p.KernelID),
		logging.String("mode", p.Mode.String()),
	)
}
