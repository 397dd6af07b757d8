package calc

import (
	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/surface"
)

// Block is a computed parameter block. Implementations are *SfcCscParams,
// *VeboxCscParams, *VeboxDenoiseParams and *RenderKernelParams.
type Block interface {
	Engine() feature.Engine
	// Snapshot returns a copy that stays valid after the owning calculator
	// recomputes.
	Snapshot() Block
}

// SfcCscParams drives the scaler's colour stage.
type SfcCscParams struct {
	InputFormat          surface.Format     `json:"input_format"`
	OutputFormat         surface.Format     `json:"output_format"`
	InputColorSpace      surface.ColorSpace `json:"input_color_space"`
	OutputColorSpace     surface.ColorSpace `json:"output_color_space"`
	CSCEnabled           bool               `json:"csc_enabled"`
	InputIsRGB           bool               `json:"input_is_rgb"`
	IEFEnabled           bool               `json:"ief_enabled"`
	IEF                  *filter.IEFParams  `json:"ief,omitempty"`
	DitheringNeeded      bool               `json:"dithering_needed"`
	FullRangeRGBG10      bool               `json:"full_range_rgb_g10"`
	DemosaicNeeded       bool               `json:"demosaic_needed"`
	SrcSiting            surface.Siting     `json:"src_siting"`
	ChromaDownHorizontal DownSamplingCoef   `json:"chroma_down_h"`
	ChromaDownVertical   DownSamplingCoef   `json:"chroma_down_v"`
	ChromaUpSampling     bool               `json:"chroma_up_sampling"`
	EightTapChroma       bool               `json:"eight_tap_chroma"`
}

func (*SfcCscParams) Engine() feature.Engine { return feature.EngineSfc }

func (p *SfcCscParams) Snapshot() Block {
	out := *p
	if p.IEF != nil {
		ief := *p.IEF
		out.IEF = &ief
	}
	return &out
}

// VeboxBlockType is the enhancement-block stage that applies the conversion.
type VeboxBlockType int

const (
	VeboxBlockDefault VeboxBlockType = iota
	VeboxBlockFrontEnd
	VeboxBlockBackEnd
)

func (t VeboxBlockType) String() string {
	switch t {
	case VeboxBlockFrontEnd:
		return "front-end"
	case VeboxBlockBackEnd:
		return "back-end"
	default:
		return "default"
	}
}

func (t VeboxBlockType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// VeboxCscParams drives the enhancement block's colour stage.
type VeboxCscParams struct {
	BlockType        VeboxBlockType      `json:"block_type"`
	InputFormat      surface.Format      `json:"input_format"`
	OutputFormat     surface.Format      `json:"output_format"`
	InputColorSpace  surface.ColorSpace  `json:"input_color_space"`
	OutputColorSpace surface.ColorSpace  `json:"output_color_space"`
	InputSiting      surface.Siting      `json:"input_siting"`
	OutputSiting     surface.Siting      `json:"output_siting"`
	CSCEnabled       bool                `json:"csc_enabled"`
	Alpha            *filter.AlphaParams `json:"alpha,omitempty"`
	BypassCUS        bool                `json:"bypass_cus"`
	UpSampling       Offsets             `json:"up_sampling"`
	BypassCDS        bool                `json:"bypass_cds"`
	DownSampling     Offsets             `json:"down_sampling"`
}

func (*VeboxCscParams) Engine() feature.Engine { return feature.EngineVebox }

func (p *VeboxCscParams) Snapshot() Block {
	out := *p
	if p.Alpha != nil {
		alpha := *p.Alpha
		out.Alpha = &alpha
	}
	return &out
}

// VeboxDenoiseParams drives the enhancement block's denoise stage.
type VeboxDenoiseParams struct {
	DenoiseEnabled bool                  `json:"denoise_enabled"`
	ChromaEnabled  bool                  `json:"chroma_enabled"`
	AutoDetect     bool                  `json:"auto_detect"`
	Factor         float32               `json:"factor"`
	NoiseLevel     uint32                `json:"noise_level"`
	Adaptive       bool                  `json:"adaptive"`
	AdaptiveParams filter.AdaptiveParams `json:"adaptive_params"`
	Progressive    bool                  `json:"progressive"`
	Stage          filter.DenoiseStage   `json:"stage"`
}

func (*VeboxDenoiseParams) Engine() feature.Engine { return feature.EngineVebox }

func (p *VeboxDenoiseParams) Snapshot() Block {
	out := *p
	return &out
}

// KernelArgKind tags a render kernel argument.
type KernelArgKind int

const (
	KernelArgSurface KernelArgKind = iota
	KernelArgValue
)

func (k KernelArgKind) MarshalText() ([]byte, error) {
	if k == KernelArgSurface {
		return []byte("surface"), nil
	}
	return []byte("value"), nil
}

// KernelArg is one argument of a render kernel invocation.
type KernelArg struct {
	Index   int           `json:"index"`
	Kind    KernelArgKind `json:"kind"`
	Surface string        `json:"surface,omitempty"`
}

// RenderKernelParams describes a general-compute kernel dispatch.
type RenderKernelParams struct {
	KernelID     string              `json:"kernel_id"`
	ThreadWidth  uint32              `json:"thread_width"`
	ThreadHeight uint32              `json:"thread_height"`
	Args         []KernelArg         `json:"args"`
	Mode         filter.AdaptiveMode `json:"mode"`
	QP           uint32              `json:"qp"`
	Strength     uint32              `json:"strength"`
}

func (*RenderKernelParams) Engine() feature.Engine { return feature.EngineRender }

func (p *RenderKernelParams) Snapshot() Block {
	out := *p
	out.Args = append([]KernelArg(nil), p.Args...)
	return &out
}
