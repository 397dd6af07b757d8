package filter

import (
	"fmt"
	"strings"

	"framepass/internal/feature"
	"framepass/internal/surface"
)

// Params is the transform payload of a node. It is implemented only by
// CscParams and DenoiseParams.
type Params interface {
	Kind() feature.Kind
	cloneParams() Params
}

// ColorDesc is one side of a colour request.
type ColorDesc struct {
	ColorSpace surface.ColorSpace `toml:"color_space" json:"color_space"`
	Siting     surface.Siting     `toml:"siting" json:"siting"`
}

// IEFParams configures the sharpening (image enhancement) stage.
type IEFParams struct {
	Enabled bool    `toml:"enabled" json:"enabled"`
	Factor  float32 `toml:"factor" json:"factor"`
}

// AlphaFillMode selects how output alpha is produced.
type AlphaFillMode int

const (
	AlphaFillNone AlphaFillMode = iota
	AlphaFillConstant
	AlphaFillSourceStream
	AlphaFillBackground
)

var alphaFillNames = []string{"none", "constant", "source", "background"}

func (m AlphaFillMode) String() string {
	if m >= 0 && int(m) < len(alphaFillNames) {
		return alphaFillNames[m]
	}
	return fmt.Sprintf("AlphaFillMode(%d)", int(m))
}

func (m *AlphaFillMode) UnmarshalText(text []byte) error {
	value := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range alphaFillNames {
		if name == value {
			*m = AlphaFillMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown alpha fill mode %q", value)
}

func (m AlphaFillMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// AlphaParams configures output alpha.
type AlphaParams struct {
	Mode  AlphaFillMode `toml:"mode" json:"mode"`
	Alpha float32       `toml:"alpha" json:"alpha"`
}

// CscParams is a colour-conversion request.
type CscParams struct {
	InputFormat  surface.Format `toml:"input_format" json:"input_format"`
	OutputFormat surface.Format `toml:"output_format" json:"output_format"`
	Input        ColorDesc      `toml:"input" json:"input"`
	Output       ColorDesc      `toml:"output" json:"output"`
	// FormatForCUS, when set, replaces InputFormat as the source class for
	// the chroma up-sampling lookup.
	FormatForCUS surface.Format `toml:"format_for_cus" json:"format_for_cus"`
	// FullRangeRGBG10 exempts half-float RGB outputs from colour conversion.
	FullRangeRGBG10 bool         `toml:"full_range_rgb_g10" json:"full_range_rgb_g10"`
	IEF             *IEFParams   `toml:"ief" json:"ief,omitempty"`
	Alpha           *AlphaParams `toml:"alpha" json:"alpha,omitempty"`
}

func (*CscParams) Kind() feature.Kind { return feature.KindCsc }

func (p *CscParams) cloneParams() Params {
	out := *p
	if p.IEF != nil {
		ief := *p.IEF
		out.IEF = &ief
	}
	if p.Alpha != nil {
		alpha := *p.Alpha
		out.Alpha = &alpha
	}
	return &out
}

// DenoiseStage tags which part of adaptive denoise a node performs.
type DenoiseStage int

const (
	StageSinglePass DenoiseStage = iota
	StageAdaptiveEstimate
	StageAdaptiveUpdate
)

var stageNames = []string{"single", "adaptive-estimate", "adaptive-update"}

func (s DenoiseStage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("DenoiseStage(%d)", int(s))
}

func (s *DenoiseStage) UnmarshalText(text []byte) error {
	value := strings.ToLower(strings.TrimSpace(string(text)))
	if value == "" {
		*s = StageSinglePass
		return nil
	}
	for i, name := range stageNames {
		if name == value {
			*s = DenoiseStage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown denoise stage %q", value)
}

func (s DenoiseStage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AdaptiveMode selects how the adaptive estimate picks its strength.
type AdaptiveMode int

const (
	AdaptiveAutoBDRate AdaptiveMode = iota
	AdaptiveAutoSubjective
	AdaptiveManual
)

var adaptiveModeNames = []string{"auto-bdrate", "auto-subjective", "manual"}

func (m AdaptiveMode) String() string {
	if m >= 0 && int(m) < len(adaptiveModeNames) {
		return adaptiveModeNames[m]
	}
	return fmt.Sprintf("AdaptiveMode(%d)", int(m))
}

func (m *AdaptiveMode) UnmarshalText(text []byte) error {
	value := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range adaptiveModeNames {
		if name == value {
			*m = AdaptiveMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown adaptive mode %q", value)
}

func (m AdaptiveMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// AdaptiveParams is the content-aware denoise block.
type AdaptiveParams struct {
	Mode     AdaptiveMode `toml:"mode" json:"mode"`
	QP       uint32       `toml:"qp" json:"qp"`
	Strength uint32       `toml:"strength" json:"strength"`
}

// DenoiseParams is a denoise request.
type DenoiseParams struct {
	Format     surface.Format     `toml:"format" json:"format"`
	Height     uint32             `toml:"height" json:"height"`
	SampleType surface.SampleType `toml:"sample_type" json:"sample_type"`

	Enabled    bool    `toml:"enabled" json:"enabled"`
	Luma       bool    `toml:"luma" json:"luma"`
	Chroma     bool    `toml:"chroma" json:"chroma"`
	AutoDetect bool    `toml:"auto_detect" json:"auto_detect"`
	Factor     float32 `toml:"factor" json:"factor"`
	NoiseLevel uint32  `toml:"noise_level" json:"noise_level"`

	Adaptive        bool           `toml:"adaptive" json:"adaptive"`
	AdaptiveParams  AdaptiveParams `toml:"adaptive_params" json:"adaptive_params"`
	Stage           DenoiseStage   `toml:"stage" json:"stage"`
	HeightAlignUnit uint32         `toml:"-" json:"height_align_unit,omitempty"`
}

func (*DenoiseParams) Kind() feature.Kind { return feature.KindDenoise }

func (p *DenoiseParams) cloneParams() Params {
	out := *p
	return &out
}

// ChromaEnabled reports whether chroma denoise applies. Chroma denoise is
// gated on luma denoise.
func (p *DenoiseParams) ChromaEnabled() bool {
	return p.Chroma && p.Luma
}
