package feature

import "strings"

// ExecuteCaps is the negotiated capability set for one pass. The resolver
// only reads it.
type ExecuteCaps struct {
	Sfc    bool `toml:"sfc" json:"sfc"`
	Vebox  bool `toml:"vebox" json:"vebox"`
	Render bool `toml:"render" json:"render"`

	SfcCsc bool `toml:"sfc_csc" json:"sfc_csc"`
	FeCsc  bool `toml:"fe_csc" json:"fe_csc"`
	BeCsc  bool `toml:"be_csc" json:"be_csc"`

	Denoise     bool `toml:"denoise" json:"denoise"`
	HVSCalc     bool `toml:"hvs_calc" json:"hvs_calc"`
	Deinterlace bool `toml:"deinterlace" json:"deinterlace"`
	IECP        bool `toml:"iecp" json:"iecp"`
	CGC         bool `toml:"cgc" json:"cgc"`
	BT2020ToRGB bool `toml:"bt2020_to_rgb" json:"bt2020_to_rgb"`

	Lut3DOutput bool `toml:"lut3d_output" json:"lut3d_output"`
	HDR3DLut    bool `toml:"hdr_3dlut" json:"hdr_3dlut"`
	Demosaic    bool `toml:"demosaic" json:"demosaic"`

	FirstPassOfSfc2PassScaling bool `toml:"sfc_2pass_first" json:"sfc_2pass_first"`
	ForceCscToRender           bool `toml:"force_csc_to_render" json:"force_csc_to_render"`
}

// Engines lists the active engines in a stable order.
func (c ExecuteCaps) Engines() []Engine {
	out := make([]Engine, 0, 3)
	if c.Sfc {
		out = append(out, EngineSfc)
	}
	if c.Vebox {
		out = append(out, EngineVebox)
	}
	if c.Render {
		out = append(out, EngineRender)
	}
	return out
}

func (c ExecuteCaps) String() string {
	names := make([]string, 0, 3)
	for _, e := range c.Engines() {
		names = append(names, e.String())
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// EngineCaps is the per-node engine bitmap. It is a plain value: assigning it
// yields an independent copy.
type EngineCaps struct {
	Enabled      bool `toml:"enabled" json:"enabled"`
	SfcNeeded    bool `toml:"sfc" json:"sfc"`
	VeboxNeeded  bool `toml:"vebox" json:"vebox"`
	RenderNeeded bool `toml:"render" json:"render"`
	FcSupported  bool `toml:"fc" json:"fc"`
	Isolated     bool `toml:"isolated" json:"isolated"`
	// UsedForNextPass marks the remainder of a split. Policies skip it for the
	// rest of the cycle in which it was produced.
	UsedForNextPass bool `toml:"-" json:"used_for_next_pass"`
}

// Zero reports whether no engine or flag is set.
func (c EngineCaps) Zero() bool { return c == EngineCaps{} }

// Needs reports whether the bitmap requires the given engine.
func (c EngineCaps) Needs(e Engine) bool {
	switch e {
	case EngineSfc:
		return c.SfcNeeded
	case EngineVebox:
		return c.VeboxNeeded
	case EngineRender:
		return c.RenderNeeded
	default:
		return false
	}
}

// ForEngine returns the bitmap a node routed to e carries when nothing more
// specific was negotiated.
func ForEngine(e Engine) EngineCaps {
	caps := EngineCaps{Enabled: e != EngineNone}
	switch e {
	case EngineSfc:
		caps.SfcNeeded = true
	case EngineVebox:
		caps.VeboxNeeded = true
	case EngineRender:
		caps.RenderNeeded = true
		caps.FcSupported = true
	}
	return caps
}

func (c EngineCaps) String() string {
	flags := make([]string, 0, 7)
	add := func(set bool, name string) {
		if set {
			flags = append(flags, name)
		}
	}
	add(c.Enabled, "enabled")
	add(c.SfcNeeded, "sfc")
	add(c.VeboxNeeded, "vebox")
	add(c.RenderNeeded, "render")
	add(c.FcSupported, "fc")
	add(c.Isolated, "isolated")
	add(c.UsedForNextPass, "next-pass")
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
