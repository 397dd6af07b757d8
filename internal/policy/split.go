package policy

import (
	"framepass/internal/feature"
	"framepass/internal/filter"
)

// SplitTrigger names why a node was split across two passes.
type SplitTrigger int

const (
	TriggerNone SplitTrigger = iota
	// TriggerTwoPassScaling is the first pass of two-pass scaler scaling.
	TriggerTwoPassScaling
	// TriggerForcedRender moves colour conversion to the render engine.
	TriggerForcedRender
	// TriggerVeboxCarry is a node carried through the enhancement block that
	// does not need it.
	TriggerVeboxCarry
	// TriggerAdaptiveEstimate separates the adaptive estimate kernel from the
	// denoise update.
	TriggerAdaptiveEstimate
)

func (t SplitTrigger) String() string {
	switch t {
	case TriggerTwoPassScaling:
		return "two_pass_scaling"
	case TriggerForcedRender:
		return "forced_render"
	case TriggerVeboxCarry:
		return "vebox_carry"
	case TriggerAdaptiveEstimate:
		return "adaptive_estimate"
	default:
		return "none"
	}
}

// splitCsc returns the two halves of a colour node. Pass 1 keeps the routed
// type and performs no conversion: its output equals its input and it
// carries neither sharpening nor alpha fill. Pass 2 keeps the full request,
// becomes generic, and is parked until the next cycle. A node carried
// through the enhancement block loses sharpening on both halves.
func splitCsc(node *filter.Node, trigger SplitTrigger) (*filter.Node, *filter.Node) {
	pass1 := node.Clone()
	pass2 := node.Clone()

	if p1, ok := pass1.Csc(); ok {
		p1.OutputFormat = p1.InputFormat
		p1.Output = p1.Input
		p1.IEF = nil
		p1.Alpha = nil
	}
	if node.Type.Engine == feature.EngineVebox {
		pass1.Caps.VeboxNeeded = true
	}

	pass2.Type = node.Type.Generic()
	if p2, ok := pass2.Csc(); ok && trigger == TriggerVeboxCarry {
		p2.IEF = nil
	}
	if trigger == TriggerForcedRender {
		pass2.Caps = feature.EngineCaps{
			Enabled:      true,
			RenderNeeded: true,
			FcSupported:  true,
			Isolated:     node.Caps.Isolated,
		}
	}
	pass2.Caps.UsedForNextPass = true
	return pass1, pass2
}

// splitDenoise returns the estimate kernel half and the update half of an
// adaptive denoise node.
func splitDenoise(node *filter.Node) (*filter.Node, *filter.Node) {
	pass1 := node.Clone()
	pass2 := node.Clone()

	pass1.Type = feature.DenoiseOnRender
	pass1.Caps = feature.EngineCaps{Enabled: true, RenderNeeded: true, Isolated: node.Caps.Isolated}
	if p1, ok := pass1.Denoise(); ok {
		p1.Stage = filter.StageAdaptiveEstimate
	}

	pass2.Type = node.Type.Generic()
	pass2.Caps.RenderNeeded = false
	pass2.Caps.UsedForNextPass = true
	if p2, ok := pass2.Denoise(); ok {
		p2.Stage = filter.StageAdaptiveUpdate
	}
	return pass1, pass2
}
