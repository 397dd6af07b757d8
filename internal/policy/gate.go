package policy

import (
	"framepass/internal/filter"
)

func alignCeil(v, unit uint32) uint32 {
	if unit == 0 {
		return v
	}
	return (v + unit - 1) / unit * unit
}

// DenoiseExecutionCaps applies the enhancement-block height gate to a denoise
// node whose engine bitmap has not been negotiated yet. When the frame height
// is a multiple of the format's alignment unit the node becomes enabled on
// the enhancement block; otherwise its bitmap stays empty and the denoise
// path is off for the frame. Nodes that already carry a bitmap are left as
// they are. It reports whether the node is enabled afterwards.
func DenoiseExecutionCaps(node *filter.Node) bool {
	params, ok := node.Denoise()
	if !ok {
		return false
	}
	if !node.Caps.Zero() {
		return node.Caps.Enabled
	}

	entry := params.Format.Vebox()
	unit := entry.VerticalAlign
	if unit == 0 {
		unit = 1
	}
	if !entry.DenoiseSupported {
		params.HeightAlignUnit = unit
		return false
	}
	unit = alignCeil(unit, 2)
	if params.Format.IsPlanar420() {
		unit = alignCeil(unit, 4)
	}
	params.HeightAlignUnit = unit

	if params.Height%unit != 0 {
		return false
	}
	node.Caps.Enabled = true
	node.Caps.VeboxNeeded = true
	return true
}
