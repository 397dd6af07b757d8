package plan

import (
	"fmt"
	"log/slog"

	"framepass/internal/calc"
	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/status"
)

// Node is an execution plan entry for one (kind, engine) pair.
type Node struct {
	Type feature.Type

	csc   *calc.CscCalculator
	dn    *calc.DenoiseCalculator
	block calc.Block
	live  bool
}

func newNode(t feature.Type, logger *slog.Logger) *Node {
	n := &Node{Type: t}
	switch t.Kind {
	case feature.KindCsc:
		n.csc = calc.NewCscCalculator(logger)
	case feature.KindDenoise:
		n.dn = calc.NewDenoiseCalculator(logger)
	}
	return n
}

// Compute runs the node's calculator against params and keeps the block.
func (n *Node) Compute(params filter.Params, caps feature.ExecuteCaps) error {
	n.block = nil
	var (
		block calc.Block
		err   error
	)
	switch p := params.(type) {
	case *filter.CscParams:
		if n.csc == nil {
			return status.Wrap(status.ErrInvalidArgument, "plan", "compute", fmt.Sprintf("%s node cannot take a colour request", n.Type), nil)
		}
		block, err = n.csc.Calculate(n.Type, p, caps)
	case *filter.DenoiseParams:
		if n.dn == nil {
			return status.Wrap(status.ErrInvalidArgument, "plan", "compute", fmt.Sprintf("%s node cannot take a denoise request", n.Type), nil)
		}
		block, err = n.dn.Calculate(n.Type, p, caps)
	default:
		return status.Wrap(status.ErrInvalidArgument, "plan", "compute", fmt.Sprintf("unsupported params %T", params), nil)
	}
	if err != nil {
		return err
	}
	n.block = block
	return nil
}

// Block returns the current block, or nil before a successful Compute.
func (n *Node) Block() calc.Block { return n.block }

// Apply hands the current block to b.
func (n *Node) Apply(b Builder) error {
	switch p := n.block.(type) {
	case *calc.SfcCscParams:
		return b.SetSfcCsc(p)
	case *calc.VeboxCscParams:
		return b.SetVeboxCsc(p)
	case *calc.VeboxDenoiseParams:
		return b.SetVeboxDenoise(p)
	case *calc.RenderKernelParams:
		return b.SetRenderKernel(p)
	case nil:
		return status.Wrap(status.ErrInternalInconsistency, "plan", "apply", n.Type.String()+" has no computed block", nil)
	default:
		return status.Wrap(status.ErrInvalidArgument, "plan", "apply", fmt.Sprintf("unknown block %T", p), nil)
	}
}
