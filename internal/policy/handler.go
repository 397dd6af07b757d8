package policy

import (
	"log/slog"

	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/logging"
	"framepass/internal/plan"
	"framepass/internal/status"
)

type handlerKind int

const (
	handlerSfcCsc handlerKind = iota + 1
	handlerVeboxCsc
	handlerVeboxDenoise
	handlerRenderAdaptive
)

// Handler is the policy for one (kind, engine) pair.
type Handler struct {
	kind   handlerKind
	typ    feature.Type
	pool   *plan.Pool
	logger *slog.Logger
}

func newHandler(kind handlerKind, typ feature.Type, pool *plan.Pool, logger *slog.Logger) *Handler {
	return &Handler{
		kind:   kind,
		typ:    typ,
		pool:   pool,
		logger: logger.With(logging.String(logging.FieldFeatureType, typ.String())),
	}
}

// Type returns the routed type the handler serves.
func (h *Handler) Type() feature.Type { return h.typ }

// IsFeatureEnabled reports whether the pass capability set turns this
// handler on.
func (h *Handler) IsFeatureEnabled(caps feature.ExecuteCaps) bool {
	switch h.kind {
	case handlerSfcCsc:
		return caps.SfcCsc
	case handlerVeboxCsc:
		return caps.FeCsc || caps.BeCsc
	case handlerVeboxDenoise:
		return caps.Denoise
	case handlerRenderAdaptive:
		return caps.HVSCalc
	default:
		return false
	}
}

// CreateExecutionNode locates this handler's node in the executed chain and
// computes its plan node. It returns nil without error when the handler is
// disabled for the pass. The chain must be 1:1; a missing node while the
// feature is enabled is an internal inconsistency.
func (h *Handler) CreateExecutionNode(caps feature.ExecuteCaps, chain *filter.Chain) (*plan.Node, error) {
	if !h.IsFeatureEnabled(caps) {
		return nil, nil
	}
	if shape := chain.Shape(); shape != filter.ShapeOneToOne {
		err := status.Wrap(status.ErrInvalidArgument, h.typ.String(), "create", "only 1:1 chains are supported, got "+shape.String(), nil)
		logging.ErrorWithContext(h.logger, "chain shape rejected", "chain_shape_invalid",
			logging.String("shape", shape.String()),
			logging.String(logging.FieldErrorHint, "split the frame into single-input single-output chains upstream"),
		)
		return nil, err
	}

	node := chain.Find(true, 0, h.typ)
	if node == nil {
		node = chain.Find(false, 0, h.typ)
	}
	if node == nil {
		err := status.Wrap(status.ErrInternalInconsistency, h.typ.String(), "create", "feature enabled but no node exists", nil)
		logging.ErrorWithContext(h.logger, "capability set names a feature the chain does not carry", "feature_node_missing",
			logging.String(logging.FieldErrorHint, "check the pass capability set against the requested transforms"),
		)
		return nil, err
	}

	out, err := h.pool.Checkout(h.typ)
	if err != nil {
		return nil, err
	}
	if err := out.Compute(node.Params, caps); err != nil {
		if rerr := h.pool.Return(out); rerr != nil {
			h.logger.Warn("plan node return failed", logging.Error(rerr))
		}
		return nil, err
	}
	return out, nil
}

// trigger reports whether node must be split in this pass, and why.
func (h *Handler) trigger(caps feature.ExecuteCaps, node *filter.Node) SplitTrigger {
	switch h.kind {
	case handlerSfcCsc:
		switch {
		case caps.ForceCscToRender:
			return TriggerForcedRender
		case caps.FirstPassOfSfc2PassScaling:
			return TriggerTwoPassScaling
		}
	case handlerVeboxCsc:
		switch {
		case caps.ForceCscToRender:
			return TriggerForcedRender
		case !node.Caps.VeboxNeeded:
			return TriggerVeboxCarry
		}
	case handlerRenderAdaptive:
		if p, ok := node.Denoise(); ok && p.Stage == filter.StageAdaptiveEstimate {
			return TriggerAdaptiveEstimate
		}
	}
	return TriggerNone
}

// UpdateFeaturePipe moves node from the remaining chain into the executed
// chain, or splits it so that the first half executes now and the second
// half stays behind for a later pass.
func (h *Handler) UpdateFeaturePipe(caps feature.ExecuteCaps, node *filter.Node, features, executed *filter.Chain, isInput bool, index int) (SplitTrigger, error) {
	trigger := h.trigger(caps, node)
	if trigger == TriggerNone {
		if !features.Remove(node) {
			return TriggerNone, status.Wrap(status.ErrInternalInconsistency, h.typ.String(), "update", "node is not part of the chain", nil)
		}
		return TriggerNone, executed.Insert(isInput, index, node)
	}

	var pass1, pass2 *filter.Node
	if trigger == TriggerAdaptiveEstimate {
		pass1, pass2 = splitDenoise(node)
	} else {
		pass1, pass2 = splitCsc(node, trigger)
	}
	if !features.Replace(node, pass2) {
		return trigger, status.Wrap(status.ErrInternalInconsistency, h.typ.String(), "split", "node is not part of the chain", nil)
	}
	if err := executed.Insert(isInput, index, pass1); err != nil {
		return trigger, status.Wrap(status.ErrInvalidArgument, h.typ.String(), "split", "insert first pass", err)
	}
	h.logger.Debug("node split",
		logging.String("trigger", trigger.String()),
		logging.String("pass1", pass1.String()),
		logging.String("pass2", pass2.String()),
	)
	return trigger, nil
}
