package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/logging"
	"framepass/internal/plan"
	"framepass/internal/status"
)

// Options configures a Resolver.
type Options struct {
	// MaxOutstanding bounds plan nodes checked out per (kind, engine).
	MaxOutstanding int
	// MaxPasses bounds the capability sets one frame may be resolved against.
	MaxPasses int
	Logger    *slog.Logger
}

// Resolver turns a filter chain into plan nodes, one capability set at a
// time. It is not safe for concurrent use.
type Resolver struct {
	logger    *slog.Logger
	pool      *plan.Pool
	registry  *Registry
	maxPasses int
}

// NewResolver builds the pool and dispatch table.
func NewResolver(opts Options) *Resolver {
	logger := logging.NewComponentLogger(opts.Logger, "resolver")
	pool := plan.NewPool(opts.MaxOutstanding, opts.Logger)
	return &Resolver{
		logger:    logger,
		pool:      pool,
		registry:  NewRegistry(pool, opts.Logger),
		maxPasses: opts.MaxPasses,
	}
}

// Pool exposes the plan node pool.
func (r *Resolver) Pool() *plan.Pool { return r.pool }

// Registry exposes the dispatch table.
func (r *Resolver) Registry() *Registry { return r.registry }

// PassResult is the outcome of one pass. Nodes stay checked out until
// Release is called.
type PassResult struct {
	Index     int
	Caps      feature.ExecuteCaps
	Nodes     []*plan.Node
	Executed  *filter.Chain
	Decisions []plan.Decision
}

type passState struct {
	index     int
	logger    *slog.Logger
	decisions []plan.Decision
}

func (s *passState) decide(kind, subject, result, reason string) {
	s.decisions = append(s.decisions, plan.Decision{
		Pass:    s.index,
		Kind:    kind,
		Subject: subject,
		Result:  result,
		Reason:  reason,
	})
	attrs := append(logging.DecisionAttrs(kind, result, reason), logging.String("subject", subject))
	s.logger.Debug("resolver decision", logging.Args(attrs...)...)
}

// ResolvePass resolves chain against one capability set. Nodes placed in this
// pass leave chain; split nodes leave their second half behind, marked for
// the next pass. Inconsistencies drop the affected transform and are
// reported as decisions; any other failure aborts the pass.
func (r *Resolver) ResolvePass(ctx context.Context, caps feature.ExecuteCaps, chain *filter.Chain) (*PassResult, error) {
	if chain == nil {
		return nil, status.Wrap(status.ErrInvalidArgument, "resolver", "resolve pass", "nil chain", nil)
	}
	index, _ := status.PassFromContext(ctx)
	state := &passState{index: index, logger: logging.WithContext(ctx, r.logger)}

	for _, e := range chain.Entries() {
		e.Node.Caps.UsedForNextPass = false
	}
	r.route(state, caps, chain)

	// Each handler builds one plan node per pass, so a second node of the
	// same type stays in chain for a later pass.
	executed := chain.EmptyLike()
	placed := make(map[feature.Type]bool)
	for _, e := range chain.Entries() {
		node := e.Node
		if node.Caps.UsedForNextPass {
			continue
		}
		h := r.registry.Lookup(node.Type)
		if h == nil || !h.IsFeatureEnabled(caps) {
			continue
		}
		if placed[h.Type()] {
			state.decide("engine_slot", node.String(), "deferred", h.Type().String()+" already placed in this pass")
			continue
		}
		if node.Caps.Isolated && executed.Len() > 0 {
			state.decide("isolated", node.String(), "deferred", "pass already holds other nodes")
			continue
		}
		trigger, err := h.UpdateFeaturePipe(caps, node, chain, executed, e.IsInput, e.Index)
		if err != nil {
			return nil, err
		}
		placed[h.Type()] = true
		if trigger != TriggerNone {
			state.decide("split", node.Type.String(), "split", trigger.String())
		}
		if node.Caps.Isolated {
			state.decide("isolated", node.String(), "alone", "node is resolved in its own pass")
			break
		}
	}

	result := &PassResult{Index: index, Caps: caps, Executed: executed}
	for _, h := range r.registry.Handlers() {
		n, err := h.CreateExecutionNode(caps, executed)
		if err != nil {
			if status.Degradable(err) {
				state.decide("dropped", h.Type().String(), "dropped", err.Error())
				continue
			}
			r.Release(result)
			return nil, err
		}
		if n != nil {
			result.Nodes = append(result.Nodes, n)
		}
	}
	result.Decisions = state.decisions
	state.logger.Debug("pass resolved",
		logging.String("caps", caps.String()),
		logging.Int("plan_nodes", len(result.Nodes)),
		logging.Int("remaining", chain.Len()),
	)
	return result, nil
}

// Release returns the pass's plan nodes to the pool.
func (r *Resolver) Release(result *PassResult) {
	if result == nil {
		return
	}
	for _, n := range result.Nodes {
		if err := r.pool.Return(n); err != nil {
			r.logger.Warn("plan node return failed", logging.Error(err))
		}
	}
	result.Nodes = nil
}

// route assigns an engine to every generic node the pass can serve and runs
// the denoise height gate on nodes without a negotiated bitmap.
func (r *Resolver) route(state *passState, caps feature.ExecuteCaps, chain *filter.Chain) {
	for _, e := range chain.Entries() {
		node := e.Node
		if node.Type.Kind == feature.KindDenoise && node.Caps.Zero() && !DenoiseExecutionCaps(node) {
			chain.Remove(node)
			params, _ := node.Denoise()
			reason := fmt.Sprintf("height %d not aligned to %d for %s", params.Height, params.HeightAlignUnit, params.Format)
			state.decide("denoise_gate", node.Type.String(), "disabled", reason)
			state.logger.Info("denoise disabled for frame",
				logging.Args(logging.DecisionAttrs("denoise_gate", "disabled", reason)...)...)
			continue
		}
		if !node.Type.IsGeneric() {
			continue
		}
		var (
			engine feature.Engine
			ok     bool
			reason string
		)
		switch node.Type.Kind {
		case feature.KindCsc:
			engine, ok = cscEngine(caps, node.Caps)
			reason = "first engine serving the node"
		case feature.KindDenoise:
			engine, ok = denoiseEngine(caps, node)
			reason = "stage " + stageOf(node)
		}
		if !ok {
			continue
		}
		node.Type = feature.Type{Kind: node.Type.Kind, Engine: engine}
		if node.Caps.Zero() {
			node.Caps = feature.ForEngine(engine)
		}
		state.decide("route", node.Type.String(), engine.String(), reason)
	}
}

func cscEngineServes(caps feature.ExecuteCaps, e feature.Engine) bool {
	switch e {
	case feature.EngineSfc:
		return caps.Sfc && caps.SfcCsc
	case feature.EngineVebox:
		return caps.Vebox && (caps.FeCsc || caps.BeCsc)
	case feature.EngineRender:
		return caps.Render
	default:
		return false
	}
}

// cscEngine prefers an engine the node asks for. Without one it falls back to
// the fixed-function engines; the render engine is only chosen on request.
func cscEngine(caps feature.ExecuteCaps, node feature.EngineCaps) (feature.Engine, bool) {
	for _, e := range []feature.Engine{feature.EngineSfc, feature.EngineVebox, feature.EngineRender} {
		if node.Needs(e) && cscEngineServes(caps, e) {
			return e, true
		}
	}
	for _, e := range []feature.Engine{feature.EngineSfc, feature.EngineVebox} {
		if cscEngineServes(caps, e) {
			return e, true
		}
	}
	return feature.EngineNone, false
}

func denoiseEngine(caps feature.ExecuteCaps, node *filter.Node) (feature.Engine, bool) {
	params, ok := node.Denoise()
	if !ok {
		return feature.EngineNone, false
	}
	if params.Stage == filter.StageAdaptiveEstimate {
		if caps.Render && caps.HVSCalc {
			return feature.EngineRender, true
		}
		return feature.EngineNone, false
	}
	if caps.Vebox && caps.Denoise {
		return feature.EngineVebox, true
	}
	return feature.EngineNone, false
}

func stageOf(node *filter.Node) string {
	if p, ok := node.Denoise(); ok {
		return p.Stage.String()
	}
	return ""
}

// ResolveFrame resolves chain against each capability set in order, applies
// every plan node to b (when non-nil), and returns the frame plan. Nodes no
// pass could place are reported as unresolved.
func (r *Resolver) ResolveFrame(ctx context.Context, chain *filter.Chain, passes []feature.ExecuteCaps, b plan.Builder) (*plan.Frame, error) {
	if len(passes) == 0 {
		return nil, status.Wrap(status.ErrInvalidArgument, "resolver", "resolve frame", "no capability sets", nil)
	}
	if r.maxPasses > 0 && len(passes) > r.maxPasses {
		return nil, status.Wrap(status.ErrInvalidArgument, "resolver", "resolve frame",
			fmt.Sprintf("%d passes exceeds limit %d", len(passes), r.maxPasses), nil)
	}

	id, _ := status.FrameIDFromContext(ctx)
	frame := &plan.Frame{ID: id, ResolvedAt: time.Now().UTC()}
	logger := logging.WithContext(ctx, r.logger)

	for i, caps := range passes {
		pctx := status.WithPass(ctx, i+1)
		result, err := r.ResolvePass(pctx, caps, chain)
		if err != nil {
			logging.ErrorWithContext(logger, "pass failed", "pass_failed",
				logging.Int(logging.FieldPass, i+1),
				logging.String("error_code", string(status.CodeOf(err))),
				logging.Error(err),
			)
			return nil, err
		}
		pass := plan.Pass{Index: i + 1, Caps: caps}
		for _, n := range result.Nodes {
			rec := &plan.Recorder{}
			if err := n.Apply(rec); err != nil {
				r.Release(result)
				return nil, err
			}
			if b != nil {
				if err := n.Apply(b); err != nil {
					r.Release(result)
					return nil, err
				}
			}
			last, _ := rec.Last()
			pass.Steps = append(pass.Steps, plan.Step{
				Type:   n.Type,
				Name:   n.Type.String(),
				Setter: last.Setter,
				Block:  last.Block,
			})
		}
		r.Release(result)
		frame.Passes = append(frame.Passes, pass)
		frame.Decisions = append(frame.Decisions, result.Decisions...)
	}

	for _, e := range chain.Entries() {
		frame.Unresolved = append(frame.Unresolved, plan.Unresolved{
			Type:   e.Node.Type.String(),
			Caps:   e.Node.Caps.String(),
			Reason: leftoverReason(r.registry, e.Node),
		})
	}
	logger.Info("frame resolved",
		logging.Int("passes", len(frame.Passes)),
		logging.Int("steps", frame.StepCount()),
		logging.Int("unresolved", len(frame.Unresolved)),
	)
	return frame, nil
}

func leftoverReason(reg *Registry, node *filter.Node) string {
	switch {
	case node.Type.IsGeneric():
		return "no pass offered an engine for the node"
	case node.Type == feature.CscOnRender:
		return "left for composition"
	case reg.Lookup(node.Type) == nil:
		return "no policy for " + node.Type.String()
	default:
		return "no pass placed the node"
	}
}
