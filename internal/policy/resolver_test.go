package policy_test

import (
	"context"
	"errors"
	"testing"

	"framepass/internal/calc"
	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/logging"
	"framepass/internal/plan"
	"framepass/internal/policy"
	"framepass/internal/status"
	"framepass/internal/surface"
	"framepass/internal/testsupport"
)

func newResolver(t *testing.T, opts policy.Options) *policy.Resolver {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return policy.NewResolver(opts)
}

var adaptivePasses = []feature.ExecuteCaps{
	{Render: true, HVSCalc: true},
	{Vebox: true, Denoise: true},
}

func decisionsOfKind(frame *plan.Frame, kind string) []plan.Decision {
	var out []plan.Decision
	for _, d := range frame.Decisions {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

func TestResolveFrameAdaptiveDenoiseAlignedHeight(t *testing.T) {
	r := newResolver(t, policy.Options{})
	rec := &plan.Recorder{}
	ctx := status.WithFrameID(context.Background(), "frame-1088")

	frame, err := r.ResolveFrame(ctx, filter.NewOneToOne(testsupport.AdaptiveDenoise(1088)), adaptivePasses, rec)
	if err != nil {
		t.Fatalf("ResolveFrame: %v", err)
	}
	if frame.ID != "frame-1088" {
		t.Fatalf("frame id = %q", frame.ID)
	}
	if len(frame.Passes) != 2 || frame.StepCount() != 2 {
		t.Fatalf("expected one step per pass, got %+v", frame.Passes)
	}

	estimate := frame.Passes[0].Steps[0]
	kernel, ok := estimate.Block.(*calc.RenderKernelParams)
	if !ok || estimate.Setter != "render_kernel" {
		t.Fatalf("pass 1 step = %+v", estimate)
	}
	if kernel.KernelID != calc.AdaptiveEstimateKernel || kernel.ThreadWidth != 1 || kernel.ThreadHeight != 1 {
		t.Fatalf("kernel = %+v", kernel)
	}

	update := frame.Passes[1].Steps[0]
	dn, ok := update.Block.(*calc.VeboxDenoiseParams)
	if !ok || update.Setter != "vebox_denoise" {
		t.Fatalf("pass 2 step = %+v", update)
	}
	if dn.Stage != filter.StageAdaptiveUpdate || !dn.DenoiseEnabled || !dn.ChromaEnabled {
		t.Fatalf("update block = %+v", dn)
	}
	if len(frame.Unresolved) != 0 {
		t.Fatalf("unresolved = %+v", frame.Unresolved)
	}
	if got := decisionsOfKind(frame, "dropped"); len(got) != 0 {
		t.Fatalf("unexpected drops: %+v", got)
	}
	if len(rec.Records) != 2 {
		t.Fatalf("builder saw %d blocks", len(rec.Records))
	}
	for _, typ := range []feature.Type{feature.DenoiseOnRender, feature.DenoiseOnVebox} {
		if n := r.Pool().Outstanding(typ); n != 0 {
			t.Fatalf("%s outstanding = %d", typ, n)
		}
	}
}

func TestResolveFrameAdaptiveDenoiseUnalignedHeight(t *testing.T) {
	r := newResolver(t, policy.Options{})
	chain := filter.NewOneToOne(testsupport.AdaptiveDenoise(1081))

	frame, err := r.ResolveFrame(context.Background(), chain, adaptivePasses, nil)
	if err != nil {
		t.Fatalf("gate must degrade, not fail: %v", err)
	}
	if frame.StepCount() != 0 {
		t.Fatalf("denoise should be off for the frame, got %d steps", frame.StepCount())
	}
	gates := decisionsOfKind(frame, "denoise_gate")
	if len(gates) != 1 || gates[0].Result != "disabled" || gates[0].Pass != 1 {
		t.Fatalf("gate decisions = %+v", gates)
	}
	if chain.Len() != 0 || len(frame.Unresolved) != 0 {
		t.Fatal("disabled denoise should leave the chain")
	}
}

func TestResolveFrameTwoPassScaling(t *testing.T) {
	r := newResolver(t, policy.Options{})
	passes := []feature.ExecuteCaps{
		{Sfc: true, SfcCsc: true, FirstPassOfSfc2PassScaling: true},
		{Sfc: true, SfcCsc: true},
	}
	frame, err := r.ResolveFrame(context.Background(), filter.NewOneToOne(testsupport.ScalerConversion()), passes, nil)
	if err != nil {
		t.Fatalf("ResolveFrame: %v", err)
	}
	if frame.StepCount() != 2 {
		t.Fatalf("steps = %d", frame.StepCount())
	}
	first := frame.Passes[0].Steps[0].Block.(*calc.SfcCscParams)
	if first.OutputFormat != surface.FormatNV12 || first.CSCEnabled || first.IEFEnabled {
		t.Fatalf("first pass should be neutral: %+v", first)
	}
	second := frame.Passes[1].Steps[0].Block.(*calc.SfcCscParams)
	if second.OutputFormat != surface.FormatA8R8G8B8 || !second.CSCEnabled || !second.IEFEnabled {
		t.Fatalf("second pass should convert: %+v", second)
	}
	if second.DitheringNeeded {
		t.Fatal("8-bit to 8-bit needs no dithering")
	}
	splits := decisionsOfKind(frame, "split")
	if len(splits) != 1 || splits[0].Reason != policy.TriggerTwoPassScaling.String() {
		t.Fatalf("split decisions = %+v", splits)
	}
}

func TestResolveFrameForcedRenderLeavesNodeForComposition(t *testing.T) {
	r := newResolver(t, policy.Options{})
	passes := []feature.ExecuteCaps{
		{Vebox: true, BeCsc: true, ForceCscToRender: true},
		{Render: true},
	}
	frame, err := r.ResolveFrame(context.Background(), filter.NewOneToOne(testsupport.ScalerConversion()), passes, nil)
	if err != nil {
		t.Fatalf("ResolveFrame: %v", err)
	}
	if len(frame.Passes[0].Steps) != 1 || frame.Passes[0].Steps[0].Setter != "vebox_csc" {
		t.Fatalf("pass 1 = %+v", frame.Passes[0])
	}
	carried := frame.Passes[0].Steps[0].Block.(*calc.VeboxCscParams)
	if carried.Alpha != nil {
		t.Fatal("carried pass must not fill alpha")
	}
	if len(frame.Unresolved) != 1 {
		t.Fatalf("unresolved = %+v", frame.Unresolved)
	}
	left := frame.Unresolved[0]
	if left.Type != feature.CscOnRender.String() || left.Reason != "left for composition" {
		t.Fatalf("leftover = %+v", left)
	}
}

func TestResolveFrameVeboxCarryThenScaler(t *testing.T) {
	r := newResolver(t, policy.Options{})
	node := testsupport.ScalerConversion()
	node.Type = feature.CscOnVebox
	node.Caps = feature.EngineCaps{Enabled: true, SfcNeeded: true}
	passes := []feature.ExecuteCaps{
		{Vebox: true, FeCsc: true},
		{Sfc: true, SfcCsc: true},
	}
	frame, err := r.ResolveFrame(context.Background(), filter.NewOneToOne(node), passes, nil)
	if err != nil {
		t.Fatalf("ResolveFrame: %v", err)
	}
	if got := frame.Passes[0].Steps; len(got) != 1 || got[0].Type != feature.CscOnVebox {
		t.Fatalf("pass 1 steps = %+v", got)
	}
	if got := frame.Passes[1].Steps; len(got) != 1 || got[0].Type != feature.CscOnSfc {
		t.Fatalf("pass 2 steps = %+v", got)
	}
	splits := decisionsOfKind(frame, "split")
	if len(splits) != 1 || splits[0].Reason != policy.TriggerVeboxCarry.String() {
		t.Fatalf("split decisions = %+v", splits)
	}
}

func TestResolvePassIsolatedNodeWaits(t *testing.T) {
	r := newResolver(t, policy.Options{})
	dn := filter.NewDenoise(feature.DenoiseOnVebox, filter.DenoiseParams{
		Format: surface.FormatNV12, Height: 1080, Enabled: true, Luma: true,
	})
	dn.Caps = feature.ForEngine(feature.EngineVebox)
	csc := filter.NewCsc(feature.CscOnVebox, filter.CscParams{InputFormat: surface.FormatNV12, OutputFormat: surface.FormatNV12})
	csc.Caps = feature.ForEngine(feature.EngineVebox)
	csc.Caps.Isolated = true

	passes := []feature.ExecuteCaps{
		{Vebox: true, Denoise: true, BeCsc: true},
		{Vebox: true, BeCsc: true},
	}
	frame, err := r.ResolveFrame(context.Background(), filter.NewOneToOne(dn, csc), passes, nil)
	if err != nil {
		t.Fatalf("ResolveFrame: %v", err)
	}
	if got := frame.Passes[0].Steps; len(got) != 1 || got[0].Setter != "vebox_denoise" {
		t.Fatalf("pass 1 steps = %+v", got)
	}
	if got := frame.Passes[1].Steps; len(got) != 1 || got[0].Setter != "vebox_csc" {
		t.Fatalf("pass 2 steps = %+v", got)
	}
	deferred := false
	for _, d := range decisionsOfKind(frame, "isolated") {
		if d.Pass == 1 && d.Result == "deferred" {
			deferred = true
		}
	}
	if !deferred {
		t.Fatalf("decisions = %+v", frame.Decisions)
	}
}

func sameEngineChain(t *testing.T) *filter.Chain {
	t.Helper()
	chain := filter.NewChain(1, 1)
	in := testsupport.CscNode(feature.GenericCsc, surface.FormatNV12, surface.FormatNV12)
	out := testsupport.CscNode(feature.GenericCsc, surface.FormatYUY2, surface.FormatNV12)
	if err := chain.Insert(true, 0, in); err != nil {
		t.Fatalf("Insert input: %v", err)
	}
	if err := chain.Insert(false, 0, out); err != nil {
		t.Fatalf("Insert output: %v", err)
	}
	return chain
}

func TestResolveFrameSameTypeNodesShareOnePass(t *testing.T) {
	tests := []struct {
		name           string
		passes         []feature.ExecuteCaps
		wantSteps      []int
		wantUnresolved int
	}{
		{
			name:           "single pass reports the second node",
			passes:         []feature.ExecuteCaps{{Vebox: true, BeCsc: true}},
			wantSteps:      []int{1},
			wantUnresolved: 1,
		},
		{
			name:      "second pass picks it up",
			passes:    []feature.ExecuteCaps{{Vebox: true, BeCsc: true}, {Vebox: true, BeCsc: true}},
			wantSteps: []int{1, 1},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newResolver(t, policy.Options{})
			chain := sameEngineChain(t)
			frame, err := r.ResolveFrame(context.Background(), chain, tc.passes, nil)
			if err != nil {
				t.Fatalf("ResolveFrame: %v", err)
			}
			for i, want := range tc.wantSteps {
				if got := len(frame.Passes[i].Steps); got != want {
					t.Fatalf("pass %d steps = %d, want %d", i+1, got, want)
				}
			}
			if len(frame.Unresolved) != tc.wantUnresolved {
				t.Fatalf("unresolved = %+v", frame.Unresolved)
			}
			if tc.wantUnresolved > 0 && frame.Unresolved[0].Type != feature.CscOnVebox.String() {
				t.Fatalf("unresolved type = %q", frame.Unresolved[0].Type)
			}
			if placed := frame.StepCount() + len(frame.Unresolved); placed != 2 {
				t.Fatalf("accounted for %d of 2 transforms", placed)
			}
			if chain.Len() != tc.wantUnresolved {
				t.Fatalf("remaining = %d", chain.Len())
			}
			deferred := decisionsOfKind(frame, "engine_slot")
			if len(deferred) != 1 || deferred[0].Pass != 1 || deferred[0].Result != "deferred" {
				t.Fatalf("engine_slot decisions = %+v", deferred)
			}
		})
	}
}

func TestResolvePassMissingNodeDegrades(t *testing.T) {
	r := newResolver(t, policy.Options{})
	ctx := status.WithPass(context.Background(), 1)
	result, err := r.ResolvePass(ctx, feature.ExecuteCaps{Sfc: true, SfcCsc: true}, filter.NewOneToOne())
	if err != nil {
		t.Fatalf("ResolvePass: %v", err)
	}
	if len(result.Nodes) != 0 {
		t.Fatalf("nodes = %d", len(result.Nodes))
	}
	if len(result.Decisions) != 1 || result.Decisions[0].Kind != "dropped" || result.Decisions[0].Subject != feature.CscOnSfc.String() {
		t.Fatalf("decisions = %+v", result.Decisions)
	}
}

func TestResolvePassRejectsNonOneToOneChain(t *testing.T) {
	r := newResolver(t, policy.Options{})
	chain := filter.NewChain(2, 1)
	node := testsupport.ScalerConversion()
	node.Type = feature.CscOnSfc
	node.Caps = feature.ForEngine(feature.EngineSfc)
	if err := chain.Insert(true, 0, node); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	_, err := r.ResolvePass(context.Background(), feature.ExecuteCaps{Sfc: true, SfcCsc: true}, chain)
	if !errors.Is(err, status.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if n := r.Pool().Outstanding(feature.CscOnSfc); n != 0 {
		t.Fatalf("outstanding = %d", n)
	}
}

func TestResolvePassPoolLimit(t *testing.T) {
	r := newResolver(t, policy.Options{MaxOutstanding: 1})
	caps := feature.ExecuteCaps{Sfc: true, SfcCsc: true}

	first, err := r.ResolvePass(context.Background(), caps, filter.NewOneToOne(testsupport.ScalerConversion()))
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if _, err := r.ResolvePass(context.Background(), caps, filter.NewOneToOne(testsupport.ScalerConversion())); !errors.Is(err, status.ErrResourceExhausted) {
		t.Fatalf("expected exhaustion, got %v", err)
	}
	r.Release(first)
	if n := r.Pool().Outstanding(feature.CscOnSfc); n != 0 {
		t.Fatalf("outstanding after release = %d", n)
	}
}

func TestResolveFramePassLimits(t *testing.T) {
	r := newResolver(t, policy.Options{MaxPasses: 1})
	chain := filter.NewOneToOne(testsupport.ScalerConversion())
	if _, err := r.ResolveFrame(context.Background(), chain, nil, nil); !errors.Is(err, status.ErrInvalidArgument) {
		t.Fatalf("no passes: %v", err)
	}
	if _, err := r.ResolveFrame(context.Background(), chain, adaptivePasses, nil); !errors.Is(err, status.ErrInvalidArgument) {
		t.Fatalf("too many passes: %v", err)
	}
}

func TestResolveFrameReportsUnservedNodes(t *testing.T) {
	r := newResolver(t, policy.Options{})
	frame, err := r.ResolveFrame(context.Background(), filter.NewOneToOne(testsupport.ScalerConversion()), []feature.ExecuteCaps{{Vebox: true}}, nil)
	if err != nil {
		t.Fatalf("ResolveFrame: %v", err)
	}
	if len(frame.Unresolved) != 1 || frame.Unresolved[0].Type != "csc" {
		t.Fatalf("unresolved = %+v", frame.Unresolved)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := newResolver(t, policy.Options{})
	reg := r.Registry()
	for _, typ := range []feature.Type{feature.CscOnSfc, feature.CscOnVebox, feature.DenoiseOnVebox, feature.DenoiseOnRender} {
		h := reg.Lookup(typ)
		if h == nil || h.Type() != typ {
			t.Fatalf("Lookup(%s) = %v", typ, h)
		}
	}
	for _, typ := range []feature.Type{feature.CscOnRender, feature.GenericCsc, feature.GenericDenoise} {
		if reg.Lookup(typ) != nil {
			t.Fatalf("Lookup(%s) should be empty", typ)
		}
	}
	if len(reg.Handlers()) != 4 {
		t.Fatalf("handlers = %d", len(reg.Handlers()))
	}
}
