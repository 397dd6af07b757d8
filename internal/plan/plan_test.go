package plan_test

import (
	"errors"
	"testing"

	"framepass/internal/calc"
	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/logging"
	"framepass/internal/plan"
	"framepass/internal/status"
	"framepass/internal/surface"
)

func TestPoolReusesReturnedNodes(t *testing.T) {
	pool := plan.NewPool(0, logging.NewNop())
	first, err := pool.Checkout(feature.CscOnSfc)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if pool.Outstanding(feature.CscOnSfc) != 1 {
		t.Fatalf("outstanding = %d", pool.Outstanding(feature.CscOnSfc))
	}
	if err := pool.Return(first); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if err := pool.Return(first); !errors.Is(err, status.ErrInternalInconsistency) {
		t.Fatalf("double return should be inconsistent, got %v", err)
	}
	second, err := pool.Checkout(feature.CscOnSfc)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if second != first {
		t.Fatal("expected freelist reuse")
	}
	other, err := pool.Checkout(feature.CscOnVebox)
	if err != nil {
		t.Fatalf("Checkout vebox: %v", err)
	}
	if other == first {
		t.Fatal("pools are keyed by type")
	}
}

func TestPoolLimit(t *testing.T) {
	pool := plan.NewPool(1, nil)
	n, err := pool.Checkout(feature.DenoiseOnVebox)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if _, err := pool.Checkout(feature.DenoiseOnVebox); !errors.Is(err, status.ErrResourceExhausted) {
		t.Fatalf("expected exhaustion, got %v", err)
	}
	if err := pool.Return(n); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if _, err := pool.Checkout(feature.DenoiseOnVebox); err != nil {
		t.Fatalf("Checkout after return: %v", err)
	}
	if _, err := pool.Checkout(feature.GenericCsc); !errors.Is(err, status.ErrInvalidArgument) {
		t.Fatalf("generic checkout should fail, got %v", err)
	}
}

func TestNodeApplyHandsBlockToBuilder(t *testing.T) {
	pool := plan.NewPool(0, nil)
	n, err := pool.Checkout(feature.CscOnVebox)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	rec := &plan.Recorder{}
	if err := n.Apply(rec); !errors.Is(err, status.ErrInternalInconsistency) {
		t.Fatalf("apply before compute should fail, got %v", err)
	}
	req := &filter.CscParams{InputFormat: surface.FormatNV12, OutputFormat: surface.FormatNV12}
	if err := n.Compute(req, feature.ExecuteCaps{Vebox: true}); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if err := n.Apply(rec); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	last, ok := rec.Last()
	if !ok || last.Setter != "vebox_csc" || last.Engine != feature.EngineVebox {
		t.Fatalf("unexpected record %+v", last)
	}
	if last.Block == n.Block() {
		t.Fatal("recorder must snapshot, not alias, the block")
	}
	if _, ok := last.Block.(*calc.VeboxCscParams); !ok {
		t.Fatalf("unexpected block type %T", last.Block)
	}
}

func TestNodeRejectsMismatchedParams(t *testing.T) {
	pool := plan.NewPool(0, nil)
	n, err := pool.Checkout(feature.DenoiseOnVebox)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if err := n.Compute(&filter.CscParams{}, feature.ExecuteCaps{Vebox: true}); !errors.Is(err, status.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
