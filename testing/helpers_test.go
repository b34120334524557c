package testing

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/responsive"
)

func TestScriptedEvaluator(t *testing.T) {
	e := NewScriptedEvaluator("(max-width: 10px)")

	if !e.Matches("(max-width: 10px)") {
		t.Error("expected scripted query to match")
	}
	if e.Matches("(min-width: 10px)") {
		t.Error("expected unscripted query not to match")
	}

	e.Script("(min-width: 10px)")
	if e.Matches("(max-width: 10px)") || !e.Matches("(min-width: 10px)") {
		t.Error("expected Script to replace the answers")
	}

	if calls := e.Calls(); len(calls) != 4 {
		t.Errorf("expected 4 calls, got %d", len(calls))
	}
}

func TestCountingNotifier(t *testing.T) {
	n := NewCountingNotifier()

	fired := 0
	unsubscribe := n.Subscribe(func() { fired++ })
	n.Fire()

	if fired != 1 || n.Active() != 1 || n.Subscribes() != 1 {
		t.Errorf("unexpected counts fired=%d active=%d subscribes=%d", fired, n.Active(), n.Subscribes())
	}

	unsubscribe()
	unsubscribe()
	n.Fire()

	if fired != 1 || n.Active() != 0 || n.Unsubscribes() != 1 {
		t.Errorf("unexpected counts fired=%d active=%d unsubscribes=%d", fired, n.Active(), n.Unsubscribes())
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	ctx := context.Background()

	r.Report(ctx, responsive.Diagnostic{Kind: responsive.KindLength})
	r.Report(ctx, responsive.Diagnostic{Kind: responsive.KindUndefinedBreakpoint})

	kinds := r.Kinds()
	if len(kinds) != 2 || kinds[0] != responsive.KindLength || kinds[1] != responsive.KindUndefinedBreakpoint {
		t.Errorf("unexpected kinds %v", kinds)
	}

	r.Reset()
	if len(r.Diagnostics()) != 0 {
		t.Error("expected Reset to discard diagnostics")
	}
}

func TestWaitFor(t *testing.T) {
	t.Run("condition met immediately", func(t *testing.T) {
		result := WaitFor(t, 100*time.Millisecond, func() bool {
			return true
		})
		if !result {
			t.Error("expected WaitFor to return true")
		}
	})

	t.Run("condition never met", func(t *testing.T) {
		result := WaitFor(t, 50*time.Millisecond, func() bool {
			return false
		})
		if result {
			t.Error("expected WaitFor to return false on timeout")
		}
	})
}

func TestRequireState(t *testing.T) {
	r, _, _ := NewTestResolver(t, 600, map[string]string{"sm": "A"})
	if err := r.Start(context.Background(), nil); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Should not fail for correct state.
	RequireState(t, r, responsive.StateMatched)
	RequireValue(t, r, "A")
}

func TestRequireNoMatch(t *testing.T) {
	r, _, _ := NewTestResolver(t, 50, map[string]string{"sm": "A"})
	if err := r.Start(context.Background(), nil); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	RequireState(t, r, responsive.StateUnmatched)
	RequireNoMatch(t, r)
}

func TestNewTestResolver(t *testing.T) {
	r, viewport, rec := NewTestResolver(t, 300, map[string]int{"small": 1, "huge": 3})

	spec := responsive.Spec{
		{Name: "small", Value: responsive.Pair(false, 600)},
		{Name: "large", Value: responsive.Pair(601, false)},
	}
	if err := r.Start(context.Background(), spec); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if kinds := rec.Kinds(); len(kinds) != 1 || kinds[0] != responsive.KindUndefinedBreakpoint {
		t.Errorf("expected undefined breakpoint warning, got %v", kinds)
	}

	viewport.SetWidth(900)
	RequireState(t, r, responsive.StateUnmatched)

	if viewport.Subscribers() != 1 {
		t.Errorf("expected 1 subscriber, got %d", viewport.Subscribers())
	}
}
