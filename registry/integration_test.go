package registry_test

import (
	"testing"

	"github.com/wippyai/refkit/registry"
	"github.com/wippyai/refkit/shared"
)

type res struct {
	closed int
}

func (r *res) Release() { r.closed++ }

func TestTracker_WithSharedHandles(t *testing.T) {
	tr := registry.NewTracker()
	shared.SetTracer(tr)
	defer shared.SetTracer(nil)

	p := shared.Make(res{})
	q := p.Clone()
	w := shared.NewWeak(p)

	if tr.Len() != 1 {
		t.Fatalf("expected 1 live block, got %d", tr.Len())
	}
	snap := tr.Snapshot()
	if snap[0].Strong != 2 || snap[0].Weak != 1 {
		t.Fatalf("wrong counts: strong=%d weak=%d", snap[0].Strong, snap[0].Weak)
	}
	if !snap[0].Inline {
		t.Fatal("Make should report an inline block")
	}

	p.Release()
	q.Release()
	snap = tr.Snapshot()
	if len(snap) != 1 || snap[0].ObjectLive {
		t.Fatal("object should be released but block still tracked")
	}
	if len(tr.Leaks()) != 0 {
		t.Fatal("released object should not count as a leak")
	}

	w.Release()
	if tr.Len() != 0 {
		t.Fatalf("expected 0 live blocks, got %d", tr.Len())
	}
}

func TestTracker_DetectsLeak(t *testing.T) {
	tr := registry.NewTracker()
	shared.SetTracer(tr)
	defer shared.SetTracer(nil)

	p := shared.New(&res{})
	leaked := p.Clone()
	p.Release()

	leaks := tr.Leaks()
	if len(leaks) != 1 {
		t.Fatalf("expected 1 leak, got %d", len(leaks))
	}
	if leaks[0].Strong != 1 {
		t.Fatalf("leaked block should have one remaining owner, got %d", leaks[0].Strong)
	}

	leaked.Release()
	if len(tr.Leaks()) != 0 {
		t.Fatal("leak should clear after the handle releases")
	}
}

func TestTracker_EventOrdering(t *testing.T) {
	tr := registry.NewTracker()
	shared.SetTracer(tr)
	defer shared.SetTracer(nil)

	var order []registry.EventType
	obs := observerFunc(func(e registry.Event) { order = append(order, e.Type) })
	tr.Subscribe(obs)

	p := shared.New(&res{})
	w := shared.NewWeak(p)
	p.Release()
	w.Release()

	want := []registry.EventType{
		registry.EventAllocated,      // New
		registry.EventCounts,         // NewWeak
		registry.EventCounts,         // p.Release decrement
		registry.EventObjectReleased, // strong hit zero
		registry.EventCounts,         // w.Release decrement
		registry.EventFreed,          // combined count hit zero
	}
	if len(order) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(order), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("event %d: got %v, want %v", i, order[i], want[i])
		}
	}
}

type observerFunc func(registry.Event)

func (f observerFunc) OnBlockEvent(e registry.Event) { f(e) }
