package monitor

import (
	"testing"

	"github.com/thepsauce/fensterchef/internal/frame"
)

func TestReconcileTransfersByName(t *testing.T) {
	set := NewSet(frame.NewStash())
	left := New("LVDS-1", Rect{X: 0, Y: 0, Width: 800, Height: 600}, true, frame.Gaps{})
	set.Reconcile([]*Monitor{left}, frame.Gaps{})
	originalRoot := set.ByName("LVDS-1").Root()

	fresh := New("LVDS-1", Rect{X: 0, Y: 0, Width: 1024, Height: 768}, true, frame.Gaps{})
	set.Reconcile([]*Monitor{fresh}, frame.Gaps{})

	if set.ByName("LVDS-1").Root() != originalRoot {
		t.Fatalf("same-named monitor should keep its root frame across reconcile")
	}
	if r := set.ByName("LVDS-1").Root().Rect(); r.Width != 1024 || r.Height != 768 {
		t.Errorf("root should be resized to new monitor rect, got %+v", r)
	}
}

func TestReconcileStashesLeftovers(t *testing.T) {
	stash := frame.NewStash()
	set := NewSet(stash)
	a := New("A", Rect{Width: 800, Height: 600}, true, frame.Gaps{})
	b := New("B", Rect{X: 800, Width: 800, Height: 600}, false, frame.Gaps{})
	set.Reconcile([]*Monitor{a, b}, frame.Gaps{})

	onlyA := New("A", Rect{Width: 800, Height: 600}, true, frame.Gaps{})
	set.Reconcile([]*Monitor{onlyA}, frame.Gaps{})

	if stash.Len() != 1 {
		t.Fatalf("expected B's subtree to be stashed, stash has %d entries", stash.Len())
	}
}

func TestReconcileReassignsSurvivors(t *testing.T) {
	set := NewSet(frame.NewStash())
	a := New("A", Rect{Width: 800, Height: 600}, true, frame.Gaps{})
	set.Reconcile([]*Monitor{a}, frame.Gaps{})
	originalRoot := set.ByName("A").Root()

	renamed := New("B", Rect{Width: 800, Height: 600}, true, frame.Gaps{})
	set.Reconcile([]*Monitor{renamed}, frame.Gaps{})

	if set.ByName("B").Root() != originalRoot {
		t.Fatalf("renamed monitor should inherit a surviving unmatched root")
	}
}
