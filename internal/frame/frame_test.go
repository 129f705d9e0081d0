package frame

import (
	"reflect"
	"testing"
)

type testWindow struct{ id uint32 }

func (w *testWindow) ID() uint32 { return w.id }

func defaultOpts() SplitOptions {
	return SplitOptions{}
}

func TestSplitAndFocus(t *testing.T) {
	root := CreateRoot(Rect{X: 0, Y: 0, Width: 1000, Height: 800}, Gaps{})
	focus, err := Split(root, nil, After, Horizontal, true, defaultOpts())
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	top := Root(root)
	if top.IsLeaf() {
		t.Fatalf("the split should have put an inner frame above root")
	}
	left, right := top.Left(), top.Right()
	if got := left.Rect(); got != (Rect{X: 0, Y: 0, Width: 500, Height: 800}) {
		t.Errorf("left rect = %+v", got)
	}
	if got := right.Rect(); got != (Rect{X: 500, Y: 0, Width: 500, Height: 800}) {
		t.Errorf("right rect = %+v", got)
	}
	if focus != right {
		t.Errorf("focus should follow the new leaf on a user-initiated split")
	}
}

func TestGeometryPartitionsRoot(t *testing.T) {
	root := CreateRoot(Rect{X: 0, Y: 0, Width: 1200, Height: 900}, Gaps{Inner: 4})
	_, _ = Split(root, nil, After, Horizontal, true, defaultOpts())
	top := Root(root)
	_, _ = Split(top.Left(), nil, After, Vertical, true, defaultOpts())

	var leaves []*Frame
	leaves = Leaves(top, leaves)
	var area int64
	for _, l := range leaves {
		r := l.Rect()
		area += int64(r.Width) * int64(r.Height)
	}
	want := int64(1200)*int64(900) - int64(4)*int64(900) - int64(4)*int64((1200-4)/2)
	if len(leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(leaves))
	}
	if area != want {
		t.Errorf("leaf area = %d, want %d (root area minus inner gaps)", area, want)
	}
}

func TestSplitRemoveRoundTrip(t *testing.T) {
	root := CreateRoot(Rect{X: 0, Y: 0, Width: 800, Height: 600}, Gaps{})
	before := root.Rect()

	focus, err := Split(root, nil, After, Vertical, true, defaultOpts())
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	top := Root(focus)
	if err := Remove(focus, defaultOpts()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !top.IsLeaf() {
		t.Fatalf("the top frame should be a leaf again after round trip")
	}
	if top.Rect() != before {
		t.Errorf("rect changed across round trip: %+v vs %+v", top.Rect(), before)
	}
}

func TestStashRoundTrip(t *testing.T) {
	root := CreateRoot(Rect{X: 0, Y: 0, Width: 1000, Height: 800}, Gaps{})
	_, err := Split(root, nil, After, Horizontal, true, defaultOpts())
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	top := Root(root)
	win := &testWindow{id: 1}
	top.Right().SetWindow(win)

	s := NewStash()
	stashed := s.Push(top)
	if !top.IsEmpty() {
		t.Fatalf("root should be an empty leaf after stashing")
	}

	popped := s.Pop(func(Window) bool { return true })
	if popped != stashed {
		t.Fatalf("pop should return the pushed subtree")
	}
	if popped.Right().Window() != win {
		t.Errorf("window reference lost across stash round trip")
	}
	if popped.Right().Rect().Width != 500 {
		t.Errorf("ratio/geometry lost across stash round trip: %+v", popped.Right().Rect())
	}
}

func TestStashDiscardsInvalidEntries(t *testing.T) {
	s := NewStash()
	good := CreateRoot(Rect{Width: 100, Height: 100}, Gaps{})
	good.SetWindow(&testWindow{id: 1})
	s.Push(good)

	stale := CreateRoot(Rect{Width: 100, Height: 100}, Gaps{})
	stale.SetWindow(&testWindow{id: 99})
	s.Push(stale)

	popped := s.Pop(func(w Window) bool { return w.ID() == 1 })
	if popped == nil || popped.Window().ID() != 1 {
		t.Fatalf("expected the valid entry to be returned")
	}
	if s.Len() != 0 {
		t.Errorf("stale entry should have been discarded, not re-stashed")
	}
}

func TestMoveBetweenFrames(t *testing.T) {
	root := CreateRoot(Rect{X: 0, Y: 0, Width: 800, Height: 600}, Gaps{})
	_, _ = Split(root, nil, After, Horizontal, true, defaultOpts())
	left, right := Root(root).Left(), Root(root).Right()
	win := &testWindow{id: 1}
	left.SetWindow(win)

	opts := SplitOptions{AutoRemove: true}
	if err := Move(left, Right, nil, opts, nil); err != nil {
		t.Fatalf("move: %v", err)
	}
	if right.Window() != win {
		t.Errorf("window should have moved into the right frame")
	}
}

func TestEqualizeIdempotent(t *testing.T) {
	root := CreateRoot(Rect{X: 0, Y: 0, Width: 997, Height: 600}, Gaps{Inner: 3})
	_, _ = Split(root, nil, After, Horizontal, true, defaultOpts())
	top := Root(root)
	_, _ = Split(top.Right(), nil, After, Horizontal, true, defaultOpts())

	Equalize(top, Horizontal)
	first := snapshot(top)
	Equalize(top, Horizontal)
	second := snapshot(top)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("equalize is not idempotent: %v vs %v", first, second)
	}
}

func snapshot(f *Frame) [][4]int32 {
	var out [][4]int32
	Walk(f, func(n *Frame) {
		r := n.Rect()
		out = append(out, [4]int32{r.X, r.Y, r.Width, r.Height})
	})
	return out
}

func TestBumpSaturation(t *testing.T) {
	root := CreateRoot(Rect{X: 0, Y: 0, Width: 100, Height: 600}, Gaps{})
	_, _ = Split(root, nil, After, Horizontal, true, defaultOpts())
	left := Root(root).Left()

	actual, err := left.BumpEdge(Right, 1000)
	if err != nil {
		t.Fatalf("bump: %v", err)
	}
	if actual > 1000 || actual < -1000 {
		t.Fatalf("|actual| must be <= |amount|: got %d", actual)
	}
	actual2, err := left.BumpEdge(Right, 5)
	if err != nil {
		t.Fatalf("bump: %v", err)
	}
	if actual2 != 0 {
		t.Errorf("expected saturated second bump to return 0, got %d", actual2)
	}
}
