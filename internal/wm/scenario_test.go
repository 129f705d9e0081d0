package wm

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/thepsauce/fensterchef/internal/config"
	"github.com/thepsauce/fensterchef/internal/expr"
	"github.com/thepsauce/fensterchef/internal/frame"
	"github.com/thepsauce/fensterchef/internal/monitor"
	"github.com/thepsauce/fensterchef/internal/sync"
	"github.com/thepsauce/fensterchef/internal/winstate"
)

// fakeBackend is a minimal sync.Backend recording every call, grounded on
// internal/sync's own test fake; kept separate since that one is unexported
// in a different package.
type fakeBackend struct {
	mapped map[xproto.Window]bool
}

func newFakeBackend() *fakeBackend { return &fakeBackend{mapped: map[xproto.Window]bool{}} }

func (f *fakeBackend) ConfigureWindow(xproto.Window, int32, int32, int32, int32, int32) error {
	return nil
}
func (f *fakeBackend) SetBorderColor(xproto.Window, int32) error { return nil }
func (f *fakeBackend) Restack([]xproto.Window) error             { return nil }
func (f *fakeBackend) Map(win xproto.Window) error               { f.mapped[win] = true; return nil }
func (f *fakeBackend) Unmap(win xproto.Window) error             { f.mapped[win] = false; return nil }
func (f *fakeBackend) SetWMState(xproto.Window, uint32) error    { return nil }
func (f *fakeBackend) SetHidden(xproto.Window, bool) error       { return nil }
func (f *fakeBackend) Focus(xproto.Window, bool) error           { return nil }
func (f *fakeBackend) SetActiveWindow(xproto.Window) error       { return nil }
func (f *fakeBackend) SetClientList([]xproto.Window) error       { return nil }
func (f *fakeBackend) SetClientListStacking([]xproto.Window) error { return nil }
func (f *fakeBackend) SetWorkarea(int32, int32, int32, int32) error { return nil }

// newTestContext builds a Context with a live action/expr stack but no X11
// connection, covering every Target method that never dereferences Conn.
func newTestContext(t *testing.T, mons []*monitor.Monitor) (*Context, *winstate.Registry) {
	t.Helper()
	set := monitor.NewSet(frame.NewStash())
	set.Reconcile(mons, frame.Gaps{})
	reg := winstate.NewRegistry()
	stash := frame.NewStash()
	cfg := config.Default()
	backend := newFakeBackend()
	synchronizer := sync.New(backend, nil, cfg)
	c := New(nil, nil, set, reg, stash, cfg, synchronizer, nil, nil)
	return c, reg
}

func createWindow(t *testing.T, reg *winstate.Registry, client xproto.Window, rect winstate.Rect) *winstate.Window {
	t.Helper()
	w, err := reg.Create(winstate.CreateParams{Client: client, Rect: rect})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	reg.SetMode(w, winstate.Tiling)
	return w
}

// Scenario 1 (spec.md §8): splitting the focused frame moves frame-focus
// onto the new, still-empty sibling.
func TestSplitAndFocus(t *testing.T) {
	mon := monitor.New("eDP-1", monitor.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, true, frame.Gaps{})
	c, _ := newTestContext(t, []*monitor.Monitor{mon})

	before := c.FocusedFrame()
	c.SplitDirection(frame.Horizontal)
	after := c.FocusedFrame()

	if after == before {
		t.Fatalf("focus did not move onto the new sibling")
	}
	if !after.IsEmpty() {
		t.Fatalf("expected focus on an empty leaf, got a window")
	}
	if after.Rect().X <= before.Rect().X && after.Rect().Width >= before.Rect().Width {
		t.Errorf("new leaf does not look like a split-off sibling: %+v vs original %+v", after.Rect(), before.Rect())
	}
}

// Scenario 2: moving a window off the outermost edge of its monitor crosses
// onto the adjacent monitor's root frame.
func TestMoveWindowBetweenMonitors(t *testing.T) {
	left := monitor.New("left", monitor.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, true, frame.Gaps{})
	right := monitor.New("right", monitor.Rect{X: 1000, Y: 0, Width: 1000, Height: 800}, false, frame.Gaps{})
	c, reg := newTestContext(t, []*monitor.Monitor{left, right})

	w := createWindow(t, reg, 1, winstate.Rect{X: 0, Y: 0, Width: 1000, Height: 800})
	w.AttachToFrame(left.Root())
	c.SetFocusedFrame(left.Root())

	c.MoveDirection(frame.Right)

	if got := w.Frame(); got == nil || frame.Root(got) != right.Root() {
		t.Fatalf("window did not relocate onto the right monitor's tree")
	}
	if !left.Root().IsEmpty() {
		t.Errorf("left monitor's root should be vacated after the move")
	}
}

// Scenario 3: a window pushed to the stash and then popped back out returns
// under the requesting frame.
func TestStashRoundTrip(t *testing.T) {
	mon := monitor.New("eDP-1", monitor.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, true, frame.Gaps{})
	c, reg := newTestContext(t, []*monitor.Monitor{mon})

	w := createWindow(t, reg, 7, winstate.Rect{X: 0, Y: 0, Width: 1000, Height: 800})
	leaf := mon.Root()
	w.AttachToFrame(leaf)

	c.Stash.Push(leaf)
	if leaf.Window() != nil {
		t.Fatalf("Push should clear the source leaf")
	}
	if c.Stash.Len() != 1 {
		t.Fatalf("expected 1 stashed frame, got %d", c.Stash.Len())
	}

	popped := c.Stash.Pop(func(win frame.Window) bool {
		return reg.Lookup(xproto.Window(win.ID())) != nil
	})
	if popped == nil {
		t.Fatalf("Pop returned nil")
	}
	if got, ok := popped.Window().(*winstate.Window); !ok || got != w {
		t.Fatalf("popped frame does not hold the original window")
	}
}

// Scenario 4: a key binding's expression runs the bound action exactly once.
func TestBindingEvaluationRunsAction(t *testing.T) {
	mon := monitor.New("eDP-1", monitor.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, true, frame.Gaps{})
	c, _ := newTestContext(t, []*monitor.Monitor{mon})

	prog, err := expr.Compile("split-horizontally", c.Actions, c.Config.Globals)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	c.Config.KeyBindings = []config.Binding{{
		Kind:    config.TriggerKeysym,
		Trigger: 0x71,
		Source:  "split-horizontally",
		Expr:    prog,
	}}

	before := c.FocusedFrame()
	c.DispatchKey(0x71, 0, 0, false)
	after := c.FocusedFrame()

	if after == before {
		t.Fatalf("bound action did not run")
	}
}

// Scenario 5: an [assignment] rule with a custom expression overrides the
// default tiling-attach placement.
func TestAssociationOnMapRunsCustomExpr(t *testing.T) {
	mon := monitor.New("eDP-1", monitor.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, true, frame.Gaps{})
	c, reg := newTestContext(t, []*monitor.Monitor{mon})

	prog, err := expr.Compile("toggle-floating", c.Actions, c.Config.Globals)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	c.Config.Associations = []config.Association{{
		InstanceGlob: "float*",
		ClassGlob:    "*",
		Expr:         prog,
	}}

	assoc, ok := matchAssociation(c.Config.Associations, "floaty", "Anything")
	if !ok {
		t.Fatalf("expected the association to match")
	}

	w := createWindow(t, reg, 9, winstate.Rect{X: 0, Y: 0, Width: 200, Height: 200})
	reg.SetMode(w, winstate.Tiling)
	reg.Show(w)
	reg.Focus(w)
	c.runAssociation(assoc)

	if w.Mode() != winstate.Floating {
		t.Fatalf("custom association expression did not run: mode = %v", w.Mode())
	}
	if w.Frame() != nil {
		t.Errorf("a floating window should not be attached to a tiling frame")
	}
}

// Scenario 6: an integer expression with arithmetic evaluates to the
// expected constant, independent of any action dispatch.
func TestIntegerExpressionEvaluation(t *testing.T) {
	g := expr.NewGlobals()
	prog, err := expr.Compile("local a = 3; local b = 4; a * b + 2", nil, g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	vm := expr.NewVM(nil, g.Len())
	v, err := vm.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.Int != 14 {
		t.Errorf("result = %d, want 14", v.Int)
	}
}
