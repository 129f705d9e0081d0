package action

import (
	"testing"

	"github.com/thepsauce/fensterchef/internal/expr"
	"github.com/thepsauce/fensterchef/internal/frame"
)

type fakeTarget struct {
	focused   []frame.Direction
	closed    bool
	merged    []string
	quit      bool
	bumped    []int32
	resized   [4]int32
}

func (f *fakeTarget) FocusDirection(d frame.Direction)      { f.focused = append(f.focused, d) }
func (f *fakeTarget) MoveDirection(d frame.Direction)       {}
func (f *fakeTarget) SplitDirection(d frame.SplitDirection) {}
func (f *fakeTarget) BumpEdge(d frame.Direction, amount int32) {
	f.bumped = append(f.bumped, amount)
}
func (f *fakeTarget) ResizeBy(left, top, right, bottom int32) {
	f.resized = [4]int32{left, top, right, bottom}
}
func (f *fakeTarget) Equalize()             {}
func (f *fakeTarget) CloseFocused()         { f.closed = true }
func (f *fakeTarget) MinimizeFocused()      {}
func (f *fakeTarget) ToggleFullscreen()     {}
func (f *fakeTarget) ToggleFloating()       {}
func (f *fakeTarget) ShowMessage(s string)  {}
func (f *fakeTarget) ShowRun()              {}
func (f *fakeTarget) ShowList()             {}
func (f *fakeTarget) MergeDefault(s string) { f.merged = append(f.merged, s) }
func (f *fakeTarget) ReloadConfig()         {}
func (f *fakeTarget) Quit()                 { f.quit = true }

func TestRegisterDefaultsDispatch(t *testing.T) {
	ft := &fakeTarget{}
	r := RegisterDefaults(NewRegistry(), ft)

	g := expr.NewGlobals()
	prog, err := expr.Compile("focus-right; close-window; quit", r, g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	vm := expr.NewVM(r, g.Len())
	if _, err := vm.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(ft.focused) != 1 || ft.focused[0] != frame.Right {
		t.Errorf("expected one focus-right call, got %+v", ft.focused)
	}
	if !ft.closed {
		t.Error("expected close-window to have fired")
	}
	if !ft.quit {
		t.Error("expected quit to have fired")
	}
}

func TestBumpOptionalArgumentDefaultsToStep(t *testing.T) {
	ft := &fakeTarget{}
	r := RegisterDefaults(NewRegistry(), ft)
	g := expr.NewGlobals()

	prog, err := expr.Compile("bump-left", r, g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := expr.NewVM(r, g.Len()).Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ft.bumped) != 1 || ft.bumped[0] != 20 {
		t.Errorf("expected default bump amount 20, got %+v", ft.bumped)
	}

	prog2, err := expr.Compile("bump-left 5", r, g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := expr.NewVM(r, g.Len()).Run(prog2); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ft.bumped) != 2 || ft.bumped[1] != 5 {
		t.Errorf("expected explicit bump amount 5, got %+v", ft.bumped)
	}
}

func TestResizeByQuadArgument(t *testing.T) {
	ft := &fakeTarget{}
	r := RegisterDefaults(NewRegistry(), ft)
	g := expr.NewGlobals()

	prog, err := expr.Compile("resize-by 10, 20", r, g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := expr.NewVM(r, g.Len()).Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ft.resized != [4]int32{10, 20, 10, 20} {
		t.Errorf("expected replicated quad {10,20,10,20}, got %+v", ft.resized)
	}
}

func TestReRegisterKeepsIDStable(t *testing.T) {
	r := NewRegistry()
	var calls int
	id1 := r.Register("quit", expr.ArgVoid, false, func(expr.Value) { calls++ })
	id2 := r.Register("quit", expr.ArgVoid, false, func(expr.Value) { calls += 10 })
	if id1 != id2 {
		t.Fatalf("re-registering should keep the id stable, got %d and %d", id1, id2)
	}
	r.Call(id1, expr.Value{})
	if calls != 10 {
		t.Errorf("expected the replaced handler to run, got calls=%d", calls)
	}
}
