package sync

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/thepsauce/fensterchef/internal/config"
	"github.com/thepsauce/fensterchef/internal/frame"
	"github.com/thepsauce/fensterchef/internal/monitor"
	"github.com/thepsauce/fensterchef/internal/winstate"
)

type fakeBackend struct {
	configured map[xproto.Window][5]int32
	colors     map[xproto.Window]int32
	mapped     map[xproto.Window]bool
	states     map[xproto.Window]uint32
	hidden     map[xproto.Window]bool
	restacked  []xproto.Window
	focused    xproto.Window
	active     xproto.Window
	clientList []xproto.Window
	stackList  []xproto.Window
	workarea   [4]int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		configured: map[xproto.Window][5]int32{},
		colors:     map[xproto.Window]int32{},
		mapped:     map[xproto.Window]bool{},
		states:     map[xproto.Window]uint32{},
		hidden:     map[xproto.Window]bool{},
	}
}

func (f *fakeBackend) ConfigureWindow(win xproto.Window, x, y, w, h, bw int32) error {
	f.configured[win] = [5]int32{x, y, w, h, bw}
	return nil
}
func (f *fakeBackend) SetBorderColor(win xproto.Window, color int32) error {
	f.colors[win] = color
	return nil
}
func (f *fakeBackend) Restack(order []xproto.Window) error {
	f.restacked = order
	return nil
}
func (f *fakeBackend) Map(win xproto.Window) error   { f.mapped[win] = true; return nil }
func (f *fakeBackend) Unmap(win xproto.Window) error { f.mapped[win] = false; return nil }
func (f *fakeBackend) SetWMState(win xproto.Window, state uint32) error {
	f.states[win] = state
	return nil
}
func (f *fakeBackend) SetHidden(win xproto.Window, hidden bool) error {
	f.hidden[win] = hidden
	return nil
}
func (f *fakeBackend) Focus(win xproto.Window, takeFocus bool) error { f.focused = win; return nil }
func (f *fakeBackend) SetActiveWindow(win xproto.Window) error       { f.active = win; return nil }
func (f *fakeBackend) SetClientList(wins []xproto.Window) error     { f.clientList = wins; return nil }
func (f *fakeBackend) SetClientListStacking(wins []xproto.Window) error {
	f.stackList = wins
	return nil
}
func (f *fakeBackend) SetWorkarea(x, y, w, h int32) error {
	f.workarea = [4]int32{x, y, w, h}
	return nil
}

func TestCyclePushesGeometryMapsAndFocus(t *testing.T) {
	reg := winstate.NewRegistry()
	set := monitor.NewSet(frame.NewStash())
	mon := monitor.New("LVDS-1", monitor.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, true, frame.Gaps{})
	set.Reconcile([]*monitor.Monitor{mon}, frame.Gaps{})

	w, err := reg.Create(winstate.CreateParams{
		Client:     1,
		Rect:       winstate.Rect{X: 0, Y: 0, Width: 1000, Height: 800},
		BorderSize: 2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w.AttachToFrame(set.ByName("LVDS-1").Root())
	reg.Show(w)
	reg.UpdateLayer(w)
	reg.Focus(w)

	cfg := config.Default()
	backend := newFakeBackend()
	s := New(backend, nil, cfg)

	if err := s.Cycle(set, reg); err != nil {
		t.Fatalf("Cycle: %v", err)
	}

	if !backend.mapped[w.Client()] {
		t.Error("expected window to be mapped")
	}
	if backend.states[w.Client()] != uint32(winstate.StateNormal) {
		t.Errorf("expected WM_STATE Normal, got %d", backend.states[w.Client()])
	}
	if backend.colors[w.Client()] != cfg.Settings.Border.FocusColor {
		t.Errorf("expected focus color %d, got %d", cfg.Settings.Border.FocusColor, backend.colors[w.Client()])
	}
	if backend.focused != w.Client() {
		t.Errorf("expected focus assigned to %d, got %d", w.Client(), backend.focused)
	}
	if len(backend.clientList) != 1 || backend.clientList[0] != w.Client() {
		t.Errorf("expected client list [%d], got %v", w.Client(), backend.clientList)
	}
	geom := backend.configured[w.Client()]
	if geom != [5]int32{2, 2, 996, 796, 2} {
		t.Errorf("expected inset geometry, got %+v", geom)
	}
}

func TestCycleSkipsUnchangedFocusAndClientList(t *testing.T) {
	reg := winstate.NewRegistry()
	set := monitor.NewSet(frame.NewStash())
	mon := monitor.New("LVDS-1", monitor.Rect{Width: 1000, Height: 800}, true, frame.Gaps{})
	set.Reconcile([]*monitor.Monitor{mon}, frame.Gaps{})

	w, _ := reg.Create(winstate.CreateParams{Client: 1, Rect: winstate.Rect{Width: 1000, Height: 800}})
	w.AttachToFrame(set.ByName("LVDS-1").Root())
	reg.Show(w)
	reg.Focus(w)

	backend := newFakeBackend()
	s := New(backend, nil, config.Default())
	if err := s.Cycle(set, reg); err != nil {
		t.Fatalf("Cycle: %v", err)
	}
	backend.focused = 0
	backend.clientList = nil

	if err := s.Cycle(set, reg); err != nil {
		t.Fatalf("second Cycle: %v", err)
	}
	if backend.focused != 0 {
		t.Error("expected no redundant Focus call on an unchanged focus")
	}
	if backend.clientList != nil {
		t.Error("expected no redundant SetClientList call on an unchanged client set")
	}
}

func TestComputeStackingOrderGroupsAndPlacesTransients(t *testing.T) {
	reg := winstate.NewRegistry()
	tiling, _ := reg.Create(winstate.CreateParams{Client: 1})
	floating, _ := reg.Create(winstate.CreateParams{Client: 2})
	reg.SetMode(floating, winstate.Floating)
	dock, _ := reg.Create(winstate.CreateParams{Client: 3})
	reg.SetMode(dock, winstate.Dock)
	transient, _ := reg.Create(winstate.CreateParams{Client: 4, TransientFor: 2})
	reg.SetMode(transient, winstate.Floating)

	order := computeStackingOrder(reg.AllByAge())
	index := func(w *winstate.Window) int {
		for i, c := range order {
			if c == w {
				return i
			}
		}
		return -1
	}

	if index(tiling) > index(floating) {
		t.Error("tiling should stack below floating")
	}
	if index(floating) > index(dock) {
		t.Error("floating should stack below dock")
	}
	if index(transient) != index(floating)+1 {
		t.Errorf("transient should sit immediately above its target, got transient=%d target=%d",
			index(transient), index(floating))
	}
}

func TestBorderColorPicksFocusActiveInactive(t *testing.T) {
	reg := winstate.NewRegistry()
	focused, _ := reg.Create(winstate.CreateParams{Client: 1})
	floatingTop, _ := reg.Create(winstate.CreateParams{Client: 2})
	other, _ := reg.Create(winstate.CreateParams{Client: 3})
	colors := config.Border{Color: 1, ActiveColor: 2, FocusColor: 3}

	if got := borderColor(focused, focused, floatingTop, colors); got != 3 {
		t.Errorf("focused window color = %d, want 3", got)
	}
	if got := borderColor(floatingTop, focused, floatingTop, colors); got != 2 {
		t.Errorf("top floating color = %d, want 2", got)
	}
	if got := borderColor(other, focused, floatingTop, colors); got != 1 {
		t.Errorf("inactive color = %d, want 1", got)
	}
}
