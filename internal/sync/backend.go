// Package sync implements the synchronizer of spec.md §4.6: the eight
// ordered steps run once per event cycle, after all pending X11 events for
// that cycle have been dispatched. Grounded on marwind's render.go
// (renderOutput/renderWorkspace/renderFrame), whose single-pass-per-cycle
// discipline is the direct ancestor of "one write-back pass per cycle", and
// on original_source/src/x11_synchronize.c for the full eight-step order.
package sync

import "github.com/BurntSushi/xgb/xproto"

// Backend is the narrow surface the synchronizer needs from the X11
// connection, split out so tests can drive Cycle with a fake rather than a
// live display (see DESIGN.md "Testing without a display").
type Backend interface {
	// ConfigureWindow pushes geometry and border width to win.
	ConfigureWindow(win xproto.Window, x, y, width, height, borderWidth int32) error
	// SetBorderColor sets win's border pixel color.
	SetBorderColor(win xproto.Window, color int32) error
	// Restack applies a new bottom-to-top stacking order.
	Restack(order []xproto.Window) error

	// Map shows win.
	Map(win xproto.Window) error
	// Unmap hides win.
	Unmap(win xproto.Window) error
	// SetWMState writes the ICCCM WM_STATE property.
	SetWMState(win xproto.Window, state uint32) error
	// SetHidden adds or removes _NET_WM_STATE_HIDDEN from win's state list.
	SetHidden(win xproto.Window, hidden bool) error

	// Focus assigns input focus to win. If takeFocus is true, a
	// WM_TAKE_FOCUS client message is sent first, followed by the direct
	// SetInputFocus call.
	Focus(win xproto.Window, takeFocus bool) error
	// SetActiveWindow writes _NET_ACTIVE_WINDOW.
	SetActiveWindow(win xproto.Window) error

	// SetClientList writes _NET_CLIENT_LIST (age order).
	SetClientList(wins []xproto.Window) error
	// SetClientListStacking writes _NET_CLIENT_LIST_STACKING (Z order).
	SetClientListStacking(wins []xproto.Window) error
	// SetWorkarea writes _NET_WORKAREA for the primary monitor.
	SetWorkarea(x, y, w, h int32) error
}
