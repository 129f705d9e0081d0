// Package winstate implements the window registry: registration of client
// windows, their classification into display modes, the Z-order/age/focus
// lists, and the show/hide/minimize/close transitions of spec.md §4.2.
package winstate

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/thepsauce/fensterchef/internal/frame"
)

// Mode classifies a window's display behavior (spec.md §3.3/§4.2).
type Mode uint8

const (
	Tiling Mode = iota
	Floating
	Fullscreen
	Dock
	Desktop
)

func (m Mode) String() string {
	switch m {
	case Tiling:
		return "tiling"
	case Floating:
		return "floating"
	case Fullscreen:
		return "fullscreen"
	case Dock:
		return "dock"
	case Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// Rect is an axis-aligned rectangle in root-window coordinates.
type Rect struct {
	X, Y, Width, Height int32
}

// SizeHints mirrors the fields of WM_NORMAL_HINTS relevant to placement.
type SizeHints struct {
	HasMin, HasMax       bool
	MinWidth, MinHeight  int32
	MaxWidth, MaxHeight  int32
	WidthInc, HeightInc  int32
	HasAspect            bool
	MinAspect, MaxAspect float64
}

// WMHints mirrors the fields of WM_HINTS relevant to focus/initial state.
type WMHints struct {
	InputSet      bool // whether the client specified the "input" field
	Input         bool // value of that field when InputSet is true
	InitialIconic bool
}

// Protocols records which WM_PROTOCOLS atoms a client declared support for.
type Protocols struct {
	Delete    bool
	TakeFocus bool
	Ping      bool
}

// StrutPartial mirrors _NET_WM_STRUT_PARTIAL (falling back to the legacy
// 4-field _NET_WM_STRUT when the partial variant is absent).
type StrutPartial struct {
	Left, Right, Top, Bottom                         int32
	LeftStartY, LeftEndY, RightStartY, RightEndY     int32
	TopStartX, TopEndX, BottomStartX, BottomEndX     int32
}

// IsZero reports whether the strut reserves no space at all.
func (s StrutPartial) IsZero() bool {
	return s.Left == 0 && s.Right == 0 && s.Top == 0 && s.Bottom == 0
}

// MotifHints mirrors the decoration-relevant fields of _MOTIF_WM_HINTS.
type MotifHints struct {
	DecorationsSet bool
	Decorations    bool
}

// WMState is the value written to the ICCCM WM_STATE property.
type WMState uint32

const (
	StateWithdrawn WMState = 0
	StateNormal    WMState = 1
	StateIconic    WMState = 3
)

// Window is one managed client window.
type Window struct {
	client  xproto.Window
	created uint64
	number  int32

	rect       Rect
	borderSize int32

	mode     Mode
	prevMode Mode

	visible    bool
	borderless bool

	name string

	sizeHints SizeHints
	wmHints   WMHints
	strut     StrutPartial
	protocols Protocols
	motif     MotifHints

	transientFor xproto.Window

	hasFullscreenMonitors bool
	fullscreenMonitors    [4]int32

	stateAtoms []xproto.Atom
	typeAtoms  []xproto.Atom

	wmState         WMState
	closeRequestAt  time.Time

	leaf *frame.Frame // the tiling leaf referencing this window, if any

	older, newer *Window // age list
	below, above *Window // z-order list
}

// ID implements frame.Window.
func (w *Window) ID() uint32 { return uint32(w.client) }

// Client returns the X window id.
func (w *Window) Client() xproto.Window { return w.client }

// Number returns the window's stable small integer, assigned at creation.
func (w *Window) Number() int32 { return w.number }

// Mode returns the window's current display mode.
func (w *Window) Mode() Mode { return w.mode }

// PreviousMode returns the mode the window had before its last transition.
func (w *Window) PreviousMode() Mode { return w.prevMode }

// Rect returns the window's current geometry.
func (w *Window) Rect() Rect { return w.rect }

// SetRect is a low-level setter used by SetSize; callers outside this
// package should prefer Registry.SetSize, which applies the clamp rules.
func (w *Window) SetRect(r Rect) { w.rect = r }

// BorderSize returns the window's current border width in pixels.
func (w *Window) BorderSize() int32 { return w.borderSize }

// Visible reports whether the window is currently shown.
func (w *Window) Visible() bool { return w.visible }

// IsBorderless reports whether the window should be drawn without a border.
func (w *Window) IsBorderless() bool { return w.borderless }

// Name returns the cached window title (_NET_WM_NAME / WM_NAME).
func (w *Window) Name() string { return w.name }

// SetName updates the cached window title.
func (w *Window) SetName(name string) { w.name = name }

// SizeHints returns the cached WM_NORMAL_HINTS.
func (w *Window) SizeHints() SizeHints { return w.sizeHints }

// SetSizeHints updates the cached WM_NORMAL_HINTS.
func (w *Window) SetSizeHints(h SizeHints) { w.sizeHints = h }

// WMHints returns the cached WM_HINTS.
func (w *Window) WMHints() WMHints { return w.wmHints }

// SetWMHints updates the cached WM_HINTS.
func (w *Window) SetWMHints(h WMHints) { w.wmHints = h }

// Strut returns the cached strut-partial.
func (w *Window) Strut() StrutPartial { return w.strut }

// SetStrut updates the cached strut-partial.
func (w *Window) SetStrut(s StrutPartial) { w.strut = s }

// Protocols returns the cached WM_PROTOCOLS support flags.
func (w *Window) Protocols() Protocols { return w.protocols }

// SetProtocols updates the cached WM_PROTOCOLS support flags.
func (w *Window) SetProtocols(p Protocols) { w.protocols = p }

// Motif returns the cached _MOTIF_WM_HINTS decoration flag.
func (w *Window) Motif() MotifHints { return w.motif }

// SetMotif updates the cached _MOTIF_WM_HINTS decoration flag.
func (w *Window) SetMotif(m MotifHints) { w.motif = m }

// TransientFor returns the cached WM_TRANSIENT_FOR target, or 0.
func (w *Window) TransientFor() xproto.Window { return w.transientFor }

// SetTransientFor updates the cached WM_TRANSIENT_FOR target.
func (w *Window) SetTransientFor(t xproto.Window) { w.transientFor = t }

// StateAtoms returns the cached _NET_WM_STATE atom list.
func (w *Window) StateAtoms() []xproto.Atom { return w.stateAtoms }

// SetStateAtoms updates the cached _NET_WM_STATE atom list.
func (w *Window) SetStateAtoms(a []xproto.Atom) { w.stateAtoms = a }

// TypeAtoms returns the cached _NET_WM_WINDOW_TYPE atom list.
func (w *Window) TypeAtoms() []xproto.Atom { return w.typeAtoms }

// SetTypeAtoms updates the cached _NET_WM_WINDOW_TYPE atom list.
func (w *Window) SetTypeAtoms(a []xproto.Atom) { w.typeAtoms = a }

// FullscreenMonitors returns the cached _NET_WM_FULLSCREEN_MONITORS hint.
func (w *Window) FullscreenMonitors() (top, bottom, left, right int32, ok bool) {
	if !w.hasFullscreenMonitors {
		return 0, 0, 0, 0, false
	}
	return w.fullscreenMonitors[0], w.fullscreenMonitors[1], w.fullscreenMonitors[2], w.fullscreenMonitors[3], true
}

// SetFullscreenMonitors updates the cached _NET_WM_FULLSCREEN_MONITORS hint.
func (w *Window) SetFullscreenMonitors(top, bottom, left, right int32) {
	w.hasFullscreenMonitors = true
	w.fullscreenMonitors = [4]int32{top, bottom, left, right}
}

// ClearFullscreenMonitors clears the cached hint (falls back to the
// intersecting monitor's rectangle).
func (w *Window) ClearFullscreenMonitors() { w.hasFullscreenMonitors = false }

// WMState returns the value last written for the ICCCM WM_STATE property.
func (w *Window) WMState() WMState { return w.wmState }

// Frame returns the tiling leaf currently referencing this window, or nil.
func (w *Window) Frame() *frame.Frame { return w.leaf }

// SetFrame records (or clears, with nil) the tiling leaf referencing this window.
func (w *Window) SetFrame(f *frame.Frame) { w.leaf = f }

// Older returns the next-oldest window in the age list.
func (w *Window) Older() *Window { return w.older }

// Newer returns the next-newest window in the age list.
func (w *Window) Newer() *Window { return w.newer }

// Below returns the window immediately below this one in Z-order.
func (w *Window) Below() *Window { return w.below }

// Above returns the window immediately above this one in Z-order.
func (w *Window) Above() *Window { return w.above }
