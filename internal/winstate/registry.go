package winstate

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/thepsauce/fensterchef/internal/frame"
)

// Errors returned by Registry.Create.
var (
	ErrIneligible         = errors.New("winstate: window is override-redirect or input-only")
	ErrAlreadyRegistered  = errors.New("winstate: window is already registered")
	ErrNotRegistered      = errors.New("winstate: window is not registered")
)

// CreateParams carries everything the registry needs to register a new
// client window; the caller (internal/x11 / internal/wm) is responsible
// for having queried the server for this data, keeping the registry itself
// free of any X11 I/O.
type CreateParams struct {
	Client           xproto.Window
	OverrideRedirect bool
	InputOnly        bool
	Rect             Rect
	BorderSize       int32
	Name             string
	SizeHints        SizeHints
	WMHints          WMHints
	Strut            StrutPartial
	Protocols        Protocols
	Motif            MotifHints
	TransientFor     xproto.Window
	StateAtoms       []xproto.Atom
	TypeAtoms        []xproto.Atom
	FirstNumber      int32 // lower bound for number assignment (associations, spec.md §4.5)
}

// Registry is the window registry of spec.md §4.2: the set of all managed
// windows plus the three intrusive lists over them (age, Z-order, focus).
type Registry struct {
	Logger zerolog.Logger

	byClient map[xproto.Window]*Window
	numbers  map[int32]*Window

	oldest, newest *Window
	bottom, top    *Window

	focused      *Window
	focusHistory []*Window

	moving *Window
}

// NewRegistry returns an empty window registry.
func NewRegistry() *Registry {
	return &Registry{
		Logger:   zerolog.Nop(),
		byClient: make(map[xproto.Window]*Window),
		numbers:  make(map[int32]*Window),
	}
}

// Len returns the number of registered windows.
func (r *Registry) Len() int { return len(r.byClient) }

// Lookup returns the window registered for client, or nil.
func (r *Registry) Lookup(client xproto.Window) *Window { return r.byClient[client] }

// Oldest returns the head of the age list.
func (r *Registry) Oldest() *Window { return r.oldest }

// Newest returns the tail of the age list.
func (r *Registry) Newest() *Window { return r.newest }

// Bottom returns the bottom of the Z-order list.
func (r *Registry) Bottom() *Window { return r.bottom }

// Top returns the top of the Z-order list.
func (r *Registry) Top() *Window { return r.top }

// Focused returns the currently focused window, or nil.
func (r *Registry) Focused() *Window { return r.focused }

// Moving returns the window currently tracked by a mouse move/resize grab, or nil.
func (r *Registry) Moving() *Window { return r.moving }

// SetMoving records (or clears, with nil) the window tracked by a mouse move/resize grab.
func (r *Registry) SetMoving(w *Window) { r.moving = w }

// AllByAge returns every registered window, oldest first — the order
// _NET_CLIENT_LIST is published in.
func (r *Registry) AllByAge() []*Window {
	out := make([]*Window, 0, len(r.byClient))
	for w := r.oldest; w != nil; w = w.newer {
		out = append(out, w)
	}
	return out
}

// AllByStacking returns every registered window, bottom first — the order
// _NET_CLIENT_LIST_STACKING is published in.
func (r *Registry) AllByStacking() []*Window {
	out := make([]*Window, 0, len(r.byClient))
	for w := r.bottom; w != nil; w = w.above {
		out = append(out, w)
	}
	return out
}

// allocateNumber returns the smallest unused positive integer >= lowerBound.
func (r *Registry) allocateNumber(lowerBound int32) int32 {
	if lowerBound < 1 {
		lowerBound = 1
	}
	for n := lowerBound; ; n++ {
		if _, used := r.numbers[n]; !used {
			return n
		}
	}
}

// Create registers client, classifies its initial mode, and links it into
// the age list and the bottom/top of the Z-order list (UpdateLayer should
// be called afterward to place it correctly relative to existing windows).
func (r *Registry) Create(p CreateParams) (*Window, error) {
	if p.OverrideRedirect || p.InputOnly {
		return nil, ErrIneligible
	}
	if _, exists := r.byClient[p.Client]; exists {
		return nil, ErrAlreadyRegistered
	}

	w := &Window{
		client:     p.Client,
		created:    uint64(len(r.byClient)) + 1,
		rect:       p.Rect,
		borderSize: p.BorderSize,
		name:       p.Name,
		sizeHints:  p.SizeHints,
		wmHints:    p.WMHints,
		strut:      p.Strut,
		protocols:  p.Protocols,
		motif:      p.Motif,

		transientFor: p.TransientFor,
		stateAtoms:   p.StateAtoms,
		typeAtoms:    p.TypeAtoms,
		wmState:      StateWithdrawn,
	}
	w.mode = Classify(ClassifyInput{
		StateAtoms:   p.StateAtoms,
		TypeAtoms:    p.TypeAtoms,
		Strut:        p.Strut,
		TransientFor: p.TransientFor,
		SizeHints:    p.SizeHints,
	})
	w.prevMode = w.mode
	w.number = r.allocateNumber(p.FirstNumber)

	r.numbers[w.number] = w
	r.byClient[p.Client] = w

	w.older = r.newest
	if r.newest != nil {
		r.newest.newer = w
	} else {
		r.oldest = w
	}
	r.newest = w

	w.below = r.top
	if r.top != nil {
		r.top.above = w
	} else {
		r.bottom = w
	}
	r.top = w

	r.Logger.Debug().Uint32("client", uint32(p.Client)).Int32("number", w.number).
		Str("mode", w.mode.String()).Msg("window registered")
	return w, nil
}

// Destroy unregisters w: unlinks it from all three lists, frees its
// number, clears focus (transferring to the previous focus holder) if it
// was focused, clears the frame leaf referencing it, and cancels any
// in-progress mouse move/resize grab tracking it.
func (r *Registry) Destroy(w *Window) error {
	if _, ok := r.byClient[w.client]; !ok {
		return ErrNotRegistered
	}

	if w.older != nil {
		w.older.newer = w.newer
	} else {
		r.oldest = w.newer
	}
	if w.newer != nil {
		w.newer.older = w.older
	} else {
		r.newest = w.older
	}

	if w.below != nil {
		w.below.above = w.above
	} else {
		r.bottom = w.above
	}
	if w.above != nil {
		w.above.below = w.below
	} else {
		r.top = w.below
	}

	delete(r.numbers, w.number)
	delete(r.byClient, w.client)
	r.dropFromFocusHistory(w)

	if r.focused == w {
		r.focused = nil
		r.Focus(r.popFocusHistory())
	}
	if r.moving == w {
		r.moving = nil
	}
	if w.leaf != nil {
		w.leaf.SetWindow(nil)
		w.leaf = nil
	}

	r.Logger.Debug().Uint32("client", uint32(w.client)).Msg("window destroyed")
	return nil
}

func (r *Registry) dropFromFocusHistory(w *Window) {
	out := r.focusHistory[:0]
	for _, h := range r.focusHistory {
		if h != w {
			out = append(out, h)
		}
	}
	r.focusHistory = out
}

func (r *Registry) popFocusHistory() *Window {
	for len(r.focusHistory) > 0 {
		n := len(r.focusHistory) - 1
		w := r.focusHistory[n]
		r.focusHistory = r.focusHistory[:n]
		if _, ok := r.byClient[w.client]; ok {
			return w
		}
	}
	return nil
}

// Focusable reports whether w may receive input focus: docks never can;
// a window that explicitly sets WM_HINTS.input to false and does not
// declare WM_TAKE_FOCUS also cannot (spec.md §4.2).
func Focusable(w *Window) bool {
	if w == nil {
		return false
	}
	if w.mode == Dock {
		return false
	}
	if w.wmHints.InputSet && !w.wmHints.Input && !w.protocols.TakeFocus {
		return false
	}
	return true
}

// Focus updates the focused-window pointer. Passing nil clears focus.
// Focusing an unfocusable window is a silent no-op (spec.md §7).
func (r *Registry) Focus(w *Window) error {
	if w == nil {
		if r.focused != nil {
			r.pushFocusHistory(r.focused)
		}
		r.focused = nil
		return nil
	}
	if !Focusable(w) {
		return nil
	}
	if r.focused != nil && r.focused != w {
		r.pushFocusHistory(r.focused)
	}
	r.focused = w
	return nil
}

func (r *Registry) pushFocusHistory(w *Window) {
	r.focusHistory = append(r.focusHistory, w)
	const maxHistory = 64
	if len(r.focusHistory) > maxHistory {
		r.focusHistory = r.focusHistory[len(r.focusHistory)-maxHistory:]
	}
}

// Show marks w visible.
func (r *Registry) Show(w *Window) { w.visible = true }

// Hide marks w invisible. If w was focused, focus transfers to the
// previously focused window in the focus chain.
func (r *Registry) Hide(w *Window) {
	w.visible = false
	if r.focused == w {
		r.focused = nil
		r.Focus(r.popFocusHistory())
	}
}

// String is used by logging/debugging call sites.
func (w *Window) String() string {
	return fmt.Sprintf("Window{client=%d number=%d mode=%s}", uint32(w.client), w.number, w.mode)
}

var _ frame.Window = (*Window)(nil)
