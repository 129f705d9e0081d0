package winstate

import (
	"time"

	"github.com/thepsauce/fensterchef/internal/frame"
)

// MinVisiblePixels is how much of a non-tiling window must remain visible
// on its monitor after SetSize clamps its geometry (spec.md §4.2).
const MinVisiblePixels = 16

// AttachToFrame records that w is now referenced by leaf f.
func (w *Window) AttachToFrame(f *frame.Frame) {
	f.SetWindow(w)
	w.leaf = f
}

// DetachFromFrame clears any leaf reference to w.
func (w *Window) DetachFromFrame() {
	if w.leaf != nil {
		w.leaf.SetWindow(nil)
		w.leaf = nil
	}
}

// SetMode transitions w to newMode, remembering the previous one. Dock,
// desktop, and fullscreen windows bypass the frame tree entirely, so
// transitioning into any of those detaches w from its leaf; transitioning
// back into Tiling is the caller's responsibility (it must pick a leaf via
// the frame package and call AttachToFrame), since the registry has no
// tiling-placement policy of its own.
func (r *Registry) SetMode(w *Window, mode Mode) {
	w.prevMode = w.mode
	w.mode = mode
	if mode != Tiling {
		w.DetachFromFrame()
	}
	r.Logger.Debug().Uint32("client", uint32(w.client)).
		Str("from", w.prevMode.String()).Str("to", mode.String()).Msg("mode changed")
}

// SetSize clamps rect by WM_NORMAL_HINTS (skipping the minimum for tiling
// windows, which may shrink below it to fit a small frame) and then by the
// rule that at least MinVisiblePixels must remain on-monitor, and applies
// the result to w.
func (r *Registry) SetSize(w *Window, rect Rect, monitor Rect) Rect {
	h := w.sizeHints
	width, height := rect.Width, rect.Height
	if h.HasMax {
		if h.MaxWidth > 0 && width > h.MaxWidth {
			width = h.MaxWidth
		}
		if h.MaxHeight > 0 && height > h.MaxHeight {
			height = h.MaxHeight
		}
	}
	if h.HasMin && w.mode != Tiling {
		if width < h.MinWidth {
			width = h.MinWidth
		}
		if height < h.MinHeight {
			height = h.MinHeight
		}
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	rect.Width, rect.Height = width, height
	rect = clampVisible(rect, monitor, MinVisiblePixels)
	w.rect = rect
	return rect
}

func clampVisible(r, mon Rect, minVisible int32) Rect {
	if mon.Width == 0 && mon.Height == 0 {
		return r
	}
	if r.X+r.Width < mon.X+minVisible {
		r.X = mon.X + minVisible - r.Width
	}
	if r.X > mon.X+mon.Width-minVisible {
		r.X = mon.X + mon.Width - minVisible
	}
	if r.Y+r.Height < mon.Y+minVisible {
		r.Y = mon.Y + minVisible - r.Height
	}
	if r.Y > mon.Y+mon.Height-minVisible {
		r.Y = mon.Y + mon.Height - minVisible
	}
	return r
}

// UpdateLayer restacks w: tiling windows sink to the bottom of Z-order,
// everything else rises to the top; if w declares WM_TRANSIENT_FOR and the
// target is known, w is then moved immediately above it.
func (r *Registry) UpdateLayer(w *Window) {
	r.unlinkZ(w)
	if w.mode == Tiling {
		r.linkZBottom(w)
	} else {
		r.linkZTop(w)
	}
	if w.transientFor != 0 {
		if target, ok := r.byClient[w.transientFor]; ok && target != w {
			r.unlinkZ(w)
			r.linkZAbove(w, target)
		}
	}
}

func (r *Registry) unlinkZ(w *Window) {
	if w.below != nil {
		w.below.above = w.above
	} else if r.bottom == w {
		r.bottom = w.above
	}
	if w.above != nil {
		w.above.below = w.below
	} else if r.top == w {
		r.top = w.below
	}
	w.below, w.above = nil, nil
}

func (r *Registry) linkZBottom(w *Window) {
	w.above = r.bottom
	w.below = nil
	if r.bottom != nil {
		r.bottom.below = w
	} else {
		r.top = w
	}
	r.bottom = w
}

func (r *Registry) linkZTop(w *Window) {
	w.below = r.top
	w.above = nil
	if r.top != nil {
		r.top.above = w
	} else {
		r.bottom = w
	}
	r.top = w
}

func (r *Registry) linkZAbove(w, target *Window) {
	w.below = target
	w.above = target.above
	if target.above != nil {
		target.above.below = w
	} else {
		r.top = w
	}
	target.above = w
}

// CloseAction tells the caller (which owns the X11 connection) what to do
// in response to Registry.Close.
type CloseAction uint8

const (
	CloseSendDelete CloseAction = iota
	CloseForceKill
)

func (a CloseAction) String() string {
	if a == CloseForceKill {
		return "force-kill"
	}
	return "send-delete"
}

// Close implements the two-strike close policy of spec.md §4.2/§5: a
// client supporting WM_DELETE_WINDOW is asked to close gracefully; a
// second Close call within the grace period (or any Close call on a
// client that never declared the protocol) requests a forced kill.
func (r *Registry) Close(w *Window, now time.Time) CloseAction {
	const grace = 3 * time.Second
	if !w.protocols.Delete {
		return CloseForceKill
	}
	if !w.closeRequestAt.IsZero() && now.Sub(w.closeRequestAt) <= grace {
		return CloseForceKill
	}
	w.closeRequestAt = now
	return CloseSendDelete
}
