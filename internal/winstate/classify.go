package winstate

import "github.com/BurntSushi/xgb/xproto"

// Well-known EWMH atoms used by Classify. Real atom values are resolved by
// internal/x11's atom cache and passed in already-resolved, since this
// package performs no X11 I/O; Classify is handed the resolved atom values
// it needs to compare against via ClassifyInput.Atoms.
type Atoms struct {
	Fullscreen      xproto.Atom
	MaximizedVert   xproto.Atom
	MaximizedHorz   xproto.Atom
	TypeDock        xproto.Atom
	TypeDesktop     xproto.Atom
	TypeNormal      xproto.Atom
}

// ClassifyInput bundles the cached properties Classify needs, per the
// seven-step rule of spec.md §4.2.
type ClassifyInput struct {
	Atoms        Atoms
	StateAtoms   []xproto.Atom
	TypeAtoms    []xproto.Atom
	Strut        StrutPartial
	TransientFor xproto.Window
	SizeHints    SizeHints
}

func hasAtom(list []xproto.Atom, a xproto.Atom) bool {
	if a == 0 {
		return false
	}
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

// Classify applies the initial-mode classification rule of spec.md §4.2:
//
//  1. _NET_WM_STATE_FULLSCREEN or either maximized-axis state -> fullscreen
//  2. _NET_WM_WINDOW_TYPE_DOCK or non-empty strut -> dock
//  3. _NET_WM_WINDOW_TYPE_DESKTOP -> desktop
//  4. non-zero WM_TRANSIENT_FOR -> floating
//  5. equal min and max size on either axis -> floating
//  6. a window-type list present and lacking _NET_WM_WINDOW_TYPE_NORMAL -> floating
//  7. otherwise -> tiling
func Classify(in ClassifyInput) Mode {
	if hasAtom(in.StateAtoms, in.Atoms.Fullscreen) ||
		hasAtom(in.StateAtoms, in.Atoms.MaximizedVert) ||
		hasAtom(in.StateAtoms, in.Atoms.MaximizedHorz) {
		return Fullscreen
	}
	if hasAtom(in.TypeAtoms, in.Atoms.TypeDock) || !in.Strut.IsZero() {
		return Dock
	}
	if hasAtom(in.TypeAtoms, in.Atoms.TypeDesktop) {
		return Desktop
	}
	if in.TransientFor != 0 {
		return Floating
	}
	h := in.SizeHints
	if h.HasMin && h.HasMax && ((h.MinWidth == h.MaxWidth && h.MinWidth > 0) || (h.MinHeight == h.MaxHeight && h.MinHeight > 0)) {
		return Floating
	}
	if len(in.TypeAtoms) > 0 && !hasAtom(in.TypeAtoms, in.Atoms.TypeNormal) {
		return Floating
	}
	return Tiling
}
