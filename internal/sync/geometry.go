package sync

import "github.com/thepsauce/fensterchef/internal/winstate"

// geometry is the on-the-wire rectangle and border width step 4 pushes to
// the server: the window's content area (x, y, width, height) plus a
// separate border width, since X draws the border as a ring around the
// content rectangle rather than including it in width/height.
type geometry struct {
	X, Y, Width, Height int32
	BorderWidth         int32
}

// windowGeometry derives the geometry to push for w. Tiling windows are
// always placed from their frame leaf's current rectangle, inset by the
// border on every side; every other mode uses whatever rectangle the
// window transitioned into (ToggleFullscreen/ToggleFloating/move-resize
// already call Registry.SetSize with the right target rect), and
// fullscreen windows are always borderless.
func windowGeometry(w *winstate.Window) geometry {
	if w.Mode() == winstate.Fullscreen {
		r := w.Rect()
		return geometry{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	}
	border := w.BorderSize()
	if w.IsBorderless() {
		border = 0
	}
	if f := w.Frame(); f != nil && w.Mode() == winstate.Tiling {
		fr := f.Rect()
		width := fr.Width - 2*border
		height := fr.Height - 2*border
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		return geometry{X: fr.X + border, Y: fr.Y + border, Width: width, Height: height, BorderWidth: border}
	}
	r := w.Rect()
	return geometry{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, BorderWidth: border}
}
