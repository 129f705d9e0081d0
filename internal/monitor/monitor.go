// Package monitor implements the monitor set of spec.md §3.4/§4.3: an
// ordered, name-keyed list of physical output rectangles, each owning one
// root frame, reconciled across RandR reconfiguration.
package monitor

import "github.com/thepsauce/fensterchef/internal/frame"

// Rect is an axis-aligned rectangle in root-window coordinates.
type Rect struct {
	X, Y, Width, Height int32
}

// Strut is the reserved region cut out of a monitor's usable area by dock
// windows (spec.md §3.4).
type Strut struct {
	Left, Right, Top, Bottom int32
}

// apply returns r minus the strut s.
func (s Strut) apply(r Rect) Rect {
	return Rect{
		X:      r.X + s.Left,
		Y:      r.Y + s.Top,
		Width:  r.Width - s.Left - s.Right,
		Height: r.Height - s.Top - s.Bottom,
	}
}

// Monitor is one physical output.
type Monitor struct {
	Name    string
	Rect    Rect
	Primary bool
	strut   Strut
	root    *frame.Frame
}

// Root returns the monitor's root frame.
func (m *Monitor) Root() *frame.Frame { return m.root }

// Strut returns the monitor's current reserved region.
func (m *Monitor) Strut() Strut { return m.strut }

// UsableRect returns the monitor's rectangle minus its strut.
func (m *Monitor) UsableRect() Rect { return m.strut.apply(m.Rect) }

// New creates a monitor with a fresh, empty root frame covering rect.
func New(name string, rect Rect, primary bool, gaps frame.Gaps) *Monitor {
	m := &Monitor{Name: name, Rect: rect, Primary: primary}
	m.root = frame.CreateRoot(frame.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height}, gaps)
	return m
}

// ApplyStrut recomputes the monitor's strut and resizes its root frame to
// match the new usable rectangle (spec.md §4.3 final step).
func (m *Monitor) ApplyStrut(s Strut) {
	m.strut = s
	u := m.UsableRect()
	m.root.ResizeKeepProportions(frame.Rect{X: u.X, Y: u.Y, Width: u.Width, Height: u.Height})
}
