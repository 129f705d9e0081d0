package monitor

import "github.com/thepsauce/fensterchef/internal/frame"

// Set is the ordered, name-keyed monitor list of spec.md §3.4.
type Set struct {
	monitors []*Monitor
	stash    *frame.Stash
}

// NewSet returns an empty monitor set backed by the given stash (used when
// Reconcile finds more old monitors than new ones).
func NewSet(stash *frame.Stash) *Set {
	return &Set{stash: stash}
}

// Monitors returns the set in order.
func (s *Set) Monitors() []*Monitor { return s.monitors }

// ByName returns the monitor with the given name, or nil.
func (s *Set) ByName(name string) *Monitor {
	for _, m := range s.monitors {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Primary returns the monitor marked primary, falling back to the first
// monitor in the set if none is marked, or nil if the set is empty.
func (s *Set) Primary() *Monitor {
	for _, m := range s.monitors {
		if m.Primary {
			return m
		}
	}
	if len(s.monitors) > 0 {
		return s.monitors[0]
	}
	return nil
}

// Reconcile merges a freshly queried monitor list into the set, in the
// three steps of spec.md §4.3:
//
//  (a) monitors with a name matching an existing one inherit its root frame;
//  (b) surviving monitors that went unmatched are reassigned, in order, to
//      new monitors that did not inherit one;
//  (c) any monitors left over after (b) have their subtrees pushed onto the
//      stash.
//
// Fresh monitors that still have no root after (a)/(b) get a brand new
// empty one.
func (s *Set) Reconcile(fresh []*Monitor, gaps frame.Gaps) {
	claimed := make([]bool, len(fresh))

	var unmatchedOld []*Monitor
	for _, old := range s.monitors {
		matched := -1
		for i, nf := range fresh {
			if !claimed[i] && nf.Name == old.Name {
				matched = i
				break
			}
		}
		if matched >= 0 {
			adopt(fresh[matched], old.root)
			claimed[matched] = true
		} else {
			unmatchedOld = append(unmatchedOld, old)
		}
	}

	var free []int
	for i := range fresh {
		if !claimed[i] {
			free = append(free, i)
		}
	}
	for len(unmatchedOld) > 0 && len(free) > 0 {
		old := unmatchedOld[0]
		unmatchedOld = unmatchedOld[1:]
		idx := free[0]
		free = free[1:]
		adopt(fresh[idx], old.root)
		claimed[idx] = true
	}

	for _, old := range unmatchedOld {
		s.stash.Push(old.root)
	}

	for i, nf := range fresh {
		if nf.root == nil {
			nf.root = frame.CreateRoot(toFrameRect(nf.Rect), gaps)
		}
		_ = i
	}

	s.monitors = fresh
}

func adopt(m *Monitor, root *frame.Frame) {
	m.root = root
	m.root.ResizeKeepProportions(toFrameRect(m.Rect))
}

func toFrameRect(r Rect) frame.Rect {
	return frame.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// WindowStrutInfo is the minimal shape RecomputeStruts needs from a window;
// callers (internal/wm) build this slice from the window registry, keeping
// this package free of a winstate dependency.
type WindowStrutInfo struct {
	CenterX, CenterY int32
	Strut            Strut
}

// RecomputeStruts sums the struts of every window whose center lies on
// each monitor and resizes that monitor's usable rectangle accordingly
// (spec.md §4.3 / §4.6 step 1).
func RecomputeStruts(monitors []*Monitor, windows []WindowStrutInfo) {
	for _, m := range monitors {
		var s Strut
		for _, w := range windows {
			if w.CenterX >= m.Rect.X && w.CenterX < m.Rect.X+m.Rect.Width &&
				w.CenterY >= m.Rect.Y && w.CenterY < m.Rect.Y+m.Rect.Height {
				s.Left += w.Strut.Left
				s.Right += w.Strut.Right
				s.Top += w.Strut.Top
				s.Bottom += w.Strut.Bottom
			}
		}
		m.ApplyStrut(s)
	}
}
