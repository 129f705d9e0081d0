package sync

import "github.com/thepsauce/fensterchef/internal/winstate"

// modeOrder is the bottom-to-top group order of spec.md §4.6 step 3.
var modeOrder = map[winstate.Mode]int{
	winstate.Desktop:    0,
	winstate.Tiling:     1,
	winstate.Floating:   2,
	winstate.Dock:       3,
	winstate.Fullscreen: 4,
}

// computeStackingOrder groups windows bottom-to-top by mode (desktop,
// tiling, floating, dock, fullscreen), preserving the relative order they
// arrive in within each group, then moves every transient-for window to
// immediately above its target (single-level only: a transient whose own
// target is itself transient is not chased further, since spec.md never
// describes chained transient stacks).
func computeStackingOrder(windows []*winstate.Window) []*winstate.Window {
	grouped := make([]*winstate.Window, len(windows))
	copy(grouped, windows)
	stableSortByMode(grouped)

	byClient := make(map[uint32]*winstate.Window, len(grouped))
	for _, w := range grouped {
		byClient[uint32(w.Client())] = w
	}

	out := make([]*winstate.Window, 0, len(grouped))
	placed := make(map[*winstate.Window]bool, len(grouped))
	for _, w := range grouped {
		if placed[w] {
			continue
		}
		out = append(out, w)
		placed[w] = true
		insertAt := len(out)
		for _, cand := range grouped {
			if placed[cand] {
				continue
			}
			if target, ok := byClient[uint32(cand.TransientFor())]; ok && target == w {
				out = insertWindowAt(out, insertAt, cand)
				placed[cand] = true
				insertAt++
			}
		}
	}
	return out
}

// stableSortByMode is an insertion sort (the input sizes involved — open
// window counts — never justify anything fancier) that groups by modeOrder
// while preserving each group's relative input order.
func stableSortByMode(ws []*winstate.Window) {
	for i := 1; i < len(ws); i++ {
		v := ws[i]
		j := i - 1
		for j >= 0 && modeOrder[ws[j].Mode()] > modeOrder[v.Mode()] {
			ws[j+1] = ws[j]
			j--
		}
		ws[j+1] = v
	}
}

// insertWindowAt inserts w into a copy of ws at index idx, without aliasing
// ws's backing array.
func insertWindowAt(ws []*winstate.Window, idx int, w *winstate.Window) []*winstate.Window {
	out := make([]*winstate.Window, 0, len(ws)+1)
	out = append(out, ws[:idx]...)
	out = append(out, w)
	out = append(out, ws[idx:]...)
	return out
}

// topFloating returns the topmost (last in stacking order) floating
// window, or nil if none is floating.
func topFloating(order []*winstate.Window) *winstate.Window {
	var top *winstate.Window
	for _, w := range order {
		if w.Mode() == winstate.Floating {
			top = w
		}
	}
	return top
}
