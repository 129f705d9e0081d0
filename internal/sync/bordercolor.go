package sync

import (
	"github.com/thepsauce/fensterchef/internal/config"
	"github.com/thepsauce/fensterchef/internal/winstate"
)

// borderColor applies spec.md §4.6 step 2's three-way rule: the focused
// window gets the focus color, the topmost floating window (when it is not
// itself focused — floating windows otherwise visually dominate via
// stacking already) gets the active color, everything else gets the plain
// border color.
func borderColor(w, focused, top *winstate.Window, colors config.Border) int32 {
	switch {
	case w == focused:
		return colors.FocusColor
	case w == top && top != focused:
		return colors.ActiveColor
	default:
		return colors.Color
	}
}
