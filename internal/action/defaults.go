package action

import (
	"github.com/thepsauce/fensterchef/internal/expr"
	"github.com/thepsauce/fensterchef/internal/frame"
)

// Target is implemented by internal/wm.Context. It is the single point
// where action handlers reach into the live frame tree, window registry and
// synchronizer; kept as an interface here so this package never imports
// internal/wm (which imports this package to build its Registry).
type Target interface {
	FocusDirection(dir frame.Direction)
	MoveDirection(dir frame.Direction)
	SplitDirection(dir frame.SplitDirection)
	BumpEdge(dir frame.Direction, amount int32)
	ResizeBy(left, top, right, bottom int32)
	Equalize()
	CloseFocused()
	MinimizeFocused()
	ToggleFullscreen()
	ToggleFloating()
	ShowMessage(text string)
	ShowRun()
	ShowList()
	MergeDefault(section string)
	ReloadConfig()
	Quit()
}

// RegisterDefaults wires the built-in action catalog of spec.md §4.5/§6
// against t, returning the populated Registry. Re-running this against the
// same Registry after a config reload replaces the handlers but keeps ids
// stable (Register's replace-in-place rule), so already-compiled binding
// bytecode keeps working.
func RegisterDefaults(r *Registry, t Target) *Registry {
	register := func(name string, kind expr.ArgKind, optional bool, h Handler) {
		r.Register(name, kind, optional, h)
	}

	register("focus-left", expr.ArgVoid, false, func(expr.Value) { t.FocusDirection(frame.Left) })
	register("focus-right", expr.ArgVoid, false, func(expr.Value) { t.FocusDirection(frame.Right) })
	register("focus-up", expr.ArgVoid, false, func(expr.Value) { t.FocusDirection(frame.Up) })
	register("focus-down", expr.ArgVoid, false, func(expr.Value) { t.FocusDirection(frame.Down) })

	register("move-left", expr.ArgVoid, false, func(expr.Value) { t.MoveDirection(frame.Left) })
	register("move-right", expr.ArgVoid, false, func(expr.Value) { t.MoveDirection(frame.Right) })
	register("move-up", expr.ArgVoid, false, func(expr.Value) { t.MoveDirection(frame.Up) })
	register("move-down", expr.ArgVoid, false, func(expr.Value) { t.MoveDirection(frame.Down) })

	register("split-horizontally", expr.ArgVoid, false, func(expr.Value) { t.SplitDirection(frame.Horizontal) })
	register("split-vertically", expr.ArgVoid, false, func(expr.Value) { t.SplitDirection(frame.Vertical) })

	register("bump-left", expr.ArgInteger, true, func(v expr.Value) { t.BumpEdge(frame.Left, bumpAmount(v)) })
	register("bump-right", expr.ArgInteger, true, func(v expr.Value) { t.BumpEdge(frame.Right, bumpAmount(v)) })
	register("bump-up", expr.ArgInteger, true, func(v expr.Value) { t.BumpEdge(frame.Up, bumpAmount(v)) })
	register("bump-down", expr.ArgInteger, true, func(v expr.Value) { t.BumpEdge(frame.Down, bumpAmount(v)) })
	register("equalize", expr.ArgVoid, false, func(expr.Value) { t.Equalize() })
	register("resize-by", expr.ArgQuad, false, func(v expr.Value) {
		t.ResizeBy(v.Quad[0], v.Quad[1], v.Quad[2], v.Quad[3])
	})

	register("close-window", expr.ArgVoid, false, func(expr.Value) { t.CloseFocused() })
	register("minimize-window", expr.ArgVoid, false, func(expr.Value) { t.MinimizeFocused() })
	register("toggle-fullscreen", expr.ArgVoid, false, func(expr.Value) { t.ToggleFullscreen() })
	register("toggle-floating", expr.ArgVoid, false, func(expr.Value) { t.ToggleFloating() })

	register("show-message", expr.ArgString, false, func(v expr.Value) { t.ShowMessage(v.Str) })
	register("show-run", expr.ArgVoid, false, func(expr.Value) { t.ShowRun() })
	register("show-list", expr.ArgVoid, false, func(expr.Value) { t.ShowList() })

	register("merge-default", expr.ArgString, false, func(v expr.Value) { t.MergeDefault(v.Str) })
	register("reload-config", expr.ArgVoid, false, func(expr.Value) { t.ReloadConfig() })
	register("quit", expr.ArgVoid, false, func(expr.Value) { t.Quit() })

	return r
}

// bumpAmount defaults an omitted optional argument to a fixed step, the
// same fallback marwind's resize bindings use for a bare key press.
func bumpAmount(v expr.Value) int32 {
	if v.Kind == expr.KindInteger && v.Int != 0 {
		return v.Int
	}
	return 20
}
