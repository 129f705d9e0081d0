// Package wm bundles the live singletons of spec.md §3 (monitor set, window
// registry, stash, configuration, action registry, expression VM and the
// synchronizer) into one Context and wires them into the event dispatch and
// action handling described in §4. It is the one package allowed to import
// every other internal package, since it is where their narrow interfaces
// finally meet a concrete X11 connection.
package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/thepsauce/fensterchef/internal/action"
	"github.com/thepsauce/fensterchef/internal/config"
	"github.com/thepsauce/fensterchef/internal/expr"
	"github.com/thepsauce/fensterchef/internal/frame"
	"github.com/thepsauce/fensterchef/internal/keysym"
	"github.com/thepsauce/fensterchef/internal/monitor"
	"github.com/thepsauce/fensterchef/internal/notify"
	"github.com/thepsauce/fensterchef/internal/sync"
	"github.com/thepsauce/fensterchef/internal/winlist"
	"github.com/thepsauce/fensterchef/internal/winstate"
	"github.com/thepsauce/fensterchef/internal/x11"
)

// Context is the Target implementation action.RegisterDefaults binds
// against. All fields are exported so cmd/fensterchef can assemble one from
// its own constructed collaborators.
type Context struct {
	Conn     *x11.Conn
	Keys     *keysym.Table
	Monitors *monitor.Set
	Registry *winstate.Registry
	Stash    *frame.Stash
	Config   *config.Config
	Actions  *action.Registry
	VM       *expr.VM
	Sync     *sync.Synchronizer
	Notify   notify.Notifier
	Winlist  winlist.Lister

	// OnMergeDefault/OnReloadConfig are wired by cmd/fensterchef, which
	// owns the parser and the config file path; this package never reads
	// files itself.
	OnMergeDefault func(section string)
	OnReloadConfig func()

	focusedFrame  *frame.Frame
	quitRequested bool
}

// New assembles a Context from its collaborators and registers the default
// action catalog against it. conn/keys may be nil in tests that never touch
// the live X11 connection: every entry point that talks to the server
// (HandleMapRequest, HandleClientMessage, HandlePropertyNotify,
// CloseFocused) returns early when Conn is nil, and no member reads Keys.
func New(conn *x11.Conn, keys *keysym.Table, monitors *monitor.Set, reg *winstate.Registry, stash *frame.Stash, cfg *config.Config, synchronizer *sync.Synchronizer, notifier notify.Notifier, lister winlist.Lister) *Context {
	c := &Context{
		Conn:     conn,
		Keys:     keys,
		Monitors: monitors,
		Registry: reg,
		Stash:    stash,
		Config:   cfg,
		Sync:     synchronizer,
		Notify:   notifier,
		Winlist:  lister,
	}
	c.Actions = action.RegisterDefaults(action.NewRegistry(), c)
	c.VM = expr.NewVM(c.Actions, cfg.Globals.Len())
	if primary := monitors.Primary(); primary != nil {
		c.focusedFrame = primary.Root()
	}
	return c
}

// FocusedFrame returns the frame leaf that holds keyboard focus even when
// it is empty (split-and-focus scenarios operate on frames, not windows).
// It falls back to the primary monitor's root the first time it is called
// on a Context with no monitors assigned yet.
func (c *Context) FocusedFrame() *frame.Frame {
	if c.focusedFrame != nil {
		return c.focusedFrame
	}
	if primary := c.Monitors.Primary(); primary != nil {
		c.focusedFrame = primary.Root()
	}
	return c.focusedFrame
}

// SetFocusedFrame updates the focused frame and, if it holds a window,
// focuses that window in the registry too.
func (c *Context) SetFocusedFrame(f *frame.Frame) {
	if f == nil {
		return
	}
	c.focusedFrame = f
	if w, ok := f.Window().(*winstate.Window); ok && w != nil {
		c.Registry.Focus(w)
	}
}

// monitorOf returns the monitor whose root frame contains f, or nil.
func (c *Context) monitorOf(f *frame.Frame) *monitor.Monitor {
	root := frame.Root(f)
	for _, m := range c.Monitors.Monitors() {
		if m.Root() == root {
			return m
		}
	}
	return nil
}

// adjacentMonitorRoot returns the root frame of the monitor adjacent to
// current in direction dir (nearest monitor whose rectangle lies fully on
// that side, picked by center-point comparison), or nil if current sits at
// the outermost monitor in that direction. Passed to frame.Move/GetLeafAt
// callers as the cross-monitor fallback of spec.md §4.1 case (1).
func (c *Context) adjacentMonitorRoot(current *monitor.Monitor) func(frame.Direction) *frame.Frame {
	return func(dir frame.Direction) *frame.Frame {
		if current == nil {
			return nil
		}
		cx := current.Rect.X + current.Rect.Width/2
		cy := current.Rect.Y + current.Rect.Height/2
		var best *monitor.Monitor
		var bestDist int32 = -1
		for _, m := range c.Monitors.Monitors() {
			if m == current {
				continue
			}
			mx := m.Rect.X + m.Rect.Width/2
			my := m.Rect.Y + m.Rect.Height/2
			switch dir {
			case frame.Right:
				if mx <= cx {
					continue
				}
			case frame.Left:
				if mx >= cx {
					continue
				}
			case frame.Down:
				if my <= cy {
					continue
				}
			case frame.Up:
				if my >= cy {
					continue
				}
			}
			d := abs32(mx-cx) + abs32(my-cy)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = m
			}
		}
		if best == nil {
			return nil
		}
		return best.Root()
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// splitOptions mirrors the live [tiling] settings into a frame.SplitOptions
// value, re-read on every call so a config reload takes effect immediately.
func (c *Context) splitOptions() frame.SplitOptions {
	t := c.Config.Settings.Tiling
	return frame.SplitOptions{
		AutoFillVoid:   t.AutoFillVoid,
		AutoEqualize:   t.AutoEqualize,
		AutoRemove:     t.AutoRemove,
		AutoRemoveVoid: t.AutoRemoveVoid,
		PopStash: func() *frame.Frame {
			return c.Stash.Pop(func(w frame.Window) bool {
				return c.Registry.Lookup(xproto.Window(w.ID())) != nil
			})
		},
	}
}

// QuitRequested reports whether the event loop should stop.
func (c *Context) QuitRequested() bool { return c.quitRequested }
