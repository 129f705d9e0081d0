package wm

import (
	"time"

	"github.com/thepsauce/fensterchef/internal/frame"
	"github.com/thepsauce/fensterchef/internal/monitor"
	"github.com/thepsauce/fensterchef/internal/winstate"
)

// FocusDirection moves the frame-focus cursor to the leaf adjacent to the
// current one in dir, within the same monitor tree; at an outer edge it
// crosses onto the neighboring monitor via adjacentMonitorRoot. It is a
// no-op past the outermost monitor, matching spec.md §4.1's case (1) for
// a single-monitor setup.
func (c *Context) FocusDirection(dir frame.Direction) {
	cur := c.FocusedFrame()
	root := frame.Root(cur)
	target := neighborLeaf(root, cur, dir)
	if target == nil {
		if adj := c.adjacentMonitorRoot(c.monitorOf(cur))(dir); adj != nil {
			target = frame.GetLeafAt(adj, adj.Rect().X, adj.Rect().Y)
		}
	}
	if target == nil {
		return
	}
	c.SetFocusedFrame(target)
}

// neighborLeaf returns the leaf immediately across cur's boundary in dir,
// found by probing a point just past the edge against the monitor's tree.
func neighborLeaf(root, cur *frame.Frame, dir frame.Direction) *frame.Frame {
	r := cur.Rect()
	var x, y int32
	switch dir {
	case frame.Right:
		x, y = r.X+r.Width, r.Y+r.Height/2
	case frame.Left:
		x, y = r.X-1, r.Y+r.Height/2
	case frame.Down:
		x, y = r.X+r.Width/2, r.Y+r.Height
	case frame.Up:
		x, y = r.X+r.Width/2, r.Y-1
	}
	return frame.GetLeafAt(root, x, y)
}

// MoveDirection relocates the window in the focused frame (spec.md §4.1's
// five cases), delegating to frame.Move. A focused frame with no window is
// a silent no-op.
func (c *Context) MoveDirection(dir frame.Direction) {
	cur := c.FocusedFrame()
	w, ok := cur.Window().(*winstate.Window)
	if !ok || w == nil {
		return
	}
	mon := c.monitorOf(cur)
	if err := frame.Move(cur, dir, c.Stash, c.splitOptions(), c.adjacentMonitorRoot(mon)); err != nil {
		return
	}
	// frame.Move only moves leaf window references; re-point the windows'
	// own leaf pointers at where they now sit.
	if other, ok := cur.Window().(*winstate.Window); ok && other != nil {
		other.SetFrame(cur)
	}
	w.SetFrame(nil)
	for _, m := range c.Monitors.Monitors() {
		if leaf := frame.FindWindow(frame.Root(m.Root()), w); leaf != nil {
			w.SetFrame(leaf)
			break
		}
	}
}

// SplitDirection splits the focused frame along dir and moves frame-focus
// onto the newly created (initially empty) sibling, per Split's
// fromUserAction contract.
func (c *Context) SplitDirection(dir frame.SplitDirection) {
	cur := c.FocusedFrame()
	focus, err := frame.Split(cur, nil, frame.After, dir, true, c.splitOptions())
	if err != nil {
		return
	}
	c.focusedFrame = focus
}

// BumpEdge nudges the shared edge between the focused frame and its
// neighbor in dir by amount pixels.
func (c *Context) BumpEdge(dir frame.Direction, amount int32) {
	cur := c.FocusedFrame()
	_, _ = cur.BumpEdge(dir, amount)
}

// ResizeBy bumps all four edges of the focused frame by their respective
// deltas in one call, the quad-argument counterpart to the four separate
// bump-* actions.
func (c *Context) ResizeBy(left, top, right, bottom int32) {
	cur := c.FocusedFrame()
	_, _ = cur.BumpEdge(frame.Left, left)
	_, _ = cur.BumpEdge(frame.Up, top)
	_, _ = cur.BumpEdge(frame.Right, right)
	_, _ = cur.BumpEdge(frame.Down, bottom)
}

// Equalize re-divides the focused frame's sibling chain evenly.
func (c *Context) Equalize() {
	cur := c.FocusedFrame()
	if cur.Parent() == nil {
		return
	}
	frame.Equalize(cur.Parent(), cur.Parent().SplitDir())
}

// CloseFocused runs the two-strike close policy of spec.md §4.2 against the
// focused window's client, sending WM_DELETE_WINDOW or forcing a kill as
// Registry.Close instructs.
func (c *Context) CloseFocused() {
	w := c.Registry.Focused()
	if w == nil {
		return
	}
	action := c.Registry.Close(w, closeTime())
	if c.Conn == nil {
		return
	}
	switch action {
	case winstate.CloseSendDelete:
		_ = c.Conn.SendDeleteWindow(w.Client())
	case winstate.CloseForceKill:
		_ = c.Conn.KillClient(w.Client())
	}
}

// closeTime is split out so a future test can stub it; production always
// wants the wall clock.
var closeTime = time.Now

// MinimizeFocused withdraws the focused window without destroying it
// (spec.md §4.2's minimize = hide without unmapping the registry entry).
func (c *Context) MinimizeFocused() {
	w := c.Registry.Focused()
	if w == nil {
		return
	}
	c.Registry.Hide(w)
}

// ToggleFullscreen flips the focused window between its previous mode and
// Fullscreen, detaching/reattaching the frame leaf as SetMode requires.
func (c *Context) ToggleFullscreen() {
	w := c.Registry.Focused()
	if w == nil {
		return
	}
	if w.Mode() == winstate.Fullscreen {
		c.restoreFromFullscreen(w)
		return
	}
	mon := c.monitorForWindow(w)
	c.Registry.SetMode(w, winstate.Fullscreen)
	if mon != nil {
		r := winstate.Rect(*mon)
		c.Registry.SetSize(w, r, r)
	}
	c.Registry.UpdateLayer(w)
}

func (c *Context) restoreFromFullscreen(w *winstate.Window) {
	c.Registry.SetMode(w, winstate.Tiling)
	leaf := c.FocusedFrame()
	if leaf.Window() == nil {
		w.AttachToFrame(leaf)
	} else {
		focus, err := frame.Split(leaf, nil, frame.After, frame.Horizontal, false, c.splitOptions())
		if err == nil {
			w.AttachToFrame(focus)
		}
	}
	c.Registry.UpdateLayer(w)
}

// ToggleFloating flips the focused window between Tiling and Floating,
// mirroring the same attach/detach rule ToggleFullscreen uses.
func (c *Context) ToggleFloating() {
	w := c.Registry.Focused()
	if w == nil {
		return
	}
	if w.Mode() == winstate.Floating {
		c.Registry.SetMode(w, winstate.Tiling)
		leaf := c.FocusedFrame()
		if leaf.Window() == nil {
			w.AttachToFrame(leaf)
		}
	} else {
		c.Registry.SetMode(w, winstate.Floating)
	}
	c.Registry.UpdateLayer(w)
}

// ShowMessage pops up the notification widget for the configured duration.
func (c *Context) ShowMessage(text string) {
	if c.Notify == nil {
		return
	}
	mon := c.Monitors.Primary()
	if mon == nil {
		return
	}
	dur := time.Duration(c.Config.Settings.Notification.Duration) * time.Millisecond
	c.Notify.Show(text, mon.Rect.X, mon.Rect.Y, dur)
}

// ShowRun opens the run-prompt popup (an editable command line with no
// preset candidates; spec.md §6 leaves completion out of scope).
func (c *Context) ShowRun() {
	if c.Winlist == nil {
		return
	}
	c.Winlist.Open(nil)
}

// ShowList opens the window-list popup with every window's name.
func (c *Context) ShowList() {
	if c.Winlist == nil {
		return
	}
	var names []string
	for _, w := range c.Registry.AllByAge() {
		names = append(names, w.Name())
	}
	c.Winlist.Open(names)
}

// MergeDefault re-merges one configuration section's built-in defaults
// (spec.md §4.5's `merge-default` action), delegating to whatever parser
// hook cmd/fensterchef installed; a Context with no hook wired is a no-op.
func (c *Context) MergeDefault(section string) {
	if c.OnMergeDefault != nil {
		c.OnMergeDefault(section)
	}
}

// ReloadConfig re-reads the configuration file from disk.
func (c *Context) ReloadConfig() {
	if c.OnReloadConfig != nil {
		c.OnReloadConfig()
	}
}

// Quit marks the event loop for shutdown after the current cycle.
func (c *Context) Quit() { c.quitRequested = true }

func (c *Context) monitorForWindow(w *winstate.Window) *monitor.Rect {
	if f := w.Frame(); f != nil {
		if m := c.monitorOf(f); m != nil {
			return &m.Rect
		}
	}
	if mon := c.Monitors.Primary(); mon != nil {
		return &mon.Rect
	}
	return nil
}
