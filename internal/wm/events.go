package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/thepsauce/fensterchef/internal/frame"
	"github.com/thepsauce/fensterchef/internal/monitor"
	"github.com/thepsauce/fensterchef/internal/winstate"
	"github.com/thepsauce/fensterchef/internal/x11"
)

// HandleMapRequest implements spec.md §4.2's window-arrival path: classify
// the window from its current properties, create its registry entry,
// evaluate any matching [assignment] rule, and place it (tiling windows
// join the focused frame's subtree; everything else just gets shown).
func (c *Context) HandleMapRequest(win xproto.Window) error {
	if c.Conn == nil {
		return nil
	}
	atoms := classifyAtoms(c.Conn)
	stateAtoms, err := c.Conn.StateAtoms(win)
	if err != nil {
		return err
	}
	typeAtoms, err := c.Conn.TypeAtoms(win)
	if err != nil {
		return err
	}
	strut, _, err := c.Conn.StrutPartial(win)
	if err != nil {
		return err
	}
	transientFor, _, err := c.Conn.TransientFor(win)
	if err != nil {
		return err
	}
	hints, err := c.Conn.SizeHints(win)
	if err != nil {
		return err
	}
	wmHints, err := c.Conn.WMHints(win)
	if err != nil {
		return err
	}
	protocols, err := c.Conn.Protocols(win)
	if err != nil {
		return err
	}
	motif, err := c.Conn.MotifHints(win)
	if err != nil {
		return err
	}
	name, _ := c.Conn.Name(win)

	var rect winstate.Rect
	var borderSize int32
	if geom, err := xproto.GetGeometry(c.Conn.XGB, xproto.Drawable(win)).Reply(); err == nil {
		rect = winstate.Rect{X: int32(geom.X), Y: int32(geom.Y), Width: int32(geom.Width), Height: int32(geom.Height)}
		borderSize = int32(geom.BorderWidth)
	}

	mode := winstate.Classify(winstate.ClassifyInput{
		Atoms:        atoms,
		StateAtoms:   stateAtoms,
		TypeAtoms:    typeAtoms,
		Strut:        toWinstateStrut(strut),
		TransientFor: transientFor,
		SizeHints:    toWinstateSizeHints(hints),
	})

	instance, class, _ := c.Conn.WMClass(win)
	assoc, hasAssoc := matchAssociation(c.Config.Associations, instance, class)

	params := winstate.CreateParams{
		Client:       win,
		Name:         name,
		Rect:         rect,
		BorderSize:   borderSize,
		SizeHints:    toWinstateSizeHints(hints),
		WMHints:      toWinstateWMHints(wmHints),
		Strut:        toWinstateStrut(strut),
		Protocols:    toWinstateProtocols(protocols),
		Motif:        toWinstateMotif(motif),
		TransientFor: transientFor,
		StateAtoms:   stateAtoms,
		TypeAtoms:    typeAtoms,
	}
	if hasAssoc {
		params.FirstNumber = assoc.Number
	}

	w, err := c.Registry.Create(params)
	if err != nil {
		return err
	}
	c.Registry.SetMode(w, mode)

	if hasAssoc && assoc.Expr != nil {
		c.Registry.Show(w)
		c.Registry.UpdateLayer(w)
		c.Registry.Focus(w)
		c.runAssociation(assoc)
		return nil
	}
	c.placeNewWindow(w)
	return nil
}

// placeNewWindow attaches a newly created window to the frame tree (tiling)
// or just shows it (every other mode), then focuses it.
func (c *Context) placeNewWindow(w *winstate.Window) {
	if w.Mode() == winstate.Tiling {
		leaf := c.FocusedFrame()
		if leaf.IsEmpty() {
			w.AttachToFrame(leaf)
		} else {
			focus, err := frame.Split(leaf, nil, frame.After, frame.Horizontal, false, c.splitOptions())
			if err == nil {
				w.AttachToFrame(focus)
				c.focusedFrame = focus
			}
		}
	}
	c.Registry.Show(w)
	c.Registry.UpdateLayer(w)
	c.SetFocusedFrame(c.focusedFrame)
	c.Registry.Focus(w)
}

// classifyAtoms resolves the fixed atom set winstate.Classify compares
// against, from conn's cache.
func classifyAtoms(conn *x11.Conn) winstate.Atoms {
	return winstate.Atoms{
		Fullscreen:    conn.Atoms.MustGet(x11.NetWMStateFullscreen),
		MaximizedVert: conn.Atoms.MustGet(x11.NetWMStateMaximizedVert),
		MaximizedHorz: conn.Atoms.MustGet(x11.NetWMStateMaximizedHorz),
		TypeDock:      conn.Atoms.MustGet(x11.NetWMWindowTypeDock),
		TypeDesktop:   conn.Atoms.MustGet(x11.NetWMWindowTypeDesktop),
		TypeNormal:    conn.Atoms.MustGet(x11.NetWMWindowTypeNormal),
	}
}

// HandleDestroyNotify removes win from the registry and collapses its
// frame slot per the live [tiling] auto-* flags.
func (c *Context) HandleDestroyNotify(win xproto.Window) {
	w := c.Registry.Lookup(win)
	if w == nil {
		return
	}
	leaf := w.Frame()
	if err := c.Registry.Destroy(w); err != nil {
		return
	}
	if leaf != nil {
		_ = frame.Remove(leaf, c.splitOptions())
	}
}

// HandleClientMessage dispatches a decoded ClientMessageEvent (spec.md §6):
// _NET_CLOSE_WINDOW runs the same close policy as the close-window action,
// _NET_WM_STATE toggles fullscreen via the existing state atom,
// _NET_MOVERESIZE_WINDOW repositions/resizes a floating window directly,
// _NET_WM_MOVERESIZE/_CANCEL track the mouse move/resize grab the registry
// exposes via Moving/SetMoving, _NET_REQUEST_FRAME_EXTENTS answers with the
// configured border on every edge, and WM_CHANGE_STATE drives show/hide per
// its requested ICCCM state.
//
// _NET_REQUEST_FRAME_EXTENTS is the one kind answered without a registered
// window (a client may ask before it is mapped), so it is handled before
// the registry lookup below turns up empty-handed for every other kind.
func (c *Context) HandleClientMessage(evt xproto.ClientMessageEvent) {
	if c.Conn == nil {
		return
	}
	msg := c.Conn.DecodeClientMessage(evt)
	if msg.Kind == x11.ClientMessageRequestFrameExtents {
		size := c.Config.Settings.Border.Size
		_ = c.Conn.SetFrameExtents(msg.Window, size, size, size, size)
		return
	}
	w := c.Registry.Lookup(msg.Window)
	if w == nil {
		return
	}
	switch msg.Kind {
	case x11.ClientMessageCloseWindow:
		prev := c.Registry.Focused()
		c.Registry.Focus(w)
		c.CloseFocused()
		c.Registry.Focus(prev)
	case x11.ClientMessageWMState:
		action, first, second := c.Conn.WMStateAtoms(msg)
		c.applyNetWMState(w, action, first, second)
	case x11.ClientMessageMoveresizeWindow:
		c.applyMoveresizeWindow(w, msg.Data)
	case x11.ClientMessageWMMoveresize:
		c.Registry.SetMoving(w)
	case x11.ClientMessageWMMoveresizeCancel:
		c.Registry.SetMoving(nil)
	case x11.ClientMessageWMChangeState:
		c.applyWMChangeState(w, msg.Data)
	}
}

// applyMoveresizeWindow honors _NET_MOVERESIZE_WINDOW's present-fields
// bitmask (data[0] bits 8-11: x, y, width, height) against a floating
// window; tiling windows keep their frame-owned geometry and ignore it.
func (c *Context) applyMoveresizeWindow(w *winstate.Window, data [5]uint32) {
	if w.Mode() != winstate.Floating {
		return
	}
	const (
		flagX = 1 << 8
		flagY = 1 << 9
		flagW = 1 << 10
		flagH = 1 << 11
	)
	flags := data[0]
	rect := w.Rect()
	if flags&flagX != 0 {
		rect.X = int32(data[1])
	}
	if flags&flagY != 0 {
		rect.Y = int32(data[2])
	}
	if flags&flagW != 0 {
		rect.Width = int32(data[3])
	}
	if flags&flagH != 0 {
		rect.Height = int32(data[4])
	}
	w.SetRect(rect)
	_ = c.Conn.ConfigureWindow(w.Client(), rect.X, rect.Y, rect.Width, rect.Height, w.BorderSize())
}

// applyWMChangeState drives the registry's visibility per ICCCM
// WM_CHANGE_STATE's requested state (data[0]): IconicState minimizes,
// NormalState restores. WithdrawnState has no client-requestable
// transition in this implementation (withdrawal happens via unmap).
func (c *Context) applyWMChangeState(w *winstate.Window, data [5]uint32) {
	switch winstate.WMState(data[0]) {
	case winstate.StateIconic:
		c.Registry.Hide(w)
	case winstate.StateNormal:
		c.Registry.Show(w)
	}
}

func (c *Context) applyNetWMState(w *winstate.Window, action x11.NetWMStateAction, first, second xproto.Atom) {
	fs := c.Conn.Atoms.MustGet(x11.NetWMStateFullscreen)
	if first != fs && second != fs {
		return
	}
	wantFullscreen := action == x11.NetWMStateActionAdd ||
		(action == x11.NetWMStateActionToggle && w.Mode() != winstate.Fullscreen)
	if wantFullscreen == (w.Mode() == winstate.Fullscreen) {
		return
	}
	prev := c.Registry.Focused()
	c.Registry.Focus(w)
	c.ToggleFullscreen()
	c.Registry.Focus(prev)
}

// HandlePropertyNotify re-reads a property fensterchef tracks after the
// initial map, currently just WM_NAME (used by the window-list popup).
func (c *Context) HandlePropertyNotify(win xproto.Window, atom xproto.Atom) {
	if c.Conn == nil {
		return
	}
	w := c.Registry.Lookup(win)
	if w == nil {
		return
	}
	if name, err := c.Conn.Name(win); err == nil {
		w.SetName(name)
	}
}

// ReconcileMonitors re-queries RandR outputs (via query, owned by
// cmd/fensterchef) and merges them into the live monitor set, then
// recomputes every window's monitor-relative placement.
func (c *Context) ReconcileMonitors(fresh []*monitor.Monitor, gaps frame.Gaps) {
	c.Monitors.Reconcile(fresh, gaps)
	if c.focusedFrame == nil || c.monitorOf(c.focusedFrame) == nil {
		if primary := c.Monitors.Primary(); primary != nil {
			c.focusedFrame = primary.Root()
		}
	}
}

// tick runs one full Synchronizer cycle against the context's monitor set
// and registry. The event loop in cmd/fensterchef calls Synchronizer.Cycle
// directly and does not go through this method.
func (c *Context) tick() error {
	return c.Sync.Cycle(c.Monitors, c.Registry)
}
