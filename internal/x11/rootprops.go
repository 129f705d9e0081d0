package x11

import (
	"encoding/binary"

	"github.com/BurntSushi/xgb/xproto"
)

// supportedAtoms is the _NET_SUPPORTED advertisement: every EWMH atom this
// implementation actually reads or writes, per spec.md §6.
var supportedAtoms = []string{
	NetSupported, NetSupportingWMCheck, NetActiveWindow,
	NetClientList, NetClientListStacking,
	NetNumberOfDesktops, NetCurrentDesktop, NetDesktopGeometry,
	NetDesktopViewport, NetDesktopNames, NetWorkarea,
	NetCloseWindow, NetMoveresizeWindow, NetWMMoveresize, NetWMMoveresizeCancel,
	NetWMState, NetWMStateFullscreen, NetWMStateMaximizedVert, NetWMStateMaximizedHorz,
	NetWMStateAbove, NetWMStateHidden,
	NetWMWindowType, NetWMWindowTypeDock, NetWMWindowTypeDesktop, NetWMWindowTypeNormal,
	NetWMStrutPartial, NetWMStrut, NetWMFullscreenMonitors,
	NetRequestFrameExtents, NetFrameExtents,
}

// InitRootProperties points _NET_SUPPORTING_WM_CHECK at checkWin (on the
// root and on checkWin itself) and writes every
// static root property spec.md §6 lists (_NET_SUPPORTED, desktop count,
// geometry, viewport, names). checkWin must already be created (a 1x1
// override-redirect window owned by the WM, per EWMH convention).
func (c *Conn) InitRootProperties(checkWin xproto.Window, screenWidth, screenHeight int32) error {
	supported := make([]xproto.Atom, 0, len(supportedAtoms))
	for _, name := range supportedAtoms {
		atom, err := c.Atoms.Get(name)
		if err != nil {
			return err
		}
		supported = append(supported, atom)
	}
	if err := c.changeAtomList(c.Root, NetSupported, supported); err != nil {
		return err
	}
	if err := c.changeWindowProp(c.Root, NetSupportingWMCheck, checkWin); err != nil {
		return err
	}
	if err := c.changeWindowProp(checkWin, NetSupportingWMCheck, checkWin); err != nil {
		return err
	}
	if err := c.changeCardinal(c.Root, NetNumberOfDesktops, 1); err != nil {
		return err
	}
	if err := c.changeCardinal(c.Root, NetCurrentDesktop, 0); err != nil {
		return err
	}
	if err := c.changeCardinals(c.Root, NetDesktopGeometry, []uint32{uint32(screenWidth), uint32(screenHeight)}); err != nil {
		return err
	}
	if err := c.changeCardinals(c.Root, NetDesktopViewport, []uint32{0, 0}); err != nil {
		return err
	}
	return c.changeUTF8(c.Root, NetDesktopNames, "fensterchef")
}

// SetWorkarea writes _NET_WORKAREA: the usable rectangle of the primary
// monitor (EWMH only supports one rectangle per desktop; fensterchef has
// one virtual desktop).
func (c *Conn) SetWorkarea(x, y, w, h int32) error {
	return c.changeCardinals(c.Root, NetWorkarea, []uint32{uint32(x), uint32(y), uint32(w), uint32(h)})
}

// SetActiveWindow writes _NET_ACTIVE_WINDOW.
func (c *Conn) SetActiveWindow(win xproto.Window) error {
	return c.changeWindowProp(c.Root, NetActiveWindow, win)
}

// SetClientList writes _NET_CLIENT_LIST (age order).
func (c *Conn) SetClientList(wins []xproto.Window) error {
	return c.changeWindowList(c.Root, NetClientList, wins)
}

// SetClientListStacking writes _NET_CLIENT_LIST_STACKING (Z order).
func (c *Conn) SetClientListStacking(wins []xproto.Window) error {
	return c.changeWindowList(c.Root, NetClientListStacking, wins)
}

// SetWMState writes ICCCM WM_STATE on win.
func (c *Conn) SetWMState(win xproto.Window, state uint32) error {
	atom, err := c.Atoms.Get(WMState)
	if err != nil {
		return err
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], state)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(xproto.AtomNone))
	return xproto.ChangePropertyChecked(c.XGB, xproto.PropModeReplace, win, atom, atom, 32, 2, buf).Check()
}

// SetNetWMState writes the full _NET_WM_STATE atom list on win.
func (c *Conn) SetNetWMState(win xproto.Window, atoms []xproto.Atom) error {
	return c.changeAtomList(win, NetWMState, atoms)
}

// SetFrameExtents answers a _NET_REQUEST_FRAME_EXTENTS message: since windows
// are never reparented into a separate decoration frame, the reserved
// border on every edge is just the configured border width.
func (c *Conn) SetFrameExtents(win xproto.Window, left, right, top, bottom int32) error {
	return c.changeCardinals(win, NetFrameExtents,
		[]uint32{uint32(left), uint32(right), uint32(top), uint32(bottom)})
}

func (c *Conn) changeCardinal(win xproto.Window, name string, v uint32) error {
	return c.changeCardinals(win, name, []uint32{v})
}

func (c *Conn) changeCardinals(win xproto.Window, name string, vs []uint32) error {
	atom, err := c.Atoms.Get(name)
	if err != nil {
		return err
	}
	buf := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], v)
	}
	return xproto.ChangePropertyChecked(c.XGB, xproto.PropModeReplace, win, atom, xproto.AtomCardinal, 32, uint32(len(vs)), buf).Check()
}

func (c *Conn) changeAtomList(win xproto.Window, name string, atoms []xproto.Atom) error {
	prop, err := c.Atoms.Get(name)
	if err != nil {
		return err
	}
	buf := make([]byte, 4*len(atoms))
	for i, a := range atoms {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(a))
	}
	return xproto.ChangePropertyChecked(c.XGB, xproto.PropModeReplace, win, prop, xproto.AtomAtom, 32, uint32(len(atoms)), buf).Check()
}

func (c *Conn) changeWindowProp(win xproto.Window, name string, value xproto.Window) error {
	return c.changeWindowList(win, name, []xproto.Window{value})
}

func (c *Conn) changeWindowList(win xproto.Window, name string, wins []xproto.Window) error {
	atom, err := c.Atoms.Get(name)
	if err != nil {
		return err
	}
	buf := make([]byte, 4*len(wins))
	for i, w := range wins {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(w))
	}
	return xproto.ChangePropertyChecked(c.XGB, xproto.PropModeReplace, win, atom, xproto.AtomWindow, 32, uint32(len(wins)), buf).Check()
}

func (c *Conn) changeUTF8(win xproto.Window, name, value string) error {
	prop, err := c.Atoms.Get(name)
	if err != nil {
		return err
	}
	utf8, err := c.Atoms.Get(UTF8String)
	if err != nil {
		return err
	}
	return xproto.ChangePropertyChecked(c.XGB, xproto.PropModeReplace, win, prop, utf8, 8, uint32(len(value)), []byte(value)).Check()
}
