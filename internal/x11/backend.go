package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/thepsauce/fensterchef/internal/sync"
)

// Conn implements sync.Backend directly: the synchronizer and the real X11
// connection share no code beyond this interface, which is exactly the
// point (internal/sync/sync_test.go exercises the same eight-step cycle
// against a fake).
var _ sync.Backend = (*Conn)(nil)

// ConfigureWindow pushes a window's geometry and border width in one
// request (spec.md §4.6 step 4/5).
func (c *Conn) ConfigureWindow(win xproto.Window, x, y, width, height, borderWidth int32) error {
	return xproto.ConfigureWindowChecked(c.XGB, win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|
			xproto.ConfigWindowHeight|xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(x), uint32(y), uint32(width), uint32(height), uint32(borderWidth)},
	).Check()
}

// SetBorderColor sets the pixel value X draws win's border ring with.
func (c *Conn) SetBorderColor(win xproto.Window, color int32) error {
	return xproto.ChangeWindowAttributesChecked(c.XGB, win, xproto.CwBorderPixel,
		[]uint32{uint32(color)}).Check()
}

// Restack applies a full bottom-to-top stacking order in one pass, each
// window configured Above the previous one.
func (c *Conn) Restack(order []xproto.Window) error {
	var sibling xproto.Window
	for i, win := range order {
		if i == 0 {
			if err := xproto.ConfigureWindowChecked(c.XGB, win,
				xproto.ConfigWindowStackMode, []uint32{uint32(xproto.StackModeBelow)}).Check(); err != nil {
				return err
			}
			sibling = win
			continue
		}
		if err := xproto.ConfigureWindowChecked(c.XGB, win,
			xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
			[]uint32{uint32(sibling), uint32(xproto.StackModeAbove)}).Check(); err != nil {
			return err
		}
		sibling = win
	}
	return nil
}

// Map maps win.
func (c *Conn) Map(win xproto.Window) error { return xproto.MapWindowChecked(c.XGB, win).Check() }

// Unmap unmaps win.
func (c *Conn) Unmap(win xproto.Window) error { return xproto.UnmapWindowChecked(c.XGB, win).Check() }

// SetHidden adds or removes _NET_WM_STATE_HIDDEN from win's state list.
func (c *Conn) SetHidden(win xproto.Window, hidden bool) error {
	atoms, err := c.StateAtoms(win)
	if err != nil {
		return err
	}
	hiddenAtom, err := c.Atoms.Get(NetWMStateHidden)
	if err != nil {
		return err
	}
	filtered := atoms[:0]
	has := false
	for _, a := range atoms {
		if a == hiddenAtom {
			has = true
			continue
		}
		filtered = append(filtered, a)
	}
	if hidden && !has {
		filtered = append(filtered, hiddenAtom)
	}
	return c.SetNetWMState(win, filtered)
}

// Focus assigns input focus to win, sending WM_TAKE_FOCUS first when the
// client declared the protocol.
func (c *Conn) Focus(win xproto.Window, takeFocus bool) error {
	if takeFocus {
		if err := c.sendTakeFocus(win); err != nil {
			return err
		}
	}
	return xproto.SetInputFocusChecked(c.XGB, xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime).Check()
}

func (c *Conn) sendTakeFocus(win xproto.Window) error {
	protocols, err := c.Atoms.Get(WMProtocols)
	if err != nil {
		return err
	}
	takeFocus, err := c.Atoms.Get(WMTakeFocus)
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(takeFocus), uint32(xproto.TimeCurrentTime), 0, 0, 0}),
	}
	return xproto.SendEventChecked(c.XGB, false, win, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// SendDeleteWindow asks win's client to close itself via ICCCM's
// WM_DELETE_WINDOW convention.
func (c *Conn) SendDeleteWindow(win xproto.Window) error {
	protocols, err := c.Atoms.Get(WMProtocols)
	if err != nil {
		return err
	}
	del, err := c.Atoms.Get(WMDeleteWindow)
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(del), uint32(xproto.TimeCurrentTime), 0, 0, 0}),
	}
	return xproto.SendEventChecked(c.XGB, false, win, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// KillClient forcibly terminates win's client connection.
func (c *Conn) KillClient(win xproto.Window) error {
	return xproto.KillClientChecked(c.XGB, uint32(win)).Check()
}
