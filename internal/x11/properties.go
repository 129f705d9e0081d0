package x11

import (
	"encoding/binary"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Conn bundles the raw xgb connection, the root window and the atom cache:
// everything a property decoder needs, grounded on resetti's Client (one
// struct owning conn + atoms + root).
type Conn struct {
	XGB   *xgb.Conn
	Root  xproto.Window
	Atoms *Atoms
}

// getProperty is the raw GetProperty call every typed decoder builds on,
// grounded on resetti's getProperty (x11.go).
func (c *Conn) getProperty(win xproto.Window, name string, typ xproto.Atom, length uint32) ([]byte, xproto.Atom, error) {
	atom, err := c.Atoms.Get(name)
	if err != nil {
		return nil, 0, err
	}
	reply, err := xproto.GetProperty(c.XGB, false, win, atom, typ, 0, length).Reply()
	if err != nil {
		return nil, 0, err
	}
	return reply.Value, reply.Type, nil
}

// SizeHints decodes ICCCM WM_NORMAL_HINTS.
type SizeHints struct {
	HasMin, HasMax bool
	MinWidth       int32
	MinHeight      int32
	MaxWidth       int32
	MaxHeight      int32
}

// flags bits used by WM_NORMAL_HINTS (ICCCM 4.1.2.3).
const (
	hintPMinSize = 1 << 4
	hintPMaxSize = 1 << 5
)

func (c *Conn) SizeHints(win xproto.Window) (SizeHints, error) {
	data, _, err := c.getProperty(win, WMNormalHints, xproto.AtomWmSizeHints, 18)
	if err != nil || len(data) < 4*4 {
		return SizeHints{}, err
	}
	words := toUint32s(data)
	flags := words[0]
	var h SizeHints
	if flags&hintPMinSize != 0 && len(words) >= 6 {
		h.HasMin = true
		h.MinWidth = int32(words[5])
		h.MinHeight = int32(words[6])
	}
	if flags&hintPMaxSize != 0 && len(words) >= 8 {
		h.HasMax = true
		h.MaxWidth = int32(words[7])
		h.MaxHeight = int32(words[8])
	}
	return h, nil
}

// WMHints decodes ICCCM WM_HINTS, specifically the input/urgency flags
// actions and the focus policy need.
type WMHints struct {
	HasInput   bool
	Input      bool
	Urgent     bool
}

const (
	hintInputHint  = 1 << 0
	hintUrgency    = 1 << 8
)

func (c *Conn) WMHints(win xproto.Window) (WMHints, error) {
	data, _, err := c.getProperty(win, WMHints, xproto.AtomWmHints, 9)
	if err != nil || len(data) < 4 {
		return WMHints{}, err
	}
	words := toUint32s(data)
	flags := words[0]
	h := WMHints{HasInput: flags&hintInputHint != 0}
	if h.HasInput && len(words) >= 2 {
		h.Input = words[1] != 0
	}
	h.Urgent = flags&hintUrgency != 0
	return h, nil
}

// StrutPartial decodes _NET_WM_STRUT_PARTIAL (falling back to the older,
// 4-field _NET_WM_STRUT when partial is absent).
type StrutPartial struct {
	Left, Right, Top, Bottom int32
}

func (c *Conn) StrutPartial(win xproto.Window) (StrutPartial, bool, error) {
	data, _, err := c.getProperty(win, NetWMStrutPartial, xproto.AtomCardinal, 12)
	if err == nil && len(data) >= 16 {
		w := toUint32s(data)
		return StrutPartial{Left: int32(w[0]), Right: int32(w[1]), Top: int32(w[2]), Bottom: int32(w[3])}, true, nil
	}
	data, _, err = c.getProperty(win, NetWMStrut, xproto.AtomCardinal, 4)
	if err != nil || len(data) < 16 {
		return StrutPartial{}, false, err
	}
	w := toUint32s(data)
	return StrutPartial{Left: int32(w[0]), Right: int32(w[1]), Top: int32(w[2]), Bottom: int32(w[3])}, true, nil
}

// Protocols decodes WM_PROTOCOLS into a small set membership struct (only
// the two protocols fensterchef's close/focus logic cares about).
type Protocols struct {
	DeleteWindow bool
	TakeFocus    bool
}

func (c *Conn) Protocols(win xproto.Window) (Protocols, error) {
	data, _, err := c.getProperty(win, WMProtocols, xproto.AtomAtom, 16)
	if err != nil {
		return Protocols{}, err
	}
	deleteAtom, _ := c.Atoms.Get(WMDeleteWindow)
	takeFocusAtom, _ := c.Atoms.Get(WMTakeFocus)
	var p Protocols
	for _, a := range toAtoms(data) {
		switch a {
		case deleteAtom:
			p.DeleteWindow = true
		case takeFocusAtom:
			p.TakeFocus = true
		}
	}
	return p, nil
}

// MotifHints decodes the decorations field of _MOTIF_WM_HINTS: whether the
// flags word marks it present, and whether it is non-zero.
type MotifHints struct {
	HasDecorations bool
	Decorations    bool
}

const motifHintsDecorations = 1 << 1

func (c *Conn) MotifHints(win xproto.Window) (MotifHints, error) {
	atom, err := c.Atoms.Get(MotifWMHints)
	if err != nil {
		return MotifHints{}, err
	}
	data, _, err := c.getProperty(win, MotifWMHints, atom, 5)
	if err != nil || len(data) < 8 {
		return MotifHints{}, err
	}
	w := toUint32s(data)
	if w[0]&motifHintsDecorations == 0 {
		return MotifHints{}, nil
	}
	return MotifHints{HasDecorations: true, Decorations: w[2] != 0}, nil
}

// StateAtoms decodes _NET_WM_STATE into the raw atom list (the caller maps
// these against NetWMState* constants; kept raw here since winstate.Classify
// needs the atoms, not this package's interpretation of them).
func (c *Conn) StateAtoms(win xproto.Window) ([]xproto.Atom, error) {
	data, _, err := c.getProperty(win, NetWMState, xproto.AtomAtom, 32)
	if err != nil {
		return nil, err
	}
	return toAtoms(data), nil
}

// TypeAtoms decodes _NET_WM_WINDOW_TYPE.
func (c *Conn) TypeAtoms(win xproto.Window) ([]xproto.Atom, error) {
	data, _, err := c.getProperty(win, NetWMWindowType, xproto.AtomAtom, 32)
	if err != nil {
		return nil, err
	}
	return toAtoms(data), nil
}

// TransientFor decodes WM_TRANSIENT_FOR, returning (0, false) when absent.
func (c *Conn) TransientFor(win xproto.Window) (xproto.Window, bool, error) {
	data, _, err := c.getProperty(win, WMTransientFor, xproto.AtomWindow, 1)
	if err != nil || len(data) < 4 {
		return 0, false, err
	}
	return xproto.Window(binary.LittleEndian.Uint32(data)), true, nil
}

// FullscreenMonitors decodes _NET_WM_FULLSCREEN_MONITORS (top, bottom,
// left, right monitor indices).
func (c *Conn) FullscreenMonitors(win xproto.Window) ([4]uint32, bool, error) {
	data, _, err := c.getProperty(win, NetWMFullscreenMonitors, xproto.AtomCardinal, 4)
	if err != nil || len(data) < 16 {
		return [4]uint32{}, false, err
	}
	w := toUint32s(data)
	return [4]uint32{w[0], w[1], w[2], w[3]}, true, nil
}

// Name decodes WM_NAME / _NET_WM_NAME as UTF8, preferring the EWMH variant.
func (c *Conn) Name(win xproto.Window) (string, error) {
	utf8, err := c.Atoms.Get(UTF8String)
	if err == nil {
		if data, _, err := c.getProperty(win, "_NET_WM_NAME", utf8, 1024); err == nil && len(data) > 0 {
			return string(data), nil
		}
	}
	data, _, err := c.getProperty(win, "WM_NAME", xproto.AtomString, 1024)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WMClass decodes WM_CLASS into its two NUL-separated parts: instance name
// first, class name second (ICCCM 4.1.2.5).
func (c *Conn) WMClass(win xproto.Window) (instance, class string, err error) {
	data, _, err := c.getProperty(win, "WM_CLASS", xproto.AtomString, 1024)
	if err != nil {
		return "", "", err
	}
	parts := splitNUL(data)
	if len(parts) > 0 {
		instance = parts[0]
	}
	if len(parts) > 1 {
		class = parts[1]
	}
	return instance, class, nil
}

func splitNUL(data []byte) []string {
	var out []string
	start := 0
	for i, b := range data {
		if b == 0 {
			out = append(out, string(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		out = append(out, string(data[start:]))
	}
	return out
}

func toUint32s(data []byte) []uint32 {
	n := len(data) / 4
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	return out
}

func toAtoms(data []byte) []xproto.Atom {
	words := toUint32s(data)
	out := make([]xproto.Atom, len(words))
	for i, w := range words {
		out[i] = xproto.Atom(w)
	}
	return out
}
