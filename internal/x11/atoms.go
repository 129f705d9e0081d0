// Package x11 wraps the BurntSushi/xgb connection with the atom cache,
// typed property decoders, and root-property write-backs spec.md §6
// requires, grounded on resetti's internal/x11 client (x11.go's atomCache,
// getProperty/getPropertyInt/getPropertyString triad).
package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Atoms are the interned names fensterchef reads or writes, resolved once
// at connection time and cached by name after.
type Atoms struct {
	conn *xgb.Conn
	data map[string]xproto.Atom
}

// NewAtoms returns an empty cache bound to conn. Unlike resetti's atomCache
// this carries no mutex: the synchronizer is single-threaded (spec.md §5),
// so concurrent Get calls never happen.
func NewAtoms(conn *xgb.Conn) *Atoms {
	return &Atoms{conn: conn, data: make(map[string]xproto.Atom)}
}

// Get resolves name to its atom, requesting it from the server once and
// caching the result.
func (a *Atoms) Get(name string) (xproto.Atom, error) {
	if atom, ok := a.data[name]; ok {
		return atom, nil
	}
	reply, err := xproto.InternAtom(a.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	a.data[name] = reply.Atom
	return reply.Atom, nil
}

// MustGet is Get without an error return, for atoms resolved once at
// startup where a failure is a fatal connection problem the caller already
// checks for elsewhere.
func (a *Atoms) MustGet(name string) xproto.Atom {
	atom, err := a.Get(name)
	if err != nil {
		return xproto.AtomNone
	}
	return atom
}

// The fixed atom names fensterchef interns at startup (spec.md §6).
const (
	NetSupported              = "_NET_SUPPORTED"
	NetSupportingWMCheck       = "_NET_SUPPORTING_WM_CHECK"
	NetActiveWindow            = "_NET_ACTIVE_WINDOW"
	NetClientList              = "_NET_CLIENT_LIST"
	NetClientListStacking      = "_NET_CLIENT_LIST_STACKING"
	NetNumberOfDesktops        = "_NET_NUMBER_OF_DESKTOPS"
	NetCurrentDesktop          = "_NET_CURRENT_DESKTOP"
	NetDesktopGeometry         = "_NET_DESKTOP_GEOMETRY"
	NetDesktopViewport         = "_NET_DESKTOP_VIEWPORT"
	NetDesktopNames            = "_NET_DESKTOP_NAMES"
	NetWorkarea                = "_NET_WORKAREA"
	NetCloseWindow             = "_NET_CLOSE_WINDOW"
	NetMoveresizeWindow        = "_NET_MOVERESIZE_WINDOW"
	NetWMMoveresize            = "_NET_WM_MOVERESIZE"
	NetWMMoveresizeCancel      = "_NET_WM_MOVERESIZE_CANCEL"
	NetWMState                 = "_NET_WM_STATE"
	NetWMStateAdd              = "_NET_WM_STATE_ADD"
	NetWMStateRemove           = "_NET_WM_STATE_REMOVE"
	NetWMStateToggle           = "_NET_WM_STATE_TOGGLE"
	NetWMStateFullscreen       = "_NET_WM_STATE_FULLSCREEN"
	NetWMStateMaximizedVert    = "_NET_WM_STATE_MAXIMIZED_VERT"
	NetWMStateMaximizedHorz    = "_NET_WM_STATE_MAXIMIZED_HORZ"
	NetWMStateAbove            = "_NET_WM_STATE_ABOVE"
	NetWMStateHidden           = "_NET_WM_STATE_HIDDEN"
	NetWMWindowType            = "_NET_WM_WINDOW_TYPE"
	NetWMWindowTypeDock        = "_NET_WM_WINDOW_TYPE_DOCK"
	NetWMWindowTypeDesktop     = "_NET_WM_WINDOW_TYPE_DESKTOP"
	NetWMWindowTypeNormal      = "_NET_WM_WINDOW_TYPE_NORMAL"
	NetWMStrutPartial          = "_NET_WM_STRUT_PARTIAL"
	NetWMStrut                 = "_NET_WM_STRUT"
	NetWMFullscreenMonitors    = "_NET_WM_FULLSCREEN_MONITORS"
	NetRequestFrameExtents     = "_NET_REQUEST_FRAME_EXTENTS"
	NetFrameExtents            = "_NET_FRAME_EXTENTS"
	WMState                    = "WM_STATE"
	WMProtocols                = "WM_PROTOCOLS"
	WMDeleteWindow             = "WM_DELETE_WINDOW"
	WMTakeFocus                = "WM_TAKE_FOCUS"
	WMChangeState              = "WM_CHANGE_STATE"
	WMNormalHints              = "WM_NORMAL_HINTS"
	WMHints                    = "WM_HINTS"
	WMTransientFor             = "WM_TRANSIENT_FOR"
	MotifWMHints               = "_MOTIF_WM_HINTS"
	UTF8String                 = "UTF8_STRING"
)
