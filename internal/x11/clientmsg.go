package x11

import "github.com/BurntSushi/xgb/xproto"

// ClientMessageKind classifies a decoded ClientMessageEvent against the
// fixed set spec.md §6 says fensterchef honors.
type ClientMessageKind int

const (
	ClientMessageUnknown ClientMessageKind = iota
	ClientMessageCloseWindow
	ClientMessageMoveresizeWindow
	ClientMessageWMMoveresize
	ClientMessageWMMoveresizeCancel
	ClientMessageWMState
	ClientMessageRequestFrameExtents
	ClientMessageWMChangeState
)

// NetWMStateAction mirrors the three actions _NET_WM_STATE messages encode
// in data[0] (EWMH spec).
type NetWMStateAction int32

const (
	NetWMStateActionRemove NetWMStateAction = 0
	NetWMStateActionAdd    NetWMStateAction = 1
	NetWMStateActionToggle NetWMStateAction = 2
)

// ClientMessage is a decoded ClientMessageEvent along with its 5 raw data
// words, already classified against the atoms this connection interned.
type ClientMessage struct {
	Window xproto.Window
	Kind   ClientMessageKind
	Data   [5]uint32
}

// DecodeClientMessage classifies evt against the message types spec.md §6
// lists, resolving the message type atom against the cache built at
// startup (so this never issues a new InternAtom request on the hot path).
func (c *Conn) DecodeClientMessage(evt xproto.ClientMessageEvent) ClientMessage {
	msg := ClientMessage{Window: evt.Window, Data: evt.Data.Data32}

	switch evt.Type {
	case c.Atoms.MustGet(NetCloseWindow):
		msg.Kind = ClientMessageCloseWindow
	case c.Atoms.MustGet(NetMoveresizeWindow):
		msg.Kind = ClientMessageMoveresizeWindow
	case c.Atoms.MustGet(NetWMMoveresize):
		msg.Kind = ClientMessageWMMoveresize
	case c.Atoms.MustGet(NetWMMoveresizeCancel):
		msg.Kind = ClientMessageWMMoveresizeCancel
	case c.Atoms.MustGet(NetWMState):
		msg.Kind = ClientMessageWMState
	case c.Atoms.MustGet(NetRequestFrameExtents):
		msg.Kind = ClientMessageRequestFrameExtents
	case c.Atoms.MustGet(WMChangeState):
		msg.Kind = ClientMessageWMChangeState
	}
	return msg
}

// WMStateAtoms resolves a _NET_WM_STATE message's two property atoms
// (data[1], data[2]; the second is 0 when only one property is toggled).
func (c *Conn) WMStateAtoms(msg ClientMessage) (action NetWMStateAction, first, second xproto.Atom) {
	return NetWMStateAction(int32(msg.Data[0])), xproto.Atom(msg.Data[1]), xproto.Atom(msg.Data[2])
}
