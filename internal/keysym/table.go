// Package keysym resolves configuration-file key names to X11 keysyms and
// back to keycodes, grounded on original_source/src/keymap.c's
// xcb_key_symbols wrapper (init_keymap/get_keysym/get_keycodes), rebuilt
// against BurntSushi/xgb's GetKeyboardMapping reply since no Go example in
// the pack carries its own keysym package (marwind calls one,
// `wm.keymap[e.Detail][0]` in wm/wm.go, but it wasn't part of the
// retrieval).
package keysym

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Table is a loaded keycode<->keysym mapping for the current display.
type Table struct {
	min, max     xproto.Keycode
	perKeycode   byte
	keysyms      []uint32 // flat [keycode-min][perKeycode] layout
}

// Load queries the server's current keyboard mapping, mirroring
// init_keymap's xcb_key_symbols_alloc.
func Load(conn *xgb.Conn) (*Table, error) {
	setup := xproto.Setup(conn)
	min, max := setup.MinKeycode, setup.MaxKeycode
	count := uint8(max - min + 1)
	reply, err := xproto.GetKeyboardMapping(conn, min, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("keysym: querying keyboard mapping: %w", err)
	}
	return &Table{
		min:        min,
		max:        max,
		perKeycode: reply.KeysymsPerKeycode,
		keysyms:    reply.Keysyms,
	}, nil
}

// KeycodeRange implements parse.KeyResolver.
func (t *Table) KeycodeRange() (uint8, uint8) { return uint8(t.min), uint8(t.max) }

// KeysymAt returns the keysym bound to keycode at the given column (0 is
// the unshifted symbol, 1 the shifted one; higher columns follow
// X11's group/level convention but fensterchef only consults 0/1).
func (t *Table) KeysymAt(code xproto.Keycode, col int) (uint32, bool) {
	if code < t.min || code > t.max || t.perKeycode == 0 {
		return 0, false
	}
	idx := (int(code-t.min))*int(t.perKeycode) + col
	if idx < 0 || idx >= len(t.keysyms) {
		return 0, false
	}
	return t.keysyms[idx], true
}

// Keycode reverse-looks-up the first keycode bound to keysym at column 0,
// mirroring get_keycodes's "first result" usage in grabKey call sites.
func (t *Table) Keycode(sym uint32) (xproto.Keycode, bool) {
	for code := t.min; code <= t.max; code++ {
		if v, ok := t.KeysymAt(code, 0); ok && v == sym {
			return code, true
		}
		if code == t.max {
			break
		}
	}
	return 0, false
}

// Keysym implements parse.KeyResolver: resolves a configuration-file key
// name to its keysym value. A single printable ASCII character resolves
// directly (X11's Latin-1 keysym range mirrors the ASCII code point);
// anything else is looked up in the symbolic name table.
func (t *Table) Keysym(name string) (uint32, bool) {
	if len(name) == 1 {
		c := name[0]
		if c >= 0x20 && c < 0x7f {
			return uint32(c), true
		}
	}
	return fromName(name)
}
