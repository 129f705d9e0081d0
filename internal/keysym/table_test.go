package keysym

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func fakeTable() *Table {
	return &Table{
		min:        8,
		max:        10,
		perKeycode: 2,
		// keycode 8 -> (a, A); keycode 9 -> (Escape, Escape); keycode 10 -> (1, exclam)
		keysyms: []uint32{
			'a', 'A',
			0xff1b, 0xff1b,
			'1', '!',
		},
	}
}

func TestKeysymResolvesASCIIAndNames(t *testing.T) {
	tbl := fakeTable()
	if v, ok := tbl.Keysym("q"); !ok || v != uint32('q') {
		t.Errorf("Keysym(q) = %d, %v", v, ok)
	}
	if v, ok := tbl.Keysym("Escape"); !ok || v != 0xff1b {
		t.Errorf("Keysym(Escape) = %#x, %v", v, ok)
	}
	if _, ok := tbl.Keysym("NoSuchKey"); ok {
		t.Error("expected NoSuchKey to fail resolution")
	}
}

func TestKeysymAtAndReverseLookup(t *testing.T) {
	tbl := fakeTable()
	v, ok := tbl.KeysymAt(xproto.Keycode(9), 0)
	if !ok || v != 0xff1b {
		t.Fatalf("KeysymAt(9,0) = %#x, %v", v, ok)
	}
	code, ok := tbl.Keycode(0xff1b)
	if !ok || code != xproto.Keycode(9) {
		t.Fatalf("Keycode(Escape) = %d, %v", code, ok)
	}
}

func TestKeycodeRange(t *testing.T) {
	tbl := fakeTable()
	min, max := tbl.KeycodeRange()
	if min != 8 || max != 10 {
		t.Errorf("KeycodeRange = %d,%d", min, max)
	}
}
