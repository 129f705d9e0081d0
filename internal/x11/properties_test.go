package x11

import (
	"encoding/binary"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestToUint32sAndToAtoms(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], 42)
	binary.LittleEndian.PutUint32(buf[4:8], 7)

	words := toUint32s(buf)
	if len(words) != 2 || words[0] != 42 || words[1] != 7 {
		t.Fatalf("toUint32s = %v", words)
	}

	atoms := toAtoms(buf)
	if len(atoms) != 2 || atoms[0] != xproto.Atom(42) || atoms[1] != xproto.Atom(7) {
		t.Fatalf("toAtoms = %v", atoms)
	}
}

func TestWMStateAtomsDecoding(t *testing.T) {
	c := &Conn{}
	msg := ClientMessage{Data: [5]uint32{1, 100, 200, 0, 0}}
	action, first, second := c.WMStateAtoms(msg)
	if action != NetWMStateActionAdd {
		t.Errorf("action = %d, want Add", action)
	}
	if first != xproto.Atom(100) || second != xproto.Atom(200) {
		t.Errorf("atoms = %d, %d", first, second)
	}
}
