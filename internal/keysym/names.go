package keysym

// names is the subset of the X11 keysym name table fensterchef's
// configuration language resolves bindings against, rebuilt from
// original_source/include/keymap.h's reliance on xcb_key_symbols (the
// upstream X11 keysymdef.h values themselves, not reproduced verbatim
// since that header runs to thousands of entries spec.md never asks
// fensterchef to support beyond ordinary bindings).
var names = map[string]uint32{
	"BackSpace": 0xff08,
	"Tab":       0xff09,
	"Return":    0xff0d,
	"Enter":     0xff0d,
	"Escape":    0xff1b,
	"Delete":    0xffff,
	"Home":      0xff50,
	"Left":      0xff51,
	"Up":        0xff52,
	"Right":     0xff53,
	"Down":      0xff54,
	"Prior":     0xff55,
	"Page_Up":   0xff55,
	"Next":      0xff56,
	"Page_Down": 0xff56,
	"End":       0xff57,
	"Insert":    0xff63,
	"space":     0x0020,
	"Super_L":   0xffeb,
	"Super_R":   0xffec,
	"Shift_L":   0xffe1,
	"Shift_R":   0xffe2,
	"Control_L": 0xffe3,
	"Control_R": 0xffe4,
	"Alt_L":     0xffe9,
	"Alt_R":     0xffea,
	"F1":        0xffbe,
	"F2":        0xffbf,
	"F3":        0xffc0,
	"F4":        0xffc1,
	"F5":        0xffc2,
	"F6":        0xffc3,
	"F7":        0xffc4,
	"F8":        0xffc5,
	"F9":        0xffc6,
	"F10":       0xffc7,
	"F11":       0xffc8,
	"F12":       0xffc9,
}

// fromName resolves a multi-character symbolic name. Single printable
// ASCII characters are handled separately by Table.Keysym: the Latin-1
// keysym range mirrors the ASCII code point directly, so "q" needs no
// table entry.
func fromName(name string) (uint32, bool) {
	v, ok := names[name]
	return v, ok
}
