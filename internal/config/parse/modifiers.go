package parse

import "strings"

// Modifier bit values match the X11 core protocol's KeyButMask layout, so
// they can be compared directly against event.State without translation.
const (
	ModShift uint16 = 1 << 0
	ModLock  uint16 = 1 << 1
	ModCtrl  uint16 = 1 << 2
	ModMod1  uint16 = 1 << 3
	ModMod2  uint16 = 1 << 4
	ModMod3  uint16 = 1 << 5
	ModMod4  uint16 = 1 << 6
	ModMod5  uint16 = 1 << 7
)

var modifierNames = map[string]uint16{
	"shift":   ModShift,
	"lock":    ModLock,
	"control": ModCtrl,
	"ctrl":    ModCtrl,
	"mod1":    ModMod1,
	"alt":     ModMod1,
	"mod2":    ModMod2,
	"numlock": ModMod2,
	"mod3":    ModMod3,
	"mod4":    ModMod4,
	"super":   ModMod4,
	"mod5":    ModMod5,
}

// lookupModifier resolves a case-insensitive modifier name.
func lookupModifier(name string) (uint16, bool) {
	m, ok := modifierNames[strings.ToLower(name)]
	return m, ok
}
