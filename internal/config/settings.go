// Package config holds the configuration model of spec.md §4.5/§6: a flat
// settings struct grouped by label, ordered binding/association vectors,
// and a startup expression. internal/config/parse turns configuration text
// into a *Config; this package only defines the model and its defaults.
package config

import "github.com/thepsauce/fensterchef/internal/expr"

// Quad is a 1/2/4-replicated integer tuple (inner/outer gaps, colors split
// into components where a configuration author wants per-edge values).
type Quad = [4]int32

// General holds the `[general]` label's keys.
type General struct {
	OverlapPercentage int32
}

// Tiling holds the `[tiling]` label's boolean auto-behavior flags.
type Tiling struct {
	AutoSplit      bool
	AutoEqualize   bool
	AutoFillVoid   bool
	AutoRemove     bool
	AutoRemoveVoid bool
}

// Font holds the `[font]` label.
type Font struct {
	Name string
}

// Border holds the `[border]` label.
type Border struct {
	Size        int32
	Color       int32
	ActiveColor int32
	FocusColor  int32
}

// Gaps holds the `[gaps]` label's quad-valued inner/outer settings.
type Gaps struct {
	Inner Quad
	Outer Quad
}

// Notification holds the `[notification]` label.
type Notification struct {
	Duration    int32
	Padding     int32
	BorderSize  int32
	BorderColor int32
	Foreground  int32
	Background  int32
}

// Mouse holds the `[mouse]` label's scalar keys; its binding table is
// separate (Config.ButtonBindings).
type Mouse struct {
	ResizeTolerance int32
	Modifiers       uint16
	IgnoreModifiers uint16
}

// Keyboard holds the `[keyboard]` label's scalar keys; its binding table is
// separate (Config.KeyBindings).
type Keyboard struct {
	Modifiers       uint16
	IgnoreModifiers uint16
}

// Assignment holds the `[assignment]` label's scalar key.
type Assignment struct {
	FirstWindowNumber int32
}

// Settings is the flat struct of spec.md §4.5's "Model" paragraph.
type Settings struct {
	General      General
	Tiling       Tiling
	Font         Font
	Border       Border
	Gaps         Gaps
	Notification Notification
	Mouse        Mouse
	Keyboard     Keyboard
	Assignment   Assignment
}

// TriggerKind distinguishes a key binding's trigger from a button binding's.
type TriggerKind uint8

const (
	TriggerKeysym TriggerKind = iota
	TriggerKeycode
	TriggerButton
)

// Binding is one key or button binding: spec.md §4.5's
// `(release|transparent)? (Mod+)* (button<N>|<keysym>|<keycode>) (--flag)* expression`.
type Binding struct {
	Kind        TriggerKind
	Trigger     uint32 // keysym value, keycode, or button number
	Modifiers   uint16
	OnRelease   bool
	Transparent bool
	Expr        *expr.Program
	Source      string // original expression text, for `--check-config` diagnostics
}

// Matches reports whether this binding fires for an event with the given
// trigger/modifiers/release-state, after the caller has already masked off
// ignored modifiers from mods.
func (b Binding) Matches(kind TriggerKind, trigger uint32, mods uint16, release bool) bool {
	return b.Kind == kind && b.Trigger == trigger && b.Modifiers == mods && b.OnRelease == release
}

// Association is one `[assignment]` rule: spec.md §4.5's
// `<number> <instance-glob> ; <class-glob> (; <expression>)?`.
type Association struct {
	Number       int32
	InstanceGlob string
	ClassGlob    string
	Expr         *expr.Program // nil: use the default show policy of spec.md §4.2
}

// Config is a fully parsed configuration: settings plus ordered binding,
// association and startup vectors. In KeyBindings/ButtonBindings a later
// binding with the same trigger replaces the earlier one in place at parse
// time (spec.md §8's binding-match-priority property and §4.5's "existing
// bindings... are replaced in place" rule), so the runtime search is a
// simple forward scan that returns the first match.
type Config struct {
	Settings       Settings
	KeyBindings    []Binding
	ButtonBindings []Binding
	Associations   []Association
	Startup        *expr.Program
	Globals        *expr.Globals
}

// Default returns the static defaults of spec.md §4.5 ("Defaults are
// defined statically"), grounded on original_source/src/configuration/default.c's
// constant table.
func Default() *Config {
	return &Config{
		Settings: Settings{
			General: General{OverlapPercentage: 0},
			Tiling: Tiling{
				AutoSplit:      true,
				AutoEqualize:   true,
				AutoFillVoid:   true,
				AutoRemove:     true,
				AutoRemoveVoid: true,
			},
			Font:  Font{Name: "monospace:size=10"},
			Border: Border{Size: 1, Color: 0x000000, ActiveColor: 0x285577, FocusColor: 0x4c7899},
			Gaps: Gaps{
				Inner: Quad{2, 2, 2, 2},
				Outer: Quad{0, 0, 0, 0},
			},
			Notification: Notification{
				Duration:    2000,
				Padding:     6,
				BorderSize:  1,
				BorderColor: 0x285577,
				Foreground:  0xffffff,
				Background:  0x000000,
			},
			Mouse: Mouse{
				ResizeTolerance: 8,
				Modifiers:       0,
				IgnoreModifiers: lockAndNumLock,
			},
			Keyboard: Keyboard{
				Modifiers:       0,
				IgnoreModifiers: lockAndNumLock,
			},
			Assignment: Assignment{FirstWindowNumber: 1},
		},
		Globals: expr.NewGlobals(),
	}
}

// lockAndNumLock is the default ignored-modifier mask: CapsLock and NumLock,
// the two modifiers a binding almost never wants to distinguish on.
const lockAndNumLock = 1<<1 | 1<<4
