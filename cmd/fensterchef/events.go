package main

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/thepsauce/fensterchef/internal/action"
	"github.com/thepsauce/fensterchef/internal/config"
	"github.com/thepsauce/fensterchef/internal/expr"
	"github.com/thepsauce/fensterchef/internal/frame"
	"github.com/thepsauce/fensterchef/internal/keysym"
	"github.com/thepsauce/fensterchef/internal/wm"
	"github.com/thepsauce/fensterchef/internal/x11"
)

// becomeWM requests every substructure/input event fensterchef needs on the
// root window, grounded on marwind's wm.becomeWM (same request, extended
// with SubstructureNotify so child MapNotify/UnmapNotify/DestroyNotify
// events actually arrive).
func becomeWM(conn *x11.Conn) error {
	mask := uint32(
		xproto.EventMaskKeyPress |
			xproto.EventMaskKeyRelease |
			xproto.EventMaskButtonPress |
			xproto.EventMaskButtonRelease |
			xproto.EventMaskPropertyChange |
			xproto.EventMaskFocusChange |
			xproto.EventMaskStructureNotify |
			xproto.EventMaskSubstructureNotify |
			xproto.EventMaskSubstructureRedirect)
	return xproto.ChangeWindowAttributesChecked(conn.XGB, conn.Root,
		xproto.CwEventMask, []uint32{mask}).Check()
}

// grabState remembers exactly what regrabInput last grabbed, so a reload
// can precisely ungrab the previous set instead of guessing at an
// any-key/any-button wildcard.
type grabState struct {
	keys    []struct{ code xproto.Keycode; mods uint16 }
	buttons []struct{ button xproto.Button; mods uint16 }
}

var grabbed grabState

// regrabInput ungrabs whatever was grabbed for the previous configuration
// and grabs every key/button binding in cfg, mirroring marwind's
// wm.grabKeys extended to button bindings per spec.md §3.6.
func regrabInput(conn *x11.Conn, keys *keysym.Table, cfg *config.Config) error {
	for _, k := range grabbed.keys {
		xproto.UngrabKeyChecked(conn.XGB, k.code, conn.Root, k.mods).Check()
	}
	for _, b := range grabbed.buttons {
		xproto.UngrabButtonChecked(conn.XGB, b.button, conn.Root, b.mods).Check()
	}
	grabbed = grabState{}

	var firstErr error
	for _, binding := range cfg.KeyBindings {
		code := xproto.Keycode(binding.Trigger)
		if binding.Kind == config.TriggerKeysym {
			// resolved at grab time since GrabKey wants a physical keycode,
			// not a keysym.
			c, ok := keys.Keycode(binding.Trigger)
			if !ok {
				continue
			}
			code = c
		}
		err := xproto.GrabKeyChecked(conn.XGB, false, conn.Root,
			binding.Modifiers, code, xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
		if err != nil && firstErr == nil {
			firstErr = err
			continue
		}
		grabbed.keys = append(grabbed.keys, struct {
			code xproto.Keycode
			mods uint16
		}{code, binding.Modifiers})
	}
	for _, binding := range cfg.ButtonBindings {
		button := xproto.Button(binding.Trigger)
		err := xproto.GrabButtonChecked(conn.XGB, false, conn.Root,
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease,
			xproto.GrabModeAsync, xproto.GrabModeAsync,
			0, xproto.CursorNone, button, binding.Modifiers).Check()
		if err != nil && firstErr == nil {
			firstErr = err
			continue
		}
		grabbed.buttons = append(grabbed.buttons, struct {
			button xproto.Button
			mods   uint16
		}{button, binding.Modifiers})
	}
	return firstErr
}

// dispatchEvent routes one decoded X event to the matching Context handler,
// generalizing marwind's wm.Run switch (xproto.KeyPressEvent/
// EnterNotifyEvent/ConfigureRequestEvent/MapRequestEvent/UnmapNotifyEvent/
// DestroyNotifyEvent) to the full spec.md §6 event/message list.
func dispatchEvent(ctx *wm.Context, d *display, ev xgb.Event, log zerolog.Logger) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		sym, _ := d.keys.KeysymAt(e.Detail, 0)
		ctx.DispatchKey(sym, uint32(e.Detail), e.State, false)
	case xproto.KeyReleaseEvent:
		sym, _ := d.keys.KeysymAt(e.Detail, 0)
		ctx.DispatchKey(sym, uint32(e.Detail), e.State, true)
	case xproto.ButtonPressEvent:
		ctx.DispatchButton(uint32(e.Detail), e.State, false)
	case xproto.ButtonReleaseEvent:
		ctx.DispatchButton(uint32(e.Detail), e.State, true)

	case xproto.ConfigureRequestEvent:
		// A not-yet-managed window gets the geometry it asked for verbatim;
		// once mapped, the synchronizer's own write-back pass takes over.
		xproto.ConfigureWindowChecked(d.xgbConn, e.Window,
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(e.X), uint32(e.Y), uint32(e.Width), uint32(e.Height)}).Check()

	case xproto.MapRequestEvent:
		if attr, err := xproto.GetWindowAttributes(d.xgbConn, e.Window).Reply(); err != nil || !attr.OverrideRedirect {
			if err := ctx.HandleMapRequest(e.Window); err != nil {
				log.Warn().Err(err).Uint32("window", uint32(e.Window)).Msg("failed to manage window")
			}
		}

	case xproto.DestroyNotifyEvent:
		ctx.HandleDestroyNotify(e.Window)

	case xproto.PropertyNotifyEvent:
		ctx.HandlePropertyNotify(e.Window, e.Atom)

	case xproto.ClientMessageEvent:
		ctx.HandleClientMessage(e)

	case randr.ScreenChangeNotifyEvent:
		gaps := frame.Gaps{
			Inner: ctx.Config.Settings.Gaps.Inner[0],
			Outer: ctx.Config.Settings.Gaps.Outer[0],
		}
		if fresh, err := d.conn.QueryMonitors(gaps); err == nil && len(fresh) > 0 {
			ctx.ReconcileMonitors(fresh, gaps)
		}
	}
}

// noopTarget implements action.Target with every method a no-op; used only
// by --check-config, which needs a Dispatcher to resolve action names
// against but never actually runs one.
type noopTarget struct{}

func (noopTarget) FocusDirection(frame.Direction)      {}
func (noopTarget) MoveDirection(frame.Direction)       {}
func (noopTarget) SplitDirection(frame.SplitDirection) {}
func (noopTarget) BumpEdge(frame.Direction, int32)     {}
func (noopTarget) ResizeBy(int32, int32, int32, int32) {}
func (noopTarget) Equalize()                           {}
func (noopTarget) CloseFocused()                       {}
func (noopTarget) MinimizeFocused()                    {}
func (noopTarget) ToggleFullscreen()                   {}
func (noopTarget) ToggleFloating()                     {}
func (noopTarget) ShowMessage(string)                  {}
func (noopTarget) ShowRun()                            {}
func (noopTarget) ShowList()                           {}
func (noopTarget) MergeDefault(string)                 {}
func (noopTarget) ReloadConfig()                       {}
func (noopTarget) Quit()                               {}

func newCheckConfigDispatcher() expr.Dispatcher {
	return action.RegisterDefaults(action.NewRegistry(), noopTarget{})
}

// mergeDefaultSection resets one [label]'s scalar settings back to
// config.Default()'s constants; key/button binding defaults are left alone
// since config.Default() carries none (spec.md §4.5's `merge-default`
// binding-table case is a no-op until a canned default binding source
// exists, see DESIGN.md).
func mergeDefaultSection(cfg *config.Config, section string) {
	d := config.Default()
	switch section {
	case "general":
		cfg.Settings.General = d.Settings.General
	case "tiling":
		cfg.Settings.Tiling = d.Settings.Tiling
	case "font":
		cfg.Settings.Font = d.Settings.Font
	case "border":
		cfg.Settings.Border = d.Settings.Border
	case "gaps":
		cfg.Settings.Gaps = d.Settings.Gaps
	case "notification":
		cfg.Settings.Notification = d.Settings.Notification
	case "mouse":
		cfg.Settings.Mouse = d.Settings.Mouse
	case "keyboard":
		cfg.Settings.Keyboard = d.Settings.Keyboard
	case "assignment":
		cfg.Settings.Assignment = d.Settings.Assignment
	}
}
