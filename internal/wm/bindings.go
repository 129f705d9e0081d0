package wm

import "github.com/thepsauce/fensterchef/internal/config"

// matchKeyBinding finds the key binding firing for a key event, per
// spec.md §4.5/§8's rule that bindings are searched so the most recently
// installed one for a given trigger wins (installBinding already collapses
// duplicate triggers to one slot at parse time, so this is a single linear
// scan, last-match-first would be equivalent but unnecessary here). A
// keycode-keyed binding is checked before a keysym-keyed one, since a
// configuration naming a raw keycode is meant to pin a physical key
// regardless of layout.
func matchKeyBinding(bindings []config.Binding, keysym, keycode uint32, mods, ignore uint16, release bool) (*config.Binding, bool) {
	mods &^= ignore
	for i := range bindings {
		b := &bindings[i]
		if b.Kind == config.TriggerKeycode && b.Matches(config.TriggerKeycode, keycode, mods, release) {
			return b, true
		}
	}
	for i := range bindings {
		b := &bindings[i]
		if b.Kind == config.TriggerKeysym && b.Matches(config.TriggerKeysym, keysym, mods, release) {
			return b, true
		}
	}
	return nil, false
}

// matchButtonBinding finds the button binding firing for a button event.
func matchButtonBinding(bindings []config.Binding, button uint32, mods, ignore uint16, release bool) (*config.Binding, bool) {
	mods &^= ignore
	for i := range bindings {
		b := &bindings[i]
		if b.Matches(config.TriggerButton, button, mods, release) {
			return b, true
		}
	}
	return nil, false
}

// matchAssociation finds the first (spec.md §4.2: first match wins, not
// last) [assignment] rule whose globs accept instance/class.
func matchAssociation(rules []config.Association, instance, class string) (*config.Association, bool) {
	for i := range rules {
		r := &rules[i]
		if config.MatchGlob(r.InstanceGlob, instance) && config.MatchGlob(r.ClassGlob, class) {
			return r, true
		}
	}
	return nil, false
}

// runBinding evaluates a fired binding's expression against vm, ignoring
// the result: bindings run for their side effects only.
func (c *Context) runBinding(b *config.Binding) {
	if b == nil || b.Expr == nil {
		return
	}
	_, _ = c.VM.Run(b.Expr)
}

// runAssociation evaluates an association's custom expression if it has
// one; a nil Expr means "use the default show policy", which the map-
// request handler applies itself.
func (c *Context) runAssociation(a *config.Association) {
	if a == nil || a.Expr == nil {
		return
	}
	_, _ = c.VM.Run(a.Expr)
}

// DispatchKey looks up and runs the key binding for a decoded key event.
func (c *Context) DispatchKey(keysym, keycode uint32, mods uint16, release bool) {
	b, ok := matchKeyBinding(c.Config.KeyBindings, keysym, keycode,
		mods, c.Config.Settings.Keyboard.IgnoreModifiers, release)
	if !ok {
		return
	}
	c.runBinding(b)
}

// DispatchButton looks up and runs the button binding for a decoded button
// event.
func (c *Context) DispatchButton(button uint32, mods uint16, release bool) {
	b, ok := matchButtonBinding(c.Config.ButtonBindings, button,
		mods, c.Config.Settings.Mouse.IgnoreModifiers, release)
	if !ok {
		return
	}
	c.runBinding(b)
}
