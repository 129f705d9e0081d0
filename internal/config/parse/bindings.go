package parse

import (
	"strconv"
	"strings"

	"github.com/thepsauce/fensterchef/internal/config"
	"github.com/thepsauce/fensterchef/internal/expr"
)

// parseKeyboardLine handles the [keyboard] label: its two scalar keys
// (modifiers/ignore-modifiers), `merge-default`, and key-binding syntax.
func (p *Parser) parseKeyboardLine(file string, lineNo int, line string) {
	fields := splitFields(line)
	key := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
	switch key {
	case "modifiers":
		p.setModifierSet(file, lineNo, rest, &p.cfg.Settings.Keyboard.Modifiers)
		return
	case "ignore-modifiers":
		p.setModifierSet(file, lineNo, rest, &p.cfg.Settings.Keyboard.IgnoreModifiers)
		return
	case "merge-default":
		p.mergeDefaultKeyboard()
		return
	}
	b, ok := p.parseBindingPrefix(file, lineNo, fields, config.TriggerKeysym)
	if !ok {
		return
	}
	p.installBinding(&p.cfg.KeyBindings, b)
}

// parseMouseLine handles the [mouse] label analogously.
func (p *Parser) parseMouseLine(file string, lineNo int, line string) {
	fields := splitFields(line)
	key := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
	switch key {
	case "resize-tolerance":
		p.setInt(file, lineNo, rest, &p.cfg.Settings.Mouse.ResizeTolerance)
		return
	case "modifiers":
		p.setModifierSet(file, lineNo, rest, &p.cfg.Settings.Mouse.Modifiers)
		return
	case "ignore-modifiers":
		p.setModifierSet(file, lineNo, rest, &p.cfg.Settings.Mouse.IgnoreModifiers)
		return
	case "merge-default":
		p.mergeDefaultMouse()
		return
	}
	b, ok := p.parseBindingPrefix(file, lineNo, fields, config.TriggerButton)
	if !ok {
		return
	}
	p.installBinding(&p.cfg.ButtonBindings, b)
}

func (p *Parser) setModifierSet(file string, lineNo int, rest string, dst *uint16) {
	var mask uint16
	for _, tok := range strings.Split(rest, "+") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		m, ok := lookupModifier(tok)
		if !ok {
			p.errorf(file, lineNo, 1, ErrInvalidModifier, "unknown modifier %q", tok)
			return
		}
		mask |= m
	}
	*dst = mask
}

// parseBindingPrefix parses
// `(release|transparent)? (Mod+)* (button<N>|<keysym>|<keycode>) (--flag)* expression`
// and returns everything except installing it (install differs between key
// and button tables only in which slice they append to).
func (p *Parser) parseBindingPrefix(file string, lineNo int, fields []string, kind config.TriggerKind) (config.Binding, bool) {
	var b config.Binding
	b.Kind = kind

	i := 0
	for i < len(fields) {
		tok := fields[i]
		switch strings.ToLower(tok) {
		case "release":
			b.OnRelease = true
			i++
			continue
		case "transparent":
			b.Transparent = true
			i++
			continue
		}
		break
	}

	defaultMods := p.cfg.Settings.Keyboard.Modifiers
	if kind == config.TriggerButton {
		defaultMods = p.cfg.Settings.Mouse.Modifiers
	}
	mods := defaultMods
	for i < len(fields) {
		parts := strings.Split(fields[i], "+")
		if len(parts) < 2 {
			break
		}
		allMods := true
		var mask uint16
		for _, part := range parts[:len(parts)-1] {
			m, ok := lookupModifier(part)
			if !ok {
				allMods = false
				break
			}
			mask |= m
		}
		if !allMods {
			break
		}
		mods |= mask
		fields[i] = parts[len(parts)-1]
		break
	}
	b.Modifiers = mods

	if i >= len(fields) {
		p.errorf(file, lineNo, 1, ErrUnexpectedToken, "expected a trigger")
		return b, false
	}
	trigger := fields[i]
	i++

	switch kind {
	case config.TriggerButton:
		if !strings.HasPrefix(strings.ToLower(trigger), "button") {
			p.errorf(file, lineNo, 1, ErrInvalidButton, "expected buttonN, got %q", trigger)
			return b, false
		}
		n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(trigger), "button"))
		if err != nil || n <= 0 {
			p.errorf(file, lineNo, 1, ErrInvalidButton, "invalid button number %q", trigger)
			return b, false
		}
		b.Trigger = uint32(n)
	default:
		if n, err := strconv.Atoi(trigger); err == nil {
			min, max := uint8(8), uint8(255)
			if p.keys != nil {
				min, max = p.keys.KeycodeRange()
			}
			if n < int(min) || n > int(max) {
				p.errorf(file, lineNo, 1, ErrInvalidKeyCode, "keycode %d out of range [%d,%d]", n, min, max)
				return b, false
			}
			b.Kind = config.TriggerKeycode
			b.Trigger = uint32(n)
		} else if p.keys != nil {
			sym, ok := p.keys.Keysym(trigger)
			if !ok {
				p.errorf(file, lineNo, 1, ErrInvalidKeySymbol, "unknown key symbol %q", trigger)
				return b, false
			}
			b.Trigger = sym
		} else {
			// no resolver wired (keys == nil): the name is accepted
			// unchecked and the binding gets trigger 0.
			b.Trigger = 0
		}
	}

	for i < len(fields) && strings.HasPrefix(fields[i], "--") {
		// flags beyond release/transparent are reserved for future use;
		// spec.md doesn't enumerate any, so they're recognized and ignored.
		i++
	}

	exprText := strings.Join(fields[i:], " ")
	if exprText == "" {
		p.errorf(file, lineNo, 1, ErrUnexpectedToken, "binding is missing its expression")
		return b, false
	}
	prog, err := expr.Compile(exprText, p.disp, p.cfg.Globals)
	if err != nil {
		p.errorf(file, lineNo, 1, ErrUnexpectedToken, "compiling binding expression: %v", err)
		return b, false
	}
	b.Expr = prog
	b.Source = exprText
	return b, true
}

// installBinding implements "existing bindings with identical trigger are
// replaced in place" (spec.md §4.5) and the binding-match-priority testable
// property (spec.md §8): a later binding with the same trigger overwrites
// the earlier one's slot rather than shadowing it via search order.
func (p *Parser) installBinding(table *[]config.Binding, b config.Binding) {
	for i := range *table {
		existing := (*table)[i]
		if existing.Kind == b.Kind && existing.Trigger == b.Trigger &&
			existing.Modifiers == b.Modifiers && existing.OnRelease == b.OnRelease {
			(*table)[i] = b
			return
		}
	}
	*table = append(*table, b)
}

func (p *Parser) mergeDefaultKeyboard() {
	defaults := config.Default()
	p.cfg.KeyBindings = append(p.cfg.KeyBindings, defaults.KeyBindings...)
}

func (p *Parser) mergeDefaultMouse() {
	defaults := config.Default()
	p.cfg.ButtonBindings = append(p.cfg.ButtonBindings, defaults.ButtonBindings...)
}

// parseAssignmentLine handles [assignment]: the `first-window-number` key
// and `<number> <instance-glob> ; <class-glob> (; <expression>)?` rules.
func (p *Parser) parseAssignmentLine(file string, lineNo int, line string) {
	fields := splitFields(line)
	if strings.ToLower(fields[0]) == "first-window-number" {
		rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		p.setInt(file, lineNo, rest, &p.cfg.Settings.Assignment.FirstWindowNumber)
		return
	}

	numTok := fields[0]
	num, err := strconv.Atoi(numTok)
	if err != nil {
		p.errorf(file, lineNo, 1, ErrTypeMismatch, "expected a window number, got %q", numTok)
		return
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, numTok))
	parts := strings.SplitN(rest, ";", 3)
	if len(parts) < 2 {
		p.errorf(file, lineNo, 1, ErrExpectedSeparator, "expected instance-glob ; class-glob")
		return
	}
	assoc := config.Association{
		Number:       int32(num),
		InstanceGlob: strings.TrimSpace(parts[0]),
		ClassGlob:    strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
		prog, err := expr.Compile(strings.TrimSpace(parts[2]), p.disp, p.cfg.Globals)
		if err != nil {
			p.errorf(file, lineNo, 1, ErrUnexpectedToken, "compiling association expression: %v", err)
			return
		}
		assoc.Expr = prog
	}
	p.cfg.Associations = append(p.cfg.Associations, assoc)
}
