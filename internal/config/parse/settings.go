package parse

import (
	"strings"
)

// parseSettingLine handles `key value...` lines under general/tiling/font/
// border/gaps/notification (the labels with purely scalar keys). Lines under
// [mouse], [keyboard], [assignment] and [startup], including their scalar
// keys and `merge-default`, are routed elsewhere by parseLine.
func (p *Parser) parseSettingLine(file string, lineNo int, line string) {
	fields := splitFields(line)
	if len(fields) < 2 {
		p.errorf(file, lineNo, 1, ErrExpectedSeparator, "expected a value after %q", fields[0])
		return
	}
	key := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
	s := &p.cfg.Settings

	switch p.label {
	case "general":
		switch key {
		case "overlap-percentage":
			p.setInt(file, lineNo, rest, &s.General.OverlapPercentage)
		default:
			p.unknownKey(file, lineNo, key)
		}
	case "tiling":
		switch key {
		case "auto-split":
			p.setBool(file, lineNo, rest, &s.Tiling.AutoSplit)
		case "auto-equalize":
			p.setBool(file, lineNo, rest, &s.Tiling.AutoEqualize)
		case "auto-fill-void":
			p.setBool(file, lineNo, rest, &s.Tiling.AutoFillVoid)
		case "auto-remove":
			p.setBool(file, lineNo, rest, &s.Tiling.AutoRemove)
		case "auto-remove-void":
			p.setBool(file, lineNo, rest, &s.Tiling.AutoRemoveVoid)
		default:
			p.unknownKey(file, lineNo, key)
		}
	case "font":
		if key == "name" {
			s.Font.Name = strings.Trim(rest, `"`)
		} else {
			p.unknownKey(file, lineNo, key)
		}
	case "border":
		switch key {
		case "size":
			p.setInt(file, lineNo, rest, &s.Border.Size)
		case "color":
			p.setHex(file, lineNo, rest, &s.Border.Color)
		case "active-color":
			p.setHex(file, lineNo, rest, &s.Border.ActiveColor)
		case "focus-color":
			p.setHex(file, lineNo, rest, &s.Border.FocusColor)
		default:
			p.unknownKey(file, lineNo, key)
		}
	case "gaps":
		switch key {
		case "inner":
			p.setQuad(file, lineNo, rest, &s.Gaps.Inner)
		case "outer":
			p.setQuad(file, lineNo, rest, &s.Gaps.Outer)
		default:
			p.unknownKey(file, lineNo, key)
		}
	case "notification":
		switch key {
		case "duration":
			p.setInt(file, lineNo, rest, &s.Notification.Duration)
		case "padding":
			p.setInt(file, lineNo, rest, &s.Notification.Padding)
		case "border-size":
			p.setInt(file, lineNo, rest, &s.Notification.BorderSize)
		case "border-color":
			p.setHex(file, lineNo, rest, &s.Notification.BorderColor)
		case "foreground":
			p.setHex(file, lineNo, rest, &s.Notification.Foreground)
		case "background":
			p.setHex(file, lineNo, rest, &s.Notification.Background)
		default:
			p.unknownKey(file, lineNo, key)
		}
	default:
		p.unknownKey(file, lineNo, key)
	}
}

func (p *Parser) unknownKey(file string, lineNo int, key string) {
	p.errorf(file, lineNo, 1, ErrInvalidVariable, "unknown key %q in [%s]", key, p.label)
}

func (p *Parser) setInt(file string, lineNo int, rest string, dst *int32) {
	n, err := parseHexOrInt(strings.TrimSpace(rest))
	if err != nil {
		p.errorf(file, lineNo, 1, ErrTypeMismatch, "expected integer, got %q", rest)
		return
	}
	*dst = n
}

func (p *Parser) setHex(file string, lineNo int, rest string, dst *int32) {
	p.setInt(file, lineNo, rest, dst)
}

func (p *Parser) setBool(file string, lineNo int, rest string, dst *bool) {
	b, ok := parseBool(strings.TrimSpace(rest))
	if !ok {
		p.errorf(file, lineNo, 1, ErrInvalidBoolean, "expected boolean, got %q", rest)
		return
	}
	*dst = b
}

func (p *Parser) setQuad(file string, lineNo int, rest string, dst *[4]int32) {
	q, ok := parseQuad(strings.TrimSpace(rest))
	if !ok {
		p.errorf(file, lineNo, 1, ErrInvalidQuadArity, "quad needs 1, 2 or 4 values, got %q", rest)
		return
	}
	*dst = q
}
