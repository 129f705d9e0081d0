// Package parse implements the configuration file parser of spec.md §4.5: a
// recursive-descent, line-buffered reader with an include-file stack,
// `[label]`-scoped grammars, and capped error accumulation, grounded on
// original_source/src/configuration/parser.c and src/parser.c's overall
// shape (one label-dispatch loop, one diagnostic enum, skip-to-next-line
// recovery).
package parse

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/thepsauce/fensterchef/internal/config"
	"github.com/thepsauce/fensterchef/internal/expr"
)

const (
	maxIncludeDepth = 32
	maxErrors       = 8
)

// KeyResolver resolves a key binding's trigger token (a keysym name or a
// bare key code) against the display's current keyboard mapping.
// internal/keysym.Table implements this; kept as an interface so this
// package doesn't import internal/keysym (which needs an X connection to
// build its table, and has no business depending on the parser).
type KeyResolver interface {
	Keysym(name string) (uint32, bool)
	KeycodeRange() (min, max uint8)
}

// Parser holds the state of one top-level Parse call, including everything
// reachable through `include`.
type Parser struct {
	disp     expr.Dispatcher
	keys     KeyResolver
	cfg      *config.Config
	errors   []*ParseError
	label    string
	depth    int
	log      zerolog.Logger
	startup  []string
}

// Parse reads the configuration file at path (plus anything it includes)
// and returns a fully populated Config along with any accumulated errors.
// A non-empty error slice does not mean cfg is unusable: every error is
// recoverable at the line level, so cfg reflects everything that did parse.
func Parse(path string, disp expr.Dispatcher, keys KeyResolver, log zerolog.Logger) (*config.Config, []error) {
	p := &Parser{
		disp: disp,
		keys: keys,
		cfg:  config.Default(),
		log:  log,
	}
	p.includeFile(path)
	if len(p.startup) > 0 {
		prog, err := expr.Compile(strings.Join(p.startup, " ; "), p.disp, p.cfg.Globals)
		if err != nil {
			p.errorf(path, 0, 0, ErrUnexpectedToken, "startup: %v", err)
		} else {
			p.cfg.Startup = prog
		}
	}
	errs := make([]error, len(p.errors))
	for i, e := range p.errors {
		errs[i] = e
	}
	return p.cfg, errs
}

func (p *Parser) errorf(file string, line, col int, kind ErrorKind, format string, args ...any) {
	if len(p.errors) >= maxErrors {
		return
	}
	p.errors = append(p.errors, &ParseError{
		File: file, Line: line, Col: col, Kind: kind,
		Msg: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) done() bool { return len(p.errors) >= maxErrors }

// includeFile parses one file, recursing into `include "path"` directives
// up to maxIncludeDepth.
func (p *Parser) includeFile(path string) {
	if p.depth >= maxIncludeDepth {
		p.errorf(path, 0, 0, ErrIncludeStackOverflow, "include depth exceeds %d", maxIncludeDepth)
		return
	}
	p.depth++
	defer func() { p.depth-- }()

	expanded, err := expandHome(path)
	if err != nil {
		p.errorf(path, 0, 0, ErrUnexpectedToken, "resolving path: %v", err)
		return
	}
	f, err := os.Open(expanded)
	if err != nil {
		p.errorf(path, 0, 0, ErrUnexpectedToken, "opening file: %v", err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() && !p.done() {
		lineNo++
		p.parseLine(expanded, lineNo, scanner.Text())
	}
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func (p *Parser) parseLine(file string, lineNo int, raw string) {
	line := raw
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if strings.HasPrefix(line, "[") {
		if !strings.HasSuffix(line, "]") {
			p.errorf(file, lineNo, len(raw), ErrMissingBracket, "label missing closing ]")
			return
		}
		label := strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
		if !validLabel(label) {
			p.errorf(file, lineNo, 1, ErrInvalidLabel, "unknown label %q", label)
			return
		}
		p.label = label
		return
	}

	if strings.HasPrefix(line, "include ") {
		p.handleInclude(file, lineNo, strings.TrimSpace(strings.TrimPrefix(line, "include")))
		return
	}

	if p.label == "" {
		p.errorf(file, lineNo, 1, ErrInvalidLabel, "statement outside any label")
		return
	}

	switch p.label {
	case "startup":
		p.startup = append(p.startup, line)
	case "keyboard":
		p.parseKeyboardLine(file, lineNo, line)
	case "mouse":
		p.parseMouseLine(file, lineNo, line)
	case "assignment":
		p.parseAssignmentLine(file, lineNo, line)
	default:
		p.parseSettingLine(file, lineNo, line)
	}
}

func validLabel(label string) bool {
	switch label {
	case "general", "tiling", "font", "border", "gaps", "notification",
		"mouse", "keyboard", "startup", "assignment":
		return true
	}
	return false
}

func (p *Parser) handleInclude(file string, lineNo int, rest string) {
	rest = strings.Trim(rest, `"`)
	if rest == "" {
		p.errorf(file, lineNo, 1, ErrUnexpectedToken, "include requires a path")
		return
	}
	p.includeFile(rest)
}

func splitFields(line string) []string {
	return strings.Fields(line)
}

func parseBool(tok string) (bool, bool) {
	switch strings.ToLower(tok) {
	case "true", "yes", "1", "on":
		return true, true
	case "false", "no", "0", "off":
		return false, true
	}
	return false, false
}

func parseHexOrInt(tok string) (int32, error) {
	tok = strings.TrimPrefix(tok, "#")
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		n, err := strconv.ParseInt(tok[2:], 16, 64)
		return int32(n), err
	}
	if len(tok) == 6 && isHex(tok) {
		n, err := strconv.ParseInt(tok, 16, 64)
		return int32(n), err
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	return int32(n), err
}

func isHex(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func parseQuad(rest string) (config.Quad, bool) {
	toks := strings.Split(rest, ",")
	var vals []int32
	for _, t := range toks {
		n, err := parseHexOrInt(strings.TrimSpace(t))
		if err != nil {
			return config.Quad{}, false
		}
		vals = append(vals, n)
	}
	switch len(vals) {
	case 1:
		return config.Quad{vals[0], vals[0], vals[0], vals[0]}, true
	case 2:
		return config.Quad{vals[0], vals[1], vals[0], vals[1]}, true
	case 4:
		return config.Quad{vals[0], vals[1], vals[2], vals[3]}, true
	default:
		return config.Quad{}, false
	}
}
