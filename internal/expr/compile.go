package expr

import "fmt"

// CompileError reports a source position alongside the message, mirroring
// the column-tagged diagnostics internal/config/parse produces for the
// surrounding configuration file.
type CompileError struct {
	Col int
	Msg string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("col %d: %s", e.Col, e.Msg)
}

// Globals assigns stable slot indices to global variable names shared across
// every Program compiled against it (spec.md §4.4: globals persist across
// invocations, unlike locals which live only for one expression's evaluation).
type Globals struct {
	slots map[string]int32
	names []string
}

// NewGlobals returns an empty global slot table.
func NewGlobals() *Globals {
	return &Globals{slots: map[string]int32{}}
}

func (g *Globals) slot(name string) int32 {
	if id, ok := g.slots[name]; ok {
		return id
	}
	id := int32(len(g.names))
	g.slots[name] = id
	g.names = append(g.names, name)
	return id
}

// Len returns the number of distinct global variables seen so far; used to
// size a VM's global value array.
func (g *Globals) Len() int { return len(g.names) }

type compiler struct {
	lex     *Lexer
	prog    Program
	disp    Dispatcher
	globals *Globals
	locals  map[string]int32
	order   []string
}

// Compile lowers a single expression's source text into a Program, resolving
// action calls and variables against disp and globals. Locals are scoped to
// this one compilation; the stack slots they occupy are released when
// VM.Run returns (the trailing OpStackPointer records their count, and the
// VM steps over it without acting on it).
func Compile(src string, disp Dispatcher, globals *Globals) (*Program, error) {
	c := &compiler{
		lex:     NewLexer(src),
		disp:    disp,
		globals: globals,
		locals:  map[string]int32{},
	}
	if err := c.sequence(); err != nil {
		return nil, err
	}
	if t := c.lex.Peek(); t.Kind != TokEOF {
		return nil, &CompileError{Col: t.Col, Msg: "unexpected trailing input"}
	}
	if len(c.order) > 0 {
		c.prog.emit(OpStackPointer, int32(len(c.order)))
	}
	prog := c.prog
	return &prog, nil
}

// CompileQuad compiles a comma-separated 1, 2 or 4 element list into a single
// OpLiteralQuad-producing expression per spec.md §4.4's replication rule:
// one value fills all four components, two values alternate (a,b,a,b).
func CompileQuad(src string, disp Dispatcher, globals *Globals) (*Program, error) {
	c := &compiler{
		lex:     NewLexer(src),
		disp:    disp,
		globals: globals,
		locals:  map[string]int32{},
	}
	if err := c.quadLiteral(); err != nil {
		return nil, err
	}
	if t := c.lex.Peek(); t.Kind != TokEOF {
		return nil, &CompileError{Col: t.Col, Msg: "unexpected trailing input in quad"}
	}
	prog := c.prog
	return &prog, nil
}

// quadLiteral parses a comma-separated list of 1, 2 or 4 integer literals
// and emits a single OpLiteralQuad instruction carrying the replicated
// 4-component result (spec.md §4.4's replication rule: one value fills all
// four components, two values alternate (a,b,a,b)). Used both by CompileQuad
// and by actionCall when the dispatched action takes an ArgQuad argument.
func (c *compiler) quadLiteral() error {
	var parts []int32
	for {
		v, err := c.expectIntLiteral()
		if err != nil {
			return err
		}
		parts = append(parts, v)
		if c.lex.Peek().Kind != TokComma {
			break
		}
		c.lex.Next()
	}
	var quad [4]int32
	switch len(parts) {
	case 1:
		quad = [4]int32{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		quad = [4]int32{parts[0], parts[1], parts[0], parts[1]}
	case 4:
		quad = [4]int32{parts[0], parts[1], parts[2], parts[3]}
	default:
		return &CompileError{Msg: fmt.Sprintf("quad literal needs 1, 2 or 4 values, got %d", len(parts))}
	}
	c.prog.emit(OpLiteralQuad, 0)
	for _, v := range quad {
		c.prog.emitRaw(uint32(v))
	}
	return nil
}

func (c *compiler) expectIntLiteral() (int32, error) {
	neg := false
	if c.lex.Peek().Kind == TokMinus {
		c.lex.Next()
		neg = true
	}
	t := c.lex.Next()
	if t.Kind != TokInt {
		return 0, &CompileError{Col: t.Col, Msg: "expected integer literal in quad"}
	}
	if neg {
		return -t.Int, nil
	}
	return t.Int, nil
}

// sequence handles `;`, the lowest-precedence operator: evaluate the left
// side for effect, keep only the right side's value (OpNext).
func (c *compiler) sequence() error {
	if err := c.or(); err != nil {
		return err
	}
	for c.lex.Peek().Kind == TokSemicolon {
		c.lex.Next()
		if c.lex.Peek().Kind == TokEOF {
			break
		}
		if err := c.or(); err != nil {
			return err
		}
		c.prog.emit(OpNext, 0)
	}
	return nil
}

// or compiles `||`, short-circuiting: the left side is always evaluated,
// but the right side's bytecode (and any action-call side effects in it)
// only runs when the left side is falsy. OpLogicalOr is emitted ahead of
// the right operand with a placeholder jump length, patched once the right
// operand (plus the trailing canonicalizing NOT/NOT pair) has been compiled.
func (c *compiler) or() error {
	if err := c.and(); err != nil {
		return err
	}
	for c.lex.Peek().Kind == TokOrOr {
		c.lex.Next()
		jump := c.prog.emit(OpLogicalOr, 0)
		if err := c.and(); err != nil {
			return err
		}
		// canonicalize the right side to 0/1 so a non-short-circuited result
		// reads the same as the short-circuited boolean it stands in for.
		c.prog.emit(OpNot, 0)
		c.prog.emit(OpNot, 0)
		c.prog.patch(jump, int32(len(c.prog.Code)-(jump+1)))
	}
	return nil
}

// and compiles `&&`, mirroring or's short-circuit/backpatch shape: the
// right operand's bytecode is skipped whenever the left side is falsy.
func (c *compiler) and() error {
	if err := c.actionCall(); err != nil {
		return err
	}
	for c.lex.Peek().Kind == TokAndAnd {
		c.lex.Next()
		jump := c.prog.emit(OpLogicalAnd, 0)
		if err := c.actionCall(); err != nil {
			return err
		}
		c.prog.emit(OpNot, 0)
		c.prog.emit(OpNot, 0)
		c.prog.patch(jump, int32(len(c.prog.Code)-(jump+1)))
	}
	return nil
}

// actionCall recognizes `identifier` or `identifier argument` where
// identifier resolves via the injected Dispatcher, emitting RUN_ACTION or
// RUN_VOID_ACTION per spec.md §4.4. Anything else falls through to assignment.
func (c *compiler) actionCall() error {
	t := c.lex.Peek()
	if t.Kind != TokIdent {
		return c.assign()
	}
	if c.disp == nil {
		return c.assign()
	}
	if _, isLocal := c.locals[t.Str]; isLocal {
		return c.assign()
	}
	id, kind, optional, ok := c.disp.Lookup(t.Str)
	if !ok {
		return c.assign()
	}
	c.lex.Next()
	if kind == ArgVoid {
		c.prog.emit(OpRunVoidAction, id)
		return nil
	}
	if c.atArgBoundary() {
		if !optional {
			return &CompileError{Col: t.Col, Msg: fmt.Sprintf("action %q requires an argument", t.Str)}
		}
		c.prog.emit(OpRunVoidAction, id)
		return nil
	}
	if kind == ArgQuad {
		if err := c.quadLiteral(); err != nil {
			return err
		}
		c.prog.emit(OpRunAction, id)
		return nil
	}
	if err := c.assign(); err != nil {
		return err
	}
	c.prog.emit(OpRunAction, id)
	return nil
}

// atArgBoundary reports whether the token stream has reached something that
// cannot start an argument expression, meaning an optional-argument action
// was invoked bare.
func (c *compiler) atArgBoundary() bool {
	switch c.lex.Peek().Kind {
	case TokEOF, TokSemicolon, TokOrOr, TokAndAnd, TokRParen, TokComma:
		return true
	default:
		return false
	}
}

func (c *compiler) assign() error {
	t := c.lex.Peek()
	if t.Kind == TokIdent || t.Kind == TokLocal {
		save := *c.lex
		name, isDecl, err := c.variableTarget()
		if err == nil && c.lex.Peek().Kind == TokAssign {
			c.lex.Next()
			if err := c.addSub(); err != nil {
				return err
			}
			slot, isGlobal := c.resolve(name, isDecl)
			if isGlobal {
				c.prog.emit(OpSetInteger, slot)
			} else {
				c.prog.emit(OpSet, slot)
			}
			return nil
		}
		*c.lex = save
	}
	return c.addSub()
}

// variableTarget parses `local NAME` or `NAME` as an assignment target,
// without consuming the `=`.
func (c *compiler) variableTarget() (string, bool, error) {
	t := c.lex.Next()
	if t.Kind == TokLocal {
		name := c.lex.Next()
		if name.Kind != TokIdent {
			return "", false, &CompileError{Col: name.Col, Msg: "expected identifier after local"}
		}
		return name.Str, true, nil
	}
	if t.Kind == TokIdent {
		return t.Str, false, nil
	}
	return "", false, &CompileError{Col: t.Col, Msg: "expected variable name"}
}

func (c *compiler) resolve(name string, declare bool) (slot int32, isGlobal bool) {
	if declare {
		slot := int32(len(c.order))
		c.locals[name] = slot
		c.order = append(c.order, name)
		return slot, false
	}
	if slot, ok := c.locals[name]; ok {
		return slot, false
	}
	return c.globals.slot(name), true
}

func (c *compiler) addSub() error {
	if err := c.unary(); err != nil {
		return err
	}
	for {
		t := c.lex.Peek()
		if t.Kind != TokPlus && t.Kind != TokMinus {
			return nil
		}
		c.lex.Next()
		if err := c.unary(); err != nil {
			return err
		}
		if t.Kind == TokPlus {
			c.prog.emit(OpAdd, 0)
		} else {
			c.prog.emit(OpSubtract, 0)
		}
	}
}

// unary handles prefix +/-: the operand is compiled first and OpNegate is
// emitted after it, the postfix order the VM evaluates in.
func (c *compiler) unary() error {
	t := c.lex.Peek()
	if t.Kind != TokMinus && t.Kind != TokPlus {
		return c.mulDivMod()
	}
	c.lex.Next()
	if err := c.mulDivMod(); err != nil {
		return err
	}
	if t.Kind == TokMinus {
		c.prog.emit(OpNegate, 0)
	}
	return nil
}

func (c *compiler) mulDivMod() error {
	if err := c.not(); err != nil {
		return err
	}
	for {
		t := c.lex.Peek()
		if t.Kind != TokStar && t.Kind != TokSlashSlash && t.Kind != TokPercent {
			return nil
		}
		c.lex.Next()
		if err := c.not(); err != nil {
			return err
		}
		switch t.Kind {
		case TokStar:
			c.prog.emit(OpMultiply, 0)
		case TokSlashSlash:
			c.prog.emit(OpDivide, 0)
		case TokPercent:
			c.prog.emit(OpModulo, 0)
		}
	}
}

func (c *compiler) not() error {
	if c.lex.Peek().Kind != TokBang {
		return c.literal()
	}
	c.lex.Next()
	if err := c.literal(); err != nil {
		return err
	}
	c.prog.emit(OpNot, 0)
	return nil
}

func (c *compiler) literal() error {
	t := c.lex.Next()
	switch t.Kind {
	case TokInt:
		c.prog.emit(OpLiteralInteger, t.Int)
		return nil
	case TokString:
		c.prog.emitString(t.Str)
		return nil
	case TokLParen:
		if err := c.sequence(); err != nil {
			return err
		}
		close := c.lex.Next()
		if close.Kind != TokRParen {
			return &CompileError{Col: close.Col, Msg: "expected )"}
		}
		return nil
	case TokIdent:
		if slot, ok := c.locals[t.Str]; ok {
			c.prog.emit(OpVariable, slot)
			return nil
		}
		if _, ok := c.globals.slots[t.Str]; !ok {
			return &CompileError{Col: t.Col, Msg: fmt.Sprintf("unset variable %q", t.Str)}
		}
		c.prog.emit(OpLoadInteger, c.globals.slot(t.Str))
		return nil
	case TokLocal:
		name := c.lex.Next()
		if name.Kind != TokIdent {
			return &CompileError{Col: name.Col, Msg: "expected identifier after local"}
		}
		slot, _ := c.resolve(name.Str, true)
		if c.lex.Peek().Kind == TokAssign {
			c.lex.Next()
			if err := c.addSub(); err != nil {
				return err
			}
		} else {
			c.prog.emit(OpLiteralInteger, 0)
		}
		c.prog.emit(OpSet, slot)
		return nil
	default:
		return &CompileError{Col: t.Col, Msg: "expected expression"}
	}
}
