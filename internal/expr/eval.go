package expr

import "fmt"

// VM evaluates compiled Programs against a shared global slot table and a
// Dispatcher for action calls. A VM is not safe for concurrent use; the
// event loop (internal/wm) runs expressions one at a time.
type VM struct {
	disp    Dispatcher
	globals []Value
	locals  []Value
}

// NewVM returns an evaluator with n preallocated global slots (from a
// Globals.Len() snapshot taken after compiling the configuration).
func NewVM(disp Dispatcher, numGlobals int) *VM {
	return &VM{disp: disp, globals: make([]Value, numGlobals)}
}

// Grow extends the global slot array, used when a later Compile call
// introduces variables the VM hasn't seen yet (e.g. a binding compiled
// after startup).
func (vm *VM) Grow(numGlobals int) {
	for len(vm.globals) < numGlobals {
		vm.globals = append(vm.globals, Value{})
	}
}

// Run evaluates prog and returns its final value: the top of the operand
// stack once every instruction has executed.
func (vm *VM) Run(prog *Program) (Value, error) {
	base := len(vm.locals)
	v, err := vm.exec(prog.Code, base)
	vm.locals = vm.locals[:base]
	return v, err
}

// exec runs code as a stack machine: every opcode pops its operands off stk
// and pushes its result, the classic postfix evaluation the compiler's
// recursive descent already emits operands for in the right order. base is
// the local-variable frame's starting offset within vm.locals.
func (vm *VM) exec(code []uint32, base int) (Value, error) {
	var stk []Value
	push := func(v Value) { stk = append(stk, v) }
	pop := func() Value {
		if len(stk) == 0 {
			return Value{}
		}
		v := stk[len(stk)-1]
		stk = stk[:len(stk)-1]
		return v
	}

	ip := 0
	for ip < len(code) {
		op := decodeOp(code[ip])
		switch op {
		case OpLiteralInteger:
			push(Value{Kind: KindInteger, Int: decodeSigned(code[ip])})
			ip++

		case OpLiteralString:
			n := int(decodeUnsigned(code[ip]))
			ip++
			words := code[ip : ip+n]
			ip += n
			push(Value{Kind: KindString, Str: unpackString(words, -1)})

		case OpLiteralQuad:
			ip++
			var q [4]int32
			for i := 0; i < 4; i++ {
				q[i] = int32(code[ip])
				ip++
			}
			push(Value{Kind: KindQuad, Quad: q})

		case OpVariable:
			slot := base + int(decodeUnsigned(code[ip]))
			ip++
			if slot < len(vm.locals) {
				push(vm.locals[slot])
			} else {
				push(Value{})
			}

		case OpLoadInteger:
			slot := int(decodeUnsigned(code[ip]))
			ip++
			if slot < len(vm.globals) {
				push(vm.globals[slot])
			} else {
				push(Value{})
			}

		case OpSet:
			slot := base + int(decodeUnsigned(code[ip]))
			ip++
			v := pop()
			for slot >= len(vm.locals) {
				vm.locals = append(vm.locals, Value{})
			}
			vm.locals[slot] = v
			push(v)

		case OpSetInteger:
			slot := int(decodeUnsigned(code[ip]))
			ip++
			v := pop()
			vm.Grow(slot + 1)
			vm.globals[slot] = v
			push(v)

		case OpPushInteger:
			push(Value{Kind: KindInteger, Int: decodeSigned(code[ip])})
			ip++

		case OpStackPointer:
			ip++

		case OpNext:
			ip++
			right := pop()
			pop()
			push(right)

		case OpLogicalAnd:
			// short-circuit: a falsy left side skips the right operand's
			// bytecode entirely, so it never runs (and its action calls,
			// if any, never fire).
			skip := int(decodeUnsigned(code[ip]))
			ip++
			left := pop()
			if !left.Truthy() {
				push(boolValue(false))
				ip += skip
			}

		case OpLogicalOr:
			skip := int(decodeUnsigned(code[ip]))
			ip++
			left := pop()
			if left.Truthy() {
				push(boolValue(true))
				ip += skip
			}

		case OpNot:
			ip++
			push(boolValue(!pop().Truthy()))

		case OpNegate:
			ip++
			push(Value{Kind: KindInteger, Int: -pop().Int32()})

		case OpAdd:
			ip++
			right := pop()
			left := pop()
			push(Value{Kind: KindInteger, Int: left.Int32() + right.Int32()})

		case OpSubtract:
			ip++
			right := pop()
			left := pop()
			push(Value{Kind: KindInteger, Int: left.Int32() - right.Int32()})

		case OpMultiply:
			ip++
			right := pop()
			left := pop()
			push(Value{Kind: KindInteger, Int: left.Int32() * right.Int32()})

		case OpDivide:
			ip++
			right := pop()
			left := pop()
			var res int32
			if d := right.Int32(); d != 0 {
				res = left.Int32() / d
			}
			push(Value{Kind: KindInteger, Int: res})

		case OpModulo:
			ip++
			right := pop()
			left := pop()
			var res int32
			if d := right.Int32(); d != 0 {
				res = left.Int32() % d
			}
			push(Value{Kind: KindInteger, Int: res})

		case OpRunAction:
			id := decodeSigned(code[ip])
			ip++
			arg := pop()
			if vm.disp != nil {
				vm.disp.Call(id, arg)
			}
			push(Value{})

		case OpRunVoidAction:
			id := decodeSigned(code[ip])
			ip++
			if vm.disp != nil {
				vm.disp.Call(id, Value{})
			}
			push(Value{})

		default:
			return Value{}, fmt.Errorf("unknown opcode %d at instruction %d", op, ip)
		}
	}
	if len(stk) == 0 {
		return Value{}, nil
	}
	return stk[len(stk)-1], nil
}

func boolValue(b bool) Value {
	if b {
		return Value{Kind: KindInteger, Int: 1}
	}
	return Value{Kind: KindInteger, Int: 0}
}
