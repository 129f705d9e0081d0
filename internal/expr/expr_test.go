package expr

import "testing"

type fakeDispatcher struct {
	calls []Value
}

func (f *fakeDispatcher) Lookup(name string) (int32, ArgKind, bool, bool) {
	switch name {
	case "quit":
		return 1, ArgVoid, false, true
	case "resize":
		return 2, ArgInteger, true, true
	case "move-to":
		return 3, ArgQuad, false, true
	}
	return 0, ArgVoid, false, false
}

func (f *fakeDispatcher) Call(id int32, arg Value) {
	f.calls = append(f.calls, arg)
}

func mustCompile(t *testing.T, src string, disp Dispatcher, g *Globals) *Program {
	t.Helper()
	prog, err := Compile(src, disp, g)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return prog
}

func TestLocalAssignExpression(t *testing.T) {
	g := NewGlobals()
	prog := mustCompile(t, "local a = 3; a = a * 4 - 2; a", nil, g)
	vm := NewVM(nil, g.Len())
	v, err := vm.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.Kind != KindInteger || v.Int != 10 {
		t.Fatalf("expected 10, got %+v", v)
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	g := NewGlobals()
	cases := []struct {
		src  string
		want int32
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"-3 + 5", 2},
		{"!0", 1},
		{"!5", 0},
		{"7 // 2", 3},
		{"-7 // 2", -3},
		{"-7 % 2", -1},
		{"1 && 0", 0},
		{"0 || 4", 1},
	}
	for _, c := range cases {
		prog := mustCompile(t, c.src, nil, g)
		vm := NewVM(nil, g.Len())
		v, err := vm.Run(prog)
		if err != nil {
			t.Fatalf("Run(%q): %v", c.src, err)
		}
		if v.Int != c.want {
			t.Errorf("%q = %d, want %d", c.src, v.Int, c.want)
		}
	}
}

func TestGlobalsPersistAcrossPrograms(t *testing.T) {
	g := NewGlobals()
	vm := NewVM(nil, g.Len())

	p1 := mustCompile(t, "counter = 1", nil, g)
	vm.Grow(g.Len())
	if _, err := vm.Run(p1); err != nil {
		t.Fatalf("Run p1: %v", err)
	}

	p2 := mustCompile(t, "counter = counter + 1", nil, g)
	vm.Grow(g.Len())
	v, err := vm.Run(p2)
	if err != nil {
		t.Fatalf("Run p2: %v", err)
	}
	if v.Int != 2 {
		t.Fatalf("expected global to persist and increment to 2, got %d", v.Int)
	}
}

func TestStringLiteralRoundTrip(t *testing.T) {
	g := NewGlobals()
	prog := mustCompile(t, `"hello world"`, nil, g)
	vm := NewVM(nil, g.Len())
	v, err := vm.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.Kind != KindString || v.Str != "hello world" {
		t.Fatalf("expected %q, got %+v", "hello world", v)
	}
}

func TestActionCallVoidAndArgument(t *testing.T) {
	g := NewGlobals()
	disp := &fakeDispatcher{}
	prog := mustCompile(t, "resize 5; quit", disp, g)
	vm := NewVM(disp, g.Len())
	if _, err := vm.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(disp.calls) != 2 {
		t.Fatalf("expected 2 action calls, got %d", len(disp.calls))
	}
	if disp.calls[0].Int != 5 {
		t.Errorf("resize should have received 5, got %+v", disp.calls[0])
	}
}

func TestActionOptionalArgumentOmitted(t *testing.T) {
	g := NewGlobals()
	disp := &fakeDispatcher{}
	prog := mustCompile(t, "resize", disp, g)
	if _, err := NewVM(disp, g.Len()).Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(disp.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(disp.calls))
	}
}

func TestVoidActionWithArgumentFails(t *testing.T) {
	g := NewGlobals()
	disp := &fakeDispatcher{}
	if _, err := Compile("quit 1", disp, g); err == nil {
		t.Fatalf("quit takes no argument path is void; expect trailing-input error")
	}
}

func TestLogicalShortCircuitSkipsSideEffect(t *testing.T) {
	g := NewGlobals()
	disp := &fakeDispatcher{}
	prog := mustCompile(t, "0 && resize 5", disp, g)
	v, err := NewVM(disp, g.Len()).Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.Int != 0 {
		t.Errorf("0 && resize 5 = %d, want 0", v.Int)
	}
	if len(disp.calls) != 0 {
		t.Fatalf("falsy && should never evaluate its right side, got %d calls", len(disp.calls))
	}

	g = NewGlobals()
	disp = &fakeDispatcher{}
	prog = mustCompile(t, "1 || resize 5", disp, g)
	v, err = NewVM(disp, g.Len()).Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.Int != 1 {
		t.Errorf("1 || resize 5 = %d, want 1", v.Int)
	}
	if len(disp.calls) != 0 {
		t.Fatalf("truthy || should never evaluate its right side, got %d calls", len(disp.calls))
	}

	g = NewGlobals()
	disp = &fakeDispatcher{}
	prog = mustCompile(t, "1 && resize 5", disp, g)
	if _, err := NewVM(disp, g.Len()).Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(disp.calls) != 1 {
		t.Fatalf("truthy && should still evaluate its right side, got %d calls", len(disp.calls))
	}
}

func TestQuadArgumentCompilesThroughRealGrammar(t *testing.T) {
	g := NewGlobals()
	disp := &fakeDispatcher{}
	prog := mustCompile(t, "move-to 1, 2", disp, g)
	if _, err := NewVM(disp, g.Len()).Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(disp.calls) != 1 {
		t.Fatalf("expected 1 action call, got %d", len(disp.calls))
	}
	if disp.calls[0].Quad != [4]int32{1, 2, 1, 2} {
		t.Errorf("move-to should receive the replicated quad, got %+v", disp.calls[0].Quad)
	}
}

func TestQuadLiteralReplication(t *testing.T) {
	g := NewGlobals()
	_ = g
	one, err := CompileQuad("5", nil, NewGlobals())
	if err != nil {
		t.Fatalf("CompileQuad(1-arg): %v", err)
	}
	v, err := NewVM(nil, 0).Run(one)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.Quad != [4]int32{5, 5, 5, 5} {
		t.Errorf("1-value quad should replicate to all 4, got %+v", v.Quad)
	}

	two, err := CompileQuad("1, 2", nil, NewGlobals())
	if err != nil {
		t.Fatalf("CompileQuad(2-arg): %v", err)
	}
	v, _ = NewVM(nil, 0).Run(two)
	if v.Quad != [4]int32{1, 2, 1, 2} {
		t.Errorf("2-value quad should alternate, got %+v", v.Quad)
	}

	four, err := CompileQuad("1, 2, 3, 4", nil, NewGlobals())
	if err != nil {
		t.Fatalf("CompileQuad(4-arg): %v", err)
	}
	v, _ = NewVM(nil, 0).Run(four)
	if v.Quad != [4]int32{1, 2, 3, 4} {
		t.Errorf("4-value quad should pass through, got %+v", v.Quad)
	}
}

func TestBytecodeRoundTripAgainstReferenceEval(t *testing.T) {
	exprs := map[string]int32{
		"2 + 3 * 4":          14,
		"(2 + 3) * 4":        20,
		"10 // 3":            3,
		"10 % 3":             1,
		"local x = 5; x + 1": 6,
	}
	for src, want := range exprs {
		g := NewGlobals()
		prog := mustCompile(t, src, nil, g)
		v, err := NewVM(nil, g.Len()).Run(prog)
		if err != nil {
			t.Fatalf("Run(%q): %v", src, err)
		}
		if v.Int != want {
			t.Errorf("%q = %d, want %d", src, v.Int, want)
		}
	}
}
