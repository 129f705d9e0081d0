package winstate

import (
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

func mkParams(client xproto.Window) CreateParams {
	return CreateParams{Client: client, Rect: Rect{Width: 100, Height: 100}, FirstNumber: 1}
}

func TestWindowNumbersUniqueAndStable(t *testing.T) {
	r := NewRegistry()
	w1, err := r.Create(mkParams(1))
	if err != nil {
		t.Fatal(err)
	}
	w2, err := r.Create(mkParams(2))
	if err != nil {
		t.Fatal(err)
	}
	w3, err := r.Create(mkParams(3))
	if err != nil {
		t.Fatal(err)
	}
	if w1.Number() != 1 || w2.Number() != 2 || w3.Number() != 3 {
		t.Fatalf("expected sequential numbers, got %d %d %d", w1.Number(), w2.Number(), w3.Number())
	}

	if err := r.Destroy(w2); err != nil {
		t.Fatal(err)
	}
	w4, err := r.Create(mkParams(4))
	if err != nil {
		t.Fatal(err)
	}
	if w4.Number() != 2 {
		t.Errorf("expected reassigned number 2, got %d", w4.Number())
	}

	seen := map[int32]bool{}
	for _, w := range r.AllByAge() {
		if seen[w.Number()] {
			t.Fatalf("duplicate number %d", w.Number())
		}
		seen[w.Number()] = true
	}
}

func TestCreateRejectsIneligible(t *testing.T) {
	r := NewRegistry()
	p := mkParams(1)
	p.OverrideRedirect = true
	if _, err := r.Create(p); err != ErrIneligible {
		t.Fatalf("expected ErrIneligible, got %v", err)
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create(mkParams(1)); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Create(mkParams(1)); err != ErrAlreadyRegistered {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestZOrderWellFormed(t *testing.T) {
	r := NewRegistry()
	tiling, _ := r.Create(mkParams(1))
	floating, _ := r.Create(mkParams(2))
	dock, _ := r.Create(mkParams(3))
	fullscreen, _ := r.Create(mkParams(4))

	r.SetMode(floating, Floating)
	r.SetMode(dock, Dock)
	r.SetMode(fullscreen, Fullscreen)

	for _, w := range []*Window{tiling, floating, dock, fullscreen} {
		r.UpdateLayer(w)
	}

	order := r.AllByStacking()
	rank := map[*Window]int{}
	for i, w := range order {
		rank[w] = i
	}
	if rank[tiling] >= rank[floating] {
		t.Errorf("tiling should precede floating in stacking order")
	}
	if rank[floating] >= rank[dock] {
		t.Errorf("floating should precede dock in stacking order")
	}
	if rank[dock] >= rank[fullscreen] {
		t.Errorf("dock should precede fullscreen in stacking order")
	}
}

func TestTransientStacksAboveTarget(t *testing.T) {
	r := NewRegistry()
	parent, _ := r.Create(mkParams(1))
	child, _ := r.Create(mkParams(2))
	child.SetTransientFor(parent.Client())
	r.SetMode(child, Floating)

	r.UpdateLayer(parent)
	r.UpdateLayer(child)

	if child.Below() != parent {
		t.Fatalf("transient child should sit immediately above its target")
	}
}

func TestCloseTwoStrike(t *testing.T) {
	r := NewRegistry()
	w, _ := r.Create(mkParams(1))
	w.SetProtocols(Protocols{Delete: true})

	t0 := time.Now()
	if got := r.Close(w, t0); got != CloseSendDelete {
		t.Fatalf("first close should send delete, got %v", got)
	}
	if got := r.Close(w, t0.Add(time.Second)); got != CloseForceKill {
		t.Fatalf("second close within grace period should force kill, got %v", got)
	}
}

func TestFocusTransferOnHide(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Create(mkParams(1))
	b, _ := r.Create(mkParams(2))
	_ = r.Focus(a)
	_ = r.Focus(b)
	r.Hide(b)
	if r.Focused() != a {
		t.Fatalf("expected focus to transfer back to a, got %v", r.Focused())
	}
}

func TestClassifyRules(t *testing.T) {
	atoms := Atoms{Fullscreen: 1, MaximizedVert: 2, MaximizedHorz: 3, TypeDock: 4, TypeDesktop: 5, TypeNormal: 6}

	if m := Classify(ClassifyInput{Atoms: atoms, StateAtoms: []xproto.Atom{1}}); m != Fullscreen {
		t.Errorf("fullscreen state should classify as Fullscreen, got %v", m)
	}
	if m := Classify(ClassifyInput{Atoms: atoms, TypeAtoms: []xproto.Atom{4}}); m != Dock {
		t.Errorf("dock type should classify as Dock, got %v", m)
	}
	if m := Classify(ClassifyInput{Atoms: atoms, Strut: StrutPartial{Left: 10}}); m != Dock {
		t.Errorf("non-empty strut should classify as Dock, got %v", m)
	}
	if m := Classify(ClassifyInput{Atoms: atoms, TypeAtoms: []xproto.Atom{5}}); m != Desktop {
		t.Errorf("desktop type should classify as Desktop, got %v", m)
	}
	if m := Classify(ClassifyInput{Atoms: atoms, TransientFor: 42}); m != Floating {
		t.Errorf("transient-for should classify as Floating, got %v", m)
	}
	if m := Classify(ClassifyInput{Atoms: atoms, SizeHints: SizeHints{HasMin: true, HasMax: true, MinWidth: 100, MaxWidth: 100, MinHeight: 1, MaxHeight: 1}}); m != Floating {
		t.Errorf("fixed size should classify as Floating, got %v", m)
	}
	if m := Classify(ClassifyInput{Atoms: atoms, TypeAtoms: []xproto.Atom{99}}); m != Floating {
		t.Errorf("non-normal type list should classify as Floating, got %v", m)
	}
	if m := Classify(ClassifyInput{Atoms: atoms}); m != Tiling {
		t.Errorf("default should classify as Tiling, got %v", m)
	}
}
