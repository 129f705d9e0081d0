package winlist

import "testing"

func TestMaxWidthPicksLongestItem(t *testing.T) {
	got := maxWidth([]string{"a", "bbbb", "cc"})
	want := int32(len("bbbb")+2) * 7
	if got != want {
		t.Errorf("maxWidth = %d, want %d", got, want)
	}
	if maxWidth(nil) != 0 {
		t.Errorf("maxWidth(nil) = %d, want 0", maxWidth(nil))
	}
}

func TestSelectNextPrevWrapAround(t *testing.T) {
	w := &Window{items: []string{"a", "b", "c"}}
	w.SelectNext()
	if w.cursor != 1 {
		t.Fatalf("cursor after SelectNext = %d, want 1", w.cursor)
	}
	w.SelectPrev()
	w.SelectPrev()
	if w.cursor != 2 {
		t.Fatalf("cursor after wrap SelectPrev = %d, want 2", w.cursor)
	}
}

func TestCommitReturnsSelectedAndCloses(t *testing.T) {
	w := &Window{items: []string{"alpha", "beta"}, cursor: 1, visible: true}
	name, ok := w.Commit()
	if !ok || name != "beta" {
		t.Fatalf("Commit() = %q, %v, want beta, true", name, ok)
	}
	if w.visible {
		t.Error("Commit should close the popup")
	}
}

func TestCommitOnEmptyListFails(t *testing.T) {
	w := &Window{}
	_, ok := w.Commit()
	if ok {
		t.Error("Commit on empty list should fail")
	}
}
