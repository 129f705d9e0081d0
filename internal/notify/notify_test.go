package notify

import "testing"

func TestMeasureWidthCountsRunes(t *testing.T) {
	got := measureWidth("hello")
	want := int32(5 * 7)
	if got != want {
		t.Errorf("measureWidth(hello) = %d, want %d", got, want)
	}
	if measureWidth("") != 0 {
		t.Errorf("measureWidth(empty) = %d, want 0", measureWidth(""))
	}
}

func TestEncodePolyTextFormat(t *testing.T) {
	got := encodePolyText("hi")
	want := []byte{2, 0, 'h', 'i'}
	if len(got) != len(want) {
		t.Fatalf("encodePolyText length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("encodePolyText[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
