package domain

import "testing"

func TestPrintLayout_DragRoundTripKeepsIntegerPixels(t *testing.T) {
	l, err := NewPrintLayout(Landscape, 1)
	if err != nil {
		t.Fatalf("new layout: %v", err)
	}
	if err := l.Place(0, 40, 75, 310, 75); err != nil {
		t.Fatalf("place: %v", err)
	}

	moves := [][2]float64{{12.4, -7.6}, {0.3, 0.3}, {-99.9, 0.45}}
	for _, token := range []PrintToken{TokenStub, TokenTicket} {
		for _, m := range moves {
			if err := l.Drag(0, token, m[0], m[1]); err != nil {
				t.Fatalf("drag: %v", err)
			}
		}
		for i := len(moves) - 1; i >= 0; i-- {
			if err := l.Drag(0, token, -moves[i][0], -moves[i][1]); err != nil {
				t.Fatalf("reverse drag: %v", err)
			}
		}
	}

	got, err := l.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := PrintPosition{XCanhoto: 40, YCanhoto: 75, XBilhete: 310, YBilhete: 75}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRoundPixel_HalvesGoUp(t *testing.T) {
	cases := map[float64]int{0.5: 1, -0.5: 0, 1.49: 1, -1.5: -1, 2.5: 3}
	for in, want := range cases {
		if got := RoundPixel(in); got != want {
			t.Errorf("RoundPixel(%v): expected %d, got %d", in, want, got)
		}
	}
}
