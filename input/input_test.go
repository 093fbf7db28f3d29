package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestKeyTableLookup(t *testing.T) {
	table := DefaultKeyTable()

	cases := []struct {
		ev   *tcell.EventKey
		want Action
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), MoveLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), MoveRight},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), Jump},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), MoveLeft},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), MoveFar},
		{tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), Quit},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), None},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), None},
	}
	for _, tc := range cases {
		if got := table.Lookup(tc.ev); got != tc.want {
			t.Errorf("Lookup(%v/%q) = %v, want %v", tc.ev.Key(), tc.ev.Rune(), got, tc.want)
		}
	}
}

func TestHeldPressAndRepeat(t *testing.T) {
	h := NewHeld(100 * time.Millisecond)
	t0 := time.Now()

	if wasHeld := h.Press(MoveLeft, t0); wasHeld {
		t.Fatal("fresh press reported as repeat")
	}
	if wasHeld := h.Press(MoveLeft, t0.Add(50*time.Millisecond)); !wasHeld {
		t.Fatal("repeat reported as fresh press")
	}
	if !h.IsHeld(MoveLeft, t0.Add(120*time.Millisecond)) {
		t.Fatal("repeat did not extend the hold")
	}
}

func TestHeldExpire(t *testing.T) {
	h := NewHeld(100 * time.Millisecond)
	t0 := time.Now()
	h.Press(MoveLeft, t0)
	h.Press(MoveRight, t0)

	if released := h.Expire(t0.Add(50 * time.Millisecond)); len(released) != 0 {
		t.Fatalf("premature release: %v", released)
	}
	released := h.Expire(t0.Add(150 * time.Millisecond))
	if len(released) != 2 {
		t.Fatalf("expected both actions released, got %v", released)
	}
	if h.IsHeld(MoveLeft, t0.Add(150*time.Millisecond)) {
		t.Fatal("released action still held")
	}
}
