package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Action is a logical input action. The key table maps concrete terminal
// events onto these; nothing downstream sees raw keys.
type Action int

const (
	None Action = iota
	MoveLeft
	MoveRight
	MoveFar
	MoveNear
	Jump
	ToggleAudio
	NextTrack
	Quit
)

var actionNames = map[Action]string{
	None: "none", MoveLeft: "move-left", MoveRight: "move-right",
	MoveFar: "move-far", MoveNear: "move-near", Jump: "jump",
	ToggleAudio: "toggle-audio", NextTrack: "next-track", Quit: "quit",
}

func (a Action) String() string { return actionNames[a] }

// KeyTable maps terminal key events to actions.
type KeyTable struct {
	runes map[rune]Action
	keys  map[tcell.Key]Action
}

// DefaultKeyTable returns the standard bindings: arrows or hjkl-style wasd
// for movement, space to jump.
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		runes: map[rune]Action{
			'a': MoveLeft, 'd': MoveRight,
			'w': MoveFar, 's': MoveNear,
			' ': Jump,
			'm': ToggleAudio, 'n': NextTrack,
			'q': Quit,
		},
		keys: map[tcell.Key]Action{
			tcell.KeyLeft:  MoveLeft,
			tcell.KeyRight: MoveRight,
			tcell.KeyUp:    MoveFar,
			tcell.KeyDown:  MoveNear,
			tcell.KeyEsc:   Quit,
			tcell.KeyCtrlC: Quit,
		},
	}
}

// Lookup resolves a key event to an action, or None.
func (t *KeyTable) Lookup(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		return t.runes[ev.Rune()]
	}
	return t.keys[ev.Key()]
}

// HoldTTL is how long a movement key stays held after its last press or
// auto-repeat. Terminals deliver repeats rather than key-up events, so a
// hold expires when the repeats stop.
const HoldTTL = 180 * time.Millisecond

// Held tracks which movement actions are currently held down.
type Held struct {
	deadlines map[Action]time.Time
	ttl       time.Duration
}

// NewHeld creates a tracker with the given expiry. Zero uses HoldTTL.
func NewHeld(ttl time.Duration) *Held {
	if ttl <= 0 {
		ttl = HoldTTL
	}
	return &Held{deadlines: make(map[Action]time.Time), ttl: ttl}
}

// Press records a press or repeat of a at now. Returns true if a was
// already held, so callers can tell a fresh press from a repeat.
func (h *Held) Press(a Action, now time.Time) bool {
	_, held := h.deadlines[a]
	h.deadlines[a] = now.Add(h.ttl)
	return held
}

// IsHeld reports whether a is held at now.
func (h *Held) IsHeld(a Action, now time.Time) bool {
	dl, ok := h.deadlines[a]
	return ok && now.Before(dl)
}

// Expire drops actions whose repeats stopped and returns them as releases,
// in no particular order.
func (h *Held) Expire(now time.Time) []Action {
	var released []Action
	for a, dl := range h.deadlines {
		if !now.Before(dl) {
			released = append(released, a)
			delete(h.deadlines, a)
		}
	}
	return released
}

// Events is the injectable event-registration boundary: the core subscribes
// to a stream of terminal events without naming a concrete source.
type Events interface {
	Subscribe(ch chan<- tcell.Event)
	Unsubscribe()
}

// ScreenEvents adapts a tcell.Screen to the Events interface.
type ScreenEvents struct {
	Screen tcell.Screen
	quit   chan struct{}
}

func (e *ScreenEvents) Subscribe(ch chan<- tcell.Event) {
	e.quit = make(chan struct{})
	go e.Screen.ChannelEvents(ch, e.quit)
}

func (e *ScreenEvents) Unsubscribe() {
	if e.quit != nil {
		close(e.quit)
		e.quit = nil
	}
}
