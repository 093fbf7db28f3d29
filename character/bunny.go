package character

import (
	"time"

	"github.com/lixenwraith/meadow/sprite"
)

// State is the bunny's discrete animation state.
type State int

const (
	Idle State = iota
	Walk
	Jump
	WalkToIdle
	TurnAway
	TurnToward
	HopAway
	HopToward
)

var stateNames = map[State]string{
	Idle:       "idle",
	Walk:       "walk",
	Jump:       "jump",
	WalkToIdle: "walk_to_idle",
	TurnAway:   "turn_away",
	TurnToward: "turn_toward",
	HopAway:    "hop_away",
	HopToward:  "hop_toward",
}

func (s State) String() string { return stateNames[s] }

// Anim is the animation name backing this state in the frame bundle.
func (s State) Anim() string { return stateNames[s] }

// Looping states wrap their frame index; one-shots stop at the last frame
// and then auto-transition.
func (s State) Looping() bool { return s == Idle || s == Walk }

// Move is the bunny's input vocabulary. The game layer maps logical input
// actions onto these, so this package never touches an event source.
type Move int

const (
	MoveLeft Move = iota
	MoveRight
	MoveFar
	MoveNear
	MoveJump
)

// FrameIntervals gives each state its own animation cadence. Timers are
// accumulator-driven, so cadence is independent of the render rate.
var FrameIntervals = map[State]time.Duration{
	Idle:       420 * time.Millisecond,
	Walk:       110 * time.Millisecond,
	Jump:       80 * time.Millisecond,
	WalkToIdle: 120 * time.Millisecond,
	TurnAway:   100 * time.Millisecond,
	TurnToward: 100 * time.Millisecond,
	HopAway:    130 * time.Millisecond,
	HopToward:  130 * time.Millisecond,
}

// oneShotNext decides which state follows a finished one-shot. The resume
// rule after a transition is explicit here rather than baked into the
// update loop: hops route through their paired turn, and anything landing
// back in locomotion picks Walk or Idle depending on held movement keys.
var oneShotNext = map[State]func(*Bunny) State{
	Jump:       (*Bunny).resumeLocomotion,
	WalkToIdle: (*Bunny).resumeLocomotion,
	TurnAway:   func(*Bunny) State { return HopAway },
	HopAway:    (*Bunny).resumeLocomotion,
	HopToward:  func(*Bunny) State { return TurnToward },
	TurnToward: (*Bunny).resumeLocomotion,
}

// Bunny is the controllable character. Created with no frames; until the
// loader's character phase completes it ignores input and is not drawn.
type Bunny struct {
	state State
	dir   sprite.Direction
	frame int
	width int
	accum time.Duration

	frames sprite.Bundle // nil until loaded

	heldLeft  bool
	heldRight bool

	X, Y float64
}

// New creates an idle, unloaded bunny rendered at the given width.
func New(width int) *Bunny {
	return &Bunny{state: Idle, dir: sprite.Right, width: width}
}

// SetFrames installs the loaded animation bundle. Called once, from the
// loader's character callback.
func (b *Bunny) SetFrames(bundle sprite.Bundle) {
	b.frames = bundle
}

// Loaded reports whether the character phase has completed.
func (b *Bunny) Loaded() bool { return b.frames != nil }

// State returns the current animation state.
func (b *Bunny) State() State { return b.state }

// Dir returns the current facing.
func (b *Bunny) Dir() sprite.Direction { return b.dir }

// FrameIndex returns the current frame index, always valid for the active
// frame set.
func (b *Bunny) FrameIndex() int { return b.frame }

// Press handles a key-down for one move. No-op until frames are loaded.
func (b *Bunny) Press(m Move) {
	if b.frames == nil {
		return
	}
	switch m {
	case MoveLeft:
		b.heldLeft = true
		b.face(sprite.Left)
		if b.steady() {
			b.setState(Walk)
		}
	case MoveRight:
		b.heldRight = true
		b.face(sprite.Right)
		if b.steady() {
			b.setState(Walk)
		}
	case MoveJump:
		if b.steady() {
			b.setState(Jump)
		}
	case MoveFar:
		if b.steady() {
			b.setState(TurnAway)
		}
	case MoveNear:
		if b.steady() {
			b.setState(HopToward)
		}
	}
}

// Release handles a key-up for one move.
func (b *Bunny) Release(m Move) {
	if b.frames == nil {
		return
	}
	switch m {
	case MoveLeft:
		b.heldLeft = false
		if b.state == Walk {
			if b.heldRight {
				b.face(sprite.Right)
			} else {
				b.setState(WalkToIdle)
			}
		}
	case MoveRight:
		b.heldRight = false
		if b.state == Walk {
			if b.heldLeft {
				b.face(sprite.Left)
			} else {
				b.setState(WalkToIdle)
			}
		}
	}
}

// steady reports whether the bunny is in a state new input may interrupt.
func (b *Bunny) steady() bool {
	return b.state == Idle || b.state == Walk || b.state == WalkToIdle
}

func (b *Bunny) resumeLocomotion() State {
	if b.heldLeft || b.heldRight {
		return Walk
	}
	return Idle
}

func (b *Bunny) setState(s State) {
	if s == b.state {
		return
	}
	b.state = s
	b.frame = 0
	b.accum = 0
}

// face switches direction. When the mirrored sequence has the same frame
// count the current index carries over; otherwise it resets to 0.
func (b *Bunny) face(d sprite.Direction) {
	if d == b.dir {
		return
	}
	old := b.Frames()
	b.dir = d
	mirrored := b.Frames()
	if old == nil || mirrored == nil || len(old.Frames) != len(mirrored.Frames) {
		b.frame = 0
	}
}

// Frames returns the frame set for the active state/width/facing, or nil if
// nothing usable has loaded.
func (b *Bunny) Frames() *sprite.FrameSet {
	if b.frames == nil {
		return nil
	}
	return b.frames.Frames(b.state.Anim(), b.width, b.dir)
}

// Frame returns the current frame's text, or "" when the bunny should not
// be drawn.
func (b *Bunny) Frame() string {
	fs := b.Frames()
	if fs == nil || len(fs.Frames) == 0 {
		return ""
	}
	if b.frame >= len(fs.Frames) {
		return fs.Frames[len(fs.Frames)-1]
	}
	return fs.Frames[b.frame]
}

// Update advances the state's animation timer by dt. Looping states wrap;
// one-shots stop on their last frame and auto-transition.
func (b *Bunny) Update(dt time.Duration) {
	if b.frames == nil {
		return
	}
	b.accum += dt
	for {
		fs := b.Frames()
		if fs == nil || len(fs.Frames) == 0 {
			b.accum = 0
			return
		}
		n := len(fs.Frames)
		if b.frame >= n {
			b.frame = n - 1
		}
		interval := FrameIntervals[b.state]
		if b.accum < interval {
			return
		}
		b.accum -= interval
		if b.state.Looping() {
			b.frame = (b.frame + 1) % n
			continue
		}
		if b.frame < n-1 {
			b.frame++
			continue
		}
		b.setState(oneShotNext[b.state](b))
	}
}

// Walking reports whether the bunny is actively moving horizontally.
func (b *Bunny) Walking() bool { return b.state == Walk }

// DepthMotion returns the sign of camera depth movement the current state
// produces: +1 hopping away, -1 hopping toward, 0 otherwise.
func (b *Bunny) DepthMotion() float64 {
	switch b.state {
	case HopAway:
		return 1
	case HopToward:
		return -1
	}
	return 0
}

// AirOffset returns how many rows the bunny lifts off the ground, a simple
// arc over the jump animation's frames.
func (b *Bunny) AirOffset() int {
	if b.state != Jump {
		return 0
	}
	fs := b.Frames()
	if fs == nil || len(fs.Frames) < 2 {
		return 0
	}
	n := len(fs.Frames) - 1
	t := float64(b.frame) / float64(n)
	h := 4.0 * t * (1 - t) * 3 // peak of 3 rows mid-animation
	return int(h + 0.5)
}
