package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// ErrUnsupported is returned when no audio output could be initialized.
// The caller reports it once and keeps running without sound.
var ErrUnsupported = errors.New("audio output unavailable")

// trackChords maps a configured track name to the sine chord it hums.
// Unknown names fall back to "dawn".
var trackChords = map[string][]float64{
	"dawn":   {220, 277.18, 329.63},         // A minor-ish, quiet morning
	"noon":   {261.63, 329.63, 392},         // C major
	"dusk":   {196, 246.94, 293.66},         // G major, lower
	"burrow": {146.83, 185, 220},            // D, warm and low
	"rain":   {207.65, 246.94, 311.13, 370}, // denser cluster
}

// Engine plays a looping ambient chord per track and switches between
// tracks. When the speaker cannot initialize the engine runs disabled:
// every method is a safe no-op.
type Engine struct {
	mu      sync.Mutex
	enabled bool
	muted   bool
	sr      beep.SampleRate
	tracks  []string
	current int
	ctrl    *beep.Ctrl
}

// NewEngine initializes the speaker and prepares the track list. On an
// unsupported environment it returns a disabled engine together with an
// error wrapping ErrUnsupported; the engine is still usable.
func NewEngine(tracks []string) (*Engine, error) {
	if len(tracks) == 0 {
		tracks = []string{"dawn"}
	}
	e := &Engine{tracks: tracks, sr: beep.SampleRate(44100)}
	if err := speaker.Init(e.sr, e.sr.N(time.Second/10)); err != nil {
		return e, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	e.enabled = true
	return e, nil
}

// Start begins playing the first track.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return
	}
	e.playLocked()
}

// NextTrack advances to the next configured track, wrapping.
func (e *Engine) NextTrack() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = (e.current + 1) % len(e.tracks)
	if e.enabled {
		e.playLocked()
	}
	return e.tracks[e.current]
}

// Track returns the current track name.
func (e *Engine) Track() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracks[e.current]
}

// Toggle mutes or unmutes playback. Returns true when now muted.
func (e *Engine) Toggle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = !e.muted
	if e.enabled && e.ctrl != nil {
		speaker.Lock()
		e.ctrl.Paused = e.muted
		speaker.Unlock()
	}
	return e.muted
}

// Stop silences the speaker.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return
	}
	speaker.Clear()
	e.ctrl = nil
}

// Enabled reports whether audio output initialized.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

func (e *Engine) playLocked() {
	stream, err := e.chordStream(e.tracks[e.current])
	if err != nil {
		return
	}
	speaker.Clear()
	e.ctrl = &beep.Ctrl{Streamer: stream, Paused: e.muted}
	speaker.Play(e.ctrl)
}

// chordStream mixes quiet sine waves for the track's chord.
func (e *Engine) chordStream(track string) (beep.Streamer, error) {
	chord, ok := trackChords[track]
	if !ok {
		chord = trackChords["dawn"]
	}
	mixer := &beep.Mixer{}
	for _, freq := range chord {
		tone, err := generators.SineTone(e.sr, freq)
		if err != nil {
			return nil, err
		}
		mixer.Add(tone)
	}
	return &effects.Volume{
		Streamer: mixer,
		Base:     2,
		Volume:   -4, // well under conversation level
	}, nil
}
