package audio

import "testing"

// Engines in tests run disabled: CI has no audio device and NewEngine may
// fail speaker init. Disabled engines must still be fully callable.

func disabledEngine(tracks []string) *Engine {
	if len(tracks) == 0 {
		tracks = []string{"dawn"}
	}
	return &Engine{tracks: tracks, sr: 44100}
}

func TestDisabledEngineIsSafe(t *testing.T) {
	e := disabledEngine([]string{"dawn", "dusk"})
	e.Start()
	e.Stop()
	if e.Enabled() {
		t.Fatal("disabled engine reports enabled")
	}
	if muted := e.Toggle(); !muted {
		t.Fatal("first toggle should mute")
	}
	if muted := e.Toggle(); muted {
		t.Fatal("second toggle should unmute")
	}
}

func TestNextTrackWraps(t *testing.T) {
	e := disabledEngine([]string{"dawn", "noon", "dusk"})
	if e.Track() != "dawn" {
		t.Fatalf("initial track %q", e.Track())
	}
	e.NextTrack()
	e.NextTrack()
	if e.Track() != "dusk" {
		t.Fatalf("track after two advances: %q", e.Track())
	}
	if got := e.NextTrack(); got != "dawn" {
		t.Fatalf("track did not wrap: %q", got)
	}
}

func TestChordStreamFallsBackForUnknownTrack(t *testing.T) {
	e := disabledEngine(nil)
	s, err := e.chordStream("no-such-track")
	if err != nil {
		t.Fatalf("chordStream: %v", err)
	}
	if s == nil {
		t.Fatal("nil streamer")
	}
}
