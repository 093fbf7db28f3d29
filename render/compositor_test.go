package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/meadow/camera"
	"github.com/lixenwraith/meadow/character"
	"github.com/lixenwraith/meadow/config"
	"github.com/lixenwraith/meadow/scene"
	"github.com/lixenwraith/meadow/sprite"
)

// fakeSurface records SetContent calls for assertions.
type fakeSurface struct {
	w, h  int
	sets  int
	shown int
}

func (f *fakeSurface) Size() (int, int) { return f.w, f.h }
func (f *fakeSurface) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	f.sets++
}
func (f *fakeSurface) Show() { f.shown++ }

func pinInstances(s *scene.Scene, x float64) {
	for _, l := range s.Layers {
		for _, inst := range l.Instances {
			inst.X = x
		}
	}
}

func testScene(t *testing.T) (*scene.Scene, *config.Document) {
	t.Helper()
	doc, err := config.Parse([]byte(`{
		"sprites": [
			{"name": "grass", "type": "grass", "path": "art/grass", "widths": [8]},
			{"name": "oak", "type": "tree", "path": "art/oak", "widths": [12]}
		],
		"character": {
			"name": "bunny", "path": "art/bunny",
			"animations": [{"name": "idle", "widths": [6]}]
		},
		"layers": [
			{"name": "meadow", "type": "static", "parallax": 1.0, "sprites": ["grass"]}
		],
		"minLayer": 0, "maxLayer": 2
	}`), config.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	s, err := scene.Build(doc, camera.DefaultProjection(), 7)
	if err != nil {
		t.Fatal(err)
	}
	return s, doc
}

func TestFrameWithNothingLoaded(t *testing.T) {
	scn, _ := testScene(t)
	reg := sprite.NewRegistry()
	bunny := character.New(6)
	comp := NewCompositor(camera.DefaultProjection(), reg, scn, bunny)

	surf := &fakeSurface{w: 80, h: 24}
	last := comp.Frame(surf, time.Now(), time.Time{})
	if last.IsZero() {
		t.Fatal("Frame did not return an updated render time")
	}
	if surf.shown != 1 {
		t.Fatalf("Show called %d times", surf.shown)
	}
	if surf.sets != 80*24 {
		t.Fatalf("flushed %d cells, want %d", surf.sets, 80*24)
	}

	// ground markers present, nothing else
	lines := strings.Split(comp.Buffer().String(), "\n")
	ground := lines[len(lines)-1]
	if strings.TrimSpace(ground) == "" {
		t.Fatal("ground row is empty")
	}
	for _, line := range lines[:len(lines)-1] {
		if strings.TrimSpace(line) != "" {
			t.Fatalf("unloaded scene drew content above the ground: %q", line)
		}
	}
}

func TestFrameDrawsLoadedSprites(t *testing.T) {
	scn, _ := testScene(t)
	reg := sprite.NewRegistry()
	fs, _ := sprite.NewFrameSet(8, []string{"wWw\nwWw"})
	reg.Insert("grass", fs)
	pinInstances(scn, 10) // keep placement inside the viewport
	bunny := character.New(6)
	comp := NewCompositor(camera.DefaultProjection(), reg, scn, bunny)

	comp.Frame(&fakeSurface{w: 120, h: 30}, time.Now(), time.Time{})
	if !strings.Contains(comp.Buffer().String(), "W") {
		t.Fatal("loaded grass sprite not composited")
	}
}

func TestFrameDrawsCharacterOnlyWhenLoaded(t *testing.T) {
	scn, _ := testScene(t)
	reg := sprite.NewRegistry()
	bunny := character.New(6)
	bunny.X = 40
	comp := NewCompositor(camera.DefaultProjection(), reg, scn, bunny)

	comp.Frame(&fakeSurface{w: 120, h: 30}, time.Now(), time.Time{})
	if strings.Contains(comp.Buffer().String(), "B") {
		t.Fatal("character drawn before its frames loaded")
	}

	bundle := make(sprite.Bundle)
	fs, _ := sprite.NewFrameSet(6, []string{"BBB"})
	bundle.Add("idle", sprite.Key{Width: 6, Direction: sprite.Right, Directional: true}, fs)
	bunny.SetFrames(bundle)

	comp.Frame(&fakeSurface{w: 120, h: 30}, time.Now(), time.Time{})
	if !strings.Contains(comp.Buffer().String(), "B") {
		t.Fatal("character not drawn after load")
	}
}

func TestStatusLine(t *testing.T) {
	scn, _ := testScene(t)
	comp := NewCompositor(camera.DefaultProjection(), sprite.NewRegistry(), scn, character.New(6))
	comp.SetStatus("loading grass 1/4")

	comp.Frame(&fakeSurface{w: 80, h: 24}, time.Now(), time.Time{})
	if !strings.Contains(comp.Buffer().String(), "loading grass 1/4") {
		t.Fatal("status line missing")
	}

	comp.SetStatus("")
	comp.Frame(&fakeSurface{w: 80, h: 24}, time.Now(), time.Time{})
	if strings.Contains(comp.Buffer().String(), "loading") {
		t.Fatal("status line not cleared")
	}
}

func TestBufferDrawBlockTransparency(t *testing.T) {
	b := NewBuffer(10, 4)
	b.DrawString(0, 1, "XXXXXXXXXX", tcell.StyleDefault)
	b.DrawBlock(2, 0, "o o\n| |", tcell.StyleDefault)
	if b.Get(3, 1).Rune != 'X' {
		t.Fatalf("space in block erased underlying cell: %q", b.Get(3, 1).Rune)
	}
	if b.Get(2, 1).Rune != '|' {
		t.Fatalf("block rune not drawn: %q", b.Get(2, 1).Rune)
	}
}

func TestBufferIgnoresOutOfBounds(t *testing.T) {
	b := NewBuffer(4, 2)
	b.Set(-1, 0, 'x', tcell.StyleDefault)
	b.Set(0, -1, 'x', tcell.StyleDefault)
	b.Set(4, 0, 'x', tcell.StyleDefault)
	b.DrawBlock(-5, -5, "abc\ndef", tcell.StyleDefault)
	// no panic is the assertion; also verify in-bounds spill landed
	if b.Get(0, 0).Rune == 'x' {
		t.Fatal("out-of-bounds write landed in bounds")
	}
}
