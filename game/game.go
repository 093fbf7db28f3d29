package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/meadow/audio"
	"github.com/lixenwraith/meadow/camera"
	"github.com/lixenwraith/meadow/character"
	"github.com/lixenwraith/meadow/config"
	"github.com/lixenwraith/meadow/input"
	"github.com/lixenwraith/meadow/loader"
	"github.com/lixenwraith/meadow/render"
	"github.com/lixenwraith/meadow/scene"
	"github.com/lixenwraith/meadow/sprite"
)

// Game owns the per-tick loop: poll input, synchronize the camera, advance
// timers, composite, flush. The loop itself never blocks on loading; the
// progressive loader runs on its own goroutine and feeds the registry.
type Game struct {
	doc     *config.Document
	reg     *sprite.Registry
	scn     *scene.Scene
	bunny   *character.Bunny
	comp    *render.Compositor
	keys    *input.KeyTable
	held    *input.Held
	events  input.Events
	surface render.Surface
	audio   *audio.Engine

	// characterReady hands the loaded bundle from the loader goroutine to
	// the tick loop, which is the only writer of character state.
	characterReady chan sprite.Bundle

	lastRender time.Time
}

// New builds a game from validated configuration and injected boundaries.
func New(doc *config.Document, surface render.Surface, events input.Events, aud *audio.Engine, seed int64) (*Game, error) {
	proj := camera.DefaultProjection()
	scn, err := scene.Build(doc, proj, seed)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	reg := sprite.NewRegistry()
	bunny := character.New(doc.Character.Width)
	w, _ := surface.Size()
	bunny.X = float64(w) / 2

	return &Game{
		doc:            doc,
		reg:            reg,
		scn:            scn,
		bunny:          bunny,
		comp:           render.NewCompositor(proj, reg, scn, bunny),
		keys:           input.DefaultKeyTable(),
		held:           input.NewHeld(0),
		events:         events,
		surface:        surface,
		audio:          aud,
		characterReady: make(chan sprite.Bundle, 1),
	}, nil
}

// Registry returns the shared sprite registry the loader populates.
func (g *Game) Registry() *sprite.Registry { return g.reg }

// StartLoader launches the progressive load on its own goroutine. A failed
// resource leaves the scene partially populated; the loop keeps rendering
// whatever made it into the registry.
func (g *Game) StartLoader(ctx context.Context, src loader.Source) {
	go func() {
		err := loader.Run(ctx, g.doc, src, g.reg,
			func(p loader.Progress) {
				g.comp.SetStatus(fmt.Sprintf("loading %s %d/%d", p.Phase, p.Current, p.Total))
			},
			func(b sprite.Bundle) {
				g.characterReady <- b
			})
		if err != nil {
			log.Printf("load incomplete, continuing with partial scenery: %v", err)
			g.comp.SetStatus("some scenery failed to load")
			return
		}
		g.comp.SetStatus("")
	}()
}

// Run drives the loop until the context ends or a quit action arrives.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	g.events.Subscribe(events)
	defer g.events.Unsubscribe()

	tick := time.Second / time.Duration(g.doc.Settings.FrameRate)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if g.handleEvent(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			g.step(now, tick)
		}
	}
}

// handleEvent processes one terminal event. Returns true on quit.
func (g *Game) handleEvent(ev tcell.Event, now time.Time) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch action := g.keys.Lookup(key); action {
	case input.Quit:
		return true
	case input.Jump:
		g.bunny.Press(character.MoveJump)
	case input.ToggleAudio:
		if g.audio != nil {
			g.audio.Toggle()
		}
	case input.NextTrack:
		if g.audio != nil {
			g.audio.NextTrack()
		}
	case input.MoveLeft, input.MoveRight, input.MoveFar, input.MoveNear:
		if wasHeld := g.held.Press(action, now); !wasHeld {
			g.bunny.Press(moveFor(action))
		}
	}
	return false
}

func moveFor(a input.Action) character.Move {
	switch a {
	case input.MoveLeft:
		return character.MoveLeft
	case input.MoveRight:
		return character.MoveRight
	case input.MoveFar:
		return character.MoveFar
	default:
		return character.MoveNear
	}
}

// step advances one tick: install newly loaded character frames, expire
// holds, sync the camera around movement, advance timers, and composite.
func (g *Game) step(now time.Time, dt time.Duration) {
	select {
	case bundle := <-g.characterReady:
		g.bunny.SetFrames(bundle)
	default:
	}

	for _, a := range g.held.Expire(now) {
		g.bunny.Release(moveFor(a))
	}

	// one camera read/write pair per tick
	cam := g.scn.ReadCamera()
	cam.Move(g.bunny.DepthMotion() * g.doc.Settings.HopSpeed * dt.Seconds())
	if g.bunny.Walking() {
		dx := g.doc.Settings.ScrollSpeed * dt.Seconds()
		if g.bunny.Dir() == sprite.Left {
			dx = -dx
		}
		g.scn.Scroll(dx)
	}
	g.scn.WriteCamera(cam)

	g.bunny.Update(dt)
	g.scn.Tick(dt, g.reg)
	g.lastRender = g.comp.Frame(g.surface, now, g.lastRender)
}
