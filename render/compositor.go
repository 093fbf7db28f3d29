package render

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/lixenwraith/meadow/camera"
	"github.com/lixenwraith/meadow/character"
	"github.com/lixenwraith/meadow/scene"
	"github.com/lixenwraith/meadow/sprite"
)

// groundPattern repeats along the ground strip, offset by scroll.
const groundPattern = `"'.,-'".~'-,.`

// Compositor paints one complete frame per tick: sky, ground, depth layers
// far to near with parallax, then the character. It is correct for any
// registry state from empty to fully populated; sprites that have not
// loaded simply do not appear.
type Compositor struct {
	proj  camera.Projection
	reg   *sprite.Registry
	scn   *scene.Scene
	bunny *character.Bunny
	buf   *Buffer

	shimmer time.Duration

	mu     sync.Mutex
	status string
}

// NewCompositor wires the compositor to its scene, registry and character.
func NewCompositor(proj camera.Projection, reg *sprite.Registry, scn *scene.Scene, bunny *character.Bunny) *Compositor {
	return &Compositor{
		proj:  proj,
		reg:   reg,
		scn:   scn,
		bunny: bunny,
		buf:   NewBuffer(0, 0),
	}
}

// SetStatus sets the status line drawn in the top-left corner. An empty
// string hides it. Safe to call from the loader's progress sink.
func (c *Compositor) SetStatus(s string) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Frame composites and flushes one frame. last is the previous call's
// return value; the updated render time is returned for the next call.
func (c *Compositor) Frame(s Surface, now, last time.Time) time.Time {
	if !last.IsZero() {
		c.shimmer += now.Sub(last)
	}

	w, h := s.Size()
	if w != c.buf.Width() || h != c.buf.Height() {
		c.buf.Resize(w, h)
	}

	skyStyle := dimmed(skyColor, 0)
	c.buf.Fill(' ', skyStyle)

	c.drawGround(w, h)

	cam := c.scn.ReadCamera()
	camOffset := cam.WorldZ - cam.Bounds.MinZ

	// far to near
	for i := len(c.scn.Layers) - 1; i >= 0; i-- {
		c.drawLayer(c.scn.Layers[i], cam, camOffset, w, h)
	}

	c.drawCharacter(w, h)

	c.mu.Lock()
	status := c.status
	c.mu.Unlock()
	if status != "" {
		c.buf.DrawString(0, 0, status, dimmed(textColor, 0))
	}

	c.buf.Flush(s)
	return now
}

// Buffer exposes the last composited frame, for tests.
func (c *Compositor) Buffer() *Buffer { return c.buf }

func (c *Compositor) drawGround(w, h int) {
	if h < 1 {
		return
	}
	style := dimmed(groundColor, 0.1)
	phase := int(c.scn.ScrollX) + int(c.shimmer/(400*time.Millisecond))
	for x := 0; x < w; x++ {
		i := x + phase
		if i < 0 {
			i = -i
		}
		c.buf.Set(x, h-1, rune(groundPattern[i%len(groundPattern)]), style)
	}
}

func (c *Compositor) drawLayer(layer *scene.Layer, cam camera.Camera, camOffset float64, w, h int) {
	relZ := layer.Depth - camOffset
	if relZ < 0 {
		return // behind the camera after hopping away
	}
	sc := c.proj.Scale(relZ)
	dx, dy := c.proj.Offset(relZ, w, h)
	baseY := (h - 1) + int(dy-0.5)
	dim := relZ / (cam.Bounds.MaxZ + c.proj.LayerGap)
	scroll := c.scn.ScrollX * layer.Parallax

	for _, inst := range layer.Instances {
		want := int(float64(inst.Width)*sc + 0.5)
		if want < 1 {
			want = 1
		}
		fs := c.reg.Nearest(inst.Sprite, want)
		if fs == nil || len(fs.Frames) == 0 {
			continue
		}
		frame := fs.Frames[inst.Frame%len(fs.Frames)]
		frameW := sprite.MeasureWidth([]string{frame})
		frameH := strings.Count(frame, "\n") + 1

		x := math.Mod(inst.X-scroll, scene.WorldWidth)
		if x < 0 {
			x += scene.WorldWidth
		}
		// a sprite straddling the world seam also shows one world to the left
		for _, wx := range [2]float64{x, x - scene.WorldWidth} {
			sx := int(wx + dx + 0.5)
			if sx+frameW < 0 || sx >= w {
				continue
			}
			c.buf.DrawBlock(sx, baseY-frameH+1, frame, dimmed(spriteBase(inst.Sprite), dim))
		}
	}
}

func (c *Compositor) drawCharacter(w, h int) {
	frame := c.bunny.Frame()
	if frame == "" {
		return // not loaded yet, or nothing usable; never partially drawn
	}
	frameH := strings.Count(frame, "\n") + 1
	sx := int(c.bunny.X + 0.5)
	sy := (h - 2) - frameH + 1 - c.bunny.AirOffset()
	c.buf.DrawBlock(sx, sy, frame, dimmed(bunnyColor, 0))
}
