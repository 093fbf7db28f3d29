package scene

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/meadow/camera"
	"github.com/lixenwraith/meadow/config"
	"github.com/lixenwraith/meadow/sprite"
)

// AmbientInterval is the fixed cadence at which ambient sprite instances
// advance their frames, independent of the render rate.
const AmbientInterval = 260 * time.Millisecond

// WorldWidth is the horizontal extent of the scrolling world in cells.
// Instances wrap around it.
const WorldWidth = 360.0

// Instance is one placed sprite on a layer. Position and frame are mutable;
// everything it renders from lives in the registry.
type Instance struct {
	X, Y   float64
	Sprite string
	Frame  int
	Width  int
	Dir    sprite.Direction
}

// Layer is one depth plane holding zero or more instances.
type Layer struct {
	Name      string
	Depth     float64 // world depth of the plane
	Parallax  float64 // scroll-speed multiplier
	Instances []*Instance
}

// Scene holds the ordered depth layers and the authoritative camera. Layers
// are kept ascending by depth; the renderer walks them back to front.
type Scene struct {
	Layers  []*Layer
	ScrollX float64

	cam       *camera.Camera
	tickAccum time.Duration
}

// Build constructs the scene from validated configuration: hand-placed
// layers first, then auto-generated depth layers over
// [MinLayer, MaxLayer], ordered by increasing depth. Placement uses the
// given seed so a scene is reproducible.
func Build(doc *config.Document, proj camera.Projection, seed int64) (*Scene, error) {
	bounds := camera.DepthBounds(doc.MinLayer, doc.MaxLayer, proj)
	s := &Scene{cam: camera.New(bounds)}
	rng := rand.New(rand.NewSource(seed))

	for _, ld := range doc.Layers {
		layer := &Layer{
			Name:     ld.Name,
			Depth:    proj.NearZ,
			Parallax: ld.Parallax,
		}
		for _, name := range ld.Sprites {
			def, ok := findSprite(doc, name)
			if !ok {
				return nil, fmt.Errorf("layer %q references unknown sprite %q", ld.Name, name)
			}
			layer.Instances = append(layer.Instances, scatter(rng, def, 6)...)
		}
		s.Layers = append(s.Layers, layer)
	}

	trees := doc.TreeSprites()
	for idx := doc.MinLayer; idx <= doc.MaxLayer; idx++ {
		depth := proj.LayerDepth(idx)
		layer := &Layer{
			Name:     fmt.Sprintf("depth-%d", idx),
			Depth:    depth,
			Parallax: proj.Scale(depth), // farther planes scroll slower
		}
		for _, def := range trees {
			layer.Instances = append(layer.Instances, scatter(rng, def, 2)...)
		}
		s.Layers = append(s.Layers, layer)
	}

	sortLayersByDepth(s.Layers)
	return s, nil
}

func findSprite(doc *config.Document, name string) (config.SpriteDef, bool) {
	for _, d := range doc.Sprites {
		if d.Name == name {
			return d, true
		}
	}
	return config.SpriteDef{}, false
}

// scatter places count instances of def at random x positions, each with a
// random preferred width from the configured set.
func scatter(rng *rand.Rand, def config.SpriteDef, count int) []*Instance {
	out := make([]*Instance, 0, count)
	for i := 0; i < count; i++ {
		w := def.Widths[rng.Intn(len(def.Widths))]
		dir := sprite.Right
		if rng.Intn(2) == 1 {
			dir = sprite.Left
		}
		out = append(out, &Instance{
			X:      rng.Float64() * WorldWidth,
			Sprite: def.Name,
			Width:  w,
			Dir:    dir,
		})
	}
	return out
}

func sortLayersByDepth(layers []*Layer) {
	// insertion sort; layer counts are tiny
	for i := 1; i < len(layers); i++ {
		for j := i; j > 0 && layers[j-1].Depth > layers[j].Depth; j-- {
			layers[j-1], layers[j] = layers[j], layers[j-1]
		}
	}
}

// ReadCamera snapshots the authoritative camera at the top of a tick.
func (s *Scene) ReadCamera() camera.Camera { return *s.cam }

// WriteCamera stores the camera back after input processing. The single
// read/write pair per tick keeps the renderer and the input step agreed on
// camera state.
func (s *Scene) WriteCamera(c camera.Camera) { *s.cam = c }

// Scroll advances the horizontal scroll position, wrapping over the world
// width.
func (s *Scene) Scroll(dx float64) {
	s.ScrollX += dx
	for s.ScrollX >= WorldWidth {
		s.ScrollX -= WorldWidth
	}
	for s.ScrollX < 0 {
		s.ScrollX += WorldWidth
	}
}

// Tick advances ambient animation on the fixed cadence. Frame counts come
// from whatever the registry holds right now; instances whose sprite has
// not loaded keep frame 0.
func (s *Scene) Tick(dt time.Duration, reg *sprite.Registry) {
	s.tickAccum += dt
	for s.tickAccum >= AmbientInterval {
		s.tickAccum -= AmbientInterval
		s.advanceFrames(reg)
	}
}

func (s *Scene) advanceFrames(reg *sprite.Registry) {
	for _, layer := range s.Layers {
		for _, inst := range layer.Instances {
			fs := reg.Nearest(inst.Sprite, inst.Width)
			if fs == nil || len(fs.Frames) == 0 {
				inst.Frame = 0
				continue
			}
			inst.Frame = (inst.Frame + 1) % len(fs.Frames)
		}
	}
}
