package camera

// Projection holds the fixed parameters that map a one-dimensional depth
// coordinate to render scale and screen offset. Values are tuned for a
// character-cell viewport, not pixels.
type Projection struct {
	FocalLength float64 // perspective strength; larger flattens the scene
	Horizon     float64 // vertical anchor as a fraction of viewport height
	NearZ       float64 // depth of the front-most auto-generated layer
	LayerGap    float64 // world distance between adjacent layer indices
	DriftX      float64 // horizontal cells of offset per unit depth
}

// DefaultProjection returns the fixed projection parameters.
func DefaultProjection() Projection {
	return Projection{
		FocalLength: 24,
		Horizon:     0.35,
		NearZ:       2,
		LayerGap:    6,
		DriftX:      0.8,
	}
}

// Scale maps a depth to a render scale in (0, 1]. Strictly decreasing for
// z >= 0, so farther sprites always draw smaller.
func (p Projection) Scale(z float64) float64 {
	if z < 0 {
		z = 0
	}
	return p.FocalLength / (p.FocalLength + z)
}

// Offset maps a depth to the horizontal and vertical cell offsets applied to
// everything on that plane. Vertical offset converges on the horizon line as
// depth grows.
func (p Projection) Offset(z float64, viewW, viewH int) (dx, dy float64) {
	s := p.Scale(z)
	horizonY := p.Horizon * float64(viewH)
	groundY := float64(viewH - 1)
	dx = z * p.DriftX
	dy = horizonY + (groundY-horizonY)*s - groundY
	return dx, dy
}

// LayerDepth maps an abstract layer index to a world depth. Pure and
// monotonic: a larger index is always farther away.
func (p Projection) LayerDepth(index int) float64 {
	return p.NearZ + float64(index)*p.LayerGap
}

// Bounds is the clamping range for the camera depth coordinate.
// Invariant: MinZ <= MaxZ.
type Bounds struct {
	MinZ, MaxZ float64
}

// DepthBounds derives the camera bounds from configured layer indices. The
// raw mapping is passed through LayerDepth; if the converted endpoints come
// out inverted they are reordered so the invariant holds.
func DepthBounds(minLayer, maxLayer int, p Projection) Bounds {
	a := p.LayerDepth(minLayer)
	b := p.LayerDepth(maxLayer)
	if a > b {
		a, b = b, a
	}
	return Bounds{MinZ: a, MaxZ: b}
}

// Camera tracks the viewer's depth position, always held inside Bounds.
type Camera struct {
	WorldZ float64
	Bounds Bounds
}

// New creates a camera resting at the near bound.
func New(b Bounds) *Camera {
	return &Camera{WorldZ: b.MinZ, Bounds: b}
}

// Move applies a depth delta and clamps the result back into bounds.
// Clamping is idempotent and holds for deltas of any magnitude.
func (c *Camera) Move(dz float64) {
	c.WorldZ += dz
	c.clamp()
}

// Set replaces the depth position outright, clamped.
func (c *Camera) Set(z float64) {
	c.WorldZ = z
	c.clamp()
}

func (c *Camera) clamp() {
	if c.WorldZ < c.Bounds.MinZ {
		c.WorldZ = c.Bounds.MinZ
	}
	if c.WorldZ > c.Bounds.MaxZ {
		c.WorldZ = c.Bounds.MaxZ
	}
}
