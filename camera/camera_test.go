package camera

import (
	"math"
	"testing"
)

func TestMoveAlwaysWithinBounds(t *testing.T) {
	b := Bounds{MinZ: 2, MaxZ: 50}
	c := New(b)

	deltas := []float64{0, 1, -1, 10, -10, 1e9, -1e9, math.MaxFloat64, -math.MaxFloat64, 0.0001}
	for _, dz := range deltas {
		c.Move(dz)
		if c.WorldZ < b.MinZ || c.WorldZ > b.MaxZ {
			t.Fatalf("Move(%v) left WorldZ=%v outside [%v, %v]", dz, c.WorldZ, b.MinZ, b.MaxZ)
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	c := New(Bounds{MinZ: 0, MaxZ: 10})
	c.Move(1e12)
	first := c.WorldZ
	c.Move(0)
	if c.WorldZ != first {
		t.Fatalf("clamp not idempotent: %v then %v", first, c.WorldZ)
	}
}

func TestDepthBoundsOrdered(t *testing.T) {
	p := DefaultProjection()

	cases := []struct{ min, max int }{
		{0, 5},
		{5, 0}, // inverted input must still come out ordered
		{-3, 3},
		{2, 2},
	}
	for _, tc := range cases {
		b := DepthBounds(tc.min, tc.max, p)
		if b.MinZ > b.MaxZ {
			t.Errorf("DepthBounds(%d, %d) = %+v, MinZ > MaxZ", tc.min, tc.max, b)
		}
	}

	// Inverted mapping: negative gap flips the sign of the raw conversion.
	inv := p
	inv.LayerGap = -p.LayerGap
	b := DepthBounds(0, 5, inv)
	if b.MinZ > b.MaxZ {
		t.Errorf("inverted mapping produced unordered bounds %+v", b)
	}
}

func TestLayerDepthMonotonic(t *testing.T) {
	p := DefaultProjection()
	prev := p.LayerDepth(0)
	for i := 1; i < 20; i++ {
		z := p.LayerDepth(i)
		if z <= prev {
			t.Fatalf("LayerDepth(%d)=%v not greater than LayerDepth(%d)=%v", i, z, i-1, prev)
		}
		prev = z
	}
}

func TestScaleDecreasesWithDepth(t *testing.T) {
	p := DefaultProjection()
	prev := p.Scale(0)
	if prev > 1 {
		t.Fatalf("Scale(0)=%v exceeds 1", prev)
	}
	for z := 1.0; z < 200; z *= 2 {
		s := p.Scale(z)
		if s >= prev {
			t.Fatalf("Scale(%v)=%v not below Scale at previous depth %v", z, s, prev)
		}
		prev = s
	}
}

func TestOffsetConvergesOnHorizon(t *testing.T) {
	p := DefaultProjection()
	_, dyNear := p.Offset(0, 120, 40)
	_, dyFar := p.Offset(500, 120, 40)
	if dyNear != 0 {
		t.Errorf("near plane should sit on the ground line, dy=%v", dyNear)
	}
	horizonY := p.Horizon * 40
	groundY := 39.0
	if got := groundY + dyFar; math.Abs(got-horizonY) > 2 {
		t.Errorf("far plane y=%v not near horizon %v", got, horizonY)
	}
}
