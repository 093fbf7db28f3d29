package sprite

// Bundle groups one character's loaded frame sets by animation name and
// composite key. Assembled once by the loader's character phase; read-only
// afterwards.
type Bundle map[string]map[Key]*FrameSet

// Add stores a frame set under anim/key, creating the inner map on first use.
func (b Bundle) Add(anim string, key Key, fs *FrameSet) {
	m := b[anim]
	if m == nil {
		m = make(map[Key]*FrameSet)
		b[anim] = m
	}
	m[key] = fs
}

// Frames resolves the frame set for an animation at a width and facing.
// Directional lookup is tried first, then the non-directional variant, then
// the nearest available width for the same facing. Returns nil if the
// animation has nothing usable.
func (b Bundle) Frames(anim string, width int, dir Direction) *FrameSet {
	m := b[anim]
	if len(m) == 0 {
		return nil
	}
	if fs, ok := m[Key{Width: width, Direction: dir, Directional: true}]; ok {
		return fs
	}
	if fs, ok := m[Key{Width: width}]; ok {
		return fs
	}
	var best *FrameSet
	bestDist := -1
	for k, fs := range m {
		if k.Directional && k.Direction != dir {
			continue
		}
		d := k.Width - width
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist || (d == bestDist && fs.Width < best.Width) {
			best, bestDist = fs, d
		}
	}
	return best
}

// Has reports whether the bundle holds any frames for anim.
func (b Bundle) Has(anim string) bool {
	return len(b[anim]) > 0
}
