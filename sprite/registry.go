package sprite

import (
	"sort"
	"sync"
)

// Registry owns every loaded frame set, keyed by sprite name and ordered
// ascending by width. The loader inserts while the renderer reads, so all
// access goes through the lock. Entries are never removed during a session.
type Registry struct {
	mu   sync.RWMutex
	sets map[string][]*FrameSet
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[string][]*FrameSet)}
}

// Sets returns a snapshot of the frame sets for name, ascending by width.
// A sprite that has not finished loading yields an empty slice, never nil
// panic territory for callers iterating it.
func (r *Registry) Sets(name string) []*FrameSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sets := r.sets[name]
	out := make([]*FrameSet, len(sets))
	copy(out, sets)
	return out
}

// Insert adds fs to name's sets, keeping ascending width order. Inserting a
// width that is already present is a no-op, not an error.
func (r *Registry) Insert(name string, fs *FrameSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sets := r.sets[name]
	i := sort.Search(len(sets), func(i int) bool { return sets[i].Width >= fs.Width })
	if i < len(sets) && sets[i].Width == fs.Width {
		return
	}
	sets = append(sets, nil)
	copy(sets[i+1:], sets[i:])
	sets[i] = fs
	r.sets[name] = sets
}

// Nearest returns the frame set for name whose width is closest to want,
// or nil if none are loaded yet. Ties go to the narrower set.
func (r *Registry) Nearest(name string, want int) *FrameSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sets := r.sets[name]
	if len(sets) == 0 {
		return nil
	}
	i := sort.Search(len(sets), func(i int) bool { return sets[i].Width >= want })
	if i == 0 {
		return sets[0]
	}
	if i == len(sets) {
		return sets[len(sets)-1]
	}
	if sets[i].Width-want < want-sets[i-1].Width {
		return sets[i]
	}
	return sets[i-1]
}

// Names returns the sprite names with at least one loaded frame set.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sets))
	for name, sets := range r.sets {
		if len(sets) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Count returns the total number of loaded frame sets across all sprites.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, sets := range r.sets {
		n += len(sets)
	}
	return n
}
