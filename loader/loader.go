package loader

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/meadow/config"
	"github.com/lixenwraith/meadow/sprite"
)

// Phase names in load order.
const (
	PhaseGround    = "ground"
	PhaseGrass     = "grass"
	PhaseCharacter = "character"
	PhaseTrees     = "trees"
)

// Progress is a snapshot of loading state, emitted to the caller's sink.
// Current is monotonically increasing and never exceeds Total for a phase.
type Progress struct {
	Phase   string
	Current int
	Total   int
	Sprite  string
	Width   int
}

// ProgressFunc receives progress snapshots. May be nil.
type ProgressFunc func(Progress)

// CharacterFunc receives the assembled character frames once the character
// phase completes, before the tree phase begins.
type CharacterFunc func(sprite.Bundle)

// Run executes the progressive load sequence: ground (free), grass,
// character, then background trees. Each loaded frame set is inserted into
// reg as soon as it resolves, so rendering can start before Run returns.
// The first failed resource aborts the sequence and is returned; everything
// inserted up to that point stays in the registry.
func Run(ctx context.Context, doc *config.Document, src Source, reg *sprite.Registry,
	onProgress ProgressFunc, onCharacter CharacterFunc) error {

	if onProgress == nil {
		onProgress = func(Progress) {}
	}
	src = Dedup(src)

	// Phase 1: ground is drawn from a constant pattern, nothing to fetch.
	onProgress(Progress{Phase: PhaseGround, Current: 1, Total: 1})

	if err := loadGrass(ctx, doc, src, reg, onProgress); err != nil {
		return err
	}
	if err := loadCharacter(ctx, doc, src, onCharacter); err != nil {
		return err
	}
	return loadTrees(ctx, doc, src, reg, onProgress)
}

// loadStatic fetches one ambient frame set and stamps it with its declared
// width.
func loadStatic(ctx context.Context, src Source, base string, width int) (*sprite.FrameSet, error) {
	path := SpritePath(base, width)
	mod, err := src.LoadSprite(ctx, path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	fs, err := sprite.NewFrameSet(width, mod.Frames)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	return fs, nil
}

func loadGrass(ctx context.Context, doc *config.Document, src Source, reg *sprite.Registry, onProgress ProgressFunc) error {
	defs := doc.GrassSprites()
	total := 0
	for _, d := range defs {
		total += len(d.Widths)
	}
	current := 0
	for _, d := range defs {
		for _, w := range d.Widths {
			fs, err := loadStatic(ctx, src, d.Path, w)
			if err != nil {
				return err
			}
			reg.Insert(d.Name, fs)
			current++
			onProgress(Progress{Phase: PhaseGrass, Current: current, Total: total, Sprite: d.Name, Width: w})
		}
	}
	return nil
}

// loadCharacter fans out over every animation/width/direction combination,
// joins, and hands the assembled bundle to onCharacter. The callback fires
// before the tree phase starts so the character becomes interactive while
// background elements are still loading.
func loadCharacter(ctx context.Context, doc *config.Document, src Source, onCharacter CharacterFunc) error {
	bundle := make(sprite.Bundle)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, anim := range doc.Character.Animations {
		for _, w := range anim.Widths {
			dirs := []sprite.Direction{sprite.Right}
			if anim.Directional {
				dirs = []sprite.Direction{sprite.Left, sprite.Right}
			}
			for _, dir := range dirs {
				g.Go(func() error {
					path := AnimPath(doc.Character.Path, anim.Name, w, dir, anim.Directional)
					mod, err := src.LoadSprite(ctx, path)
					if err != nil {
						return &ResourceError{Path: path, Err: err}
					}
					fs, err := sprite.NewFrameSet(w, mod.Frames)
					if err != nil {
						return &ResourceError{Path: path, Err: err}
					}
					key := sprite.Key{Width: w, Direction: dir, Directional: anim.Directional}
					mu.Lock()
					bundle.Add(anim.Name, key, fs)
					mu.Unlock()
					return nil
				})
			}
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if onCharacter != nil {
		onCharacter(bundle)
	}
	return nil
}

// treeStep is one pending fetch in the interleaved tree phase.
type treeStep struct {
	def   config.SpriteDef
	width int
}

// interleaveTrees orders tree fetches rank-major: every type's largest width
// first, then every type's second largest, and so on. Within a rank, config
// order breaks ties.
func interleaveTrees(defs []config.SpriteDef) []treeStep {
	byRank := make([][]int, len(defs))
	maxRank := 0
	for i, d := range defs {
		ws := make([]int, len(d.Widths))
		copy(ws, d.Widths)
		sort.Sort(sort.Reverse(sort.IntSlice(ws)))
		byRank[i] = ws
		if len(ws) > maxRank {
			maxRank = len(ws)
		}
	}
	var steps []treeStep
	for rank := 0; rank < maxRank; rank++ {
		for i, d := range defs {
			if rank < len(byRank[i]) {
				steps = append(steps, treeStep{def: d, width: byRank[i][rank]})
			}
		}
	}
	return steps
}

func loadTrees(ctx context.Context, doc *config.Document, src Source, reg *sprite.Registry, onProgress ProgressFunc) error {
	steps := interleaveTrees(doc.TreeSprites())
	for i, step := range steps {
		fs, err := loadStatic(ctx, src, step.def.Path, step.width)
		if err != nil {
			return err
		}
		reg.Insert(step.def.Name, fs)
		onProgress(Progress{
			Phase:   PhaseTrees,
			Current: i + 1,
			Total:   len(steps),
			Sprite:  step.def.Name,
			Width:   step.width,
		})
	}
	return nil
}
