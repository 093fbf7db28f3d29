package loader

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/lixenwraith/meadow/sprite"
)

// Source resolves a logical sprite path to its frames. Production sources
// read embedded or on-disk art; tests use in-memory maps.
type Source interface {
	LoadSprite(ctx context.Context, path string) (*sprite.Module, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, path string) (*sprite.Module, error)

func (f SourceFunc) LoadSprite(ctx context.Context, path string) (*sprite.Module, error) {
	return f(ctx, path)
}

// ResourceError wraps a failed sprite load with the path that failed. The
// loader never retries; the caller decides whether to continue with a
// partially populated scene.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Dedup wraps a source so concurrent requests for the same path share one
// underlying fetch. Completed results are not cached; the registry is the
// cache of record.
func Dedup(src Source) Source {
	return &dedupSource{src: src}
}

type dedupSource struct {
	src   Source
	group singleflight.Group
}

func (d *dedupSource) LoadSprite(ctx context.Context, path string) (*sprite.Module, error) {
	v, err, _ := d.group.Do(path, func() (any, error) {
		return d.src.LoadSprite(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	return v.(*sprite.Module), nil
}

// SpritePath builds the logical path of an ambient sprite at one width.
func SpritePath(base string, width int) string {
	return fmt.Sprintf("%s/%d", base, width)
}

// AnimPath builds the logical path of one character animation frame set.
func AnimPath(base, anim string, width int, dir sprite.Direction, directional bool) string {
	if directional {
		return fmt.Sprintf("%s/%s_%d_%s", base, anim, width, dir)
	}
	return fmt.Sprintf("%s/%s_%d", base, anim, width)
}
