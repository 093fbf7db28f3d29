package assets

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/meadow/sprite"
)

//go:embed art config
var content embed.FS

// DefaultConfigPath is the embedded scene configuration.
const DefaultConfigPath = "config/meadow.json"

// DefaultConfig returns the embedded scene configuration document.
func DefaultConfig() ([]byte, error) {
	return content.ReadFile(DefaultConfigPath)
}

// Embedded serves sprite art compiled into the binary. A logical path like
// "art/grass/20" resolves to the embedded file "art/grass/20.txt".
type Embedded struct{}

func (Embedded) LoadSprite(ctx context.Context, path string) (*sprite.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := content.ReadFile(path + ".txt")
	if err != nil {
		return nil, fmt.Errorf("embedded sprite %q: %w", path, err)
	}
	return sprite.ParseModule(string(data))
}

// Dir serves sprite art from an on-disk directory, mirroring the embedded
// layout. Used with -art for iterating on art without rebuilding.
type Dir struct {
	Root string
}

func (d Dir) LoadSprite(ctx context.Context, path string) (*sprite.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(d.Root, filepath.FromSlash(path)+".txt"))
	if err != nil {
		return nil, fmt.Errorf("sprite file %q: %w", path, err)
	}
	return sprite.ParseModule(string(data))
}
