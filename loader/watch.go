package loader

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/meadow/sprite"
)

// Watch observes an on-disk art directory and inserts newly appearing frame
// sets into the registry. Files are named <sprite>_<width>.txt. Because the
// registry is append-only, a rewrite of an already-loaded width is ignored;
// only new widths land in a running scene. Development aid, not used in
// normal startup.
func Watch(dir string, reg *sprite.Registry) (func() error, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
					continue
				}
				if err := insertArtFile(ev.Name, reg); err != nil {
					log.Printf("watch: skipping %s: %v", ev.Name, err)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("watch: %v", err)
			}
		}
	}()

	return w.Close, nil
}

func insertArtFile(path string, reg *sprite.Registry) error {
	if filepath.Ext(path) != ".txt" {
		return nil
	}
	name, width, err := parseArtName(filepath.Base(path))
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	mod, err := sprite.ParseModule(string(data))
	if err != nil {
		return err
	}
	fs, err := sprite.NewFrameSet(width, mod.Frames)
	if err != nil {
		return err
	}
	reg.Insert(name, fs)
	return nil
}

func parseArtName(base string) (name string, width int, err error) {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	i := strings.LastIndexByte(stem, '_')
	if i < 1 {
		return "", 0, fmt.Errorf("art file %q not named <sprite>_<width>", base)
	}
	width, err = strconv.Atoi(stem[i+1:])
	if err != nil || width <= 0 {
		return "", 0, fmt.Errorf("art file %q has no width suffix", base)
	}
	return stem[:i], width, nil
}
