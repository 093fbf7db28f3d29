package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the scene configuration, consumed once at startup.
type Document struct {
	Settings  Settings     `json:"settings" yaml:"settings"`
	Sprites   []SpriteDef  `json:"sprites" yaml:"sprites"`
	Character CharacterDef `json:"character" yaml:"character"`
	Layers    []LayerDef   `json:"layers" yaml:"layers"`
	MinLayer  int          `json:"minLayer" yaml:"minLayer"`
	MaxLayer  int          `json:"maxLayer" yaml:"maxLayer"`
	Audio     AudioDef     `json:"audio" yaml:"audio"`
}

// Settings holds the global tuning knobs.
type Settings struct {
	FrameRate   int     `json:"frameRate" yaml:"frameRate"`     // target ticks per second
	ScrollSpeed float64 `json:"scrollSpeed" yaml:"scrollSpeed"` // cells per second
	JumpSpeed   float64 `json:"jumpSpeed" yaml:"jumpSpeed"`     // cells per second at takeoff
	HopSpeed    float64 `json:"hopSpeed" yaml:"hopSpeed"`       // depth units per second
}

// SpriteDef describes one ambient sprite and the widths it ships in.
// Type selects its loading phase: "grass" or "tree".
type SpriteDef struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Path   string `json:"path" yaml:"path"`
	Widths []int  `json:"widths" yaml:"widths"`
}

// CharacterDef describes the controllable character's animation set.
type CharacterDef struct {
	Name       string         `json:"name" yaml:"name"`
	Path       string         `json:"path" yaml:"path"`
	Width      int            `json:"width" yaml:"width"`
	Animations []AnimationDef `json:"animations" yaml:"animations"`
}

// AnimationDef describes one movement's frame sets. Directional animations
// ship separate left/right variants per width.
type AnimationDef struct {
	Name        string `json:"name" yaml:"name"`
	Directional bool   `json:"directional" yaml:"directional"`
	Widths      []int  `json:"widths" yaml:"widths"`
}

// LayerDef describes a hand-placed layer. Auto depth layers are generated
// from MinLayer/MaxLayer instead and do not appear here.
type LayerDef struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Parallax float64  `json:"parallax" yaml:"parallax"`
	Sprites  []string `json:"sprites" yaml:"sprites"`
}

// AudioDef lists the ambient track names in play order.
type AudioDef struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Tracks  []string `json:"tracks" yaml:"tracks"`
}

// ValidationError reports every problem found in a document. It is fatal:
// startup aborts before any rendering begins.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

// Load reads and validates a configuration file. Format is chosen by
// extension: .yaml/.yml decode as YAML, anything else as JSON.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Parse(data, FormatYAML)
	default:
		return Parse(data, FormatJSON)
	}
}

// Format selects the decoder used by Parse.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Parse decodes and validates a configuration document.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	doc.applyDefaults()
	return &doc, nil
}

func (d *Document) validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if d.Settings.FrameRate < 0 {
		add("settings.frameRate must not be negative")
	}
	if d.MinLayer > d.MaxLayer {
		add("minLayer %d exceeds maxLayer %d", d.MinLayer, d.MaxLayer)
	}

	names := make(map[string]bool)
	for i, s := range d.Sprites {
		if s.Name == "" {
			add("sprites[%d]: missing name", i)
			continue
		}
		if names[s.Name] {
			add("sprites[%d]: duplicate name %q", i, s.Name)
		}
		names[s.Name] = true
		if s.Type != "grass" && s.Type != "tree" {
			add("sprite %q: unknown type %q", s.Name, s.Type)
		}
		if s.Path == "" {
			add("sprite %q: missing path", s.Name)
		}
		if len(s.Widths) == 0 {
			add("sprite %q: no widths", s.Name)
		}
		seen := make(map[int]bool)
		for _, w := range s.Widths {
			if w <= 0 {
				add("sprite %q: width %d not positive", s.Name, w)
			}
			if seen[w] {
				add("sprite %q: duplicate width %d", s.Name, w)
			}
			seen[w] = true
		}
	}

	if d.Character.Name == "" {
		add("character: missing name")
	}
	if d.Character.Path == "" {
		add("character: missing path")
	}
	if len(d.Character.Animations) == 0 {
		add("character: no animations")
	}
	for _, a := range d.Character.Animations {
		if a.Name == "" {
			add("character animation: missing name")
		}
		if len(a.Widths) == 0 {
			add("character animation %q: no widths", a.Name)
		}
	}

	for i, l := range d.Layers {
		if l.Name == "" {
			add("layers[%d]: missing name", i)
		}
		for _, s := range l.Sprites {
			if !names[s] {
				add("layer %q: unknown sprite %q", l.Name, s)
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (d *Document) applyDefaults() {
	if d.Settings.FrameRate == 0 {
		d.Settings.FrameRate = 30
	}
	if d.Settings.ScrollSpeed == 0 {
		d.Settings.ScrollSpeed = 18
	}
	if d.Settings.JumpSpeed == 0 {
		d.Settings.JumpSpeed = 22
	}
	if d.Settings.HopSpeed == 0 {
		d.Settings.HopSpeed = 9
	}
	if d.Character.Width == 0 {
		d.Character.Width = 10
	}
}

// GrassSprites returns the grass-phase sprite definitions in config order.
func (d *Document) GrassSprites() []SpriteDef {
	return d.spritesOfType("grass")
}

// TreeSprites returns the tree-phase sprite definitions in config order.
func (d *Document) TreeSprites() []SpriteDef {
	return d.spritesOfType("tree")
}

func (d *Document) spritesOfType(t string) []SpriteDef {
	var out []SpriteDef
	for _, s := range d.Sprites {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}
