package sprite

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FrameSet holds the ordered frames of one sprite at one width.
// Immutable once constructed.
type FrameSet struct {
	Width  int
	Frames []string
}

// NewFrameSet validates and constructs a FrameSet.
func NewFrameSet(width int, frames []string) (*FrameSet, error) {
	if width <= 0 {
		return nil, fmt.Errorf("frame set width must be positive, got %d", width)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("frame set needs at least one frame")
	}
	return &FrameSet{Width: width, Frames: frames}, nil
}

// Direction is the facing of a directional animation.
type Direction int

const (
	Right Direction = iota
	Left
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Key identifies one frame set inside an animation bundle: a width plus an
// optional facing. Non-directional animations use Directional=false.
type Key struct {
	Width       int
	Direction   Direction
	Directional bool
}

// Module is the raw shape a resource source returns for one loaded sprite:
// an ordered sequence of text-block frames.
type Module struct {
	Frames []string
}

// FrameDelimiter separates frames inside a raw art blob.
const FrameDelimiter = "\n---\n"

// ParseModule splits a raw art blob into frames. Frames are separated by a
// line containing only "---". Trailing blank frames are dropped.
func ParseModule(raw string) (*Module, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	parts := strings.Split(raw, FrameDelimiter)
	frames := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "\n")
		if p == "" {
			continue
		}
		frames = append(frames, p)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("art blob contains no frames")
	}
	return &Module{Frames: frames}, nil
}

// MeasureWidth returns the widest line across all frames, in terminal cells.
func MeasureWidth(frames []string) int {
	max := 0
	for _, f := range frames {
		for _, line := range strings.Split(f, "\n") {
			if w := runewidth.StringWidth(line); w > max {
				max = w
			}
		}
	}
	return max
}

// MeasureHeight returns the tallest frame, in lines.
func MeasureHeight(frames []string) int {
	max := 0
	for _, f := range frames {
		if n := strings.Count(f, "\n") + 1; n > max {
			max = n
		}
	}
	return max
}
