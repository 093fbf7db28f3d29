package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell is one character cell of the composited frame.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Buffer is the w×h grid a frame is composited into before flushing to the
// output surface.
type Buffer struct {
	width  int
	height int
	cells  [][]Cell
}

// NewBuffer creates a buffer filled with spaces.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height.
func (b *Buffer) Height() int { return b.height }

// Resize reallocates the grid. Content is not preserved; the compositor
// repaints every cell each frame anyway.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	b.width, b.height = width, height
	b.cells = cells
	b.Fill(' ', tcell.StyleDefault)
}

// Fill sets every cell.
func (b *Buffer) Fill(r rune, style tcell.Style) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.cells[y][x] = Cell{Rune: r, Style: style}
		}
	}
}

// Set writes one cell, ignoring out-of-bounds positions.
func (b *Buffer) Set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.cells[y][x] = Cell{Rune: r, Style: style}
}

// Get reads one cell. Out-of-bounds reads return a space.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y][x]
}

// DrawBlock paints a multi-line text block with its top-left corner at
// (x, y). Spaces are transparent so sprites composite over what is already
// painted.
func (b *Buffer) DrawBlock(x, y int, block string, style tcell.Style) {
	for dy, line := range strings.Split(block, "\n") {
		dx := 0
		for _, r := range line {
			if r != ' ' {
				b.Set(x+dx, y+dy, r, style)
			}
			dx++
		}
	}
}

// DrawString paints a single opaque line, spaces included.
func (b *Buffer) DrawString(x, y int, s string, style tcell.Style) {
	dx := 0
	for _, r := range s {
		b.Set(x+dx, y, r, style)
		dx++
	}
}

// Surface is the output the buffer flushes to. tcell.Screen satisfies it;
// tests use a recording fake.
type Surface interface {
	Size() (int, int)
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	Show()
}

// Flush writes the whole buffer to the surface and presents it.
func (b *Buffer) Flush(s Surface) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y][x]
			s.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
	s.Show()
}

// String renders the buffer's runes as plain text, for tests and debugging.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			sb.WriteRune(b.cells[y][x].Rune)
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
