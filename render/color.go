package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette base colors. Depth dimming blends sprite colors toward the sky so
// far planes read as hazy.
var (
	skyColor    = colorful.Color{R: 0.07, G: 0.09, B: 0.16}
	grassColor  = colorful.Color{R: 0.30, G: 0.65, B: 0.25}
	treeColor   = colorful.Color{R: 0.18, G: 0.48, B: 0.22}
	groundColor = colorful.Color{R: 0.45, G: 0.35, B: 0.20}
	bunnyColor  = colorful.Color{R: 0.90, G: 0.88, B: 0.82}
	textColor   = colorful.Color{R: 0.75, G: 0.75, B: 0.75}
)

// toTcell converts a colorful color to a tcell RGB color.
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// dimmed blends base toward the sky by t in [0, 1] and returns a style on
// the sky background. Blending in Lab keeps the haze perceptually even.
func dimmed(base colorful.Color, t float64) tcell.Style {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	c := base.BlendLab(skyColor, t)
	return tcell.StyleDefault.Foreground(toTcell(c)).Background(toTcell(skyColor))
}

// spriteBase maps a sprite name to its palette color.
func spriteBase(name string) colorful.Color {
	switch name {
	case "grass":
		return grassColor
	default:
		return treeColor
	}
}
