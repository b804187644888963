package image

import (
	"image"
	"image/color"

	"github.com/swnakamura/30daysOS/internal/bitfont"
)

const (
	paperIndex = 0
	inkIndex   = 1
)

type Options struct {
	// Columns is the number of glyphs per sheet row; 16 if zero.
	Columns int
	// Gutter is the spacing in pixels between cells; 1 if zero, none if
	// negative.
	Gutter int
	Ink    color.Color
	Paper  color.Color
}

// Render draws every glyph of the font onto a sheet, left to right and
// top to bottom in table order.
func Render(font *bitfont.Font, options *Options) *image.Paletted {
	cols, gutter := 16, 1
	var ink, paper color.Color = color.Black, color.White
	if options != nil {
		if options.Columns > 0 {
			cols = options.Columns
		}
		if options.Gutter > 0 {
			gutter = options.Gutter
		} else if options.Gutter < 0 {
			gutter = 0
		}
		if options.Ink != nil {
			ink = options.Ink
		}
		if options.Paper != nil {
			paper = options.Paper
		}
	}

	w, h := bitfont.Width, font.Height()
	n := len(font.Glyphs)
	if n < cols {
		cols = n
	}
	rows := 0
	if cols > 0 {
		rows = (n + cols - 1) / cols
	}

	bounds := image.Rect(0, 0,
		gutter+cols*(w+gutter),
		gutter+rows*(h+gutter))
	img := image.NewPaletted(bounds, color.Palette{paper, ink})

	for i, g := range font.Glyphs {
		x0 := gutter + (i%cols)*(w+gutter)
		y0 := gutter + (i/cols)*(h+gutter)
		for y, row := range g.Rows {
			for x := 0; x < w; x++ {
				if row&(0x80>>x) != 0 {
					img.SetColorIndex(x0+x, y0+y, inkIndex)
				}
			}
		}
	}
	return img
}
