package bitfont

// Width is the pixel width of every glyph; one row packs into one byte.
const Width = 8

// Glyph is one character cell. Rows are stored top to bottom with the
// leftmost pixel in the MSB.
type Glyph struct {
	Label string
	Rows  []uint8
}

// Font is an ordered glyph table. Glyphs are kept in source order since
// the position of a glyph is its character code downstream.
type Font struct {
	Glyphs []Glyph
}

// Height returns the tallest glyph's row count.
func (f *Font) Height() int {
	h := 0
	for _, g := range f.Glyphs {
		if len(g.Rows) > h {
			h = len(g.Rows)
		}
	}
	return h
}
