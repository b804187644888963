package emit

import (
	"bufio"
	"io"

	"github.com/swnakamura/30daysOS/internal/bitfont"
)

func init() {
	Register("bin", FontEmitter(WriteBinary))
}

// WriteBinary writes the rows of every glyph back to back. Short glyphs
// are padded with empty rows so glyph i always starts at i*Height().
func WriteBinary(font *bitfont.Font, w io.Writer, _ Options) error {
	bw := bufio.NewWriter(w)
	h := font.Height()
	for _, g := range font.Glyphs {
		if _, err := bw.Write(g.Rows); err != nil {
			return err
		}
		for i := len(g.Rows); i < h; i++ {
			if err := bw.WriteByte(0); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
