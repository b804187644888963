package emit

import (
	"image/png"
	"io"

	"github.com/swnakamura/30daysOS/internal/bitfont"
	pimg "github.com/swnakamura/30daysOS/internal/bitfont/image"
)

func init() {
	Register("png", FontEmitter(WritePNG))
}

// WritePNG renders a preview sheet of the glyph table.
func WritePNG(font *bitfont.Font, w io.Writer, _ Options) error {
	return png.Encode(w, pimg.Render(font, nil))
}
