package emit

import (
	"fmt"
	"go/format"
	"io"
	"strings"

	"github.com/swnakamura/30daysOS/internal/bitfont"
)

func init() {
	Register("go", FontEmitter(GenerateGo))
}

const goTemplate = `// Code generated by fontgen from %s; DO NOT EDIT.

package %s

// %s holds %d glyphs of %d rows each, one byte per row, leftmost pixel in
// the most significant bit.
var %s = [%d][%d]byte{
%s}
`

// GenerateGo writes the font as a gofmt'ed Go source file.
func GenerateGo(font *bitfont.Font, w io.Writer, opts Options) error {
	pkg, name, src := opts.Package, opts.Var, opts.Source
	if pkg == "" {
		pkg = "font"
	}
	if name == "" {
		name = "Data"
	}
	if src == "" {
		src = "stdin"
	}

	var body strings.Builder
	for _, g := range font.Glyphs {
		body.WriteString("\t{")
		for i, row := range g.Rows {
			if i > 0 {
				body.WriteString(", ")
			}
			fmt.Fprintf(&body, "0x%02x", row)
		}
		body.WriteString("},")
		if g.Label != "" {
			body.WriteString(" // " + g.Label)
		}
		body.WriteString("\n")
	}

	n, h := len(font.Glyphs), font.Height()
	code := fmt.Sprintf(goTemplate, src, pkg, name, n, h, name, n, h, body.String())
	bcode, err := format.Source([]byte(code))
	if err != nil {
		return fmt.Errorf("formatting generated source: %w", err)
	}
	_, err = w.Write(bcode)
	return err
}
