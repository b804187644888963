package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/swnakamura/30daysOS/internal/bitfont/text"
)

func init() {
	Register("array", EmitterFunc(func(r io.Reader, w io.Writer, opts Options) error {
		return Convert(r, w, opts.Text)
	}))
}

// ArrayWriter writes decoder events as a nested array literal:
//
//	[[0x0,0x18,...,],
//	[0x0,0x24,...,],
//	]
//
// Fragments are written in event order with no reformatting.
type ArrayWriter struct {
	w *bufio.Writer
}

var _ text.Handler = (*ArrayWriter)(nil)

func NewArrayWriter(w io.Writer) *ArrayWriter {
	return &ArrayWriter{w: bufio.NewWriter(w)}
}

// Start writes the opening bracket of the glyph table.
func (a *ArrayWriter) Start() error {
	_, err := a.w.WriteString("[")
	return err
}

func (a *ArrayWriter) BeginGlyph(string) error {
	_, err := a.w.WriteString("[")
	return err
}

func (a *ArrayWriter) Row(value uint8) error {
	_, err := fmt.Fprintf(a.w, "0x%x,", value)
	return err
}

func (a *ArrayWriter) EndGlyph() error {
	_, err := a.w.WriteString("],\n")
	return err
}

// Finish closes the glyph table and flushes.
func (a *ArrayWriter) Finish() error {
	if _, err := a.w.WriteString("]"); err != nil {
		return err
	}
	return a.w.Flush()
}

// Convert streams the font source in r to w as an array literal.
func Convert(r io.Reader, w io.Writer, opts text.Options) error {
	aw := NewArrayWriter(w)
	if err := aw.Start(); err != nil {
		return err
	}
	if err := text.Scan(r, aw, opts); err != nil {
		return err
	}
	return aw.Finish()
}

// ConvertLines is Convert over lines already in memory.
func ConvertLines(lines []string, opts text.Options) (string, error) {
	var sb strings.Builder
	aw := NewArrayWriter(&sb)
	if err := aw.Start(); err != nil {
		return "", err
	}
	m := text.NewMachine(aw, opts)
	for _, line := range lines {
		if err := m.Feed(line); err != nil {
			return "", err
		}
	}
	if err := m.Finish(); err != nil {
		return "", err
	}
	if err := aw.Finish(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
