// Package text decodes the plaintext glyph format used for the hankaku
// font:
//
//	char 0x41
//	........
//	...**...
//	..*..*..
//	...
//
// Each block opens with a line starting with "char", holds one line per
// pixel row ('*' for ink, anything else for paper) and is closed by a blank
// line.
package text

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/swnakamura/30daysOS/internal/bitfont"
)

const (
	HeaderPrefix = "char"
	SetMarker    = '*'
)

var (
	ErrMalformedRowWidth = errors.New("malformed row width")
	ErrRowOutsideGlyph   = errors.New("row outside of a glyph block")
	ErrNestedGlyph       = errors.New("glyph header inside an open glyph block")
	ErrStrayTerminator   = errors.New("blank line outside of a glyph block")
	ErrUnterminatedGlyph = errors.New("glyph block not terminated by a blank line")
)

// LineError reports the 1-based input line a strict-mode check failed on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// RowWidthError is a row that is not bitfont.Width pixels wide.
type RowWidthError struct {
	Width int
}

func (e *RowWidthError) Error() string {
	return fmt.Sprintf("%v: got %d pixels, want %d", ErrMalformedRowWidth, e.Width, bitfont.Width)
}

func (e *RowWidthError) Unwrap() error { return ErrMalformedRowWidth }

type State int

const (
	OutsideGlyph State = iota
	InsideGlyph
)

func (s State) String() string {
	switch s {
	case OutsideGlyph:
		return "OutsideGlyph"
	case InsideGlyph:
		return "InsideGlyph"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options controls how forgiving the decoder is.
type Options struct {
	// Strict rejects rows that are not exactly 8 pixels wide and blocks
	// that are out of order. When false, every line is passed through
	// regardless of state.
	Strict bool
}

// Handler receives one call per decoded line, in input order.
type Handler interface {
	BeginGlyph(label string) error
	Row(value uint8) error
	EndGlyph() error
}

// EncodeRow packs a row of pixels into a byte, leftmost pixel in the MSB.
// The positional weight halves after every character, so anything past
// the eighth character contributes nothing.
func EncodeRow(row string) uint8 {
	var v uint
	weight := uint(128)
	for _, c := range row {
		if c == SetMarker {
			v += weight
		}
		weight /= 2
	}
	return uint8(v)
}

// Machine is the two-state line classifier. Feed it lines one at a time
// and call Finish at end of input.
type Machine struct {
	h     Handler
	opts  Options
	state State
	line  int
}

func NewMachine(h Handler, opts Options) *Machine {
	return &Machine{h: h, opts: opts}
}

func (m *Machine) State() State { return m.state }

func (m *Machine) fail(err error) error {
	return &LineError{Line: m.line, Err: err}
}

func (m *Machine) Feed(line string) error {
	m.line++
	line = strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(line, HeaderPrefix):
		if m.opts.Strict && m.state == InsideGlyph {
			return m.fail(ErrNestedGlyph)
		}
		m.state = InsideGlyph
		return m.h.BeginGlyph(strings.TrimSpace(line[len(HeaderPrefix):]))

	case line == "":
		if m.opts.Strict && m.state == OutsideGlyph {
			return m.fail(ErrStrayTerminator)
		}
		m.state = OutsideGlyph
		return m.h.EndGlyph()

	default:
		if m.opts.Strict {
			if m.state == OutsideGlyph {
				return m.fail(ErrRowOutsideGlyph)
			}
			if n := utf8.RuneCountInString(line); n != bitfont.Width {
				return m.fail(&RowWidthError{Width: n})
			}
		}
		return m.h.Row(EncodeRow(line))
	}
}

func (m *Machine) Finish() error {
	if m.opts.Strict && m.state == InsideGlyph {
		return m.fail(ErrUnterminatedGlyph)
	}
	return nil
}

// scanLines is bufio.ScanLines that also accepts a bare '\r' as a line
// break, so old Mac line endings split the same as "\n" and "\r\n".
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// need one more byte to tell "\r" from "\r\n"
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Scan runs every line of r through a Machine feeding h. Lines may be of
// any length.
func Scan(r io.Reader, h Handler, opts Options) error {
	m := NewMachine(h, opts)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	scanner.Split(scanLines)
	for scanner.Scan() {
		if err := m.Feed(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return m.Finish()
}

type collector struct {
	font bitfont.Font
	open bool
}

func (c *collector) BeginGlyph(label string) error {
	c.font.Glyphs = append(c.font.Glyphs, bitfont.Glyph{Label: label})
	c.open = true
	return nil
}

func (c *collector) Row(value uint8) error {
	if !c.open {
		// stray row in lenient mode; give it a glyph of its own
		c.font.Glyphs = append(c.font.Glyphs, bitfont.Glyph{})
		c.open = true
	}
	g := &c.font.Glyphs[len(c.font.Glyphs)-1]
	g.Rows = append(g.Rows, value)
	return nil
}

func (c *collector) EndGlyph() error {
	c.open = false
	return nil
}

// Decode reads a whole font into memory.
func Decode(r io.Reader, opts Options) (*bitfont.Font, error) {
	var c collector
	if err := Scan(r, &c, opts); err != nil {
		return nil, err
	}
	return &c.font, nil
}
