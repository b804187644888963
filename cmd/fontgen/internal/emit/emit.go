// Package emit turns a text font source into the artifacts the build
// consumes. The default "array" format streams straight from the decoder;
// the others decode the whole font first.
package emit

import (
	"fmt"
	"io"
	"sort"

	"github.com/swnakamura/30daysOS/internal/bitfont"
	"github.com/swnakamura/30daysOS/internal/bitfont/text"
)

const DefaultFormat = "array"

type Options struct {
	Text text.Options
	// Source names the input in generated headers.
	Source string
	// Package and Var name the generated Go declaration.
	Package string
	Var     string
}

type Emitter interface {
	Emit(r io.Reader, w io.Writer, opts Options) error
}

type EmitterFunc func(r io.Reader, w io.Writer, opts Options) error

func (f EmitterFunc) Emit(r io.Reader, w io.Writer, opts Options) error { return f(r, w, opts) }

// FontEmitter adapts a writer of a fully decoded font.
type FontEmitter func(font *bitfont.Font, w io.Writer, opts Options) error

func (f FontEmitter) Emit(r io.Reader, w io.Writer, opts Options) error {
	font, err := text.Decode(r, opts.Text)
	if err != nil {
		return err
	}
	return f(font, w, opts)
}

var registry = map[string]Emitter{}

// Register adds an emitter under the given format name; last wins.
func Register(format string, e Emitter) { registry[format] = e }

func Lookup(format string) (Emitter, error) {
	e, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (have %v)", format, Formats())
	}
	return e, nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
