package emit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/swnakamura/30daysOS/internal/bitfont"
)

func init() {
	Register("dump", FontEmitter(Dump))
}

func bitsToString(b uint8) string {
	var s [bitfont.Width]byte
	for i := range s {
		if b&(0x80>>i) != 0 {
			s[i] = 'X'
		} else {
			s[i] = ' '
		}
	}
	return string(s[:])
}

// Dump prints one line per row so the parse can be checked by eye.
func Dump(font *bitfont.Font, w io.Writer, _ Options) error {
	bw := bufio.NewWriter(w)
	for i, g := range font.Glyphs {
		label := g.Label
		if label == "" {
			label = strconv.Itoa(i)
		}
		for _, row := range g.Rows {
			fmt.Fprintf(bw, "%s  [%s]\n", label, bitsToString(row))
		}
	}
	return bw.Flush()
}
