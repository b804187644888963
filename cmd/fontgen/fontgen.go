// fontgen converts the hankaku text font into the glyph table the kernel
// embeds. The source is a sequence of blocks like
//
//	char 0x41
//	........
//	...**...
//	..*..*..
//	(16 rows in all)
//
// terminated by blank lines. Run with no arguments from src/font_data:
//
//	go run ../../cmd/fontgen
//
// and it reads ./hankaku.txt and writes ../../build/font.in, a nested
// array literal with one byte per glyph row. Settings can also come from a
// .env file or FONTGEN_* environment variables; see -h.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/swnakamura/30daysOS/cmd/fontgen/internal/emit"
	"github.com/swnakamura/30daysOS/internal/bitfont/text"
	"github.com/swnakamura/30daysOS/internal/fsutil"
	"github.com/swnakamura/30daysOS/internal/log"
)

// run converts cfg.Input into cfg.Output. The destination is only replaced
// once the whole conversion has succeeded.
func run(cfg Config, stdout io.Writer, lg *log.Logger) error {
	e, err := emit.Lookup(cfg.Format)
	if err != nil {
		return err
	}

	in, err := fsutil.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to open font source: %w", err)
	}
	defer in.Close()

	opts := emit.Options{
		Text:    text.Options{Strict: cfg.Strict},
		Source:  filepath.Base(cfg.Input),
		Package: cfg.Package,
		Var:     cfg.Var,
	}
	lg.Debug("converting",
		slog.String("input", cfg.Input),
		slog.String("output", cfg.Output),
		slog.String("format", cfg.Format),
		slog.Bool("strict", cfg.Strict))

	if cfg.Output == "-" {
		if err := e.Emit(in, stdout, opts); err != nil {
			return fmt.Errorf("%s: %w", cfg.Input, err)
		}
		return nil
	}

	out, err := fsutil.CreateAtomic(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	if err := e.Emit(in, out, opts); err != nil {
		return fmt.Errorf("%s: %w", cfg.Input, err)
	}
	if err := out.Commit(); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
	}

	lg.Info("wrote font table",
		slog.String("input", cfg.Input),
		slog.String("output", out.Path()),
		slog.String("format", cfg.Format),
		slog.Duration("elapsed", lg.Elapsed()))
	return nil
}

func main() {
	lookup, err := envLookup(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := parseConfig(os.Args[1:], lookup, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lg, err := log.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	err = run(cfg, os.Stdout, lg)
	if err != nil {
		lg.Error("conversion failed", slog.Any("error", err))
	}
	lg.Close()
	if err != nil {
		os.Exit(1)
	}
}
