package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/swnakamura/30daysOS/cmd/fontgen/internal/emit"
)

// Paths are relative to src/font_data, where the build runs fontgen.
const (
	defaultInput  = "./hankaku.txt"
	defaultOutput = "../../build/font.in"
)

type Config struct {
	Input    string
	Output   string
	Format   string
	Package  string
	Var      string
	Strict   bool
	LogLevel string
	LogDir   string
}

func DefaultConfig() Config {
	return Config{
		Input:    defaultInput,
		Output:   defaultOutput,
		Format:   emit.DefaultFormat,
		Package:  "font",
		Var:      "Data",
		LogLevel: "info",
	}
}

type lookupFunc func(key string) (string, bool)

// envLookup resolves variables from the process environment, falling back
// to the given dotenv file. A missing dotenv file is not an error.
func envLookup(dotenv string) (lookupFunc, error) {
	vars, err := godotenv.Read(dotenv)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", dotenv, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

func (c *Config) applyEnv(lookup lookupFunc) error {
	for key, dst := range map[string]*string{
		"FONTGEN_INPUT":     &c.Input,
		"FONTGEN_OUTPUT":    &c.Output,
		"FONTGEN_FORMAT":    &c.Format,
		"FONTGEN_PACKAGE":   &c.Package,
		"FONTGEN_VAR":       &c.Var,
		"FONTGEN_LOG_LEVEL": &c.LogLevel,
		"FONTGEN_LOG_DIR":   &c.LogDir,
	} {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	if v, ok := lookup("FONTGEN_STRICT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FONTGEN_STRICT: %w", err)
		}
		c.Strict = b
	}
	return nil
}

// parseConfig layers defaults, the environment and command line flags, in
// increasing order of precedence.
func parseConfig(args []string, lookup lookupFunc, stderr io.Writer) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}

	flags := flag.NewFlagSet("fontgen", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfg.Input, "in", cfg.Input, "text font source (.zst is decompressed)")
	flags.StringVar(&cfg.Output, "o", cfg.Output, "output file, or - for stdout")
	flags.StringVar(&cfg.Format, "format", cfg.Format, fmt.Sprintf("output format %v", emit.Formats()))
	flags.StringVar(&cfg.Package, "pkg", cfg.Package, "package name for -format go")
	flags.StringVar(&cfg.Var, "var", cfg.Var, "variable name for -format go")
	flags.BoolVar(&cfg.Strict, "strict", cfg.Strict, "reject rows that are not 8 pixels wide and unbalanced blocks")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "also write a rotating log file to this directory")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	if flags.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}
	if _, err := emit.Lookup(cfg.Format); err != nil {
		return cfg, err
	}
	return cfg, nil
}
