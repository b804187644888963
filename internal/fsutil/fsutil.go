package fsutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// Open opens path for reading; if it's zstd compressed, the returned
// reader handles decompression transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) != ".zst" {
		return f, nil
	}

	zr, err := zstd.NewReader(bufio.NewReader(f), zstd.WithDecoderConcurrency(0))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return readCloser{
		Reader: zr,
		close: func() error {
			zr.Close()
			return f.Close()
		},
	}, nil
}

// AtomicFile is written next to its destination and only replaces it on
// Commit. Close without Commit removes the temporary file. A replaced
// destination keeps its permissions; a new one is created 0644.
type AtomicFile struct {
	*os.File
	path string
	done bool
}

func CreateAtomic(path string) (*AtomicFile, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp*")
	if err != nil {
		return nil, err
	}
	return &AtomicFile{File: f, path: path}, nil
}

// Path returns the final destination.
func (a *AtomicFile) Path() string { return a.path }

func (a *AtomicFile) Commit() error {
	if a.done {
		return fmt.Errorf("%s: already closed", a.path)
	}
	a.done = true
	if err := a.File.Sync(); err != nil {
		a.File.Close()
		os.Remove(a.File.Name())
		return err
	}
	if err := a.File.Close(); err != nil {
		os.Remove(a.File.Name())
		return err
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(a.path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(a.File.Name(), mode); err != nil {
		os.Remove(a.File.Name())
		return err
	}
	if err := os.Rename(a.File.Name(), a.path); err != nil {
		os.Remove(a.File.Name())
		return err
	}
	return nil
}

// Close discards the file unless it has been committed. It is safe to
// defer Close and call Commit on the success path.
func (a *AtomicFile) Close() error {
	if a.done {
		return nil
	}
	a.done = true
	err := a.File.Close()
	if rerr := os.Remove(a.File.Name()); err == nil {
		err = rerr
	}
	return err
}
