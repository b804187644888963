package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestOpenPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hankaku.txt")
	if err := os.WriteFile(path, []byte("char 0x00\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "char 0x00\n" {
		t.Errorf("unexpected contents %q", b)
	}
}

func TestOpenZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hankaku.txt.zst")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write([]byte("char 0x41\n*.......\n\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "char 0x41\n*.......\n\n" {
		t.Errorf("unexpected contents %q", b)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.txt")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestAtomicCommit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font.in")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := CreateAtomic(path)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if _, err := a.WriteString("new"); err != nil {
		t.Fatal(err)
	}

	// destination is untouched until commit
	if b, _ := os.ReadFile(path); string(b) != "old" {
		t.Errorf("destination changed before commit: %q", b)
	}
	if err := a.Commit(); err != nil {
		t.Fatal(err)
	}
	if b, _ := os.ReadFile(path); string(b) != "new" {
		t.Errorf("unexpected contents after commit: %q", b)
	}
	assertOnlyFile(t, dir, "font.in")
}

func TestAtomicAbort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font.in")

	a, err := CreateAtomic(path)
	if err != nil {
		t.Fatal(err)
	}
	a.WriteString("partial")
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("aborted write should not create the destination")
	}
	assertOnlyFile(t, dir)
}

func TestAtomicMissingDir(t *testing.T) {
	if _, err := CreateAtomic(filepath.Join(t.TempDir(), "build", "font.in")); err == nil {
		t.Error("expected an error for a missing destination directory")
	}
}

func assertOnlyFile(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(names) {
		t.Fatalf("expected %d entries in %s, got %d", len(names), dir, len(entries))
	}
	for i, e := range entries {
		if e.Name() != names[i] {
			t.Errorf("unexpected entry %s", e.Name())
		}
	}
}

func TestAtomicCommitMode(t *testing.T) {
	dir := t.TempDir()

	existing := filepath.Join(dir, "font.in")
	if err := os.WriteFile(existing, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(existing, 0o600); err != nil {
		t.Fatal(err)
	}
	fresh := filepath.Join(dir, "font2.in")

	for path, want := range map[string]os.FileMode{existing: 0o600, fresh: 0o644} {
		a, err := CreateAtomic(path)
		if err != nil {
			t.Fatal(err)
		}
		a.WriteString("new")
		if err := a.Commit(); err != nil {
			t.Fatal(err)
		}
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if got := fi.Mode().Perm(); got != want {
			t.Errorf("%s: expected mode %v got %v", filepath.Base(path), want, got)
		}
	}
}
