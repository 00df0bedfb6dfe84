package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestSearcher(t *testing.T, pattern string, spec TraversalSpec, opts SearchOptions, out *bytes.Buffer) *Searcher {
	t.Helper()
	m, err := NewMatcher(pattern, false, false)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	s, err := NewSearcher(m, spec, opts, out)
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}
	return s
}

func TestSearcher_FileRoot(t *testing.T) {
	p := writeFile(t, t.TempDir(), "f.txt", "i love rust\ngo is nice\nrust and go\n")

	var out bytes.Buffer
	s := newTestSearcher(t, "rust", TraversalSpec{}, SearchOptions{Color: true, MaxCount: -1, SkipBinary: true}, &out)
	found, err := s.Run([]string{p})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}
	if got := strings.Count(out.String(), "\n"); got != 2 {
		t.Fatalf("expected 2 records, got %d: %q", got, out.String())
	}
}

func TestSearcher_NoMatchAnywhere(t *testing.T) {
	p := writeFile(t, t.TempDir(), "f.txt", "i love rust\n")

	var out bytes.Buffer
	s := newTestSearcher(t, "zzz", TraversalSpec{}, SearchOptions{MaxCount: -1}, &out)
	found, err := s.Run([]string{p})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if found || out.Len() != 0 {
		t.Fatalf("expected found=false with no output, got %v %q", found, out.String())
	}
}

func TestSearcher_DirectoryWithoutRecursion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.txt", "rust\n")

	var out bytes.Buffer
	s := newTestSearcher(t, "rust", TraversalSpec{Recursive: false}, SearchOptions{MaxCount: -1}, &out)
	found, err := s.Run([]string{dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if found || out.Len() != 0 {
		t.Fatal("directory root without recursion visits nothing")
	}
}

func TestSearcher_MissingRootIsSkipped(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "f.txt", "rust\n")

	var out bytes.Buffer
	s := newTestSearcher(t, "rust", TraversalSpec{}, SearchOptions{MaxCount: -1}, &out)
	found, err := s.Run([]string{filepath.Join(dir, "nope"), p})
	if err != nil {
		t.Fatalf("missing root must not be fatal: %v", err)
	}
	if !found {
		t.Fatal("later roots still decide the result")
	}
}

func TestSearcher_BudgetSpansFilesAndRoots(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, dirA, "a.txt", "rust\nrust\nrust\n")
	writeFile(t, dirB, "b.txt", "rust\nrust\nrust\n")

	var out bytes.Buffer
	s := newTestSearcher(t, "rust", TraversalSpec{Recursive: true}, SearchOptions{MaxCount: 4, SkipBinary: true}, &out)
	found, err := s.Run([]string{dirA, dirB})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}
	if got := strings.Count(out.String(), "\n"); got != 4 {
		t.Fatalf("global cap of 4 must hold across roots, got %d lines", got)
	}
}

func TestSearcher_BudgetFewerThanCap(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.txt", "rust\nrust\n")

	var out bytes.Buffer
	s := newTestSearcher(t, "rust", TraversalSpec{}, SearchOptions{MaxCount: 10}, &out)
	if _, err := s.Run([]string{p}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.Count(out.String(), "\n"); got != 2 {
		t.Fatalf("fewer matches than cap emit all of them, got %d", got)
	}
}

func TestSearcher_MaxCountZero(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.txt", "rust\n")

	var out bytes.Buffer
	s := newTestSearcher(t, "rust", TraversalSpec{}, SearchOptions{MaxCount: 0}, &out)
	found, err := s.Run([]string{p})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if found || out.Len() != 0 {
		t.Fatal("max-count 0 starts exhausted and emits nothing")
	}
}

func TestSearcher_SkipsBinaryByDefault(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bin.dat"), []byte("rust\x00rust\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	s := newTestSearcher(t, "rust", TraversalSpec{Recursive: true}, SearchOptions{MaxCount: -1, SkipBinary: true}, &out)
	found, err := s.Run([]string{dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if found || out.Len() != 0 {
		t.Fatal("binary file must be skipped under default settings")
	}
	if s.Stats().BinarySkipped != 1 {
		t.Fatalf("expected 1 binary skip, got %+v", s.Stats())
	}

	out.Reset()
	s = newTestSearcher(t, "rust", TraversalSpec{Recursive: true}, SearchOptions{MaxCount: -1, SkipBinary: false}, &out)
	found, err = s.Run([]string{dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !found {
		t.Fatal("with binary inclusion the file must be searched")
	}
}

func TestSearcher_IndependentRunsDoNotInterfere(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.txt", "rust\nrust\n")

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		s := newTestSearcher(t, "rust", TraversalSpec{}, SearchOptions{MaxCount: 2}, &out)
		if _, err := s.Run([]string{p}); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if got := strings.Count(out.String(), "\n"); got != 2 {
			t.Fatalf("run %d saw a stale budget: %d lines", i, got)
		}
	}
}

func TestSearcher_UnreadableFileIsIsolated(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are advisory for root")
	}
	dir := t.TempDir()
	locked := writeFile(t, dir, "locked.txt", "rust\n")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "open.txt", "rust\n")

	var out bytes.Buffer
	s := newTestSearcher(t, "rust", TraversalSpec{Recursive: true}, SearchOptions{MaxCount: -1, SkipBinary: true}, &out)
	found, err := s.Run([]string{dir})
	if err != nil {
		t.Fatalf("per-file failure must not abort the run: %v", err)
	}
	if !found {
		t.Fatal("sibling file must still be searched")
	}
	if s.Stats().Errors == 0 {
		t.Fatal("expected the failure to be counted")
	}
}
