package source

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLinesIndexStableUntilCompact(t *testing.T) {
	b := NewLines([]string{"a", "b", "c", "d"})
	b.Set(1, "")
	b.Set(2, "c c")
	if b.Len() != 4 {
		t.Fatalf("expected length to stay 4 mid-pass, got %d", b.Len())
	}
	if b.At(3) != "d" {
		t.Fatalf("expected slot 3 to keep its index, got %q", b.At(3))
	}
	if n := b.Compact(); n != 3 {
		t.Fatalf("expected 3 slots after compact, got %d", n)
	}
	want := []string{"a", "c c", "d"}
	if got := b.Slice(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Slice() = %q, want %q", got, want)
	}
}

func TestLinesOutOfRange(t *testing.T) {
	b := NewLines([]string{"x"})
	b.Set(5, "y")
	if b.At(-1) != "" || b.At(5) != "" {
		t.Fatalf("expected empty text for invalid slots")
	}
	if b.String() != "x" {
		t.Fatalf("expected buffer unchanged, got %q", b.String())
	}
}

func TestSplitAndBytes(t *testing.T) {
	b := Split([]byte("int a;\nFLT b;\n"))
	if b.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", b.Len())
	}
	if string(b.Bytes()) != "int a;\nFLT b;" {
		t.Fatalf("unexpected join: %q", b.Bytes())
	}
	if Split(nil).Len() != 0 {
		t.Fatalf("expected empty buffer for empty content")
	}
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.c")
	content := []byte("\xEF\xBB\xBFint a;\r\nint b;\r\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, flags, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if flags&HadBOM == 0 || flags&NormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", flags)
	}
	if got := b.Slice(); !reflect.DeepEqual(got, []string{"int a;", "int b;"}) {
		t.Fatalf("unexpected lines %q", got)
	}
}

func TestLineSet(t *testing.T) {
	s := NewLineSet()
	if !s.Empty() {
		t.Fatalf("new set must be empty")
	}
	s.Add(4, 1, 4)
	if s.Len() != 2 || !s.Has(1) || s.Has(2) {
		t.Fatalf("unexpected membership: %v", s.Sorted())
	}
	if !s.Any(7, 4) || s.Any(0, 2) {
		t.Fatalf("Any mismatch")
	}
	if got := s.Sorted(); !reflect.DeepEqual(got, []int{1, 4}) {
		t.Fatalf("Sorted() = %v", got)
	}
}
