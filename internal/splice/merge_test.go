package splice

import (
	"errors"
	"testing"

	"fltc/internal/source"
)

func TestMergeNext(t *testing.T) {
	lines := source.NewLines([]string{"z = a +", "   b;", "done;"})
	claimed := source.NewLineSet()
	if err := MergeNext(lines, claimed, 0); err != nil {
		t.Fatalf("MergeNext: %v", err)
	}
	if lines.At(0) != "z = a + b;" || lines.At(1) != "" || lines.Len() != 3 {
		t.Fatalf("unexpected buffer %q", lines.Slice())
	}
	if !claimed.Has(0) || !claimed.Has(1) || claimed.Has(2) {
		t.Fatalf("unexpected claims %v", claimed.Sorted())
	}
}

func TestMergePrevious(t *testing.T) {
	lines := source.NewLines([]string{"z = a", "\t+ b;"})
	claimed := source.NewLineSet()
	if err := MergePrevious(lines, claimed, 1); err != nil {
		t.Fatalf("MergePrevious: %v", err)
	}
	if lines.At(0) != "z = a + b;" || lines.At(1) != "" {
		t.Fatalf("unexpected buffer %q", lines.Slice())
	}
	if claimed.Len() != 2 {
		t.Fatalf("expected both lines claimed, got %v", claimed.Sorted())
	}
}

func TestMergeAtEdges(t *testing.T) {
	lines := source.NewLines([]string{"only"})
	claimed := source.NewLineSet()
	if err := MergeNext(lines, claimed, 0); !errors.Is(err, ErrNoAdjacent) {
		t.Fatalf("MergeNext at end: %v", err)
	}
	if err := MergePrevious(lines, claimed, 0); !errors.Is(err, ErrNoAdjacent) {
		t.Fatalf("MergePrevious at start: %v", err)
	}
	if !claimed.Empty() || lines.At(0) != "only" {
		t.Fatalf("failed merge must not touch state")
	}
}

func TestMergeRange(t *testing.T) {
	lines := source.NewLines([]string{"x = f(a,", "  b,", "  c);", "y;"})
	claimed := source.NewLineSet()
	if err := MergeRange(lines, claimed, 0, 2); err != nil {
		t.Fatalf("MergeRange: %v", err)
	}
	want := []string{"x = f(a, b, c);", "", "", "y;"}
	for i, w := range want {
		if lines.At(i) != w {
			t.Fatalf("line %d = %q, want %q", i, lines.At(i), w)
		}
	}
	if got := claimed.Sorted(); len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Fatalf("unexpected claims %v", got)
	}
}
