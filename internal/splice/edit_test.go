package splice

import (
	"errors"
	"strings"
	"testing"

	"fltc/internal/source"
)

func TestApplyOrdersEdits(t *testing.T) {
	line := "z = a + b;"
	// Given left to right on purpose; Apply must still work right to left.
	got, err := Apply(line,
		Insert(4, "flt_add("),
		Edit{At: 5, Del: 3, Text: ","},
		Insert(9, ")"),
	)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != "z = flt_add(a,b);" {
		t.Fatalf("Apply = %q", got)
	}
}

func TestApplyKeepsInsertOrderAtSamePosition(t *testing.T) {
	got, err := Apply("x;", Insert(1, "a"), Insert(1, "b"), Edit{At: 1, Del: 1, Text: "!"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != "xab!" {
		t.Fatalf("Apply = %q", got)
	}
}

func TestApplyRejectsOverlap(t *testing.T) {
	line := "abcdef"
	cases := [][]Edit{
		{{At: 1, Del: 3}, {At: 2, Del: 1}},
		{{At: 1, Del: 2, Text: "x"}, Insert(2, "y")},
		{{At: 2, Del: 1}, Insert(2, "y")},
	}
	for i, edits := range cases {
		if _, err := Apply(line, edits...); !errors.Is(err, ErrOverlap) {
			t.Errorf("case %d: expected ErrOverlap, got %v", i, err)
		}
	}
	if _, err := Apply(line, Edit{At: 5, Del: 2}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

// Every not-yet-applied edit must still see the bytes it was computed
// against, whatever the edits to its right did to the line length.
func TestApplyOffsetSafety(t *testing.T) {
	line := "r = p * q + s * t;"
	var edits []Edit
	var want strings.Builder
	last := 0
	for i := 0; i < len(line); i++ {
		if line[i] >= 'p' && line[i] <= 't' {
			edits = append(edits, Edit{At: i, Del: 1, Text: "<" + line[i:i+1] + line[i:i+1] + ">"})
			want.WriteString(line[last:i])
			want.WriteString("<" + line[i:i+1] + line[i:i+1] + ">")
			last = i + 1
		}
	}
	want.WriteString(line[last:])
	got, err := Apply(line, edits...)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != want.String() {
		t.Fatalf("Apply = %q, want %q", got, want.String())
	}
}

func TestBatchCommit(t *testing.T) {
	lines := source.NewLines([]string{"a = b * c;", "d = e;"})
	claimed := source.NewLineSet()
	b := NewBatch(lines).
		Add(0, Insert(9, ")")).
		Add(0, Replace(source.Extent{Line: 0, Start: 6, End: 6}, ",")).
		Add(0, Insert(4, "flt_multiply("))
	if err := b.Commit(claimed); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if lines.At(0) != "a = flt_multiply(b , c);" {
		t.Fatalf("line 0 = %q", lines.At(0))
	}
	if !claimed.Has(0) || claimed.Has(1) {
		t.Fatalf("unexpected claims %v", claimed.Sorted())
	}
}

func TestBatchIsAllOrNothing(t *testing.T) {
	lines := source.NewLines([]string{"a;", "b;"})
	claimed := source.NewLineSet()
	err := NewBatch(lines).
		Add(0, Insert(0, "x")).
		Add(1, Edit{At: 0, Del: 9}).
		Commit(claimed)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if lines.At(0) != "a;" || !claimed.Empty() {
		t.Fatalf("failed batch must leave lines untouched")
	}
}
