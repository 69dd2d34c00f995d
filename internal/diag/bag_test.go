package diag

import (
	"testing"

	"fltc/internal/source"
)

func TestBagCounts(t *testing.T) {
	var nilBag *Bag
	if nilBag.Len() != 0 || nilBag.HasErrors() {
		t.Fatalf("nil bag must be empty")
	}

	b := NewBag(nil)
	b.Add(NewWarning("w", source.At(1, 1, 1)))
	b.Add(New(KindNote, "n"))
	if b.HasErrors() {
		t.Fatalf("bag without errors reports errors")
	}
	b.Add(NewError("e", source.At(2, 1, 1)))

	if b.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", b.Len())
	}
	if !b.HasErrors() || b.Count(KindError) != 1 || b.Count(KindWarning) != 1 || b.Count(KindNote) != 1 {
		t.Fatalf("unexpected counts: %s", FormatShort(b.Items(), false))
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"note":        KindNote,
		"warning":     KindWarning,
		"pedwarn":     KindWarning,
		"error":       KindError,
		"fatal error": KindError,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseKind("remark"); err == nil {
		t.Errorf("expected error for unknown kind")
	}
}
