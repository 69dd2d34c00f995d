package diag

import (
	"testing"

	"fltc/internal/source"
)

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		NewError("wrong type argument to unary minus\n", source.At(3, 5, 5)).
			WithNote("declared here", source.At(1, 1, 3)),
		NewWarning("unused", source.At(2, 1, 1), source.Location{}),
		New(KindNote, "bare"),
	}

	want := "error 3:5-5 wrong type argument to unary minus\n" +
		"  note 1:1-3 declared here\n" +
		"warning 2:1-1,? unused\n" +
		"note - bare"

	if got := FormatShort(diags, true); got != want {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}
