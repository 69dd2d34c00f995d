package audit

import (
	"context"
	"testing"
)

func TestIsFloating(t *testing.T) {
	tests := map[string]bool{
		"1.5":        true,
		".5":         true,
		"1e3":        true,
		"2f":         true,
		"0x1p-3":     true,
		"42":         false,
		"0x3FC00000": false,
		"0xFF":       false,
		"10UL":       false,
	}
	for lit, want := range tests {
		if got := IsFloating(lit); got != want {
			t.Errorf("IsFloating(%q) = %v, want %v", lit, got, want)
		}
	}
}

func TestCheck(t *testing.T) {
	code := []byte(`typedef uint32_t FLT;
/* float in a comment, 1.5 */
FLT half = 0x3F000000 /* 0.5 */;
double twice(int n) { return n * 2.0; }
const char *s = "3.25 float";
`)
	got, err := Check(context.Background(), code)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	want := []Finding{
		{Kind: NativeType, Line: 4, Column: 1, Text: "double"},
		{Kind: FloatLiteral, Line: 4, Column: 34, Text: "2.0"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("finding %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCheckCleanOutput(t *testing.T) {
	got, err := Check(context.Background(), []byte("FLT x = flt_add(a,b);\n"))
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}
