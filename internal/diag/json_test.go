package diag

import (
	"testing"

	"fltc/internal/source"
)

const sampleJSON = `[
  {"kind": "error",
   "message": "invalid operands to binary + (have ‘FLT’ and ‘FLT’)",
   "children": [{"kind": "note", "message": "declared here", "locations": []}],
   "locations": [
     {"caret": {"file": "__FLT_TMP_01.c", "line": 7, "display-column": 9, "byte-column": 9, "column": 9}},
     {"caret": {"file": "__FLT_TMP_01.c", "line": 7, "byte-column": 5, "column": 5},
      "finish": {"file": "__FLT_TMP_01.c", "line": 7, "byte-column": 7, "column": 7}, "label": "FLT"}
   ]},
  {"kind": "warning", "option": "-Wimplicit-function-declaration",
   "message": "implicit declaration of function ‘foo’",
   "locations": [{"caret": {"line": 2, "column": 3}}]}
]`

func TestDecodeJSON(t *testing.T) {
	diags, err := DecodeJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}

	first := diags[0]
	if first.Kind != KindError || len(first.Locations) != 2 || len(first.Children) != 1 {
		t.Fatalf("unexpected first diagnostic: %+v", first)
	}
	ext, err := source.Resolve(first.Locations[1])
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ext != (source.Extent{Line: 6, Start: 4, End: 6}) {
		t.Fatalf("unexpected extent %+v", ext)
	}

	second := diags[1]
	if second.Kind != KindWarning || second.Option != "-Wimplicit-function-declaration" {
		t.Fatalf("unexpected second diagnostic: %+v", second)
	}
	// gcc 9 only reports "column"
	if second.Locations[0].Caret.ByteColumn != 3 {
		t.Fatalf("expected column fallback, got %+v", second.Locations[0].Caret)
	}
}

func TestDecodeJSONEmpty(t *testing.T) {
	for _, in := range []string{"", "  \n", "[]"} {
		diags, err := DecodeJSON([]byte(in))
		if err != nil {
			t.Fatalf("DecodeJSON(%q): %v", in, err)
		}
		if len(diags) != 0 {
			t.Fatalf("DecodeJSON(%q) returned %d diagnostics", in, len(diags))
		}
	}
}

func TestDecodeJSONRejectsUnknownKind(t *testing.T) {
	if _, err := DecodeJSON([]byte(`[{"kind":"chatter","message":"x","locations":[]}]`)); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	in := []Diagnostic{NewError("wrong type argument to increment", source.At(4, 2, 3))}
	data, err := EncodeJSON(in)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	out, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if FormatShort(out, true) != FormatShort(in, true) {
		t.Fatalf("round trip changed diagnostics:\n%s\n%s", FormatShort(in, true), FormatShort(out, true))
	}
}
