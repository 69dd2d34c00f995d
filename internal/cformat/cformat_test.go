package cformat

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Spec
	}{
		{"%f", Spec{Specifier: "f"}},
		{"%lf", Spec{Specifier: "lf"}},
		{"%8.3f", Spec{Width: "8", Precision: ".3", Specifier: "f"}},
		{"%-+10.2E", Spec{Left: true, Signed: true, Width: "10", Precision: ".2", Specifier: "E"}},
		{"%08g", Spec{Zero: true, Width: "8", Specifier: "g"}},
		{"%105f", Spec{Width: "105", Specifier: "f"}},
		{"% .12e", Spec{Space: true, Precision: ".12", Specifier: "e"}},
		{"%*.*f", Spec{Width: "*", Precision: ".*", Specifier: "f"}},
		{"%d %5.1f", Spec{Width: "5", Precision: ".1", Specifier: "f"}},
		{"%.0f", Spec{Precision: ".0", Specifier: "f"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Parse(tt.in); got != tt.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPrintfVerbs(t *testing.T) {
	tests := []struct {
		in, verb, sub string
	}{
		{"%f", "%s", "%f"},
		{"%-8.3f", "%-8s", "%.3f"},
		{"%+.15e", "%s", "%+.9e"},
		{"%08.2lf", "%8s", "%.2lf"},
		{"% g", "%s", "% g"},
		{"%*f", "%*s", "%f"},
	}
	for _, tt := range tests {
		s := Parse(tt.in)
		if got := s.StringVerb(); got != tt.verb {
			t.Errorf("%q StringVerb = %q, want %q", tt.in, got, tt.verb)
		}
		if got := s.SubFormat(); got != tt.sub {
			t.Errorf("%q SubFormat = %q, want %q", tt.in, got, tt.sub)
		}
	}
}

func TestScanVerb(t *testing.T) {
	tests := map[string]string{
		"%f":   "%50s",
		"%lf":  "%50s",
		"%12f": "%12s",
		"%50f": "%50s",
		"%99f": "%50s",
		"%*f":  "%50s",
	}
	for in, want := range tests {
		if got := Parse(in).ScanVerb(); got != want {
			t.Errorf("%q ScanVerb = %q, want %q", in, got, want)
		}
	}
}
