package splice

import "testing"

func TestPreviousToken(t *testing.T) {
	tests := []struct {
		text, extra, want string
	}{
		{"z = a ", "", "a"},
		{"z = abc_1", "", "abc_1"},
		{"if (x", "", "x"},
		{"r = ", "", ""},
		{"", "", ""},
		{"  if (!scanf", " \t!", "!scanf"},
		{"x = !  scanf", " \t!", " !  scanf"},
	}
	for _, tt := range tests {
		if got := PreviousToken(tt.text, tt.extra); got != tt.want {
			t.Errorf("PreviousToken(%q, %q) = %q, want %q", tt.text, tt.extra, got, tt.want)
		}
	}
}

func TestSplitLast(t *testing.T) {
	before, after := SplitLast("-", "a-b-c-d")
	if before != "a-b-c" || after != "d" {
		t.Fatalf("SplitLast = (%q, %q)", before, after)
	}
	before, after = SplitLast("a", "z = a ")
	if before != "z = " || after != " " {
		t.Fatalf("SplitLast = (%q, %q)", before, after)
	}
	before, after = SplitLast("q", "abc")
	if before != "" || after != "abc" {
		t.Fatalf("SplitLast without match = (%q, %q)", before, after)
	}
}

func TestNextToken(t *testing.T) {
	tests := []struct {
		name, text, want string
	}{
		{"identifier", " b;", "b"},
		{"numeral", "5;", "5"},
		{"prefixed call", " flt_atof(\"1.5\") + c", "flt_atof(\"1.5\")"},
		{"nested call", "flt_add(flt_ltof(i),flt_atof(\"2\")));", "flt_add(flt_ltof(i),flt_atof(\"2\"))"},
		{"plain call", "foo(a, (b)) * 2", "foo(a, (b))"},
		{"prefixed with space", "flt_sqrt (x);", "flt_sqrt (x)"},
		{"unclosed call", "flt_add(a,", ""},
		{"prefix without call", "flt_value;", ""},
		{"nothing", " ;", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextToken(tt.text, FunctionPrefix); got != tt.want {
				t.Fatalf("NextToken(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
	if got := NextToken("scanf(\"%f\", &x) == 1", "scanf"); got != "scanf(\"%f\", &x)" {
		t.Fatalf("custom prefix: got %q", got)
	}
}

func TestIsNumeral(t *testing.T) {
	for _, s := range []string{"5", "0", "123", "1e5", "2E10"} {
		if !IsNumeral(s) {
			t.Errorf("IsNumeral(%q) = false", s)
		}
	}
	for _, s := range []string{"", "x", "5u", "0x1F", "1e", "e5", "a1"} {
		if IsNumeral(s) {
			t.Errorf("IsNumeral(%q) = true", s)
		}
	}
}
