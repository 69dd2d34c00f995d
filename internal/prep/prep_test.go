package prep

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRewrite(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"float type", "float x;", "FLT x;"},
		{"double type", "static double y;", "static FLT y;"},
		{"long double kept", "long double z;", "long double z;"},
		{"dbl constants", "x = DBL_MAX - DBL_EPSILON;", "x = FLT_MAX - FLT_EPSILON;"},
		{"math call", "y = sqrtf(x) + sqrt(x);", "y = flt_sqrt(x) + flt_sqrt(x);"},
		{"longest name wins", "y = atan2(a, b) + atan(c);", "y = flt_atan2(a, b) + flt_atan(c);"},
		{"word boundary", "int cosine = floats;", "int cosine = floats;"},
		{"fraction", "x = 1.5;", `x = flt_atof("1.5");`},
		{"exponent with suffix", "x = 1.5e3f;", `x = flt_atof("1.5e3f");`},
		{"leading dot", "x = .5;", `x = flt_atof(".5");`},
		{"trailing dot", "x = 5.;", `x = flt_atof("5.");`},
		{"integer with f", "x = 2f;", `x = flt_atof("2f");`},
		{"two literals", "f(1.0,2.0);", `f(flt_atof("1.0"),flt_atof("2.0"));`},
		{"plain integer untouched", "int n = 42;", "int n = 42;"},
		{"hex untouched", "int n = 0x1F;", "int n = 0x1F;"},
		{"identifier digits untouched", "int var1e5 = 0;", "int var1e5 = 0;"},
		{"cast before call dropped", "x = (FLT) flt_sqrt(y);", "x = flt_sqrt(y);"},
		{"cast of literal dropped", "x = (double)1.5;", `x = flt_atof("1.5");`},
		{"strings verbatim", `printf("float %f\n", 1.5);`, `printf("float %f\n", flt_atof("1.5"));`},
		{"escaped quote", `puts("say \"2.5\"");`, `puts("say \x222.5\x22");`},
		{"escaped backslash", `puts("C:\\1.5");`, `puts("C:\x5c1.5");`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rewrite(tt.in); got != tt.want {
				t.Errorf("Rewrite(%q)\n got %q\nwant %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCommentMathIncludes(t *testing.T) {
	in := "#include <math.h>\n#include \"float.h\"\n#include <stdio.h>\n"
	want := "/* #include <math.h> */\n/* #include \"float.h\" */\n#include <stdio.h>\n"
	if got := string(CommentMathIncludes([]byte(in))); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSplitDropsBlankAndDirectiveLines(t *testing.T) {
	lines := Split("# 1 \"x.c\"\nint a;\n\n  \nint b;\r\n#pragma once\n")
	want := []string{"int a;", "  ", "int b;"}
	got := lines.Slice()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", got, want)
	}
}

type fakePreprocessor struct {
	seen []byte
	out  string
	err  error
}

func (f *fakePreprocessor) Preprocess(_ context.Context, code []byte) ([]byte, error) {
	f.seen = code
	return []byte(f.out), f.err
}

func TestNormalize(t *testing.T) {
	pp := &fakePreprocessor{out: "# 1 \"in.c\"\ndouble half(double x)\n{\n  return x * 0.5;\n}\n"}
	lines, err := Normalize(context.Background(), []byte("#include <math.h>\n"), pp)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !strings.HasPrefix(string(pp.seen), "/* #include <math.h> */") {
		t.Fatalf("preprocessor saw %q", pp.seen)
	}
	want := []string{"FLT half(FLT x)", "{", `  return x * flt_atof("0.5");`, "}"}
	if got := lines.Slice(); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizePropagatesPreprocessorError(t *testing.T) {
	boom := errors.New("missing header")
	if _, err := Normalize(context.Background(), nil, &fakePreprocessor{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
