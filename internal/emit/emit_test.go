package emit

import (
	"strings"
	"testing"
	"time"

	"fltc/internal/rewrite"
	"fltc/internal/source"
)

func TestEncodeLiterals(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`x = flt_atof("1.5");`, `x = 0x3FC00000 /* 1.5 */;`},
		{`x = flt_atof( "-2" );`, `x = 0xC0000000 /* -2 */;`},
		{`x = flt_ltof(3);`, `x = 0x40400000 /* 3 */;`},
		{`x = flt_ultof(+1);`, `x = 0x3F800000 /* +1 */;`},
		{`x = flt_ltof(n);`, `x = flt_ltof(n);`},
		{`x = flt_atof(s);`, `x = flt_atof(s);`},
		{`x = flt_atof("abc");`, `x = flt_atof("abc");`},
		{`y = flt_add(flt_atof("0.5"),flt_ltof(1));`, `y = flt_add(0x3F000000 /* 0.5 */,0x3F800000 /* 1 */);`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := EncodeLiterals(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	lines := source.NewLines([]string{
		"typedef struct {",
		"  short h1, h2;",
		"} FLT;",
		"typedef enum {E_INFINITE = 1, E_NAN, E_NORMAL, E_SUBNORMAL, E_ZERO} E_CLASS;",
		"__Bool ok;",
		`FLT half = flt_atof("0.5");`,
	})
	subs := &rewrite.SubstitutionLog{}
	subs.Record("__Bool", "_Bool")

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	got := Serialize(lines, subs, Options{Version: "1.0.0", Now: now})
	want := strings.Join([]string{
		"/* Converted to FLT using fltc v1.0.0 on 2024-03-01T11:00:00Z */",
		"typedef uint32_t FLT;",
		"typedef enum {E_INFINITE = 1, E_NAN, E_NORMAL, E_SUBNORMAL, E_ZERO} E_CLASS;",
		"_Bool ok;",
		"FLT half = 0x3F000000 /* 0.5 */;",
	}, "\n") + "\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerializeUndoesInReverse(t *testing.T) {
	subs := &rewrite.SubstitutionLog{}
	subs.Record("B", "A")
	subs.Record("C", "B")
	got := Serialize(source.NewLines([]string{"C"}), subs, Options{})
	if got != "A\n" {
		t.Fatalf("got %q, want %q", got, "A\n")
	}
}
