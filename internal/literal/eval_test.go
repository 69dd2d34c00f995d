package literal

import (
	"errors"
	"testing"
)

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{`flt_atof("1.5")`, 1.5},
		{`flt_ltof(3)`, 3},
		{`flt_ultof(7u)`, 7},
		{`flt_negated(flt_atof("2"))`, -2},
		{`flt_add(flt_atof("1.5"),flt_ltof(2))`, 3.5},
		{`flt_subtract( flt_atof("10") , flt_atof("0.5") )`, 9.5},
		{`flt_multiply(flt_atof("-2"),flt_divide(flt_ltof(9),flt_ltof(4)))`, -4.5},
		{`flt_atof("-1e2")`, -100},
		{`42`, 42},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalNotConstant(t *testing.T) {
	for _, expr := range []string{
		`flt_ltof(x)`,
		`flt_sqrt(flt_atof("2"))`,
		`flt_add(flt_atof("1"))`,
		`flt_add(flt_atof("1"),flt_atof("2")`,
		`flt_divide(flt_atof("1"),flt_ltof(0))`,
		`flt_atof("abc")`,
		`flt_atof("1") + 2`,
		``,
	} {
		if _, err := Eval(expr); !errors.Is(err, ErrNotConstant) {
			t.Errorf("Eval(%q) error = %v, want ErrNotConstant", expr, err)
		}
	}
}
