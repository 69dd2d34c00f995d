package literal

import (
	"errors"
	"math"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1.5", "0x3FC00000 /* 1.5 */"},
		{"1", "0x3F800000 /* 1 */"},
		{"-2", "0xC0000000 /* -2 */"},
		{"0", "0x00000000 /* 0 */"},
		{"0.1", "0x3DCCCCCD /* 0.1 */"},
		{"1.5e3f", "0x44BB8000 /* 1.5e3f */"},
		{".5", "0x3F000000 /* .5 */"},
		{"5.", "0x40A00000 /* 5. */"},
		{"2F", "0x40000000 /* 2F */"},
		{"3.14159L", "0x40490FD0 /* 3.14159L */"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "0x10", "1.0p3", "nan", "-inf", "1_000"} {
		if _, err := Encode(in); !errors.Is(err, ErrNotNumeral) {
			t.Errorf("Encode(%q) error = %v, want ErrNotNumeral", in, err)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	inputs := []string{"0.1", "3.14159", "-273.15", "6.02e23", "1e-30", "65504", "123456789", "0.333333333"}
	for _, in := range inputs {
		first, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode(%q): %v", in, err)
		}
		second, _ := Encode(in)
		if first != second {
			t.Fatalf("Encode(%q) not deterministic: %q vs %q", in, first, second)
		}
		got, err := Decode(first)
		if err != nil {
			t.Fatalf("Decode(%q): %v", first, err)
		}
		want, _ := Parse(in)
		if got != want {
			t.Fatalf("Decode(Encode(%q)) = %v, want %v", in, got, want)
		}
		// Relative error bounded by single-precision epsilon.
		var exact float64
		if v, err := parse(in, 64); err == nil {
			exact = v
		}
		if rel := math.Abs(float64(got)-exact) / math.Abs(exact); rel > 1.0/(1<<23) {
			t.Fatalf("%q decoded to %v, relative error %g", in, got, rel)
		}
	}
}

func TestFold(t *testing.T) {
	if got := Fold(0.75); got != "0x3F400000 /* 0.75 */" {
		t.Fatalf("Fold(0.75) = %q", got)
	}
	if got := Fold(1.0 / 3.0); got != "0x3EAAAAAB /* 0.333333 */" {
		t.Fatalf("Fold(1/3) = %q", got)
	}
	if got := Fold(1e-5); got != "0x3727C5AC /* 1e-05 */" {
		t.Fatalf("Fold(1e-5) = %q", got)
	}
}
