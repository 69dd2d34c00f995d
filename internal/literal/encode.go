// Package literal converts decimal numerals to IEEE-754 single-precision
// constants and folds constant runtime call expressions.
package literal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotNumeral is returned for text that is not a decimal floating or
// integer numeral.
var ErrNotNumeral = errors.New("not a decimal numeral")

// Parse reads a numeral as written in C source, with an optional sign and an
// optional F/L suffix, rounded to single precision.
func Parse(text string) (float32, error) {
	v, err := parse(text, 32)
	return float32(v), err
}

func parse(text string, bitSize int) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimRight(s, "FfLl")
	if s == "" || strings.ContainsAny(s, "xXpP_") {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeral, text)
	}
	if lower := strings.ToLower(strings.TrimLeft(s, "+-")); lower == "inf" || lower == "infinity" || lower == "nan" {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeral, text)
	}
	v, err := strconv.ParseFloat(s, bitSize)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeral, text)
	}
	return v, nil
}

// Bits returns the big-endian bit pattern of v.
func Bits(v float32) uint32 {
	return math.Float32bits(v)
}

// Hex formats v as an eight digit uppercase hexadecimal constant.
func Hex(v float32) string {
	return fmt.Sprintf("0x%08X", Bits(v))
}

// Encode renders a numeral as its constant with the original text kept in a
// trailing comment, e.g. "0x3FC00000 /* 1.5 */".
func Encode(text string) (string, error) {
	v, err := Parse(text)
	if err != nil {
		return "", err
	}
	return Annotate(v, strings.TrimSpace(text)), nil
}

// Annotate renders v with comment as its trailing note.
func Annotate(v float32, comment string) string {
	return Hex(v) + " /* " + comment + " */"
}

// Fold renders a computed value the way folded initializers are written,
// with a %g rendering of the value as the note.
func Fold(v float64) string {
	return Annotate(float32(v), fmt.Sprintf("%.6g", v))
}

// Decode reverses Hex. It accepts an optional 0x prefix and ignores a
// trailing comment.
func Decode(text string) (float32, error) {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "/*"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	bits, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("decode %q: %w", text, err)
	}
	return math.Float32frombits(uint32(bits)), nil
}
