// Package prep turns a C source file into the buffer the rewrite engine
// starts from: preprocessed, with float and double spelled FLT, math calls
// renamed to their flt_ entry points and every floating literal wrapped in
// a flt_atof call.
package prep

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"fltc/internal/source"
)

// Preprocessor expands includes and macros. cc.Session implements it.
type Preprocessor interface {
	Preprocess(ctx context.Context, code []byte) ([]byte, error)
}

// Rename is one whole-word substitution applied outside string literals.
type Rename struct {
	From string // regular expression, matched between word boundaries
	To   string
}

// Renames is applied in order. long double must be restored after double
// has been renamed.
var Renames = []Rename{
	{`float`, "FLT"}, {`double`, "FLT"}, {`long FLT`, "long double"},
	{`DBL_MIN`, "FLT_MIN"}, {`DBL_TRUE_MIN`, "FLT_TRUE_MIN"}, {`DBL_MAX`, "FLT_MAX"}, {`DBL_EPSILON`, "FLT_EPSILON"},
	{`acosf?`, "flt_acos"}, {`acoshf?`, "flt_acosh"}, {`asinf?`, "flt_asin"}, {`asinhf?`, "flt_asinh"},
	{`atan2f?`, "flt_atan2"}, {`atanf?`, "flt_atan"}, {`atanhf?`, "flt_atanh"}, {`atoff?`, "flt_atof"},
	{`ceilf?`, "flt_ceil"}, {`cosf?`, "flt_cos"}, {`coshf?`, "flt_cosh"}, {`exp10f?`, "flt_exp10"},
	{`exp2f?`, "flt_exp2"}, {`expf?`, "flt_exp"}, {`fabsf?`, "flt_fabs"}, {`floorf?`, "flt_floor"},
	{`fmaxf?`, "flt_fmax"}, {`fminf?`, "flt_fmin"}, {`fmodf?`, "flt_fmod"}, {`frexpf?`, "flt_frexp"},
	{`fsgnf?`, "flt_fsgn"}, {`hypotf?`, "flt_hypot"}, {`isfinite`, "flt_isfinite"}, {`isinf`, "flt_isinf"},
	{`isnan`, "flt_isnan"}, {`isnormal`, "flt_isnormal"}, {`issubnormal`, "flt_issubnormal"}, {`iszero`, "flt_iszero"},
	{`ldexpf?`, "flt_ldexp"}, {`log10f?`, "flt_log10"}, {`log2f?`, "flt_log2"}, {`logf?`, "flt_log"},
	{`modff?`, "flt_modf"}, {`powf?`, "flt_pow"}, {`roundf?`, "flt_round"}, {`sinf?`, "flt_sin"},
	{`sinhf?`, "flt_sinh"}, {`sqrtf?`, "flt_sqrt"}, {`tanf?`, "flt_tan"}, {`tanhf?`, "flt_tanh"},
	{`truncf?`, "flt_trunc"},
}

type compiledRename struct {
	re *regexp.Regexp
	to string
}

var renames = func() []compiledRename {
	out := make([]compiledRename, len(Renames))
	for i, r := range Renames {
		out[i] = compiledRename{re: regexp.MustCompile(`\b` + r.From + `\b`), to: r.To}
	}
	return out
}()

// Literal matches a C floating literal: fractional and exponent forms with
// an optional FfLl suffix, plus integers with an F suffix.
const Literal = `[0-9]+\.[0-9]+[Ee][-+]?[0-9]+[FfLl]?` +
	`|[0-9]+\.[Ee][-+]?[0-9]+[FfLl]?` +
	`|\.[0-9]+[Ee][-+]?[0-9]+[FfLl]?` +
	`|[0-9]+[Ee][-+]?[0-9]+[FfLl]?` +
	`|[0-9]+\.[0-9]+[FfLl]?` +
	`|\.[0-9]+[FfLl]?` +
	`|[0-9]+\.[FfLl]?` +
	`|\b[0-9]+[Ff]\b`

var (
	mathInclude = regexp.MustCompile(`(#\s*include\s*["<](?:math|float)\.h[">])`)
	// The leading group keeps digits inside identifiers such as var1e5
	// from being read as a literal.
	literal     = regexp.MustCompile(`(^|[^_a-zA-Z0-9.])(` + Literal + `)`)
	fltCall     = regexp.MustCompile(`\(\s*FLT\s*\)\s*flt_`)
	stringLit   = regexp.MustCompile(`"[^"]*"`)
	stringKey   = regexp.MustCompile(`__FLT_STR_[0-9]{9}`)
	escapeSlash = strings.NewReplacer(`\\`, `\x5c`, `\"`, `\x22`)
)

// Normalize runs the whole normalisation: math includes are commented out,
// the file is preprocessed, and the result is rewritten and split into
// lines with blank and directive lines dropped.
func Normalize(ctx context.Context, code []byte, pp Preprocessor) (*source.Lines, error) {
	code = CommentMathIncludes(code)
	out, err := pp.Preprocess(ctx, code)
	if err != nil {
		return nil, err
	}
	return Split(Rewrite(string(out))), nil
}

// CommentMathIncludes disables #include <math.h> and <float.h>.
func CommentMathIncludes(code []byte) []byte {
	return mathInclude.ReplaceAll(code, []byte("/* $1 */"))
}

// Rewrite applies the text-level conversions to preprocessed code. String
// literals are hidden for the duration so their contents stay verbatim.
func Rewrite(code string) string {
	code = escapeSlash.Replace(code)
	code, strs := hideStrings(code)
	for _, r := range renames {
		code = r.re.ReplaceAllString(code, r.to)
	}
	code = literal.ReplaceAllString(code, `${1}flt_atof("${2}")`)
	code = fltCall.ReplaceAllString(code, "flt_")
	return restoreStrings(code, strs)
}

func hideStrings(code string) (string, []string) {
	var strs []string
	code = stringLit.ReplaceAllStringFunc(code, func(s string) string {
		key := stringKeyFor(len(strs))
		strs = append(strs, s)
		return key
	})
	return code, strs
}

func restoreStrings(code string, strs []string) string {
	return stringKey.ReplaceAllStringFunc(code, func(key string) string {
		var i int
		if _, err := fmt.Sscanf(key, "__FLT_STR_%09d", &i); err != nil || i >= len(strs) {
			return key
		}
		return strs[i]
	})
}

func stringKeyFor(i int) string {
	return fmt.Sprintf("__FLT_STR_%09d", i)
}

// Split breaks code into engine lines, dropping empty lines and
// preprocessor line markers.
func Split(code string) *source.Lines {
	raw := strings.Split(code, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		if l == "" || l[0] == '#' {
			continue
		}
		lines = append(lines, l)
	}
	return source.NewLines(lines)
}
