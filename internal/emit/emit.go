// Package emit writes the converged buffer back out as C that compiles
// against the FLT runtime with a plain uint32_t representation.
package emit

import (
	"regexp"
	"strings"
	"time"

	"fltc/internal/literal"
	"fltc/internal/rewrite"
	"fltc/internal/source"
)

// Options control the banner.
type Options struct {
	Tool    string // default "fltc"
	Version string
	Now     time.Time // default time.Now, rendered in UTC
}

var (
	parseTypedef = regexp.MustCompile(`typedef struct\s*\{\s*short h1, h2;\s*\}\s*FLT;`)
	classTypedef = regexp.MustCompile(`(typedef enum \{E_INFINITE = 1, E_NAN, E_NORMAL, E_SUBNORMAL, E_ZERO\} E_CLASS;)`)
	atofCall     = regexp.MustCompile(`flt_atof\(\s*"([^"]+)"\s*\)`)
	ltofCall     = regexp.MustCompile(`flt_u?ltof\(\s*([-+]?[0-9]+)\s*\)`)
)

// Serialize renders lines as the final C text. The parse-time FLT struct is
// replaced by a banner, the real typedef is inserted before E_CLASS,
// constant constructor calls become encoded constants and the recorded
// compatibility spellings are undone.
func Serialize(lines *source.Lines, subs *rewrite.SubstitutionLog, opts Options) string {
	code := lines.String()
	code = parseTypedef.ReplaceAllLiteralString(code, Banner(opts))
	code = classTypedef.ReplaceAllString(code, "typedef uint32_t FLT;\n$1")
	code = EncodeLiterals(code)
	code = subs.Undo(code)
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	return code
}

// Banner is the comment that replaces the parse-time typedef.
func Banner(opts Options) string {
	tool := opts.Tool
	if tool == "" {
		tool = "fltc"
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	return "/* Converted to FLT using " + tool + " v" + opts.Version + " on " + now.UTC().Format(time.RFC3339) + " */"
}

// EncodeLiterals replaces flt_atof("N"), flt_ltof(N) and flt_ultof(N) with
// their encoded constants. Calls whose argument is not a numeral are left
// for the runtime.
func EncodeLiterals(code string) string {
	for _, re := range []*regexp.Regexp{atofCall, ltofCall} {
		code = re.ReplaceAllStringFunc(code, func(call string) string {
			m := re.FindStringSubmatch(call)
			enc, err := literal.Encode(m[1])
			if err != nil {
				return call
			}
			return enc
		})
	}
	return code
}
