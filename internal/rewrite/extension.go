package rewrite

import (
	"regexp"
	"slices"
	"strings"

	"fltc/internal/diag"
	"fltc/internal/source"
)

var (
	fastcallWord = regexp.MustCompile(`\b__fastcall__\b`)
	boolWord     = regexp.MustCompile(`\b_Bool\b`)
	sizeWord     = regexp.MustCompile(`\bsize_t\b`)
)

// variadicAliases may legitimately disagree with gcc's built-in prototype.
var variadicAliases = []string{"vfprintf", "vfscanf", "vprintf", "vscanf", "vsnprintf", "vsprintf", "vsscanf"}

// extension respells cc65-only syntax for gcc and records the change so
// the output keeps the original spelling.
func extension(p *Pass, exts []source.Extent) (Outcome, error) {
	if err := expectLocations(exts, 1); err != nil {
		return Unhandled, err
	}
	l := exts[0].Line
	line := p.Lines.At(l)
	var edited string
	switch {
	case fastcallWord.MatchString(line):
		edited = fastcallWord.ReplaceAllLiteralString(line, "__attribute__ ((fastcall))")
	case boolWord.MatchString(line):
		edited = boolWord.ReplaceAllLiteralString(line, "__Bool")
	default:
		return unhandled("no known extension on line %d", l+1)
	}
	return p.substitute(l, line, edited)
}

// conflictingBuiltin handles a declaration that disagrees with a gcc
// built-in. size_t declared as something other than gcc's idea of it is
// respelled; the v*printf family is left alone.
func conflictingBuiltin(p *Pass, d *diag.Diagnostic, exts []source.Extent) (Outcome, error) {
	if err := expectLocations(exts, 1); err != nil {
		return Unhandled, err
	}
	e := exts[0]
	line := p.Lines.At(e.Line)
	if sizeWord.MatchString(line) && strings.Contains(d.Message, "long unsigned int") {
		return p.substitute(e.Line, line, sizeWord.ReplaceAllLiteralString(line, "long unsigned int"))
	}
	if name := e.Text(line); slices.Contains(variadicAliases, name) {
		return Ignored, nil
	}
	return unhandled("conflicting built-in on line %d", e.Line+1)
}

func (p *Pass) substitute(l int, original, edited string) (Outcome, error) {
	out, err := p.setLine(l, edited)
	if out == Applied {
		p.Subs.Record(edited, original)
	}
	return out, err
}
