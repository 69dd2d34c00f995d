package rewrite

import (
	"regexp"

	"fltc/internal/classify"
	"fltc/internal/source"
)

var (
	fltCast     = regexp.MustCompile(`\(\s*` + classify.FLTType + `\s*\)`)
	integerCast = regexp.MustCompile(`\(\s*` + classify.IntegerType + `\s*\)`)
)

// removeCast deletes a cast the compiler rejected, once per location. The
// cast nearest before the location wins; failing that, the first one on
// the line. A line without a cast is merged into the previous one, where
// the preprocessor left the cast.
func removeCast(p *Pass, exts []source.Extent, cast *regexp.Regexp) (Outcome, error) {
	if len(exts) == 0 {
		return unhandled("expected at least 1 location")
	}
	applied := false
	for _, e := range exts {
		if p.Claimed.Has(e.Line) {
			continue
		}
		line := p.Lines.At(e.Line)
		matches := cast.FindAllStringIndex(line, -1)
		if len(matches) == 0 {
			if applied {
				continue
			}
			return p.mergePrevious(e.Line)
		}
		m := matches[0]
		for _, c := range matches {
			if c[0] <= e.Start {
				m = c
			}
		}
		if _, err := p.setLine(e.Line, line[:m[0]]+line[m[1]:]); err != nil {
			return Unhandled, err
		}
		applied = true
	}
	if !applied {
		return Claimed, nil
	}
	return Applied, nil
}
