package rewrite

import (
	"strings"

	"fltc/internal/literal"
	"fltc/internal/source"
	"fltc/internal/splice"
)

// foldInitializer evaluates a static initializer made of literal and
// arithmetic calls and replaces it, at the located position only, with its
// encoded constant.
func foldInitializer(p *Pass, exts []source.Extent) (Outcome, error) {
	if err := expectLocations(exts, 1); err != nil {
		return Unhandled, err
	}
	e := exts[0]
	line := p.Lines.At(e.Line)
	tail := line[min(e.Start, len(line)):]
	expr := splice.NextToken(tail, splice.FunctionPrefix)
	if expr == "" {
		return p.mergeNext(e.Line)
	}
	v, err := literal.Eval(expr)
	if err != nil {
		return unhandled("%v", err)
	}
	at := min(e.Start, len(line)) + strings.Index(tail, expr)
	b := splice.NewBatch(p.Lines).Add(e.Line, splice.Edit{At: at, Del: len(expr), Text: literal.Fold(v)})
	return p.commit(b)
}
