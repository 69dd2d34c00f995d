package rewrite

import (
	"strings"

	"fltc/internal/source"
	"fltc/internal/splice"
)

const literalOpen = `flt_atof("`

// unaryMinus negates the operand following the minus sign. Literals take the
// sign inside their quoted text; anything else is wrapped in a negation
// call. The minus sign itself is dropped.
func unaryMinus(p *Pass, exts []source.Extent) (Outcome, error) {
	if err := expectLocations(exts, 1); err != nil {
		return Unhandled, err
	}
	e := exts[0]
	line := p.Lines.At(e.Line)
	from := min(e.End+1, len(line))
	tail := line[from:]
	drop := splice.Replace(e, "")

	if strings.HasPrefix(strings.TrimSpace(tail), literalOpen) {
		at := from + strings.Index(tail, literalOpen) + len(literalOpen)
		return p.commit(splice.NewBatch(p.Lines).Add(e.Line, drop, splice.Insert(at, "-")))
	}
	tok := splice.NextToken(tail, splice.FunctionPrefix)
	if tok == "" {
		return p.mergeNext(e.Line)
	}
	at := from + strings.Index(tail, tok)
	negate := splice.Edit{At: at, Del: len(tok), Text: wrapCall("flt_negated", tok)}
	return p.commit(splice.NewBatch(p.Lines).Add(e.Line, drop, negate))
}

// unaryPlus drops the sign.
func unaryPlus(p *Pass, exts []source.Extent) (Outcome, error) {
	if err := expectLocations(exts, 1); err != nil {
		return Unhandled, err
	}
	return p.commit(splice.NewBatch(p.Lines).Add(exts[0].Line, splice.Replace(exts[0], "")))
}

// step rewrites x++ / ++x (and the decrement forms) into the runtime's
// addressed post/pre calls. An operand in front of the operator makes it
// postfix.
func step(p *Pass, exts []source.Extent, op string) (Outcome, error) {
	if err := expectLocations(exts, 1); err != nil {
		return Unhandled, err
	}
	e := exts[0]
	line := p.Lines.At(e.Line)
	drop := splice.Replace(e, "")

	if tok, at := scanLeft(line, e); tok != "" && !keywords[tok] {
		post := splice.Edit{At: at, Del: len(tok), Text: "flt_post_" + op + "(&" + tok + ")"}
		return p.commit(splice.NewBatch(p.Lines).Add(e.Line, post, drop))
	}
	if tok, at := scanRight(line, e); tok != "" {
		pre := splice.Edit{At: at, Del: len(tok), Text: "flt_pre_" + op + "(&" + tok + ")"}
		return p.commit(splice.NewBatch(p.Lines).Add(e.Line, drop, pre))
	}
	// gcc gives no location for an operand on another line
	return unhandled("no operand found for %s", op)
}

// keywords can precede a prefix operator without being its operand.
var keywords = map[string]bool{
	"return": true, "case": true, "sizeof": true, "else": true, "do": true,
	"goto": true, "if": true, "while": true, "for": true, "switch": true,
}
