package rewrite

import (
	"strings"

	"fltc/internal/source"
	"fltc/internal/splice"
)

// firstOperand converts the integer left operand of a mixed binary
// operator. With three locations the left operand is given; with two it is
// given only when it precedes the operator.
func firstOperand(p *Pass, exts []source.Extent) (Outcome, error) {
	switch len(exts) {
	case 3:
		return complexOperand(p, exts[1])
	case 2:
		o, given := exts[0], exts[1]
		switch {
		case given.Before(o):
			return complexOperand(p, given)
		case given.After(o):
			return simpleLeft(p, o)
		}
		return unhandled("operand and operator share position %s", o)
	case 1:
		return simpleLeft(p, exts[0])
	}
	return unhandled("expected 1 to 3 locations, got %d", len(exts))
}

// secondOperand mirrors firstOperand for an integer right operand.
func secondOperand(p *Pass, exts []source.Extent) (Outcome, error) {
	switch len(exts) {
	case 3:
		return complexOperand(p, exts[2])
	case 2:
		o, given := exts[0], exts[1]
		switch {
		case given.After(o):
			return complexOperand(p, given)
		case given.Before(o):
			return simpleRight(p, o)
		}
		return unhandled("operand and operator share position %s", o)
	case 1:
		return simpleRight(p, exts[0])
	}
	return unhandled("expected 1 to 3 locations, got %d", len(exts))
}

func simpleLeft(p *Pass, o source.Extent) (Outcome, error) {
	line := p.Lines.At(o.Line)
	tok, at := scanLeft(line, o)
	if tok == "" {
		return p.mergePrevious(o.Line)
	}
	b := splice.NewBatch(p.Lines).Add(o.Line, splice.Edit{At: at, Del: len(tok), Text: convertSimple(tok)})
	return p.commit(b)
}

func simpleRight(p *Pass, o source.Extent) (Outcome, error) {
	line := p.Lines.At(o.Line)
	tok, at := scanRight(line, o)
	if tok == "" {
		return p.mergeNext(o.Line)
	}
	b := splice.NewBatch(p.Lines).Add(o.Line, splice.Edit{At: at, Del: len(tok), Text: convertSimple(tok)})
	return p.commit(b)
}

// convertSimple wraps a simple integer operand: numerals become literals,
// anything else a runtime conversion.
func convertSimple(tok string) string {
	if splice.IsNumeral(tok) {
		return literalCall(tok)
	}
	return wrapCall("flt_ltof", tok)
}

// complexOperand wraps the whole extent, whatever its shape.
func complexOperand(p *Pass, e source.Extent) (Outcome, error) {
	text := e.Text(p.Lines.At(e.Line))
	b := splice.NewBatch(p.Lines).Add(e.Line, splice.Replace(e, wrapCall("flt_ltof", text)))
	return p.commit(b)
}

// argument converts an integer passed where a runtime entry point expects
// FLT.
func argument(p *Pass, exts []source.Extent) (Outcome, error) {
	if err := expectLocations(exts, 1); err != nil {
		return Unhandled, err
	}
	return complexOperand(p, exts[0])
}

// assignment wraps the right-hand side starting at the location in fn.
func assignment(p *Pass, exts []source.Extent, fn string) (Outcome, error) {
	if err := expectLocations(exts, 1); err != nil {
		return Unhandled, err
	}
	e := exts[0]
	line := p.Lines.At(e.Line)
	tail := line[min(e.Start, len(line)):]
	tok := splice.NextToken(tail, splice.FunctionPrefix)
	if tok == "" {
		return p.mergeNext(e.Line)
	}
	at := e.Start + strings.Index(tail, tok)
	b := splice.NewBatch(p.Lines).Add(e.Line, splice.Edit{At: at, Del: len(tok), Text: wrapCall(fn, tok)})
	return p.commit(b)
}
