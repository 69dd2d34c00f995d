package rewrite

import (
	"strings"

	"fltc/internal/source"
	"fltc/internal/splice"
)

// operatorCall maps an operator spelling to the text opened before the left
// operand and closed after the right one.
type operatorCall func(op string) (open, closing string, ok bool)

var arithmeticCalls = map[string]string{
	"+": "flt_add",
	"-": "flt_subtract",
	"*": "flt_multiply",
	"/": "flt_divide",
}

func arithmetic(op string) (string, string, bool) {
	base, compound := op, false
	if len(op) == 2 && op[1] == '=' {
		base, compound = op[:1], true
	}
	fn, ok := arithmeticCalls[base]
	if !ok {
		return "", "", false
	}
	if compound {
		return fn + "_into(&", ")", true
	}
	return fn + "(", ")", true
}

var relations = map[string]string{
	"==": "E_EQUAL_TO",
	"<":  "E_LESS_THAN",
	">":  "E_GREATER_THAN",
	"<=": "E_LESS_THAN_OR_EQUAL_TO",
	">=": "E_GREATER_THAN_OR_EQUAL_TO",
	"!=": "E_NOT_EQUAL_TO",
}

func comparison(op string) (string, string, bool) {
	rel, ok := relations[op]
	if !ok {
		return "", "", false
	}
	return "flt_compare(", "," + rel + ")", true
}

// binary rewrites "l op r" on two FLT operands into open+l+","+r+closing.
// The first location is the operator; the next ones, when present, are the
// left and right operands. Missing operands are scanned for next to the
// operator and must be simple.
func binary(p *Pass, exts []source.Extent, call operatorCall) (Outcome, error) {
	if len(exts) == 0 || len(exts) > 3 {
		return unhandled("expected 1 to 3 locations, got %d", len(exts))
	}
	o := exts[0]
	line := p.Lines.At(o.Line)
	op := o.Text(line)
	open, closing, ok := call(op)
	if !ok {
		return unhandled("operator %q not recognized", op)
	}
	comma := separator(line, o)
	b := splice.NewBatch(p.Lines)

	switch len(exts) {
	case 3:
		l, r := exts[1], exts[2]
		b.Add(r.Line, splice.Insert(r.End+1, closing))
		b.Add(o.Line, comma)
		b.Add(l.Line, splice.Insert(l.Start, open))
		return p.commit(b)

	case 2:
		given := exts[1]
		switch {
		case given.After(o):
			left, at := scanLeft(line, o)
			if left == "" {
				return p.mergePrevious(o.Line)
			}
			b.Add(given.Line, splice.Insert(given.End+1, closing))
			b.Add(o.Line, comma, splice.Edit{At: at, Del: len(left), Text: open + simpleFLT(left)})
			return p.commit(b)
		case given.Before(o):
			right, at := scanRight(line, o)
			if right == "" {
				return p.mergeNext(o.Line)
			}
			b.Add(o.Line, comma, splice.Edit{At: at, Del: len(right), Text: simpleFLT(right) + closing})
			b.Add(given.Line, splice.Insert(given.Start, open))
			return p.commit(b)
		}
		return unhandled("operand and operator share position %s", o)
	}

	left, lat := scanLeft(line, o)
	right, rat := scanRight(line, o)
	if left == "" || right == "" {
		return p.mergeAround(o.Line, left == "", right == "")
	}
	b.Add(o.Line,
		splice.Edit{At: lat, Del: len(left), Text: open + simpleFLT(left)},
		comma,
		splice.Edit{At: rat, Del: len(right), Text: simpleFLT(right) + closing},
	)
	return p.commit(b)
}

// separator replaces the operator and the blanks around it with a comma.
func separator(line string, o source.Extent) splice.Edit {
	start, end := o.Start, o.End+1
	for start > 0 && isBlank(line[start-1]) {
		start--
	}
	for end < len(line) && isBlank(line[end]) {
		end++
	}
	return splice.Edit{At: start, Del: end - start, Text: ","}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// scanLeft finds the simple operand in front of the operator and its column.
func scanLeft(line string, o source.Extent) (string, int) {
	head := line[:min(o.Start, len(line))]
	tok := splice.PreviousToken(head, "")
	if tok == "" {
		return "", 0
	}
	before, _ := splice.SplitLast(tok, head)
	return tok, len(before)
}

// scanRight finds the simple operand or call after the operator and its
// column.
func scanRight(line string, o source.Extent) (string, int) {
	from := min(o.End+1, len(line))
	tail := line[from:]
	tok := splice.NextToken(tail, splice.FunctionPrefix)
	if tok == "" {
		return "", 0
	}
	return tok, from + strings.Index(tail, tok)
}

// simpleFLT turns a scanned numeral into a literal; other operands are
// already FLT.
func simpleFLT(tok string) string {
	if splice.IsNumeral(tok) {
		return literalCall(tok)
	}
	return tok
}
