package rewrite

import (
	"strconv"
	"strings"

	"fltc/internal/cformat"
	"fltc/internal/source"
	"fltc/internal/splice"
)

const (
	scanfName     = "scanf"
	scanfBuffer   = "flt_get_scanf_buffer"
	scanfLastRead = "g_flt_last_scanf_result"
)

// printfArgument prints an FLT argument through the runtime formatter: the
// conversion becomes %s with the original alignment and width, and the
// argument becomes flt_ftoa(arg,"<sub-format>").
func printfArgument(p *Pass, exts []source.Extent) (Outcome, error) {
	if err := expectLocations(exts, 2); err != nil {
		return Unhandled, err
	}
	f, s := exts[0], exts[1]
	if f.Line != s.Line {
		return unhandled("format and argument on different lines")
	}
	line := p.Lines.At(f.Line)
	spec := cformat.Parse(f.Text(line))
	arg := "flt_ftoa(" + s.Text(line) + `,"` + spec.SubFormat() + `")`
	b := splice.NewBatch(p.Lines).Add(f.Line,
		splice.Replace(f, spec.StringVerb()),
		splice.Replace(s, arg),
	)
	return p.commit(b)
}

// scanfArgument reads an FLT through a numbered scratch buffer: the
// conversion becomes a bounded %Ns, the destination becomes
// flt_get_scanf_buffer(-n), and the call is followed by
// dst=flt_atof(flt_get_scanf_buffer(n)). n counts the conversions of the
// call already rewritten. The first one also saves the call's result in
// g_flt_last_scanf_result and yields it as the expression's value.
func scanfArgument(p *Pass, exts []source.Extent) (Outcome, error) {
	if err := expectLocations(exts, 2); err != nil {
		return Unhandled, err
	}
	f, d := exts[0], exts[1]
	if f.Line != d.Line {
		return unhandled("format and destination on different lines")
	}
	if p.Claimed.Has(f.Line) {
		return Claimed, nil
	}
	line := p.Lines.At(f.Line)

	callAt := strings.LastIndex(line[:f.Start], scanfName)
	if callAt < 0 {
		return p.mergePrevious(f.Line)
	}
	call := splice.NextToken(line[callAt:], scanfName)
	if call == "" {
		return p.mergeNext(f.Line)
	}

	n := strings.Count(call, scanfBuffer) + 1
	dst := d.Text(line)
	if strings.HasPrefix(dst, "&") {
		dst = dst[1:]
	} else {
		dst = "*(" + dst + ")"
	}
	spec := cformat.Parse(f.Text(line))
	line, err := splice.Apply(line,
		splice.Replace(f, spec.ScanVerb()),
		splice.Replace(d, scanfBuffer+"(-"+strconv.Itoa(n)+")"),
	)
	if err != nil {
		return unhandled("%v", err)
	}

	// Take in any *scanf prefix and leading '!' so the whole call expression
	// is sequenced.
	expr := ""
	if callAt > 0 {
		expr = splice.PreviousToken(line[:callAt], " \t!")
	}
	expr += splice.NextToken(line[callAt:], scanfName)
	at := strings.Index(line, expr)
	if expr == "" || at < 0 {
		return unhandled("scanf call expression lost after rewrite")
	}

	var repl strings.Builder
	if n == 1 {
		repl.WriteString(scanfLastRead + "=")
	}
	repl.WriteString(expr)
	repl.WriteString("," + dst + "=flt_atof(" + scanfBuffer + "(" + strconv.Itoa(n) + "))")
	if n == 1 {
		repl.WriteString("," + scanfLastRead)
	}
	return p.setLine(f.Line, line[:at]+repl.String()+line[at+len(expr):])
}
