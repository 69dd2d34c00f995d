package literal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConstant is returned when an expression calls something other than
// the constant-foldable runtime entry points or names a variable.
var ErrNotConstant = errors.New("expression is not constant")

type foldFunc struct {
	arity int
	fn    func(args []float64) (float64, error)
}

var foldable = map[string]foldFunc{
	"flt_atof":     {1, identity},
	"flt_ltof":     {1, identity},
	"flt_ultof":    {1, identity},
	"flt_negated":  {1, func(a []float64) (float64, error) { return -a[0], nil }},
	"flt_add":      {2, func(a []float64) (float64, error) { return a[0] + a[1], nil }},
	"flt_subtract": {2, func(a []float64) (float64, error) { return a[0] - a[1], nil }},
	"flt_multiply": {2, func(a []float64) (float64, error) { return a[0] * a[1], nil }},
	"flt_divide": {2, func(a []float64) (float64, error) {
		if a[1] == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrNotConstant)
		}
		return a[0] / a[1], nil
	}},
}

func identity(a []float64) (float64, error) { return a[0], nil }

// Eval folds an expression built from numerals, quoted numerals and the
// runtime's conversion and arithmetic calls.
func Eval(expr string) (float64, error) {
	p := &parser{src: expr}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, fmt.Errorf("%w: trailing %q", ErrNotConstant, p.src[p.pos:])
	}
	return v, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return fmt.Errorf("%w: expected %q at %d in %q", ErrNotConstant, c, p.pos, p.src)
	}
	p.pos++
	return nil
}

func (p *parser) expr() (float64, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '"':
		return p.quoted()
	case c == '-' || c == '+' || c == '.' || c >= '0' && c <= '9':
		return p.numeral()
	case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		return p.call()
	case c == '(':
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		return v, p.expect(')')
	}
	return 0, fmt.Errorf("%w: unexpected input at %d in %q", ErrNotConstant, p.pos, p.src)
}

func (p *parser) quoted() (float64, error) {
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], '"')
	if end < 0 {
		return 0, fmt.Errorf("%w: unterminated string", ErrNotConstant)
	}
	text := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	v, err := parse(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotConstant, err)
	}
	return v, nil
}

func (p *parser) numeral() (float64, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		isExpSign := (c == '-' || c == '+') && p.pos > start && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E')
		if !(c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' || isExpSign || strings.IndexByte("FfLlUu", c) >= 0) {
			break
		}
		p.pos++
	}
	text := strings.TrimRight(p.src[start:p.pos], "Uu")
	v, err := parse(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotConstant, err)
	}
	return v, nil
}

func (p *parser) call() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			break
		}
		p.pos++
	}
	name := p.src[start:p.pos]
	f, ok := foldable[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotConstant, name)
	}
	if err := p.expect('('); err != nil {
		return 0, err
	}
	args := make([]float64, 0, f.arity)
	for i := 0; i < f.arity; i++ {
		if i > 0 {
			if err := p.expect(','); err != nil {
				return 0, err
			}
		}
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}
	if err := p.expect(')'); err != nil {
		return 0, err
	}
	return f.fn(args)
}
