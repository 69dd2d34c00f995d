// Package cformat parses printf/scanf conversion specifiers.
package cformat

import (
	"strconv"
	"strings"
)

// MaxPrecision caps the digits requested from the runtime formatter.
const MaxPrecision = 9

// MaxScanWidth bounds the scratch buffer a scanf conversion may fill.
const MaxScanWidth = 50

type mode uint8

const (
	modeFlags mode = iota + 1
	modeWidth
	modePrecision
)

// Spec is one parsed conversion specifier such as "%-+08.3lf".
type Spec struct {
	Left      bool   // '-'
	Signed    bool   // '+'
	Space     bool   // ' '
	Zero      bool   // '0' among the flags
	Width     string // digits or '*'
	Precision string // includes the leading '.'
	Specifier string // length modifiers and conversion letter, e.g. "lf"
}

// Parse walks spec left to right. A '%' resets every field so the last
// conversion in spec wins. Characters the machine does not know are skipped.
func Parse(spec string) Spec {
	var (
		s Spec
		m = modeFlags
	)
	var width, prec, conv strings.Builder
	for i := 0; i < len(spec); i++ {
		c := spec[i]
		switch {
		case c == '%':
			s = Spec{}
			width.Reset()
			prec.Reset()
			conv.Reset()
			m = modeFlags
		case c == '-':
			s.Left = true
		case c == '+':
			s.Signed = true
		case c == ' ':
			s.Space = true
		case c == '0':
			switch m {
			case modeFlags:
				s.Zero = true
			case modeWidth:
				width.WriteByte(c)
			case modePrecision:
				prec.WriteByte(c)
			}
		case c >= '1' && c <= '9' || c == '*':
			switch m {
			case modeFlags, modeWidth:
				m = modeWidth
				width.WriteByte(c)
			case modePrecision:
				prec.WriteByte(c)
			}
		case c == '.':
			m = modePrecision
			prec.WriteByte(c)
		case strings.IndexByte("EeFfGglh", c) >= 0:
			m = modePrecision
			conv.WriteByte(c)
		}
	}
	s.Width = width.String()
	s.Precision = prec.String()
	s.Specifier = conv.String()
	return s
}

// CappedPrecision returns the precision limited to MaxPrecision digits.
func (s Spec) CappedPrecision() string {
	if len(s.Precision) > 2 {
		return "." + strconv.Itoa(MaxPrecision)
	}
	return s.Precision
}

// StringVerb is the %s conversion that prints a preformatted value with
// the same alignment and field width.
func (s Spec) StringVerb() string {
	var b strings.Builder
	b.WriteByte('%')
	if s.Left {
		b.WriteByte('-')
	}
	b.WriteString(s.Width)
	b.WriteByte('s')
	return b.String()
}

// SubFormat is the conversion handed to the runtime formatter: sign flags,
// capped precision and the original specifier.
func (s Spec) SubFormat() string {
	var b strings.Builder
	b.WriteByte('%')
	if s.Signed {
		b.WriteByte('+')
	}
	if s.Space {
		b.WriteByte(' ')
	}
	b.WriteString(s.CappedPrecision())
	b.WriteString(s.Specifier)
	return b.String()
}

// ScanVerb is the bounded %Ns conversion that reads a number as text.
// Missing or oversized widths fall back to MaxScanWidth.
func (s Spec) ScanVerb() string {
	w := s.Width
	if n, err := strconv.Atoi(w); err != nil || n > MaxScanWidth {
		w = strconv.Itoa(MaxScanWidth)
	}
	return "%" + w + "s"
}
