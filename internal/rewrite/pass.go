package rewrite

import (
	"fmt"
	"strings"

	"fltc/internal/classify"
	"fltc/internal/source"
	"fltc/internal/splice"
)

// Substitution records a compiler-compatibility spelling so it can be undone
// when the result is written out.
type Substitution struct {
	Edited   string
	Original string
}

// SubstitutionLog accumulates substitutions for a whole run.
type SubstitutionLog struct {
	entries []Substitution
}

// Record appends a substitution.
func (l *SubstitutionLog) Record(edited, original string) {
	l.entries = append(l.entries, Substitution{Edited: edited, Original: original})
}

// Len returns the number of recorded substitutions.
func (l *SubstitutionLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries returns the substitutions in recording order.
func (l *SubstitutionLog) Entries() []Substitution {
	if l == nil {
		return nil
	}
	return append([]Substitution(nil), l.entries...)
}

// Undo replays the log in reverse over text, restoring original spellings.
func (l *SubstitutionLog) Undo(text string) string {
	if l == nil {
		return text
	}
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		text = strings.ReplaceAll(text, e.Edited, e.Original)
	}
	return text
}

// Pass is the mutable state one compiler pass works on. Lines keeps its
// length for the whole pass; Claimed starts empty.
type Pass struct {
	Lines   *source.Lines
	Claimed *source.LineSet
	Subs    *SubstitutionLog
	Phase   classify.Phase
}

// NewPass starts a pass over lines.
func NewPass(lines *source.Lines, subs *SubstitutionLog, phase classify.Phase) *Pass {
	if subs == nil {
		subs = &SubstitutionLog{}
	}
	return &Pass{
		Lines:   lines,
		Claimed: source.NewLineSet(),
		Subs:    subs,
		Phase:   phase,
	}
}

func (p *Pass) claimed(exts ...source.Extent) bool {
	for _, e := range exts {
		if p.Claimed.Has(e.Line) {
			return true
		}
	}
	return false
}

func (p *Pass) commit(b *splice.Batch) (Outcome, error) {
	for _, l := range b.Lines() {
		if p.Claimed.Has(l) {
			return Claimed, nil
		}
	}
	if err := b.Commit(p.Claimed); err != nil {
		return unhandled("%v", err)
	}
	return Applied, nil
}

// setLine replaces line i wholesale and claims it.
func (p *Pass) setLine(i int, text string) (Outcome, error) {
	if p.Claimed.Has(i) {
		return Claimed, nil
	}
	p.Lines.Set(i, text)
	p.Claimed.Add(i)
	return Applied, nil
}

func (p *Pass) mergeNext(i int) (Outcome, error) {
	if p.Claimed.Any(i, i+1) {
		return Claimed, nil
	}
	if err := splice.MergeNext(p.Lines, p.Claimed, i); err != nil {
		return unhandled("%v", err)
	}
	return Deferred, nil
}

func (p *Pass) mergePrevious(i int) (Outcome, error) {
	if p.Claimed.Any(i, i-1) {
		return Claimed, nil
	}
	if err := splice.MergePrevious(p.Lines, p.Claimed, i); err != nil {
		return unhandled("%v", err)
	}
	return Deferred, nil
}

// mergeAround pulls in the previous and/or next line when an operand is
// missing on either side.
func (p *Pass) mergeAround(i int, needLeft, needRight bool) (Outcome, error) {
	if p.Claimed.Has(i) || needLeft && p.Claimed.Has(i-1) || needRight && p.Claimed.Has(i+1) {
		return Claimed, nil
	}
	if needLeft && !p.Lines.Valid(i-1) || needRight && !p.Lines.Valid(i+1) {
		return unhandled("operand of line %d lies outside the buffer", i+1)
	}
	if needRight {
		if err := splice.MergeNext(p.Lines, p.Claimed, i); err != nil {
			return unhandled("%v", err)
		}
	}
	if needLeft {
		if err := splice.MergePrevious(p.Lines, p.Claimed, i); err != nil {
			return unhandled("%v", err)
		}
	}
	return Deferred, nil
}

func wrapCall(fn, arg string) string {
	return fmt.Sprintf("%s(%s)", fn, arg)
}

// literalCall is the constructor call for a numeral operand.
func literalCall(numeral string) string {
	return `flt_atof("` + numeral + `")`
}
