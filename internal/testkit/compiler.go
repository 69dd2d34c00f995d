// Package testkit provides fake compilers and diagnostic builders for
// tests that drive the conversion loop without gcc.
package testkit

import (
	"context"
	"strings"
	"sync"

	"fortio.org/safecast"

	"fltc/internal/diag"
	"fltc/internal/source"
)

// Responder produces the diagnostics of one pass from the current buffer.
type Responder func(pass int, lines *source.Lines) []diag.Diagnostic

// ScriptedCompiler replays a Responder and records every buffer it was
// asked to compile.
type ScriptedCompiler struct {
	mu      sync.Mutex
	respond Responder
	seen    []string
	err     error
	failAt  int
}

// NewScripted wraps a responder.
func NewScripted(r Responder) *ScriptedCompiler {
	return &ScriptedCompiler{respond: r}
}

// Fixed returns a compiler that reports passes[i] on pass i+1 and nothing
// once the list runs out.
func Fixed(passes ...[]diag.Diagnostic) *ScriptedCompiler {
	return NewScripted(func(pass int, _ *source.Lines) []diag.Diagnostic {
		if pass-1 < len(passes) {
			return passes[pass-1]
		}
		return nil
	})
}

// Forever returns a compiler that reports the same diagnostics every pass.
func Forever(diags ...diag.Diagnostic) *ScriptedCompiler {
	return NewScripted(func(int, *source.Lines) []diag.Diagnostic {
		return diags
	})
}

// FailAt makes pass n return err instead of diagnostics.
func (c *ScriptedCompiler) FailAt(n int, err error) *ScriptedCompiler {
	c.failAt = n
	c.err = err
	return c
}

// Diagnose implements the driver's compiler contract.
func (c *ScriptedCompiler) Diagnose(ctx context.Context, pass int, lines *source.Lines) ([]diag.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.seen = append(c.seen, lines.String())
	c.mu.Unlock()
	if c.err != nil && pass == c.failAt {
		return nil, c.err
	}
	return c.respond(pass, lines), nil
}

// Calls returns how many passes were compiled.
func (c *ScriptedCompiler) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

// Seen returns the buffer text of every pass in order.
func (c *ScriptedCompiler) Seen() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.seen...)
}

// Find locates the first occurrence of needle in the buffer and returns a
// 1-based location spanning it.
func Find(lines *source.Lines, needle string) (source.Location, bool) {
	for i := range lines.Len() {
		col := strings.Index(lines.At(i), needle)
		if col < 0 {
			continue
		}
		return Span(i, col, col+len(needle)-1), true
	}
	return source.Location{}, false
}

// Span builds a location from a 0-based line index and an inclusive
// 0-based byte range.
func Span(line, start, end int) source.Location {
	l, _ := safecast.Conv[uint32](line + 1)
	s, _ := safecast.Conv[uint32](start + 1)
	e, _ := safecast.Conv[uint32](end + 1)
	return source.At(l, s, e)
}

// Caret builds a location that carries only a caret point.
func Caret(line, col int) source.Location {
	l, _ := safecast.Conv[uint32](line + 1)
	c, _ := safecast.Conv[uint32](col + 1)
	return source.Location{Caret: &source.Point{Line: l, ByteColumn: c}}
}
