package cc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"

	"fltc/internal/diag"
	"fltc/internal/source"
)

// Session compiles one file's passes inside a workspace.
type Session struct {
	GCC *GCC
	WS  *Workspace
	// Include lists extra -I directories, typically the input's own
	// directory so local headers still resolve.
	Include []string
}

// NewSession binds gcc to a workspace.
func NewSession(g *GCC, ws *Workspace, include ...string) *Session {
	return &Session{GCC: g, WS: ws, Include: include}
}

// Preprocess runs gcc -E over code with the parse and runtime headers
// forced in. The input, output and stderr are kept as pass 0 artifacts.
func (s *Session) Preprocess(ctx context.Context, code []byte) ([]byte, error) {
	in := s.WS.Artifact(0, ".c")
	if err := os.WriteFile(in, code, 0o600); err != nil {
		return nil, err
	}
	args := []string{"-fdiagnostics-format=text", "-E", "-I."}
	for _, dir := range s.Include {
		args = append(args, "-I"+dir)
	}
	args = append(args, "-include", HeaderParse, "-include", HeaderRuntime)
	args = append(args, s.GCC.Extra...)
	args = append(args, in)

	stdout, stderr, err := s.GCC.run(ctx, s.WS.Dir, args...)
	_ = os.WriteFile(s.WS.Artifact(0, ".i"), stdout, 0o600)
	_ = os.WriteFile(s.WS.Artifact(0, ".txt"), stderr, 0o600)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w: %s", err, firstLine(stderr))
	}
	return stdout, nil
}

// diagnoseFlags compile one pass. -Wformat is off by default without -Wall,
// and the printf and scanf rewrites depend on its warnings.
var diagnoseFlags = []string{"-fdiagnostics-format=json", "-Wformat", "-c"}

// Diagnose writes the buffer as the pass's .c artifact, compiles it with
// JSON diagnostics and decodes them. A non-zero exit is expected while
// the buffer still has errors and is not itself a failure.
func (s *Session) Diagnose(ctx context.Context, pass int, lines *source.Lines) ([]diag.Diagnostic, error) {
	in := s.WS.Artifact(pass, ".c")
	if err := os.WriteFile(in, lines.Bytes(), 0o600); err != nil {
		return nil, err
	}
	args := append(slices.Clone(diagnoseFlags), in, "-o", os.DevNull)
	_, stderr, err := s.GCC.run(ctx, s.WS.Dir, args...)
	if werr := os.WriteFile(s.WS.Artifact(pass, ".json"), stderr, 0o600); werr != nil {
		return nil, werr
	}
	var exit *exec.ExitError
	if err != nil && !errors.As(err, &exit) {
		return nil, fmt.Errorf("%w: %v", ErrCompilerMissing, err)
	}
	diags, derr := diag.DecodeJSON(stderr)
	if derr != nil {
		return nil, fmt.Errorf("pass %02d diagnostics: %w", pass, derr)
	}
	if err != nil && len(diags) == 0 {
		return nil, fmt.Errorf("pass %02d: gcc failed without diagnostics: %s", pass, firstLine(stderr))
	}
	return diags, nil
}

func firstLine(b []byte) string {
	for i, c := range b {
		if c == '\n' {
			return string(b[:i])
		}
	}
	return string(b)
}
