package cc

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed include/flt.h include/flt-parse.h
var headers embed.FS

// Header names as they are passed to gcc -include.
const (
	HeaderRuntime = "flt.h"
	HeaderParse   = "flt-parse.h"
)

// ArtifactPrefix names every per-pass file.
const ArtifactPrefix = "__FLT_TMP_"

// Workspace is the directory one conversion run compiles in. It holds the
// two FLT headers and the per-pass artifacts.
type Workspace struct {
	Dir  string
	keep bool
}

// NewWorkspace creates a temporary workspace, or uses keepDir when it is
// set, in which case the artifacts outlive the run.
func NewWorkspace(keepDir string) (*Workspace, error) {
	ws := &Workspace{}
	if keepDir != "" {
		// gcc runs inside the workspace, so artifact paths must not be
		// relative to the caller's directory
		abs, err := filepath.Abs(keepDir)
		if err != nil {
			return nil, fmt.Errorf("artifact dir: %w", err)
		}
		keepDir = abs
		if err := os.MkdirAll(keepDir, 0o755); err != nil {
			return nil, fmt.Errorf("artifact dir: %w", err)
		}
		ws.Dir, ws.keep = keepDir, true
	} else {
		dir, err := os.MkdirTemp("", "fltc-*")
		if err != nil {
			return nil, fmt.Errorf("work dir: %w", err)
		}
		ws.Dir = dir
	}
	for _, name := range []string{HeaderRuntime, HeaderParse} {
		data, err := headers.ReadFile("include/" + name)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(ws.Dir, name), data, 0o600); err != nil {
			_ = ws.Close()
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}
	return ws, nil
}

// Artifact returns the path of the per-pass file with the given extension.
// Pass numbers are zero padded to two digits.
func (w *Workspace) Artifact(pass int, ext string) string {
	return filepath.Join(w.Dir, fmt.Sprintf("%s%02d%s", ArtifactPrefix, pass, ext))
}

// Keep reports whether the artifacts survive Close.
func (w *Workspace) Keep() bool {
	return w.keep
}

// Close removes a temporary workspace. Kept workspaces are left alone.
func (w *Workspace) Close() error {
	if w == nil || w.keep || w.Dir == "" {
		return nil
	}
	return os.RemoveAll(w.Dir)
}

// Header returns the embedded copy of a header.
func Header(name string) ([]byte, error) {
	return headers.ReadFile("include/" + name)
}
