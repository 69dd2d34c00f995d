// Package cc wraps the host gcc: the version gate, the preprocessing run and
// the per-pass JSON diagnostic compile.
package cc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/mod/semver"
)

// MinVersion is the oldest gcc that can emit JSON diagnostics.
const MinVersion = "v9.0.0"

var (
	// ErrCompilerMissing is returned when gcc cannot be found or run.
	ErrCompilerMissing = errors.New("gcc is not available")
	// ErrCompilerTooOld is returned when gcc predates MinVersion.
	ErrCompilerTooOld = errors.New("gcc version is not supported")
)

// GCC is a handle on one gcc binary.
type GCC struct {
	Path    string   // resolved executable
	Version string   // as printed by -dumpfullversion, e.g. "12.2.0"
	Extra   []string // options added to the preprocessing run
}

// Find resolves name (default "gcc") on PATH and checks its version.
func Find(ctx context.Context, name string) (*GCC, error) {
	if name == "" {
		name = "gcc"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompilerMissing, err)
	}
	g := &GCC{Path: path}
	out, err := g.output(ctx, "", "-dumpfullversion", "-dumpversion")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompilerMissing, err)
	}
	g.Version = strings.TrimSpace(string(out))
	if err := CheckVersion(g.Version); err != nil {
		return g, err
	}
	return g, nil
}

// CheckVersion reports whether a gcc version string satisfies MinVersion.
func CheckVersion(version string) error {
	v := Canonical(version)
	if v == "" {
		return fmt.Errorf("%w: cannot parse version %q", ErrCompilerTooOld, version)
	}
	if semver.Compare(v, MinVersion) < 0 {
		return fmt.Errorf("%w: requires gcc v9.0 or later, installed is gcc v%s", ErrCompilerTooOld, version)
	}
	return nil
}

// Canonical turns gcc's "12", "9.4" or "11.3.0" into a semver string, or ""
// when the text is not a version.
func Canonical(version string) string {
	version = strings.TrimSpace(version)
	if i := strings.IndexAny(version, " -+"); i >= 0 {
		version = version[:i]
	}
	v := "v" + version
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// utf8Env makes gcc quote type names with ‘’ rather than plain
// apostrophes, which is what the classifier expects.
func utf8Env() []string {
	env := make([]string, 0, len(os.Environ())+2)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "LC_ALL=") || strings.HasPrefix(kv, "LANG=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "LC_ALL=C.UTF-8", "LANG=C.UTF-8")
}

// output runs gcc and returns stdout, failing on a non-zero exit.
func (g *GCC) output(ctx context.Context, dir string, args ...string) ([]byte, error) {
	stdout, stderr, err := g.run(ctx, dir, args...)
	if err != nil {
		return stdout, fmt.Errorf("%s %s: %w: %s", g.Path, strings.Join(args, " "), err, bytes.TrimSpace(stderr))
	}
	return stdout, nil
}

// run executes gcc in dir with a UTF-8 locale.
func (g *GCC) run(ctx context.Context, dir string, args ...string) (stdout, stderr []byte, err error) {
	// #nosec G204 -- the binary is resolved through LookPath and arguments are not shell-expanded
	cmd := exec.CommandContext(ctx, g.Path, args...)
	cmd.Dir = dir
	cmd.Env = utf8Env()
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err = cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}
