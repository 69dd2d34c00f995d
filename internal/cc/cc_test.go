package cc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"fltc/internal/source"
)

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"9", false},
		{"9.4.0", false},
		{"12.2.0", false},
		{"13", false},
		{"8.5.0", true},
		{"4.2.1", true},
		{"", true},
		{"clang", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := CheckVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckVersion(%q) = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrCompilerTooOld) {
				t.Fatalf("error %v does not wrap ErrCompilerTooOld", err)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := map[string]string{
		"12":            "v12.0.0",
		"9.4":           "v9.4.0",
		"11.3.0":        "v11.3.0",
		"14.1.1-redhat": "v14.1.1",
		" 10.2.1\n":     "v10.2.1",
		"x":             "",
	}
	for in, want := range tests {
		if got := Canonical(in); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWorkspaceHoldsHeaders(t *testing.T) {
	ws, err := NewWorkspace("")
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	for _, name := range []string{HeaderRuntime, HeaderParse} {
		data, err := os.ReadFile(filepath.Join(ws.Dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		embedded, _ := Header(name)
		if !bytes.Equal(data, embedded) {
			t.Fatalf("%s differs from embedded copy", name)
		}
	}
	if got := filepath.Base(ws.Artifact(7, ".json")); got != "__FLT_TMP_07.json" {
		t.Fatalf("artifact = %s", got)
	}
	if err := ws.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(ws.Dir); !os.IsNotExist(err) {
		t.Fatalf("workspace survived Close: %v", err)
	}
}

func TestKeptWorkspaceSurvivesClose(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	ws, err := NewWorkspace(dir)
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	if !ws.Keep() {
		t.Fatal("expected kept workspace")
	}
	if err := ws.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, HeaderRuntime)); err != nil {
		t.Fatalf("kept workspace lost its header: %v", err)
	}
}

func TestKeptWorkspaceRelativeDir(t *testing.T) {
	t.Chdir(t.TempDir())
	ws, err := NewWorkspace("art")
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	if !filepath.IsAbs(ws.Dir) {
		t.Fatalf("workspace dir %q is relative", ws.Dir)
	}
	if !filepath.IsAbs(ws.Artifact(0, ".c")) {
		t.Fatalf("artifact %q is relative", ws.Artifact(0, ".c"))
	}
	if _, err := os.Stat(filepath.Join("art", HeaderRuntime)); err != nil {
		t.Fatalf("header not written under art: %v", err)
	}
}

func TestDiagnoseFlagsEnableFormatWarnings(t *testing.T) {
	if !slices.Contains(diagnoseFlags, "-Wformat") {
		t.Fatalf("diagnoseFlags = %v, printf and scanf checks need -Wformat", diagnoseFlags)
	}
}

func TestFindMissingCompiler(t *testing.T) {
	_, err := Find(context.Background(), "fltc-no-such-gcc")
	if !errors.Is(err, ErrCompilerMissing) {
		t.Fatalf("err = %v, want ErrCompilerMissing", err)
	}
}

func requireGCC(t *testing.T) *GCC {
	t.Helper()
	if _, err := exec.LookPath("gcc"); err != nil {
		t.Skip("gcc not installed")
	}
	g, err := Find(context.Background(), "gcc")
	if err != nil {
		t.Skipf("gcc unusable: %v", err)
	}
	return g
}

func TestDiagnoseWithGCC(t *testing.T) {
	g := requireGCC(t)
	ws, err := NewWorkspace("")
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()
	s := NewSession(g, ws)

	lines := source.NewLines([]string{
		`typedef struct { short h1, h2; } FLT;`,
		`FLT f(FLT y) { return -y; }`,
	})
	diags, err := s.Diagnose(context.Background(), 1, lines)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	found := false
	for _, d := range diags {
		if d.Message == "wrong type argument to unary minus" {
			found = true
		}
	}
	if !found {
		t.Fatalf("unary minus error not reported: %+v", diags)
	}
	if _, err := os.Stat(ws.Artifact(1, ".json")); err != nil {
		t.Fatalf("json artifact missing: %v", err)
	}
}

func TestPreprocessWithGCC(t *testing.T) {
	g := requireGCC(t)
	ws, err := NewWorkspace("")
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	out, err := NewSession(g, ws).Preprocess(context.Background(), []byte("FLT x;\n"))
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if !strings.Contains(string(out), "flt_atof") || !strings.Contains(string(out), "short h1, h2;") {
		t.Fatalf("headers were not included:\n%s", out)
	}
}

func TestPreprocessRelativeKeptWorkspaceWithGCC(t *testing.T) {
	g := requireGCC(t)
	t.Chdir(t.TempDir())
	ws, err := NewWorkspace("art")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewSession(g, ws).Preprocess(context.Background(), []byte("FLT x;\n")); err != nil {
		t.Fatalf("Preprocess in a relative kept workspace: %v", err)
	}
}

func TestDiagnoseReportsFormatWithGCC(t *testing.T) {
	g := requireGCC(t)
	ws, err := NewWorkspace("")
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	lines := source.NewLines([]string{
		`int printf(const char *, ...);`,
		`typedef struct { short h1, h2; } FLT;`,
		`void f(FLT x) { printf("%f\n", x); }`,
	})
	diags, err := NewSession(g, ws).Diagnose(context.Background(), 1, lines)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	for _, d := range diags {
		if strings.HasPrefix(d.Message, "format ‘%f’ expects argument of type ‘double’") {
			return
		}
	}
	t.Fatalf("printf format warning not reported: %+v", diags)
}
