package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "fltc.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

// projectConfig mirrors fltc.toml:
//
//	[compiler]
//	path = "gcc-12"
//	extra = ["-DTARGET_C64", "-Iinclude"]
//
//	[output]
//	suffix = "-flt"
//
//	[cache]
//	enabled = true
type projectConfig struct {
	Compiler compilerConfig `toml:"compiler"`
	Output   outputConfig   `toml:"output"`
	Cache    cacheConfig    `toml:"cache"`
}

type compilerConfig struct {
	Path  string   `toml:"path"`
	Extra []string `toml:"extra"`
}

type outputConfig struct {
	Suffix string `toml:"suffix"`
}

type cacheConfig struct {
	Enabled *bool `toml:"enabled"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest finds fltc.toml at or above startDir. A missing file
// is not an error.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("output", "suffix") {
		s := cfg.Output.Suffix
		if strings.TrimSpace(s) == "" || strings.ContainsAny(s, `/\`) {
			return projectConfig{}, fmt.Errorf("%s: [output].suffix must be a non-empty file name suffix", path)
		}
	}
	return cfg, nil
}

// cacheEnabled reports the [cache] setting, defaulting to on.
func (c projectConfig) cacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}
