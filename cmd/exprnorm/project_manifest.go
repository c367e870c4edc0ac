package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "exprnorm.toml"

const noMetadataMessage = "no metadata files\nplease pass --meta or create " + manifestName + " with:\n  [metadata]\n  files = [\"types.meta.toml\"]"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package   packageConfig   `toml:"package"`
	Metadata  metadataConfig  `toml:"metadata"`
	Normalize normalizeConfig `toml:"normalize"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type metadataConfig struct {
	Files []string `toml:"files"`
}

type normalizeConfig struct {
	Inputs []string `toml:"inputs"`
	Jobs   int      `toml:"jobs"`
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
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("metadata") {
		return projectConfig{}, fmt.Errorf("%s: missing [metadata]", path)
	}
	if !meta.IsDefined("metadata", "files") || len(cfg.Metadata.Files) == 0 {
		return projectConfig{}, fmt.Errorf("%s: missing [metadata].files", path)
	}
	if cfg.Normalize.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [normalize].jobs must not be negative", path)
	}
	return cfg, nil
}

// resolve makes manifest-relative paths absolute.
func (m *projectManifest) resolve(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		p = filepath.FromSlash(strings.TrimSpace(p))
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		out[i] = p
	}
	return out
}
