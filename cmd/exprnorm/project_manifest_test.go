package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, manifestName), []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestLoadProjectManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "demo"

[metadata]
files = ["meta/widgets.meta.toml"]

[normalize]
inputs = ["exprs"]
jobs = 2
`)
	nested := filepath.Join(root, "exprs", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("loadProjectManifest: ok=%v err=%v", ok, err)
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	if m.Root != rootAbs {
		t.Errorf("Root = %q, want %q", m.Root, rootAbs)
	}
	if m.Config.Package.Name != "demo" || m.Config.Normalize.Jobs != 2 {
		t.Errorf("config = %+v", m.Config)
	}
	got := m.resolve(m.Config.Metadata.Files)
	want := filepath.Join(rootAbs, "meta", "widgets.meta.toml")
	if len(got) != 1 || got[0] != want {
		t.Errorf("resolve = %v, want [%s]", got, want)
	}
}

func TestLoadProjectManifestMissing(t *testing.T) {
	m, ok, err := loadProjectManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// выше TempDir манифеста быть не должно
	if ok && m != nil && strings.HasPrefix(m.Path, os.TempDir()) {
		t.Fatalf("found unexpected manifest %s", m.Path)
	}
}

func TestLoadProjectManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no package", "[metadata]\nfiles = [\"a.toml\"]\n", "missing [package]"},
		{"no name", "[package]\n[metadata]\nfiles = [\"a.toml\"]\n", "missing [package].name"},
		{"no metadata", "[package]\nname = \"x\"\n", "missing [metadata]"},
		{"empty files", "[package]\nname = \"x\"\n[metadata]\nfiles = []\n", "missing [metadata].files"},
		{"negative jobs", "[package]\nname = \"x\"\n[metadata]\nfiles = [\"a\"]\n[normalize]\njobs = -1\n", "jobs must not be negative"},
		{"bad toml", "[package\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.content)
			_, ok, err := loadProjectManifest(dir)
			if !ok {
				t.Fatal("manifest not found")
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestReadOptionEnums(t *testing.T) {
	if u, err := parseProgressUI(" ON "); err != nil || u != progressAlways {
		t.Errorf("parseProgressUI(ON) = %d, %v", u, err)
	}
	if _, err := parseProgressUI("sometimes"); err == nil {
		t.Error("parseProgressUI accepted an unknown value")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if progressAuto.wanted(f) {
		t.Error("auto progress UI drawn on a regular file")
	}
	if !progressAlways.wanted(f) || progressNever.wanted(f) {
		t.Error("on/off must ignore the output kind")
	}
	if f, err := readOutputFormat(""); err != nil || f != formatPretty {
		t.Errorf("readOutputFormat(\"\") = %q, %v", f, err)
	}
	if f, err := readOutputFormat("Tree"); err != nil || f != formatTree {
		t.Errorf("readOutputFormat(Tree) = %q, %v", f, err)
	}
	if _, err := readOutputFormat("xml"); err == nil {
		t.Error("readOutputFormat accepted xml")
	}
}
