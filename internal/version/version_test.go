package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredKeepsText(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = true

	tests := []string{"0.1.0-dev", "1.2.3", "2.0.0+build.7", "not-a-version"}
	for _, v := range tests {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() with %q = %q", v, got)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = false

	Version = "1.2.3-rc1"
	got := Colored()
	if got == Version || got[len(got)-4:] != "-rc1" {
		t.Errorf("Colored() = %q", got)
	}
}

func TestCurrent(t *testing.T) {
	orig := GitCommit
	defer func() { GitCommit = orig }()
	GitCommit = "abc123"
	if info := Current(); info.Version != Version || info.GitCommit != "abc123" {
		t.Errorf("Current() = %+v", info)
	}
}
