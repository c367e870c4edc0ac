package meta_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"exprnorm/internal/meta"
)

const widgetSchema = `
schema = "1.2.0"

[[type]]
name = "Widget"

  [[type.property]]
  name = "Name"
  type = "string"

  [[type.property]]
  name = "Owner"
  type = "Person"
  read_only = true

  [[type.indexer]]
  type = "string"
  params = ["int"]

  [[type.method]]
  name = "Resize"
  params = ["int", "int"]

  [[type.method]]
  name = "get_Secret"
  returns = "int"
  special = true

[[type]]
name = "Person"
`

func TestDecodeAndBuild(t *testing.T) {
	s, err := meta.Decode(strings.NewReader(widgetSchema), "widget.toml")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tbl, err := meta.Build(s)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !tbl.Sealed() {
		t.Error("Build must seal the table")
	}

	w, ok := tbl.Types().ByName("Widget")
	if !ok {
		t.Fatal("Widget not declared")
	}
	person, _ := tbl.Types().ByName("Person")
	owner := tbl.LookupInstanceProperty(w, "Owner")
	if owner == nil || owner.ValueType() != person || owner.SetAccessor() != nil {
		t.Errorf("Owner = %+v", owner)
	}

	resize := tbl.Methods(w, "Resize")
	if len(resize) != 1 || resize[0].ReturnType() != tbl.Types().Builtins().Void || resize[0].IsSpecialName() {
		t.Errorf("Resize = %+v", resize)
	}
	secret := tbl.Methods(w, "get_Secret")
	if len(secret) != 1 || !secret[0].IsSpecialName() {
		t.Errorf("get_Secret = %+v", secret)
	}
	if tbl.LookupInstanceProperty(w, "Secret") != nil {
		t.Error("a hand-written get_Secret must not create a property")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing version", "[[type]]\nname = \"A\"\n", "missing schema version"},
		{"future major", "schema = \"2.0.0\"\n", "unsupported schema version"},
		{"garbage version", "schema = \"banana\"\n", "invalid schema version"},
		{"unknown key", "schema = \"1.0.0\"\ncolour = 1\n", "unknown keys: colour"},
		{"bad toml", "schema = ", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := meta.Decode(strings.NewReader(tt.src), "bad.toml")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestBuildReportsAllProblems(t *testing.T) {
	src := `
schema = "1.0.0"
[[type]]
name = "A"
  [[type.property]]
  name = "X"
  type = "Missing"
  [[type.indexer]]
  type = "void"
  params = ["int"]
`
	s, err := meta.Decode(strings.NewReader(src), "a.toml")
	if err != nil {
		t.Fatal(err)
	}
	_, err = meta.Build(s)
	if err == nil {
		t.Fatal("expected build errors")
	}
	msg := err.Error()
	for _, want := range []string{`unknown type "Missing"`, "void is not a value type"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q lacks %q", msg, want)
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache, err := meta.OpenCacheDir(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "widget.toml")
	if err := os.WriteFile(path, []byte(widgetSchema), 0o600); err != nil {
		t.Fatal(err)
	}

	first, err := meta.Load(path, cache)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cached, ok, err := cache.Get(meta.Key([]byte(widgetSchema)))
	if err != nil || !ok {
		t.Fatalf("cache miss after Load: ok=%v err=%v", ok, err)
	}
	if cached.Version != first.Version || len(cached.Types) != len(first.Types) {
		t.Errorf("cached schema differs: %+v vs %+v", cached, first)
	}
	if got := cached.Types[0].Indexers[0].Params; len(got) != 1 || got[0] != "int" {
		t.Errorf("indexer params lost in cache: %v", got)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(meta.Key([]byte(widgetSchema))); ok {
		t.Error("entry survived DropAll")
	}
}
