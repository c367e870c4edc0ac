package meta_test

import (
	"strings"
	"testing"

	"exprnorm/internal/meta"
	"exprnorm/internal/types"
)

func TestDescribe(t *testing.T) {
	tbl, w := newWidgetTable(t)
	b := tbl.Types().Builtins()

	mustProp := func(name string, ty types.TypeID, opts meta.AccessorOpts) {
		t.Helper()
		if _, err := tbl.AddProperty(w, name, ty, opts); err != nil {
			t.Fatalf("AddProperty(%s): %v", name, err)
		}
	}
	mustProp("Name", b.String, meta.AccessorOpts{})
	mustProp("Count", b.Int, meta.AccessorOpts{ReadOnly: true})
	mustProp("Tag", b.String, meta.AccessorOpts{NonPublic: true})
	if _, err := tbl.AddIndexer(w, "", b.String, []types.TypeID{b.Int, b.Int}, meta.AccessorOpts{WriteOnly: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.AddMethod(w, "Resize", []types.TypeID{b.Int, b.Int}, b.Void, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.AddMethod(w, "Create", []types.TypeID{b.Int}, w, meta.MethodStatic); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.AddMethod(w, "get_Secret", nil, b.Int, meta.MethodSpecialName|meta.MethodNonPublic); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := meta.Describe(&sb, tbl); err != nil {
		t.Fatalf("Describe: %v", err)
	}
	want := `type Widget
  property Name: string { get; set; }
  property Count: int { get; }
  property Tag: string { get; set; } non-public
  indexer Item(int, int): string { set; }
  method Resize(int, int): void
  method Create(int): Widget [static]
  method get_Secret(): int [special, non-public]
`
	if got := sb.String(); got != want {
		t.Errorf("Describe mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}
