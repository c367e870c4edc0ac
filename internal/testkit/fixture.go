package testkit

import (
	"strings"
	"testing"

	"exprnorm/internal/expr"
	"exprnorm/internal/meta"
	"exprnorm/internal/source"
	"exprnorm/internal/types"
)

// WidgetSchema is the metadata file behind NewWidgets.
const WidgetSchema = `
schema = "1.0.0"

[[type]]
name = "Widget"

  [[type.property]]
  name = "Name"
  type = "string"

  [[type.property]]
  name = "Count"
  type = "int"
  read_only = true

  [[type.property]]
  name = "Parent"
  type = "Widget"

  [[type.property]]
  name = "Tag"
  type = "string"
  non_public = true

  [[type.indexer]]
  type = "string"
  params = ["int"]

  [[type.indexer]]
  type = "string"
  params = ["int", "int"]

  [[type.method]]
  name = "Resize"
  params = ["int", "int"]

  [[type.method]]
  name = "Describe"
  returns = "string"

  [[type.method]]
  name = "Create"
  params = ["int"]
  returns = "Widget"
  static = true

  [[type.method]]
  name = "get_Secret"
  returns = "int"
  special = true

  [[type.method]]
  name = "set_Count"
  params = ["int"]
  special = true

  [[type.method]]
  name = "get_Label"
  params = ["int"]
  returns = "string"
  special = true
`

// Widgets is a small metadata set with properties, indexers of arity one and two,
// ordinary methods and hand-written special-name lookalikes.
type Widgets struct {
	Table  *meta.Table
	Types  *types.Interner
	Widget types.TypeID

	Name   *meta.Property
	Count  *meta.Property // read-only
	Parent *meta.Property
	Tag    *meta.Property // non-public

	Item1 *meta.Indexer // Item[int] string
	Item2 *meta.Indexer // Item[int, int] string

	Resize   *meta.Method
	Describe *meta.Method
	Create   *meta.Method // static
	Secret   *meta.Method // special get_Secret without a property
	SetCount *meta.Method // special set_Count next to a read-only Count
	Label    *meta.Method // special get_Label(int) without an indexer
}

// NewWidgets builds the Widget metadata through the TOML schema path.
func NewWidgets(tb testing.TB) *Widgets {
	tb.Helper()
	s, err := meta.Decode(strings.NewReader(WidgetSchema), "widget.toml")
	if err != nil {
		tb.Fatalf("decode widget schema: %v", err)
	}
	tbl, err := meta.Build(s)
	if err != nil {
		tb.Fatalf("build widget table: %v", err)
	}
	in := tbl.Types()
	widget, _ := in.ByName("Widget")
	b := in.Builtins()
	one := func(ms []*meta.Method, name string) *meta.Method {
		if len(ms) != 1 {
			tb.Fatalf("expected one %s overload, got %d", name, len(ms))
		}
		return ms[0]
	}
	return &Widgets{
		Table:    tbl,
		Types:    in,
		Widget:   widget,
		Name:     tbl.LookupInstanceProperty(widget, "Name"),
		Count:    tbl.LookupInstanceProperty(widget, "Count"),
		Parent:   tbl.LookupInstanceProperty(widget, "Parent"),
		Tag:      tbl.LookupInstanceProperty(widget, "Tag"),
		Item1:    tbl.LookupIndexer(widget, "Item", b.String, []types.TypeID{b.Int}),
		Item2:    tbl.LookupIndexer(widget, "Item", b.String, []types.TypeID{b.Int, b.Int}),
		Resize:   one(tbl.Methods(widget, "Resize"), "Resize"),
		Describe: one(tbl.Methods(widget, "Describe"), "Describe"),
		Create:   one(tbl.Methods(widget, "Create"), "Create"),
		Secret:   one(tbl.Methods(widget, "get_Secret"), "get_Secret"),
		SetCount: one(tbl.Methods(widget, "set_Count"), "set_Count"),
		Label:    one(tbl.Methods(widget, "get_Label"), "get_Label"),
	}
}

// Param returns a fresh Widget-typed parameter node.
func (w *Widgets) Param(name string) *expr.Expr {
	return expr.NewParameter(name, w.Widget, source.Span{})
}

// Int returns an int constant node.
func (w *Widgets) Int(v int64) *expr.Expr {
	return expr.NewInt(w.Types.Builtins().Int, v, source.Span{})
}

// Str returns a string constant node.
func (w *Widgets) Str(v string) *expr.Expr {
	return expr.NewString(w.Types.Builtins().String, v, source.Span{})
}

// Call builds an instance (or, with a nil receiver, static) call node.
func (w *Widgets) Call(instance *expr.Expr, m *meta.Method, args ...*expr.Expr) *expr.Expr {
	return expr.NewCall(instance, m, args, source.Span{})
}
