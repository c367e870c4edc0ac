package meta_test

import (
	"errors"
	"testing"

	"exprnorm/internal/meta"
	"exprnorm/internal/types"
)

func newWidgetTable(t *testing.T) (*meta.Table, types.TypeID) {
	t.Helper()
	tbl := meta.NewTable(nil)
	w, err := tbl.DeclareType("Widget")
	if err != nil {
		t.Fatalf("DeclareType: %v", err)
	}
	return tbl, w
}

func TestAddPropertySynthesizesAccessors(t *testing.T) {
	tbl, w := newWidgetTable(t)
	b := tbl.Types().Builtins()

	p, err := tbl.AddProperty(w, "Name", b.String, meta.AccessorOpts{})
	if err != nil {
		t.Fatalf("AddProperty: %v", err)
	}

	get := p.GetAccessor()
	if get == nil || get.Name() != "get_Name" || !get.IsSpecialName() {
		t.Fatalf("getter = %+v", get)
	}
	if get.ParamCount() != 0 || get.ReturnType() != b.String {
		t.Errorf("getter signature: params=%v ret=%d", get.ParameterTypes(), get.ReturnType())
	}
	set := p.SetAccessor()
	if set == nil || set.Name() != "set_Name" || set.ReturnType() != b.Void {
		t.Fatalf("setter = %+v", set)
	}
	if got := set.ParameterTypes(); len(got) != 1 || got[0] != b.String {
		t.Errorf("setter params = %v", got)
	}

	if ms := tbl.Methods(w, "get_Name"); len(ms) != 1 || ms[0] != get {
		t.Errorf("Methods(get_Name) = %v", ms)
	}
	if tbl.LookupInstanceProperty(w, "Name") != p {
		t.Error("LookupInstanceProperty did not return the declared property")
	}
	if tbl.LookupInstanceProperty(w, "name") != nil {
		t.Error("property lookup must be case sensitive")
	}
}

func TestReadOnlyPropertyHasNoSetter(t *testing.T) {
	tbl, w := newWidgetTable(t)
	p, err := tbl.AddProperty(w, "Count", tbl.Types().Builtins().Int, meta.AccessorOpts{ReadOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if p.SetAccessor() != nil {
		t.Error("read-only property has a setter")
	}
	if len(tbl.Methods(w, "set_Count")) != 0 {
		t.Error("setter method registered for read-only property")
	}
}

func TestIndexerOverloads(t *testing.T) {
	tbl, w := newWidgetTable(t)
	b := tbl.Types().Builtins()

	byInt, err := tbl.AddIndexer(w, "", b.String, []types.TypeID{b.Int}, meta.AccessorOpts{})
	if err != nil {
		t.Fatal(err)
	}
	byPair, err := tbl.AddIndexer(w, "", b.Float, []types.TypeID{b.Int, b.String}, meta.AccessorOpts{})
	if err != nil {
		t.Fatal(err)
	}

	if byInt.Name() != meta.DefaultIndexerName {
		t.Errorf("default indexer name = %q", byInt.Name())
	}
	setParams := byPair.SetAccessor().ParameterTypes()
	if len(setParams) != 3 || setParams[2] != b.Float {
		t.Errorf("setter must carry the value last: %v", setParams)
	}

	tests := []struct {
		name   string
		value  types.TypeID
		params []types.TypeID
		want   *meta.Indexer
	}{
		{"single index", b.String, []types.TypeID{b.Int}, byInt},
		{"two indices", b.Float, []types.TypeID{b.Int, b.String}, byPair},
		{"wrong value type", b.Int, []types.TypeID{b.Int}, nil},
		{"wrong arity", b.String, []types.TypeID{b.Int, b.Int}, nil},
		{"no params", b.String, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.LookupIndexer(w, "Item", tt.value, tt.params); got != tt.want {
				t.Errorf("LookupIndexer = %p, want %p", got, tt.want)
			}
		})
	}
}

func TestDuplicatesAreRejected(t *testing.T) {
	tbl, w := newWidgetTable(t)
	b := tbl.Types().Builtins()

	if _, err := tbl.AddMethod(w, "get_Name", nil, b.String, meta.MethodSpecialName); err != nil {
		t.Fatal(err)
	}
	_, err := tbl.AddProperty(w, "Name", b.String, meta.AccessorOpts{})
	if !errors.Is(err, meta.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for accessor clash, got %v", err)
	}
	if _, err := tbl.DeclareType("Widget"); !errors.Is(err, meta.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for type redeclaration, got %v", err)
	}
	if _, err := tbl.DeclareType("int"); err == nil {
		t.Error("declaring a builtin name must fail")
	}
}

func TestFailedAccessorSynthesisLeavesNoMethods(t *testing.T) {
	tbl, w := newWidgetTable(t)
	b := tbl.Types().Builtins()

	// the setter clashes, so the getter must not be registered either
	if _, err := tbl.AddMethod(w, "set_Name", []types.TypeID{b.String}, b.Void, meta.MethodSpecialName); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.AddProperty(w, "Name", b.String, meta.AccessorOpts{}); !errors.Is(err, meta.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if ms := tbl.Methods(w, "get_Name"); len(ms) != 0 {
		t.Errorf("orphan getter registered: %v", ms)
	}
	if tbl.LookupInstanceProperty(w, "Name") != nil {
		t.Error("failed property must not be registered")
	}

	if _, err := tbl.AddMethod(w, "set_Item", []types.TypeID{b.Int, b.String}, b.Void, meta.MethodSpecialName); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.AddIndexer(w, "", b.String, []types.TypeID{b.Int}, meta.AccessorOpts{}); !errors.Is(err, meta.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if ms := tbl.Methods(w, "get_Item"); len(ms) != 0 {
		t.Errorf("orphan indexer getter registered: %v", ms)
	}
	if _, _, methods := tbl.Members(w); len(methods) != 2 {
		t.Errorf("method order holds %d methods, want 2", len(methods))
	}
}

func TestSealedTableRejectsChanges(t *testing.T) {
	tbl, w := newWidgetTable(t)
	tbl.Seal()
	if _, err := tbl.AddProperty(w, "X", tbl.Types().Builtins().Int, meta.AccessorOpts{}); !errors.Is(err, meta.ErrSealed) {
		t.Errorf("expected ErrSealed, got %v", err)
	}
	if _, err := tbl.DeclareType("Other"); !errors.Is(err, meta.ErrSealed) {
		t.Errorf("expected ErrSealed, got %v", err)
	}
}

func TestAccessorName(t *testing.T) {
	tbl, w := newWidgetTable(t)
	b := tbl.Types().Builtins()

	tests := []struct {
		name       string
		flags      meta.MethodFlags
		wantPrefix string
		wantMember string
		wantOK     bool
	}{
		{"get_Name", meta.MethodSpecialName, meta.GetterPrefix, "Name", true},
		{"set_Item", meta.MethodSpecialName, meta.SetterPrefix, "Item", true},
		{"get_Name", 0, "", "", false},
		{"op_Addition", meta.MethodSpecialName, "", "", false},
		{"get_", meta.MethodSpecialName, "", "", false},
	}
	for _, tt := range tests {
		m := meta.NewMethod(w, tt.name, nil, b.Int, tt.flags)
		prefix, member, ok := m.AccessorName()
		if prefix != tt.wantPrefix || member != tt.wantMember || ok != tt.wantOK {
			t.Errorf("%s (flags %b): got (%q, %q, %v)", tt.name, tt.flags, prefix, member, ok)
		}
	}
}
