package meta

import (
	"errors"
	"fmt"
	"slices"

	"exprnorm/internal/types"
)

// ErrSealed is returned when a sealed table is modified.
var ErrSealed = errors.New("meta: table is sealed")

// ErrDuplicate is wrapped by errors reporting a member declared twice.
var ErrDuplicate = errors.New("duplicate member")

type memberKey struct {
	decl types.TypeID
	name string
}

// Table holds every descriptor of a metadata set and resolves them by name and signature.
type Table struct {
	types    *types.Interner
	sealed   bool
	decls    []types.TypeID
	declared map[types.TypeID]bool

	methods    map[memberKey][]*Method
	properties map[memberKey]*Property
	indexers   map[memberKey][]*Indexer
	propOrder  map[types.TypeID][]*Property
	ixOrder    map[types.TypeID][]*Indexer
	methOrder  map[types.TypeID][]*Method
}

// NewTable creates an empty table over the given interner. A nil interner gets a fresh one.
func NewTable(in *types.Interner) *Table {
	if in == nil {
		in = types.NewInterner()
	}
	return &Table{
		types:      in,
		declared:   make(map[types.TypeID]bool),
		methods:    make(map[memberKey][]*Method),
		properties: make(map[memberKey]*Property),
		indexers:   make(map[memberKey][]*Indexer),
		propOrder:  make(map[types.TypeID][]*Property),
		ixOrder:    make(map[types.TypeID][]*Indexer),
		methOrder:  make(map[types.TypeID][]*Method),
	}
}

// Types returns the interner the table's descriptors are typed against.
func (t *Table) Types() *types.Interner { return t.types }

// Seal freezes the table. Lookups on a sealed table are safe for concurrent use.
func (t *Table) Seal() { t.sealed = true }

// Sealed reports whether Seal was called.
func (t *Table) Sealed() bool { return t.sealed }

// DeclareType registers a class type and returns its TypeID.
func (t *Table) DeclareType(name string) (types.TypeID, error) {
	if t.sealed {
		return types.NoTypeID, ErrSealed
	}
	if name == "" {
		return types.NoTypeID, errors.New("meta: empty type name")
	}
	if id, ok := t.types.ByName(name); ok {
		if tt := t.types.MustLookup(id); tt.Kind != types.KindNamed {
			return types.NoTypeID, fmt.Errorf("meta: %q is a builtin type", name)
		}
		if t.declared[id] {
			return types.NoTypeID, fmt.Errorf("meta: type %s: %w", name, ErrDuplicate)
		}
	}
	id := t.types.Named(name)
	t.declared[id] = true
	t.decls = append(t.decls, id)
	return id, nil
}

// DeclaredTypes returns declared class types in declaration order.
func (t *Table) DeclaredTypes() []types.TypeID { return slices.Clone(t.decls) }

func (t *Table) checkDecl(decl types.TypeID) error {
	if t.sealed {
		return ErrSealed
	}
	if !t.declared[decl] {
		return fmt.Errorf("meta: type %s is not declared", t.types.String(decl))
	}
	return nil
}

// AddMethod registers an ordinary or hand-written method.
func (t *Table) AddMethod(decl types.TypeID, name string, params []types.TypeID, ret types.TypeID, flags MethodFlags) (*Method, error) {
	if err := t.checkDecl(decl); err != nil {
		return nil, err
	}
	return t.addMethod(NewMethod(decl, name, params, ret, flags))
}

func (t *Table) addMethod(m *Method) (*Method, error) {
	if err := t.addMethods(m); err != nil {
		return nil, err
	}
	return m, nil
}

// addMethods registers ms together: on a duplicate nothing is registered.
// nil entries are skipped.
func (t *Table) addMethods(ms ...*Method) error {
	for _, m := range ms {
		if m == nil {
			continue
		}
		key := memberKey{decl: m.declaring, name: m.name}
		for _, other := range t.methods[key] {
			if slices.Equal(other.params, m.params) {
				return fmt.Errorf("meta: method %s.%s%s: %w",
					t.types.String(m.declaring), m.name, t.signature(m.params), ErrDuplicate)
			}
		}
	}
	for _, m := range ms {
		if m == nil {
			continue
		}
		key := memberKey{decl: m.declaring, name: m.name}
		t.methods[key] = append(t.methods[key], m)
		t.methOrder[m.declaring] = append(t.methOrder[m.declaring], m)
	}
	return nil
}

// AddProperty registers an instance property and synthesizes its get_/set_ accessors.
func (t *Table) AddProperty(decl types.TypeID, name string, value types.TypeID, opts AccessorOpts) (*Property, error) {
	if err := t.checkDecl(decl); err != nil {
		return nil, err
	}
	if opts.ReadOnly && opts.WriteOnly {
		return nil, fmt.Errorf("meta: property %s.%s has no accessors", t.types.String(decl), name)
	}
	key := memberKey{decl: decl, name: name}
	if _, exists := t.properties[key]; exists {
		return nil, fmt.Errorf("meta: property %s.%s: %w", t.types.String(decl), name, ErrDuplicate)
	}
	if len(t.indexers[key]) > 0 {
		return nil, fmt.Errorf("meta: property %s.%s clashes with an indexer: %w", t.types.String(decl), name, ErrDuplicate)
	}

	p := &Property{name: name, declaring: decl, value: value, nonPublic: opts.NonPublic}
	flags := accessorFlags(opts)
	if opts.hasGet() {
		p.get = NewMethod(decl, GetterPrefix+name, nil, value, flags)
	}
	if opts.hasSet() {
		p.set = NewMethod(decl, SetterPrefix+name, []types.TypeID{value}, t.types.Builtins().Void, flags)
	}
	if err := t.addMethods(p.get, p.set); err != nil {
		return nil, err
	}
	t.properties[key] = p
	t.propOrder[decl] = append(t.propOrder[decl], p)
	return p, nil
}

// AddIndexer registers an indexer and synthesizes get_<name>(params...) and
// set_<name>(params..., value). An empty name means DefaultIndexerName.
func (t *Table) AddIndexer(decl types.TypeID, name string, value types.TypeID, params []types.TypeID, opts AccessorOpts) (*Indexer, error) {
	if err := t.checkDecl(decl); err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultIndexerName
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("meta: indexer %s.%s needs at least one index parameter", t.types.String(decl), name)
	}
	if opts.ReadOnly && opts.WriteOnly {
		return nil, fmt.Errorf("meta: indexer %s.%s has no accessors", t.types.String(decl), name)
	}
	key := memberKey{decl: decl, name: name}
	if _, exists := t.properties[key]; exists {
		return nil, fmt.Errorf("meta: indexer %s.%s clashes with a property: %w", t.types.String(decl), name, ErrDuplicate)
	}
	for _, other := range t.indexers[key] {
		if slices.Equal(other.params, params) {
			return nil, fmt.Errorf("meta: indexer %s.%s%s: %w",
				t.types.String(decl), name, t.signature(params), ErrDuplicate)
		}
	}

	ix := &Indexer{name: name, declaring: decl, value: value, params: slices.Clone(params), nonPublic: opts.NonPublic}
	flags := accessorFlags(opts)
	if opts.hasGet() {
		ix.get = NewMethod(decl, GetterPrefix+name, ix.params, value, flags)
	}
	if opts.hasSet() {
		setParams := append(slices.Clone(params), value)
		ix.set = NewMethod(decl, SetterPrefix+name, setParams, t.types.Builtins().Void, flags)
	}
	if err := t.addMethods(ix.get, ix.set); err != nil {
		return nil, err
	}
	t.indexers[key] = append(t.indexers[key], ix)
	t.ixOrder[decl] = append(t.ixOrder[decl], ix)
	return ix, nil
}

func accessorFlags(opts AccessorOpts) MethodFlags {
	flags := MethodSpecialName
	if opts.NonPublic {
		flags |= MethodNonPublic
	}
	return flags
}

// LookupInstanceProperty finds a public or non-public instance property by exact name.
func (t *Table) LookupInstanceProperty(decl types.TypeID, name string) *Property {
	return t.properties[memberKey{decl: decl, name: name}]
}

// LookupIndexer resolves an indexer overload by name, value type and index parameter types.
func (t *Table) LookupIndexer(decl types.TypeID, name string, value types.TypeID, params []types.TypeID) *Indexer {
	for _, ix := range t.indexers[memberKey{decl: decl, name: name}] {
		if ix.value == value && slices.Equal(ix.params, params) {
			return ix
		}
	}
	return nil
}

// Methods returns every overload of name declared on decl, including accessors.
func (t *Table) Methods(decl types.TypeID, name string) []*Method {
	return t.methods[memberKey{decl: decl, name: name}]
}

// Indexers returns every indexer overload of name declared on decl.
func (t *Table) Indexers(decl types.TypeID, name string) []*Indexer {
	if name == "" {
		name = DefaultIndexerName
	}
	return t.indexers[memberKey{decl: decl, name: name}]
}

// Members lists the descriptors of decl in declaration order.
func (t *Table) Members(decl types.TypeID) ([]*Property, []*Indexer, []*Method) {
	return t.propOrder[decl], t.ixOrder[decl], t.methOrder[decl]
}

// Signature renders a parameter list such as "(int, string)".
func (t *Table) Signature(params []types.TypeID) string { return t.signature(params) }

func (t *Table) signature(params []types.TypeID) string {
	out := "("
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += t.types.String(p)
	}
	return out + ")"
}
