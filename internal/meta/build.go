package meta

import (
	"errors"
	"fmt"

	"exprnorm/internal/types"
)

// Build turns one or more schemas into a sealed table. All problems are reported
// together, joined into the returned error.
func Build(schemas ...*Schema) (*Table, error) {
	t := NewTable(nil)
	var errs []error

	// types first, so members may reference types declared later or in other files
	declared := make(map[string]types.TypeID)
	for _, s := range schemas {
		for _, ts := range s.Types {
			id, err := t.DeclareType(ts.Name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			declared[ts.Name] = id
		}
	}

	for _, s := range schemas {
		for _, ts := range s.Types {
			decl, ok := declared[ts.Name]
			if !ok {
				continue
			}
			errs = append(errs, t.buildMembers(decl, &ts)...)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	t.Seal()
	return t, nil
}

func (t *Table) buildMembers(decl types.TypeID, ts *TypeSchema) []error {
	var errs []error
	where := func(kind, name string) string { return fmt.Sprintf("%s %s.%s", kind, ts.Name, name) }

	for _, ms := range ts.Methods {
		params, err := t.resolveTypes(ms.Params)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where("method", ms.Name), err))
			continue
		}
		ret, err := t.resolveType(ms.Returns, true)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where("method", ms.Name), err))
			continue
		}
		var flags MethodFlags
		if ms.Special {
			flags |= MethodSpecialName
		}
		if ms.Static {
			flags |= MethodStatic
		}
		if ms.NonPublic {
			flags |= MethodNonPublic
		}
		if _, err := t.AddMethod(decl, ms.Name, params, ret, flags); err != nil {
			errs = append(errs, err)
		}
	}

	for _, ps := range ts.Properties {
		value, err := t.resolveType(ps.Type, false)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where("property", ps.Name), err))
			continue
		}
		opts := AccessorOpts{ReadOnly: ps.ReadOnly, WriteOnly: ps.WriteOnly, NonPublic: ps.NonPublic}
		if _, err := t.AddProperty(decl, ps.Name, value, opts); err != nil {
			errs = append(errs, err)
		}
	}

	for _, is := range ts.Indexers {
		name := is.Name
		if name == "" {
			name = DefaultIndexerName
		}
		value, err := t.resolveType(is.Type, false)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where("indexer", name), err))
			continue
		}
		params, err := t.resolveTypes(is.Params)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where("indexer", name), err))
			continue
		}
		opts := AccessorOpts{ReadOnly: is.ReadOnly, WriteOnly: is.WriteOnly, NonPublic: is.NonPublic}
		if _, err := t.AddIndexer(decl, name, value, params, opts); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (t *Table) resolveType(spelling string, allowVoid bool) (types.TypeID, error) {
	if spelling == "" && allowVoid {
		return t.types.Builtins().Void, nil
	}
	id, ok := t.types.ByName(spelling)
	if !ok {
		return types.NoTypeID, fmt.Errorf("unknown type %q", spelling)
	}
	if id == t.types.Builtins().Void && !allowVoid {
		return types.NoTypeID, errors.New("void is not a value type")
	}
	return id, nil
}

func (t *Table) resolveTypes(spellings []string) ([]types.TypeID, error) {
	out := make([]types.TypeID, 0, len(spellings))
	for _, s := range spellings {
		id, err := t.resolveType(s, false)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
