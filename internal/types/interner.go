package types

import (
	"fmt"
	"strings"
	"sync"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Bool    TypeID
	Int     TypeID
	Long    TypeID
	Float   TypeID
	String  TypeID
	Object  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// It is safe for concurrent use.
type Interner struct {
	mu       sync.RWMutex
	types    []Type
	index    map[Type]TypeID
	names    []string
	byName   map[string]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:  make(map[Type]TypeID, 32),
		byName: make(map[string]TypeID, 32),
		names:  []string{""}, // reserve 0 as invalid sentinel
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.internRaw(Type{Kind: KindVoid})
	in.builtins.Bool = in.internRaw(Type{Kind: KindBool})
	in.builtins.Int = in.internRaw(Type{Kind: KindInt})
	in.builtins.Long = in.internRaw(Type{Kind: KindLong})
	in.builtins.Float = in.internRaw(Type{Kind: KindFloat})
	in.builtins.String = in.internRaw(Type{Kind: KindString})
	in.builtins.Object = in.internRaw(Type{Kind: KindObject})
	for _, id := range []TypeID{
		in.builtins.Void, in.builtins.Bool, in.builtins.Int, in.builtins.Long,
		in.builtins.Float, in.builtins.String, in.builtins.Object,
	} {
		in.byName[in.types[id].Kind.String()] = id
	}
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage; callers hold the lock.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Named interns a class type by name. Declaring the same name twice yields the same TypeID.
func (in *Interner) Named(name string) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.byName[name]; ok {
		return id
	}
	payload, err := safecast.Conv[uint32](len(in.names))
	if err != nil {
		panic(fmt.Errorf("len(names) overflow: %w", err))
	}
	in.names = append(in.names, name)
	id := in.internRaw(Type{Kind: KindNamed, Payload: payload})
	in.byName[name] = id
	return id
}

// ArrayOf interns the array type with the given element type.
func (in *Interner) ArrayOf(elem TypeID) TypeID {
	if elem == NoTypeID {
		return NoTypeID
	}
	return in.Intern(Type{Kind: KindArray, Elem: elem})
}

// ByName resolves a type spelling: a builtin keyword, a declared class name,
// or either followed by one or more "[]".
func (in *Interner) ByName(name string) (TypeID, bool) {
	name = strings.TrimSpace(name)
	if base, ok := strings.CutSuffix(name, "[]"); ok {
		elem, found := in.ByName(base)
		if !found {
			return NoTypeID, false
		}
		return in.ArrayOf(elem), true
	}
	in.mu.RLock()
	defer in.mu.RUnlock()
	id, ok := in.byName[name]
	return id, ok
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// String renders a TypeID the way it is spelled in metadata and expression files.
func (in *Interner) String(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindNamed:
		in.mu.RLock()
		defer in.mu.RUnlock()
		return in.names[tt.Payload]
	case KindArray:
		return in.String(tt.Elem) + "[]"
	default:
		return tt.Kind.String()
	}
}

// Len reports how many descriptors are interned, including the invalid sentinel.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.types)
}
