package meta

import (
	"slices"
	"strings"

	"exprnorm/internal/types"
)

// Accessor name prefixes generated for property and indexer accessors.
const (
	GetterPrefix = "get_"
	SetterPrefix = "set_"
)

// DefaultIndexerName is the member name indexers are declared under unless overridden.
const DefaultIndexerName = "Item"

// MethodFlags describes method attributes.
type MethodFlags uint8

const (
	// MethodSpecialName marks methods serving a non-ordinary role (accessors, operators).
	MethodSpecialName MethodFlags = 1 << iota
	// MethodStatic marks methods without a receiver.
	MethodStatic
	// MethodNonPublic marks methods hidden from public lookup.
	MethodNonPublic
)

// HasFlag reports whether all bits of flag are set.
func (f MethodFlags) HasFlag(flag MethodFlags) bool {
	return f&flag == flag
}

// Method is an immutable method descriptor.
type Method struct {
	name      string
	flags     MethodFlags
	declaring types.TypeID
	params    []types.TypeID
	ret       types.TypeID
}

// NewMethod creates a method descriptor. The parameter slice is copied.
func NewMethod(declaring types.TypeID, name string, params []types.TypeID, ret types.TypeID, flags MethodFlags) *Method {
	return &Method{
		name:      name,
		flags:     flags,
		declaring: declaring,
		params:    slices.Clone(params),
		ret:       ret,
	}
}

func (m *Method) Name() string                { return m.name }
func (m *Method) Flags() MethodFlags          { return m.flags }
func (m *Method) IsSpecialName() bool         { return m.flags.HasFlag(MethodSpecialName) }
func (m *Method) IsStatic() bool              { return m.flags.HasFlag(MethodStatic) }
func (m *Method) IsPublic() bool              { return !m.flags.HasFlag(MethodNonPublic) }
func (m *Method) DeclaringType() types.TypeID { return m.declaring }
func (m *Method) ReturnType() types.TypeID    { return m.ret }
func (m *Method) ParamCount() int             { return len(m.params) }

// ParameterTypes returns the ordered parameter types.
// The returned slice aliases the descriptor and must not be modified.
func (m *Method) ParameterTypes() []types.TypeID {
	return m.params
}

// AccessorName splits an accessor-shaped method name into its prefix and member name.
// ok is false when m is not special-name or carries neither prefix.
func (m *Method) AccessorName() (prefix, member string, ok bool) {
	if m == nil || !m.IsSpecialName() {
		return "", "", false
	}
	for _, p := range [...]string{GetterPrefix, SetterPrefix} {
		if rest, found := strings.CutPrefix(m.name, p); found && rest != "" {
			return p, rest, true
		}
	}
	return "", "", false
}
