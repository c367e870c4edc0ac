package meta

import "exprnorm/internal/types"

// Property is an immutable, non-indexed instance property descriptor.
type Property struct {
	name      string
	declaring types.TypeID
	value     types.TypeID
	nonPublic bool
	get       *Method
	set       *Method
}

func (p *Property) Name() string                { return p.name }
func (p *Property) DeclaringType() types.TypeID { return p.declaring }
func (p *Property) ValueType() types.TypeID     { return p.value }
func (p *Property) IsPublic() bool              { return !p.nonPublic }

// GetAccessor returns the getter, or nil for write-only properties.
func (p *Property) GetAccessor() *Method { return p.get }

// SetAccessor returns the setter, or nil for read-only properties.
func (p *Property) SetAccessor() *Method { return p.set }

// Indexer is an immutable parameterized property descriptor.
type Indexer struct {
	name      string
	declaring types.TypeID
	value     types.TypeID
	params    []types.TypeID
	nonPublic bool
	get       *Method
	set       *Method
}

func (ix *Indexer) Name() string                { return ix.name }
func (ix *Indexer) DeclaringType() types.TypeID { return ix.declaring }
func (ix *Indexer) ValueType() types.TypeID     { return ix.value }
func (ix *Indexer) IsPublic() bool              { return !ix.nonPublic }
func (ix *Indexer) GetAccessor() *Method        { return ix.get }
func (ix *Indexer) SetAccessor() *Method        { return ix.set }

// IndexParameterTypes returns the ordered index parameter types.
// The returned slice aliases the descriptor and must not be modified.
func (ix *Indexer) IndexParameterTypes() []types.TypeID { return ix.params }

// AccessorOpts selects which accessors are synthesized for a property or indexer.
type AccessorOpts struct {
	ReadOnly  bool
	WriteOnly bool
	NonPublic bool
}

func (o AccessorOpts) hasGet() bool { return !o.WriteOnly }
func (o AccessorOpts) hasSet() bool { return !o.ReadOnly }
