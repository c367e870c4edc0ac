//nolint:errcheck // Kind implies the Data payload type.
package normalize

import (
	"fmt"
	"slices"

	"exprnorm/internal/expr"
	"exprnorm/internal/meta"
	"exprnorm/internal/types"
)

// Resolver resolves accessor-backed members by name and signature.
// *meta.Table implements it.
type Resolver interface {
	// LookupInstanceProperty searches public and non-public instance properties by exact name.
	LookupInstanceProperty(declaring types.TypeID, name string) *meta.Property
	// LookupIndexer selects the indexer overload with the given value and index parameter types.
	LookupIndexer(declaring types.TypeID, name string, value types.TypeID, params []types.TypeID) *meta.Indexer
}

// Normalizer rewrites calls to property and indexer accessor methods into
// MemberAccess, Index and Assign nodes. It keeps no state between calls and may be
// shared by goroutines as long as the Resolver tolerates concurrent reads.
type Normalizer struct {
	resolver Resolver
}

// New returns a Normalizer resolving accessors through r.
func New(r Resolver) *Normalizer {
	return &Normalizer{resolver: r}
}

// Tree is a shorthand for New(r).Normalize(root).
func Tree(r Resolver, root *expr.Expr) (*expr.Expr, error) {
	return New(r).Normalize(root)
}

// Normalize returns root with every accessor call rewritten. Subtrees that need no
// rewriting are returned by reference; if nothing changes, root itself is returned.
// The input is never modified. On a *PreconditionViolation no tree is returned.
func (n *Normalizer) Normalize(root *expr.Expr) (*expr.Expr, error) {
	if n == nil || n.resolver == nil {
		return nil, fmt.Errorf("normalize: nil resolver")
	}
	return n.visit(root)
}

func (n *Normalizer) visit(e *expr.Expr) (*expr.Expr, error) {
	if e == nil {
		return nil, nil
	}
	if e.Kind == expr.ExprCall {
		return n.visitCall(e)
	}
	kids := expr.Children(e)
	if len(kids) == 0 {
		return e, nil
	}
	out, changed, err := n.visitAll(kids)
	if err != nil {
		return nil, err
	}
	if !changed {
		return e, nil
	}
	return expr.Rebuild(e, out), nil
}

// visitAll normalizes xs in order; the input slice is copied only once something changes.
func (n *Normalizer) visitAll(xs []*expr.Expr) ([]*expr.Expr, bool, error) {
	out := xs
	changed := false
	for i, x := range xs {
		nx, err := n.visit(x)
		if err != nil {
			return nil, false, err
		}
		if nx == x {
			continue
		}
		if !changed {
			out = slices.Clone(xs)
			changed = true
		}
		out[i] = nx
	}
	return out, changed, nil
}

func (n *Normalizer) visitCall(e *expr.Expr) (*expr.Expr, error) {
	data := e.Data.(expr.CallData)

	instance := data.Instance
	if instance != nil {
		var err error
		if instance, err = n.visit(instance); err != nil {
			return nil, err
		}
	}
	args, argsChanged, err := n.visitAll(data.Args)
	if err != nil {
		return nil, err
	}

	if rewritten, err := n.rewriteAccessor(e, instance, args); rewritten != nil || err != nil {
		return rewritten, err
	}

	if instance == data.Instance && !argsChanged {
		return e, nil
	}
	out := *e
	out.Data = expr.CallData{Instance: instance, Method: data.Method, Args: args}
	return &out, nil
}

// rewriteAccessor returns nil, nil when the call is not accessor-shaped.
func (n *Normalizer) rewriteAccessor(call, instance *expr.Expr, args []*expr.Expr) (*expr.Expr, error) {
	m := call.Data.(expr.CallData).Method
	prefix, name, ok := m.AccessorName()
	if !ok {
		return nil, nil
	}

	var shape Shape
	switch {
	case prefix == meta.GetterPrefix && len(args) == 0:
		shape = ShapePropertyGet
	case prefix == meta.GetterPrefix:
		shape = ShapeIndexerGet
	case prefix == meta.SetterPrefix && len(args) == 1:
		shape = ShapePropertySet
	case prefix == meta.SetterPrefix && len(args) > 1:
		shape = ShapeIndexerSet
	default:
		// set_X() with no value is not an accessor shape
		return nil, nil
	}

	violation := func(format string, a ...any) error {
		return &PreconditionViolation{
			Method: m,
			Member: name,
			Shape:  shape,
			Reason: fmt.Sprintf(format, a...),
			Span:   call.Span,
		}
	}
	if len(args) != m.ParamCount() {
		return nil, violation("call passes %d arguments to a method taking %d", len(args), m.ParamCount())
	}
	if instance == nil && !m.IsStatic() {
		return nil, violation("instance accessor called without a receiver")
	}

	decl := m.DeclaringType()
	sp := call.Span
	switch shape {
	case ShapePropertyGet:
		prop := n.resolver.LookupInstanceProperty(decl, name)
		if prop == nil {
			return nil, violation("no instance property %q", name)
		}
		if prop.GetAccessor() != m {
			return nil, violation("property %q has a different get accessor", name)
		}
		return expr.NewMemberAccess(instance, prop, sp), nil

	case ShapeIndexerGet:
		// a getter has no value slot, so every parameter is an index parameter
		ix := n.resolver.LookupIndexer(decl, name, m.ReturnType(), m.ParameterTypes())
		if ix == nil {
			return nil, violation("no indexer %q matching the method signature", name)
		}
		if ix.GetAccessor() != m {
			return nil, violation("indexer %q has a different get accessor", name)
		}
		return expr.NewIndex(instance, ix, args, sp), nil

	case ShapePropertySet:
		prop := n.resolver.LookupInstanceProperty(decl, name)
		if prop == nil {
			return nil, violation("no instance property %q", name)
		}
		if prop.SetAccessor() != m {
			return nil, violation("property %q has a different set accessor", name)
		}
		return expr.NewAssign(expr.NewMemberAccess(instance, prop, sp), args[0], sp), nil

	default:
		params := m.ParameterTypes()
		last := len(params) - 1
		ix := n.resolver.LookupIndexer(decl, name, params[last], params[:last])
		if ix == nil {
			return nil, violation("no indexer %q matching the method signature", name)
		}
		if ix.SetAccessor() != m {
			return nil, violation("indexer %q has a different set accessor", name)
		}
		target := expr.NewIndex(instance, ix, args[:len(args)-1], sp)
		return expr.NewAssign(target, args[len(args)-1], sp), nil
	}
}
