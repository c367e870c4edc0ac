//nolint:errcheck // Kind implies the Data payload type.
package expr

import "fmt"

// Children returns the direct subexpressions of e in evaluation order.
// A static call's missing instance is not listed.
func Children(e *Expr) []*Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ExprConstant, ExprParameter:
		return nil
	case ExprUnary:
		return []*Expr{e.Data.(UnaryData).Operand}
	case ExprBinary:
		d := e.Data.(BinaryData)
		return []*Expr{d.Left, d.Right}
	case ExprConditional:
		d := e.Data.(ConditionalData)
		return []*Expr{d.Cond, d.Then, d.Else}
	case ExprLambda:
		d := e.Data.(LambdaData)
		return append(append(make([]*Expr, 0, len(d.Params)+1), d.Params...), d.Body)
	case ExprNewArray:
		return append([]*Expr(nil), e.Data.(NewArrayData).Elements...)
	case ExprCall:
		d := e.Data.(CallData)
		return withInstance(d.Instance, d.Args)
	case ExprMemberAccess:
		return []*Expr{e.Data.(MemberAccessData).Instance}
	case ExprIndex:
		d := e.Data.(IndexData)
		return withInstance(d.Instance, d.Args)
	case ExprAssign:
		d := e.Data.(AssignData)
		return []*Expr{d.Target, d.Value}
	default:
		panic(fmt.Sprintf("expr: unknown kind %v", e.Kind))
	}
}

func withInstance(instance *Expr, args []*Expr) []*Expr {
	out := make([]*Expr, 0, len(args)+1)
	if instance != nil {
		out = append(out, instance)
	}
	return append(out, args...)
}

// Rebuild returns a copy of e with its children replaced, keeping kind, type,
// span and every non-child payload field. kids must line up with Children(e).
func Rebuild(e *Expr, kids []*Expr) *Expr {
	if want := len(Children(e)); len(kids) != want {
		panic(fmt.Sprintf("expr: Rebuild(%v) with %d children, want %d", e.Kind, len(kids), want))
	}
	out := *e
	switch e.Kind {
	case ExprConstant, ExprParameter:
		return e
	case ExprUnary:
		d := e.Data.(UnaryData)
		d.Operand = kids[0]
		out.Data = d
	case ExprBinary:
		d := e.Data.(BinaryData)
		d.Left, d.Right = kids[0], kids[1]
		out.Data = d
	case ExprConditional:
		d := e.Data.(ConditionalData)
		d.Cond, d.Then, d.Else = kids[0], kids[1], kids[2]
		out.Data = d
	case ExprLambda:
		d := e.Data.(LambdaData)
		n := len(d.Params)
		d.Params = append([]*Expr(nil), kids[:n]...)
		d.Body = kids[n]
		out.Data = d
	case ExprNewArray:
		d := e.Data.(NewArrayData)
		d.Elements = append([]*Expr(nil), kids...)
		out.Data = d
	case ExprCall:
		d := e.Data.(CallData)
		d.Instance, d.Args = splitInstance(d.Instance != nil, kids)
		out.Data = d
	case ExprMemberAccess:
		d := e.Data.(MemberAccessData)
		d.Instance = kids[0]
		out.Data = d
	case ExprIndex:
		d := e.Data.(IndexData)
		d.Instance, d.Args = splitInstance(d.Instance != nil, kids)
		out.Data = d
	case ExprAssign:
		d := e.Data.(AssignData)
		d.Target, d.Value = kids[0], kids[1]
		out.Data = d
	}
	return &out
}

func splitInstance(hasInstance bool, kids []*Expr) (*Expr, []*Expr) {
	if !hasInstance {
		return nil, append([]*Expr(nil), kids...)
	}
	return kids[0], append([]*Expr(nil), kids[1:]...)
}

// Walk visits e and its descendants in pre-order. Returning false from fn skips
// the children of the current node.
func Walk(e *Expr, fn func(*Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range Children(e) {
		Walk(c, fn)
	}
}

// Count returns the number of nodes reachable from e, counting shared nodes once per reference.
func Count(e *Expr) int {
	n := 0
	Walk(e, func(*Expr) bool {
		n++
		return true
	})
	return n
}

// CountKind returns how many nodes of kind k are reachable from e.
func CountKind(e *Expr, k ExprKind) int {
	n := 0
	Walk(e, func(x *Expr) bool {
		if x.Kind == k {
			n++
		}
		return true
	})
	return n
}
