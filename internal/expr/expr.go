package expr

import (
	"exprnorm/internal/meta"
	"exprnorm/internal/source"
	"exprnorm/internal/types"
)

// ExprKind enumerates expression node kinds.
type ExprKind uint8

const (
	// ExprConstant is a literal value.
	ExprConstant ExprKind = iota
	// ExprParameter is a reference to a lambda or free parameter.
	ExprParameter
	// ExprUnary applies a prefix operator.
	ExprUnary
	// ExprBinary applies an infix operator.
	ExprBinary
	// ExprConditional is cond ? then : else.
	ExprConditional
	// ExprLambda is (params) => body.
	ExprLambda
	// ExprNewArray is new T[]{elems...}.
	ExprNewArray
	// ExprCall invokes a method; Instance is nil for static calls.
	ExprCall
	// ExprMemberAccess reads a property (instance.Property).
	ExprMemberAccess
	// ExprIndex reads an indexer (instance[args]).
	ExprIndex
	// ExprAssign stores Value into a member access or index target.
	ExprAssign
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprConstant:
		return "Constant"
	case ExprParameter:
		return "Parameter"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprConditional:
		return "Conditional"
	case ExprLambda:
		return "Lambda"
	case ExprNewArray:
		return "NewArray"
	case ExprCall:
		return "Call"
	case ExprMemberAccess:
		return "MemberAccess"
	case ExprIndex:
		return "Index"
	case ExprAssign:
		return "Assign"
	default:
		return "Unknown"
	}
}

// Expr is an immutable expression node.
type Expr struct {
	Kind ExprKind
	Type types.TypeID // static type of the node
	Span source.Span  // where the node came from, zero for synthesized nodes
	Data ExprData     // kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// ConstKind enumerates literal value kinds.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
	ConstString
	ConstNull
)

// ConstantData holds data for ExprConstant.
type ConstantData struct {
	Kind        ConstKind
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string
}

func (ConstantData) exprData() {}

// ParameterData holds data for ExprParameter.
type ParameterData struct {
	Name string
}

func (ParameterData) exprData() {}

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      UnaryOp
	Operand *Expr
}

func (UnaryData) exprData() {}

// BinaryData holds data for ExprBinary.
type BinaryData struct {
	Op    BinaryOp
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

// ConditionalData holds data for ExprConditional.
type ConditionalData struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

func (ConditionalData) exprData() {}

// LambdaData holds data for ExprLambda. Params are ExprParameter nodes.
type LambdaData struct {
	Params []*Expr
	Body   *Expr
}

func (LambdaData) exprData() {}

// NewArrayData holds data for ExprNewArray.
type NewArrayData struct {
	Elem     types.TypeID
	Elements []*Expr
}

func (NewArrayData) exprData() {}

// CallData holds data for ExprCall.
type CallData struct {
	Instance *Expr // nil for static calls
	Method   *meta.Method
	Args     []*Expr
}

func (CallData) exprData() {}

// MemberAccessData holds data for ExprMemberAccess.
type MemberAccessData struct {
	Instance *Expr
	Property *meta.Property
}

func (MemberAccessData) exprData() {}

// IndexData holds data for ExprIndex.
type IndexData struct {
	Instance *Expr
	Indexer  *meta.Indexer
	Args     []*Expr
}

func (IndexData) exprData() {}

// AssignData holds data for ExprAssign.
type AssignData struct {
	Target *Expr
	Value  *Expr
}

func (AssignData) exprData() {}
