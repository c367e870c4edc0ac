package expr

import (
	"slices"

	"exprnorm/internal/meta"
	"exprnorm/internal/source"
	"exprnorm/internal/types"
)

// Constructors copy argument slices so callers may reuse their buffers.

func NewInt(ty types.TypeID, v int64, sp source.Span) *Expr {
	return &Expr{Kind: ExprConstant, Type: ty, Span: sp, Data: ConstantData{Kind: ConstInt, IntValue: v}}
}

func NewFloat(ty types.TypeID, v float64, sp source.Span) *Expr {
	return &Expr{Kind: ExprConstant, Type: ty, Span: sp, Data: ConstantData{Kind: ConstFloat, FloatValue: v}}
}

func NewBool(ty types.TypeID, v bool, sp source.Span) *Expr {
	return &Expr{Kind: ExprConstant, Type: ty, Span: sp, Data: ConstantData{Kind: ConstBool, BoolValue: v}}
}

func NewString(ty types.TypeID, v string, sp source.Span) *Expr {
	return &Expr{Kind: ExprConstant, Type: ty, Span: sp, Data: ConstantData{Kind: ConstString, StringValue: v}}
}

func NewNull(ty types.TypeID, sp source.Span) *Expr {
	return &Expr{Kind: ExprConstant, Type: ty, Span: sp, Data: ConstantData{Kind: ConstNull}}
}

func NewParameter(name string, ty types.TypeID, sp source.Span) *Expr {
	return &Expr{Kind: ExprParameter, Type: ty, Span: sp, Data: ParameterData{Name: name}}
}

func NewUnary(op UnaryOp, operand *Expr, ty types.TypeID, sp source.Span) *Expr {
	return &Expr{Kind: ExprUnary, Type: ty, Span: sp, Data: UnaryData{Op: op, Operand: operand}}
}

func NewBinary(op BinaryOp, left, right *Expr, ty types.TypeID, sp source.Span) *Expr {
	return &Expr{Kind: ExprBinary, Type: ty, Span: sp, Data: BinaryData{Op: op, Left: left, Right: right}}
}

func NewConditional(cond, then, els *Expr, sp source.Span) *Expr {
	return &Expr{Kind: ExprConditional, Type: then.Type, Span: sp, Data: ConditionalData{Cond: cond, Then: then, Else: els}}
}

// NewLambda builds a lambda typed by its body.
func NewLambda(params []*Expr, body *Expr, sp source.Span) *Expr {
	return &Expr{Kind: ExprLambda, Type: body.Type, Span: sp, Data: LambdaData{Params: slices.Clone(params), Body: body}}
}

func NewArray(arrayType, elem types.TypeID, elems []*Expr, sp source.Span) *Expr {
	return &Expr{Kind: ExprNewArray, Type: arrayType, Span: sp, Data: NewArrayData{Elem: elem, Elements: slices.Clone(elems)}}
}

// NewCall builds a call node typed by the method's return type.
func NewCall(instance *Expr, m *meta.Method, args []*Expr, sp source.Span) *Expr {
	return &Expr{Kind: ExprCall, Type: m.ReturnType(), Span: sp, Data: CallData{Instance: instance, Method: m, Args: slices.Clone(args)}}
}

func NewMemberAccess(instance *Expr, p *meta.Property, sp source.Span) *Expr {
	return &Expr{Kind: ExprMemberAccess, Type: p.ValueType(), Span: sp, Data: MemberAccessData{Instance: instance, Property: p}}
}

func NewIndex(instance *Expr, ix *meta.Indexer, args []*Expr, sp source.Span) *Expr {
	return &Expr{Kind: ExprIndex, Type: ix.ValueType(), Span: sp, Data: IndexData{Instance: instance, Indexer: ix, Args: slices.Clone(args)}}
}

// NewAssign builds target = value, typed by the target.
func NewAssign(target, value *Expr, sp source.Span) *Expr {
	return &Expr{Kind: ExprAssign, Type: target.Type, Span: sp, Data: AssignData{Target: target, Value: value}}
}
