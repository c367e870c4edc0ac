package parser

import (
	"exprnorm/internal/expr"
	"exprnorm/internal/token"
)

var binaryOps = map[token.Kind]expr.BinaryOp{
	token.Star:    expr.BinaryMul,
	token.Slash:   expr.BinaryDiv,
	token.Percent: expr.BinaryMod,
	token.Plus:    expr.BinaryAdd,
	token.Minus:   expr.BinarySub,
	token.Lt:      expr.BinaryLt,
	token.LtEq:    expr.BinaryLtEq,
	token.Gt:      expr.BinaryGt,
	token.GtEq:    expr.BinaryGtEq,
	token.EqEq:    expr.BinaryEq,
	token.BangEq:  expr.BinaryNotEq,
	token.AndAnd:  expr.BinaryAndAlso,
	token.OrOr:    expr.BinaryOrElse,
}
