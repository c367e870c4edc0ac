package expr

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	default:
		return "?"
	}
}

// BinaryOp enumerates infix operators.
type BinaryOp uint8

const (
	BinaryMul BinaryOp = iota
	BinaryDiv
	BinaryMod
	BinaryAdd
	BinarySub
	BinaryLt
	BinaryLtEq
	BinaryGt
	BinaryGtEq
	BinaryEq
	BinaryNotEq
	BinaryAndAlso
	BinaryOrElse
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryMod:
		return "%"
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryLt:
		return "<"
	case BinaryLtEq:
		return "<="
	case BinaryGt:
		return ">"
	case BinaryGtEq:
		return ">="
	case BinaryEq:
		return "=="
	case BinaryNotEq:
		return "!="
	case BinaryAndAlso:
		return "&&"
	case BinaryOrElse:
		return "||"
	default:
		return "?"
	}
}

// Precedence returns the binding strength of op; higher binds tighter.
func (op BinaryOp) Precedence() int {
	switch op {
	case BinaryMul, BinaryDiv, BinaryMod:
		return 6
	case BinaryAdd, BinarySub:
		return 5
	case BinaryLt, BinaryLtEq, BinaryGt, BinaryGtEq:
		return 4
	case BinaryEq, BinaryNotEq:
		return 3
	case BinaryAndAlso:
		return 2
	case BinaryOrElse:
		return 1
	default:
		return 0
	}
}

// IsComparison reports whether op yields bool from non-bool operands.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case BinaryLt, BinaryLtEq, BinaryGt, BinaryGtEq, BinaryEq, BinaryNotEq:
		return true
	default:
		return false
	}
}
