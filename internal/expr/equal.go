//nolint:errcheck // Kind implies the Data payload type.
package expr

import "math"

// Equal reports whether a and b are structurally equal: same kinds, types and
// payloads, with descriptors compared by identity. Parameters compare by name and
// type so trees built from separate sources can match. Spans are ignored.
func Equal(a, b *Expr) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind || a.Type != b.Type {
		return false
	}
	switch a.Kind {
	case ExprConstant:
		return constEqual(a.Data.(ConstantData), b.Data.(ConstantData))
	case ExprParameter:
		return a.Data.(ParameterData).Name == b.Data.(ParameterData).Name
	case ExprUnary:
		if a.Data.(UnaryData).Op != b.Data.(UnaryData).Op {
			return false
		}
	case ExprBinary:
		if a.Data.(BinaryData).Op != b.Data.(BinaryData).Op {
			return false
		}
	case ExprNewArray:
		if a.Data.(NewArrayData).Elem != b.Data.(NewArrayData).Elem {
			return false
		}
	case ExprLambda:
		if len(a.Data.(LambdaData).Params) != len(b.Data.(LambdaData).Params) {
			return false
		}
	case ExprCall:
		da, db := a.Data.(CallData), b.Data.(CallData)
		if da.Method != db.Method || (da.Instance == nil) != (db.Instance == nil) {
			return false
		}
	case ExprMemberAccess:
		if a.Data.(MemberAccessData).Property != b.Data.(MemberAccessData).Property {
			return false
		}
	case ExprIndex:
		da, db := a.Data.(IndexData), b.Data.(IndexData)
		if da.Indexer != db.Indexer || (da.Instance == nil) != (db.Instance == nil) {
			return false
		}
	}
	ka, kb := Children(a), Children(b)
	if len(ka) != len(kb) {
		return false
	}
	for i := range ka {
		if !Equal(ka[i], kb[i]) {
			return false
		}
	}
	return true
}

func constEqual(a, b ConstantData) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ConstInt:
		return a.IntValue == b.IntValue
	case ConstFloat:
		return a.FloatValue == b.FloatValue || (math.IsNaN(a.FloatValue) && math.IsNaN(b.FloatValue))
	case ConstBool:
		return a.BoolValue == b.BoolValue
	case ConstString:
		return a.StringValue == b.StringValue
	default:
		return true
	}
}
