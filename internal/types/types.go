package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindInt
	KindLong
	KindFloat
	KindString
	KindObject
	// KindNamed is a user-declared class type; Payload indexes the name table.
	KindNamed
	// KindArray is a single-dimension array of Elem.
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindNamed:
		return "named"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Elem    TypeID // for arrays
	Payload uint32 // for named types: index into the interner name table
}

// IsPrimitive reports whether the kind is one of the built-in scalar kinds.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindBool, KindInt, KindLong, KindFloat, KindString:
		return true
	default:
		return false
	}
}
