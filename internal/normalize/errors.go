package normalize

import (
	"errors"
	"fmt"

	"exprnorm/internal/meta"
	"exprnorm/internal/source"
)

// ErrNotSupported is matched by every PreconditionViolation through errors.Is.
var ErrNotSupported = errors.New("expression not supported")

// Shape names the accessor pattern a call was classified as.
type Shape uint8

const (
	ShapePropertyGet Shape = iota + 1
	ShapeIndexerGet
	ShapePropertySet
	ShapeIndexerSet
)

func (s Shape) String() string {
	switch s {
	case ShapePropertyGet:
		return "property getter"
	case ShapeIndexerGet:
		return "indexer getter"
	case ShapePropertySet:
		return "property setter"
	case ShapeIndexerSet:
		return "indexer setter"
	default:
		return "accessor"
	}
}

// PreconditionViolation reports a special-name get_/set_ call whose metadata does not
// round-trip to the same method, i.e. a method that only looks like an accessor.
// It aborts the whole normalization.
type PreconditionViolation struct {
	Method *meta.Method
	Member string // member name with the accessor prefix stripped
	Shape  Shape
	Reason string
	Span   source.Span
}

func (v *PreconditionViolation) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", ErrNotSupported, v.Shape, v.Method.Name(), v.Reason)
}

func (v *PreconditionViolation) Unwrap() error { return ErrNotSupported }
