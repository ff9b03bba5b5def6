package convert

import (
	"fmt"

	"github.com/cmmoran/bridgegen/pkg/ir"
)

// ErrorKind discriminates conversion failures. Every kind is terminal for
// the run; there is no partial-success mode.
type ErrorKind int

const (
	// KindNoContent: the input module has no body to convert.
	KindNoContent ErrorKind = iota
	// KindUnsafePodType: a requested value type could not be proven safe.
	KindUnsafePodType
	// KindUnknownForeignItem: a foreign block held something other than a
	// plain function.
	KindUnknownForeignItem
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoContent:
		return "no_content"
	case KindUnsafePodType:
		return "unsafe_pod_type"
	case KindUnknownForeignItem:
		return "unknown_foreign_item"
	default:
		return "unknown"
	}
}

// Error is the conversion failure type. Name carries the offending type
// name for KindUnsafePodType and is zero otherwise.
type Error struct {
	Kind  ErrorKind
	Name  ir.QualifiedName
	Cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNoContent:
		return "module has no content to convert"
	case KindUnsafePodType:
		return fmt.Sprintf("type %s cannot be safely held by value", e.Name)
	case KindUnknownForeignItem:
		return "foreign block contains an unsupported item kind"
	default:
		return fmt.Sprintf("conversion failed (%s)", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches errors by kind, so callers can test against the exported
// sentinels. A target carrying a type name additionally requires that
// name to match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Name.IsEmpty() || t.Name == e.Name
}

// Sentinels for errors.Is tests.
var (
	ErrNoContent          = &Error{Kind: KindNoContent}
	ErrUnsafePodType      = &Error{Kind: KindUnsafePodType}
	ErrUnknownForeignItem = &Error{Kind: KindUnknownForeignItem}
)
