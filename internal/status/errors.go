package status

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrResourceExhausted     = errors.New("resource exhausted")
	ErrUnimplemented         = errors.New("unimplemented")
	ErrInternalInconsistency = errors.New("internal inconsistency")
)

// Code is the short outcome name recorded in plans and the journal.
type Code string

const (
	CodeSuccess               Code = "success"
	CodeInvalidArgument       Code = "invalid_argument"
	CodeResourceExhausted     Code = "resource_exhausted"
	CodeUnimplemented         Code = "unimplemented"
	CodeInternalInconsistency Code = "internal_inconsistency"
	CodeUnknown               Code = "unknown"
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrInternalInconsistency
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// CodeOf maps an error to its outcome code.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, ErrResourceExhausted):
		return CodeResourceExhausted
	case errors.Is(err, ErrUnimplemented):
		return CodeUnimplemented
	case errors.Is(err, ErrInternalInconsistency):
		return CodeInternalInconsistency
	default:
		return CodeUnknown
	}
}

// Degradable reports whether the failure only drops the affected transform for
// the frame instead of failing the whole chain.
func Degradable(err error) bool {
	return errors.Is(err, ErrInternalInconsistency)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "resolution failure"
	}
	return strings.Join(parts, ": ")
}
