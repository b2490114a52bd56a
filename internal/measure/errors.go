package measure

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification. errors.Is matches a measurement
// Error against the sentinel of its Kind.
var (
	ErrInsufficientObjects   = errors.New("insufficient objects detected")
	ErrDimensionMatch        = errors.New("dimension match failed")
	ErrDegenerateCalibration = errors.New("degenerate calibration")
	ErrInvalidInput          = errors.New("invalid input")
)

// Kind is a coarse-grained categorization of measurement failures.
type Kind string

const (
	KindInsufficientObjects   Kind = "insufficient_objects"
	KindDimensionMatch        Kind = "dimension_match_failed"
	KindDegenerateCalibration Kind = "degenerate_calibration"
	KindInvalidInput          Kind = "invalid_input"
)

func (k Kind) sentinel() error {
	switch k {
	case KindInsufficientObjects:
		return ErrInsufficientObjects
	case KindDimensionMatch:
		return ErrDimensionMatch
	case KindDegenerateCalibration:
		return ErrDegenerateCalibration
	case KindInvalidInput:
		return ErrInvalidInput
	}
	return nil
}

// View identifies which photograph of a request an error or observation
// belongs to.
type View string

const (
	ViewTop   View = "top"
	ViewFront View = "front"
)

// Error wraps a measurement failure with the stage and photograph it came
// from, e.g. "front view: extract: expected 2 objects, found 3".
type Error struct {
	Op   string // Stage: "extract", "fuse", "calibrate", "config"
	View View   // Optional: photograph the failure belongs to
	Role Role   // Optional: object the failure belongs to
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := e.Op
	if e.Role != "" {
		base = fmt.Sprintf("%s object: %s", e.Role, base)
	}
	if e.View != "" {
		base = fmt.Sprintf("%s view: %s", e.View, base)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	} else {
		base += fmt.Sprintf(": %s", e.Kind)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// IsKind reports whether err is a measurement Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind == kind
	}
	return false
}

func invalidInput(op string, format string, args ...any) error {
	return &Error{Op: op, Kind: KindInvalidInput, Err: fmt.Errorf(format, args...)}
}
