package lss

import "fmt"

// BuildErrorKind classifies why Build or BuildDynamic refused an input.
type BuildErrorKind int

const (
	// InputEmpty means the input slice had zero elements.
	InputEmpty BuildErrorKind = iota
	// InputOverflow means an element exceeds 2^Width - 1, or there are too
	// many elements to fit the configured width.
	InputOverflow
	// InputUnsorted means the input was not strictly ascending.
	InputUnsorted
	// ConfigInvalid means a pinned or tuned (leaf, top) pair had top <= leaf,
	// or the tuner bounds were inverted.
	ConfigInvalid
)

func (k BuildErrorKind) String() string {
	switch k {
	case InputEmpty:
		return "InputEmpty"
	case InputOverflow:
		return "InputOverflow"
	case InputUnsorted:
		return "InputUnsorted"
	case ConfigInvalid:
		return "ConfigInvalid"
	default:
		return "BuildErrorKind(?)"
	}
}

// BuildError is returned by Build and BuildDynamic. Callers that need to
// branch on the failure reason should use errors.As to recover it.
type BuildError struct {
	Kind BuildErrorKind
	Msg  string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("lss: build failed: %s: %s", e.Kind, e.Msg)
}

// Is matches against the sentinel Err* values below by Kind, so callers can
// use errors.Is(err, lss.ErrInputUnsorted) instead of unwrapping Kind by hand.
func (e *BuildError) Is(target error) bool {
	other, ok := target.(*BuildError)
	return ok && other.Kind == e.Kind
}

func buildErr(kind BuildErrorKind, format string, args ...any) error {
	return &BuildError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel BuildErrors for errors.Is, one per BuildErrorKind. Their Msg is
// irrelevant: Is compares by Kind only.
var (
	ErrInputEmpty    error = &BuildError{Kind: InputEmpty}
	ErrInputOverflow error = &BuildError{Kind: InputOverflow}
	ErrInputUnsorted error = &BuildError{Kind: InputUnsorted}
	ErrConfigInvalid error = &BuildError{Kind: ConfigInvalid}
)
