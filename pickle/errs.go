package pickle

import "errors"

var (
	// ErrMalformed indicates framing-level corruption: a bad leading
	// marker, a truncated instruction, inconsistent stack depth, or a
	// back-reference to an unassigned memo slot.
	ErrMalformed = errors.New("malformed pickle stream")

	// ErrUnsupported indicates an instruction entirely outside the
	// supported subset. Unknown record types within supported
	// instructions are not errors; they degrade to opaque nodes.
	ErrUnsupported = errors.New("unsupported pickle instruction")
)
