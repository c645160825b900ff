package layout

import "errors"

var (
	// ErrInvalidArgument is returned by setters given an out-of-range value,
	// e.g. a negative grid row or a span of zero.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilChild is returned when a nil element is added to a panel.
	ErrNilChild = errors.New("nil child")

	// ErrAlreadyParented is returned when an element that already has a
	// parent is added to another panel.
	ErrAlreadyParented = errors.New("element already has a parent")
)
