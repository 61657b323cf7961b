package texty

import "errors"

var (
	// ErrUnsupported is returned by every operation when the environment
	// lacks a required capability.
	ErrUnsupported = errors.New("selection is not supported in this environment")

	// ErrInvalidSelection is returned for records whose offsets do not fit
	// their content.
	ErrInvalidSelection = errors.New("invalid selection record")

	// ErrDetachedNode is returned when an element has no parent to select
	// it within, or a selection has no element to measure against.
	ErrDetachedNode = errors.New("node is detached")

	// ErrInvalidScope is returned when a scope is nil or not an element.
	ErrInvalidScope = errors.New("scope must be an element")
)
