package jsv

import (
	"errors"
)

var (
	errNotChild = errors.New("binding is not a child of the container")

	// ErrTypeArgument reports an argument of the wrong shape or type.
	ErrTypeArgument = errors.New("type argument error")
	// ErrOutOfMemory reports that the store has no room for a new node.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrInterrupted reports that a long operation stopped early because its
	// context was cancelled. The values involved remain structurally valid.
	ErrInterrupted = errors.New("interrupted")
	// ErrReadOnly reports an attempt to mutate through a cursor position
	// with no binding, such as a position in a string.
	ErrReadOnly = errors.New("read only")
	// ErrNotContainer reports a container operation on a non-container.
	ErrNotContainer = errors.New("not a container")
)
