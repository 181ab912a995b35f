package storage

import "errors"

// ErrNotFound is returned when a referenced record or the settings
// singleton is absent where required.
var ErrNotFound = errors.New("record not found")

// InitError wraps a failure to open the medium or create the schema.
// It is fatal: no other store operation may be called after it.
type InitError struct {
	Err error
}

func (e *InitError) Error() string { return "storage init: " + e.Err.Error() }
func (e *InitError) Unwrap() error { return e.Err }

// WriteError wraps a medium-level failure on a single write operation.
// The operation has no effect on stored state.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

// ReadError wraps a medium-level failure on a single read operation.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }
