package core

import "errors"

// Precondition violations are raised with panic(err) using these values;
// recoverable failures are returned wrapped, so match them with errors.Is.
var (
	ErrAlreadyInitialized = errors.New("container already initialized")
	ErrNotInitialized     = errors.New("container not initialized")
	ErrReentrantApply     = errors.New("reentrant or concurrent write to container")
	ErrMutatorPanic       = errors.New("mutator panicked")
	ErrMutatorFailed      = errors.New("mutator failed")
	ErrDispatcherClosed   = errors.New("dispatcher closed")
)
