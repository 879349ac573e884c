package media

import (
	"errors"
	"fmt"
)

// Sentinel kinds for store failures. Match with errors.Is.
var (
	// ErrInvalidPath marks a stored path that failed the safety rule;
	// nothing was touched on disk or in metadata.
	ErrInvalidPath = errors.New("invalid stored path")
	// ErrIOFailure marks a failed filesystem operation.
	ErrIOFailure = errors.New("filesystem operation failed")
	// ErrNotPersisted marks the one state the store cannot self-heal: the
	// filesystem step succeeded but the metadata commit did not. Callers
	// should alert or retry rather than treat it as a plain failure.
	ErrNotPersisted = errors.New("file state changed but metadata not persisted")
)

// StoreError carries the failure kind, the operation and the offending path.
type StoreError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("media %s %q: %v: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("media %s %q: %v", e.Op, e.Path, e.Kind)
}

func (e *StoreError) Is(target error) bool {
	return target == e.Kind
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op, path string, kind, err error) *StoreError {
	return &StoreError{Op: op, Path: path, Kind: kind, Err: err}
}
