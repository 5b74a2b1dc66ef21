package services

import (
	"errors"
	"fmt"
)

var ErrAttachmentNotFound = errors.New("attachment not found")

// ValidationError is a user-correctable intake failure; Reason is safe to show.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// StorageError wraps a failure of the record or blob store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
