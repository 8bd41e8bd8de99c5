package playlist

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFile is returned when an upload carries no file content.
	ErrMissingFile = errors.New("no file uploaded")
	// ErrNotFound is returned when the requested track path does not exist
	// in the file store.
	ErrNotFound = errors.New("track not found")
)

// StoreError wraps any failure of the metadata store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("metadata store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// BlobError wraps any failure of the file store.
type BlobError struct {
	Op   string
	Path string
	Err  error
}

func (e *BlobError) Error() string {
	return fmt.Sprintf("file store: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *BlobError) Unwrap() error {
	return e.Err
}
