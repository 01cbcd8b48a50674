package xlmerge

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the source directory does not exist.
var ErrNotFound = errors.New("source directory not found")

// ErrUnreadable indicates an input file could not be opened or parsed.
var ErrUnreadable = errors.New("unreadable workbook")

// ErrWrite indicates the output workbook could not be written.
var ErrWrite = errors.New("cannot write output workbook")

// NotFoundError reports a missing or non-directory source path.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source directory %q does not exist: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnreadableFileError reports an input file that was skipped.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("cannot read %q: %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}

// Is matches ErrUnreadable.
func (e *UnreadableFileError) Is(target error) bool {
	return target == ErrUnreadable
}

// WriteError reports a failure to persist the output workbook.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is matches ErrWrite.
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}
