package dirwalk

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrBrokenPipe is wrapped by an OutputError when the reader of the output
// stream went away.
var ErrBrokenPipe = errors.New("dirwalk: broken pipe")

// MetadataError reports an entry whose own metadata could not be read. The
// entry is skipped and, if it was a directory, not descended into.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("cannot stat %q: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// EnumerationError reports a directory that could not be opened or whose
// listing failed part way. The directory is treated as having no further
// children.
type EnumerationError struct {
	Path string
	Err  error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("cannot read directory %q: %v", e.Path, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// OutputError is a write failure on the output stream. It stops the walk.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("cannot write %q: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// StartPathError is returned when the start path itself cannot be examined.
// Nothing has been emitted when it is returned.
type StartPathError struct {
	Path string
	Err  error
}

func (e *StartPathError) Error() string {
	return fmt.Sprintf("cannot walk %q: %v", e.Path, e.Err)
}

func (e *StartPathError) Unwrap() error { return e.Err }

// IsFatal reports whether err must stop the walk.
func IsFatal(err error) bool {
	var oe *OutputError
	var se *StartPathError
	return errors.As(err, &oe) || errors.As(err, &se)
}

func outputError(path string, err error) error {
	if errors.Is(err, syscall.EPIPE) {
		err = fmt.Errorf("%w: %w", ErrBrokenPipe, err)
	}
	return &OutputError{Path: path, Err: err}
}
