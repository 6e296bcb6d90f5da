package arrayfile

import (
	"errors"
	"fmt"

	"arrayfile/internal/scanner"
)

// Sentinel errors for the operation boundaries. Callers match them with
// errors.Is.
var (
	// ErrNoExportedArray reports that no qualifying top-level export was
	// found in the module.
	ErrNoExportedArray = scanner.ErrNoExportedArray

	// ErrNotAnArray reports that the exported literal decoded to something
	// other than an array.
	ErrNotAnArray = errors.New("exported literal is not an array")

	// ErrFileTypeRejected reports that the input filename does not look like
	// a JS/TS module.
	ErrFileTypeRejected = errors.New("file type rejected: want .ts, .tsx, .js or .jsx")

	// ErrPathNotFound reports that a mutation addressed a path whose
	// intermediate nodes do not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrUnknownItem reports a removal referencing an item identity that is
	// not part of the document.
	ErrUnknownItem = errors.New("unknown item identity")
)

// DecodeError is returned when both decode tiers failed. It carries the
// diagnostics of each tier.
type DecodeError struct {
	StrictErr   error
	FallbackErr error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding literal failed: strict: %v; fallback: %v", e.StrictErr, e.FallbackErr)
}

func (e *DecodeError) Unwrap() error { return e.FallbackErr }

// PathError decorates a path resolution failure with the offending path.
type PathError struct {
	Path Path
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }
