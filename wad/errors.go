package wad

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below
var (
	ErrFormat   = errors.New("wad: malformed data")
	ErrNotFound = errors.New("wad: resource not found")
)

// FormatError reports a structure that failed a bounds or layout check.
// Offsets are relative to the structure being decoded (archive or lump).
type FormatError struct {
	What   string
	Offset int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("wad: malformed %s at offset %d: %s", e.What, e.Offset, e.Reason)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// NotFoundError reports a missing archive file, lump or map marker
type NotFoundError struct {
	Kind string // "archive", "lump", "map"
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wad: %s %q not found: %v", e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("wad: %s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }

func truncated(what string, offset, need, have int) *FormatError {
	return &FormatError{
		What:   what,
		Offset: offset,
		Reason: fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}
