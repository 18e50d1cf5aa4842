// SPDX-License-Identifier: MPL-2.0

package inf

import (
	"errors"
	"fmt"
)

var (
	// ErrSectionNotFound is returned when a document has no section with the requested name.
	ErrSectionNotFound = errors.New("section not found")
	// ErrRowOutOfRange is returned by RowAt for an index past the end of a section.
	ErrRowOutOfRange = errors.New("row index out of range")
	// ErrFieldMissing is the sentinel wrapped by FieldError when the row has no such field.
	ErrFieldMissing = errors.New("field missing")
	// ErrFieldNotInteger is the sentinel wrapped by FieldError when a field is not a valid int32.
	ErrFieldNotInteger = errors.New("field is not an integer")
	// ErrFileTooLarge is returned by Open and Parse for documents above MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
)

type (
	// FieldError describes a failed field access on a row.
	// It wraps ErrFieldMissing or ErrFieldNotInteger for errors.Is() compatibility.
	FieldError struct {
		Section string
		Line    int
		Index   int
		Err     error
	}

	// SyntaxError reports a line that cannot be parsed.
	SyntaxError struct {
		File    string
		Line    int
		Message string
	}
)

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("section %s, line %d: field %d: %v", e.Section, e.Line, e.Index, e.Err)
}

// Unwrap returns the sentinel describing the failure.
func (e *FieldError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}
