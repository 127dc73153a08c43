package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrTooManyEntries     = errors.New("too many parameters in file")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrSizeMismatch       = errors.New("data section does not match header")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "duplicate_name", "invalid_name")
	Name    string // Parameter name involved
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: parameter %q: %s", e.Type, e.Name, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
