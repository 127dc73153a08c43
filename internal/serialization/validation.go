package serialization

import (
	"fmt"
	"strings"
)

// ValidateName checks a parameter name.
func ValidateName(name string) error {
	if name == "" {
		return &ValidationError{Type: "invalid_name", Details: "empty name"}
	}
	if len(name) > MaxNameLen {
		return &ValidationError{
			Type:    "name_too_long",
			Name:    name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxNameLen),
		}
	}
	if strings.Contains(name, "\x00") {
		return &ValidationError{
			Type:    "invalid_name",
			Name:    name,
			Details: "contains null byte",
		}
	}
	return nil
}

// ValidateNames checks every name and rejects duplicates.
func ValidateNames(names []string) error {
	if len(names) > MaxEntries {
		return fmt.Errorf("%w: %d > %d", ErrTooManyEntries, len(names), MaxEntries)
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			return err
		}
		if _, dup := seen[name]; dup {
			return &ValidationError{
				Type:    "duplicate_name",
				Name:    name,
				Details: "name appears more than once",
			}
		}
		seen[name] = struct{}{}
	}
	return nil
}
