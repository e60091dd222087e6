package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validation constants
const (
	MaxClientNameLength = 255
	MaxShortFieldLength = 255
	MaxNoteLength       = 2000
	MaxPageSize         = 1000
	DefaultPageSize     = 50
)

// ValidateClientName validates a client name.
func ValidateClientName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidClientName)
	}

	if utf8.RuneCountInString(name) > MaxClientNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidClientName, MaxClientNameLength)
	}

	return nil
}

// ValidateRequired checks that a trimmed field is present and not too long.
func ValidateRequired(value string, missing error) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return missing
	}
	return ValidateLength("value", value, MaxShortFieldLength)
}

// ValidateLength checks a free-text field against a rune limit.
func ValidateLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrFieldTooLong, field, limit)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
