// Package validate holds field-level input checks shared by the entity
// constructors. Failures are reported as *ValidationError so callers can
// distinguish malformed input from state errors.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidationError reports a single malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func errorf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Required rejects empty or whitespace-only values.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errorf(field, "must not be empty")
	}
	return nil
}

// Age rejects negative or implausible ages.
func Age(field string, age int) error {
	if age < 0 {
		return errorf(field, "must not be negative, got %d", age)
	}
	if age > 150 {
		return errorf(field, "must be at most 150, got %d", age)
	}
	return nil
}

// Email rejects addresses the mail package cannot parse. Empty is allowed;
// combine with Required when the field is mandatory.
func Email(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return errorf(field, "%q is not a valid email address", value)
	}
	return nil
}

// Phone accepts digits, spaces, dashes, parentheses and a leading +, with at
// least five digits. Empty is allowed.
func Phone(field, value string) error {
	if value == "" {
		return nil
	}
	digits := 0
	for i, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return errorf(field, "%q contains invalid character %q", value, r)
		}
	}
	if digits < 5 {
		return errorf(field, "%q has too few digits", value)
	}
	return nil
}

// Amount rejects negative monetary values.
func Amount(field string, v float64) error {
	if v < 0 {
		return errorf(field, "must not be negative, got %.2f", v)
	}
	return nil
}
