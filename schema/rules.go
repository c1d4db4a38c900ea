package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule runs one check against a coerced field value. A nil return means the
// value passed; a non-nil return is recorded and the field is excluded from
// the result. Rules receive the field name so error messages stay uniform.
type Rule func(field string, value any) *ValidationError

// MinLen validates that a string is at least min characters long.
func MinLen(min int) Rule {
	return func(field string, value any) *ValidationError {
		if s, ok := value.(string); ok && len(s) < min {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %d characters long", min),
			}
		}
		return nil
	}
}

// MaxLen validates that a string is at most max characters long.
func MaxLen(max int) Rule {
	return func(field string, value any) *ValidationError {
		if s, ok := value.(string); ok && len(s) > max {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at most %d characters long", max),
			}
		}
		return nil
	}
}

// NotBlank validates that a string is not empty after trimming whitespace.
func NotBlank() Rule {
	return func(field string, value any) *ValidationError {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return &ValidationError{Field: field, Message: "must not be blank"}
		}
		return nil
	}
}

// Min validates that a numeric value is at least min.
func Min(min float64) Rule {
	return func(field string, value any) *ValidationError {
		if n, ok := asFloat(value); ok && n < min {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %v", min),
			}
		}
		return nil
	}
}

// Max validates that a numeric value is at most max.
func Max(max float64) Rule {
	return func(field string, value any) *ValidationError {
		if n, ok := asFloat(value); ok && n > max {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at most %v", max),
			}
		}
		return nil
	}
}

// InList validates that a string value is one of the allowed values.
func InList(allowed ...string) Rule {
	return func(field string, value any) *ValidationError {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		}
	}
}

// Match validates a string against a regular expression. The pattern is
// compiled once at declaration time; an invalid pattern panics, the same
// fail-fast treatment as a duplicate field name.
func Match(pattern string) Rule {
	re := regexp.MustCompile(pattern)
	return func(field string, value any) *ValidationError {
		if s, ok := value.(string); ok && !re.MatchString(s) {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must match pattern %s", pattern),
			}
		}
		return nil
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validates that a string looks like an email address.
func Email() Rule {
	return func(field string, value any) *ValidationError {
		if s, ok := value.(string); ok && !emailRegex.MatchString(s) {
			return &ValidationError{Field: field, Message: "must be a valid email address"}
		}
		return nil
	}
}

// MinItems validates that a list has at least min elements.
func MinItems(min int) Rule {
	return func(field string, value any) *ValidationError {
		if s, ok := value.([]string); ok && len(s) < min {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must have at least %d items", min),
			}
		}
		return nil
	}
}

func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
