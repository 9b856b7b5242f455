package config

import (
	"errors"
	"fmt"
	"time"
)

// Validator provides a fluent interface for validating configuration values.
// It collects all validation errors rather than failing on the first one.
type Validator struct {
	errors []error
	name   string // config section name for error messages
}

// NewValidator creates a validator for the named config section
func NewValidator(section string) *Validator {
	return &Validator{
		name:   section,
		errors: make([]error, 0),
	}
}

func (v *Validator) fail(field, format string, args ...any) *Validator {
	v.errors = append(v.errors, fmt.Errorf("%s.%s: %s", v.name, field, fmt.Sprintf(format, args...)))
	return v
}

// Required validates that a string field is not empty.
func (v *Validator) Required(field, value string) *Validator {
	if value == "" {
		return v.fail(field, "required field is empty")
	}
	return v
}

// RangeInt validates that an int field is within [min, max].
func (v *Validator) RangeInt(field string, value, min, max int) *Validator {
	if value < min || value > max {
		return v.fail(field, "value %d is outside range [%d, %d]", value, min, max)
	}
	return v
}

// RangeFloat validates that a float field is within [min, max].
func (v *Validator) RangeFloat(field string, value, min, max float64) *Validator {
	if !(value >= min && value <= max) {
		return v.fail(field, "value %g is outside range [%g, %g]", value, min, max)
	}
	return v
}

// PositiveFloat validates that a float field is positive (> 0).
func (v *Validator) PositiveFloat(field string, value float64) *Validator {
	if !(value > 0) {
		return v.fail(field, "value %g must be positive", value)
	}
	return v
}

// NegativeFloat validates that a float field is negative (< 0).
func (v *Validator) NegativeFloat(field string, value float64) *Validator {
	if !(value < 0) {
		return v.fail(field, "value %g must be negative", value)
	}
	return v
}

// MinDuration validates that a duration is at least the minimum.
func (v *Validator) MinDuration(field string, value, min time.Duration) *Validator {
	if value < min {
		return v.fail(field, "duration %v is below minimum %v", value, min)
	}
	return v
}

// OneOf validates that a string field is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	return v.fail(field, "value %q must be one of %v", value, allowed)
}

// Custom applies a custom validation function.
func (v *Validator) Custom(field string, fn func() error) *Validator {
	if err := fn(); err != nil {
		v.errors = append(v.errors, fmt.Errorf("%s.%s: %w", v.name, field, err))
	}
	return v
}

// When conditionally applies validations if the condition is true.
func (v *Validator) When(condition bool, validations func(*Validator)) *Validator {
	if condition {
		validations(v)
	}
	return v
}

// HasErrors returns true if any validation errors occurred.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []error {
	return v.errors
}

// Err joins every collected error, or returns nil.
func (v *Validator) Err() error {
	return errors.Join(v.errors...)
}
