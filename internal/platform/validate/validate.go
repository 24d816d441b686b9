// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Every endpoint payload goes through one parse function built on this
// Validator before any handler logic runs. The first failing rule of a field
// wins; later rules on the same field are skipped.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.BadRequest("Invalid JSON payload")

	// ErrBodyTooLarge is returned when the request body exceeds the limit.
	ErrBodyTooLarge = apperr.PayloadTooLarge("Request body too large")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs map[string]string
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string, message ...string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, pick(message, "This field is required"))
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int, message ...string) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, pick(message, fmt.Sprintf("Maximum %d characters", max)))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int, message ...string) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, pick(message, fmt.Sprintf("Minimum %d characters", min)))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int, message ...string) *Validator {
	if value < min || value > max {
		v.add(field, pick(message, fmt.Sprintf("Must be between %d and %d", min, max)))
	}
	return v
}

// Email fails if the value is not a bare RFC 5322 address ("Name <a@b>" is rejected).
func (v *Validator) Email(field, value string, message ...string) *Validator {
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != value || !strings.Contains(value[strings.LastIndex(value, "@")+1:], ".") {
		v.add(field, pick(message, "Must be a valid email address"))
	}
	return v
}

// URL fails if the value is not an absolute http(s) URL with a host.
func (v *Validator) URL(field, value string, message ...string) *Validator {
	parsed, err := url.ParseRequestURI(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		v.add(field, pick(message, "Must be a valid URL"))
	}
	return v
}

// UUID fails if the value is not a valid UUID string.
func (v *Validator) UUID(field, value string, message ...string) *Validator {
	if !uuid.Valid(value) {
		v.add(field, pick(message, "Must be a valid UUID"))
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed []string, message ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, pick(message, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", "))))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("confirmPassword", password != confirm, "Passwords do not match")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// # Coercion

// Int coerces a raw query value into an integer.
//
// An empty raw value yields fallback. A non-numeric value records a failure
// and also yields fallback, so callers can keep chaining.
func (v *Validator) Int(field, raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	number, err := strconv.Atoi(raw)
	if err != nil {
		v.add(field, "Must be a number")
		return fallback
	}
	return number
}

// # Output

// Err returns a [apperr.AppError] (VALIDATION_ERROR, 422) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}

	fields := make(map[string]string, len(v.errs))
	for field, message := range v.errs {
		fields[field] = message
	}
	return apperr.ValidationFailed(fields)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Failed reports whether field already has a recorded failure.
func (v *Validator) Failed(field string) bool {
	_, ok := v.errs[field]
	return ok
}

// add records message for field unless the field already failed.
func (v *Validator) add(field, message string) {
	if v.errs == nil {
		v.errs = make(map[string]string)
	}
	if _, exists := v.errs[field]; exists {
		return
	}
	v.errs[field] = message
}

func pick(message []string, fallback string) string {
	if len(message) > 0 && message[0] != "" {
		return message[0]
	}
	return fallback
}

// FieldError is a shortcut to create a single-field validation error.
func FieldError(field, message string) *apperr.AppError {
	return apperr.ValidationFailed(map[string]string{field: message})
}
