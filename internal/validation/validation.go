// Package validation checks submitted forms and normalizes free-text numeric input.
package validation

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxPasswordBytes is the longest secret bcrypt will hash
const MaxPasswordBytes = 72

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// local@domain.tld, deliberately looser than RFC 5322
	_ = v.RegisterValidation("simplemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	// bcrypt refuses secrets longer than 72 bytes; "max" counts runes
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return v
}

// IsEmail reports whether s has the local@domain.tld shape
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Check validates form against its `validate` tags and returns every failure,
// in field order, using each field's `msg` tag as the user-facing message.
func Check(form interface{}) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}

	formType := reflect.Indirect(reflect.ValueOf(form)).Type()
	messages := make([]string, 0, len(fieldErrors))
	seen := make(map[string]bool, len(fieldErrors))
	for _, fe := range fieldErrors {
		message := fe.Error()
		if field, ok := formType.FieldByName(fe.StructField()); ok {
			if m := field.Tag.Get("msg"); m != "" {
				message = m
			}
		}
		if !seen[message] {
			seen[message] = true
			messages = append(messages, message)
		}
	}
	return messages
}

const maxQuantity = 1e8

// ParseQuantity accepts "3,5" or "3.5". Empty, non-numeric or out-of-range input yields nil, never an error.
func ParseQuantity(s string) *float64 {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	// decimal(10,2) tops out at 99999999.99
	if math.Abs(v) >= maxQuantity {
		return nil
	}
	return &v
}

// ParseOptionalID turns a select box value into an id; "" and garbage mean "none"
func ParseOptionalID(s string) *uint {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}

// OptionalString trims s and maps the empty string to nil
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
