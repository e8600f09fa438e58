// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"
	"unicode/utf8"

	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	apperrors "github.com/allisson/budgets/internal/errors"
)

// MaxNameLength is the longest budget name accepted, in characters.
const MaxNameLength = 255

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Decimal validates that a string parses as a decimal number (e.g. "3.50", "-12", "1e3").
// Empty strings pass so Required decides whether the field is mandatory.
var Decimal = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := decimal.NewFromString(strings.TrimSpace(s))
		return err == nil
	},
	validation.NewError("validation_decimal", "must be a decimal number"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// MaxRunes validates that a string has at most n characters, counting runes rather than bytes.
func MaxRunes(n int) validation.StringRule {
	return validation.NewStringRuleWithError(
		func(s string) bool {
			return utf8.RuneCountInString(s) <= n
		},
		validation.NewError("validation_max_runes", "must be no more than {{.max}} characters").
			SetParams(map[string]any{"max": n}),
	)
}

// ValidUTF8 validates that a string is well-formed UTF-8.
var ValidUTF8 = validation.NewStringRuleWithError(
	utf8.ValidString,
	validation.NewError("validation_utf8", "must be valid UTF-8"),
)
