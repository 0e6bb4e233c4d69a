package forms

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Values holds raw string input keyed by field name.
type Values map[string]string

// Get returns the value for a field or "".
func (v Values) Get(name string) string {
	return v[name]
}

// Validator validates a field value. Validators may consult the other
// values of the form (confirmation fields do).
type Validator interface {
	// Validate checks if the value is valid.
	Validate(value string, values Values) error

	// Message returns the error message.
	Message() string
}

var (
	errRequired = errors.New("required")
	errFormat   = errors.New("invalid format")
	errTooShort = errors.New("too short")
	errMismatch = errors.New("mismatch")
)

// RequiredValidator fails when the value is blank after trimming whitespace.
type RequiredValidator struct {
	Msg string
}

func (v RequiredValidator) Validate(value string, _ Values) error {
	if strings.TrimSpace(value) == "" {
		return errRequired
	}
	return nil
}

func (v RequiredValidator) Message() string {
	if v.Msg != "" {
		return v.Msg
	}
	return "This field is required"
}

// PresentValidator fails only on the empty string. Whitespace counts as
// content, which is what secret fields want.
type PresentValidator struct {
	Msg string
}

func (v PresentValidator) Validate(value string, _ Values) error {
	if value == "" {
		return errRequired
	}
	return nil
}

func (v PresentValidator) Message() string {
	if v.Msg != "" {
		return v.Msg
	}
	return "This field is required"
}

// EmailValidator checks the loose <x>@<y>.<z> shape. The whole value must
// match, so any whitespace fails.
type EmailValidator struct {
	Msg string
}

var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func (v EmailValidator) Validate(value string, _ Values) error {
	if !emailRegex.MatchString(value) {
		return errFormat
	}
	return nil
}

func (v EmailValidator) Message() string {
	if v.Msg != "" {
		return v.Msg
	}
	return "Please enter a valid email address"
}

// MinLengthValidator validates minimum length in characters.
type MinLengthValidator struct {
	Min int
	Msg string
}

func (v MinLengthValidator) Validate(value string, _ Values) error {
	if utf8.RuneCountInString(value) < v.Min {
		return errTooShort
	}
	return nil
}

func (v MinLengthValidator) Message() string {
	if v.Msg != "" {
		return v.Msg
	}
	return "Value is too short"
}

// MatchesValidator requires the value to equal another field's value.
type MatchesValidator struct {
	Field string
	Msg   string
}

func (v MatchesValidator) Validate(value string, values Values) error {
	if value != values.Get(v.Field) {
		return errMismatch
	}
	return nil
}

func (v MatchesValidator) Message() string {
	if v.Msg != "" {
		return v.Msg
	}
	return "Values do not match"
}

// Check runs validators in order against values[field] and reports the
// first failure, or nil.
func Check(field string, values Values, validators ...Validator) *ValidationError {
	value := values.Get(field)
	for _, v := range validators {
		if err := v.Validate(value, values); err != nil {
			return &ValidationError{Field: field, Message: v.Message(), cause: err}
		}
	}
	return nil
}

// Convenience constructors

// Required returns a required validator with the given message.
func Required(msg string) Validator {
	return RequiredValidator{Msg: msg}
}

// Present returns a non-empty validator with the given message.
func Present(msg string) Validator {
	return PresentValidator{Msg: msg}
}

// Email returns an email shape validator.
func Email(msg string) Validator {
	return EmailValidator{Msg: msg}
}

// MinLength returns a minimum length validator.
func MinLength(n int, msg string) Validator {
	return MinLengthValidator{Min: n, Msg: msg}
}

// Matches returns a validator comparing against another field.
func Matches(field, msg string) Validator {
	return MatchesValidator{Field: field, Msg: msg}
}
