// Package signup implements the two-step account creation flow: an identity
// step (name, email) followed by a credentials step (password, confirmation).
//
// A Flow belongs to a single UI session and is not safe for concurrent use;
// callers serialise events per session.
package signup

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabrielmiguelok/healthpredictor/pkg/forms"
)

// Step is a phase of the signup flow.
type Step int

const (
	// StepIdentity collects name and email.
	StepIdentity Step = iota + 1
	// StepCredentials collects password and confirmation.
	StepCredentials
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepCredentials:
		return "credentials"
	default:
		return "unknown"
	}
}

// Field names.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// Common flow errors.
var (
	ErrUnknownField = errors.New("signup: unknown field")
	ErrCompletion   = errors.New("signup: completion handler failed")
)

// Payload is the validated data handed to the completion handler.
// The confirmation value is never forwarded.
type Payload struct {
	Name     string `json:"name" msgpack:"name"`
	Email    string `json:"email" msgpack:"email"`
	Password string `json:"password" msgpack:"password"`
}

// Masked returns a copy with the password replaced, for logging.
func (p Payload) Masked() Payload {
	if p.Password != "" {
		p.Password = "********"
	}
	return p
}

// CompletionFunc accepts a validated payload after a successful submit.
type CompletionFunc func(ctx context.Context, p Payload) error

// SignInFunc switches the user to the existing-account flow.
type SignInFunc func()

var identityFields = []forms.Field{
	forms.TextField(FieldName, "Full Name",
		forms.WithPlaceholder("John Doe"),
		forms.WithIcon("user"),
		forms.WithAutocomplete("name"),
		forms.WithValidator(forms.Required("Name is required")),
	),
	forms.EmailField(FieldEmail, "Email Address",
		forms.WithPlaceholder("your@email.com"),
		forms.WithIcon("mail"),
		forms.WithAutocomplete("email"),
		forms.WithValidator(forms.Required("Email is required")),
		forms.WithValidator(forms.Email("Email is invalid")),
	),
}

var credentialFields = []forms.Field{
	forms.PasswordField(FieldPassword, "Password",
		forms.WithPlaceholder("••••••••"),
		forms.WithIcon("lock"),
		forms.WithAutocomplete("new-password"),
		forms.WithValidator(forms.Present("Password is required")),
		forms.WithValidator(forms.MinLength(8, "Password must be at least 8 characters")),
	),
	forms.PasswordField(FieldConfirmPassword, "Confirm Password",
		forms.WithPlaceholder("••••••••"),
		forms.WithIcon("lock"),
		forms.WithAutocomplete("new-password"),
		forms.WithValidator(forms.Present("Please confirm your password")),
		forms.WithValidator(forms.Matches(FieldPassword, "Passwords do not match")),
	),
}

// Fields returns the field definitions shown on step.
func Fields(step Step) []forms.Field {
	switch step {
	case StepIdentity:
		return identityFields
	case StepCredentials:
		return credentialFields
	default:
		return nil
	}
}

// IsField reports whether name is one of the flow's input fields.
func IsField(name string) bool {
	switch name {
	case FieldName, FieldEmail, FieldPassword, FieldConfirmPassword:
		return true
	}
	return false
}

// IsSecret reports whether name holds a password that must not be echoed.
func IsSecret(name string) bool {
	return name == FieldPassword || name == FieldConfirmPassword
}

// Flow holds the state of one signup form.
type Flow struct {
	step   Step
	values forms.Values
	errors forms.Errors

	revealPassword        bool
	revealConfirmPassword bool

	onComplete CompletionFunc
	onSignIn   SignInFunc
}

// Option configures a Flow.
type Option func(*Flow)

// WithCompletion sets the handler invoked after a successful submit.
func WithCompletion(fn CompletionFunc) Option {
	return func(f *Flow) {
		f.onComplete = fn
	}
}

// WithSignIn sets the handler invoked when the user picks "Sign in".
func WithSignIn(fn SignInFunc) Option {
	return func(f *Flow) {
		f.onSignIn = fn
	}
}

// New creates a flow at the identity step with empty fields.
func New(opts ...Option) *Flow {
	f := &Flow{}
	f.Reset()
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Reset restores every field, error and toggle to its initial value.
func (f *Flow) Reset() {
	f.clearEntries()
	f.revealPassword = false
	f.revealConfirmPassword = false
}

// clearEntries empties the fields and errors and returns to the identity
// step. Reveal toggles are kept.
func (f *Flow) clearEntries() {
	f.step = StepIdentity
	f.values = forms.Values{
		FieldName:            "",
		FieldEmail:           "",
		FieldPassword:        "",
		FieldConfirmPassword: "",
	}
	f.errors = forms.Errors{}
}

// Step returns the current step.
func (f *Flow) Step() Step {
	return f.step
}

// Value returns the current value of a field.
func (f *Flow) Value(name string) string {
	return f.values.Get(name)
}

// Values returns a copy of all field values.
func (f *Flow) Values() forms.Values {
	out := make(forms.Values, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the current field errors.
func (f *Flow) Errors() forms.Errors {
	return f.errors.Clone()
}

// Revealed reports whether a password field is shown as plain text.
func (f *Flow) Revealed(field string) bool {
	switch field {
	case FieldPassword:
		return f.revealPassword
	case FieldConfirmPassword:
		return f.revealConfirmPassword
	}
	return false
}

// SetField stores a new value and clears that field's error, if any.
// No validation runs here; errors come back only on the next Advance or
// Submit.
func (f *Flow) SetField(name, value string) error {
	if !IsField(name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.values[name] = value
	delete(f.errors, name)
	return nil
}

// Advance validates the identity fields and moves to the credentials step
// when they all pass. Errors are replaced with exactly the failures found.
func (f *Flow) Advance() bool {
	if !f.validate(identityFields) {
		return false
	}
	f.step = StepCredentials
	return true
}

// Retreat returns to the identity step. Fields and errors are kept.
func (f *Flow) Retreat() {
	f.step = StepIdentity
}

// Submit validates the credentials fields and, when they pass, hands the
// payload to the completion handler, empties the fields and returns to the
// identity step. Reveal toggles survive. It reports whether completion
// happened. A handler error is returned wrapped in ErrCompletion; the
// fields are emptied regardless.
func (f *Flow) Submit(ctx context.Context) (bool, error) {
	if f.step != StepCredentials {
		return false, nil
	}
	if !f.validate(credentialFields) {
		return false, nil
	}

	payload := Payload{
		Name:     f.values.Get(FieldName),
		Email:    f.values.Get(FieldEmail),
		Password: f.values.Get(FieldPassword),
	}

	var err error
	if f.onComplete != nil {
		if cerr := f.onComplete(ctx, payload); cerr != nil {
			err = fmt.Errorf("%w: %w", ErrCompletion, cerr)
		}
	}

	f.clearEntries()
	return true, err
}

// TogglePasswordVisibility flips plain-text display of a password field.
func (f *Flow) TogglePasswordVisibility(field string) error {
	switch field {
	case FieldPassword:
		f.revealPassword = !f.revealPassword
	case FieldConfirmPassword:
		f.revealConfirmPassword = !f.revealConfirmPassword
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// SignIn invokes the sign-in handler. Form state is untouched.
func (f *Flow) SignIn() {
	if f.onSignIn != nil {
		f.onSignIn()
	}
}

// validate recomputes errors over fields only.
func (f *Flow) validate(fields []forms.Field) bool {
	errs := forms.Errors{}
	for _, field := range fields {
		errs.Add(field.Check(f.values))
	}
	f.errors = errs
	return len(errs) == 0
}
