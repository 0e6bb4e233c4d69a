package forms

import (
	"sort"
)

// ValidationError is a failed rule on a single field.
type ValidationError struct {
	Field   string
	Message string
	cause   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap returns the rule failure that produced the error.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Errors maps field names to their current validation message.
// A field is present only while it is failing.
type Errors map[string]string

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// Add records a validation error.
func (e Errors) Add(err *ValidationError) {
	if err != nil {
		e[err.Field] = err.Message
	}
}

// Clone returns a copy safe to hand out.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for k := range e {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
