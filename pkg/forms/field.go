package forms

// FieldType identifies the type of form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldHidden   FieldType = "hidden"
)

// Field describes a single input of a form.
type Field struct {
	// Name is the field name (used in form data).
	Name string

	// Type is the field type.
	Type FieldType

	// Label is the display label.
	Label string

	// Placeholder is the placeholder text.
	Placeholder string

	// Icon is a short glyph rendered inside the input.
	Icon string

	// Autocomplete attribute.
	Autocomplete string

	// Validators run in order; the first failure wins.
	Validators []Validator
}

// FieldOption is a function that configures a field.
type FieldOption func(*Field)

// NewField creates a new field.
func NewField(name string, fieldType FieldType, label string, opts ...FieldOption) Field {
	field := Field{
		Name:       name,
		Type:       fieldType,
		Label:      label,
		Validators: make([]Validator, 0),
	}

	for _, opt := range opts {
		opt(&field)
	}

	return field
}

// WithPlaceholder sets the placeholder text.
func WithPlaceholder(placeholder string) FieldOption {
	return func(f *Field) {
		f.Placeholder = placeholder
	}
}

// WithIcon sets the input icon.
func WithIcon(icon string) FieldOption {
	return func(f *Field) {
		f.Icon = icon
	}
}

// WithAutocomplete sets the autocomplete attribute.
func WithAutocomplete(value string) FieldOption {
	return func(f *Field) {
		f.Autocomplete = value
	}
}

// WithValidator adds a validator.
func WithValidator(v Validator) FieldOption {
	return func(f *Field) {
		f.Validators = append(f.Validators, v)
	}
}

// Check runs the field's validators against values.
func (f Field) Check(values Values) *ValidationError {
	return Check(f.Name, values, f.Validators...)
}

// TextField creates a text field.
func TextField(name, label string, opts ...FieldOption) Field {
	return NewField(name, FieldText, label, opts...)
}

// EmailField creates an email field.
func EmailField(name, label string, opts ...FieldOption) Field {
	return NewField(name, FieldEmail, label, opts...)
}

// PasswordField creates a password field.
func PasswordField(name, label string, opts ...FieldOption) Field {
	return NewField(name, FieldPassword, label, opts...)
}
