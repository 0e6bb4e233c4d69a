package signup

import (
	"github.com/gabrielmiguelok/healthpredictor/pkg/forms"
)

// Snapshot is the serialisable form of a Flow's state. Handlers are not
// part of it; they are re-attached when the flow is rebuilt.
type Snapshot struct {
	Step                  Step              `json:"step" msgpack:"step"`
	Values                map[string]string `json:"values" msgpack:"values"`
	Errors                map[string]string `json:"errors,omitempty" msgpack:"errors,omitempty"`
	RevealPassword        bool              `json:"reveal_password,omitempty" msgpack:"rp,omitempty"`
	RevealConfirmPassword bool              `json:"reveal_confirm_password,omitempty" msgpack:"rcp,omitempty"`
}

// Snapshot captures the current state.
func (f *Flow) Snapshot() Snapshot {
	return Snapshot{
		Step:                  f.step,
		Values:                f.Values(),
		Errors:                f.errors.Clone(),
		RevealPassword:        f.revealPassword,
		RevealConfirmPassword: f.revealConfirmPassword,
	}
}

// Restore replaces the state with s. Unknown fields and an invalid step are
// ignored so a stale snapshot cannot put the flow outside its two steps.
func (f *Flow) Restore(s Snapshot) {
	f.Reset()
	if s.Step == StepCredentials {
		f.step = StepCredentials
	}
	for k, v := range s.Values {
		if IsField(k) {
			f.values[k] = v
		}
	}
	for k, v := range s.Errors {
		if IsField(k) {
			f.errors[k] = v
		}
	}
	f.revealPassword = s.RevealPassword
	f.revealConfirmPassword = s.RevealConfirmPassword
}

// FieldView is the render-ready state of one input.
type FieldView struct {
	forms.Field
	Value    string
	Error    string
	Revealed bool
}

// InputType returns the HTML input type, honouring the reveal toggle.
func (v FieldView) InputType() string {
	if v.Type == forms.FieldPassword && v.Revealed {
		return string(forms.FieldText)
	}
	return string(v.Type)
}

// View is a read-only projection of a Flow for renderers.
type View struct {
	Step  Step
	Steps []Step
	// Panels holds the fields of every step; only the current one is shown.
	Panels map[Step][]FieldView
}

// View builds the render projection of the current state.
func (f *Flow) View() View {
	v := View{
		Step:   f.step,
		Steps:  []Step{StepIdentity, StepCredentials},
		Panels: make(map[Step][]FieldView, 2),
	}
	for _, step := range v.Steps {
		fields := Fields(step)
		panel := make([]FieldView, 0, len(fields))
		for _, field := range fields {
			panel = append(panel, FieldView{
				Field:    field,
				Value:    f.values.Get(field.Name),
				Error:    f.errors.Get(field.Name),
				Revealed: f.Revealed(field.Name),
			})
		}
		v.Panels[step] = panel
	}
	return v
}
