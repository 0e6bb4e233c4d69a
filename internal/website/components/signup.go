package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/gabrielmiguelok/healthpredictor/internal/signup"
	"github.com/gabrielmiguelok/healthpredictor/pkg/forms"
)

// SignupOptions configures the two-step signup form.
type SignupOptions struct {
	View signup.View

	Title    string
	Subtitle string

	// Action is the path the no-JS form posts to.
	Action string

	CSRFField string
	CSRFToken string

	SignInPrompt string
	SignInLabel  string
}

// RenderSignupForm renders the current step of the flow. Every control is a
// submit button carrying an _event value so the form works without
// JavaScript; the live client intercepts the same submits.
func RenderSignupForm(opts SignupOptions) string {
	var sb strings.Builder
	v := opts.View

	sb.WriteString(`<section id="signup" class="card signup-card" aria-labelledby="signup-title">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h2 id="signup-title">%s</h2>`, html.EscapeString(opts.Title)))
	sb.WriteString("\n")
	if opts.Subtitle != "" {
		sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(opts.Subtitle)))
		sb.WriteString("\n")
	}

	sb.WriteString(renderProgress(v))

	sb.WriteString(fmt.Sprintf(`<form method="post" action="%s" lv-submit novalidate>`, html.EscapeString(opts.Action)))
	sb.WriteString("\n")
	if opts.CSRFField != "" && opts.CSRFToken != "" {
		sb.WriteString(fmt.Sprintf(`<input type="hidden" name="%s" value="%s">`,
			html.EscapeString(opts.CSRFField), html.EscapeString(opts.CSRFToken)))
		sb.WriteString("\n")
	}

	// Enter submits the first submit button in tree order, so the step's
	// primary action goes before any reveal toggle.
	primary := "advance"
	if v.Step == signup.StepCredentials {
		primary = "submit"
	}
	sb.WriteString(fmt.Sprintf(`<button type="submit" name="_event" value="%s" class="default-action" tabindex="-1" aria-hidden="true"></button>`, primary))
	sb.WriteString("\n")

	for _, field := range v.Panels[v.Step] {
		sb.WriteString(renderField(field))
	}

	if v.Step == signup.StepIdentity {
		sb.WriteString(`<button type="submit" name="_event" value="advance" class="btn btn-primary btn-block">Next <span aria-hidden="true">→</span></button>`)
	} else {
		sb.WriteString(`<div class="form-actions">`)
		sb.WriteString(`<button type="submit" name="_event" value="retreat" class="btn btn-secondary">Back</button>`)
		sb.WriteString(`<button type="submit" name="_event" value="submit" class="btn btn-primary">Create Account</button>`)
		sb.WriteString(`</div>`)
	}
	sb.WriteString("\n")

	if opts.SignInLabel != "" {
		sb.WriteString(`<p class="signin">`)
		if opts.SignInPrompt != "" {
			sb.WriteString(html.EscapeString(opts.SignInPrompt))
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf(`<button type="submit" name="_event" value="sign_in" class="btn-link" formnovalidate>%s</button>`,
			html.EscapeString(opts.SignInLabel)))
		sb.WriteString(`</p>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</form>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderProgress(v signup.View) string {
	var sb strings.Builder
	sb.WriteString(`<ol class="progress" aria-label="Signup progress">`)
	for i, step := range v.Steps {
		if step == v.Step {
			sb.WriteString(fmt.Sprintf(`<li class="progress-dot active" aria-current="step"><span class="sr-only">Step %d of %d</span></li>`, i+1, len(v.Steps)))
		} else {
			sb.WriteString(fmt.Sprintf(`<li class="progress-dot"><span class="sr-only">Step %d of %d</span></li>`, i+1, len(v.Steps)))
		}
	}
	sb.WriteString(`</ol>`)
	sb.WriteString("\n")
	return sb.String()
}

func renderField(f signup.FieldView) string {
	var sb strings.Builder

	id := "f-" + f.Name
	class := "field"
	if f.Error != "" {
		class += " has-error"
	}

	sb.WriteString(fmt.Sprintf(`<div class="%s">`, class))
	sb.WriteString(fmt.Sprintf(`<label for="%s">%s</label>`, id, html.EscapeString(f.Label)))
	sb.WriteString(`<div class="input-wrap">`)
	if icon := Icon(f.Icon); icon != "" {
		sb.WriteString(fmt.Sprintf(`<span class="input-icon" aria-hidden="true">%s</span>`, icon))
	}

	// Secrets are never written back into the page. data-lv-keep tells the
	// client a value is held server-side.
	value := f.Value
	secret := f.Type == forms.FieldPassword
	if secret {
		value = ""
	}
	sb.WriteString(fmt.Sprintf(`<input id="%s" name="%s" type="%s" value="%s"`,
		id, html.EscapeString(f.Name), f.InputType(), html.EscapeString(value)))
	if secret {
		sb.WriteString(` data-lv-secret`)
		if f.Value != "" {
			sb.WriteString(` data-lv-keep`)
		}
	}
	if f.Placeholder != "" {
		sb.WriteString(fmt.Sprintf(` placeholder="%s"`, html.EscapeString(f.Placeholder)))
	}
	if f.Autocomplete != "" {
		sb.WriteString(fmt.Sprintf(` autocomplete="%s"`, html.EscapeString(f.Autocomplete)))
	}
	sb.WriteString(` lv-input="set_field"`)
	if f.Error != "" {
		sb.WriteString(fmt.Sprintf(` aria-invalid="true" aria-describedby="%s-error"`, id))
	}
	sb.WriteString(`>`)

	if f.Type == forms.FieldPassword {
		label := "Show"
		if f.Revealed {
			label = "Hide"
		}
		sb.WriteString(fmt.Sprintf(`<button type="submit" name="_event" value="toggle_reveal:%s" class="reveal" formnovalidate aria-label="%s %s" aria-pressed="%t">%s</button>`,
			html.EscapeString(f.Name), label, html.EscapeString(strings.ToLower(f.Label)), f.Revealed, label))
	}
	sb.WriteString(`</div>`)

	if f.Error != "" {
		sb.WriteString(fmt.Sprintf(`<p id="%s-error" class="field-error" role="alert">%s</p>`, id, html.EscapeString(f.Error)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}
