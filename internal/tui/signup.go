package tui

import (
	"context"
	"fmt"

	"github.com/gabrielmiguelok/healthpredictor/internal/signup"
)

// Outcome is how a terminal signup ended.
type Outcome int

const (
	// OutcomeCreated means the flow accepted a submission.
	OutcomeCreated Outcome = iota + 1
	// OutcomeSignIn means the user chose the existing-account path.
	OutcomeSignIn
)

// Option configures RunSignup.
type Option func(*runner)

// WithStyles overrides the output styles.
func WithStyles(s Styles) Option {
	return func(r *runner) {
		r.styles = s
	}
}

// WithTitle sets the heading printed before the first step.
func WithTitle(title string) Option {
	return func(r *runner) {
		r.title = title
	}
}

// WithSuccessMessage sets the line printed after a completed signup.
func WithSuccessMessage(msg string) Option {
	return func(r *runner) {
		r.success = msg
	}
}

type runner struct {
	driver  PromptDriver
	flow    *signup.Flow
	styles  Styles
	title   string
	success string
}

// RunSignup drives flow from its current step until a submission is
// accepted or the user picks sign-in. Validation errors are printed and
// the step is prompted again with the previous answers as defaults.
func RunSignup(ctx context.Context, driver PromptDriver, flow *signup.Flow, opts ...Option) (Outcome, error) {
	r := &runner{
		driver:  driver,
		flow:    flow,
		styles:  DefaultStyles(),
		title:   "Create your account",
		success: "Account created successfully!",
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.info(ctx, r.styles.Title.Render(r.title)); err != nil {
		return 0, err
	}

	existing, err := driver.Confirm(ctx, ConfirmConfig{Message: "Already have an account?"})
	if err != nil {
		return 0, err
	}
	if existing {
		flow.SignIn()
		return OutcomeSignIn, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		switch flow.Step() {
		case signup.StepIdentity:
			if err := r.identity(ctx); err != nil {
				return 0, err
			}

		case signup.StepCredentials:
			done, err := r.credentials(ctx)
			if err != nil {
				return 0, err
			}
			if done {
				return OutcomeCreated, r.info(ctx, r.styles.Success.Render(r.success))
			}

		default:
			return 0, fmt.Errorf("tui: unexpected step %s", flow.Step())
		}
	}
}

func (r *runner) identity(ctx context.Context) error {
	if err := r.header(ctx, signup.StepIdentity); err != nil {
		return err
	}
	for _, field := range signup.Fields(signup.StepIdentity) {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: field.Label + ":",
			Default: r.flow.Value(field.Name),
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		if err := r.flow.SetField(field.Name, value); err != nil {
			return err
		}
	}
	if !r.flow.Advance() {
		return r.printErrors(ctx, signup.StepIdentity)
	}
	return nil
}

func (r *runner) credentials(ctx context.Context) (bool, error) {
	if err := r.header(ctx, signup.StepCredentials); err != nil {
		return false, err
	}

	show, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: "Show passwords while typing?",
		Default: r.flow.Revealed(signup.FieldPassword),
	})
	if err != nil {
		return false, err
	}

	for _, field := range signup.Fields(signup.StepCredentials) {
		if r.flow.Revealed(field.Name) != show {
			if err := r.flow.TogglePasswordVisibility(field.Name); err != nil {
				return false, err
			}
		}

		cfg := InputConfig{Message: field.Label + ":", Default: r.flow.Value(field.Name)}
		var value string
		if r.flow.Revealed(field.Name) {
			value, err = r.driver.Input(ctx, cfg)
		} else {
			value, err = r.driver.Password(ctx, cfg)
		}
		if err != nil {
			return false, err
		}
		if err := r.flow.SetField(field.Name, value); err != nil {
			return false, err
		}
	}

	done, err := r.flow.Submit(ctx)
	if err != nil || done {
		return done, err
	}
	if err := r.printErrors(ctx, signup.StepCredentials); err != nil {
		return false, err
	}

	back, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Go back to edit your name or email?"})
	if err != nil {
		return false, err
	}
	if back {
		r.flow.Retreat()
	}
	return false, nil
}

func (r *runner) header(ctx context.Context, step signup.Step) error {
	label := "Your details"
	if step == signup.StepCredentials {
		label = "Choose a password"
	}
	return r.info(ctx, r.styles.Step.Render(fmt.Sprintf("Step %d of 2 · %s", step, label)))
}

// printErrors lists the step's errors in field order.
func (r *runner) printErrors(ctx context.Context, step signup.Step) error {
	errs := r.flow.Errors()
	for _, field := range signup.Fields(step) {
		if msg := errs.Get(field.Name); msg != "" {
			if err := r.info(ctx, r.styles.Error.Render("✗ "+msg)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}
