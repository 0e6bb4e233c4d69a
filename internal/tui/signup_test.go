package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/healthpredictor/internal/signup"
)

// scriptedDriver answers prompts from queues and records Info output.
type scriptedDriver struct {
	inputs    []string
	passwords []string
	confirms  []bool

	inputPrompts    []InputConfig
	passwordPrompts []InputConfig
	infos           []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.inputPrompts = append(d.inputPrompts, cfg)
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	d.passwordPrompts = append(d.passwordPrompts, cfg)
	if len(d.passwords) == 0 {
		return "", errors.New("no password scripted")
	}
	v := d.passwords[0]
	d.passwords = d.passwords[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	v := d.confirms[0]
	d.confirms = d.confirms[1:]
	return v, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func (d *scriptedDriver) output() string {
	return strings.Join(d.infos, "\n")
}

func TestRunSignup_HappyPath(t *testing.T) {
	var got signup.Payload
	flow := signup.New(signup.WithCompletion(func(_ context.Context, p signup.Payload) error {
		got = p
		return nil
	}))
	d := &scriptedDriver{
		inputs:    []string{"Ann", "ann@example.com"},
		passwords: []string{"password1", "password1"},
		confirms:  []bool{false, false},
	}

	outcome, err := RunSignup(context.Background(), d, flow, WithStyles(PlainStyles()))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	assert.Equal(t, signup.Payload{Name: "Ann", Email: "ann@example.com", Password: "password1"}, got)
	assert.Contains(t, d.output(), "Account created successfully!")
	assert.Equal(t, signup.StepIdentity, flow.Step())
}

func TestRunSignup_RepromptsWithErrors(t *testing.T) {
	flow := signup.New()
	d := &scriptedDriver{
		// First identity pass fails, second keeps the name and fixes the email.
		inputs:    []string{"Ann", "ann@example", "Ann", "ann@example.com"},
		passwords: []string{"short", "short", "password1", "password1"},
		confirms:  []bool{false, false, false, false},
	}

	outcome, err := RunSignup(context.Background(), d, flow, WithStyles(PlainStyles()))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	out := d.output()
	assert.Contains(t, out, "✗ Email is invalid")
	assert.Contains(t, out, "✗ Password must be at least 8 characters")
	assert.NotContains(t, out, "Passwords do not match")

	require.Len(t, d.inputPrompts, 4)
	assert.Equal(t, "ann@example", d.inputPrompts[3].Default)
}

func TestRunSignup_RevealUsesPlainInput(t *testing.T) {
	flow := signup.New()
	d := &scriptedDriver{
		inputs:   []string{"Ann", "ann@example.com", "password1", "password1"},
		confirms: []bool{false, true},
	}

	outcome, err := RunSignup(context.Background(), d, flow, WithStyles(PlainStyles()))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	assert.Empty(t, d.passwordPrompts)
}

func TestRunSignup_GoBack(t *testing.T) {
	d := &scriptedDriver{
		inputs:    []string{"Ann", "ann@example.com", "Bob", "bob@example.com"},
		passwords: []string{"", "", "password1", "password1"},
		confirms:  []bool{false, false, true, false},
	}

	var got signup.Payload
	flow := signup.New(signup.WithCompletion(func(_ context.Context, p signup.Payload) error {
		got = p
		return nil
	}))

	_, err := RunSignup(context.Background(), d, flow, WithStyles(PlainStyles()))
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
	assert.Contains(t, d.output(), "✗ Password is required")
}

func TestRunSignup_SignIn(t *testing.T) {
	called := false
	flow := signup.New(signup.WithSignIn(func() { called = true }))
	d := &scriptedDriver{confirms: []bool{true}}

	outcome, err := RunSignup(context.Background(), d, flow)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSignIn, outcome)
	assert.True(t, called)
}

func TestRunSignup_CompletionError(t *testing.T) {
	flow := signup.New(signup.WithCompletion(func(context.Context, signup.Payload) error {
		return errors.New("store down")
	}))
	d := &scriptedDriver{
		inputs:    []string{"Ann", "ann@example.com"},
		passwords: []string{"password1", "password1"},
		confirms:  []bool{false, false},
	}

	_, err := RunSignup(context.Background(), d, flow)
	assert.ErrorIs(t, err, signup.ErrCompletion)
}

func TestRunSignup_DriverError(t *testing.T) {
	d := &scriptedDriver{confirms: []bool{false}}
	_, err := RunSignup(context.Background(), d, signup.New())
	assert.EqualError(t, err, "no input scripted")
}

func TestRunSignup_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &scriptedDriver{confirms: []bool{false}}
	_, err := RunSignup(ctx, d, signup.New())
	assert.ErrorIs(t, err, context.Canceled)
}
