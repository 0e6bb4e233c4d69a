package signup

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gabrielmiguelok/healthpredictor/pkg/forms"
)

func emptyValues() forms.Values {
	return forms.Values{
		FieldName:            "",
		FieldEmail:           "",
		FieldPassword:        "",
		FieldConfirmPassword: "",
	}
}

// atCredentials returns a flow that has passed the identity step.
func atCredentials(t *testing.T, opts ...Option) *Flow {
	t.Helper()
	f := New(opts...)
	mustSet(t, f, FieldName, "Ann")
	mustSet(t, f, FieldEmail, "ann@example.com")
	if !f.Advance() {
		t.Fatalf("Advance failed: %v", f.Errors())
	}
	return f
}

func mustSet(t *testing.T, f *Flow, name, value string) {
	t.Helper()
	if err := f.SetField(name, value); err != nil {
		t.Fatalf("SetField(%q): %v", name, err)
	}
}

func TestNew_Defaults(t *testing.T) {
	f := New()

	if f.Step() != StepIdentity {
		t.Errorf("expected identity step, got %s", f.Step())
	}
	if diff := cmp.Diff(emptyValues(), f.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if len(f.Errors()) != 0 {
		t.Errorf("expected no errors, got %v", f.Errors())
	}
	if f.Revealed(FieldPassword) || f.Revealed(FieldConfirmPassword) {
		t.Error("expected passwords hidden by default")
	}
}

func TestAdvance_EmptyName(t *testing.T) {
	f := New()
	mustSet(t, f, FieldName, "")

	if f.Advance() {
		t.Fatal("expected Advance to fail")
	}
	if got := f.Errors().Get(FieldName); got != "Name is required" {
		t.Errorf("expected name error, got %q", got)
	}
	if f.Step() != StepIdentity {
		t.Errorf("expected identity step, got %s", f.Step())
	}
}

func TestAdvance_Valid(t *testing.T) {
	f := New()
	mustSet(t, f, FieldName, "Ann")
	mustSet(t, f, FieldEmail, "ann@example.com")

	if !f.Advance() {
		t.Fatalf("expected Advance to succeed, errors: %v", f.Errors())
	}
	if f.Step() != StepCredentials {
		t.Errorf("expected credentials step, got %s", f.Step())
	}
	if len(f.Errors()) != 0 {
		t.Errorf("expected no errors, got %v", f.Errors())
	}
}

func TestAdvance_EmailRules(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr string
	}{
		{"empty", "", "Email is required"},
		{"blank", "   ", "Email is required"},
		{"no at", "ann.example.com", "Email is invalid"},
		{"no dot", "ann@example", "Email is invalid"},
		{"space", "ann @example.com", "Email is invalid"},
		{"leading space", " ann@example.com", "Email is invalid"},
		{"trailing space", "ann@example.com ", "Email is invalid"},
		{"trailing tab", "ann@example.com\t", "Email is invalid"},
		{"embedded space", "x y@z.w", "Email is invalid"},
		{"name before address", "Ann Smith ann@example.com", "Email is invalid"},
		{"valid", "ann@example.com", ""},
		{"minimal", "a@b.c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			mustSet(t, f, FieldName, "Ann")
			mustSet(t, f, FieldEmail, tt.email)

			advanced := f.Advance()
			if advanced != (tt.wantErr == "") {
				t.Errorf("Advance() = %v, want %v", advanced, tt.wantErr == "")
			}
			if got := f.Errors().Get(FieldEmail); got != tt.wantErr {
				t.Errorf("email error = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestAdvance_EmailShape(t *testing.T) {
	shape := regexp.MustCompile(`^\S+@\S+\.\S+$`)
	inputs := []string{
		"ann@example.com",
		"a@b.c",
		"a@b.c.d",
		"a@@b.c",
		"ann@example",
		"@b.c",
		"a@.c",
		"a@b.",
		" a@b.c",
		"a@b.c ",
		"a @b.c",
		"a@b .c",
		"x y@z.w",
		"Ann Smith ann@example.com",
		"ann@example.com\nother",
		"ünï@cödé.ørg",
	}

	for _, email := range inputs {
		f := New()
		mustSet(t, f, FieldName, "Ann")
		mustSet(t, f, FieldEmail, email)
		if got, want := f.Advance(), shape.MatchString(email); got != want {
			t.Errorf("Advance() with email %q = %v, want %v", email, got, want)
		}
	}
}

func TestAdvance_BlankName(t *testing.T) {
	f := New()
	mustSet(t, f, FieldName, " \t ")
	mustSet(t, f, FieldEmail, "ann@example.com")

	if f.Advance() {
		t.Fatal("expected whitespace-only name to block Advance")
	}
	want := forms.Errors{FieldName: "Name is required"}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestAdvance_ReplacesErrors(t *testing.T) {
	f := atCredentials(t)
	f.Submit(context.Background()) // password errors on credentials step
	if !f.Errors().Has(FieldPassword) {
		t.Fatal("expected password error")
	}

	f.Retreat()
	mustSet(t, f, FieldName, "")
	f.Advance()

	want := forms.Errors{FieldName: "Name is required"}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Errorf("errors not recomputed (-want +got):\n%s", diff)
	}
}

func TestRetreat(t *testing.T) {
	f := atCredentials(t)
	mustSet(t, f, FieldPassword, "short")
	f.Submit(context.Background())
	before := f.Snapshot()

	f.Retreat()
	if f.Step() != StepIdentity {
		t.Errorf("expected identity step, got %s", f.Step())
	}
	if diff := cmp.Diff(before.Values, map[string]string(f.Values())); diff != "" {
		t.Errorf("Retreat changed values:\n%s", diff)
	}
	if diff := cmp.Diff(before.Errors, map[string]string(f.Errors())); diff != "" {
		t.Errorf("Retreat changed errors:\n%s", diff)
	}
}

func TestRetreat_IdempotentAtIdentity(t *testing.T) {
	f := New()
	mustSet(t, f, FieldName, "")
	f.Advance()
	mustSet(t, f, FieldEmail, "x")
	before := f.Snapshot()

	f.Retreat()
	f.Retreat()

	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Errorf("Retreat at identity was not a no-op (-before +after):\n%s", diff)
	}
}

func TestSetField_ClearsOwnError(t *testing.T) {
	f := New()
	f.Advance()
	if !f.Errors().Has(FieldName) || !f.Errors().Has(FieldEmail) {
		t.Fatalf("expected both identity errors, got %v", f.Errors())
	}

	// An invalid value still clears the error; validation only reruns on
	// the next transition.
	mustSet(t, f, FieldEmail, "still-invalid")

	if f.Errors().Has(FieldEmail) {
		t.Error("expected email error to be cleared")
	}
	if !f.Errors().Has(FieldName) {
		t.Error("expected name error to remain")
	}
}

func TestSetField_UnknownField(t *testing.T) {
	f := New()
	before := f.Snapshot()

	err := f.SetField("age", "42")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Errorf("unknown field mutated state:\n%s", diff)
	}
}

func TestSubmit_ShortPassword(t *testing.T) {
	called := false
	f := atCredentials(t, WithCompletion(func(ctx context.Context, p Payload) error {
		called = true
		return nil
	}))
	mustSet(t, f, FieldPassword, "short")
	mustSet(t, f, FieldConfirmPassword, "short")

	ok, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected Submit to fail")
	}
	if called {
		t.Error("completion must not run on failed validation")
	}
	want := forms.Errors{FieldPassword: "Password must be at least 8 characters"}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if f.Step() != StepCredentials {
		t.Errorf("expected to stay on credentials, got %s", f.Step())
	}
}

func TestSubmit_Success(t *testing.T) {
	var got []Payload
	f := atCredentials(t, WithCompletion(func(ctx context.Context, p Payload) error {
		got = append(got, p)
		return nil
	}))
	mustSet(t, f, FieldPassword, "longenough")
	mustSet(t, f, FieldConfirmPassword, "longenough")
	_ = f.TogglePasswordVisibility(FieldPassword)

	ok, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected Submit to complete, errors: %v", f.Errors())
	}

	want := []Payload{{Name: "Ann", Email: "ann@example.com", Password: "longenough"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
	if f.Step() != StepIdentity {
		t.Errorf("expected identity step after submit, got %s", f.Step())
	}
	if diff := cmp.Diff(emptyValues(), f.Values()); diff != "" {
		t.Errorf("fields not reset (-want +got):\n%s", diff)
	}
	if len(f.Errors()) != 0 {
		t.Errorf("expected no errors after submit, got %v", f.Errors())
	}
	if !f.Revealed(FieldPassword) || f.Revealed(FieldConfirmPassword) {
		t.Error("expected reveal toggles to survive submit")
	}
}

func TestSubmit_PasswordPairs(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		complete bool
		errs     forms.Errors
	}{
		{"both empty", "", "", false, forms.Errors{
			FieldPassword:        "Password is required",
			FieldConfirmPassword: "Please confirm your password",
		}},
		{"confirm empty", "longenough", "", false, forms.Errors{
			FieldConfirmPassword: "Please confirm your password",
		}},
		{"mismatch", "longenough", "longenougH", false, forms.Errors{
			FieldConfirmPassword: "Passwords do not match",
		}},
		{"short mismatch", "short", "other", false, forms.Errors{
			FieldPassword:        "Password must be at least 8 characters",
			FieldConfirmPassword: "Passwords do not match",
		}},
		{"seven chars", "1234567", "1234567", false, forms.Errors{
			FieldPassword: "Password must be at least 8 characters",
		}},
		{"eight chars", "12345678", "12345678", true, forms.Errors{}},
		{"spaces count", "        ", "        ", true, forms.Errors{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := atCredentials(t)
			mustSet(t, f, FieldPassword, tt.password)
			mustSet(t, f, FieldConfirmPassword, tt.confirm)

			ok, _ := f.Submit(context.Background())
			if ok != tt.complete {
				t.Errorf("Submit() = %v, want %v", ok, tt.complete)
			}
			if diff := cmp.Diff(tt.errs, f.Errors()); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSubmit_AtIdentityIsNoop(t *testing.T) {
	called := false
	f := New(WithCompletion(func(ctx context.Context, p Payload) error {
		called = true
		return nil
	}))
	mustSet(t, f, FieldPassword, "longenough")
	mustSet(t, f, FieldConfirmPassword, "longenough")
	before := f.Snapshot()

	ok, err := f.Submit(context.Background())
	if ok || err != nil {
		t.Fatalf("Submit() = %v, %v; want false, nil", ok, err)
	}
	if called {
		t.Error("completion must not run from the identity step")
	}
	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Errorf("state changed:\n%s", diff)
	}
}

func TestSubmit_CompletionErrorStillResets(t *testing.T) {
	boom := errors.New("boom")
	f := atCredentials(t, WithCompletion(func(ctx context.Context, p Payload) error {
		return boom
	}))
	mustSet(t, f, FieldPassword, "longenough")
	mustSet(t, f, FieldConfirmPassword, "longenough")

	ok, err := f.Submit(context.Background())
	if !ok {
		t.Fatal("expected completion to be reported")
	}
	if !errors.Is(err, ErrCompletion) || !errors.Is(err, boom) {
		t.Errorf("expected wrapped completion error, got %v", err)
	}
	if f.Step() != StepIdentity || f.Value(FieldName) != "" {
		t.Error("expected flow to reset after completion")
	}
}

func TestTogglePasswordVisibility(t *testing.T) {
	f := New()

	if err := f.TogglePasswordVisibility(FieldPassword); err != nil {
		t.Fatal(err)
	}
	if !f.Revealed(FieldPassword) || f.Revealed(FieldConfirmPassword) {
		t.Error("expected only password revealed")
	}
	if err := f.TogglePasswordVisibility(FieldConfirmPassword); err != nil {
		t.Fatal(err)
	}
	if err := f.TogglePasswordVisibility(FieldPassword); err != nil {
		t.Fatal(err)
	}
	if f.Revealed(FieldPassword) || !f.Revealed(FieldConfirmPassword) {
		t.Error("expected toggles to be independent")
	}
	if err := f.TogglePasswordVisibility(FieldEmail); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if len(f.Errors()) != 0 {
		t.Error("toggling must not validate")
	}
}

func TestSignIn_DoesNotTouchState(t *testing.T) {
	calls := 0
	f := New(WithSignIn(func() { calls++ }))
	mustSet(t, f, FieldName, "Ann")
	before := f.Snapshot()

	f.SignIn()

	if calls != 1 {
		t.Errorf("expected one sign-in call, got %d", calls)
	}
	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Errorf("SignIn changed state:\n%s", diff)
	}
}

func TestSnapshotRestore(t *testing.T) {
	f := atCredentials(t)
	mustSet(t, f, FieldPassword, "short")
	f.Submit(context.Background())
	_ = f.TogglePasswordVisibility(FieldConfirmPassword)

	g := New()
	g.Restore(f.Snapshot())

	if diff := cmp.Diff(f.Snapshot(), g.Snapshot()); diff != "" {
		t.Errorf("restore mismatch (-want +got):\n%s", diff)
	}
}

func TestRestore_RejectsForeignData(t *testing.T) {
	g := New()
	g.Restore(Snapshot{
		Step:   Step(7),
		Values: map[string]string{"name": "Ann", "admin": "true"},
		Errors: map[string]string{"admin": "nope"},
	})

	if g.Step() != StepIdentity {
		t.Errorf("expected invalid step to fall back to identity, got %s", g.Step())
	}
	if _, ok := g.Values()["admin"]; ok {
		t.Error("unknown value restored")
	}
	if g.Errors().Has("admin") {
		t.Error("unknown error restored")
	}
	if g.Value(FieldName) != "Ann" {
		t.Error("known value not restored")
	}
}

func TestView(t *testing.T) {
	f := atCredentials(t)
	mustSet(t, f, FieldPassword, "short")
	f.Submit(context.Background())
	_ = f.TogglePasswordVisibility(FieldPassword)

	v := f.View()
	if v.Step != StepCredentials {
		t.Fatalf("expected credentials view, got %s", v.Step)
	}
	creds := v.Panels[StepCredentials]
	if len(creds) != 2 {
		t.Fatalf("expected 2 credential fields, got %d", len(creds))
	}
	if creds[0].Error != "Password must be at least 8 characters" {
		t.Errorf("unexpected password error %q", creds[0].Error)
	}
	if creds[0].InputType() != "text" || creds[1].InputType() != "password" {
		t.Errorf("unexpected input types %q %q", creds[0].InputType(), creds[1].InputType())
	}
	if ident := v.Panels[StepIdentity]; ident[0].Value != "Ann" {
		t.Errorf("identity panel lost value: %+v", ident[0])
	}
}

func TestPayload_Masked(t *testing.T) {
	p := Payload{Name: "Ann", Email: "ann@example.com", Password: "longenough"}
	if p.Masked().Password == p.Password {
		t.Error("expected password masked")
	}
	if p.Password != "longenough" {
		t.Error("Masked must not modify the receiver")
	}
}
