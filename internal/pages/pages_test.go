package pages

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/healthpredictor/content"
	"github.com/gabrielmiguelok/healthpredictor/internal/signup"
	"github.com/gabrielmiguelok/healthpredictor/pkg/core"
	"github.com/gabrielmiguelok/healthpredictor/pkg/router"
	"github.com/gabrielmiguelok/healthpredictor/pkg/security"
	"github.com/gabrielmiguelok/healthpredictor/pkg/state"
	"github.com/gabrielmiguelok/healthpredictor/plugins/auth"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	a, err := auth.New(auth.DefaultConfig())
	require.NoError(t, err)
	return Deps{
		Content:   content.StaticProvider(content.Default()),
		Auth:      a,
		CSRFField: "_csrf",
	}
}

func mountHome(t *testing.T, deps Deps) *Home {
	t.Helper()
	h := NewHome(deps)().(*Home)
	require.NoError(t, h.Mount(context.Background(), core.Params{}, core.Session{}))
	return h
}

func render(t *testing.T, c core.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background()).Render(context.Background(), &sb))
	return sb.String()
}

func send(t *testing.T, c core.Component, event string, payload map[string]any) {
	t.Helper()
	require.NoError(t, c.HandleEvent(context.Background(), event, payload))
}

func TestHome_FullSignup(t *testing.T) {
	deps := testDeps(t)
	var got []signup.Payload
	deps.OnSignup = func(ctx context.Context, p signup.Payload) error {
		got = append(got, p)
		return nil
	}
	h := mountHome(t, deps)

	send(t, h, EventAdvance, nil)
	out := render(t, h)
	assert.Contains(t, out, "Name is required")
	assert.Contains(t, out, "Email is required")

	send(t, h, EventSetField, map[string]any{"field": "name", "value": "Ann"})
	assert.NotContains(t, render(t, h), "Name is required")

	send(t, h, EventSetField, map[string]any{"field": "email", "value": "ann@example.com"})
	send(t, h, EventAdvance, nil)
	assert.Equal(t, signup.StepCredentials, h.Flow().Step())

	send(t, h, EventSubmit, map[string]any{"password": "password1", "confirmPassword": "password2"})
	assert.Equal(t, "Passwords do not match", h.Flow().Errors().Get(signup.FieldConfirmPassword))
	assert.Empty(t, got)

	send(t, h, EventSubmit, map[string]any{"confirmPassword": "password1"})
	require.Len(t, got, 1)
	assert.Equal(t, signup.Payload{Name: "Ann", Email: "ann@example.com", Password: "password1"}, got[0])

	assert.Equal(t, signup.StepIdentity, h.Flow().Step())
	assert.Equal(t, "", h.Flow().Value(signup.FieldName))
	assert.Equal(t, "Account created successfully!", h.Flash())
	assert.Contains(t, render(t, h), "Account created successfully!")

	send(t, h, EventDismissFlash, nil)
	assert.Empty(t, h.Flash())
}

func TestHome_CompletionErrorShowsFlash(t *testing.T) {
	deps := testDeps(t)
	deps.OnSignup = func(ctx context.Context, p signup.Payload) error {
		return errors.New("store down")
	}
	h := mountHome(t, deps)

	send(t, h, EventAdvance, map[string]any{"name": "Ann", "email": "ann@example.com"})
	send(t, h, EventSubmit, map[string]any{"password": "password1", "confirmPassword": "password1"})

	assert.Equal(t, signupFailed, h.Flash())
	assert.Equal(t, signup.StepIdentity, h.Flow().Step())
}

func TestHome_FlashClearedOnNextEvent(t *testing.T) {
	h := mountHome(t, testDeps(t))
	send(t, h, EventAdvance, map[string]any{"name": "Ann", "email": "ann@example.com"})
	send(t, h, EventSubmit, map[string]any{"password": "password1", "confirmPassword": "password1"})
	require.NotEmpty(t, h.Flash())

	send(t, h, EventSetField, map[string]any{"field": "name", "value": "B"})
	assert.Empty(t, h.Flash())
}

func TestHome_UnchangedFieldKeepsError(t *testing.T) {
	h := mountHome(t, testDeps(t))

	send(t, h, EventAdvance, map[string]any{"name": "", "email": "bad"})
	require.Equal(t, "Email is invalid", h.Flow().Errors().Get(signup.FieldEmail))

	send(t, h, EventRetreat, map[string]any{"name": "", "email": "bad"})
	assert.Equal(t, "Email is invalid", h.Flow().Errors().Get(signup.FieldEmail))
	assert.Equal(t, "Name is required", h.Flow().Errors().Get(signup.FieldName))
}

func TestHome_ToggleReveal(t *testing.T) {
	h := mountHome(t, testDeps(t))

	send(t, h, EventToggleReveal, map[string]any{"value": "password"})
	assert.True(t, h.Flow().Revealed(signup.FieldPassword))

	send(t, h, EventToggleReveal, map[string]any{"field": "password"})
	assert.False(t, h.Flow().Revealed(signup.FieldPassword))

	err := h.HandleEvent(context.Background(), EventToggleReveal, map[string]any{"value": "email"})
	assert.ErrorIs(t, err, signup.ErrUnknownField)
}

func TestHome_PasswordsNotEchoed(t *testing.T) {
	h := mountHome(t, testDeps(t))
	send(t, h, EventAdvance, map[string]any{"name": "Ann", "email": "ann@example.com"})
	send(t, h, EventSetField, map[string]any{"field": "password", "value": "s3cret-pass"})
	send(t, h, EventToggleReveal, map[string]any{"value": "password"})

	out := render(t, h)
	assert.NotContains(t, out, "s3cret-pass")
	assert.Contains(t, out, `name="password" type="text" value="" data-lv-secret data-lv-keep`)
	assert.Contains(t, out, `name="confirmPassword" type="password" value="" data-lv-secret`)
	assert.NotContains(t, out, `name="confirmPassword" type="password" value="" data-lv-secret data-lv-keep`)

	// An empty posted password keeps the stored one.
	send(t, h, EventSubmit, map[string]any{"password": "", "confirmPassword": "different1"})
	assert.Equal(t, "s3cret-pass", h.Flow().Value(signup.FieldPassword))
	assert.Equal(t, "Passwords do not match", h.Flow().Errors().Get(signup.FieldConfirmPassword))

	// set_field clears it explicitly.
	send(t, h, EventSetField, map[string]any{"field": "password", "value": ""})
	assert.Empty(t, h.Flow().Value(signup.FieldPassword))
	assert.NotContains(t, render(t, h), "data-lv-keep")
}

func TestHome_SignInWithoutSocketNavigates(t *testing.T) {
	h := mountHome(t, testDeps(t))
	send(t, h, EventSetField, map[string]any{"field": "name", "value": "Ann"})

	send(t, h, EventSignIn, nil)

	assert.Equal(t, "/sign-in", h.NavigateTo())
	assert.Equal(t, "Ann", h.Flow().Value(signup.FieldName))
}

func TestHome_UnknownEvent(t *testing.T) {
	h := mountHome(t, testDeps(t))
	err := h.HandleEvent(context.Background(), "explode", nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestHome_StateRoundTrip(t *testing.T) {
	deps := testDeps(t)
	h := mountHome(t, deps)
	send(t, h, EventAdvance, map[string]any{"name": "Ann", "email": "ann@example.com"})
	send(t, h, EventToggleReveal, map[string]any{"value": "confirmPassword"})

	data, err := h.SaveState()
	require.NoError(t, err)

	restored := mountHome(t, deps)
	require.NoError(t, restored.LoadState(data))

	assert.Equal(t, h.Flow().Snapshot(), restored.Flow().Snapshot())
	assert.True(t, restored.Flow().Revealed(signup.FieldConfirmPassword))
}

func TestHealthTips(t *testing.T) {
	deps := testDeps(t)
	tips := NewHealthTips(deps)().(*HealthTips)
	require.NoError(t, tips.Mount(context.Background(), core.Params{}, core.Session{}))
	assert.Equal(t, "sleep", tips.Active())
	assert.Contains(t, render(t, tips), "Aim for 7-9 hours of sleep per night")

	send(t, tips, EventSelectTab, map[string]any{"value": "diet"})
	assert.Equal(t, "diet", tips.Active())
	out := render(t, tips)
	assert.Contains(t, out, "Practice portion control")
	assert.NotContains(t, out, "Aim for 7-9 hours")

	err := tips.HandleEvent(context.Background(), EventSelectTab, map[string]any{"value": "nope"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Equal(t, "diet", tips.Active())
}

func TestHealthTips_MountCategoryParam(t *testing.T) {
	deps := testDeps(t)

	tips := NewHealthTips(deps)().(*HealthTips)
	require.NoError(t, tips.Mount(context.Background(), core.Params{"category": "medical"}, core.Session{}))
	assert.Equal(t, "medical", tips.Active())

	tips = NewHealthTips(deps)().(*HealthTips)
	require.NoError(t, tips.Mount(context.Background(), core.Params{"category": "bogus"}, core.Session{}))
	assert.Equal(t, "sleep", tips.Active())
}

var csrfInput = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

type site struct {
	handler http.Handler
	cookie  *http.Cookie
}

func newSite(t *testing.T) *site {
	t.Helper()
	store := state.NewMemoryStore()
	csrf := security.NewCSRFProtection(security.CSRFConfig{Secret: []byte(strings.Repeat("s", 32))})
	r := router.New(
		router.WithStateManager(state.NewStateManager(store)),
		router.WithCSRF(csrf),
	)
	r.Use(router.SecureHeaders())
	require.NoError(t, Register(r, testDeps(t)))
	t.Cleanup(func() {
		r.Shutdown(context.Background())
		store.Close()
	})
	return &site{handler: r}
}

func (s *site) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	res := w.Result()
	for _, c := range res.Cookies() {
		if c.Name == core.DefaultSessionConfig().CookieName {
			s.cookie = c
		}
	}
	return res
}

func (s *site) get(t *testing.T, target string) (*http.Response, string) {
	t.Helper()
	res := s.do(t, httptest.NewRequest(http.MethodGet, target, nil))
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func (s *site) post(t *testing.T, target string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(t, req)
}

func TestSite_HomePage(t *testing.T) {
	s := newSite(t)
	res, body := s.get(t, "/")

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Empowering Health with AI:")
	assert.Contains(t, body, `data-live-view="home"`)
	assert.Contains(t, body, `name="email"`)
	assert.Contains(t, body, `<a href="/" class="nav-link" aria-current="page">`)

	m := regexp.MustCompile(`'nonce-([^']+)'`).FindStringSubmatch(res.Header.Get("Content-Security-Policy"))
	require.Len(t, m, 2)
	assert.Contains(t, body, `<style nonce="`+m[1]+`">`)
	assert.Contains(t, body, `<script src="/live.js" defer nonce="`+m[1]+`">`)
}

func TestSite_FallbackSignup(t *testing.T) {
	s := newSite(t)
	_, body := s.get(t, "/")
	token := csrfInput.FindStringSubmatch(body)
	require.Len(t, token, 2)

	res := s.post(t, "/", url.Values{
		"_csrf":  {token[1]},
		"_event": {"advance"},
		"name":   {"Ann"},
		"email":  {"ann@example.com"},
	})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))

	_, body = s.get(t, "/")
	assert.Contains(t, body, `name="password"`)
	assert.NotContains(t, body, `name="email"`)

	res = s.post(t, "/", url.Values{
		"_csrf":           {token[1]},
		"_event":          {"submit"},
		"password":        {"password1"},
		"confirmPassword": {"password2"},
	})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	_, body = s.get(t, "/")
	assert.Contains(t, body, "Passwords do not match")
	assert.NotContains(t, body, "password1")
	assert.NotContains(t, body, "password2")
	assert.Contains(t, body, `<input id="f-password" name="password" type="password" value="" data-lv-secret data-lv-keep`)

	// The browser posts the emptied password input back as "".
	res = s.post(t, "/", url.Values{
		"_csrf":           {token[1]},
		"_event":          {"submit"},
		"password":        {""},
		"confirmPassword": {"password1"},
	})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	_, body = s.get(t, "/")
	assert.Contains(t, body, "Account created successfully!")
	assert.Contains(t, body, `name="email"`)
}

func TestSite_FallbackSignIn(t *testing.T) {
	s := newSite(t)
	_, body := s.get(t, "/")
	token := csrfInput.FindStringSubmatch(body)
	require.Len(t, token, 2)

	res := s.post(t, "/", url.Values{"_csrf": {token[1]}, "_event": {"sign_in"}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/sign-in", res.Header.Get("Location"))

	res, body = s.get(t, "/sign-in")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Create an account")
}

func TestSite_TipsAndAliases(t *testing.T) {
	s := newSite(t)

	res, body := s.get(t, "/health-tips?category=exercise")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Include both cardio and strength training")
	assert.Contains(t, body, "<title>Health Tips | Health Predictor AI</title>")

	res, _ = s.get(t, "/login")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/sign-in", res.Header.Get("Location"))

	res, _ = s.get(t, "/nowhere")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRegister_RequiresDeps(t *testing.T) {
	r := router.New()
	t.Cleanup(func() { r.Shutdown(context.Background()) })
	assert.Error(t, Register(r, Deps{}))
}
