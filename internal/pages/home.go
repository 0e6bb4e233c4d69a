package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabrielmiguelok/healthpredictor/internal/signup"
	"github.com/gabrielmiguelok/healthpredictor/internal/website/components"
	"github.com/gabrielmiguelok/healthpredictor/pkg/core"
	"github.com/gabrielmiguelok/healthpredictor/pkg/logging"
	"github.com/gabrielmiguelok/healthpredictor/pkg/state"
)

// Home events.
const (
	EventSetField     = "set_field"
	EventAdvance      = "advance"
	EventRetreat      = "retreat"
	EventSubmit       = "submit"
	EventToggleReveal = "toggle_reveal"
	EventSignIn       = "sign_in"
	EventDismissFlash = "dismiss_flash"
)

const signupFailed = "We could not create your account. Please try again."

// Home is the landing page: hero banner and the signup form.
type Home struct {
	core.BaseComponent

	deps      Deps
	flow      *signup.Flow
	csrfToken string

	flash     string
	flashKind components.FlashKind

	navigate  string
	signInErr error
}

// homeState is what survives between fallback requests.
type homeState struct {
	Flow      signup.Snapshot      `msgpack:"flow"`
	Flash     string               `msgpack:"flash,omitempty"`
	FlashKind components.FlashKind `msgpack:"flash_kind,omitempty"`
}

var homeSerializer = state.NewGenericSerializer[homeState]()

// NewHome returns the Home factory.
func NewHome(deps Deps) func() core.Component {
	return func() core.Component {
		h := &Home{deps: deps}
		h.flow = signup.New(
			signup.WithCompletion(h.complete),
			signup.WithSignIn(h.signIn),
		)
		return h
	}
}

func (h *Home) Name() string { return "home" }

func (h *Home) Mount(ctx context.Context, params core.Params, session core.Session) error {
	h.csrfToken = session.GetString(core.SessionKeyCSRFToken)
	h.sync()
	return nil
}

func (h *Home) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	if event != EventDismissFlash {
		h.clearFlash()
	}
	defer h.sync()

	// Fallback forms post every visible input with the button press.
	if err := h.applyFields(payload); err != nil {
		return err
	}

	switch event {
	case EventSetField:
		return h.flow.SetField(stringValue(payload, "field"), stringValue(payload, "value"))

	case EventAdvance:
		h.flow.Advance()

	case EventRetreat:
		h.flow.Retreat()

	case EventSubmit:
		done, err := h.flow.Submit(ctx)
		if err != nil {
			logging.L(ctx).Error("signup completion failed", logging.Err(err))
			h.setFlash(components.FlashError, signupFailed)
			return nil
		}
		if done {
			h.setFlash(components.FlashSuccess, h.deps.Content.Site().Signup.Success)
		}

	case EventToggleReveal:
		field := stringValue(payload, "field")
		if field == "" {
			field = stringValue(payload, "value")
		}
		return h.flow.TogglePasswordVisibility(field)

	case EventSignIn:
		h.flow.SignIn()
		if h.signInErr != nil {
			err := h.signInErr
			h.signInErr = nil
			return err
		}

	case EventDismissFlash:
		h.clearFlash()

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return nil
}

// applyFields copies changed field values from payload into the flow.
// Unchanged values are skipped so their errors stay visible. Password
// inputs are rendered empty, so an empty posted password keeps the stored
// one; set_field clears it explicitly.
func (h *Home) applyFields(payload map[string]any) error {
	for key, raw := range payload {
		if !signup.IsField(key) {
			continue
		}
		value, ok := raw.(string)
		if !ok || value == h.flow.Value(key) {
			continue
		}
		if value == "" && signup.IsSecret(key) {
			continue
		}
		if err := h.flow.SetField(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (h *Home) complete(ctx context.Context, p signup.Payload) error {
	logging.L(ctx).Info("account created", logging.Any("payload", p.Masked()))
	if h.deps.OnSignup != nil {
		return h.deps.OnSignup(ctx, p)
	}
	return nil
}

func (h *Home) signIn() {
	to, err := h.deps.Auth.Redirect(h.Socket())
	h.signInErr = err
	if s := h.Socket(); s == nil || !s.IsConnected() {
		h.navigate = to
	}
}

// NavigateTo reports where a fallback request should land.
func (h *Home) NavigateTo() string {
	return h.navigate
}

func (h *Home) setFlash(kind components.FlashKind, msg string) {
	h.flashKind = kind
	h.flash = msg
}

func (h *Home) clearFlash() {
	h.flash = ""
	h.flashKind = ""
}

// sync mirrors the flow into assigns so live pushes list what changed.
func (h *Home) sync() {
	a := h.Assigns()
	a.Set("step", h.flow.Step().String())
	a.Set("values", map[string]string(h.flow.Values()))
	a.Set("errors", map[string]string(h.flow.Errors()))
	a.Set("reveal", [2]bool{h.flow.Revealed(signup.FieldPassword), h.flow.Revealed(signup.FieldConfirmPassword)})
	a.Set("flash", h.flash)
}

// Flow exposes the signup flow.
func (h *Home) Flow() *signup.Flow {
	return h.flow
}

// Flash returns the current notice text.
func (h *Home) Flash() string {
	return h.flash
}

func (h *Home) SaveState() ([]byte, error) {
	return homeSerializer.Serialize(homeState{
		Flow:      h.flow.Snapshot(),
		Flash:     h.flash,
		FlashKind: h.flashKind,
	})
}

func (h *Home) LoadState(data []byte) error {
	s, err := homeSerializer.Deserialize(data)
	if err != nil {
		return err
	}
	h.flow.Restore(s.Flow)
	h.flash = s.Flash
	h.flashKind = s.FlashKind
	h.sync()
	return nil
}

func (h *Home) Render(ctx context.Context) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		site := h.deps.Content.Site()

		var sb strings.Builder
		sb.WriteString(components.RenderFlash(components.FlashOptions{
			Kind:      h.flashKind,
			Message:   h.flash,
			Dismiss:   EventDismissFlash,
			Action:    PathHome,
			CSRFField: h.deps.CSRFField,
			CSRFToken: h.csrfToken,
		}))
		sb.WriteString(`<div class="grid-2">`)
		sb.WriteString(components.RenderHero(components.HeroOptions{
			Badge:     site.Hero.Badge,
			Title:     site.Hero.Title,
			Highlight: site.Hero.Highlight,
			Subtitle:  site.Hero.Subtitle,
			CTA:       components.HeroButton{Text: site.Hero.CTA, URL: site.Hero.CTAHref},
		}))
		sb.WriteString(components.RenderSignupForm(components.SignupOptions{
			View:         h.flow.View(),
			Title:        site.Signup.Title,
			Subtitle:     site.Signup.Subtitle,
			Action:       PathHome,
			CSRFField:    h.deps.CSRFField,
			CSRFToken:    h.csrfToken,
			SignInPrompt: site.Signup.SignInPrompt,
			SignInLabel:  site.Signup.SignInLabel,
		}))
		sb.WriteString(`</div>`)

		_, err := io.WriteString(w, sb.String())
		return err
	})
}
