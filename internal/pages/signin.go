package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/gabrielmiguelok/healthpredictor/pkg/core"
)

// SignIn is the existing-account landing page. Sign-in itself is handled
// elsewhere; this page points visitors back to signup.
type SignIn struct {
	core.BaseComponent

	deps Deps
}

// NewSignIn returns the SignIn factory.
func NewSignIn(deps Deps) func() core.Component {
	return func() core.Component {
		return &SignIn{deps: deps}
	}
}

func (s *SignIn) Name() string { return "sign_in" }

func (s *SignIn) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
}

func (s *SignIn) Render(ctx context.Context) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		site := s.deps.Content.Site()
		_, err := fmt.Fprintf(w, `<section class="section"><div class="card signup-card">`+
			`<h1>%s</h1><p>Sign-in for existing accounts is coming soon.</p>`+
			`<p class="signin">New here? <a class="btn-link" href="%s#signup">Create an account</a></p>`+
			`</div></section>`,
			html.EscapeString(site.Signup.SignInLabel), PathHome)
		return err
	})
}
