// Package pages holds the live components served by the site and the
// layout that wraps them.
package pages

import (
	"errors"
	"fmt"

	"github.com/gabrielmiguelok/healthpredictor/content"
	"github.com/gabrielmiguelok/healthpredictor/internal/signup"
	"github.com/gabrielmiguelok/healthpredictor/pkg/router"
	"github.com/gabrielmiguelok/healthpredictor/plugins/auth"
)

// Route paths.
const (
	PathHome   = "/"
	PathTips   = "/health-tips"
	PathSignIn = "/sign-in"
)

// ErrUnknownEvent is returned for events a page does not handle.
var ErrUnknownEvent = errors.New("unknown event")

// Deps are the collaborators shared by every page.
type Deps struct {
	Content *content.Provider
	Auth    *auth.Plugin

	// CSRFField names the hidden input carrying the token on fallback forms.
	CSRFField string

	// OnSignup receives each accepted signup after it is logged. Optional.
	OnSignup signup.CompletionFunc
}

func (d Deps) validate() error {
	if d.Content == nil {
		return errors.New("pages: content provider is required")
	}
	if d.Auth == nil {
		return errors.New("pages: auth plugin is required")
	}
	return nil
}

// Register mounts every page on r, plus the sign-in aliases.
func Register(r *router.Router, deps Deps, opts ...LayoutOption) error {
	if err := deps.validate(); err != nil {
		return err
	}

	layout := router.WithRouteLayout(Layout(deps.Content, opts...))
	r.Live(PathHome+"{$}", NewHome(deps), layout)
	r.Live(PathTips, NewHealthTips(deps), layout)
	r.Live(deps.Auth.SignInPath(), NewSignIn(deps), layout)

	for _, alias := range deps.Auth.Aliases() {
		r.Handle(alias, deps.Auth.Handler())
	}
	return nil
}

// stringValue reads a string payload entry.
func stringValue(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
