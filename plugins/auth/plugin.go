// Package auth routes visitors to the existing-account sign-in page.
// Credential checks live outside this site; the plugin only knows where
// sign-in happens and how to send a visitor there.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gabrielmiguelok/healthpredictor/pkg/core"
)

// EventRedirect is pushed to live sockets to change the browser location.
const EventRedirect = "redirect"

// ErrInvalidPath is returned for sign-in paths that are not site-relative.
var ErrInvalidPath = errors.New("auth: sign-in path must start with a single /")

// Config configures the plugin.
type Config struct {
	// SignInPath is where existing users sign in.
	SignInPath string

	// Aliases are extra paths redirected to SignInPath by Handler.
	Aliases []string
}

// DefaultConfig returns the site defaults.
func DefaultConfig() Config {
	return Config{
		SignInPath: "/sign-in",
		Aliases:    []string{"/login", "/signin"},
	}
}

// Plugin sends visitors to the sign-in page.
type Plugin struct {
	config Config
}

// New validates config and returns a Plugin.
func New(config Config) (*Plugin, error) {
	if !sitePath(config.SignInPath) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, config.SignInPath)
	}
	for _, alias := range config.Aliases {
		if !sitePath(alias) {
			return nil, fmt.Errorf("%w: alias %q", ErrInvalidPath, alias)
		}
	}
	return &Plugin{config: config}, nil
}

// SignInPath returns the configured sign-in path.
func (p *Plugin) SignInPath() string {
	return p.config.SignInPath
}

// Aliases returns the paths Handler redirects.
func (p *Plugin) Aliases() []string {
	out := make([]string, len(p.config.Aliases))
	copy(out, p.config.Aliases)
	return out
}

// Redirect asks a connected live socket to navigate to the sign-in page and
// returns the path. With a nil or closed socket nothing is pushed; the
// caller redirects over HTTP instead.
func (p *Plugin) Redirect(socket *core.Socket) (string, error) {
	to := p.config.SignInPath
	if socket == nil || !socket.IsConnected() {
		return to, nil
	}
	if err := socket.Push(EventRedirect, map[string]any{"to": to}); err != nil {
		return to, fmt.Errorf("push redirect: %w", err)
	}
	return to, nil
}

// Handler redirects any request to the sign-in page, preserving the query.
func (p *Plugin) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		to := p.config.SignInPath
		if r.URL.RawQuery != "" {
			to += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, to, http.StatusSeeOther)
	})
}

// sitePath rejects absolute and protocol-relative URLs so redirects stay
// on this host.
func sitePath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}
