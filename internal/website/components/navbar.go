// Package components renders the page sections of the Health Predictor site.
// Every function returns an HTML fragment; user-visible strings are escaped.
package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/gabrielmiguelok/healthpredictor/internal/website"
)

// NavbarOptions configures the navbar.
type NavbarOptions struct {
	Brand string
	Links []website.NavLink
}

// RenderNavbar generates the sticky top navigation.
func RenderNavbar(opts NavbarOptions) string {
	var sb strings.Builder

	sb.WriteString(`<a href="#main-content" class="skip-link">Skip to main content</a>`)
	sb.WriteString("\n")
	sb.WriteString(`<nav class="nav" aria-label="Main navigation">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container nav-inner">`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<a href="/" class="logo"><span aria-hidden="true">%s</span> %s</a>`,
		Icon("heart"), html.EscapeString(opts.Brand)))
	sb.WriteString("\n")

	sb.WriteString(`<div class="nav-links">`)
	sb.WriteString("\n")
	for _, link := range opts.Links {
		current := ""
		if link.Active {
			current = ` aria-current="page"`
		}
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="nav-link"%s>`, html.EscapeString(link.URL), current))
		if icon := Icon(link.Icon); icon != "" {
			sb.WriteString(fmt.Sprintf(`<span aria-hidden="true">%s</span>`, icon))
		}
		sb.WriteString(html.EscapeString(link.Label))
		sb.WriteString(`</a>`)
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	return sb.String()
}

var icons = map[string]string{
	"home":        "🏠",
	"user":        "👤",
	"chart":       "📈",
	"heart":       "❤",
	"mail":        "✉",
	"lock":        "🔒",
	"bed":         "🛏",
	"dumbbell":    "🏋",
	"apple":       "🍎",
	"stethoscope": "🩺",
	"check":       "✓",
}

// Icon maps an icon name from the site content to a glyph. Unknown names
// render as nothing.
func Icon(name string) string {
	return icons[name]
}
