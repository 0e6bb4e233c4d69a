package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/gabrielmiguelok/healthpredictor/internal/website"
)

// FooterOptions configures the page footer.
type FooterOptions struct {
	Brand     string
	Tagline   string
	Copyright string
	Year      int
	Links     []website.NavLink
}

// RenderFooter generates the page footer.
func RenderFooter(opts FooterOptions) string {
	var sb strings.Builder

	sb.WriteString(`<footer role="contentinfo">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	if opts.Brand != "" {
		sb.WriteString(fmt.Sprintf(`<div class="logo">%s</div>`, html.EscapeString(opts.Brand)))
		sb.WriteString("\n")
	}
	if opts.Tagline != "" {
		sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(opts.Tagline)))
		sb.WriteString("\n")
	}

	if len(opts.Links) > 0 {
		sb.WriteString(`<nav class="footer-links" aria-label="Footer navigation">`)
		for _, link := range opts.Links {
			sb.WriteString(fmt.Sprintf(`<a href="%s" class="nav-link">%s</a>`,
				html.EscapeString(link.URL), html.EscapeString(link.Label)))
		}
		sb.WriteString(`</nav>`)
		sb.WriteString("\n")
	}

	if opts.Copyright != "" {
		sb.WriteString(`<p>&copy; `)
		if opts.Year > 0 {
			sb.WriteString(fmt.Sprintf("%d ", opts.Year))
		}
		sb.WriteString(html.EscapeString(opts.Copyright))
		sb.WriteString(`</p>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</footer>`)
	sb.WriteString("\n")

	return sb.String()
}
