package components

import (
	"fmt"
	"html"
	"strings"
)

// HeroOptions configures the hero banner.
type HeroOptions struct {
	Badge string
	Title string
	// Highlight is appended to Title in the accent color.
	Highlight string
	Subtitle  string
	CTA       HeroButton
}

// HeroButton is the call to action.
type HeroButton struct {
	Text string
	URL  string
}

// RenderHero generates the hero banner.
func RenderHero(opts HeroOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section class="hero" aria-labelledby="hero-title">`)
	sb.WriteString("\n")

	if opts.Badge != "" {
		sb.WriteString(fmt.Sprintf(`<span class="hero-badge animate-fade-in">%s</span>`, html.EscapeString(opts.Badge)))
		sb.WriteString("\n")
	}

	sb.WriteString(`<h1 id="hero-title" class="hero-title animate-fade-in">`)
	sb.WriteString(html.EscapeString(opts.Title))
	if opts.Highlight != "" {
		sb.WriteString(` <span class="text-highlight">`)
		sb.WriteString(html.EscapeString(opts.Highlight))
		sb.WriteString(`</span>`)
	}
	sb.WriteString(`</h1>`)
	sb.WriteString("\n")

	if opts.Subtitle != "" {
		sb.WriteString(fmt.Sprintf(`<p class="hero-subtitle">%s</p>`, html.EscapeString(opts.Subtitle)))
		sb.WriteString("\n")
	}

	if opts.CTA.Text != "" {
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="btn btn-primary">%s <span aria-hidden="true">→</span></a>`,
			html.EscapeString(opts.CTA.URL), html.EscapeString(opts.CTA.Text)))
		sb.WriteString("\n")
	}

	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}
