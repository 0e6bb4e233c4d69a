package pages

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gabrielmiguelok/healthpredictor/content"
	"github.com/gabrielmiguelok/healthpredictor/internal/website"
	"github.com/gabrielmiguelok/healthpredictor/internal/website/components"
	"github.com/gabrielmiguelok/healthpredictor/pkg/router"
)

// LayoutOption configures Layout.
type LayoutOption func(*layoutConfig)

type layoutConfig struct {
	script  string
	baseURL string
	now     func() time.Time
}

// WithScript sets the live client path. An empty path serves pages without
// JavaScript.
func WithScript(path string) LayoutOption {
	return func(c *layoutConfig) {
		c.script = path
	}
}

// WithBaseURL sets the origin used for canonical URLs.
func WithBaseURL(url string) LayoutOption {
	return func(c *layoutConfig) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// Layout wraps pages in the site document: head, navbar, main and footer.
func Layout(provider *content.Provider, opts ...LayoutOption) router.Layout {
	cfg := &layoutConfig{
		script: "/live.js",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(ctx context.Context, w io.Writer, page router.Page) error {
		site := provider.Site()

		pc := website.DefaultPageConfig()
		pc.Title = pageTitle(site, page.Path)
		pc.Description = site.Hero.Subtitle
		pc.Nonce = router.CSPNonce(ctx)
		pc.Script = cfg.script
		if cfg.baseURL != "" {
			pc.URL = cfg.baseURL + page.Path
		}

		links := navLinks(site, page.Path)

		var body strings.Builder
		body.WriteString(components.RenderNavbar(components.NavbarOptions{
			Brand: site.Brand,
			Links: links,
		}))
		body.WriteString(`<main id="main-content" class="container">`)
		body.Write(page.Body)
		body.WriteString("</main>\n")
		body.WriteString(components.RenderFooter(components.FooterOptions{
			Brand:     site.Brand,
			Tagline:   site.Footer.Tagline,
			Copyright: site.Footer.Copyright,
			Year:      cfg.now().Year(),
			Links:     links,
		}))

		_, err := io.WriteString(w, website.RenderDocument(pc, "", body.String()))
		return err
	}
}

func navLinks(site *content.Site, current string) []website.NavLink {
	links := make([]website.NavLink, 0, len(site.Nav))
	for _, item := range site.Nav {
		links = append(links, website.NavLink{
			Label:  item.Label,
			URL:    item.Path,
			Icon:   item.Icon,
			Active: item.Path == current,
		})
	}
	return links
}

// pageTitle prefixes the brand with the matching nav label, if any.
func pageTitle(site *content.Site, path string) string {
	if path != PathHome {
		for _, item := range site.Nav {
			if item.Path == path {
				return item.Label + " | " + site.Brand
			}
		}
	}
	return site.Brand
}
