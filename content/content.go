// Package content loads the site copy: navigation, hero text, signup
// wording and health tips. A default copy is embedded in the binary.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/gabrielmiguelok/healthpredictor/pkg/security"
)

//go:embed site.yaml
var embedded []byte

// ErrInvalidContent is wrapped by every validation failure.
var ErrInvalidContent = errors.New("invalid site content")

// NavItem is one navigation link.
type NavItem struct {
	Path  string `yaml:"path"`
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
}

// Hero is the landing banner.
type Hero struct {
	Badge     string `yaml:"badge"`
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	Subtitle  string `yaml:"subtitle"`
	CTA       string `yaml:"cta"`
	CTAHref   string `yaml:"cta_href"`
}

// Signup holds the wording around the signup form.
type Signup struct {
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	Success      string `yaml:"success"`
	SignInPrompt string `yaml:"sign_in_prompt"`
	SignInLabel  string `yaml:"sign_in_label"`
}

// Category is one health-tips tab.
type Category struct {
	ID    string   `yaml:"id"`
	Label string   `yaml:"label"`
	Icon  string   `yaml:"icon"`
	Tips  []string `yaml:"tips"`
}

// Tips is the health-tips page.
type Tips struct {
	Title        string     `yaml:"title"`
	Intro        string     `yaml:"intro"`
	Default      string     `yaml:"default"`
	WhyItMatters []string   `yaml:"why_it_matters"`
	Categories   []Category `yaml:"categories"`
}

// Category returns the tab with id.
func (t Tips) Category(id string) (Category, bool) {
	for _, c := range t.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Footer is the page footer.
type Footer struct {
	Tagline   string `yaml:"tagline"`
	Copyright string `yaml:"copyright"`
}

// Site is the full content tree.
type Site struct {
	Brand  string    `yaml:"brand"`
	Nav    []NavItem `yaml:"nav"`
	Hero   Hero      `yaml:"hero"`
	Signup Signup    `yaml:"signup"`
	Tips   Tips      `yaml:"tips"`
	Footer Footer    `yaml:"footer"`
}

// Validate checks the fields the pages cannot render without.
func (s *Site) Validate() error {
	if s.Brand == "" {
		return fmt.Errorf("%w: brand is empty", ErrInvalidContent)
	}
	if len(s.Tips.Categories) == 0 {
		return fmt.Errorf("%w: no tip categories", ErrInvalidContent)
	}
	seen := make(map[string]bool, len(s.Tips.Categories))
	for _, c := range s.Tips.Categories {
		if c.ID == "" {
			return fmt.Errorf("%w: category without id", ErrInvalidContent)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidContent, c.ID)
		}
		seen[c.ID] = true
		if len(c.Tips) == 0 {
			return fmt.Errorf("%w: category %q has no tips", ErrInvalidContent, c.ID)
		}
	}
	if _, ok := s.Tips.Category(s.Tips.Default); !ok {
		return fmt.Errorf("%w: default category %q not found", ErrInvalidContent, s.Tips.Default)
	}
	return nil
}

// clean strips markup from every display string. Hrefs and ids are left
// as written.
func (s *Site) clean(san *security.Sanitizer) {
	s.Brand = san.Text(s.Brand)
	for i := range s.Nav {
		s.Nav[i].Label = san.Text(s.Nav[i].Label)
	}
	for _, p := range []*string{
		&s.Hero.Badge, &s.Hero.Title, &s.Hero.Highlight, &s.Hero.Subtitle, &s.Hero.CTA,
		&s.Signup.Title, &s.Signup.Subtitle, &s.Signup.Success, &s.Signup.SignInPrompt, &s.Signup.SignInLabel,
		&s.Tips.Title, &s.Tips.Intro,
		&s.Footer.Tagline, &s.Footer.Copyright,
	} {
		*p = san.Text(*p)
	}
	for i, w := range s.Tips.WhyItMatters {
		s.Tips.WhyItMatters[i] = san.Text(w)
	}
	for i := range s.Tips.Categories {
		c := &s.Tips.Categories[i]
		c.Label = san.Text(c.Label)
		for j, tip := range c.Tips {
			c.Tips[j] = san.Text(tip)
		}
	}
}

// Parse decodes, cleans and validates YAML content.
func Parse(data []byte) (*Site, error) {
	var site Site
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("decode site content: %w", err)
	}
	site.clean(security.NewSanitizer())
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// Default returns the embedded content.
func Default() *Site {
	site, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("embedded site content: %v", err))
	}
	return site
}

// Load reads content from path, or the embedded copy when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site content: %w", err)
	}
	return Parse(data)
}

// Provider serves the current content and swaps it atomically on reload.
type Provider struct {
	path    string
	current atomic.Pointer[Site]
}

// NewProvider loads path (or the embedded copy) once.
func NewProvider(path string) (*Provider, error) {
	site, err := Load(path)
	if err != nil {
		return nil, err
	}
	p := &Provider{path: path}
	p.current.Store(site)
	return p, nil
}

// StaticProvider serves site and never reloads.
func StaticProvider(site *Site) *Provider {
	p := &Provider{}
	p.current.Store(site)
	return p
}

// Site returns the current content.
func (p *Provider) Site() *Site {
	return p.current.Load()
}

// Path is the override file, "" when serving the embedded copy.
func (p *Provider) Path() string {
	return p.path
}

// Loaded reports whether content is available.
func (p *Provider) Loaded() bool {
	return p.current.Load() != nil
}

// Reload re-reads the file. The previous content stays in place on error.
func (p *Provider) Reload() error {
	site, err := Load(p.path)
	if err != nil {
		return err
	}
	p.current.Store(site)
	return nil
}
