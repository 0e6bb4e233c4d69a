// Package website renders the Health Predictor pages: the document shell,
// inline styles and the shared page configuration. Section markup lives in
// the components subpackage.
package website

// PageConfig holds the per-page document metadata.
type PageConfig struct {
	// Title is shown in the browser tab and search results.
	Title       string
	Description string
	// URL is the canonical URL of the page.
	URL        string
	Keywords   []string
	Language   string
	ThemeColor string
	Favicon    string

	// Nonce is the CSP nonce applied to inline style and script tags.
	Nonce string

	// Script is the path of the live client; empty disables it.
	Script string
}

// NavLink is one navigation entry.
type NavLink struct {
	Label string
	URL   string
	// Icon is a name understood by components.Icon.
	Icon   string
	Active bool
}

// DefaultPageConfig returns a PageConfig with the site defaults.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Language:   "en",
		ThemeColor: Colors["primary"],
		Keywords:   []string{"health", "lifestyle diseases", "machine learning", "prediction"},
	}
}
