package components

import (
	"fmt"
	"html"
	"strings"
)

// TipTab is one category tab.
type TipTab struct {
	ID    string
	Label string
	Icon  string
}

// TipsOptions configures the health tips section.
type TipsOptions struct {
	Title        string
	Intro        string
	Tabs         []TipTab
	Active       string
	Tips         []string
	WhyItMatters []string

	// Action, CSRFField and CSRFToken wire the tab buttons to the no-JS path.
	Action    string
	CSRFField string
	CSRFToken string
}

// RenderTips generates the tab list, the active category's tips and the
// "why it matters" panel.
func RenderTips(opts TipsOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section class="section" aria-labelledby="tips-title">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h1 id="tips-title">%s</h1>`, html.EscapeString(opts.Title)))
	sb.WriteString("\n")
	if opts.Intro != "" {
		sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(opts.Intro)))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf(`<form method="post" action="%s" lv-submit>`, html.EscapeString(opts.Action)))
	if opts.CSRFField != "" && opts.CSRFToken != "" {
		sb.WriteString(fmt.Sprintf(`<input type="hidden" name="%s" value="%s">`,
			html.EscapeString(opts.CSRFField), html.EscapeString(opts.CSRFToken)))
	}
	sb.WriteString(`<div class="tabs" role="tablist" aria-label="Tip categories">`)
	for _, tab := range opts.Tabs {
		selected := tab.ID == opts.Active
		sb.WriteString(fmt.Sprintf(`<button type="submit" name="_event" value="select_tab:%s" class="tab" role="tab" id="tab-%s" aria-controls="tips-panel" aria-selected="%t">`,
			html.EscapeString(tab.ID), html.EscapeString(tab.ID), selected))
		if icon := Icon(tab.Icon); icon != "" {
			sb.WriteString(fmt.Sprintf(`<span aria-hidden="true">%s</span>`, icon))
		}
		sb.WriteString(html.EscapeString(tab.Label))
		sb.WriteString(`</button>`)
	}
	sb.WriteString(`</div></form>`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<div id="tips-panel" class="card" role="tabpanel" aria-labelledby="tab-%s">`, html.EscapeString(opts.Active)))
	sb.WriteString(`<ul class="tip-list">`)
	for _, tip := range opts.Tips {
		sb.WriteString(fmt.Sprintf(`<li class="tip"><span class="tip-mark" aria-hidden="true">%s</span><span>%s</span></li>`,
			Icon("check"), html.EscapeString(tip)))
	}
	sb.WriteString(`</ul></div>`)
	sb.WriteString("\n")

	if len(opts.WhyItMatters) > 0 {
		sb.WriteString(`<div class="card why"><h2>Why It Matters</h2><ul>`)
		for _, item := range opts.WhyItMatters {
			sb.WriteString(fmt.Sprintf(`<li><span class="tip-mark" aria-hidden="true">%s</span> %s</li>`,
				Icon("check"), html.EscapeString(item)))
		}
		sb.WriteString(`</ul></div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}
