package components

import (
	"fmt"
	"html"
	"strings"
)

// FlashKind selects the notice color.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// FlashOptions configures a notice banner.
type FlashOptions struct {
	Kind    FlashKind
	Message string

	// Dismiss, when set, renders a close button posting this event.
	Dismiss   string
	Action    string
	CSRFField string
	CSRFToken string
}

// RenderFlash renders a status notice. An empty message renders nothing.
func RenderFlash(opts FlashOptions) string {
	if opts.Message == "" {
		return ""
	}
	kind := opts.Kind
	if kind == "" {
		kind = FlashInfo
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<div class="flash flash-%s" role="status" aria-live="polite">`, kind))
	sb.WriteString(fmt.Sprintf(`<span>%s</span>`, html.EscapeString(opts.Message)))
	if opts.Dismiss != "" {
		sb.WriteString(fmt.Sprintf(`<form method="post" action="%s" lv-submit>`, html.EscapeString(opts.Action)))
		if opts.CSRFField != "" && opts.CSRFToken != "" {
			sb.WriteString(fmt.Sprintf(`<input type="hidden" name="%s" value="%s">`,
				html.EscapeString(opts.CSRFField), html.EscapeString(opts.CSRFToken)))
		}
		sb.WriteString(fmt.Sprintf(`<button type="submit" name="_event" value="%s" aria-label="Dismiss">&times;</button>`,
			html.EscapeString(opts.Dismiss)))
		sb.WriteString(`</form>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	return sb.String()
}
