package pages

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabrielmiguelok/healthpredictor/internal/website/components"
	"github.com/gabrielmiguelok/healthpredictor/pkg/core"
)

// EventSelectTab switches the visible tip category.
const EventSelectTab = "select_tab"

// ErrUnknownCategory is returned when a tab id is not in the site content.
var ErrUnknownCategory = errors.New("unknown tip category")

// HealthTips shows one category of tips at a time.
type HealthTips struct {
	core.BaseComponent

	deps      Deps
	active    string
	csrfToken string
}

// NewHealthTips returns the HealthTips factory.
func NewHealthTips(deps Deps) func() core.Component {
	return func() core.Component {
		return &HealthTips{deps: deps}
	}
}

func (t *HealthTips) Name() string { return "health_tips" }

// Mount selects the category from ?category=, falling back to the default.
func (t *HealthTips) Mount(ctx context.Context, params core.Params, session core.Session) error {
	t.csrfToken = session.GetString(core.SessionKeyCSRFToken)
	tips := t.deps.Content.Site().Tips
	t.active = tips.Default
	if id := params.Get("category"); id != "" {
		if _, ok := tips.Category(id); ok {
			t.active = id
		}
	}
	t.Assigns().Set("active", t.active)
	return nil
}

func (t *HealthTips) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	if event != EventSelectTab {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	id := stringValue(payload, "tab")
	if id == "" {
		id = stringValue(payload, "value")
	}
	if _, ok := t.deps.Content.Site().Tips.Category(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}
	t.active = id
	t.Assigns().Set("active", id)
	return nil
}

// Active returns the selected category id.
func (t *HealthTips) Active() string {
	return t.active
}

func (t *HealthTips) SaveState() ([]byte, error) {
	return []byte(t.active), nil
}

// LoadState ignores categories removed since the state was saved.
func (t *HealthTips) LoadState(data []byte) error {
	id := string(data)
	if _, ok := t.deps.Content.Site().Tips.Category(id); ok {
		t.active = id
		t.Assigns().Set("active", id)
	}
	return nil
}

func (t *HealthTips) Render(ctx context.Context) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		tips := t.deps.Content.Site().Tips

		// Content may be reloaded under a live session.
		active, ok := tips.Category(t.active)
		if !ok {
			active, _ = tips.Category(tips.Default)
		}

		tabs := make([]components.TipTab, 0, len(tips.Categories))
		for _, c := range tips.Categories {
			tabs = append(tabs, components.TipTab{ID: c.ID, Label: c.Label, Icon: c.Icon})
		}

		_, err := io.WriteString(w, components.RenderTips(components.TipsOptions{
			Title:        tips.Title,
			Intro:        tips.Intro,
			Tabs:         tabs,
			Active:       active.ID,
			Tips:         active.Tips,
			WhyItMatters: tips.WhyItMatters,
			Action:       PathTips,
			CSRFField:    t.deps.CSRFField,
			CSRFToken:    t.csrfToken,
		}))
		return err
	})
}
