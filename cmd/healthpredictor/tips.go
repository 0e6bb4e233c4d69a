package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/healthpredictor/content"
)

var tipsFlags struct {
	content string
	style   string
	raw     bool
	width   int
}

var tipsCmd = &cobra.Command{
	Use:   "tips [category]",
	Short: "Print health tips",
	Long: `Print the health tips for one category, or every category when none
is given. Categories come from the site content (sleep, exercise, diet,
medical in the default copy).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTips,
}

func init() {
	f := tipsCmd.Flags()
	f.StringVar(&tipsFlags.content, "content", "", "site content YAML (overrides the embedded copy)")
	f.StringVar(&tipsFlags.style, "style", "auto", "glamour style: auto, dark, light, notty")
	f.BoolVar(&tipsFlags.raw, "raw", false, "print markdown without rendering")
	f.IntVar(&tipsFlags.width, "width", 80, "word wrap width")
}

func runTips(cmd *cobra.Command, args []string) error {
	site, err := content.Load(tipsFlags.content)
	if err != nil {
		return err
	}

	category := ""
	if len(args) == 1 {
		category = args[0]
	}
	md, err := tipsMarkdown(site, category)
	if err != nil {
		return err
	}

	if tipsFlags.raw {
		_, err := fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	}

	style := glamour.WithAutoStyle()
	if tipsFlags.style != "auto" {
		style = glamour.WithStylePath(tipsFlags.style)
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(tipsFlags.width))
	if err != nil {
		return fmt.Errorf("tips renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// tipsMarkdown renders one category, or all of them when id is empty.
func tipsMarkdown(site *content.Site, id string) (string, error) {
	tips := site.Tips
	categories := tips.Categories
	if id != "" {
		c, ok := tips.Category(id)
		if !ok {
			ids := make([]string, 0, len(tips.Categories))
			for _, c := range tips.Categories {
				ids = append(ids, c.ID)
			}
			return "", fmt.Errorf("unknown category %q (available: %s)", id, strings.Join(ids, ", "))
		}
		categories = []content.Category{c}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", tips.Title)
	if tips.Intro != "" {
		fmt.Fprintf(&sb, "%s\n\n", tips.Intro)
	}
	for _, c := range categories {
		fmt.Fprintf(&sb, "## %s\n\n", c.Label)
		for _, tip := range c.Tips {
			fmt.Fprintf(&sb, "- %s\n", tip)
		}
		sb.WriteString("\n")
	}
	if len(tips.WhyItMatters) > 0 {
		sb.WriteString("## Why It Matters\n\n")
		for _, item := range tips.WhyItMatters {
			fmt.Fprintf(&sb, "- %s\n", item)
		}
	}
	return sb.String(), nil
}
