package website

import (
	"fmt"
	"sort"
	"strings"
)

// Colors is the site palette (WCAG 2.1 AA on the light background).
var Colors = map[string]string{
	"bg":      "#F0FDFA", // Mint wash
	"bgAlt":   "#FFFFFF", // Cards, form
	"bgHover": "#CCFBF1",

	"text":      "#0F172A", // 17:1 on bg
	"textMuted": "#334155", // 10:1 on bg
	"textDim":   "#64748B", // 4.6:1 on bgAlt

	"primary":       "#0D9488", // Teal 600
	"primaryDark":   "#0F766E",
	"primaryBright": "#14B8A6",
	"secondary":     "#2563EB",
	"accent":        "#F59E0B",

	"success": "#047857",
	"warning": "#B45309",
	"danger":  "#B91C1C",
	"info":    "#1D4ED8",

	"border":      "#CBD5E1",
	"borderLight": "#E2E8F0",
}

// FontFamily is the system font stack.
var FontFamily = `system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif`

// StyleOption customizes RenderStyles.
type StyleOption func(*styleConfig)

type styleConfig struct {
	customColors      map[string]string
	includeReset      bool
	includeAnimations bool
}

// WithCustomColors overrides palette entries.
func WithCustomColors(colors map[string]string) StyleOption {
	return func(cfg *styleConfig) {
		for k, v := range colors {
			cfg.customColors[k] = v
		}
	}
}

// WithReset toggles the CSS reset.
func WithReset(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeReset = include
	}
}

// WithAnimations toggles the keyframe definitions.
func WithAnimations(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeAnimations = include
	}
}

// RenderStyles generates the site CSS.
func RenderStyles(opts ...StyleOption) string {
	cfg := &styleConfig{
		customColors:      make(map[string]string),
		includeReset:      true,
		includeAnimations: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	colors := make(map[string]string, len(Colors))
	for k, v := range Colors {
		colors[k] = v
	}
	for k, v := range cfg.customColors {
		colors[k] = v
	}

	var sb strings.Builder
	if cfg.includeReset {
		sb.WriteString(cssReset())
	}
	sb.WriteString(cssVariables(colors))
	sb.WriteString(cssBase())
	sb.WriteString(cssLayout())
	sb.WriteString(cssNav())
	sb.WriteString(cssHero())
	sb.WriteString(cssButtons())
	sb.WriteString(cssForm())
	sb.WriteString(cssTips())
	sb.WriteString(cssFlash())
	if cfg.includeAnimations {
		sb.WriteString(cssAnimations())
	}
	sb.WriteString(cssAccessibility())
	sb.WriteString(cssResponsive())
	return sb.String()
}

func cssReset() string {
	return `
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
html{-webkit-text-size-adjust:100%;scroll-behavior:smooth}
body{line-height:1.6;-webkit-font-smoothing:antialiased}
input,button,textarea,select{font:inherit}
a{color:inherit;text-decoration:none}
ul,ol{list-style:none}
`
}

// cssVariables emits the palette in key order so the output is stable.
func cssVariables(colors map[string]string) string {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]string, 0, len(names))
	for _, name := range names {
		vars = append(vars, fmt.Sprintf("--color-%s:%s", name, colors[name]))
	}
	return fmt.Sprintf(":root{%s;--font-sans:%s}\n", strings.Join(vars, ";"), FontFamily)
}

func cssBase() string {
	return `
body{font-family:var(--font-sans);background:var(--color-bg);color:var(--color-text);min-height:100vh}
h1{font-size:clamp(2rem,5vw,3.5rem);font-weight:800;line-height:1.1;letter-spacing:-0.02em}
h2{font-size:clamp(1.5rem,3vw,2rem);font-weight:700;line-height:1.2}
h3{font-size:1.125rem;font-weight:600}
p{color:var(--color-textMuted)}
.text-highlight{color:var(--color-primary)}
`
}

func cssLayout() string {
	return `
.container{width:100%;max-width:1120px;margin:0 auto;padding:0 1rem}
.section{padding:2.5rem 0}
.grid-2{display:grid;grid-template-columns:1fr;gap:2rem;align-items:start}
.card{background:var(--color-bgAlt);border:1px solid var(--color-borderLight);border-radius:1rem;box-shadow:0 10px 30px rgba(15,118,110,0.08)}
`
}

func cssNav() string {
	return `
.nav{position:sticky;top:0;z-index:100;background:rgba(255,255,255,0.95);border-bottom:1px solid var(--color-borderLight);padding:0.5rem 0}
.nav-inner{display:flex;align-items:center;justify-content:space-between;gap:0.5rem}
.logo{font-size:1.1rem;font-weight:800;color:var(--color-primaryDark)}
.nav-links{display:none;gap:0.25rem}
.nav-link{display:inline-flex;align-items:center;gap:0.4rem;padding:0.5rem 0.75rem;border-radius:0.5rem;color:var(--color-textMuted);font-weight:500}
.nav-link:hover{background:var(--color-bgHover);color:var(--color-text)}
.nav-link[aria-current="page"]{color:var(--color-primaryDark);background:var(--color-bgHover)}
`
}

func cssHero() string {
	return `
.hero{padding:3rem 0 1rem}
.hero-badge{display:inline-block;padding:0.35rem 0.85rem;border-radius:9999px;background:var(--color-bgHover);color:var(--color-primaryDark);font-weight:600;font-size:0.8rem;margin-bottom:1rem}
.hero-title{margin-bottom:1rem}
.hero-subtitle{font-size:1.05rem;max-width:34rem;margin-bottom:1.5rem}
`
}

func cssButtons() string {
	return `
.btn{display:inline-flex;align-items:center;justify-content:center;gap:0.5rem;padding:0.75rem 1.25rem;font-weight:600;border-radius:0.5rem;border:1px solid transparent;cursor:pointer;min-height:2.75rem;transition:background 0.2s ease}
.btn:focus-visible{outline:2px solid var(--color-primary);outline-offset:2px}
.btn-primary{background:var(--color-primary);color:#FFFFFF}
.btn-primary:hover{background:var(--color-primaryDark)}
.btn-secondary{background:transparent;color:var(--color-text);border-color:var(--color-border)}
.btn-secondary:hover{background:var(--color-bgHover)}
.btn-link{background:none;border:none;color:var(--color-primaryDark);font-weight:600;cursor:pointer;text-decoration:underline;padding:0}
.btn-block{width:100%}
`
}

func cssForm() string {
	return `
.signup-card{padding:1.5rem}
.signup-card h2{margin-bottom:0.25rem}
.progress{display:flex;justify-content:center;gap:0.5rem;margin:1rem 0 1.5rem}
.progress-dot{width:0.75rem;height:0.75rem;border-radius:50%;background:var(--color-border)}
.progress-dot.active{background:var(--color-primary)}
.field{margin-bottom:1rem}
.field label{display:block;font-weight:600;font-size:0.9rem;margin-bottom:0.35rem}
.input-wrap{position:relative;display:flex;align-items:center}
.input-icon{position:absolute;left:0.75rem;color:var(--color-textDim)}
.input-wrap input{width:100%;padding:0.7rem 0.75rem 0.7rem 2.5rem;border:1px solid var(--color-border);border-radius:0.5rem;background:#FFFFFF;color:var(--color-text)}
.input-wrap input:focus{outline:2px solid var(--color-primaryBright);border-color:transparent}
.field.has-error input{border-color:var(--color-danger)}
.field-error{color:var(--color-danger);font-size:0.85rem;margin-top:0.3rem}
.reveal{position:absolute;right:0.5rem;background:none;border:none;color:var(--color-textDim);cursor:pointer;font-size:0.8rem;font-weight:600;padding:0.25rem 0.5rem}
.form-actions{display:flex;gap:0.75rem}
.form-actions .btn{flex:1}
.default-action{position:absolute;left:-9999px;width:1px;height:1px;overflow:hidden}
.signin{margin-top:1.25rem;text-align:center;font-size:0.9rem}
`
}

func cssTips() string {
	return `
.tabs{display:flex;flex-wrap:wrap;gap:0.5rem;margin:1.5rem 0}
.tab{display:inline-flex;align-items:center;gap:0.4rem;padding:0.6rem 1rem;border-radius:9999px;border:1px solid var(--color-border);background:var(--color-bgAlt);cursor:pointer;font-weight:600;color:var(--color-textMuted)}
.tab[aria-selected="true"]{background:var(--color-primary);border-color:var(--color-primary);color:#FFFFFF}
.tip-list{display:grid;gap:0.75rem;padding:1.5rem}
.tip{display:flex;gap:0.75rem;align-items:flex-start}
.tip-mark{color:var(--color-primary);font-weight:800}
.why{padding:1.5rem;margin-top:1.5rem}
.why li{padding:0.25rem 0}
`
}

func cssFlash() string {
	return `
.flash{display:flex;align-items:center;justify-content:space-between;gap:1rem;padding:0.85rem 1rem;border-radius:0.5rem;margin-bottom:1rem;font-weight:600}
.flash-success{background:#D1FAE5;color:var(--color-success)}
.flash-error{background:#FEE2E2;color:var(--color-danger)}
.flash-info{background:#DBEAFE;color:var(--color-info)}
.flash button{background:none;border:none;color:inherit;cursor:pointer;font-size:1.1rem}
footer{border-top:1px solid var(--color-borderLight);padding:2rem 0;text-align:center;margin-top:2rem}
footer p{font-size:0.9rem}
.footer-links{display:flex;justify-content:center;flex-wrap:wrap;gap:0.5rem;margin:1rem 0}
`
}

func cssAnimations() string {
	return `
@keyframes fadeIn{from{opacity:0;transform:translateY(12px)}to{opacity:1;transform:translateY(0)}}
.animate-fade-in{animation:fadeIn 0.5s ease forwards}
@media(prefers-reduced-motion:reduce){*{animation-duration:0.01ms!important;transition-duration:0.01ms!important}}
`
}

func cssAccessibility() string {
	return `
.sr-only{position:absolute;width:1px;height:1px;padding:0;margin:-1px;overflow:hidden;clip:rect(0,0,0,0);white-space:nowrap;border:0}
.skip-link{position:absolute;top:-40px;left:0;background:var(--color-primaryDark);color:#FFFFFF;padding:0.5rem 1rem;z-index:1000}
.skip-link:focus{top:0}
:focus-visible{outline:2px solid var(--color-primary);outline-offset:2px}
`
}

func cssResponsive() string {
	return `
@media(min-width:640px){
.nav-links{display:flex}
.signup-card{padding:2rem}
}
@media(min-width:900px){
.grid-2{grid-template-columns:1.1fr 0.9fr}
.hero{padding:5rem 0 2rem}
.section{padding:4rem 0}
}
`
}
