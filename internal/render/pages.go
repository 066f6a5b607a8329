// Package render builds the HTML for the index, calculator pages and result
// panels as templ components.
package render

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

const (
	// ResultPanelID is the element id htmx swaps with a new result.
	ResultPanelID = "result"
	// StylesheetPath is where the server exposes the embedded stylesheet.
	StylesheetPath = "/static/style.css"
	// LiveFormatScriptPath serves the script that groups digits in
	// data-live-format inputs while the user types.
	LiveFormatScriptPath = "/static/live-format.js"
	htmxScript           = "https://unpkg.com/htmx.org@1.9.12"
)

// Site carries the page chrome shared by every page.
type Site struct {
	Name    string
	Lang    string
	Version string
	// Decimal and Group are the locale's separators, read by the live
	// formatting script. Without Decimal the script assumes "." and ",".
	Decimal string
	Group   string
}

// Outcome is what the result panel shows. At most one of Result and Err is
// set; with neither the panel is empty.
type Outcome struct {
	Result   *widget.Result
	Err      *validation.InputError
	ShareURL string
}

// CalculatorView is everything the calculator page needs. Panel, when set,
// replaces the panel rendered from Outcome, e.g. with a cached fragment.
type CalculatorView struct {
	Site    Site
	Info    widget.Info
	Form    widget.Form
	Outcome Outcome
	Panel   templ.Component
}

// Layout wraps body in the HTML document.
func Layout(site Site, title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		lang := site.Lang
		if lang == "" {
			lang = "en"
		}
		h.raw("<!DOCTYPE html>\n<html")
		h.attr("lang", lang)
		if site.Decimal != "" {
			h.attr("data-decimal", site.Decimal)
			h.attr("data-group", site.Group)
		}
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(title)
		if site.Name != "" && title != site.Name {
			h.text(" | " + site.Name)
		}
		h.raw("</title>")
		h.raw(`<link rel="stylesheet" href="` + StylesheetPath + `">`)
		h.raw(`<script src="` + htmxScript + `" defer></script>`)
		h.raw(`<script src="` + LiveFormatScriptPath + `" defer></script>`)
		h.raw(`</head><body><header><a href="/">`)
		h.text(site.Name)
		h.raw("</a></header><main>")
		h.child(ctx, body)
		h.raw("</main>")
		if site.Version != "" {
			h.raw(`<footer>`)
			h.text("v" + strings.TrimPrefix(site.Version, "v"))
			h.raw(`</footer>`)
		}
		h.raw("</body></html>\n")
	})
}

// Index lists calculators under their category headings.
func Index(site Site, groups []widget.CategoryGroup) templ.Component {
	body := component(func(_ context.Context, h *htmlWriter) {
		h.raw("<h1>")
		h.text(site.Name)
		h.raw("</h1>")
		for _, g := range groups {
			h.raw(`<section class="category"><h2>`)
			h.text(string(g.Category))
			h.raw("</h2><ul>")
			for _, w := range g.Widgets {
				info := w.Info()
				h.raw(`<li><a`)
				h.attr("href", CalculatorPath(info.Slug))
				h.raw(">")
				h.text(info.Title)
				h.raw("</a> <span>")
				h.text(info.Description)
				h.raw("</span></li>")
			}
			h.raw("</ul></section>")
		}
	})
	return Layout(site, site.Name, body)
}

// CalculatorPath is the URL of a calculator page.
func CalculatorPath(slug string) string {
	return "/calculators/" + slug
}

// Calculator renders the full calculator page.
func Calculator(v CalculatorView) templ.Component {
	body := component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<article class="calculator"><h1>`)
		h.text(v.Info.Title)
		h.raw("</h1><p>")
		h.text(v.Info.Description)
		h.raw("</p>")
		h.child(ctx, Form(v.Info, v.Form))
		panel := v.Panel
		if panel == nil {
			panel = ResultPanel(v.Outcome)
		}
		h.child(ctx, panel)
		h.raw("</article>")
	})
	return Layout(v.Site, v.Info.Title, body)
}

// NotFound renders the unknown-calculator page.
func NotFound(site Site, slug string) templ.Component {
	body := component(func(_ context.Context, h *htmlWriter) {
		h.raw("<h1>Calculator not found</h1><p>No calculator is called ")
		h.text(slug)
		h.raw(`. <a href="/">See all calculators</a>.</p>`)
	})
	return Layout(site, "Not found", body)
}
