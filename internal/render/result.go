package render

import (
	"context"

	"github.com/a-h/templ"
)

// ResultPanel renders the outcome of an evaluation. The success and error
// classes never appear together.
func ResultPanel(o Outcome) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		switch {
		case o.Err != nil:
			h.raw(`<div id="` + ResultPanelID + `" class="result error" role="alert"><p>`)
			h.text(o.Err.Message)
			h.raw("</p></div>")
		case o.Result != nil:
			h.raw(`<div id="` + ResultPanelID + `" class="result success">`)
			successBody(h, o)
			h.raw("</div>")
		default:
			h.raw(`<div id="` + ResultPanelID + `"></div>`)
		}
	})
}

func successBody(h *htmlWriter, o Outcome) {
	r := o.Result
	if r.Headline != "" {
		h.raw("<h2>")
		h.text(r.Headline)
		h.raw("</h2>")
	}
	if len(r.Rows) > 0 {
		h.raw("<dl>")
		for _, row := range r.Rows {
			if row.Emphasis {
				h.raw(`<div class="row emphasis">`)
			} else {
				h.raw(`<div class="row">`)
			}
			h.raw("<dt>")
			h.text(row.Label)
			h.raw("</dt><dd>")
			h.text(row.Value)
			h.raw("</dd></div>")
		}
		h.raw("</dl>")
	}
	for _, t := range r.Tables {
		h.raw("<table>")
		if t.Caption != "" {
			h.raw("<caption>")
			h.text(t.Caption)
			h.raw("</caption>")
		}
		if len(t.Header) > 0 {
			h.raw("<thead><tr>")
			for _, c := range t.Header {
				h.raw("<th>")
				h.text(c)
				h.raw("</th>")
			}
			h.raw("</tr></thead>")
		}
		h.raw("<tbody>")
		for _, row := range t.Rows {
			h.raw("<tr>")
			for _, c := range row {
				h.raw("<td>")
				h.text(c)
				h.raw("</td>")
			}
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
	}
	for _, n := range r.Notes {
		h.raw(`<p class="note">`)
		h.text(n)
		h.raw("</p>")
	}
	if o.ShareURL != "" {
		h.raw(`<a class="share whatsapp" target="_blank" rel="noopener"`)
		h.attr("href", o.ShareURL)
		h.raw(">Share on WhatsApp</a>")
	}
}
