package render

import (
	"context"

	"github.com/a-h/templ"
	"github.com/iwvelando/calc-widgets/internal/widget"
)

// Form renders the calculator's inputs, prefilled from the submitted form or
// the field defaults.
func Form(info widget.Info, values widget.Form) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		action := CalculatorPath(info.Slug)
		h.raw(`<form method="post"`)
		h.attr("action", action)
		h.attr("hx-post", action)
		h.attr("hx-target", "#"+ResultPanelID)
		h.attr("hx-swap", "outerHTML")
		h.raw(">")
		for _, f := range info.Fields {
			field(h, f, values)
		}
		h.raw(`<button type="submit">Calculate</button></form>`)
	})
}

func field(h *htmlWriter, f widget.Field, values widget.Form) {
	id := "field-" + f.Name
	value := f.DefaultValue
	if values.Present(f.Name) {
		value = values.Raw(f.Name)
	}

	h.raw(`<div class="field">`)
	if f.Kind == widget.KindCheckbox {
		checked := values.BoolDefault(f.Name, f.DefaultValue == "on")
		// The hidden input makes an unchecked box submit "off" rather than
		// nothing, so it is not mistaken for an absent field.
		h.raw(`<input type="hidden"`)
		h.attr("name", f.Name)
		h.raw(` value="off"><label><input type="checkbox"`)
		h.attr("id", id)
		h.attr("name", f.Name)
		h.raw(` value="on"`)
		if checked {
			h.raw(" checked")
		}
		h.raw("> ")
		h.text(f.Label)
		h.raw("</label></div>")
		return
	}

	h.raw("<label")
	h.attr("for", id)
	h.raw(">")
	h.text(f.Label)
	if f.Unit != "" {
		h.raw(` <span class="unit">(`)
		h.text(f.Unit)
		h.raw(")</span>")
	}
	if f.Optional {
		h.raw(` <span class="optional">optional</span>`)
	}
	h.raw("</label>")

	switch f.Kind {
	case widget.KindSelect:
		h.raw("<select")
		h.attr("id", id)
		h.attr("name", f.Name)
		h.raw(">")
		for _, o := range f.Options {
			h.raw("<option")
			h.attr("value", o.Value)
			if o.Value == value {
				h.raw(" selected")
			}
			h.raw(">")
			h.text(o.Label)
			h.raw("</option>")
		}
		h.raw("</select>")
	case widget.KindList:
		h.raw("<textarea")
		h.attr("id", id)
		h.attr("name", f.Name)
		h.raw(` rows="4">`)
		h.text(values.Raw(f.Name))
		h.raw("</textarea>")
	case widget.KindDate:
		h.raw(`<input type="date"`)
		h.attr("id", id)
		h.attr("name", f.Name)
		h.attr("value", value)
		if !f.Optional {
			h.raw(" required")
		}
		h.raw(">")
	default:
		// Text rather than number inputs so grouped values like "1 250 000"
		// are accepted.
		h.raw(`<input type="text" inputmode="decimal"`)
		h.attr("id", id)
		h.attr("name", f.Name)
		h.attr("value", value)
		if f.LiveFormat {
			h.raw(` data-live-format="grouping"`)
		}
		h.raw(">")
	}
	if f.Hint != "" {
		h.raw(`<small class="hint">`)
		h.text(f.Hint)
		h.raw("</small>")
	}
	h.raw("</div>")
}
