package components

import (
	"context"

	"github.com/a-h/templ"
)

const (
	primaryButtonClass   = "inline-flex items-center gap-2 rounded-md bg-slate-900 px-4 py-2 text-sm font-medium text-white shadow-sm hover:bg-slate-700 focus:outline-none focus:ring-2 focus:ring-slate-500 focus:ring-offset-2"
	secondaryButtonClass = "inline-flex items-center gap-2 rounded-md border border-slate-300 bg-white px-4 py-2 text-sm font-medium text-slate-700 shadow-sm hover:bg-slate-50"
)

// ButtonClass returns the utility classes for a button variant ("primary" or "secondary").
func ButtonClass(variant string) string {
	if variant == "secondary" {
		return secondaryButtonClass
	}
	return primaryButtonClass
}

// LinkButton renders an anchor styled as a button with an optional leading icon.
// Extra attributes are written in order as name/value pairs.
func LinkButton(label, href, icon, variant string, attrs ...string) templ.Component {
	return Func(func(ctx context.Context, w *Writer) {
		w.Raw("<a")
		w.URLAttr("href", href)
		w.Attr("class", ButtonClass(variant))
		for i := 0; i+1 < len(attrs); i += 2 {
			w.Attr(attrs[i], attrs[i+1])
		}
		w.Raw(">")
		if icon != "" {
			w.Render(ctx, Icon(icon, "h-4 w-4"))
		}
		w.Raw("<span>")
		w.Text(label)
		w.Raw("</span></a>")
	})
}

// SubmitButton renders a primary submit button.
func SubmitButton(label string) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		w.Raw(`<button type="submit"`)
		w.Attr("class", primaryButtonClass)
		w.Raw(">")
		w.Text(label)
		w.Raw("</button>")
	})
}

// Badge renders a status pill using the class for tone.
func Badge(label, class string) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		w.Raw("<span")
		w.Attr("class", class)
		w.Raw(">")
		w.Text(label)
		w.Raw("</span>")
	})
}

// ActionFormData describes a single-button POST form used for row actions.
type ActionFormData struct {
	Action    string
	Label     string
	Confirm   string
	Variant   string
	CSRFField string
	CSRFToken string
}

// ActionForm renders data as an inline form. htmx submits it with hx-post and
// asks for confirmation first when Confirm is set.
func ActionForm(data ActionFormData) templ.Component {
	return Func(func(ctx context.Context, w *Writer) {
		w.Raw(`<form method="post" class="inline"`)
		w.URLAttr("action", data.Action)
		w.URLAttr("hx-post", data.Action)
		if data.Confirm != "" {
			w.Attr("hx-confirm", data.Confirm)
		}
		w.Raw(">")
		w.Render(ctx, CSRFField(data.CSRFToken, data.CSRFField))
		w.Raw(`<button type="submit"`)
		w.Attr("class", actionButtonClass(data.Variant))
		w.Raw(">")
		w.Text(data.Label)
		w.Raw("</button></form>")
	})
}

func actionButtonClass(variant string) string {
	switch variant {
	case "danger":
		return "text-sm font-medium text-red-600 hover:text-red-800"
	case "primary":
		return "text-sm font-medium text-slate-900 hover:underline"
	default:
		return "text-sm font-medium text-slate-600 hover:text-slate-900"
	}
}
