package components

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
)

// SearchFormData configures the list filter form. Without JavaScript the form
// submits to Action; with htmx it swaps Target using the Fragment endpoint.
type SearchFormData struct {
	Action      string
	Fragment    string
	Target      string
	Value       string
	Placeholder string
	Filters     templ.Component
}

// SearchForm renders the search box with optional extra filter controls.
func SearchForm(data SearchFormData) templ.Component {
	return Func(func(ctx context.Context, w *Writer) {
		w.Raw(`<form method="get" class="flex flex-wrap items-center gap-2" role="search" data-search-form`)
		w.URLAttr("action", data.Action)
		w.URLAttr("hx-get", data.Fragment)
		w.Attr("hx-target", data.Target)
		w.Attr("hx-swap", "outerHTML")
		w.Attr("hx-trigger", "input changed delay:300ms from:input[name=q], change from:select, submit")
		w.Raw(`><label class="relative flex items-center"><span class="sr-only">Cari</span>`)
		w.Render(ctx, Icon("search", "pointer-events-none absolute left-2 h-4 w-4 text-slate-400"))
		w.Raw(`<input type="search" name="q" class="rounded-md border-slate-300 pl-8 text-sm"`)
		w.Attr("value", data.Value)
		w.Attr("placeholder", data.Placeholder)
		w.Raw(`></label>`)
		w.Render(ctx, data.Filters)
		w.Raw(`<button type="submit"`)
		w.Attr("class", ButtonClass("secondary"))
		w.Raw(`>Cari</button></form>`)
	})
}

// Highlighted renders text with case-insensitive matches of term wrapped in <mark>.
func Highlighted(text, term string) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		for _, seg := range helpers.HighlightSegments(text, term) {
			if seg.Match {
				w.Raw("<mark>")
				w.Text(seg.Text)
				w.Raw("</mark>")
				continue
			}
			w.Text(seg.Text)
		}
	})
}

// TableHead renders a <thead> row.
func TableHead(headers ...string) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		w.Raw(`<thead class="bg-slate-50 text-xs uppercase tracking-wide text-slate-500"><tr>`)
		for _, h := range headers {
			w.Raw(`<th scope="col">`)
			w.Text(h)
			w.Raw(`</th>`)
		}
		w.Raw(`</tr></thead>`)
	})
}
