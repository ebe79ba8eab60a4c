// Package help renders the FAQ and documentation pages.
package help

import (
	"context"

	"github.com/a-h/templ"

	adminhelp "finitefield.org/apotek-admin/internal/admin/help"
	"finitefield.org/apotek-admin/internal/admin/navigation"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
	"finitefield.org/apotek-admin/internal/admin/templates/layouts"
	"finitefield.org/apotek-admin/internal/admin/templates/partials"
)

// PageData is the payload for a help page.
type PageData struct {
	Header  partials.Header
	Slug    string
	HTML    string
	Updated string
}

// BuildPageData assembles a help page. The body HTML was sanitised when the library loaded.
func BuildPageData(basePath string, page adminhelp.Page) PageData {
	data := PageData{
		Header: partials.Header{
			Title:    page.Title,
			Subtitle: page.Summary,
			Breadcrumbs: []partials.Breadcrumb{
				{Label: "Dashboard", Href: navigation.Join(basePath, "/dashboard")},
				{Label: page.Title, Href: navigation.Join(basePath, "/"+page.Slug)},
			},
		},
		Slug: page.Slug,
		HTML: page.HTML,
	}
	if !page.UpdatedAt.IsZero() {
		data.Updated = helpers.Date(page.UpdatedAt)
	}
	return data
}

// Index renders the help page.
func Index(data PageData) templ.Component {
	return layouts.Base(data.Header.Title, components.Func(func(ctx context.Context, w *components.Writer) {
		w.Render(ctx, partials.PageHeader(data.Header))
		w.Raw(`<article class="prose max-w-3xl rounded-lg border border-slate-200 bg-white p-6"`)
		w.Attr("data-help-page", data.Slug)
		w.Raw(">")
		w.Render(ctx, templ.Raw(data.HTML))
		w.Raw(`</article>`)
		if data.Updated != "" {
			w.Raw(`<p class="text-xs text-slate-400">Terakhir diperbarui `)
			w.Text(data.Updated)
			w.Raw(`</p>`)
		}
	}))
}
