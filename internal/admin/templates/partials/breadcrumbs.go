// Package partials renders the console chrome shared across pages.
package partials

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/apotek-admin/internal/admin/rbac"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
)

// Breadcrumb is one entry of the trail. The last entry is the current page.
type Breadcrumb struct {
	Label string
	Href  string
}

// PageAction is the primary call to action in a page header.
type PageAction struct {
	Label      string
	Href       string
	Icon       string
	Capability rbac.Capability
}

// Header carries the title block rendered above page content.
type Header struct {
	Title       string
	Subtitle    string
	Breadcrumbs []Breadcrumb
	Action      *PageAction
}

// Breadcrumbs renders the trail as an ordered list.
func Breadcrumbs(items []Breadcrumb) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		if len(items) == 0 {
			return
		}
		w.Raw(`<nav aria-label="Breadcrumb" data-breadcrumbs><ol class="flex flex-wrap items-center gap-1 text-sm text-slate-500">`)
		for i, item := range items {
			last := i == len(items)-1
			w.Raw(`<li class="flex items-center gap-1">`)
			if i > 0 {
				w.Render(ctx, components.Icon("chevron-right", "h-3.5 w-3.5 text-slate-400"))
			}
			w.Raw("<a")
			w.URLAttr("href", item.Href)
			if last {
				w.Attr("class", "font-medium text-slate-900")
				w.Attr("aria-current", "page")
			} else {
				w.Attr("class", "hover:text-slate-900")
			}
			w.Raw(">")
			w.Text(item.Label)
			w.Raw("</a></li>")
		}
		w.Raw(`</ol></nav>`)
	})
}

// PageHeader renders breadcrumbs, title, subtitle and the action button.
// The action is hidden when the user lacks its capability.
func PageHeader(h Header) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<header class="mb-6 space-y-3" data-page-header>`)
		w.Render(ctx, Breadcrumbs(h.Breadcrumbs))
		w.Raw(`<div class="flex flex-wrap items-start justify-between gap-4"><div>`)
		w.Raw(`<h1 class="text-2xl font-semibold text-slate-900">`)
		w.Text(h.Title)
		w.Raw(`</h1>`)
		if h.Subtitle != "" {
			w.Raw(`<p class="mt-1 text-sm text-slate-500" data-page-subtitle>`)
			w.Text(h.Subtitle)
			w.Raw(`</p>`)
		}
		w.Raw(`</div>`)
		if h.Action != nil && helpers.HasCapability(ctx, h.Action.Capability) {
			w.Render(ctx, components.LinkButton(h.Action.Label, h.Action.Href, h.Action.Icon, "primary", "data-page-action", ""))
		}
		w.Raw(`</div></header>`)
	})
}
