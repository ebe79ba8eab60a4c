package partials

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/apotek-admin/internal/admin/navigation"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
)

// Sidebar renders the navigation menu, hiding entries the user cannot open.
func Sidebar(menu []navigation.MenuGroup) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<aside class="hidden w-64 shrink-0 border-r border-slate-200 bg-white md:block" data-sidebar>`)
		w.Raw(`<div class="flex h-16 items-center gap-2 border-b border-slate-200 px-5">`)
		w.Raw(`<span class="rounded-md bg-slate-900 px-2 py-1 text-xs font-bold text-white">Rx</span>`)
		w.Raw(`<a class="text-base font-semibold text-slate-900"`)
		w.URLAttr("href", helpers.Link(ctx, "/dashboard"))
		w.Raw(`>Apotek Admin</a></div>`)
		w.Raw(`<nav class="space-y-6 px-3 py-4" aria-label="Navigasi utama">`)
		for _, group := range menu {
			if !hasVisibleItems(group, ctx) {
				continue
			}
			w.Raw(`<div`)
			w.Attr("data-nav-group", group.Key)
			w.Raw(">")
			if group.Label != "" {
				w.Raw(`<p class="px-3 pb-2 text-xs font-semibold uppercase tracking-wide text-slate-400">`)
				w.Text(group.Label)
				w.Raw(`</p>`)
			}
			w.Raw(`<ul class="space-y-1">`)
			for _, item := range visibleItems(group, ctx) {
				active := helpers.NavActive(ctx, item.Pattern, item.MatchPrefix)
				w.Raw("<li><a")
				w.URLAttr("href", item.Href)
				w.Attr("class", helpers.NavClass(active))
				w.Attr("data-nav-item", item.Key)
				if active {
					w.Attr("aria-current", "page")
				}
				w.Raw(">")
				w.Render(ctx, components.Icon(item.Icon, "h-4 w-4"))
				w.Raw("<span>")
				w.Text(item.Label)
				w.Raw("</span></a></li>")
			}
			w.Raw(`</ul></div>`)
		}
		w.Raw(`</nav></aside>`)
	})
}

func hasVisibleItems(group navigation.MenuGroup, ctx context.Context) bool {
	return len(visibleItems(group, ctx)) > 0
}

func visibleItems(group navigation.MenuGroup, ctx context.Context) []navigation.MenuItem {
	if !helpers.HasCapability(ctx, group.Capability) {
		return nil
	}
	items := make([]navigation.MenuItem, 0, len(group.Items))
	for _, item := range group.Items {
		if helpers.HasCapability(ctx, item.Capability) {
			items = append(items, item)
		}
	}
	return items
}
