// Package dashboard renders the landing page with headline counts.
package dashboard

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
	"finitefield.org/apotek-admin/internal/admin/templates/layouts"
	"finitefield.org/apotek-admin/internal/admin/templates/partials"
)

// Index renders the dashboard page.
func Index(data PageData) templ.Component {
	return layouts.Base(data.Header.Title, components.Func(func(ctx context.Context, w *components.Writer) {
		w.Render(ctx, partials.PageHeader(data.Header))
		if data.Error != "" {
			w.Render(ctx, components.ErrorBanner(data.Error))
			return
		}

		w.Raw(`<section class="grid gap-4 sm:grid-cols-2 xl:grid-cols-4" data-kpis>`)
		for _, kpi := range data.KPIs {
			if !helpers.HasCapability(ctx, kpi.Capability) {
				continue
			}
			writeKPI(ctx, w, kpi)
		}
		w.Raw(`</section>`)

		if len(data.Alerts) > 0 {
			w.Raw(`<section class="space-y-2" data-alerts>`)
			for _, alert := range data.Alerts {
				w.Raw(`<a class="flex items-center gap-2 rounded-lg border px-4 py-3 text-sm"`)
				w.URLAttr("href", alert.Href)
				w.Attr("data-alert", alert.ID)
				w.Raw(">")
				w.Render(ctx, components.Icon("alert-triangle", "h-4 w-4"))
				w.Render(ctx, components.Badge(alert.Message, helpers.BadgeClass(alert.Tone)))
				w.Raw(`</a>`)
			}
			w.Raw(`</section>`)
		}

		w.Raw(`<section class="rounded-lg border border-slate-200 bg-white p-4" data-activity>`)
		w.Raw(`<h2 class="mb-3 text-base font-semibold">Scan Terakhir</h2>`)
		if len(data.Activity) == 0 {
			w.Raw(`<p class="text-sm text-slate-500">Belum ada scan hari ini.</p>`)
		} else {
			w.Raw(`<ul class="divide-y divide-slate-100">`)
			for _, item := range data.Activity {
				w.Raw(`<li class="flex items-center justify-between gap-3 py-2"`)
				w.Attr("data-activity-code", item.Code)
				w.Raw(`><div><p class="text-sm font-medium">`)
				w.Text(item.Title)
				w.Raw(`</p><p class="text-xs text-slate-500">`)
				w.Text(item.Detail)
				w.Raw(`</p></div><div class="flex items-center gap-2">`)
				w.Render(ctx, components.Badge(item.ResultLabel, helpers.BadgeClass(item.ResultTone)))
				w.Raw(`<span class="text-xs text-slate-400">`)
				w.Text(item.Occurred)
				w.Raw(`</span></div></li>`)
			}
			w.Raw(`</ul>`)
		}
		w.Raw(`</section>`)

		if data.Updated != "" {
			w.Raw(`<p class="text-xs text-slate-400">Diperbarui `)
			w.Text(data.Updated)
			w.Raw(`</p>`)
		}
	}))
}

func writeKPI(ctx context.Context, w *components.Writer, kpi KPIView) {
	w.Raw(`<a class="flex items-center gap-4 rounded-lg border border-slate-200 bg-white p-4 hover:border-slate-300"`)
	w.URLAttr("href", kpi.Href)
	w.Attr("data-kpi", kpi.ID)
	w.Raw(`><div class="rounded-md bg-slate-100 p-3 text-slate-600">`)
	w.Render(ctx, components.Icon(kpi.Icon, "h-6 w-6"))
	w.Raw(`</div><div><p class="text-sm text-slate-500">`)
	w.Text(kpi.Label)
	w.Raw(`</p><p class="text-2xl font-semibold" data-kpi-value>`)
	w.Text(kpi.Value)
	w.Raw(`</p>`)
	if kpi.Hint != "" {
		w.Raw(`<p class="text-xs text-slate-400">`)
		w.Text(kpi.Hint)
		w.Raw(`</p>`)
	}
	w.Raw(`</div></a>`)
}
