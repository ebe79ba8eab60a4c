package components

import (
	"context"

	"github.com/a-h/templ"
)

// EmptyStateData describes the placeholder shown when a list has nothing to display.
type EmptyStateData struct {
	Icon    string
	Caption string
	Message string
}

// EmptyState renders the placeholder icon, caption and an optional hint.
func EmptyState(data EmptyStateData) templ.Component {
	return Func(func(ctx context.Context, w *Writer) {
		w.Raw(`<div class="flex flex-col items-center justify-center gap-3 rounded-lg border border-dashed border-slate-300 bg-white px-6 py-16 text-center" data-empty-state>`)
		w.Raw(`<div class="rounded-full bg-slate-100 p-4 text-slate-500">`)
		w.Render(ctx, Icon(data.Icon, "h-10 w-10"))
		w.Raw(`</div><p class="text-base font-semibold text-slate-700" data-empty-caption>`)
		w.Text(data.Caption)
		w.Raw(`</p>`)
		if data.Message != "" {
			w.Raw(`<p class="max-w-md text-sm text-slate-500" data-empty-message>`)
			w.Text(data.Message)
			w.Raw(`</p>`)
		}
		w.Raw(`</div>`)
	})
}

// ErrorBanner renders an inline alert for failed loads.
func ErrorBanner(message string) templ.Component {
	return Func(func(ctx context.Context, w *Writer) {
		if message == "" {
			return
		}
		w.Raw(`<div class="flex items-start gap-3 rounded-lg border border-rose-200 bg-rose-50 px-4 py-3 text-sm text-rose-700" role="alert" data-error-banner>`)
		w.Render(ctx, Icon("alert-triangle", "mt-0.5 h-4 w-4"))
		w.Raw(`<span>`)
		w.Text(message)
		w.Raw(`</span></div>`)
	})
}
