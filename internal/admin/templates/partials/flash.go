package partials

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
)

// Flashes renders and consumes the one-shot messages queued on the session.
func Flashes() templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<div class="space-y-2" id="toasts" aria-live="polite" data-toasts>`)
		if sess, ok := middleware.SessionFromContext(ctx); ok {
			for _, flash := range sess.PopFlashes() {
				icon, class := "check-circle", "border-emerald-200 bg-emerald-50 text-emerald-800"
				if flash.Tone == "danger" || flash.Tone == "warning" {
					icon, class = "alert-triangle", "border-amber-200 bg-amber-50 text-amber-800"
				}
				w.Raw(`<div role="status"`)
				w.Attr("class", "flex items-center gap-2 rounded-md border px-4 py-3 text-sm "+class)
				w.Attr("data-toast", flash.Tone)
				w.Raw(">")
				w.Render(ctx, components.Icon(icon, "h-4 w-4"))
				w.Raw("<span>")
				w.Text(flash.Message)
				w.Raw("</span></div>")
			}
		}
		w.Raw(`</div>`)
	})
}
