package partials

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
)

// TopbarActions renders the environment badge and the signed-in user menu.
func TopbarActions() templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		env := middleware.DeploymentFromContext(ctx)
		w.Raw(`<div class="flex items-center gap-4">`)
		w.Raw(`<span data-environment-badge`)
		w.Attr("class", environmentBadgeClass(env.Tone()))
		w.Attr("data-tone", env.Tone())
		w.Attr("title", env.Name)
		w.Raw(`><span aria-hidden="true">`)
		w.Text(env.Code)
		w.Raw(`</span><span class="sr-only">`)
		w.Text(env.Name)
		w.Raw(`</span></span>`)

		if user, ok := middleware.UserFromContext(ctx); ok {
			name := firstNonEmpty(user.Name, user.Email, user.UID)
			w.Raw(`<div class="flex items-center gap-3" data-user-menu><div class="text-right">`)
			w.Raw(`<p class="truncate text-sm font-medium text-slate-900">`)
			w.Text(name)
			w.Raw(`</p>`)
			if role := helpers.RoleLabel(ctx); role != "" {
				w.Raw(`<p class="text-xs text-slate-500" data-user-role>`)
				w.Text(role)
				w.Raw(`</p>`)
			}
			w.Raw(`</div><form method="post" data-user-menu-logout`)
			w.URLAttr("action", helpers.Link(ctx, "/logout"))
			w.Raw(">")
			w.Render(ctx, components.CSRFField(middleware.CSRFTokenFromContext(ctx), middleware.CSRFFormField))
			w.Raw(`<button type="submit" class="inline-flex items-center gap-1 rounded-md px-2 py-1 text-sm text-slate-600 hover:bg-slate-100" title="Keluar">`)
			w.Render(ctx, components.Icon("log-out", "h-4 w-4"))
			w.Raw(`<span class="sr-only">Keluar</span></button></form></div>`)
		}
		w.Raw(`</div>`)
	})
}

// Topbar renders the header bar above page content.
func Topbar() templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<header class="flex h-16 items-center justify-end border-b border-slate-200 bg-white px-6" data-topbar>`)
		w.Render(ctx, TopbarActions())
		w.Raw(`</header>`)
	})
}

func environmentBadgeClass(tone string) string {
	const base = "inline-flex items-center gap-1 rounded-full border px-2 py-0.5 text-xs font-semibold "
	switch tone {
	case "danger":
		return base + "border-red-200 bg-red-50 text-red-700"
	case "warning":
		return base + "border-amber-200 bg-amber-50 text-amber-700"
	default:
		return base + "border-slate-200 text-slate-600"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
