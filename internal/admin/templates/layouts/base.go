// Package layouts wraps page content in the HTML document shell.
package layouts

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/navigation"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
	"finitefield.org/apotek-admin/internal/admin/templates/partials"
)

// AppName is appended to every document title.
const AppName = "Apotek Admin"

// DocumentTitle returns "<page> | Apotek Admin", or just the app name when page is empty.
func DocumentTitle(page string) string {
	page = strings.TrimSpace(page)
	if page == "" {
		return AppName
	}
	return page + " | " + AppName
}

// Base renders the signed-in console shell: sidebar, topbar, toasts and body.
func Base(title string, body templ.Component) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		writeHead(ctx, w, title)
		w.Raw(`<body class="h-full bg-slate-50 text-slate-900" hx-boost="true"`)
		w.Attr("data-section", helpers.Section(ctx))
		w.Raw(`><div class="flex min-h-full">`)
		w.Render(ctx, partials.Sidebar(navigation.BuildMenu(helpers.BasePath(ctx))))
		w.Raw(`<div class="flex min-w-0 flex-1 flex-col">`)
		w.Render(ctx, partials.Topbar())
		w.Raw(`<main class="flex-1 space-y-4 px-6 py-6" id="main-content">`)
		w.Render(ctx, partials.Flashes())
		w.Render(ctx, body)
		w.Raw(`</main></div></div></body></html>`)
	})
}

// Bare renders a centred single-card document without navigation, used by the login page.
func Bare(title string, body templ.Component) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		writeHead(ctx, w, title)
		w.Raw(`<body class="flex min-h-full items-center justify-center bg-slate-100 px-4 py-12 text-slate-900"><main class="w-full max-w-md">`)
		w.Render(ctx, body)
		w.Raw(`</main></body></html>`)
	})
}

func writeHead(ctx context.Context, w *components.Writer, title string) {
	w.Raw(`<!doctype html><html lang="id" class="h-full"><head><meta charset="utf-8">`)
	w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	w.Raw(`<meta name="csrf-token"`)
	w.Attr("content", middleware.CSRFTokenFromContext(ctx))
	w.Raw(`><title>`)
	w.Text(DocumentTitle(title))
	w.Raw(`</title><link rel="stylesheet"`)
	w.URLAttr("href", "/public/static/app.css")
	w.Raw(`><script src="https://unpkg.com/htmx.org@2.0.4" defer></script><script defer`)
	w.URLAttr("src", "/public/static/app.js")
	w.Raw(`></script></head>`)
}
