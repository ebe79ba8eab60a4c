// Package auth renders the sign-in screen.
package auth

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/layouts"
)

const pageTitle = "Masuk"

// LoginPage renders the login card. The ID token is obtained client-side from
// Firebase and posted in the id_token field.
func LoginPage(data LoginPageData) templ.Component {
	return layouts.Bare(pageTitle, components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<div class="space-y-6 rounded-xl border border-slate-200 bg-white p-8 shadow-sm">`)
		w.Raw(`<div class="space-y-1 text-center"><h1 class="text-2xl font-semibold">`)
		w.Text(layouts.AppName)
		w.Raw(`</h1><p class="text-sm text-slate-500">Masuk untuk mengelola apotek</p></div>`)
		if data.Message != "" {
			w.Raw(`<div class="rounded-md bg-sky-50 px-3 py-2 text-sm text-sky-700" role="status" data-login-message>`)
			w.Text(data.Message)
			w.Raw(`</div>`)
		}
		w.Render(ctx, components.FormError(data.Error))
		w.Raw(`<form method="post" class="space-y-4" id="login-form"`)
		w.URLAttr("action", data.LoginPath)
		w.Raw(">")
		w.Render(ctx, components.CSRFField(data.CSRFToken, middleware.CSRFFormField))
		w.Raw(`<input type="hidden" name="next"`)
		w.Attr("value", data.Next)
		w.Raw(">")
		w.Render(ctx, components.Input(components.Field{
			Name: "email", Label: "Email", Type: "email", Value: data.Email, Placeholder: "apoteker@example.com",
		}))
		w.Render(ctx, components.Input(components.Field{
			Name: "id_token", Label: "Token", Type: "password", Required: true,
			Hint: "Token ID Firebase. Pada mode pengembangan gunakan format peran:uid.",
		}))
		w.Render(ctx, components.SubmitButton("Masuk"))
		w.Raw(`</form></div>`)
	}))
}
