// Package resep renders the prescription pages.
package resep

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/navigation"
	"finitefield.org/apotek-admin/internal/admin/rbac"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
	"finitefield.org/apotek-admin/internal/admin/templates/layouts"
	"finitefield.org/apotek-admin/internal/admin/templates/partials"
)

// Index renders the full list page.
func Index(data PageData) templ.Component {
	return layouts.Base(data.Header.Title, components.Func(func(ctx context.Context, w *components.Writer) {
		w.Render(ctx, partials.PageHeader(data.Header))
		w.Raw(`<section class="space-y-4 rounded-lg border border-slate-200 bg-white p-4">`)
		w.Render(ctx, components.SearchForm(components.SearchFormData{
			Action:      data.ListPath,
			Fragment:    data.TableEndpoint,
			Target:      "#" + data.Table.ID,
			Value:       data.Query.Search,
			Placeholder: "Cari nomor resep, RM, pasien, dokter",
			Filters:     components.FilterSelect("status", "Status", data.StatusOptions),
		}))
		w.Render(ctx, Table(data.Table))
		w.Raw(`</section>`)
	}))
}

// Table renders the swappable table fragment.
func Table(data TableData) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw("<div")
		w.Attr("id", data.ID)
		w.Raw(` data-table>`)
		switch {
		case data.Error != "":
			w.Render(ctx, components.ErrorBanner(data.Error))
		case data.Empty != nil:
			w.Render(ctx, components.EmptyState(*data.Empty))
		default:
			w.Raw(`<p class="pb-2 text-xs text-slate-500" data-total>`)
			w.Text(data.Total + " resep")
			w.Raw(`</p><table>`)
			base := middleware.BasePathFromContext(ctx)
			w.Render(ctx, components.TableHead("No. Resep", "Tanggal", "Pasien", "Dokter", "Jenis", "Bayar", "Status"))
			w.Raw(`<tbody>`)
			for _, row := range data.Rows {
				w.Raw("<tr")
				w.Attr("data-row-id", row.ID)
				w.Raw("><td class=\"font-mono text-xs\"><a class=\"hover:underline\" data-action=\"show\"")
				w.URLAttr("href", navigation.Join(base, "/resep/"+row.ID))
				w.Raw(">")
				w.Render(ctx, components.Highlighted(row.Number, data.Search))
				w.Raw("</a></td><td>")
				w.Text(row.Date)
				w.Raw("</td><td><p class=\"font-medium\">")
				w.Render(ctx, components.Highlighted(row.PatientName, data.Search))
				w.Raw("</p><p class=\"text-xs text-slate-500\">")
				w.Render(ctx, components.Highlighted(row.MedicalRecordNo, data.Search))
				w.Raw("</p></td><td>")
				w.Render(ctx, components.Highlighted(row.DoctorName, data.Search))
				w.Raw("</td><td>")
				w.Text(row.PatientType)
				w.Raw("</td><td>")
				w.Text(row.Payment)
				w.Raw("</td><td>")
				w.Render(ctx, components.Badge(row.StatusLabel, helpers.BadgeClass(row.StatusTone)))
				w.Raw("</td></tr>")
			}
			w.Raw(`</tbody></table>`)
		}
		w.Raw(`</div>`)
	})
}

// Show renders the prescription detail page. Workflow actions need the manage capability.
func Show(data ShowPageData) templ.Component {
	return layouts.Base(data.Header.Title, components.Func(func(ctx context.Context, w *components.Writer) {
		w.Render(ctx, partials.PageHeader(data.Header))
		w.Raw(`<section class="max-w-3xl space-y-4 rounded-lg border border-slate-200 bg-white p-6" data-resep-detail>`)
		w.Raw(`<div class="flex items-center justify-between"><h2 class="text-sm font-semibold text-slate-700">Status</h2><span data-status>`)
		w.Render(ctx, components.Badge(data.StatusLabel, helpers.BadgeClass(data.StatusTone)))
		w.Raw(`</span></div><dl class="grid gap-3 md:grid-cols-2">`)
		for _, d := range data.Details {
			w.Raw(`<div data-detail`)
			w.Attr("data-label", d.Label)
			w.Raw(`><dt class="text-xs text-slate-500">`)
			w.Text(d.Label)
			w.Raw(`</dt><dd class="text-sm text-slate-900">`)
			w.Text(d.Value)
			w.Raw(`</dd></div>`)
		}
		w.Raw(`</dl><div class="flex items-center gap-3 border-t border-slate-100 pt-4" data-resep-actions>`)
		if helpers.HasCapability(ctx, rbac.CapResepManage) {
			token := middleware.CSRFTokenFromContext(ctx)
			for _, a := range data.Actions {
				w.Raw("<span")
				w.Attr("data-action", string(a.Action))
				w.Raw(">")
				w.Render(ctx, components.ActionForm(components.ActionFormData{
					Action:    a.Path,
					Label:     a.Label,
					Confirm:   a.Confirm,
					Variant:   a.Variant,
					CSRFField: middleware.CSRFFormField,
					CSRFToken: token,
				}))
				w.Raw("</span>")
			}
		}
		w.Render(ctx, components.LinkButton("Kembali", data.BackPath, "", "secondary"))
		w.Raw(`</div></section>`)
	}))
}

// Create renders the full create page.
func Create(data CreatePageData) templ.Component {
	return layouts.Base(data.Header.Title, components.Func(func(ctx context.Context, w *components.Writer) {
		w.Render(ctx, partials.PageHeader(data.Header))
		w.Render(ctx, Form(data))
	}))
}

// Form renders the create form.
func Form(data CreatePageData) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		f := data.Form
		w.Raw(`<form method="post" id="resep-form" class="max-w-3xl space-y-4 rounded-lg border border-slate-200 bg-white p-6" hx-target="this" hx-swap="outerHTML"`)
		w.URLAttr("action", data.SubmitPath)
		w.URLAttr("hx-post", data.SubmitPath)
		w.Raw(">")
		w.Render(ctx, components.CSRFField(data.CSRFToken, middleware.CSRFFormField))
		w.Render(ctx, components.FormError(f.Error))
		w.Raw(`<div class="grid gap-4 md:grid-cols-2">`)
		w.Render(ctx, components.Input(components.Field{Name: "nomor_resep", Label: "Nomor Resep", Value: f.Number, MaxLength: 50, Hint: "Kosongkan untuk nomor otomatis.", Error: f.Errors["nomor_resep"]}))
		w.Render(ctx, components.Input(components.Field{Name: "tanggal_resep", Label: "Tanggal Resep", Type: "date", Value: f.Date, Required: true, Error: f.Errors["tanggal_resep"]}))
		w.Render(ctx, components.Input(components.Field{Name: "nomor_rm", Label: "Nomor RM", Value: f.MedicalRecordNo, Required: true, MaxLength: 50, Error: f.Errors["nomor_rm"]}))
		w.Render(ctx, components.Input(components.Field{Name: "nama_pasien", Label: "Nama Pasien", Value: f.PatientName, Required: true, MaxLength: 200, Error: f.Errors["nama_pasien"]}))
		w.Render(ctx, components.Input(components.Field{Name: "nama_dokter", Label: "Nama Dokter", Value: f.DoctorName, Required: true, MaxLength: 200, Error: f.Errors["nama_dokter"]}))
		w.Render(ctx, components.Select(components.Field{Name: "jenis_pasien", Label: "Jenis Pasien", Error: f.Errors["jenis_pasien"]}, data.PatientTypeOptions))
		w.Render(ctx, components.Select(components.Field{Name: "cara_bayar", Label: "Cara Bayar", Error: f.Errors["cara_bayar"]}, data.PaymentOptions))
		w.Raw(`</div>`)
		w.Render(ctx, components.TextArea(components.Field{Name: "catatan", Label: "Catatan", Value: f.Notes, Error: f.Errors["catatan"]}))
		w.Raw(`<div class="flex items-center gap-2">`)
		w.Render(ctx, components.SubmitButton("Simpan"))
		w.Render(ctx, components.LinkButton("Batal", data.CancelPath, "", "secondary"))
		w.Raw(`</div></form>`)
	})
}
