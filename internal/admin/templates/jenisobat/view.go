// Package jenisobat renders the medicine type pages.
package jenisobat

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
			Placeholder: "Cari nama atau deskripsi",
			Filters:     components.Checkbox("aktif", "Hanya aktif", data.Query.ActiveOnly),
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
			w.Text(data.Total + " jenis obat")
			w.Raw(`</p><table>`)
			canManage := helpers.HasCapability(ctx, rbac.CapJenisObatManage)
			headings := []string{"Nama", "Deskripsi", "Status", "Dibuat"}
			if canManage {
				headings = append(headings, "Aksi")
			}
			w.Render(ctx, components.TableHead(headings...))
			w.Raw(`<tbody>`)
			for _, row := range data.Rows {
				w.Raw("<tr")
				w.Attr("data-row-id", row.ID)
				w.Raw("><td class=\"font-medium\">")
				w.Render(ctx, components.Highlighted(row.Name, data.Search))
				w.Raw("</td><td>")
				w.Render(ctx, components.Highlighted(row.Description, data.Search))
				w.Raw("</td><td>")
				w.Render(ctx, components.Badge(row.StatusLabel, helpers.BadgeClass(row.StatusTone)))
				w.Raw("</td><td>")
				w.Text(row.CreatedAt)
				w.Raw("</td>")
				if canManage {
					w.Raw(`<td class="whitespace-nowrap" data-row-actions>`)
					w.Render(ctx, rowActions(ctx, row))
					w.Raw("</td>")
				}
				w.Raw("</tr>")
			}
			w.Raw(`</tbody></table>`)
		}
		w.Raw(`</div>`)
	})
}

func rowActions(ctx context.Context, row TableRow) templ.Component {
	base := middleware.BasePathFromContext(ctx)
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<div class="flex items-center gap-3">`)
		w.Raw(`<a class="text-sm font-medium text-slate-900 hover:underline" data-action="edit"`)
		w.URLAttr("href", navigation.Join(base, "/jenis-obat/"+row.ID+"/edit"))
		w.Raw(">Ubah</a>")
		w.Render(ctx, components.ActionForm(components.ActionFormData{
			Action:    navigation.Join(base, "/jenis-obat/"+row.ID+"/delete"),
			Label:     "Hapus",
			Confirm:   "Hapus jenis obat " + row.Name + "?",
			Variant:   "danger",
			CSRFField: middleware.CSRFFormField,
			CSRFToken: middleware.CSRFTokenFromContext(ctx),
		}))
		w.Raw("</div>")
	})
}

// Create renders the full create page.
func Create(data FormPageData) templ.Component {
	return layouts.Base(data.Header.Title, components.Func(func(ctx context.Context, w *components.Writer) {
		w.Render(ctx, partials.PageHeader(data.Header))
		w.Render(ctx, Form(data))
	}))
}

// Edit renders the full edit page.
func Edit(data FormPageData) templ.Component {
	return Create(data)
}

// Form renders the create or edit form. htmx submissions swap the form in place on validation errors.
func Form(data FormPageData) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		f := data.Form
		w.Raw(`<form method="post" id="jenis-obat-form" class="max-w-xl space-y-4 rounded-lg border border-slate-200 bg-white p-6" hx-target="this" hx-swap="outerHTML"`)
		w.URLAttr("action", data.SubmitPath)
		w.URLAttr("hx-post", data.SubmitPath)
		w.Raw(">")
		w.Render(ctx, components.CSRFField(data.CSRFToken, middleware.CSRFFormField))
		w.Render(ctx, components.FormError(f.Error))
		w.Render(ctx, components.Input(components.Field{
			Name: "nama", Label: "Nama Jenis", Value: f.Name, Required: true, MaxLength: 100,
			Placeholder: "Contoh: Tablet", Error: f.Errors["nama"],
		}))
		w.Render(ctx, components.TextArea(components.Field{
			Name: "deskripsi", Label: "Deskripsi", Value: f.Description, MaxLength: 500, Error: f.Errors["deskripsi"],
		}))
		w.Render(ctx, components.Checkbox("aktif", "Aktif", f.Active))
		w.Raw(`<div class="flex items-center gap-2">`)
		w.Render(ctx, components.SubmitButton("Simpan"))
		w.Render(ctx, components.LinkButton("Batal", data.CancelPath, "", "secondary"))
		w.Raw(`</div></form>`)
	})
}
