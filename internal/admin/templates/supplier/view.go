// Package supplier renders the supplier pages.
package supplier

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
			Placeholder: "Cari kode, nama, kontak",
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
			w.Text(data.Total + " supplier")
			w.Raw(`</p><table>`)
			canManage := helpers.HasCapability(ctx, rbac.CapSupplierManage)
			headings := []string{"Kode", "Nama", "Kontak", "Telepon", "Email", "Status"}
			if canManage {
				headings = append(headings, "Aksi")
			}
			w.Render(ctx, components.TableHead(headings...))
			w.Raw(`<tbody>`)
			for _, row := range data.Rows {
				w.Raw("<tr")
				w.Attr("data-row-id", row.ID)
				w.Raw("><td class=\"font-mono text-xs\">")
				w.Render(ctx, components.Highlighted(row.Code, data.Search))
				w.Raw("</td><td><p class=\"font-medium\">")
				w.Render(ctx, components.Highlighted(row.Name, data.Search))
				w.Raw("</p><p class=\"text-xs text-slate-500\">")
				w.Render(ctx, components.Highlighted(row.Address, data.Search))
				w.Raw("</p></td><td>")
				w.Render(ctx, components.Highlighted(row.ContactPerson, data.Search))
				w.Raw("</td><td>")
				w.Render(ctx, components.Highlighted(row.Phone, data.Search))
				w.Raw("</td><td>")
				w.Render(ctx, components.Highlighted(row.Email, data.Search))
				w.Raw("</td><td>")
				w.Render(ctx, components.Badge(row.StatusLabel, helpers.BadgeClass(row.StatusTone)))
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
	token := middleware.CSRFTokenFromContext(ctx)
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<div class="flex items-center gap-3">`)
		w.Raw(`<a class="text-sm font-medium text-slate-900 hover:underline" data-action="edit"`)
		w.URLAttr("href", navigation.Join(base, "/supplier/"+row.ID+"/edit"))
		w.Raw(">Ubah</a>")
		w.Raw(`<span data-action="toggle">`)
		w.Render(ctx, components.ActionForm(components.ActionFormData{
			Action:    navigation.Join(base, "/supplier/"+row.ID+"/toggle-status"),
			Label:     row.ToggleLabel,
			CSRFField: middleware.CSRFFormField,
			CSRFToken: token,
		}))
		w.Raw(`</span><span data-action="delete">`)
		w.Render(ctx, components.ActionForm(components.ActionFormData{
			Action:    navigation.Join(base, "/supplier/"+row.ID+"/delete"),
			Label:     "Hapus",
			Confirm:   "Hapus supplier " + row.Name + "?",
			Variant:   "danger",
			CSRFField: middleware.CSRFFormField,
			CSRFToken: token,
		}))
		w.Raw("</span></div>")
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

// Form renders the create or edit form.
func Form(data FormPageData) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		f := data.Form
		w.Raw(`<form method="post" id="supplier-form" class="max-w-3xl space-y-4 rounded-lg border border-slate-200 bg-white p-6" hx-target="this" hx-swap="outerHTML"`)
		w.URLAttr("action", data.SubmitPath)
		w.URLAttr("hx-post", data.SubmitPath)
		w.Raw(">")
		w.Render(ctx, components.CSRFField(data.CSRFToken, middleware.CSRFFormField))
		w.Render(ctx, components.FormError(f.Error))
		w.Raw(`<div class="grid gap-4 md:grid-cols-2">`)
		w.Render(ctx, components.Input(components.Field{Name: "kode", Label: "Kode Supplier", Value: f.Code, Required: true, MaxLength: 50, Placeholder: "SUP-001", Error: f.Errors["kode"]}))
		w.Render(ctx, components.Input(components.Field{Name: "nama", Label: "Nama Supplier", Value: f.Name, Required: true, MaxLength: 200, Error: f.Errors["nama"]}))
		w.Render(ctx, components.Input(components.Field{Name: "no_telepon", Label: "No. Telepon", Type: "tel", Value: f.Phone, MaxLength: 20, Error: f.Errors["no_telepon"]}))
		w.Render(ctx, components.Input(components.Field{Name: "email", Label: "Email", Type: "email", Value: f.Email, MaxLength: 100, Error: f.Errors["email"]}))
		w.Render(ctx, components.Input(components.Field{Name: "kontak_person", Label: "Kontak Person", Value: f.ContactPerson, MaxLength: 100, Error: f.Errors["kontak_person"]}))
		w.Render(ctx, components.Input(components.Field{Name: "no_hp_kontak", Label: "No. HP Kontak", Type: "tel", Value: f.ContactPhone, MaxLength: 20, Error: f.Errors["no_hp_kontak"]}))
		w.Render(ctx, components.Input(components.Field{Name: "npwp", Label: "NPWP", Value: f.NPWP, MaxLength: 30, Error: f.Errors["npwp"]}))
		w.Render(ctx, components.Select(components.Field{Name: "status", Label: "Status", Error: f.Errors["status"]}, data.StatusOptions))
		w.Raw(`</div>`)
		w.Render(ctx, components.TextArea(components.Field{Name: "alamat", Label: "Alamat", Value: f.Address, Error: f.Errors["alamat"]}))
		w.Render(ctx, components.TextArea(components.Field{Name: "catatan", Label: "Catatan", Value: f.Notes, Hint: "Format HTML akan dihapus.", Error: f.Errors["catatan"]}))
		w.Raw(`<div class="flex items-center gap-2">`)
		w.Render(ctx, components.SubmitButton("Simpan"))
		w.Render(ctx, components.LinkButton("Batal", data.CancelPath, "", "secondary"))
		w.Raw(`</div></form>`)
	})
}
