// Package qr renders the QR code page: batch labels, the scanner and scan history.
package qr

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/rbac"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
	"finitefield.org/apotek-admin/internal/admin/templates/layouts"
	"finitefield.org/apotek-admin/internal/admin/templates/partials"
)

// Index renders the full QR page.
func Index(data PageData) templ.Component {
	return layouts.Base(data.Header.Title, components.Func(func(ctx context.Context, w *components.Writer) {
		w.Render(ctx, partials.PageHeader(data.Header))
		w.Raw(`<div class="grid gap-4 lg:grid-cols-3">`)
		if helpers.HasCapability(ctx, rbac.CapQRScan) {
			w.Raw(`<section class="rounded-lg border border-slate-200 bg-white p-4 lg:col-span-1" data-scanner>`)
			w.Raw(`<h2 class="mb-3 text-base font-semibold">Scan QR Code</h2>`)
			w.Render(ctx, Scanner(data.Scanner))
			w.Raw(`</section>`)
		}
		w.Raw(`<section class="rounded-lg border border-slate-200 bg-white p-4 lg:col-span-2" data-batches>`)
		w.Raw(`<h2 class="mb-3 text-base font-semibold">Batch Obat</h2>`)
		switch {
		case data.Error != "":
			w.Render(ctx, components.ErrorBanner(data.Error))
		case data.Empty != nil:
			w.Render(ctx, components.EmptyState(*data.Empty))
		default:
			writeBatches(ctx, w, data.Batches)
		}
		w.Raw(`</section></div>`)
		w.Raw(`<section class="rounded-lg border border-slate-200 bg-white p-4" data-scan-history>`)
		w.Raw(`<h2 class="mb-3 text-base font-semibold">Riwayat Scan</h2>`)
		w.Raw(`<form method="get" class="mb-3" hx-trigger="change, qr:scanned from:body" hx-swap="outerHTML"`)
		w.URLAttr("hx-get", data.Logs.Endpoint)
		w.Attr("hx-target", "#"+data.Logs.ID)
		w.Raw(">")
		w.Render(ctx, components.FilterSelect("hasil", "Hasil scan", data.Logs.ResultOptions))
		w.Raw(`</form>`)
		w.Render(ctx, LogTable(data.Logs))
		w.Raw(`</section>`)
	}))
}

func writeBatches(ctx context.Context, w *components.Writer, rows []BatchRow) {
	w.Raw(`<table>`)
	w.Render(ctx, components.TableHead("QR", "Kode", "Obat", "No. Batch", "Kadaluarsa", "Stok", "Status"))
	w.Raw(`<tbody>`)
	for _, row := range rows {
		w.Raw("<tr")
		w.Attr("data-batch-code", row.Code)
		w.Raw("><td><a target=\"_blank\" rel=\"noopener\"")
		w.URLAttr("href", row.ImageURL)
		w.Raw("><img width=\"48\" height=\"48\" loading=\"lazy\"")
		w.URLAttr("src", row.ImageURL)
		w.Attr("alt", "QR "+row.Number)
		w.Raw("></a></td><td class=\"font-mono text-xs\">")
		w.Text(row.Code)
		w.Raw("</td><td>")
		w.Text(row.MedicineName)
		w.Raw("</td><td>")
		w.Text(row.Number)
		w.Raw("</td><td>")
		w.Text(row.ExpiresOn)
		w.Raw("</td><td>")
		w.Text(row.Stock)
		w.Raw("</td><td>")
		w.Render(ctx, components.Badge(row.StatusLabel, helpers.BadgeClass(row.StatusTone)))
		w.Raw("</td></tr>")
	}
	w.Raw(`</tbody></table>`)
}

// Scanner renders the scan form together with the last result.
func Scanner(data ScannerData) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<form method="post" id="qr-scan-form" class="space-y-3" hx-target="this" hx-swap="outerHTML"`)
		w.URLAttr("action", data.ScanPath)
		w.URLAttr("hx-post", data.ScanPath)
		w.Raw(">")
		w.Render(ctx, components.CSRFField(data.CSRFToken, middleware.CSRFFormField))
		w.Render(ctx, components.Input(components.Field{
			Name: "kode_qr", Label: "Kode QR", Value: data.Code, Required: true, MaxLength: 255,
			Placeholder: "BATCH-...", Error: data.FieldError,
		}))
		w.Render(ctx, components.Select(components.Field{Name: "metode", Label: "Metode"}, data.MethodOptions))
		w.Raw(`<button type="submit"`)
		w.Attr("class", components.ButtonClass("primary"))
		w.Raw(">")
		w.Render(ctx, components.Icon("scan-line", "h-4 w-4"))
		w.Raw(`<span>Scan</span></button>`)
		w.Render(ctx, Result(data.Result))
		w.Raw(`</form>`)
	})
}

// Result renders the outcome panel of the last scan.
func Result(data *ResultData) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<div`)
		w.Attr("id", resultID)
		w.Raw(">")
		if data != nil {
			w.Raw(`<div class="space-y-1 rounded-md border border-slate-200 p-3 text-sm" role="status"`)
			w.Attr("data-scan-result", data.Result)
			w.Raw(">")
			w.Render(ctx, components.Badge(data.Message, helpers.BadgeClass(data.Tone)))
			w.Raw(`<p class="font-mono text-xs text-slate-500">`)
			w.Text(data.Code)
			w.Raw(`</p>`)
			if data.BatchNumber != "" {
				w.Raw(`<dl class="grid grid-cols-2 gap-1"><dt>Obat</dt><dd>`)
				w.Text(data.MedicineName)
				w.Raw(`</dd><dt>No. Batch</dt><dd>`)
				w.Text(data.BatchNumber)
				w.Raw(`</dd><dt>Kadaluarsa</dt><dd>`)
				w.Text(data.ExpiresOn)
				w.Raw(`</dd><dt>Stok</dt><dd>`)
				w.Text(data.Stock)
				w.Raw(`</dd></dl>`)
			}
			w.Raw(`</div>`)
		}
		w.Raw(`</div>`)
	})
}

// LogTable renders the swappable scan history fragment.
func LogTable(data LogTableData) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw("<div")
		w.Attr("id", data.ID)
		w.Raw(` data-table>`)
		switch {
		case data.Error != "":
			w.Render(ctx, components.ErrorBanner(data.Error))
		case data.EmptyMessage != "":
			w.Raw(`<p class="py-6 text-center text-sm text-slate-500" data-logs-empty>`)
			w.Text(data.EmptyMessage)
			w.Raw(`</p>`)
		default:
			w.Raw(`<table>`)
			w.Render(ctx, components.TableHead("Waktu", "Kode", "Metode", "Hasil", "Obat", "Petugas"))
			w.Raw(`<tbody>`)
			for _, row := range data.Rows {
				w.Raw("<tr><td>")
				w.Text(row.ScannedAt)
				w.Raw("</td><td class=\"font-mono text-xs\">")
				w.Text(row.Code)
				w.Raw("</td><td>")
				w.Text(row.Method)
				w.Raw("</td><td>")
				w.Render(ctx, components.Badge(row.ResultLabel, helpers.BadgeClass(row.ResultTone)))
				w.Raw("</td><td>")
				if row.MedicineName != "" {
					w.Text(row.MedicineName + " (" + row.BatchNumber + ")")
				} else {
					w.Text(row.Message)
				}
				w.Raw("</td><td>")
				w.Text(row.ScannedBy)
				w.Raw("</td></tr>")
			}
			w.Raw(`</tbody></table>`)
		}
		w.Raw(`</div>`)
	})
}
