package dashboard

import (
	"time"

	admindashboard "finitefield.org/apotek-admin/internal/admin/dashboard"
	"finitefield.org/apotek-admin/internal/admin/navigation"
	"finitefield.org/apotek-admin/internal/admin/rbac"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
	"finitefield.org/apotek-admin/internal/admin/templates/partials"
)

const pageTitle = "Dashboard"

// PageData represents the full dashboard SSR payload.
type PageData struct {
	Header   partials.Header
	KPIs     []KPIView
	Alerts   []AlertView
	Activity []ActivityItem
	Error    string
	Updated  string
}

// KPIView is the rendered representation of a metric card.
type KPIView struct {
	ID         string
	Label      string
	Value      string
	Hint       string
	Icon       string
	Href       string
	Capability rbac.Capability
}

// AlertView is a batch expiry warning.
type AlertView struct {
	ID      string
	Tone    string
	Message string
	Href    string
}

// ActivityItem is a recent scan shown in the feed.
type ActivityItem struct {
	Code        string
	Title       string
	Detail      string
	ResultLabel string
	ResultTone  string
	Occurred    string
}

// BuildPageData prepares the dashboard payload. A failed summary renders an error banner with no cards.
func BuildPageData(basePath string, summary admindashboard.Summary, errMsg string, now time.Time) PageData {
	data := PageData{
		Header: partials.Header{
			Title:    pageTitle,
			Subtitle: "Ringkasan operasional apotek hari ini",
			Breadcrumbs: []partials.Breadcrumb{
				{Label: pageTitle, Href: navigation.Join(basePath, "/dashboard")},
			},
		},
		Error: errMsg,
	}
	if errMsg != "" {
		return data
	}

	data.KPIs = []KPIView{
		{
			ID: "jenis-obat", Label: "Jenis Obat", Value: helpers.Number(summary.MedicineTypes),
			Icon: "box", Href: navigation.Join(basePath, "/jenis-obat"), Capability: rbac.CapJenisObatView,
		},
		{
			ID: "supplier", Label: "Supplier", Value: helpers.Number(summary.Suppliers),
			Hint: helpers.Number(summary.ActiveSuppliers) + " aktif",
			Icon: "truck", Href: navigation.Join(basePath, "/supplier"), Capability: rbac.CapSupplierView,
		},
		{
			ID: "resep-pending", Label: "Resep Menunggu", Value: helpers.Number(summary.PendingResep),
			Icon: "file-text", Href: navigation.Join(basePath, "/resep?status=pending"), Capability: rbac.CapResepView,
		},
		{
			ID: "scan-hari-ini", Label: "Scan Hari Ini", Value: helpers.Number(summary.ScansToday),
			Icon: "scan-line", Href: navigation.Join(basePath, "/qr"), Capability: rbac.CapQRView,
		},
	}

	qrPath := navigation.Join(basePath, "/qr")
	if summary.ExpiredBatches > 0 {
		data.Alerts = append(data.Alerts, AlertView{
			ID:      "batch-expired",
			Tone:    "danger",
			Message: helpers.Number(summary.ExpiredBatches) + " batch obat sudah kadaluarsa.",
			Href:    qrPath,
		})
	}
	if summary.ExpiringBatches > 0 {
		data.Alerts = append(data.Alerts, AlertView{
			ID:      "batch-expiring",
			Tone:    "warning",
			Message: helpers.Number(summary.ExpiringBatches) + " batch obat kadaluarsa dalam 30 hari.",
			Href:    qrPath,
		})
	}

	for _, scan := range summary.RecentScans {
		title := scan.MedicineName
		if title == "" {
			title = scan.Code
		}
		data.Activity = append(data.Activity, ActivityItem{
			Code:        scan.Code,
			Title:       title,
			Detail:      scan.BatchNumber,
			ResultLabel: scan.Result.Label(),
			ResultTone:  scan.Result.Tone(),
			Occurred:    helpers.Relative(scan.ScannedAt, now),
		})
	}

	if !summary.GeneratedAt.IsZero() {
		data.Updated = helpers.DateTime(summary.GeneratedAt)
	}
	return data
}
