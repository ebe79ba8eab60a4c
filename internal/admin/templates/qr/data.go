package qr

import (
	"net/url"
	"time"

	"finitefield.org/apotek-admin/internal/admin/navigation"
	adminqr "finitefield.org/apotek-admin/internal/admin/qrcode"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
	"finitefield.org/apotek-admin/internal/admin/templates/partials"
)

const (
	pageTitle    = "QR Code"
	pageSubtitle = "Generate dan scan QR code untuk batch obat"
	logTableID   = "qr-log-table"
	resultID     = "scan-result"

	expiringWindowDays = 30
)

// PageData is the payload for the QR page.
type PageData struct {
	Header  partials.Header
	Scanner ScannerData
	Batches []BatchRow
	Error   string
	Empty   *components.EmptyStateData
	Logs    LogTableData
}

// ScannerData configures the scan form.
type ScannerData struct {
	ScanPath      string
	CSRFToken     string
	Code          string
	MethodOptions []components.Option
	Result        *ResultData
	FieldError    string
}

// ResultData is the outcome panel shown after a scan.
type ResultData struct {
	Result       string
	Tone         string
	Message      string
	Code         string
	BatchNumber  string
	MedicineName string
	ExpiresOn    string
	Stock        string
}

// BatchRow is one rendered batch label.
type BatchRow struct {
	Code         string
	Number       string
	MedicineName string
	ExpiresOn    string
	Stock        string
	StatusLabel  string
	StatusTone   string
	ImageURL     string
}

// LogTableData is the payload for the swappable scan history fragment.
type LogTableData struct {
	ID            string
	Endpoint      string
	ResultOptions []components.Option
	Rows          []LogRow
	Error         string
	EmptyMessage  string
}

// LogRow is one rendered scan log entry.
type LogRow struct {
	ScannedAt    string
	Code         string
	Method       string
	ResultLabel  string
	ResultTone   string
	BatchNumber  string
	MedicineName string
	Message      string
	ScannedBy    string
}

// BuildPageData assembles the QR page.
func BuildPageData(basePath, csrfToken string, batches []adminqr.Batch, logs LogTableData, errMsg string, now time.Time) PageData {
	rows := make([]BatchRow, 0, len(batches))
	for _, b := range batches {
		status, tone := "Baik", "success"
		switch {
		case b.Expired(now):
			status, tone = "Kadaluarsa", "danger"
		case b.ExpiringSoon(now, expiringWindowDays):
			status, tone = "Segera kadaluarsa", "warning"
		}
		rows = append(rows, BatchRow{
			Code:         b.Code,
			Number:       b.Number,
			MedicineName: b.MedicineName,
			ExpiresOn:    helpers.Date(b.ExpiresOn),
			Stock:        helpers.Number(b.Stock),
			StatusLabel:  status,
			StatusTone:   tone,
			ImageURL:     navigation.Join(basePath, "/qr/batch/"+url.PathEscape(b.Code)+".png"),
		})
	}

	data := PageData{
		Header: partials.Header{
			Title:    pageTitle,
			Subtitle: pageSubtitle,
			Breadcrumbs: []partials.Breadcrumb{
				{Label: "Dashboard", Href: navigation.Join(basePath, "/dashboard")},
				{Label: pageTitle, Href: navigation.Join(basePath, "/qr")},
			},
		},
		Scanner: BuildScannerData(basePath, csrfToken, "", nil, ""),
		Batches: rows,
		Error:   errMsg,
		Logs:    logs,
	}
	if errMsg == "" && len(rows) == 0 {
		data.Empty = &components.EmptyStateData{
			Icon:    "qr-code",
			Caption: "Halaman QR Code Scanner",
			Message: "Belum ada batch obat dengan QR code.",
		}
	}
	return data
}

// BuildScannerData assembles the scan form, optionally with the last result.
func BuildScannerData(basePath, csrfToken, code string, result *ResultData, fieldError string) ScannerData {
	return ScannerData{
		ScanPath:  navigation.Join(basePath, "/qr/scan"),
		CSRFToken: csrfToken,
		Code:      code,
		MethodOptions: []components.Option{
			{Value: string(adminqr.MethodCamera), Label: adminqr.MethodCamera.Label(), Selected: true},
			{Value: string(adminqr.MethodScanner), Label: adminqr.MethodScanner.Label()},
		},
		Result:     result,
		FieldError: fieldError,
	}
}

// ResultPayload converts a scan outcome into the result panel.
func ResultPayload(res adminqr.ScanResult) *ResultData {
	data := &ResultData{
		Result:  string(res.Result),
		Tone:    res.Result.Tone(),
		Message: res.Message,
		Code:    res.Log.Code,
	}
	if res.Batch != nil {
		data.BatchNumber = res.Batch.Number
		data.MedicineName = res.Batch.MedicineName
		data.ExpiresOn = helpers.Date(res.Batch.ExpiresOn)
		data.Stock = helpers.Number(res.Batch.Stock)
	}
	return data
}

// LogTablePayload prepares the scan history fragment.
func LogTablePayload(basePath string, filter adminqr.Result, logs []adminqr.ScanLog, errMsg string) LogTableData {
	options := []components.Option{{Value: "", Label: "Semua hasil", Selected: filter == ""}}
	for _, r := range adminqr.Results() {
		options = append(options, components.Option{Value: string(r), Label: r.Label(), Selected: filter == r})
	}

	rows := make([]LogRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, LogRow{
			ScannedAt:    helpers.DateTime(l.ScannedAt),
			Code:         l.Code,
			Method:       l.Method.Label(),
			ResultLabel:  l.Result.Label(),
			ResultTone:   l.Result.Tone(),
			BatchNumber:  l.BatchNumber,
			MedicineName: l.MedicineName,
			Message:      l.Message,
			ScannedBy:    l.ScannedBy,
		})
	}

	data := LogTableData{
		ID:            logTableID,
		Endpoint:      navigation.Join(basePath, "/qr/logs"),
		ResultOptions: options,
		Rows:          rows,
		Error:         errMsg,
	}
	if errMsg == "" && len(rows) == 0 {
		data.EmptyMessage = "Belum ada riwayat scan."
	}
	return data
}
