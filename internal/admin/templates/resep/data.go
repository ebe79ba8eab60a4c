package resep

import (
	"time"

	"finitefield.org/apotek-admin/internal/admin/navigation"
	"finitefield.org/apotek-admin/internal/admin/rbac"
	adminresep "finitefield.org/apotek-admin/internal/admin/resep"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
	"finitefield.org/apotek-admin/internal/admin/templates/partials"
)

const (
	pageTitle    = "Resep"
	pageSubtitle = "Kelola resep obat dari dokter"
	tableID      = "resep-table"
)

// PageData is the payload for the prescription list.
type PageData struct {
	Header        partials.Header
	ListPath      string
	TableEndpoint string
	Query         QueryState
	StatusOptions []components.Option
	Table         TableData
}

// QueryState captures the current filters.
type QueryState struct {
	Search string
	Status string
}

// TableData is the payload for the swappable table fragment.
type TableData struct {
	ID     string
	Search string
	Rows   []TableRow
	Total  string
	Error  string
	Empty  *components.EmptyStateData
}

// TableRow is one rendered prescription.
type TableRow struct {
	ID              string
	Number          string
	Date            string
	PatientName     string
	MedicalRecordNo string
	DoctorName      string
	PatientType     string
	Payment         string
	StatusLabel     string
	StatusTone      string
}

// BuildPageData assembles the list page.
func BuildPageData(basePath string, state QueryState, prescriptions []adminresep.Prescription, errMsg string) PageData {
	return PageData{
		Header: partials.Header{
			Title:       pageTitle,
			Subtitle:    pageSubtitle,
			Breadcrumbs: breadcrumbItems(basePath),
			Action: &partials.PageAction{
				Label:      "Tambah Resep",
				Href:       navigation.Join(basePath, "/resep/create"),
				Icon:       "plus",
				Capability: rbac.CapResepManage,
			},
		},
		ListPath:      navigation.Join(basePath, "/resep"),
		TableEndpoint: navigation.Join(basePath, "/resep/table"),
		Query:         state,
		StatusOptions: statusOptions(state.Status),
		Table:         TablePayload(state, prescriptions, errMsg),
	}
}

// TablePayload prepares the table fragment. An empty, error-free result yields the placeholder.
func TablePayload(state QueryState, prescriptions []adminresep.Prescription, errMsg string) TableData {
	rows := make([]TableRow, 0, len(prescriptions))
	for _, p := range prescriptions {
		rows = append(rows, TableRow{
			ID:              p.ID,
			Number:          p.Number,
			Date:            helpers.Date(p.Date),
			PatientName:     p.PatientName,
			MedicalRecordNo: p.MedicalRecordNo,
			DoctorName:      p.DoctorName,
			PatientType:     p.PatientType.Label(),
			Payment:         p.Payment.Label(),
			StatusLabel:     p.Status.Label(),
			StatusTone:      p.Status.Tone(),
		})
	}

	data := TableData{
		ID:     tableID,
		Search: state.Search,
		Rows:   rows,
		Total:  helpers.Number(len(rows)),
		Error:  errMsg,
	}
	if errMsg == "" && len(rows) == 0 {
		message := "Belum ada resep yang diterima."
		if state.Search != "" || state.Status != "" {
			message = "Tidak ada resep yang cocok dengan pencarian."
		}
		data.Empty = &components.EmptyStateData{Icon: "file-text", Caption: "Halaman Resep", Message: message}
	}
	return data
}

// FormState holds submitted values and field errors for the create form.
type FormState struct {
	Number          string
	MedicalRecordNo string
	PatientName     string
	DoctorName      string
	Date            string
	PatientType     string
	Payment         string
	Notes           string
	Errors          map[string]string
	Error           string
}

// DefaultForm returns the initial create form dated today.
func DefaultForm(now time.Time) FormState {
	return FormState{
		Date:        now.Format(adminresep.DateLayout),
		PatientType: string(adminresep.PatientOutpatient),
		Payment:     string(adminresep.PaymentCash),
	}
}

// CreatePageData is the payload for the create page.
type CreatePageData struct {
	Header             partials.Header
	SubmitPath         string
	CancelPath         string
	CSRFToken          string
	PatientTypeOptions []components.Option
	PaymentOptions     []components.Option
	Form               FormState
}

// BuildCreatePageData assembles the create page.
func BuildCreatePageData(basePath, csrfToken string, form FormState) CreatePageData {
	patientTypes := make([]components.Option, 0, 3)
	for _, pt := range adminresep.PatientTypes() {
		patientTypes = append(patientTypes, components.Option{Value: string(pt), Label: pt.Label(), Selected: form.PatientType == string(pt)})
	}
	payments := make([]components.Option, 0, 3)
	for _, p := range adminresep.Payments() {
		payments = append(payments, components.Option{Value: string(p), Label: p.Label(), Selected: form.Payment == string(p)})
	}

	return CreatePageData{
		Header: partials.Header{
			Title:    "Tambah Resep",
			Subtitle: "Catat resep baru dari dokter",
			Breadcrumbs: append(breadcrumbItems(basePath), partials.Breadcrumb{
				Label: "Tambah",
				Href:  navigation.Join(basePath, "/resep/create"),
			}),
		},
		SubmitPath:         navigation.Join(basePath, "/resep"),
		CancelPath:         navigation.Join(basePath, "/resep"),
		CSRFToken:          csrfToken,
		PatientTypeOptions: patientTypes,
		PaymentOptions:     payments,
		Form:               form,
	}
}

// ShowPageData is the payload for the prescription detail page.
type ShowPageData struct {
	Header      partials.Header
	ID          string
	StatusLabel string
	StatusTone  string
	Details     []Detail
	Actions     []ActionButton
	BackPath    string
}

// Detail is one labelled value on the detail page.
type Detail struct {
	Label string
	Value string
}

// ActionButton is a workflow step offered on the detail page.
type ActionButton struct {
	Action  adminresep.Action
	Label   string
	Path    string
	Confirm string
	Variant string
}

// BuildShowPageData assembles the detail page of p with the actions its status allows.
func BuildShowPageData(basePath string, p adminresep.Prescription) ShowPageData {
	base := "/resep/" + p.ID
	data := ShowPageData{
		Header: partials.Header{
			Title:    "Resep " + p.Number,
			Subtitle: p.PatientName,
			Breadcrumbs: append(breadcrumbItems(basePath), partials.Breadcrumb{
				Label: p.Number,
				Href:  navigation.Join(basePath, base),
			}),
		},
		ID:          p.ID,
		StatusLabel: p.Status.Label(),
		StatusTone:  p.Status.Tone(),
		Details: []Detail{
			{Label: "Nomor Resep", Value: p.Number},
			{Label: "Tanggal Resep", Value: helpers.Date(p.Date)},
			{Label: "Nomor RM", Value: p.MedicalRecordNo},
			{Label: "Nama Pasien", Value: p.PatientName},
			{Label: "Nama Dokter", Value: p.DoctorName},
			{Label: "Jenis Pasien", Value: p.PatientType.Label()},
			{Label: "Cara Bayar", Value: p.Payment.Label()},
			{Label: "Catatan", Value: orDash(p.Notes)},
			{Label: "Diproses Oleh", Value: orDash(p.ProcessedBy)},
			{Label: "Diproses Pada", Value: helpers.DateTime(p.ProcessedAt)},
			{Label: "Selesai Pada", Value: helpers.DateTime(p.CompletedAt)},
			{Label: "Dicatat", Value: helpers.DateTime(p.CreatedAt)},
		},
		BackPath: navigation.Join(basePath, "/resep"),
	}
	for _, action := range p.Status.Actions() {
		button := ActionButton{
			Action: action,
			Path:   navigation.Join(basePath, base+"/"+string(action)),
		}
		switch action {
		case adminresep.ActionProcess:
			button.Label, button.Variant = "Proses Resep", "primary"
		case adminresep.ActionComplete:
			button.Label, button.Variant = "Tandai Selesai", "primary"
			button.Confirm = "Tandai resep " + p.Number + " selesai?"
		case adminresep.ActionCancel:
			button.Label, button.Variant = "Batalkan", "danger"
			button.Confirm = "Batalkan resep " + p.Number + "?"
		}
		data.Actions = append(data.Actions, button)
	}
	return data
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func statusOptions(selected string) []components.Option {
	options := []components.Option{{Value: "", Label: "Semua status", Selected: selected == ""}}
	for _, s := range adminresep.Statuses() {
		options = append(options, components.Option{Value: string(s), Label: s.Label(), Selected: selected == string(s)})
	}
	return options
}

func breadcrumbItems(basePath string) []partials.Breadcrumb {
	return []partials.Breadcrumb{
		{Label: "Dashboard", Href: navigation.Join(basePath, "/dashboard")},
		{Label: pageTitle, Href: navigation.Join(basePath, "/resep")},
	}
}
