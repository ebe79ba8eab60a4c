package supplier

import (
	"finitefield.org/apotek-admin/internal/admin/navigation"
	"finitefield.org/apotek-admin/internal/admin/rbac"
	adminsupplier "finitefield.org/apotek-admin/internal/admin/supplier"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
	"finitefield.org/apotek-admin/internal/admin/templates/partials"
)

const (
	pageTitle    = "Supplier"
	pageSubtitle = "Kelola data supplier obat"
	tableID      = "supplier-table"
)

// PageData is the payload for the supplier list.
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

// TableRow is one rendered supplier.
type TableRow struct {
	ID            string
	Code          string
	Name          string
	Address       string
	ContactPerson string
	Phone         string
	Email         string
	StatusLabel   string
	StatusTone    string
	ToggleLabel   string
}

// BuildPageData assembles the list page.
func BuildPageData(basePath string, state QueryState, suppliers []adminsupplier.Supplier, errMsg string) PageData {
	return PageData{
		Header: partials.Header{
			Title:       pageTitle,
			Subtitle:    pageSubtitle,
			Breadcrumbs: breadcrumbItems(basePath),
			Action: &partials.PageAction{
				Label:      "Tambah Supplier",
				Href:       navigation.Join(basePath, "/supplier/create"),
				Icon:       "plus",
				Capability: rbac.CapSupplierManage,
			},
		},
		ListPath:      navigation.Join(basePath, "/supplier"),
		TableEndpoint: navigation.Join(basePath, "/supplier/table"),
		Query:         state,
		StatusOptions: statusOptions(state.Status, "Semua status"),
		Table:         TablePayload(state, suppliers, errMsg),
	}
}

// TablePayload prepares the table fragment. An empty, error-free result yields the placeholder.
func TablePayload(state QueryState, suppliers []adminsupplier.Supplier, errMsg string) TableData {
	rows := make([]TableRow, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, TableRow{
			ID:            s.ID,
			Code:          s.Code,
			Name:          s.Name,
			Address:       s.Address,
			ContactPerson: s.ContactPerson,
			Phone:         firstNonEmpty(s.Phone, s.ContactPhone),
			Email:         s.Email,
			StatusLabel:   s.Status.Label(),
			StatusTone:    s.Status.Tone(),
			ToggleLabel:   toggleLabel(s.Status),
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
		message := "Belum ada supplier terdaftar."
		if state.Search != "" || state.Status != "" {
			message = "Tidak ada supplier yang cocok dengan pencarian."
		}
		data.Empty = &components.EmptyStateData{Icon: "truck", Caption: "Halaman Supplier", Message: message}
	}
	return data
}

// FormState holds submitted values and field errors for the create and edit forms.
type FormState struct {
	Code          string
	Name          string
	Address       string
	Phone         string
	Email         string
	ContactPerson string
	ContactPhone  string
	NPWP          string
	Status        string
	Notes         string
	Errors        map[string]string
	Error         string
}

// DefaultForm returns the initial create form.
func DefaultForm() FormState {
	return FormState{Status: string(adminsupplier.StatusActive)}
}

// FormPageData is the payload for the create and edit pages.
type FormPageData struct {
	Header        partials.Header
	SubmitPath    string
	CancelPath    string
	CSRFToken     string
	StatusOptions []components.Option
	Form          FormState
}

// BuildCreatePageData assembles the create page.
func BuildCreatePageData(basePath, csrfToken string, form FormState) FormPageData {
	return FormPageData{
		Header: partials.Header{
			Title:    "Tambah Supplier",
			Subtitle: "Daftarkan supplier obat baru",
			Breadcrumbs: append(breadcrumbItems(basePath), partials.Breadcrumb{
				Label: "Tambah",
				Href:  navigation.Join(basePath, "/supplier/create"),
			}),
		},
		SubmitPath:    navigation.Join(basePath, "/supplier"),
		CancelPath:    navigation.Join(basePath, "/supplier"),
		CSRFToken:     csrfToken,
		StatusOptions: statusOptions(form.Status, ""),
		Form:          form,
	}
}

// BuildEditPageData assembles the edit page for the supplier id.
func BuildEditPageData(basePath, csrfToken, id string, form FormState) FormPageData {
	return FormPageData{
		Header: partials.Header{
			Title:    "Ubah Supplier",
			Subtitle: form.Name,
			Breadcrumbs: append(breadcrumbItems(basePath), partials.Breadcrumb{
				Label: "Ubah",
				Href:  navigation.Join(basePath, "/supplier/"+id+"/edit"),
			}),
		},
		SubmitPath:    navigation.Join(basePath, "/supplier/"+id+"/edit"),
		CancelPath:    navigation.Join(basePath, "/supplier"),
		CSRFToken:     csrfToken,
		StatusOptions: statusOptions(form.Status, ""),
		Form:          form,
	}
}

// FormFromSupplier fills the edit form with the stored values of s.
func FormFromSupplier(s adminsupplier.Supplier) FormState {
	return FormState{
		Code:          s.Code,
		Name:          s.Name,
		Address:       s.Address,
		Phone:         s.Phone,
		Email:         s.Email,
		ContactPerson: s.ContactPerson,
		ContactPhone:  s.ContactPhone,
		NPWP:          s.NPWP,
		Status:        string(s.Status),
		Notes:         s.Notes,
	}
}

func toggleLabel(status adminsupplier.Status) string {
	if status == adminsupplier.StatusActive {
		return "Nonaktifkan"
	}
	return "Aktifkan"
}

func statusOptions(selected, allLabel string) []components.Option {
	var options []components.Option
	if allLabel != "" {
		options = append(options, components.Option{Value: "", Label: allLabel, Selected: selected == ""})
	}
	for _, s := range []adminsupplier.Status{adminsupplier.StatusActive, adminsupplier.StatusInactive} {
		options = append(options, components.Option{Value: string(s), Label: s.Label(), Selected: selected == string(s)})
	}
	return options
}

func breadcrumbItems(basePath string) []partials.Breadcrumb {
	return []partials.Breadcrumb{
		{Label: "Dashboard", Href: navigation.Join(basePath, "/dashboard")},
		{Label: pageTitle, Href: navigation.Join(basePath, "/supplier")},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
