package jenisobat

import (
	adminjenisobat "finitefield.org/apotek-admin/internal/admin/jenisobat"
	"finitefield.org/apotek-admin/internal/admin/navigation"
	"finitefield.org/apotek-admin/internal/admin/rbac"
	"finitefield.org/apotek-admin/internal/admin/templates/components"
	"finitefield.org/apotek-admin/internal/admin/templates/helpers"
	"finitefield.org/apotek-admin/internal/admin/templates/partials"
)

const (
	pageTitle    = "Jenis Obat"
	pageSubtitle = "Kelola jenis obat"
	tableID      = "jenis-obat-table"
)

// PageData is the payload for the medicine type list.
type PageData struct {
	Header        partials.Header
	ListPath      string
	TableEndpoint string
	Query         QueryState
	Table         TableData
}

// QueryState captures the current filters.
type QueryState struct {
	Search     string
	ActiveOnly bool
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

// TableRow is one rendered medicine type.
type TableRow struct {
	ID          string
	Name        string
	Description string
	StatusLabel string
	StatusTone  string
	CreatedAt   string
}

// BuildPageData assembles the list page.
func BuildPageData(basePath string, state QueryState, types []adminjenisobat.Type, errMsg string) PageData {
	return PageData{
		Header: partials.Header{
			Title:       pageTitle,
			Subtitle:    pageSubtitle,
			Breadcrumbs: breadcrumbItems(basePath),
			Action: &partials.PageAction{
				Label:      "Tambah Jenis",
				Href:       navigation.Join(basePath, "/jenis-obat/create"),
				Icon:       "plus",
				Capability: rbac.CapJenisObatManage,
			},
		},
		ListPath:      navigation.Join(basePath, "/jenis-obat"),
		TableEndpoint: navigation.Join(basePath, "/jenis-obat/table"),
		Query:         state,
		Table:         TablePayload(state, types, errMsg),
	}
}

// TablePayload prepares the table fragment. An empty, error-free result yields the placeholder.
func TablePayload(state QueryState, types []adminjenisobat.Type, errMsg string) TableData {
	rows := make([]TableRow, 0, len(types))
	for _, t := range types {
		status, tone := "Nonaktif", ""
		if t.Active {
			status, tone = "Aktif", "success"
		}
		rows = append(rows, TableRow{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			StatusLabel: status,
			StatusTone:  tone,
			CreatedAt:   helpers.Date(t.CreatedAt),
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
		message := "Belum ada jenis obat. Tambahkan jenis obat pertama untuk mulai mengelola master data."
		if state.Search != "" || state.ActiveOnly {
			message = "Tidak ada jenis obat yang cocok dengan pencarian."
		}
		data.Empty = &components.EmptyStateData{Icon: "box", Caption: "Halaman Jenis Obat", Message: message}
	}
	return data
}

// FormState holds submitted values and field errors for the create and edit forms.
type FormState struct {
	Name        string
	Description string
	Active      bool
	Errors      map[string]string
	Error       string
}

// DefaultForm returns the initial create form.
func DefaultForm() FormState {
	return FormState{Active: true}
}

// FormPageData is the payload for the create and edit pages.
type FormPageData struct {
	Header     partials.Header
	SubmitPath string
	CancelPath string
	CSRFToken  string
	Form       FormState
}

// BuildCreatePageData assembles the create page.
func BuildCreatePageData(basePath, csrfToken string, form FormState) FormPageData {
	return FormPageData{
		Header: partials.Header{
			Title:    "Tambah Jenis Obat",
			Subtitle: "Tambahkan bentuk sediaan obat baru",
			Breadcrumbs: append(breadcrumbItems(basePath), partials.Breadcrumb{
				Label: "Tambah",
				Href:  navigation.Join(basePath, "/jenis-obat/create"),
			}),
		},
		SubmitPath: navigation.Join(basePath, "/jenis-obat"),
		CancelPath: navigation.Join(basePath, "/jenis-obat"),
		CSRFToken:  csrfToken,
		Form:       form,
	}
}

// BuildEditPageData assembles the edit page for the medicine type id.
func BuildEditPageData(basePath, csrfToken, id string, form FormState) FormPageData {
	return FormPageData{
		Header: partials.Header{
			Title:    "Ubah Jenis Obat",
			Subtitle: form.Name,
			Breadcrumbs: append(breadcrumbItems(basePath), partials.Breadcrumb{
				Label: "Ubah",
				Href:  navigation.Join(basePath, "/jenis-obat/"+id+"/edit"),
			}),
		},
		SubmitPath: navigation.Join(basePath, "/jenis-obat/"+id+"/edit"),
		CancelPath: navigation.Join(basePath, "/jenis-obat"),
		CSRFToken:  csrfToken,
		Form:       form,
	}
}

// FormFromType fills the edit form with the stored values of t.
func FormFromType(t adminjenisobat.Type) FormState {
	return FormState{Name: t.Name, Description: t.Description, Active: t.Active}
}

func breadcrumbItems(basePath string) []partials.Breadcrumb {
	return []partials.Breadcrumb{
		{Label: "Dashboard", Href: navigation.Join(basePath, "/dashboard")},
		{Label: pageTitle, Href: navigation.Join(basePath, "/jenis-obat")},
	}
}
