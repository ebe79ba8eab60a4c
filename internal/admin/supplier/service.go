package supplier

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"finitefield.org/apotek-admin/internal/admin/validation"
)

var (
	// ErrDuplicate indicates another supplier already uses the code.
	ErrDuplicate = errors.New("supplier code already exists")
	// ErrNotFound indicates no supplier has the requested ID.
	ErrNotFound = errors.New("supplier not found")
)

// Status marks whether orders may be placed with the supplier.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Label returns the Indonesian display text for the status.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Aktif"
	case StatusInactive:
		return "Nonaktif"
	default:
		return string(s)
	}
}

// Tone maps the status onto a badge tone.
func (s Status) Tone() string {
	if s == StatusActive {
		return "success"
	}
	return ""
}

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// Service manages medicine suppliers.
type Service interface {
	// List returns suppliers matching the query, sorted by name.
	List(ctx context.Context, query Query) ([]Supplier, error)
	// Get returns the supplier with id.
	Get(ctx context.Context, id string) (Supplier, error)
	// Create validates and stores a new supplier.
	Create(ctx context.Context, req CreateRequest) (Supplier, error)
	// Update validates and replaces the editable fields of an existing supplier.
	Update(ctx context.Context, id string, req UpdateRequest) (Supplier, error)
	// ToggleStatus flips the supplier between active and inactive.
	ToggleStatus(ctx context.Context, id string) (Supplier, error)
	// Delete removes the supplier with id.
	Delete(ctx context.Context, id string) error
}

// Supplier is a vendor the pharmacy purchases medicine from.
type Supplier struct {
	ID            string
	Code          string
	Name          string
	Address       string
	Phone         string
	Email         string
	ContactPerson string
	ContactPhone  string
	NPWP          string
	Status        Status
	Notes         string
	CreatedAt     time.Time
}

// Query filters the supplier list.
type Query struct {
	Search string
	Status Status
}

// Matches reports whether s satisfies the query.
func (q Query) Matches(s Supplier) bool {
	if q.Status != "" && s.Status != q.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{s.Code, s.Name, s.Address, s.ContactPerson, s.Phone, s.Email} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// CreateRequest carries the form input for a new supplier.
type CreateRequest struct {
	Code          string
	Name          string
	Address       string
	Phone         string
	Email         string
	ContactPerson string
	ContactPhone  string
	NPWP          string
	Status        Status
	Notes         string
}

// UpdateRequest carries the edit form input. Its rules match CreateRequest.
type UpdateRequest = CreateRequest

// CodeKey is the uniqueness key of a supplier code.
func CodeKey(code string) string {
	return validation.FoldKey(code)
}

// Apply copies the editable fields of r onto s.
func (r CreateRequest) Apply(s Supplier) Supplier {
	s.Code = r.Code
	s.Name = r.Name
	s.Address = r.Address
	s.Phone = r.Phone
	s.Email = r.Email
	s.ContactPerson = r.ContactPerson
	s.ContactPhone = r.ContactPhone
	s.NPWP = r.NPWP
	s.Status = r.Status
	s.Notes = r.Notes
	return s
}

var notesPolicy = bluemonday.StrictPolicy()

// Normalise trims fields and upper-cases the code. Notes lose any markup and
// are stored as plain text.
func (r CreateRequest) Normalise() CreateRequest {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.ContactPerson = strings.TrimSpace(r.ContactPerson)
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.NPWP = strings.TrimSpace(r.NPWP)
	r.Notes = strings.TrimSpace(html.UnescapeString(notesPolicy.Sanitize(r.Notes)))
	if r.Status == "" {
		r.Status = StatusActive
	}
	return r
}

// Validate checks field constraints. Code uniqueness is checked by the store.
func (r CreateRequest) Validate() error {
	errs := validation.Errors{}
	errs.Required("kode", r.Code, "Kode supplier")
	errs.MaxLength("kode", r.Code, "Kode supplier", 50)
	errs.Required("nama", r.Name, "Nama supplier")
	errs.MaxLength("nama", r.Name, "Nama supplier", 200)
	errs.MaxLength("no_telepon", r.Phone, "No. telepon", 20)
	errs.MaxLength("email", r.Email, "Email", 100)
	errs.Email("email", r.Email, "Email")
	errs.MaxLength("kontak_person", r.ContactPerson, "Kontak person", 100)
	errs.MaxLength("no_hp_kontak", r.ContactPhone, "No. HP kontak", 20)
	errs.MaxLength("npwp", r.NPWP, "NPWP", 30)
	errs.OneOf("status", string(r.Status), "Status", string(StatusActive), string(StatusInactive))
	return errs.Err()
}

// DuplicateFieldError maps ErrDuplicate onto the form field it concerns.
func DuplicateFieldError() validation.Errors {
	return validation.Errors{"kode": "Kode supplier sudah digunakan."}
}

// SampleSuppliers returns demo suppliers used to seed a fresh install.
func SampleSuppliers() []CreateRequest {
	return []CreateRequest{
		{
			Code:          "SUP-001",
			Name:          "PT Kimia Farma Trading & Distribution",
			Address:       "Jl. Budi Utomo No. 1, Jakarta Pusat",
			Phone:         "021-3847709",
			Email:         "order@kftd.example",
			ContactPerson: "Rina Wulandari",
			ContactPhone:  "081234567890",
			Status:        StatusActive,
		},
		{
			Code:          "SUP-002",
			Name:          "PT Enseval Putera Megatrading",
			Address:       "Jl. Pulo Lentut No. 10, Jakarta Timur",
			Phone:         "021-46822422",
			Email:         "cs@enseval.example",
			ContactPerson: "Agus Santoso",
			ContactPhone:  "081298765432",
			Status:        StatusActive,
		},
		{
			Code:          "SUP-003",
			Name:          "CV Sehat Sentosa",
			Address:       "Jl. Diponegoro No. 45, Bandung",
			Phone:         "022-4201234",
			ContactPerson: "Dewi Lestari",
			Status:        StatusInactive,
			Notes:         "Kontrak berakhir Desember.",
		},
	}
}
