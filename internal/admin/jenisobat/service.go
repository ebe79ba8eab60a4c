package jenisobat

import (
	"context"
	"errors"
	"strings"
	"time"

	"finitefield.org/apotek-admin/internal/admin/validation"
)

var (
	// ErrDuplicate indicates a medicine type with the same name already exists.
	ErrDuplicate = errors.New("jenis obat already exists")
	// ErrNotFound indicates no medicine type has the requested ID.
	ErrNotFound = errors.New("jenis obat not found")
)

// Service manages the medicine type master list.
type Service interface {
	// List returns medicine types matching the query, sorted by name.
	List(ctx context.Context, query Query) ([]Type, error)
	// Get returns the medicine type with id.
	Get(ctx context.Context, id string) (Type, error)
	// Create validates and stores a new medicine type.
	Create(ctx context.Context, req CreateRequest) (Type, error)
	// Update validates and replaces the editable fields of an existing type.
	Update(ctx context.Context, id string, req UpdateRequest) (Type, error)
	// Delete removes the medicine type with id.
	Delete(ctx context.Context, id string) error
}

// Type is a dosage form such as tablet or syrup.
type Type struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}

// Query filters the list.
type Query struct {
	Search     string
	ActiveOnly bool
}

// Matches reports whether t satisfies the query.
func (q Query) Matches(t Type) bool {
	if q.ActiveOnly && !t.Active {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Name), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// CreateRequest carries the form input for a new medicine type.
type CreateRequest struct {
	Name        string
	Description string
	Active      bool
}

// UpdateRequest carries the edit form input. Its rules match CreateRequest.
type UpdateRequest = CreateRequest

// NameKey is the uniqueness key of a medicine type name.
func NameKey(name string) string {
	return validation.FoldKey(name)
}

// Normalise trims whitespace from every field.
func (r CreateRequest) Normalise() CreateRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	return r
}

// Validate checks field constraints. Uniqueness is checked by the store.
func (r CreateRequest) Validate() error {
	errs := validation.Errors{}
	errs.Required("nama", r.Name, "Nama jenis")
	errs.MaxLength("nama", r.Name, "Nama jenis", 100)
	errs.MaxLength("deskripsi", r.Description, "Deskripsi", 500)
	return errs.Err()
}

// DuplicateFieldError maps ErrDuplicate onto the form field it concerns.
func DuplicateFieldError() validation.Errors {
	return validation.Errors{"nama": "Nama jenis sudah terdaftar."}
}

// DefaultTypes returns the standard dosage forms used to seed a fresh install.
func DefaultTypes() []CreateRequest {
	entries := [][2]string{
		{"Tablet", "Obat bentuk tablet padat"},
		{"Kapsul", "Obat dalam cangkang kapsul"},
		{"Kaplet", "Tablet berbentuk kapsul"},
		{"Sirup", "Obat cair manis"},
		{"Suspensi", "Obat cair dengan partikel tersuspensi"},
		{"Emulsi", "Campuran dua cairan tidak larut"},
		{"Injeksi", "Obat suntik"},
		{"Infus", "Cairan infus intravena"},
		{"Salep", "Obat oles setengah padat"},
		{"Krim", "Obat oles berbentuk krim"},
		{"Gel", "Obat oles berbentuk gel"},
		{"Lotion", "Cairan untuk kulit"},
		{"Tetes Mata", "Obat tetes untuk mata"},
		{"Tetes Telinga", "Obat tetes untuk telinga"},
		{"Tetes Hidung", "Obat tetes untuk hidung"},
		{"Suppositoria", "Obat yang dimasukkan melalui rektum"},
		{"Ovula", "Obat yang dimasukkan melalui vagina"},
		{"Inhaler", "Obat hirup untuk pernapasan"},
		{"Nebulizer", "Obat uap untuk pernapasan"},
		{"Patch", "Obat tempel transdermal"},
		{"Serbuk", "Obat dalam bentuk serbuk"},
		{"Granul", "Obat dalam bentuk butiran"},
		{"Plester", "Plester obat"},
		{"Spray", "Obat semprot"},
		{"Lainnya", "Bentuk sediaan lainnya"},
	}
	out := make([]CreateRequest, 0, len(entries))
	for _, e := range entries {
		out = append(out, CreateRequest{Name: e[0], Description: e[1], Active: true})
	}
	return out
}
