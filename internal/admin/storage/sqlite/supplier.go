package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"finitefield.org/apotek-admin/internal/admin/supplier"
)

const supplierColumns = `id, kode_supplier, nama_supplier, alamat, no_telepon, email,
	kontak_person, no_hp_kontak, npwp, status, catatan, created_at`

// SupplierStore implements supplier.Service on top of Store.
type SupplierStore struct {
	store *Store
}

// Suppliers returns the supplier repository.
func (s *Store) Suppliers() *SupplierStore {
	return &SupplierStore{store: s}
}

var _ supplier.Service = (*SupplierStore)(nil)

// List implements supplier.Service.
func (r *SupplierStore) List(ctx context.Context, query supplier.Query) ([]supplier.Supplier, error) {
	var (
		clauses []string
		args    []any
	)
	if query.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(query.Status))
	}
	if term := strings.TrimSpace(query.Search); term != "" {
		pattern := likePattern(term)
		var ors []string
		for _, col := range []string{"kode_supplier", "nama_supplier", "alamat", "kontak_person", "no_telepon", "email"} {
			ors = append(ors, col+` LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	stmt := "SELECT " + supplierColumns + " FROM supplier"
	if len(clauses) > 0 {
		stmt += " WHERE " + strings.Join(clauses, " AND ")
	}
	stmt += " ORDER BY nama_supplier COLLATE NOCASE, kode_supplier"

	rows, err := r.store.sqlDB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var result []supplier.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", err)
	}
	return result, nil
}

// Get implements supplier.Service.
func (r *SupplierStore) Get(ctx context.Context, id string) (supplier.Supplier, error) {
	row := r.store.sqlDB.QueryRowContext(ctx, "SELECT "+supplierColumns+" FROM supplier WHERE id = ?", id)
	s, err := scanSupplier(row)
	if errors.Is(err, sql.ErrNoRows) {
		return supplier.Supplier{}, supplier.ErrNotFound
	}
	return s, err
}

// Create implements supplier.Service.
func (r *SupplierStore) Create(ctx context.Context, req supplier.CreateRequest) (supplier.Supplier, error) {
	req = req.Normalise()
	if err := req.Validate(); err != nil {
		return supplier.Supplier{}, err
	}
	s := req.Apply(supplier.Supplier{ID: ulid.Make().String(), CreatedAt: r.store.now().UTC()})
	_, err := r.store.sqlDB.ExecContext(ctx,
		"INSERT INTO supplier ("+supplierColumns+", kode_key) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.ID, s.Code, s.Name, s.Address, s.Phone, s.Email,
		s.ContactPerson, s.ContactPhone, s.NPWP, string(s.Status), s.Notes, toMillis(s.CreatedAt),
		supplier.CodeKey(s.Code),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return supplier.Supplier{}, supplier.ErrDuplicate
		}
		return supplier.Supplier{}, fmt.Errorf("insert supplier: %w", err)
	}
	return s, nil
}

// Update implements supplier.Service.
func (r *SupplierStore) Update(ctx context.Context, id string, req supplier.UpdateRequest) (supplier.Supplier, error) {
	req = req.Normalise()
	if err := req.Validate(); err != nil {
		return supplier.Supplier{}, err
	}
	res, err := r.store.sqlDB.ExecContext(ctx,
		`UPDATE supplier SET kode_supplier = ?, kode_key = ?, nama_supplier = ?, alamat = ?, no_telepon = ?,
			email = ?, kontak_person = ?, no_hp_kontak = ?, npwp = ?, status = ?, catatan = ?
		WHERE id = ?`,
		req.Code, supplier.CodeKey(req.Code), req.Name, req.Address, req.Phone,
		req.Email, req.ContactPerson, req.ContactPhone, req.NPWP, string(req.Status), req.Notes,
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return supplier.Supplier{}, supplier.ErrDuplicate
		}
		return supplier.Supplier{}, fmt.Errorf("update supplier: %w", err)
	}
	if err := requireAffected(res, supplier.ErrNotFound); err != nil {
		return supplier.Supplier{}, err
	}
	return r.Get(ctx, id)
}

// ToggleStatus implements supplier.Service.
func (r *SupplierStore) ToggleStatus(ctx context.Context, id string) (supplier.Supplier, error) {
	res, err := r.store.sqlDB.ExecContext(ctx,
		`UPDATE supplier SET status = CASE status WHEN 'active' THEN 'inactive' ELSE 'active' END WHERE id = ?`, id)
	if err != nil {
		return supplier.Supplier{}, fmt.Errorf("toggle supplier status: %w", err)
	}
	if err := requireAffected(res, supplier.ErrNotFound); err != nil {
		return supplier.Supplier{}, err
	}
	return r.Get(ctx, id)
}

// Delete implements supplier.Service.
func (r *SupplierStore) Delete(ctx context.Context, id string) error {
	res, err := r.store.sqlDB.ExecContext(ctx, "DELETE FROM supplier WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return requireAffected(res, supplier.ErrNotFound)
}

func (r *SupplierStore) count(ctx context.Context) (int, error) {
	var n int
	if err := r.store.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM supplier").Scan(&n); err != nil {
		return 0, fmt.Errorf("count suppliers: %w", err)
	}
	return n, nil
}

func scanSupplier(row rowScanner) (supplier.Supplier, error) {
	var (
		s         supplier.Supplier
		status    string
		createdAt int64
	)
	if err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Address, &s.Phone, &s.Email,
		&s.ContactPerson, &s.ContactPhone, &s.NPWP, &status, &s.Notes, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return supplier.Supplier{}, err
		}
		return supplier.Supplier{}, fmt.Errorf("scan supplier: %w", err)
	}
	s.Status = supplier.Status(status)
	s.CreatedAt = fromMillis(createdAt)
	return s, nil
}
