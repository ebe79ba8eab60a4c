package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"finitefield.org/apotek-admin/internal/admin/jenisobat"
)

const jenisObatColumns = "id, nama_jenis, deskripsi, is_active, created_at"

// JenisObatStore implements jenisobat.Service on top of Store.
type JenisObatStore struct {
	store *Store
}

// JenisObat returns the medicine type repository.
func (s *Store) JenisObat() *JenisObatStore {
	return &JenisObatStore{store: s}
}

var _ jenisobat.Service = (*JenisObatStore)(nil)

// List implements jenisobat.Service.
func (r *JenisObatStore) List(ctx context.Context, query jenisobat.Query) ([]jenisobat.Type, error) {
	var (
		clauses []string
		args    []any
	)
	if query.ActiveOnly {
		clauses = append(clauses, "is_active = 1")
	}
	if term := strings.TrimSpace(query.Search); term != "" {
		pattern := likePattern(term)
		clauses = append(clauses, `(nama_jenis LIKE ? ESCAPE '\' OR deskripsi LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	stmt := "SELECT " + jenisObatColumns + " FROM jenis_obat"
	if len(clauses) > 0 {
		stmt += " WHERE " + strings.Join(clauses, " AND ")
	}
	stmt += " ORDER BY nama_jenis COLLATE NOCASE"

	rows, err := r.store.sqlDB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list jenis obat: %w", err)
	}
	defer rows.Close()

	var result []jenisobat.Type
	for rows.Next() {
		t, err := scanJenisObat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jenis obat: %w", err)
	}
	return result, nil
}

// Get implements jenisobat.Service.
func (r *JenisObatStore) Get(ctx context.Context, id string) (jenisobat.Type, error) {
	row := r.store.sqlDB.QueryRowContext(ctx, "SELECT "+jenisObatColumns+" FROM jenis_obat WHERE id = ?", id)
	t, err := scanJenisObat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return jenisobat.Type{}, jenisobat.ErrNotFound
	}
	return t, err
}

// Create implements jenisobat.Service.
func (r *JenisObatStore) Create(ctx context.Context, req jenisobat.CreateRequest) (jenisobat.Type, error) {
	req = req.Normalise()
	if err := req.Validate(); err != nil {
		return jenisobat.Type{}, err
	}
	t := jenisobat.Type{
		ID:          ulid.Make().String(),
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		CreatedAt:   r.store.now().UTC(),
	}
	if err := insertJenisObat(ctx, r.store.sqlDB, t); err != nil {
		return jenisobat.Type{}, err
	}
	return t, nil
}

// Update implements jenisobat.Service.
func (r *JenisObatStore) Update(ctx context.Context, id string, req jenisobat.UpdateRequest) (jenisobat.Type, error) {
	req = req.Normalise()
	if err := req.Validate(); err != nil {
		return jenisobat.Type{}, err
	}
	res, err := r.store.sqlDB.ExecContext(ctx,
		`UPDATE jenis_obat SET nama_jenis = ?, nama_key = ?, deskripsi = ?, is_active = ? WHERE id = ?`,
		req.Name, jenisobat.NameKey(req.Name), req.Description, boolToInt(req.Active), id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return jenisobat.Type{}, jenisobat.ErrDuplicate
		}
		return jenisobat.Type{}, fmt.Errorf("update jenis obat: %w", err)
	}
	if err := requireAffected(res, jenisobat.ErrNotFound); err != nil {
		return jenisobat.Type{}, err
	}
	return r.Get(ctx, id)
}

// Delete implements jenisobat.Service.
func (r *JenisObatStore) Delete(ctx context.Context, id string) error {
	res, err := r.store.sqlDB.ExecContext(ctx, "DELETE FROM jenis_obat WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete jenis obat: %w", err)
	}
	return requireAffected(res, jenisobat.ErrNotFound)
}

func (r *JenisObatStore) count(ctx context.Context) (int, error) {
	var n int
	if err := r.store.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM jenis_obat").Scan(&n); err != nil {
		return 0, fmt.Errorf("count jenis obat: %w", err)
	}
	return n, nil
}

func scanJenisObat(row rowScanner) (jenisobat.Type, error) {
	var (
		t         jenisobat.Type
		active    int
		createdAt int64
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &active, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jenisobat.Type{}, err
		}
		return jenisobat.Type{}, fmt.Errorf("scan jenis obat: %w", err)
	}
	t.Active = active == 1
	t.CreatedAt = fromMillis(createdAt)
	return t, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func insertJenisObat(ctx context.Context, db execer, t jenisobat.Type) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO jenis_obat (id, nama_jenis, nama_key, deskripsi, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, jenisobat.NameKey(t.Name), t.Description, boolToInt(t.Active), toMillis(t.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return jenisobat.ErrDuplicate
		}
		return fmt.Errorf("insert jenis obat: %w", err)
	}
	return nil
}

// requireAffected returns notFound when res touched no rows.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
