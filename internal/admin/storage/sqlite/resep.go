package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"finitefield.org/apotek-admin/internal/admin/resep"
)

const (
	resepColumns = `id, nomor_resep, nomor_rm, nama_pasien, nama_dokter, tanggal_resep,
	jenis_pasien, cara_bayar, status, catatan, processed_by, processed_at, completed_at, created_at`
	maxNumberAttempts = 5
)

// ResepStore implements resep.Service on top of Store.
type ResepStore struct {
	store   *Store
	numbers resep.NumberGenerator
}

// Resep returns the prescription repository. A nil generator uses resep.GenerateNumber.
func (s *Store) Resep(numbers resep.NumberGenerator) *ResepStore {
	if numbers == nil {
		numbers = resep.GenerateNumber
	}
	return &ResepStore{store: s, numbers: numbers}
}

var _ resep.Service = (*ResepStore)(nil)

// List implements resep.Service.
func (r *ResepStore) List(ctx context.Context, query resep.Query) ([]resep.Prescription, error) {
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
		for _, col := range []string{"nomor_resep", "nomor_rm", "nama_pasien", "nama_dokter"} {
			ors = append(ors, col+` LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	stmt := "SELECT " + resepColumns + " FROM resep"
	if len(clauses) > 0 {
		stmt += " WHERE " + strings.Join(clauses, " AND ")
	}
	stmt += " ORDER BY tanggal_resep DESC, created_at DESC"

	rows, err := r.store.sqlDB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list resep: %w", err)
	}
	defer rows.Close()

	var result []resep.Prescription
	for rows.Next() {
		p, err := scanResep(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resep: %w", err)
	}
	return result, nil
}

// Get implements resep.Service.
func (r *ResepStore) Get(ctx context.Context, id string) (resep.Prescription, error) {
	row := r.store.sqlDB.QueryRowContext(ctx, "SELECT "+resepColumns+" FROM resep WHERE id = ?", id)
	p, err := scanResep(row)
	if errors.Is(err, sql.ErrNoRows) {
		return resep.Prescription{}, resep.ErrNotFound
	}
	return p, err
}

// Transition implements resep.Service. The update is guarded by the status
// that was read, so a concurrent change yields resep.ErrInvalidTransition.
func (r *ResepStore) Transition(ctx context.Context, id string, req resep.TransitionRequest) (resep.Prescription, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return resep.Prescription{}, err
	}
	next, err := req.Apply(current, r.store.now())
	if err != nil {
		return current, err
	}
	res, err := r.store.sqlDB.ExecContext(ctx,
		`UPDATE resep SET status = ?, processed_by = ?, processed_at = ?, completed_at = ? WHERE id = ? AND status = ?`,
		string(next.Status), next.ProcessedBy, nullableMillis(next.ProcessedAt), nullableMillis(next.CompletedAt),
		id, string(current.Status),
	)
	if err != nil {
		return resep.Prescription{}, fmt.Errorf("update resep status: %w", err)
	}
	if err := requireAffected(res, resep.ErrInvalidTransition); err != nil {
		return current, err
	}
	return next, nil
}

// Create implements resep.Service. Generated numbers are retried on collision;
// an explicit number that collides returns resep.ErrDuplicateNumber.
func (r *ResepStore) Create(ctx context.Context, req resep.CreateRequest) (resep.Prescription, error) {
	req = req.Normalise()
	date, err := req.Validate()
	if err != nil {
		return resep.Prescription{}, err
	}

	now := r.store.now()
	p := resep.Prescription{
		MedicalRecordNo: req.MedicalRecordNo,
		PatientName:     req.PatientName,
		DoctorName:      req.DoctorName,
		Date:            date,
		PatientType:     req.PatientType,
		Payment:         req.Payment,
		Status:          resep.StatusPending,
		Notes:           req.Notes,
		CreatedAt:       now.UTC(),
	}

	attempts := 1
	if req.Number == "" {
		attempts = maxNumberAttempts
	}
	for attempt := 0; attempt < attempts; attempt++ {
		p.ID = ulid.Make().String()
		p.Number = req.Number
		if p.Number == "" {
			p.Number = r.numbers(now)
		}
		err = r.insert(ctx, p)
		if !errors.Is(err, resep.ErrDuplicateNumber) {
			break
		}
	}
	if err != nil {
		return resep.Prescription{}, err
	}
	return p, nil
}

func (r *ResepStore) insert(ctx context.Context, p resep.Prescription) error {
	_, err := r.store.sqlDB.ExecContext(ctx,
		"INSERT INTO resep ("+resepColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.Number, p.MedicalRecordNo, p.PatientName, p.DoctorName, p.Date.Format(resep.DateLayout),
		string(p.PatientType), string(p.Payment), string(p.Status), p.Notes,
		p.ProcessedBy, nullableMillis(p.ProcessedAt), nullableMillis(p.CompletedAt), toMillis(p.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return resep.ErrDuplicateNumber
		}
		return fmt.Errorf("insert resep: %w", err)
	}
	return nil
}

func (r *ResepStore) count(ctx context.Context) (int, error) {
	var n int
	if err := r.store.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM resep").Scan(&n); err != nil {
		return 0, fmt.Errorf("count resep: %w", err)
	}
	return n, nil
}

func scanResep(row rowScanner) (resep.Prescription, error) {
	var (
		p                              resep.Prescription
		date, patientType, pay, status string
		processedAt, completedAt       sql.NullInt64
		createdAt                      int64
	)
	if err := row.Scan(&p.ID, &p.Number, &p.MedicalRecordNo, &p.PatientName, &p.DoctorName, &date,
		&patientType, &pay, &status, &p.Notes, &p.ProcessedBy, &processedAt, &completedAt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resep.Prescription{}, err
		}
		return resep.Prescription{}, fmt.Errorf("scan resep: %w", err)
	}
	parsed, err := time.Parse(resep.DateLayout, date)
	if err != nil {
		return resep.Prescription{}, fmt.Errorf("parse resep date %q: %w", date, err)
	}
	p.Date = parsed
	p.PatientType = resep.PatientType(patientType)
	p.Payment = resep.Payment(pay)
	p.Status = resep.Status(status)
	if processedAt.Valid {
		p.ProcessedAt = fromMillis(processedAt.Int64)
	}
	if completedAt.Valid {
		p.CompletedAt = fromMillis(completedAt.Int64)
	}
	p.CreatedAt = fromMillis(createdAt)
	return p, nil
}

// nullableMillis stores the zero time as NULL.
func nullableMillis(value time.Time) sql.NullInt64 {
	if value.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(value), Valid: true}
}
