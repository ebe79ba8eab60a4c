package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"finitefield.org/apotek-admin/internal/admin/qrcode"
)

const (
	batchColumns   = "id, kode_qr, nomor_batch, nama_obat, tanggal_expired, stok_tersedia"
	scanLogColumns = `id, kode_qr_scanned, metode_scan, hasil_scan, pesan_error, nomor_batch,
	nama_obat, scanned_by, ip_address, waktu_scan`
)

// QRStore implements qrcode.Service on top of Store.
type QRStore struct {
	store *Store
}

// QR returns the batch and scan log repository.
func (s *Store) QR() *QRStore {
	return &QRStore{store: s}
}

var _ qrcode.Service = (*QRStore)(nil)

func scanBatch(row rowScanner) (qrcode.Batch, error) {
	var (
		b       qrcode.Batch
		expires string
	)
	if err := row.Scan(&b.ID, &b.Code, &b.Number, &b.MedicineName, &expires, &b.Stock); err != nil {
		return qrcode.Batch{}, err
	}
	parsed, err := time.Parse(qrcode.DateLayout, expires)
	if err != nil {
		return qrcode.Batch{}, fmt.Errorf("parse batch expiry %q: %w", expires, err)
	}
	b.ExpiresOn = parsed
	return b, nil
}

// Batches implements qrcode.Service.
func (r *QRStore) Batches(ctx context.Context) ([]qrcode.Batch, error) {
	rows, err := r.store.sqlDB.QueryContext(ctx,
		"SELECT "+batchColumns+" FROM batch_obat ORDER BY tanggal_expired, nomor_batch")
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var result []qrcode.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return result, nil
}

// Batch implements qrcode.Service.
func (r *QRStore) Batch(ctx context.Context, code string) (qrcode.Batch, error) {
	row := r.store.sqlDB.QueryRowContext(ctx,
		"SELECT "+batchColumns+" FROM batch_obat WHERE kode_qr = ?", strings.TrimSpace(code))
	b, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return qrcode.Batch{}, qrcode.ErrBatchNotFound
		}
		return qrcode.Batch{}, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// AddBatch stores a batch, assigning an ID and QR code when missing.
func (r *QRStore) AddBatch(ctx context.Context, b qrcode.Batch) (qrcode.Batch, error) {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	if b.Code == "" {
		b.Code = qrcode.GenerateBatchCode(r.store.now())
	}
	_, err := r.store.sqlDB.ExecContext(ctx,
		"INSERT INTO batch_obat ("+batchColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		b.ID, b.Code, b.Number, b.MedicineName, b.ExpiresOn.Format(qrcode.DateLayout), b.Stock,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return qrcode.Batch{}, fmt.Errorf("batch code %q already exists", b.Code)
		}
		return qrcode.Batch{}, fmt.Errorf("insert batch: %w", err)
	}
	return b, nil
}

// Scan implements qrcode.Service. Every attempt is logged, including unknown codes.
func (r *QRStore) Scan(ctx context.Context, req qrcode.ScanRequest) (qrcode.ScanResult, error) {
	req = req.Normalise()
	if err := req.Validate(); err != nil {
		return qrcode.ScanResult{}, err
	}

	now := r.store.now()
	var batch *qrcode.Batch
	found, err := r.Batch(ctx, req.Code)
	switch {
	case err == nil:
		batch = &found
	case errors.Is(err, qrcode.ErrBatchNotFound):
	default:
		return qrcode.ScanResult{}, err
	}
	result, outcomeErr := qrcode.Outcome(batch, now)

	entry := qrcode.NewScanLog(ulid.Make().String(), req, result, batch, now)
	_, err = r.store.sqlDB.ExecContext(ctx,
		"INSERT INTO qr_scan_log ("+scanLogColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Code, string(entry.Method), string(entry.Result), entry.Message, entry.BatchNumber,
		entry.MedicineName, entry.ScannedBy, entry.RemoteIP, toMillis(entry.ScannedAt),
	)
	if err != nil {
		return qrcode.ScanResult{}, fmt.Errorf("insert scan log: %w", err)
	}

	return qrcode.ScanResult{
		Result:  result,
		Message: result.Message(),
		Batch:   batch,
		Log:     entry,
	}, outcomeErr
}

// Logs implements qrcode.Service.
func (r *QRStore) Logs(ctx context.Context, query qrcode.LogQuery) ([]qrcode.ScanLog, error) {
	var (
		clauses []string
		args    []any
	)
	if query.Result != "" {
		clauses = append(clauses, "hasil_scan = ?")
		args = append(args, string(query.Result))
	}
	if !query.Since.IsZero() {
		clauses = append(clauses, "waktu_scan >= ?")
		args = append(args, toMillis(query.Since))
	}

	stmt := "SELECT " + scanLogColumns + " FROM qr_scan_log"
	if len(clauses) > 0 {
		stmt += " WHERE " + strings.Join(clauses, " AND ")
	}
	stmt += " ORDER BY waktu_scan DESC, id DESC"
	if limit := query.EffectiveLimit(); limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.store.sqlDB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list scan logs: %w", err)
	}
	defer rows.Close()

	var result []qrcode.ScanLog
	for rows.Next() {
		var (
			l              qrcode.ScanLog
			method, status string
			scannedAt      int64
		)
		if err := rows.Scan(&l.ID, &l.Code, &method, &status, &l.Message, &l.BatchNumber,
			&l.MedicineName, &l.ScannedBy, &l.RemoteIP, &scannedAt); err != nil {
			return nil, fmt.Errorf("scan scan log: %w", err)
		}
		l.Method = qrcode.Method(method)
		l.Result = qrcode.Result(status)
		l.ScannedAt = fromMillis(scannedAt)
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scan logs: %w", err)
	}
	return result, nil
}

func (r *QRStore) count(ctx context.Context) (int, error) {
	var n int
	if err := r.store.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM batch_obat").Scan(&n); err != nil {
		return 0, fmt.Errorf("count batches: %w", err)
	}
	return n, nil
}
