package qrcode

import (
	"context"
	"errors"
	"strings"
	"time"

	"finitefield.org/apotek-admin/internal/admin/validation"
)

var (
	// ErrBatchNotFound indicates no batch carries the scanned code.
	ErrBatchNotFound = errors.New("qr code not found")
	// ErrBatchExpired indicates the scanned batch has reached its expiry date.
	ErrBatchExpired = errors.New("batch expired")
)

// DateLayout is the storage layout of batch expiry dates.
const DateLayout = "2006-01-02"

// DefaultLogLimit caps the scan history when no limit is requested.
const DefaultLogLimit = 15

// Method is how the code was captured.
type Method string

const (
	MethodCamera  Method = "camera"
	MethodScanner Method = "scanner"
)

// Label returns the Indonesian display text.
func (m Method) Label() string {
	switch m {
	case MethodCamera:
		return "Kamera"
	case MethodScanner:
		return "Scanner"
	default:
		return string(m)
	}
}

// Result is the outcome recorded for a scan.
type Result string

const (
	ResultSuccess  Result = "success"
	ResultNotFound Result = "not_found"
	ResultExpired  Result = "expired"
	ResultError    Result = "error"
)

// Results lists every scan outcome.
func Results() []Result {
	return []Result{ResultSuccess, ResultNotFound, ResultExpired, ResultError}
}

// Label returns the Indonesian display text.
func (r Result) Label() string {
	switch r {
	case ResultSuccess:
		return "Berhasil"
	case ResultNotFound:
		return "Tidak ditemukan"
	case ResultExpired:
		return "Kadaluarsa"
	case ResultError:
		return "Gagal"
	default:
		return string(r)
	}
}

// Tone maps the result onto a badge tone.
func (r Result) Tone() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultExpired:
		return "warning"
	default:
		return "danger"
	}
}

// Message returns the user-facing outcome text.
func (r Result) Message() string {
	switch r {
	case ResultSuccess:
		return "QR Code berhasil dipindai"
	case ResultNotFound:
		return "QR Code tidak ditemukan"
	case ResultExpired:
		return "Batch sudah kadaluarsa"
	default:
		return "QR Code gagal diproses"
	}
}

// Service exposes batch QR codes and the scan workflow.
type Service interface {
	// Batches returns batches that carry a QR code, soonest expiry first.
	Batches(ctx context.Context) ([]Batch, error)
	// Batch returns the batch carrying code.
	Batch(ctx context.Context, code string) (Batch, error)
	// Scan resolves a scanned code and records the attempt. The returned result is
	// populated even when err is ErrBatchNotFound or ErrBatchExpired.
	Scan(ctx context.Context, req ScanRequest) (ScanResult, error)
	// Logs returns recorded scans, newest first.
	Logs(ctx context.Context, query LogQuery) ([]ScanLog, error)
}

// Batch is a received lot of a medicine that carries a QR label.
type Batch struct {
	ID           string
	Code         string
	Number       string
	MedicineName string
	ExpiresOn    time.Time
	Stock        int
}

// Expired reports whether the expiry date is on or before the calendar day of now.
// A batch is no longer dispensable on its expiry day.
func (b Batch) Expired(now time.Time) bool {
	return b.ExpiresOn.Format(DateLayout) <= now.Format(DateLayout)
}

// ExpiringSoon reports whether the batch expires within days of now but has not expired yet.
func (b Batch) ExpiringSoon(now time.Time, days int) bool {
	if b.Expired(now) {
		return false
	}
	return b.ExpiresOn.Format(DateLayout) <= now.AddDate(0, 0, days).Format(DateLayout)
}

// ScanLog records one scan attempt.
type ScanLog struct {
	ID           string
	Code         string
	Method       Method
	Result       Result
	Message      string
	BatchNumber  string
	MedicineName string
	ScannedBy    string
	RemoteIP     string
	ScannedAt    time.Time
}

// ScanRequest carries a scanned code.
type ScanRequest struct {
	Code      string
	Method    Method
	ScannedBy string
	RemoteIP  string
}

// Normalise trims the code and defaults the method to camera.
func (r ScanRequest) Normalise() ScanRequest {
	r.Code = strings.TrimSpace(r.Code)
	r.ScannedBy = strings.TrimSpace(r.ScannedBy)
	if r.Method == "" {
		r.Method = MethodCamera
	}
	return r
}

// Validate checks the code is present and the method known.
func (r ScanRequest) Validate() error {
	errs := validation.Errors{}
	errs.Required("kode_qr", r.Code, "Kode QR")
	errs.MaxLength("kode_qr", r.Code, "Kode QR", 255)
	errs.OneOf("metode", string(r.Method), "Metode scan", string(MethodCamera), string(MethodScanner))
	return errs.Err()
}

// ScanResult is the outcome of a scan.
type ScanResult struct {
	Result  Result
	Message string
	Batch   *Batch
	Log     ScanLog
}

// LogQuery filters the scan history.
type LogQuery struct {
	Result Result
	Since  time.Time
	Limit  int
}

// Matches reports whether l satisfies the query filters, ignoring Limit.
func (q LogQuery) Matches(l ScanLog) bool {
	if q.Result != "" && l.Result != q.Result {
		return false
	}
	if !q.Since.IsZero() && l.ScannedAt.Before(q.Since) {
		return false
	}
	return true
}

// EffectiveLimit returns Limit or DefaultLogLimit when unset. A negative limit means unbounded.
func (q LogQuery) EffectiveLimit() int {
	if q.Limit == 0 {
		return DefaultLogLimit
	}
	return q.Limit
}

// Outcome classifies a lookup into a scan result. batch is nil when the code is unknown.
func Outcome(batch *Batch, now time.Time) (Result, error) {
	switch {
	case batch == nil:
		return ResultNotFound, ErrBatchNotFound
	case batch.Expired(now):
		return ResultExpired, ErrBatchExpired
	default:
		return ResultSuccess, nil
	}
}

// NewScanLog builds the log entry for a scan outcome.
func NewScanLog(id string, req ScanRequest, result Result, batch *Batch, now time.Time) ScanLog {
	entry := ScanLog{
		ID:        id,
		Code:      req.Code,
		Method:    req.Method,
		Result:    result,
		ScannedBy: req.ScannedBy,
		RemoteIP:  req.RemoteIP,
		ScannedAt: now.UTC(),
	}
	if result != ResultSuccess {
		entry.Message = result.Message()
	}
	if batch != nil {
		entry.BatchNumber = batch.Number
		entry.MedicineName = batch.MedicineName
	}
	return entry
}

// SampleBatches returns demo batches relative to now, including one already expired.
func SampleBatches(now time.Time) []Batch {
	date := func(months int) time.Time {
		d := now.AddDate(0, months, 0)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return []Batch{
		{Code: GenerateBatchCode(now), Number: "PCT2401A", MedicineName: "Paracetamol 500 mg", ExpiresOn: date(18), Stock: 1200},
		{Code: GenerateBatchCode(now), Number: "AMX2312B", MedicineName: "Amoxicillin 500 mg", ExpiresOn: date(1), Stock: 340},
		{Code: GenerateBatchCode(now), Number: "OBH2206C", MedicineName: "OBH Sirup 100 ml", ExpiresOn: date(-2), Stock: 15},
	}
}
