package resep

import (
	"context"
	"errors"
	"strings"
	"time"

	"finitefield.org/apotek-admin/internal/admin/validation"
)

var (
	// ErrDuplicateNumber indicates the prescription number is already taken.
	ErrDuplicateNumber = errors.New("prescription number already exists")
	// ErrNotFound indicates no prescription has the requested ID.
	ErrNotFound = errors.New("prescription not found")
	// ErrInvalidTransition indicates the prescription's status does not allow the action.
	ErrInvalidTransition = errors.New("prescription status does not allow this action")
)

// DateLayout is the form and storage layout of prescription dates.
const DateLayout = "2006-01-02"

// Status tracks a prescription through dispensing.
type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status in workflow order.
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessed, StatusCompleted, StatusCancelled}
}

// Label returns the Indonesian display text for the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Menunggu"
	case StatusProcessed:
		return "Diproses"
	case StatusCompleted:
		return "Selesai"
	case StatusCancelled:
		return "Dibatalkan"
	default:
		return string(s)
	}
}

// Tone maps the status onto a badge tone.
func (s Status) Tone() string {
	switch s {
	case StatusPending:
		return "warning"
	case StatusCompleted:
		return "success"
	case StatusCancelled:
		return "danger"
	default:
		return ""
	}
}

// PatientType is the care setting the prescription was written in.
type PatientType string

const (
	PatientOutpatient PatientType = "rawat_jalan"
	PatientInpatient  PatientType = "rawat_inap"
	PatientEmergency  PatientType = "igd"
)

// PatientTypes lists the selectable care settings.
func PatientTypes() []PatientType {
	return []PatientType{PatientOutpatient, PatientInpatient, PatientEmergency}
}

// Label returns the Indonesian display text.
func (p PatientType) Label() string {
	switch p {
	case PatientOutpatient:
		return "Rawat Jalan"
	case PatientInpatient:
		return "Rawat Inap"
	case PatientEmergency:
		return "IGD"
	default:
		return string(p)
	}
}

// Payment is how the patient settles the prescription.
type Payment string

const (
	PaymentCash      Payment = "umum"
	PaymentBPJS      Payment = "bpjs"
	PaymentInsurance Payment = "asuransi"
)

// Payments lists the selectable payment methods.
func Payments() []Payment {
	return []Payment{PaymentCash, PaymentBPJS, PaymentInsurance}
}

// Label returns the Indonesian display text.
func (p Payment) Label() string {
	switch p {
	case PaymentCash:
		return "Umum"
	case PaymentBPJS:
		return "BPJS"
	case PaymentInsurance:
		return "Asuransi"
	default:
		return string(p)
	}
}

// Service manages prescriptions received from doctors.
type Service interface {
	// List returns prescriptions matching the query, newest first.
	List(ctx context.Context, query Query) ([]Prescription, error)
	// Get returns the prescription with id.
	Get(ctx context.Context, id string) (Prescription, error)
	// Create validates and stores a new pending prescription.
	Create(ctx context.Context, req CreateRequest) (Prescription, error)
	// Transition moves the prescription to the status action leads to.
	// It returns ErrInvalidTransition when the current status does not allow action.
	Transition(ctx context.Context, id string, req TransitionRequest) (Prescription, error)
}

// Action is a step in the dispensing workflow.
type Action string

const (
	// ActionProcess marks a pending prescription ready for dispensing.
	ActionProcess Action = "process"
	// ActionComplete marks a prescription as handed over.
	ActionComplete Action = "complete"
	// ActionCancel withdraws a prescription that has not been completed.
	ActionCancel Action = "cancel"
)

// TransitionRequest names the action and who performs it.
type TransitionRequest struct {
	Action Action
	By     string
}

// Target returns the status a reaches and whether a is allowed from from.
func (a Action) Target(from Status) (Status, bool) {
	switch a {
	case ActionProcess:
		return StatusProcessed, from == StatusPending
	case ActionComplete:
		return StatusCompleted, from == StatusPending || from == StatusProcessed
	case ActionCancel:
		return StatusCancelled, from == StatusPending || from == StatusProcessed
	default:
		return "", false
	}
}

// Message returns the success text shown after the action.
func (a Action) Message() string {
	switch a {
	case ActionProcess:
		return "Resep siap untuk dispensing."
	case ActionComplete:
		return "Resep selesai."
	case ActionCancel:
		return "Resep dibatalkan."
	default:
		return ""
	}
}

// Actions returns the actions allowed from s, in workflow order.
func (s Status) Actions() []Action {
	var out []Action
	for _, a := range []Action{ActionProcess, ActionComplete, ActionCancel} {
		if _, ok := a.Target(s); ok {
			out = append(out, a)
		}
	}
	return out
}

// Apply returns p after req, stamping the processing details when it is processed.
func (req TransitionRequest) Apply(p Prescription, now time.Time) (Prescription, error) {
	target, ok := req.Action.Target(p.Status)
	if !ok {
		return p, ErrInvalidTransition
	}
	p.Status = target
	switch req.Action {
	case ActionProcess:
		p.ProcessedBy = strings.TrimSpace(req.By)
		p.ProcessedAt = now.UTC()
	case ActionComplete:
		p.CompletedAt = now.UTC()
	}
	return p, nil
}

// Prescription is a doctor's order for a patient.
type Prescription struct {
	ID              string
	Number          string
	MedicalRecordNo string
	PatientName     string
	DoctorName      string
	Date            time.Time
	PatientType     PatientType
	Payment         Payment
	Status          Status
	Notes           string
	ProcessedBy     string
	ProcessedAt     time.Time
	CompletedAt     time.Time
	CreatedAt       time.Time
}

// Query filters the prescription list.
type Query struct {
	Search string
	Status Status
}

// Matches reports whether p satisfies the query.
func (q Query) Matches(p Prescription) bool {
	if q.Status != "" && p.Status != q.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{p.Number, p.MedicalRecordNo, p.PatientName, p.DoctorName} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// CreateRequest carries the form input for a new prescription. Date uses DateLayout.
type CreateRequest struct {
	Number          string
	MedicalRecordNo string
	PatientName     string
	DoctorName      string
	Date            string
	PatientType     PatientType
	Payment         Payment
	Notes           string
}

// Normalise trims fields and applies defaults for the care setting and payment.
func (r CreateRequest) Normalise() CreateRequest {
	r.Number = strings.ToUpper(strings.TrimSpace(r.Number))
	r.MedicalRecordNo = strings.TrimSpace(r.MedicalRecordNo)
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.DoctorName = strings.TrimSpace(r.DoctorName)
	r.Date = strings.TrimSpace(r.Date)
	r.Notes = strings.TrimSpace(r.Notes)
	if r.PatientType == "" {
		r.PatientType = PatientOutpatient
	}
	if r.Payment == "" {
		r.Payment = PaymentCash
	}
	return r
}

// Validate checks field constraints and returns the parsed prescription date.
func (r CreateRequest) Validate() (time.Time, error) {
	errs := validation.Errors{}
	errs.MaxLength("nomor_resep", r.Number, "Nomor resep", 50)
	errs.Required("nomor_rm", r.MedicalRecordNo, "Nomor RM")
	errs.MaxLength("nomor_rm", r.MedicalRecordNo, "Nomor RM", 50)
	errs.Required("nama_pasien", r.PatientName, "Nama pasien")
	errs.MaxLength("nama_pasien", r.PatientName, "Nama pasien", 200)
	errs.Required("nama_dokter", r.DoctorName, "Nama dokter")
	errs.MaxLength("nama_dokter", r.DoctorName, "Nama dokter", 200)
	errs.Required("tanggal_resep", r.Date, "Tanggal resep")

	var date time.Time
	if r.Date != "" {
		parsed, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			errs.Add("tanggal_resep", "Tanggal resep tidak valid.")
		}
		date = parsed
	}

	errs.OneOf("jenis_pasien", string(r.PatientType), "Jenis pasien",
		string(PatientOutpatient), string(PatientInpatient), string(PatientEmergency))
	errs.OneOf("cara_bayar", string(r.Payment), "Cara bayar",
		string(PaymentCash), string(PaymentBPJS), string(PaymentInsurance))
	return date, errs.Err()
}

// DuplicateFieldError maps ErrDuplicateNumber onto the form field it concerns.
func DuplicateFieldError() validation.Errors {
	return validation.Errors{"nomor_resep": "Nomor resep sudah digunakan."}
}

// SamplePrescriptions returns demo prescriptions dated relative to now.
func SamplePrescriptions(now time.Time) []CreateRequest {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(DateLayout)
	}
	return []CreateRequest{
		{
			MedicalRecordNo: "RM-000123",
			PatientName:     "Budi Hartono",
			DoctorName:      "dr. Sari Widya, Sp.PD",
			Date:            day(0),
			PatientType:     PatientOutpatient,
			Payment:         PaymentBPJS,
		},
		{
			MedicalRecordNo: "RM-000456",
			PatientName:     "Siti Aminah",
			DoctorName:      "dr. Andi Pratama",
			Date:            day(-1),
			PatientType:     PatientEmergency,
			Payment:         PaymentCash,
			Notes:           "Alergi penisilin.",
		},
		{
			MedicalRecordNo: "RM-000789",
			PatientName:     "Joko Susilo",
			DoctorName:      "dr. Maya Kusuma, Sp.A",
			Date:            day(-3),
			PatientType:     PatientInpatient,
			Payment:         PaymentInsurance,
		},
	}
}
