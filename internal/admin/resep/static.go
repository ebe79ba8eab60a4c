package resep

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const maxNumberAttempts = 5

// StaticService keeps prescriptions in memory for development and tests.
type StaticService struct {
	mu            sync.RWMutex
	prescriptions []Prescription
	now           func() time.Time
	numbers       NumberGenerator
}

// StaticOption customises a StaticService.
type StaticOption func(*StaticService)

// WithClock overrides the clock used for creation timestamps and numbers.
func WithClock(now func() time.Time) StaticOption {
	return func(s *StaticService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNumberGenerator overrides prescription number generation.
func WithNumberGenerator(gen NumberGenerator) StaticOption {
	return func(s *StaticService) {
		if gen != nil {
			s.numbers = gen
		}
	}
}

// NewStaticService returns a StaticService holding a copy of prescriptions.
func NewStaticService(prescriptions []Prescription, opts ...StaticOption) *StaticService {
	svc := &StaticService{
		prescriptions: append([]Prescription(nil), prescriptions...),
		now:           time.Now,
		numbers:       GenerateNumber,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// NewSeededStaticService returns a StaticService populated with SamplePrescriptions.
func NewSeededStaticService() *StaticService {
	svc := NewStaticService(nil)
	for _, req := range SamplePrescriptions(svc.now()) {
		_, _ = svc.Create(context.Background(), req)
	}
	return svc
}

// List implements Service.
func (s *StaticService) List(_ context.Context, query Query) ([]Prescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Prescription, 0, len(s.prescriptions))
	for _, p := range s.prescriptions {
		if query.Matches(p) {
			result = append(result, p)
		}
	}
	SortNewestFirst(result)
	return result, nil
}

// Create implements Service.
func (s *StaticService) Create(_ context.Context, req CreateRequest) (Prescription, error) {
	req = req.Normalise()
	date, err := req.Validate()
	if err != nil {
		return Prescription{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	number := req.Number
	if number == "" {
		for attempt := 0; attempt < maxNumberAttempts; attempt++ {
			number = s.numbers(now)
			if !s.numberTaken(number) {
				break
			}
		}
	}
	if s.numberTaken(number) {
		return Prescription{}, ErrDuplicateNumber
	}

	p := Prescription{
		ID:              ulid.Make().String(),
		Number:          number,
		MedicalRecordNo: req.MedicalRecordNo,
		PatientName:     req.PatientName,
		DoctorName:      req.DoctorName,
		Date:            date,
		PatientType:     req.PatientType,
		Payment:         req.Payment,
		Status:          StatusPending,
		Notes:           req.Notes,
		CreatedAt:       now.UTC(),
	}
	s.prescriptions = append(s.prescriptions, p)
	return p, nil
}

func (s *StaticService) numberTaken(number string) bool {
	for _, p := range s.prescriptions {
		if p.Number == number {
			return true
		}
	}
	return false
}

// SortNewestFirst orders by prescription date, then creation time, newest first.
func SortNewestFirst(list []Prescription) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// Get implements Service.
func (s *StaticService) Get(_ context.Context, id string) (Prescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.prescriptions {
		if p.ID == id {
			return p, nil
		}
	}
	return Prescription{}, ErrNotFound
}

// Transition implements Service.
func (s *StaticService) Transition(_ context.Context, id string, req TransitionRequest) (Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.prescriptions {
		if s.prescriptions[i].ID != id {
			continue
		}
		next, err := req.Apply(s.prescriptions[i], s.now())
		if err != nil {
			return s.prescriptions[i], err
		}
		s.prescriptions[i] = next
		return next, nil
	}
	return Prescription{}, ErrNotFound
}
