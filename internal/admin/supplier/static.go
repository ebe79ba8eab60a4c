package supplier

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// StaticService keeps suppliers in memory for development and tests.
type StaticService struct {
	mu        sync.RWMutex
	suppliers []Supplier
	now       func() time.Time
}

// NewStaticService returns a StaticService holding a copy of suppliers.
func NewStaticService(suppliers []Supplier) *StaticService {
	return &StaticService{
		suppliers: append([]Supplier(nil), suppliers...),
		now:       time.Now,
	}
}

// NewSeededStaticService returns a StaticService populated with SampleSuppliers.
func NewSeededStaticService() *StaticService {
	svc := NewStaticService(nil)
	for _, req := range SampleSuppliers() {
		_, _ = svc.Create(context.Background(), req)
	}
	return svc
}

// List implements Service.
func (s *StaticService) List(_ context.Context, query Query) ([]Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Supplier, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		if query.Matches(sup) {
			result = append(result, sup)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result, nil
}

// Create implements Service.
func (s *StaticService) Create(_ context.Context, req CreateRequest) (Supplier, error) {
	req = req.Normalise()
	if err := req.Validate(); err != nil {
		return Supplier{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.codeTaken(req.Code, "") {
		return Supplier{}, ErrDuplicate
	}

	sup := req.Apply(Supplier{ID: ulid.Make().String(), CreatedAt: s.now().UTC()})
	s.suppliers = append(s.suppliers, sup)
	return sup, nil
}

// Get implements Service.
func (s *StaticService) Get(_ context.Context, id string) (Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(id); i >= 0 {
		return s.suppliers[i], nil
	}
	return Supplier{}, ErrNotFound
}

// Update implements Service.
func (s *StaticService) Update(_ context.Context, id string, req UpdateRequest) (Supplier, error) {
	req = req.Normalise()
	if err := req.Validate(); err != nil {
		return Supplier{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Supplier{}, ErrNotFound
	}
	if s.codeTaken(req.Code, id) {
		return Supplier{}, ErrDuplicate
	}
	s.suppliers[i] = req.Apply(s.suppliers[i])
	return s.suppliers[i], nil
}

// ToggleStatus implements Service.
func (s *StaticService) ToggleStatus(_ context.Context, id string) (Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Supplier{}, ErrNotFound
	}
	s.suppliers[i].Status = s.suppliers[i].Status.Toggled()
	return s.suppliers[i], nil
}

// Delete implements Service.
func (s *StaticService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.suppliers = append(s.suppliers[:i], s.suppliers[i+1:]...)
	return nil
}

func (s *StaticService) index(id string) int {
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *StaticService) codeTaken(code, exceptID string) bool {
	key := CodeKey(code)
	for _, existing := range s.suppliers {
		if existing.ID != exceptID && CodeKey(existing.Code) == key {
			return true
		}
	}
	return false
}
