package jenisobat

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// StaticService keeps medicine types in memory for development and tests.
type StaticService struct {
	mu    sync.RWMutex
	types []Type
	now   func() time.Time
}

// NewStaticService returns a StaticService holding a copy of types.
func NewStaticService(types []Type) *StaticService {
	return &StaticService{
		types: append([]Type(nil), types...),
		now:   time.Now,
	}
}

// NewSeededStaticService returns a StaticService populated with DefaultTypes.
func NewSeededStaticService() *StaticService {
	svc := NewStaticService(nil)
	for _, req := range DefaultTypes() {
		_, _ = svc.Create(context.Background(), req)
	}
	return svc
}

// List implements Service.
func (s *StaticService) List(_ context.Context, query Query) ([]Type, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Type, 0, len(s.types))
	for _, t := range s.types {
		if query.Matches(t) {
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result, nil
}

// Create implements Service.
func (s *StaticService) Create(_ context.Context, req CreateRequest) (Type, error) {
	req = req.Normalise()
	if err := req.Validate(); err != nil {
		return Type{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(req.Name, "") {
		return Type{}, ErrDuplicate
	}

	t := Type{
		ID:          ulid.Make().String(),
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		CreatedAt:   s.now().UTC(),
	}
	s.types = append(s.types, t)
	return t, nil
}

// Get implements Service.
func (s *StaticService) Get(_ context.Context, id string) (Type, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(id); i >= 0 {
		return s.types[i], nil
	}
	return Type{}, ErrNotFound
}

// Update implements Service.
func (s *StaticService) Update(_ context.Context, id string, req UpdateRequest) (Type, error) {
	req = req.Normalise()
	if err := req.Validate(); err != nil {
		return Type{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Type{}, ErrNotFound
	}
	if s.nameTaken(req.Name, id) {
		return Type{}, ErrDuplicate
	}
	s.types[i].Name = req.Name
	s.types[i].Description = req.Description
	s.types[i].Active = req.Active
	return s.types[i], nil
}

// Delete implements Service.
func (s *StaticService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.types = append(s.types[:i], s.types[i+1:]...)
	return nil
}

func (s *StaticService) index(id string) int {
	for i := range s.types {
		if s.types[i].ID == id {
			return i
		}
	}
	return -1
}

// nameTaken reports whether a type other than exceptID already uses name.
func (s *StaticService) nameTaken(name, exceptID string) bool {
	key := NameKey(name)
	for _, existing := range s.types {
		if existing.ID != exceptID && NameKey(existing.Name) == key {
			return true
		}
	}
	return false
}
