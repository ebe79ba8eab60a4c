package qrcode

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// StaticService keeps batches and scan history in memory for development and tests.
type StaticService struct {
	mu      sync.RWMutex
	batches []Batch
	logs    []ScanLog
	now     func() time.Time
}

// NewStaticService returns a StaticService holding copies of batches and logs.
func NewStaticService(batches []Batch, logs []ScanLog) *StaticService {
	svc := &StaticService{
		batches: append([]Batch(nil), batches...),
		logs:    append([]ScanLog(nil), logs...),
		now:     time.Now,
	}
	for i := range svc.batches {
		if svc.batches[i].ID == "" {
			svc.batches[i].ID = ulid.Make().String()
		}
	}
	return svc
}

// NewSeededStaticService returns a StaticService populated with SampleBatches.
func NewSeededStaticService() *StaticService {
	return NewStaticService(SampleBatches(time.Now()), nil)
}

// WithClock overrides the clock and returns s.
func (s *StaticService) WithClock(now func() time.Time) *StaticService {
	if now != nil {
		s.now = now
	}
	return s
}

// Batches implements Service.
func (s *StaticService) Batches(_ context.Context) ([]Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := append([]Batch(nil), s.batches...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ExpiresOn.Before(result[j].ExpiresOn)
	})
	return result, nil
}

// Batch implements Service.
func (s *StaticService) Batch(_ context.Context, code string) (Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b := s.find(code); b != nil {
		return *b, nil
	}
	return Batch{}, ErrBatchNotFound
}

// Scan implements Service.
func (s *StaticService) Scan(_ context.Context, req ScanRequest) (ScanResult, error) {
	req = req.Normalise()
	if err := req.Validate(); err != nil {
		return ScanResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var batch *Batch
	if found := s.find(req.Code); found != nil {
		copied := *found
		batch = &copied
	}
	result, outcomeErr := Outcome(batch, now)

	entry := NewScanLog(ulid.Make().String(), req, result, batch, now)
	s.logs = append(s.logs, entry)

	return ScanResult{
		Result:  result,
		Message: result.Message(),
		Batch:   batch,
		Log:     entry,
	}, outcomeErr
}

// Logs implements Service.
func (s *StaticService) Logs(_ context.Context, query LogQuery) ([]ScanLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ScanLog, 0, len(s.logs))
	for i := len(s.logs) - 1; i >= 0; i-- {
		if query.Matches(s.logs[i]) {
			result = append(result, s.logs[i])
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ScannedAt.After(result[j].ScannedAt)
	})
	if limit := query.EffectiveLimit(); limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *StaticService) find(code string) *Batch {
	for i := range s.batches {
		if s.batches[i].Code == code {
			return &s.batches[i]
		}
	}
	return nil
}
