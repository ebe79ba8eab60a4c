package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finitefield.org/apotek-admin/internal/admin/jenisobat"
	"finitefield.org/apotek-admin/internal/admin/qrcode"
	"finitefield.org/apotek-admin/internal/admin/resep"
	"finitefield.org/apotek-admin/internal/admin/supplier"
)

// ErrNotConfigured indicates the dashboard service dependency has not been provided.
var ErrNotConfigured = errors.New("dashboard service not configured")

// expiringWindowDays is how far ahead a batch counts as expiring soon.
const expiringWindowDays = 30

// Service exposes the dashboard summary.
type Service interface {
	Summary(ctx context.Context) (Summary, error)
}

// Summary holds the headline counts shown on the dashboard.
type Summary struct {
	MedicineTypes   int
	Suppliers       int
	ActiveSuppliers int
	PendingResep    int
	ScansToday      int
	ExpiringBatches int
	ExpiredBatches  int
	RecentScans     []qrcode.ScanLog
	GeneratedAt     time.Time
}

// AggregateService computes the summary from the domain services.
type AggregateService struct {
	jenisObat jenisobat.Service
	suppliers supplier.Service
	resep     resep.Service
	qr        qrcode.Service
	now       func() time.Time
}

// NewAggregateService wires the domain services the summary reads from.
func NewAggregateService(j jenisobat.Service, s supplier.Service, r resep.Service, q qrcode.Service) *AggregateService {
	return &AggregateService{jenisObat: j, suppliers: s, resep: r, qr: q, now: time.Now}
}

// WithClock overrides the clock and returns s.
func (s *AggregateService) WithClock(now func() time.Time) *AggregateService {
	if now != nil {
		s.now = now
	}
	return s
}

// Summary implements Service.
func (s *AggregateService) Summary(ctx context.Context) (Summary, error) {
	if s == nil || s.jenisObat == nil || s.suppliers == nil || s.resep == nil || s.qr == nil {
		return Summary{}, ErrNotConfigured
	}
	now := s.now()
	summary := Summary{GeneratedAt: now}

	types, err := s.jenisObat.List(ctx, jenisobat.Query{})
	if err != nil {
		return Summary{}, fmt.Errorf("count medicine types: %w", err)
	}
	summary.MedicineTypes = len(types)

	suppliers, err := s.suppliers.List(ctx, supplier.Query{})
	if err != nil {
		return Summary{}, fmt.Errorf("count suppliers: %w", err)
	}
	summary.Suppliers = len(suppliers)
	for _, sup := range suppliers {
		if sup.Status == supplier.StatusActive {
			summary.ActiveSuppliers++
		}
	}

	pending, err := s.resep.List(ctx, resep.Query{Status: resep.StatusPending})
	if err != nil {
		return Summary{}, fmt.Errorf("count pending prescriptions: %w", err)
	}
	summary.PendingResep = len(pending)

	batches, err := s.qr.Batches(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list batches: %w", err)
	}
	for _, b := range batches {
		switch {
		case b.Expired(now):
			summary.ExpiredBatches++
		case b.ExpiringSoon(now, expiringWindowDays):
			summary.ExpiringBatches++
		}
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.qr.Logs(ctx, qrcode.LogQuery{Since: startOfDay, Limit: -1})
	if err != nil {
		return Summary{}, fmt.Errorf("count scans: %w", err)
	}
	summary.ScansToday = len(today)
	if len(today) > 5 {
		today = today[:5]
	}
	summary.RecentScans = today

	return summary, nil
}
