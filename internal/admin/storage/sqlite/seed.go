package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"finitefield.org/apotek-admin/internal/admin/jenisobat"
	"finitefield.org/apotek-admin/internal/admin/qrcode"
	"finitefield.org/apotek-admin/internal/admin/resep"
	"finitefield.org/apotek-admin/internal/admin/supplier"
)

// Seed fills empty tables with the default medicine types and demo data.
// Tables that already hold rows are left untouched.
func (s *Store) Seed(ctx context.Context) error {
	if err := s.seedJenisObat(ctx); err != nil {
		return err
	}

	suppliers := s.Suppliers()
	if n, err := suppliers.count(ctx); err != nil {
		return err
	} else if n == 0 {
		for _, req := range supplier.SampleSuppliers() {
			if _, err := suppliers.Create(ctx, req); err != nil && !errors.Is(err, supplier.ErrDuplicate) {
				return fmt.Errorf("seed supplier %s: %w", req.Code, err)
			}
		}
	}

	prescriptions := s.Resep(nil)
	if n, err := prescriptions.count(ctx); err != nil {
		return err
	} else if n == 0 {
		for _, req := range resep.SamplePrescriptions(s.now()) {
			if _, err := prescriptions.Create(ctx, req); err != nil {
				return fmt.Errorf("seed resep %s: %w", req.MedicalRecordNo, err)
			}
		}
	}

	batches := s.QR()
	if n, err := batches.count(ctx); err != nil {
		return err
	} else if n == 0 {
		for _, b := range qrcode.SampleBatches(s.now()) {
			if _, err := batches.AddBatch(ctx, b); err != nil {
				return fmt.Errorf("seed batch %s: %w", b.Number, err)
			}
		}
	}
	return nil
}

func (s *Store) seedJenisObat(ctx context.Context) error {
	n, err := s.JenisObat().count(ctx)
	if err != nil || n > 0 {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed jenis obat: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now().UTC()
	for _, req := range jenisobat.DefaultTypes() {
		t := jenisobat.Type{
			ID:          ulid.Make().String(),
			Name:        req.Name,
			Description: req.Description,
			Active:      req.Active,
			CreatedAt:   now,
		}
		if err := insertJenisObat(ctx, tx, t); err != nil {
			return fmt.Errorf("seed jenis obat %s: %w", req.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed jenis obat: %w", err)
	}
	return nil
}
