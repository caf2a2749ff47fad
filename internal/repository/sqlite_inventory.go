package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inventra/inventra-backend/internal/models"
)

// EquipmentRepository implementation

func (r *SQLiteRepository) ListEquipment(ctx context.Context) ([]models.Equipment, error) {
	equipment := []models.Equipment{}
	query := `SELECT * FROM equipment ORDER BY created_at DESC`

	err := instrumentQuery("equipment_list", func() error {
		return r.db.SelectContext(ctx, &equipment, query)
	})
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return equipment, nil
}

func (r *SQLiteRepository) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	var e models.Equipment
	err := r.db.GetContext(ctx, &e, `SELECT * FROM equipment WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get equipment %s: %w", id, err)
	}
	return &e, nil
}

func (r *SQLiteRepository) CreateEquipment(ctx context.Context, e *models.Equipment) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = models.EquipmentInStock
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
		INSERT INTO equipment (id, entity_id, assigned_to, team_id, name, category, brand, model,
			serial_number, status, purchase_date, warranty_until, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	err := instrumentQuery("equipment_create", func() error {
		_, err := r.db.ExecContext(ctx, query,
			e.ID, e.EntityID, e.AssignedTo, e.TeamID, e.Name, e.Category, e.Brand, e.Model,
			e.SerialNumber, e.Status, e.PurchaseDate, e.WarrantyUntil, e.Notes, e.CreatedAt, e.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("create equipment: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateEquipment(ctx context.Context, e *models.Equipment) error {
	e.UpdatedAt = time.Now()
	query := `
		UPDATE equipment
		SET entity_id = ?, assigned_to = ?, team_id = ?, name = ?, category = ?, brand = ?,
		    model = ?, serial_number = ?, status = ?, purchase_date = ?, warranty_until = ?,
		    notes = ?, updated_at = ?
		WHERE id = ?
	`
	err := instrumentQuery("equipment_update", func() error {
		_, err := r.db.ExecContext(ctx, query,
			e.EntityID, e.AssignedTo, e.TeamID, e.Name, e.Category, e.Brand,
			e.Model, e.SerialNumber, e.Status, e.PurchaseDate, e.WarrantyUntil,
			e.Notes, e.UpdatedAt, e.ID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("update equipment %s: %w", e.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteEquipment(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete equipment %s: %w", id, err)
	}
	return nil
}

// LicenseRepository implementation

func (r *SQLiteRepository) ListLicenses(ctx context.Context) ([]models.License, error) {
	licenses := []models.License{}
	err := instrumentQuery("license_list", func() error {
		return r.db.SelectContext(ctx, &licenses, `SELECT * FROM licenses ORDER BY created_at DESC`)
	})
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	return licenses, nil
}

func (r *SQLiteRepository) GetLicense(ctx context.Context, id string) (*models.License, error) {
	var l models.License
	err := r.db.GetContext(ctx, &l, `SELECT * FROM licenses WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get license %s: %w", id, err)
	}
	return &l, nil
}

func (r *SQLiteRepository) CreateLicense(ctx context.Context, l *models.License) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Seats <= 0 {
		l.Seats = 1
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	query := `
		INSERT INTO licenses (id, entity_id, name, vendor, license_key, seats, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	err := instrumentQuery("license_create", func() error {
		_, err := r.db.ExecContext(ctx, query,
			l.ID, l.EntityID, l.Name, l.Vendor, l.LicenseKey, l.Seats, l.ExpiresAt, l.CreatedAt, l.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("create license: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateLicense(ctx context.Context, l *models.License) error {
	l.UpdatedAt = time.Now()
	query := `
		UPDATE licenses
		SET entity_id = ?, name = ?, vendor = ?, license_key = ?, seats = ?, expires_at = ?, updated_at = ?
		WHERE id = ?
	`
	err := instrumentQuery("license_update", func() error {
		_, err := r.db.ExecContext(ctx, query,
			l.EntityID, l.Name, l.Vendor, l.LicenseKey, l.Seats, l.ExpiresAt, l.UpdatedAt, l.ID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("update license %s: %w", l.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteLicense(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM licenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete license %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ListAssignments(ctx context.Context, licenseID string) ([]models.LicenseAssignment, error) {
	assignments := []models.LicenseAssignment{}
	err := r.db.SelectContext(ctx, &assignments,
		`SELECT * FROM license_assignments WHERE license_id = ? ORDER BY assigned_at`, licenseID)
	if err != nil {
		return nil, fmt.Errorf("list assignments for license %s: %w", licenseID, err)
	}
	return assignments, nil
}

// SyncAssignments diffs the current assignment set against the desired
// collaborator set: rows no longer wanted are deleted, new ones inserted.
// The whole diff runs in one transaction so a failure cannot leave the
// license with a partially replaced assignment set.
func (r *SQLiteRepository) SyncAssignments(ctx context.Context, licenseID string, collaboratorIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sync assignments for license %s: %w", licenseID, err)
	}
	defer tx.Rollback()

	current := []models.LicenseAssignment{}
	if err := tx.SelectContext(ctx, &current,
		`SELECT * FROM license_assignments WHERE license_id = ?`, licenseID); err != nil {
		return fmt.Errorf("sync assignments for license %s: %w", licenseID, err)
	}

	desired := make(map[string]bool, len(collaboratorIDs))
	for _, id := range collaboratorIDs {
		desired[id] = true
	}
	existing := make(map[string]bool, len(current))
	for _, a := range current {
		existing[a.CollaboratorID] = true
		if !desired[a.CollaboratorID] {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM license_assignments WHERE id = ?`, a.ID); err != nil {
				return fmt.Errorf("sync assignments for license %s: %w", licenseID, err)
			}
		}
	}
	for _, id := range collaboratorIDs {
		if existing[id] {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO license_assignments (id, license_id, collaborator_id, assigned_at) VALUES (?, ?, ?, ?)`,
			uuid.New().String(), licenseID, id, time.Now()); err != nil {
			return fmt.Errorf("sync assignments for license %s: %w", licenseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sync assignments for license %s: %w", licenseID, err)
	}
	return nil
}
