package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/inventra/inventra-backend/internal/models"
)

// PostgresRepository implements the inventory repositories using PostgreSQL.
// Deployments that outgrow the embedded SQLite store move the high-churn
// inventory tables here first; the remaining tables follow as needed.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository.
func NewPostgresRepository(connectionString string) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection.
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping checks database connectivity.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// EquipmentRepository implementation

func (r *PostgresRepository) ListEquipment(ctx context.Context) ([]models.Equipment, error) {
	equipment := []models.Equipment{}
	err := r.db.SelectContext(ctx, &equipment, `SELECT * FROM equipment ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return equipment, nil
}

func (r *PostgresRepository) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	var e models.Equipment
	err := r.db.GetContext(ctx, &e, `SELECT * FROM equipment WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get equipment %s: %w", id, err)
	}
	return &e, nil
}

func (r *PostgresRepository) CreateEquipment(ctx context.Context, e *models.Equipment) error {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.EntityID, e.AssignedTo, e.TeamID, e.Name, e.Category, e.Brand, e.Model,
		e.SerialNumber, e.Status, e.PurchaseDate, e.WarrantyUntil, e.Notes, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create equipment: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateEquipment(ctx context.Context, e *models.Equipment) error {
	e.UpdatedAt = time.Now()
	query := `
		UPDATE equipment
		SET entity_id = $1, assigned_to = $2, team_id = $3, name = $4, category = $5, brand = $6,
		    model = $7, serial_number = $8, status = $9, purchase_date = $10, warranty_until = $11,
		    notes = $12, updated_at = $13
		WHERE id = $14
	`
	_, err := r.db.ExecContext(ctx, query,
		e.EntityID, e.AssignedTo, e.TeamID, e.Name, e.Category, e.Brand,
		e.Model, e.SerialNumber, e.Status, e.PurchaseDate, e.WarrantyUntil,
		e.Notes, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update equipment %s: %w", e.ID, err)
	}
	return nil
}

func (r *PostgresRepository) DeleteEquipment(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete equipment %s: %w", id, err)
	}
	return nil
}

// LicenseRepository implementation

func (r *PostgresRepository) ListLicenses(ctx context.Context) ([]models.License, error) {
	licenses := []models.License{}
	err := r.db.SelectContext(ctx, &licenses, `SELECT * FROM licenses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	return licenses, nil
}

func (r *PostgresRepository) GetLicense(ctx context.Context, id string) (*models.License, error) {
	var l models.License
	err := r.db.GetContext(ctx, &l, `SELECT * FROM licenses WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get license %s: %w", id, err)
	}
	return &l, nil
}

func (r *PostgresRepository) CreateLicense(ctx context.Context, l *models.License) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Seats <= 0 {
		l.Seats = 1
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO licenses (id, entity_id, name, vendor, license_key, seats, expires_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.EntityID, l.Name, l.Vendor, l.LicenseKey, l.Seats, l.ExpiresAt, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create license: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateLicense(ctx context.Context, l *models.License) error {
	l.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE licenses SET entity_id = $1, name = $2, vendor = $3, license_key = $4, seats = $5,
		 expires_at = $6, updated_at = $7 WHERE id = $8`,
		l.EntityID, l.Name, l.Vendor, l.LicenseKey, l.Seats, l.ExpiresAt, l.UpdatedAt, l.ID)
	if err != nil {
		return fmt.Errorf("update license %s: %w", l.ID, err)
	}
	return nil
}

func (r *PostgresRepository) DeleteLicense(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM licenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete license %s: %w", id, err)
	}
	return nil
}

func (r *PostgresRepository) ListAssignments(ctx context.Context, licenseID string) ([]models.LicenseAssignment, error) {
	assignments := []models.LicenseAssignment{}
	err := r.db.SelectContext(ctx, &assignments,
		`SELECT * FROM license_assignments WHERE license_id = $1 ORDER BY assigned_at`, licenseID)
	if err != nil {
		return nil, fmt.Errorf("list assignments for license %s: %w", licenseID, err)
	}
	return assignments, nil
}

// InventorySnapshot hydrates the inventory dashboard from the PostgreSQL
// tables.
func (r *PostgresRepository) InventorySnapshot(ctx context.Context) (*models.InventorySnapshot, error) {
	snap := &models.InventorySnapshot{
		Equipment:   []models.Equipment{},
		Licenses:    []models.License{},
		Assignments: []models.LicenseAssignment{},
	}
	if err := r.db.SelectContext(ctx, &snap.Equipment, `SELECT * FROM equipment ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	if err := r.db.SelectContext(ctx, &snap.Licenses, `SELECT * FROM licenses ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	if err := r.db.SelectContext(ctx, &snap.Assignments, `SELECT * FROM license_assignments ORDER BY assigned_at`); err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	return snap, nil
}

// SyncAssignments replaces the assignment set of a license inside one
// transaction, same contract as the SQLite implementation.
func (r *PostgresRepository) SyncAssignments(ctx context.Context, licenseID string, collaboratorIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sync assignments for license %s: %w", licenseID, err)
	}
	defer tx.Rollback()

	current := []models.LicenseAssignment{}
	if err := tx.SelectContext(ctx, &current,
		`SELECT * FROM license_assignments WHERE license_id = $1`, licenseID); err != nil {
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
				`DELETE FROM license_assignments WHERE id = $1`, a.ID); err != nil {
				return fmt.Errorf("sync assignments for license %s: %w", licenseID, err)
			}
		}
	}
	for _, id := range collaboratorIDs {
		if existing[id] {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO license_assignments (id, license_id, collaborator_id, assigned_at) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), licenseID, id, time.Now()); err != nil {
			return fmt.Errorf("sync assignments for license %s: %w", licenseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sync assignments for license %s: %w", licenseID, err)
	}
	return nil
}
