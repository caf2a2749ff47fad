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

// ComplianceRepository implementation

func (r *SQLiteRepository) ListVulnerabilities(ctx context.Context) ([]models.Vulnerability, error) {
	vulns := []models.Vulnerability{}
	err := instrumentQuery("vulnerability_list", func() error {
		return r.db.SelectContext(ctx, &vulns, `SELECT * FROM vulnerabilities ORDER BY created_at DESC`)
	})
	if err != nil {
		return nil, fmt.Errorf("list vulnerabilities: %w", err)
	}
	return vulns, nil
}

func (r *SQLiteRepository) GetVulnerability(ctx context.Context, id string) (*models.Vulnerability, error) {
	var v models.Vulnerability
	err := r.db.GetContext(ctx, &v, `SELECT * FROM vulnerabilities WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vulnerability %s: %w", id, err)
	}
	return &v, nil
}

func (r *SQLiteRepository) CreateVulnerability(ctx context.Context, v *models.Vulnerability) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.Status == "" {
		v.Status = models.VulnOpen
	}
	if v.Source == "" {
		v.Source = "manual"
	}
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vulnerabilities (id, cve_id, severity, status, description, affected_software,
		 remediation, source, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.CVEID, v.Severity, v.Status, v.Description, v.AffectedSoftware,
		v.Remediation, v.Source, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create vulnerability: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateVulnerability(ctx context.Context, v *models.Vulnerability) error {
	v.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE vulnerabilities SET cve_id = ?, severity = ?, status = ?, description = ?,
		 affected_software = ?, remediation = ?, source = ?, updated_at = ? WHERE id = ?`,
		v.CVEID, v.Severity, v.Status, v.Description,
		v.AffectedSoftware, v.Remediation, v.Source, v.UpdatedAt, v.ID)
	if err != nil {
		return fmt.Errorf("update vulnerability %s: %w", v.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteVulnerability(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM vulnerabilities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete vulnerability %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ListBackupExecutions(ctx context.Context) ([]models.BackupExecution, error) {
	backups := []models.BackupExecution{}
	err := instrumentQuery("backup_list", func() error {
		return r.db.SelectContext(ctx, &backups, `SELECT * FROM backup_executions ORDER BY test_date DESC`)
	})
	if err != nil {
		return nil, fmt.Errorf("list backup executions: %w", err)
	}
	return backups, nil
}

func (r *SQLiteRepository) CreateBackupExecution(ctx context.Context, b *models.BackupExecution) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO backup_executions (id, system_name, test_date, status, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.SystemName, b.TestDate, b.Status, b.Notes, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("create backup execution: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteBackupExecution(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM backup_executions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete backup execution %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ListTrainingRecords(ctx context.Context) ([]models.TrainingRecord, error) {
	records := []models.TrainingRecord{}
	err := instrumentQuery("training_list", func() error {
		return r.db.SelectContext(ctx, &records, `SELECT * FROM training_records ORDER BY completed_at DESC`)
	})
	if err != nil {
		return nil, fmt.Errorf("list training records: %w", err)
	}
	return records, nil
}

func (r *SQLiteRepository) CreateTrainingRecord(ctx context.Context, t *models.TrainingRecord) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO training_records (id, collaborator_id, course_name, completed_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.CollaboratorID, t.CourseName, t.CompletedAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create training record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteTrainingRecord(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM training_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete training record %s: %w", id, err)
	}
	return nil
}
