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

// AuditLogRepository implementation. Audit rows are append-only; there is no
// update or delete path.

func (r *SQLiteRepository) CreateAuditLog(ctx context.Context, e *models.AuditLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, timestamp, user_email, action, resource_table, resource_id,
		 status_code, request_ip, details)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp, e.UserEmail, e.Action, e.ResourceTable, e.ResourceID,
		e.StatusCode, e.RequestIP, e.Details)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListAuditLogs(ctx context.Context, action string, limit int) ([]models.AuditLogEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	entries := []models.AuditLogEntry{}
	var err error
	if action == "" {
		err = r.db.SelectContext(ctx, &entries,
			`SELECT * FROM audit_log ORDER BY timestamp DESC LIMIT ?`, limit)
	} else {
		err = r.db.SelectContext(ctx, &entries,
			`SELECT * FROM audit_log WHERE action = ? ORDER BY timestamp DESC LIMIT ?`, action, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return entries, nil
}

// LatestAuditLog returns the most recent entry for the action, or nil when no
// such entry exists. Used by the monthly risk-acknowledgement gate.
func (r *SQLiteRepository) LatestAuditLog(ctx context.Context, action string) (*models.AuditLogEntry, error) {
	var e models.AuditLogEntry
	err := r.db.GetContext(ctx, &e,
		`SELECT * FROM audit_log WHERE action = ? ORDER BY timestamp DESC LIMIT 1`, action)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest audit log for %s: %w", action, err)
	}
	return &e, nil
}
