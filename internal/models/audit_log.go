package models

import "time"

// Audit actions with dedicated readers. ActionRiskAcknowledged rows gate the
// monthly management sign-off banner: only the latest row per calendar month
// is ever read.
const (
	ActionRiskAcknowledged = "risk_acknowledged"
)

// AuditLogEntry represents a single audit log record.
// Append-only: no UPDATE or DELETE on audit records.
type AuditLogEntry struct {
	ID            string    `json:"id" db:"id"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`
	UserEmail     string    `json:"user_email" db:"user_email"`
	Action        string    `json:"action" db:"action"`
	ResourceTable *string   `json:"resource_table,omitempty" db:"resource_table"`
	ResourceID    *string   `json:"resource_id,omitempty" db:"resource_id"`
	StatusCode    *int      `json:"status_code,omitempty" db:"status_code"`
	RequestIP     string    `json:"request_ip" db:"request_ip"`
	Details       string    `json:"details,omitempty" db:"details"`
}
