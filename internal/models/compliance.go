package models

import "time"

// Vulnerability severity and status values.
const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"

	VulnOpen      = "open"
	VulnMitigated = "Mitigated"
	VulnResolved  = "Resolved"
)

// Vulnerability is a tracked weakness, entered manually or produced by the AI scan.
type Vulnerability struct {
	ID               string    `json:"id" db:"id"`
	CVEID            string    `json:"cve_id" db:"cve_id"`
	Severity         string    `json:"severity" db:"severity"`
	Status           string    `json:"status" db:"status"`
	Description      string    `json:"description" db:"description"`
	AffectedSoftware string    `json:"affected_software" db:"affected_software"`
	Remediation      string    `json:"remediation" db:"remediation"`
	Source           string    `json:"source" db:"source"` // manual | ai_scan
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// IsUnmitigatedCritical reports whether the vulnerability counts toward the
// unmitigated-critical compliance input.
func (v *Vulnerability) IsUnmitigatedCritical() bool {
	return v.Severity == SeverityCritical && v.Status != VulnResolved && v.Status != VulnMitigated
}

// BackupSuccess is the status value of a successful backup restore test.
// Kept verbatim from the operational tooling that writes these records.
const BackupSuccess = "Sucesso"

// BackupExecution is one backup restore test run.
type BackupExecution struct {
	ID         string    `json:"id" db:"id"`
	SystemName string    `json:"system_name" db:"system_name"`
	TestDate   time.Time `json:"test_date" db:"test_date"`
	Status     string    `json:"status" db:"status"`
	Notes      string    `json:"notes" db:"notes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// TrainingRecord is one completed security-awareness training for a collaborator.
type TrainingRecord struct {
	ID             string    `json:"id" db:"id"`
	CollaboratorID string    `json:"collaborator_id" db:"collaborator_id"`
	CourseName     string    `json:"course_name" db:"course_name"`
	CompletedAt    time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
