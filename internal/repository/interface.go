package repository

import (
	"context"

	"github.com/inventra/inventra-backend/internal/models"
)

// Repository contract, uniform across entities:
//   - List returns all rows for the table.
//   - Get returns (nil, nil) when the row does not exist.
//   - Create assigns an ID when empty and sets timestamps.
//   - Update overwrites mutable columns of an existing row.
//   - Delete removes the row; deleting a missing row is not an error.
//
// Every failure is wrapped with the operation context and rethrown; callers
// own user-facing recovery.

// EquipmentRepository defines equipment data access methods.
type EquipmentRepository interface {
	ListEquipment(ctx context.Context) ([]models.Equipment, error)
	GetEquipment(ctx context.Context, id string) (*models.Equipment, error)
	CreateEquipment(ctx context.Context, e *models.Equipment) error
	UpdateEquipment(ctx context.Context, e *models.Equipment) error
	DeleteEquipment(ctx context.Context, id string) error
}

// LicenseRepository defines license and seat-assignment data access methods.
type LicenseRepository interface {
	ListLicenses(ctx context.Context) ([]models.License, error)
	GetLicense(ctx context.Context, id string) (*models.License, error)
	CreateLicense(ctx context.Context, l *models.License) error
	UpdateLicense(ctx context.Context, l *models.License) error
	DeleteLicense(ctx context.Context, id string) error

	ListAssignments(ctx context.Context, licenseID string) ([]models.LicenseAssignment, error)
	// SyncAssignments replaces the assignment set of a license with the
	// desired collaborator set: removed rows are deleted, added rows inserted.
	// Runs inside a single transaction.
	SyncAssignments(ctx context.Context, licenseID string, collaboratorIDs []string) error
}

// OrganizationRepository defines data access for the organizational hierarchy.
type OrganizationRepository interface {
	ListInstitutions(ctx context.Context) ([]models.Institution, error)
	GetInstitution(ctx context.Context, id string) (*models.Institution, error)
	CreateInstitution(ctx context.Context, in *models.Institution) error
	UpdateInstitution(ctx context.Context, in *models.Institution) error
	DeleteInstitution(ctx context.Context, id string) error

	ListEntities(ctx context.Context) ([]models.OrgEntity, error)
	GetEntity(ctx context.Context, id string) (*models.OrgEntity, error)
	CreateEntity(ctx context.Context, e *models.OrgEntity) error
	UpdateEntity(ctx context.Context, e *models.OrgEntity) error
	DeleteEntity(ctx context.Context, id string) error

	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	CreateTeam(ctx context.Context, t *models.Team) error
	UpdateTeam(ctx context.Context, t *models.Team) error
	DeleteTeam(ctx context.Context, id string) error

	ListCollaborators(ctx context.Context) ([]models.Collaborator, error)
	GetCollaborator(ctx context.Context, id string) (*models.Collaborator, error)
	CreateCollaborator(ctx context.Context, c *models.Collaborator) error
	UpdateCollaborator(ctx context.Context, c *models.Collaborator) error
	DeleteCollaborator(ctx context.Context, id string) error
}

// TicketRepository defines ticket data access methods.
type TicketRepository interface {
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	CreateTicket(ctx context.Context, t *models.Ticket) error
	UpdateTicket(ctx context.Context, t *models.Ticket) error
	DeleteTicket(ctx context.Context, id string) error
}

// ProcurementRepository defines procurement request data access methods.
type ProcurementRepository interface {
	ListProcurementRequests(ctx context.Context) ([]models.ProcurementRequest, error)
	GetProcurementRequest(ctx context.Context, id string) (*models.ProcurementRequest, error)
	CreateProcurementRequest(ctx context.Context, p *models.ProcurementRequest) error
	UpdateProcurementRequest(ctx context.Context, p *models.ProcurementRequest) error
	DeleteProcurementRequest(ctx context.Context, id string) error
}

// ComplianceRepository defines data access for compliance records.
type ComplianceRepository interface {
	ListVulnerabilities(ctx context.Context) ([]models.Vulnerability, error)
	GetVulnerability(ctx context.Context, id string) (*models.Vulnerability, error)
	CreateVulnerability(ctx context.Context, v *models.Vulnerability) error
	UpdateVulnerability(ctx context.Context, v *models.Vulnerability) error
	DeleteVulnerability(ctx context.Context, id string) error

	ListBackupExecutions(ctx context.Context) ([]models.BackupExecution, error)
	CreateBackupExecution(ctx context.Context, b *models.BackupExecution) error
	DeleteBackupExecution(ctx context.Context, id string) error

	ListTrainingRecords(ctx context.Context) ([]models.TrainingRecord, error)
	CreateTrainingRecord(ctx context.Context, t *models.TrainingRecord) error
	DeleteTrainingRecord(ctx context.Context, id string) error
}

// AutomationRuleRepository defines automation rule data access methods.
type AutomationRuleRepository interface {
	ListRules(ctx context.Context) ([]models.AutomationRule, error)
	ListActiveRules(ctx context.Context) ([]models.AutomationRule, error)
	GetRule(ctx context.Context, id string) (*models.AutomationRule, error)
	CreateRule(ctx context.Context, r *models.AutomationRule) error
	UpdateRule(ctx context.Context, r *models.AutomationRule) error
	DeleteRule(ctx context.Context, id string) error
}

// AuditLogRepository defines append-only audit log access.
type AuditLogRepository interface {
	CreateAuditLog(ctx context.Context, e *models.AuditLogEntry) error
	ListAuditLogs(ctx context.Context, action string, limit int) ([]models.AuditLogEntry, error)
	// LatestAuditLog returns the most recent entry for the action, or nil.
	LatestAuditLog(ctx context.Context, action string) (*models.AuditLogEntry, error)
}

// NotificationRepository defines notification channel access.
type NotificationRepository interface {
	ListChannels(ctx context.Context) ([]models.NotificationChannel, error)
	CreateChannel(ctx context.Context, c *models.NotificationChannel) error
	DeleteChannel(ctx context.Context, id string) error
}

// InventorySnapshotter hydrates the inventory dashboard in a single call.
// Split out of SnapshotRepository so the inventory domain can be served from
// either backing store.
type InventorySnapshotter interface {
	InventorySnapshot(ctx context.Context) (*models.InventorySnapshot, error)
}

// SnapshotRepository hydrates one dashboard domain in a single call.
type SnapshotRepository interface {
	InventorySnapshotter
	OrganizationSnapshot(ctx context.Context) (*models.OrganizationSnapshot, error)
	SupportSnapshot(ctx context.Context) (*models.SupportSnapshot, error)
	ComplianceSnapshot(ctx context.Context) (*models.ComplianceSnapshot, error)
}
