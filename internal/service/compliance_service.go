package service

import (
	"context"
	"fmt"
	"time"

	"github.com/inventra/inventra-backend/internal/aiscan"
	"github.com/inventra/inventra-backend/internal/compliance"
	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/notifications"
	"github.com/inventra/inventra-backend/internal/pkg/metrics"
	"github.com/inventra/inventra-backend/internal/pkg/validate"
	"github.com/inventra/inventra-backend/internal/repository"
)

// Dashboard is the compliance overview served to the executive view.
type Dashboard struct {
	Report          compliance.Report                `json:"report"`
	Acknowledgement compliance.AcknowledgementStatus `json:"acknowledgement"`
	Vulnerabilities []models.Vulnerability           `json:"vulnerabilities"`
	Backups         []models.BackupExecution         `json:"backups"`
	Trainings       []models.TrainingRecord          `json:"trainings"`
}

// ScanResult summarizes one AI vulnerability scan run.
type ScanResult struct {
	Findings   []aiscan.Finding `json:"findings"`
	Registered int              `json:"registered"`
}

// ComplianceService manages the vulnerability register, backup tests,
// training records, the compliance score, and the AI scan.
type ComplianceService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)

	// Acknowledge records the monthly executive risk sign-off.
	Acknowledge(ctx context.Context, userEmail, requestIP, details string) error

	// RunAIScan asks the configured model to flag vulnerabilities in the
	// license inventory and registers each finding with ai_scan provenance.
	RunAIScan(ctx context.Context) (*ScanResult, error)

	ListVulnerabilities(ctx context.Context) ([]models.Vulnerability, error)
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

type complianceService struct {
	repo       repository.ComplianceRepository
	licenses   repository.LicenseRepository
	snapshots  repository.SnapshotRepository
	auditLogs  repository.AuditLogRepository
	scanner    *aiscan.Scanner
	notifier   *notifications.Notifier
	broadcast  Broadcaster
	windowDays int
	now        func() time.Time
}

func NewComplianceService(
	repo repository.ComplianceRepository,
	licenses repository.LicenseRepository,
	snapshots repository.SnapshotRepository,
	auditLogs repository.AuditLogRepository,
	scanner *aiscan.Scanner,
	notifier *notifications.Notifier,
	broadcast Broadcaster,
	backupWindowDays int,
) ComplianceService {
	if broadcast == nil {
		broadcast = NopBroadcaster{}
	}
	if backupWindowDays <= 0 {
		backupWindowDays = compliance.DefaultBackupWindowDays
	}
	return &complianceService{
		repo:       repo,
		licenses:   licenses,
		snapshots:  snapshots,
		auditLogs:  auditLogs,
		scanner:    scanner,
		notifier:   notifier,
		broadcast:  broadcast,
		windowDays: backupWindowDays,
		now:        time.Now,
	}
}

func (s *complianceService) Dashboard(ctx context.Context) (*Dashboard, error) {
	snap, err := s.snapshots.ComplianceSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	report := compliance.Evaluate(snap, now, s.windowDays)
	metrics.ComplianceScore.Set(float64(report.Score))

	latest, err := s.auditLogs.LatestAuditLog(ctx, models.ActionRiskAcknowledged)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Report:          report,
		Acknowledgement: compliance.AcknowledgedThisMonth(latest, now),
		Vulnerabilities: snap.Vulnerabilities,
		Backups:         snap.Backups,
		Trainings:       snap.Trainings,
	}, nil
}

func (s *complianceService) Acknowledge(ctx context.Context, userEmail, requestIP, details string) error {
	if !validate.Email(userEmail) {
		return fmt.Errorf("acknowledgement requires a valid user email")
	}
	entry := &models.AuditLogEntry{
		UserEmail: userEmail,
		Action:    models.ActionRiskAcknowledged,
		RequestIP: requestIP,
		Details:   details,
	}
	if err := s.auditLogs.CreateAuditLog(ctx, entry); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainCompliance, EventUpdated, nil)
	return nil
}

func (s *complianceService) RunAIScan(ctx context.Context) (*ScanResult, error) {
	if !s.scanner.Enabled() {
		return nil, fmt.Errorf("ai scan is not configured")
	}
	licenses, err := s.licenses.ListLicenses(ctx)
	if err != nil {
		return nil, err
	}
	findings, err := s.scanner.ScanLicenses(ctx, licenses)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Findings: findings}
	for _, f := range findings {
		v := f.ToVulnerability()
		// Registration is best effort: one failed insert does not discard
		// the remaining findings.
		if err := s.repo.CreateVulnerability(ctx, &v); err != nil {
			continue
		}
		result.Registered++
		if s.notifier != nil {
			s.notifier.Notify(models.NotifyEvent{
				EventType:     models.EventVulnerabilityFound,
				ResourceTable: "vulnerabilities",
				ResourceID:    v.ID,
				Message:       v.CVEID,
			})
		}
	}
	if result.Registered > 0 {
		s.broadcast.BroadcastRefresh(DomainCompliance, EventCreated, nil)
	}
	return result, nil
}

func (s *complianceService) ListVulnerabilities(ctx context.Context) ([]models.Vulnerability, error) {
	return s.repo.ListVulnerabilities(ctx)
}

func (s *complianceService) CreateVulnerability(ctx context.Context, v *models.Vulnerability) error {
	if !validate.Required(v.CVEID) {
		return fmt.Errorf("vulnerability cve_id is required")
	}
	if !validate.OneOf(v.Severity, models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow) {
		return fmt.Errorf("unknown vulnerability severity %q", v.Severity)
	}
	if v.Status == "" {
		v.Status = models.VulnOpen
	}
	if v.Source == "" {
		v.Source = "manual"
	}
	if err := s.repo.CreateVulnerability(ctx, v); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainCompliance, EventCreated, v)
	return nil
}

func (s *complianceService) UpdateVulnerability(ctx context.Context, v *models.Vulnerability) error {
	existing, err := s.repo.GetVulnerability(ctx, v.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("vulnerability %s not found", v.ID)
	}
	if err := s.repo.UpdateVulnerability(ctx, v); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainCompliance, EventUpdated, v)
	return nil
}

func (s *complianceService) DeleteVulnerability(ctx context.Context, id string) error {
	if err := s.repo.DeleteVulnerability(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainCompliance, EventDeleted, nil)
	return nil
}

func (s *complianceService) ListBackupExecutions(ctx context.Context) ([]models.BackupExecution, error) {
	return s.repo.ListBackupExecutions(ctx)
}

func (s *complianceService) CreateBackupExecution(ctx context.Context, b *models.BackupExecution) error {
	if !validate.Required(b.SystemName, b.Status) {
		return fmt.Errorf("backup execution system_name and status are required")
	}
	if b.TestDate.IsZero() {
		b.TestDate = s.now()
	}
	if err := s.repo.CreateBackupExecution(ctx, b); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainCompliance, EventCreated, b)
	return nil
}

func (s *complianceService) DeleteBackupExecution(ctx context.Context, id string) error {
	if err := s.repo.DeleteBackupExecution(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainCompliance, EventDeleted, nil)
	return nil
}

func (s *complianceService) ListTrainingRecords(ctx context.Context) ([]models.TrainingRecord, error) {
	return s.repo.ListTrainingRecords(ctx)
}

func (s *complianceService) CreateTrainingRecord(ctx context.Context, t *models.TrainingRecord) error {
	if !validate.Required(t.CollaboratorID, t.CourseName) {
		return fmt.Errorf("training record collaborator_id and course_name are required")
	}
	if t.CompletedAt.IsZero() {
		t.CompletedAt = s.now()
	}
	if err := s.repo.CreateTrainingRecord(ctx, t); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainCompliance, EventCreated, t)
	return nil
}

func (s *complianceService) DeleteTrainingRecord(ctx context.Context, id string) error {
	if err := s.repo.DeleteTrainingRecord(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainCompliance, EventDeleted, nil)
	return nil
}
