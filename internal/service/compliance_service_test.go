package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/compliance"
	"github.com/inventra/inventra-backend/internal/models"
)

func newComplianceService(t *testing.T) (ComplianceService, *testDeps) {
	t.Helper()
	repo := newTestRepo(t)
	svc := NewComplianceService(repo, repo, repo, repo, nil, nil, nil, 30)
	return svc, &testDeps{repo: repo, org: NewOrganizationService(repo, repo, nil)}
}

type testDeps struct {
	repo interface {
		CreateBackupExecution(ctx context.Context, b *models.BackupExecution) error
		CreateTrainingRecord(ctx context.Context, tr *models.TrainingRecord) error
		CreateVulnerability(ctx context.Context, v *models.Vulnerability) error
		CreateTicket(ctx context.Context, tk *models.Ticket) error
	}
	org OrganizationService
}

func TestDashboardScoresEmptyTenant(t *testing.T) {
	svc, _ := newComplianceService(t)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	// No incidents and no CVEs, but zero backups and zero training coverage:
	// 100 - 90 - 40 clamps to 0.
	assert.Equal(t, 0, dash.Report.Score)
	assert.Equal(t, compliance.BandCritical, dash.Report.Band)
	assert.False(t, dash.Acknowledgement.Acknowledged)
	assert.NotNil(t, dash.Vulnerabilities)
}

func TestDashboardHealthyTenant(t *testing.T) {
	ctx := context.Background()
	svc, deps := newComplianceService(t)

	collab := &models.Collaborator{FullName: "Ana"}
	require.NoError(t, deps.org.CreateCollaborator(ctx, collab))
	require.NoError(t, deps.repo.CreateTrainingRecord(ctx, &models.TrainingRecord{
		CollaboratorID: collab.ID, CourseName: "Security 101", CompletedAt: time.Now(),
	}))
	require.NoError(t, deps.repo.CreateBackupExecution(ctx, &models.BackupExecution{
		SystemName: "erp", TestDate: time.Now().AddDate(0, 0, -1), Status: models.BackupSuccess,
	}))

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, dash.Report.Score)
	assert.Equal(t, compliance.BandHealthy, dash.Report.Band)
}

func TestDashboardPenalizesOpenIncidentAndCVE(t *testing.T) {
	ctx := context.Background()
	svc, deps := newComplianceService(t)

	collab := &models.Collaborator{FullName: "Ana"}
	require.NoError(t, deps.org.CreateCollaborator(ctx, collab))
	require.NoError(t, deps.repo.CreateTrainingRecord(ctx, &models.TrainingRecord{
		CollaboratorID: collab.ID, CourseName: "Security 101", CompletedAt: time.Now(),
	}))
	require.NoError(t, deps.repo.CreateBackupExecution(ctx, &models.BackupExecution{
		SystemName: "erp", TestDate: time.Now().AddDate(0, 0, -1), Status: models.BackupSuccess,
	}))

	impact := models.ImpactCritical
	require.NoError(t, deps.repo.CreateTicket(ctx, &models.Ticket{
		Title: "Ransomware", Category: models.CategorySecurityIncident,
		Status: models.TicketOpen, ImpactCriticality: &impact,
	}))
	require.NoError(t, deps.repo.CreateVulnerability(ctx, &models.Vulnerability{
		CVEID: "CVE-2026-1", Severity: models.SeverityCritical, Status: models.VulnOpen,
	}))

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, dash.Report.Score)
	assert.Equal(t, compliance.BandCritical, dash.Report.Band)
	assert.Equal(t, 1, dash.Report.Inputs.OpenCriticalIncidents)
	assert.Equal(t, 1, dash.Report.Inputs.UnmitigatedCriticalCVE)
}

func TestAcknowledgeGate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplianceService(t)

	err := svc.Acknowledge(ctx, "not-an-email", "10.0.0.1:1", "")
	assert.Error(t, err)

	require.NoError(t, svc.Acknowledge(ctx, "ciso@example.com", "10.0.0.1:1", "march review"))

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.True(t, dash.Acknowledgement.Acknowledged)
	assert.Equal(t, "ciso@example.com", dash.Acknowledgement.AcknowledgedBy)
}

func TestRunAIScanWithoutScanner(t *testing.T) {
	svc, _ := newComplianceService(t)
	_, err := svc.RunAIScan(context.Background())
	assert.Error(t, err)
}

func TestVulnerabilityValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplianceService(t)

	assert.Error(t, svc.CreateVulnerability(ctx, &models.Vulnerability{Severity: models.SeverityLow}))
	assert.Error(t, svc.CreateVulnerability(ctx, &models.Vulnerability{CVEID: "CVE-1", Severity: "Extreme"}))

	v := &models.Vulnerability{CVEID: "CVE-2026-2", Severity: models.SeverityLow}
	require.NoError(t, svc.CreateVulnerability(ctx, v))
	assert.Equal(t, models.VulnOpen, v.Status)
	assert.Equal(t, "manual", v.Source)
}
