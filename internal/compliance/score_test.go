package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inventra/inventra-backend/internal/models"
)

func TestScoreBoundaries(t *testing.T) {
	cases := []struct {
		name      string
		in        Inputs
		wantScore int
		wantBand  string
	}{
		{
			"perfect posture",
			Inputs{OpenCriticalIncidents: 0, UnmitigatedCriticalCVE: 0, BackupSuccessRate: 100, TrainingCoverage: 100},
			100, BandHealthy,
		},
		{
			"one open incident",
			Inputs{OpenCriticalIncidents: 1, BackupSuccessRate: 100, TrainingCoverage: 100},
			70, BandModerate,
		},
		{
			"incident count does not stack the penalty",
			Inputs{OpenCriticalIncidents: 5, BackupSuccessRate: 100, TrainingCoverage: 100},
			70, BandModerate,
		},
		{
			"everything failing clamps at zero",
			Inputs{OpenCriticalIncidents: 1, UnmitigatedCriticalCVE: 1, BackupSuccessRate: 0, TrainingCoverage: 0},
			0, BandCritical,
		},
		{
			"backup shortfall only",
			Inputs{BackupSuccessRate: 50, TrainingCoverage: 100},
			60, BandModerate,
		},
		{
			"backup above target has no bonus",
			Inputs{BackupSuccessRate: 95, TrainingCoverage: 100},
			100, BandHealthy,
		},
		{
			"training shortfall halved",
			Inputs{BackupSuccessRate: 100, TrainingCoverage: 60},
			90, BandHealthy,
		},
		{
			"healthy band lower edge",
			Inputs{BackupSuccessRate: 75, TrainingCoverage: 100},
			85, BandHealthy,
		},
		{
			"critical band upper edge",
			Inputs{OpenCriticalIncidents: 1, BackupSuccessRate: 79, TrainingCoverage: 100},
			59, BandCritical,
		},
		{
			"both flags down",
			Inputs{OpenCriticalIncidents: 1, UnmitigatedCriticalCVE: 1, BackupSuccessRate: 100, TrainingCoverage: 100},
			50, BandCritical,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.in)
			assert.Equal(t, tc.wantScore, got)
			assert.Equal(t, tc.wantBand, Band(got))
		})
	}
}

func TestScoreRoundsFractionalPenalties(t *testing.T) {
	// Training coverage 33.333...% over 3 collaborators: shortfall 46.67/2.
	in := Inputs{BackupSuccessRate: 100, TrainingCoverage: 100.0 / 3}
	assert.Equal(t, 77, Score(in))
}

func TestDeriveInputs(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	impact := models.ImpactCritical
	lowImpact := models.ImpactLow

	snap := &models.ComplianceSnapshot{
		Tickets: []models.Ticket{
			{Category: models.CategorySecurityIncident, Status: models.TicketOpen, ImpactCriticality: &impact},
			{Category: models.CategorySecurityIncident, Status: models.TicketFinished, ImpactCriticality: &impact},
			{Category: models.CategorySecurityIncident, Status: models.TicketOpen, ImpactCriticality: &lowImpact},
			{Category: "hardware", Status: models.TicketOpen, ImpactCriticality: &impact},
		},
		Vulnerabilities: []models.Vulnerability{
			{Severity: models.SeverityCritical, Status: models.VulnOpen},
			{Severity: models.SeverityCritical, Status: models.VulnMitigated},
			{Severity: models.SeverityHigh, Status: models.VulnOpen},
		},
		Backups: []models.BackupExecution{
			{TestDate: now.AddDate(0, 0, -5), Status: models.BackupSuccess},
			{TestDate: now.AddDate(0, 0, -10), Status: "Falha"},
			{TestDate: now.AddDate(0, 0, -45), Status: "Falha"}, // outside window
		},
		Trainings: []models.TrainingRecord{
			{CollaboratorID: "c1"},
			{CollaboratorID: "c1"}, // repeat course counts once
		},
		Collaborators: []models.Collaborator{{ID: "c1"}, {ID: "c2"}},
	}

	in := DeriveInputs(snap, now, 30)
	assert.Equal(t, 1, in.OpenCriticalIncidents)
	assert.Equal(t, 1, in.UnmitigatedCriticalCVE)
	assert.InDelta(t, 50.0, in.BackupSuccessRate, 0.001)
	assert.InDelta(t, 50.0, in.TrainingCoverage, 0.001)
}

func TestBackupRateEmptyWindowIsZero(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	snap := &models.ComplianceSnapshot{
		Backups: []models.BackupExecution{
			{TestDate: now.AddDate(0, 0, -60), Status: models.BackupSuccess},
		},
	}
	in := DeriveInputs(snap, now, 30)
	assert.Zero(t, in.BackupSuccessRate)
}

func TestTrainingCoverageEmptyRosterIsZero(t *testing.T) {
	in := DeriveInputs(&models.ComplianceSnapshot{
		Trainings: []models.TrainingRecord{{CollaboratorID: "ghost"}},
	}, time.Now(), 30)
	assert.Zero(t, in.TrainingCoverage)
}

func TestAcknowledgedThisMonth(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("never acknowledged", func(t *testing.T) {
		assert.False(t, AcknowledgedThisMonth(nil, now).Acknowledged)
	})

	t.Run("acknowledged this month", func(t *testing.T) {
		entry := &models.AuditLogEntry{
			Timestamp: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
			UserEmail: "ciso@example.com",
		}
		status := AcknowledgedThisMonth(entry, now)
		assert.True(t, status.Acknowledged)
		assert.Equal(t, "ciso@example.com", status.AcknowledgedBy)
	})

	t.Run("previous month expires", func(t *testing.T) {
		entry := &models.AuditLogEntry{Timestamp: time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC)}
		assert.False(t, AcknowledgedThisMonth(entry, now).Acknowledged)
	})

	t.Run("same month last year does not count", func(t *testing.T) {
		entry := &models.AuditLogEntry{Timestamp: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
		assert.False(t, AcknowledgedThisMonth(entry, now).Acknowledged)
	})

	t.Run("months compared in UTC", func(t *testing.T) {
		// Local time says April 1st, but it is still March in UTC.
		loc := time.FixedZone("UTC+10", 10*3600)
		entry := &models.AuditLogEntry{Timestamp: time.Date(2026, 4, 1, 5, 0, 0, 0, loc)}
		assert.True(t, AcknowledgedThisMonth(entry, now).Acknowledged)
	})
}

func TestEvaluate(t *testing.T) {
	now := time.Now()
	report := Evaluate(&models.ComplianceSnapshot{}, now, 0)
	// Empty tenant: no incidents or CVEs, but backups and training at zero.
	assert.Equal(t, 0, report.Inputs.OpenCriticalIncidents)
	assert.Equal(t, Score(report.Inputs), report.Score)
	assert.Equal(t, Band(report.Score), report.Band)
}
