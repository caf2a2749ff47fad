// Package compliance computes the executive compliance score and its risk
// band from a point-in-time snapshot of the domain data. The computation is
// pure so it can be recomputed on every dashboard load without side effects.
package compliance

import (
	"math"
	"time"

	"github.com/inventra/inventra-backend/internal/models"
)

// Risk bands reported alongside the score.
const (
	BandHealthy  = "Healthy"
	BandModerate = "Moderate risk"
	BandCritical = "Critical risk"
)

// DefaultBackupWindowDays is the lookback used for the backup success rate.
const DefaultBackupWindowDays = 30

// Inputs are the four aggregates the score formula consumes.
type Inputs struct {
	OpenCriticalIncidents  int     `json:"open_critical_incidents"`
	UnmitigatedCriticalCVE int     `json:"unmitigated_critical_cves"`
	BackupSuccessRate      float64 `json:"backup_success_rate"`
	TrainingCoverage       float64 `json:"training_coverage"`
}

// Report is the scored result served to the dashboard.
type Report struct {
	Score  int    `json:"score"`
	Band   string `json:"band"`
	Inputs Inputs `json:"inputs"`
}

// DeriveInputs aggregates a snapshot into score inputs. now anchors the
// backup lookback window; windowDays <= 0 falls back to the default.
func DeriveInputs(snap *models.ComplianceSnapshot, now time.Time, windowDays int) Inputs {
	if windowDays <= 0 {
		windowDays = DefaultBackupWindowDays
	}

	var in Inputs
	for i := range snap.Tickets {
		if snap.Tickets[i].IsOpenCriticalIncident() {
			in.OpenCriticalIncidents++
		}
	}
	for i := range snap.Vulnerabilities {
		if snap.Vulnerabilities[i].IsUnmitigatedCritical() {
			in.UnmitigatedCriticalCVE++
		}
	}
	in.BackupSuccessRate = backupSuccessRate(snap.Backups, now, windowDays)
	in.TrainingCoverage = trainingCoverage(snap.Trainings, snap.Collaborators)
	return in
}

// backupSuccessRate is the percentage of backup restore tests inside the
// window that succeeded. No tests in the window counts as 0, not 100: an
// untested backup is treated as a failing one.
func backupSuccessRate(backups []models.BackupExecution, now time.Time, windowDays int) float64 {
	cutoff := now.AddDate(0, 0, -windowDays)
	var total, ok int
	for i := range backups {
		if backups[i].TestDate.Before(cutoff) || backups[i].TestDate.After(now) {
			continue
		}
		total++
		if backups[i].Status == models.BackupSuccess {
			ok++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(ok) / float64(total) * 100
}

// trainingCoverage is the percentage of collaborators with at least one
// completed training. An empty collaborator roster yields 0.
func trainingCoverage(trainings []models.TrainingRecord, collaborators []models.Collaborator) float64 {
	if len(collaborators) == 0 {
		return 0
	}
	trained := make(map[string]bool, len(trainings))
	for i := range trainings {
		trained[trainings[i].CollaboratorID] = true
	}
	var covered int
	for i := range collaborators {
		if trained[collaborators[i].ID] {
			covered++
		}
	}
	return float64(covered) / float64(len(collaborators)) * 100
}

// Score applies the penalty formula:
//
//	100
//	- 30 if any open critical incident
//	- 20 if any unmitigated critical vulnerability
//	- the shortfall below a 90% backup success rate
//	- half the shortfall below 80% training coverage
//
// clamped to [0, 100] and rounded to the nearest integer.
func Score(in Inputs) int {
	score := 100.0
	if in.OpenCriticalIncidents > 0 {
		score -= 30
	}
	if in.UnmitigatedCriticalCVE > 0 {
		score -= 20
	}
	score -= math.Max(0, 90-in.BackupSuccessRate)
	score -= math.Max(0, (80-in.TrainingCoverage)/2)

	score = math.Max(0, math.Min(100, score))
	return int(math.Round(score))
}

// Band maps a score to its risk band.
func Band(score int) string {
	switch {
	case score >= 85:
		return BandHealthy
	case score >= 60:
		return BandModerate
	default:
		return BandCritical
	}
}

// Evaluate derives inputs, scores them and attaches the band.
func Evaluate(snap *models.ComplianceSnapshot, now time.Time, windowDays int) Report {
	in := DeriveInputs(snap, now, windowDays)
	score := Score(in)
	return Report{Score: score, Band: Band(score), Inputs: in}
}
