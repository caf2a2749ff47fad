package compliance

import (
	"time"

	"github.com/inventra/inventra-backend/internal/models"
)

// AcknowledgementStatus reports whether the executive risk review for the
// current calendar month has been recorded.
type AcknowledgementStatus struct {
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
}

// AcknowledgedThisMonth evaluates the monthly gate against the most recent
// risk_acknowledged audit entry. Months are compared in UTC so the gate does
// not flap with the server timezone. A nil entry means never acknowledged.
func AcknowledgedThisMonth(latest *models.AuditLogEntry, now time.Time) AcknowledgementStatus {
	if latest == nil {
		return AcknowledgementStatus{}
	}
	ackAt := latest.Timestamp.UTC()
	nowUTC := now.UTC()
	if ackAt.Year() != nowUTC.Year() || ackAt.Month() != nowUTC.Month() {
		return AcknowledgementStatus{}
	}
	t := latest.Timestamp
	return AcknowledgementStatus{
		Acknowledged:   true,
		AcknowledgedAt: &t,
		AcknowledgedBy: latest.UserEmail,
	}
}
