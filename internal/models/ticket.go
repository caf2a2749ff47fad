package models

import "time"

// Ticket status values. A ticket counts as an open incident until it reaches
// StatusFinished.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketWaiting    = "waiting"
	TicketFinished   = "finished"
)

// Ticket categories that mark a ticket as a security incident for compliance
// scoring, independent of security_incident_type being set.
const (
	CategorySecurityIncident = "security_incident"
)

// Impact criticality values used by compliance scoring.
const (
	ImpactCritical = "Critical"
	ImpactHigh     = "High"
	ImpactMedium   = "Medium"
	ImpactLow      = "Low"
)

// Ticket is a support or incident request.
type Ticket struct {
	ID                   string     `json:"id" db:"id"`
	Title                string     `json:"title" db:"title"`
	Description          string     `json:"description" db:"description"`
	Category             string     `json:"category" db:"category"`
	Priority             string     `json:"priority" db:"priority"` // low, normal, high, urgent
	Status               string     `json:"status" db:"status"`
	RequesterID          *string    `json:"requester_id,omitempty" db:"requester_id"`
	AssignedTeam         *string    `json:"assigned_team,omitempty" db:"assigned_team"`
	AssignedUser         *string    `json:"assigned_user,omitempty" db:"assigned_user"`
	SecurityIncidentType *string    `json:"security_incident_type,omitempty" db:"security_incident_type"`
	ImpactCriticality    *string    `json:"impact_criticality,omitempty" db:"impact_criticality"`
	DueDate              *time.Time `json:"due_date,omitempty" db:"due_date"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// IsOpenCriticalIncident reports whether the ticket counts toward the
// open-critical-incidents compliance input: security-incident ticket with
// Critical or High impact that is not finished.
func (t *Ticket) IsOpenCriticalIncident() bool {
	if t.Status == TicketFinished {
		return false
	}
	isSecurity := t.Category == CategorySecurityIncident ||
		(t.SecurityIncidentType != nil && *t.SecurityIncidentType != "")
	if !isSecurity {
		return false
	}
	if t.ImpactCriticality == nil {
		return false
	}
	return *t.ImpactCriticality == ImpactCritical || *t.ImpactCriticality == ImpactHigh
}
