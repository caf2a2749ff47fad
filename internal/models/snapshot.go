package models

import "time"

// Domain snapshots hydrate one dashboard in a single round trip. Every list
// is always present (possibly empty) so the frontend never distinguishes
// "no data" from "field missing".

// InventorySnapshot backs the inventory dashboard.
type InventorySnapshot struct {
	Equipment   []Equipment         `json:"equipment"`
	Licenses    []License           `json:"licenses"`
	Assignments []LicenseAssignment `json:"assignments"`
}

// OrganizationSnapshot backs the organization dashboard.
type OrganizationSnapshot struct {
	Institutions  []Institution  `json:"institutions"`
	Entities      []OrgEntity    `json:"entities"`
	Teams         []Team         `json:"teams"`
	Collaborators []Collaborator `json:"collaborators"`
}

// SupportSnapshot backs the support dashboard.
type SupportSnapshot struct {
	Tickets []Ticket `json:"tickets"`
	Teams   []Team   `json:"teams"`
}

// ComplianceSnapshot backs the executive compliance dashboard. It is the
// single input of the compliance score computation.
type ComplianceSnapshot struct {
	Tickets         []Ticket          `json:"tickets"`
	Vulnerabilities []Vulnerability   `json:"vulnerabilities"`
	Backups         []BackupExecution `json:"backups"`
	Trainings       []TrainingRecord  `json:"trainings"`
	Collaborators   []Collaborator    `json:"collaborators"`
}

// WebSocketMessage is the frame broadcast to connected dashboard clients.
type WebSocketMessage struct {
	Type      string      `json:"type"`  // domain_refresh
	Event     string      `json:"event"` // created, updated, deleted
	Domain    string      `json:"domain"`
	Resource  interface{} `json:"resource,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
