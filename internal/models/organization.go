package models

import "time"

// Institution is the top level of the organizational hierarchy.
type Institution struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	TaxID        string    `json:"tax_id" db:"tax_id"`
	Address      string    `json:"address" db:"address"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// OrgEntity is a legal entity or business unit under an institution.
type OrgEntity struct {
	ID            string    `json:"id" db:"id"`
	InstitutionID string    `json:"institution_id" db:"institution_id"`
	Name          string    `json:"name" db:"name"`
	CostCenter    string    `json:"cost_center" db:"cost_center"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Team groups collaborators for ticket assignment and reporting.
type Team struct {
	ID          string    `json:"id" db:"id"`
	EntityID    *string   `json:"entity_id,omitempty" db:"entity_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Collaborator is a person in the organization. Equipment, licenses, tickets,
// and training records all reference collaborators.
type Collaborator struct {
	ID        string    `json:"id" db:"id"`
	EntityID  *string   `json:"entity_id,omitempty" db:"entity_id"`
	TeamID    *string   `json:"team_id,omitempty" db:"team_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	Status    string    `json:"status" db:"status"` // active, suspended, offboarded
	PhotoURL  string    `json:"photo_url" db:"photo_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
