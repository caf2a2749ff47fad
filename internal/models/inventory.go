package models

import "time"

// Equipment status values.
const (
	EquipmentInStock  = "in_stock"
	EquipmentAssigned = "assigned"
	EquipmentInRepair = "in_repair"
	EquipmentRetired  = "retired"
)

// Equipment is a physical asset tracked in the inventory.
type Equipment struct {
	ID            string     `json:"id" db:"id"`
	EntityID      *string    `json:"entity_id,omitempty" db:"entity_id"`
	AssignedTo    *string    `json:"assigned_to,omitempty" db:"assigned_to"`
	TeamID        *string    `json:"team_id,omitempty" db:"team_id"`
	Name          string     `json:"name" db:"name"`
	Category      string     `json:"category" db:"category"` // Hardware, Peripheral, Network, Mobile
	Brand         string     `json:"brand" db:"brand"`
	Model         string     `json:"model" db:"model"`
	SerialNumber  string     `json:"serial_number" db:"serial_number"`
	Status        string     `json:"status" db:"status"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty" db:"purchase_date"`
	WarrantyUntil *time.Time `json:"warranty_until,omitempty" db:"warranty_until"`
	Notes         string     `json:"notes" db:"notes"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// License is a software license pool with a fixed number of seats.
type License struct {
	ID         string     `json:"id" db:"id"`
	EntityID   *string    `json:"entity_id,omitempty" db:"entity_id"`
	Name       string     `json:"name" db:"name"`
	Vendor     string     `json:"vendor" db:"vendor"`
	LicenseKey string     `json:"license_key" db:"license_key"`
	Seats      int        `json:"seats" db:"seats"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// LicenseAssignment links one license seat to one collaborator.
type LicenseAssignment struct {
	ID             string    `json:"id" db:"id"`
	LicenseID      string    `json:"license_id" db:"license_id"`
	CollaboratorID string    `json:"collaborator_id" db:"collaborator_id"`
	AssignedAt     time.Time `json:"assigned_at" db:"assigned_at"`
}
