package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ItemKind discriminates the specification payload of a procurement request.
type ItemKind string

const (
	ItemHardware ItemKind = "hardware"
	ItemSoftware ItemKind = "software"
)

// Procurement request status values.
const (
	ProcurementPending  = "pending"
	ProcurementApproved = "approved"
	ProcurementRejected = "rejected"
	ProcurementOrdered  = "ordered"
	ProcurementReceived = "received"
)

// HardwareSpec is the specification payload for hardware requests.
type HardwareSpec struct {
	CPU     string `json:"cpu,omitempty"`
	RAM     string `json:"ram,omitempty"`
	Storage string `json:"storage,omitempty"`
	Screen  string `json:"screen,omitempty"`
	Other   string `json:"other,omitempty"`
}

// SoftwareSpec is the specification payload for software requests.
type SoftwareSpec struct {
	Edition     string `json:"edition,omitempty"`
	Seats       int    `json:"seats,omitempty"`
	TermMonths  int    `json:"term_months,omitempty"`
	Constraints string `json:"constraints,omitempty"`
}

// ItemSpec is a tagged union over the known specification shapes. Exactly one
// of Hardware/Software is non-nil, matching Kind.
type ItemSpec struct {
	Kind     ItemKind      `json:"kind"`
	Hardware *HardwareSpec `json:"hardware,omitempty"`
	Software *SoftwareSpec `json:"software,omitempty"`
}

// Validate checks that the payload matches the declared kind.
func (s *ItemSpec) Validate() error {
	switch s.Kind {
	case ItemHardware:
		if s.Hardware == nil || s.Software != nil {
			return fmt.Errorf("hardware spec requires a hardware payload only")
		}
	case ItemSoftware:
		if s.Software == nil || s.Hardware != nil {
			return fmt.Errorf("software spec requires a software payload only")
		}
	default:
		return fmt.Errorf("unknown item kind %q", s.Kind)
	}
	return nil
}

// ProcurementRequest is a purchase request for new hardware or software.
type ProcurementRequest struct {
	ID            string    `json:"id" db:"id"`
	RequesterID   *string   `json:"requester_id,omitempty" db:"requester_id"`
	EntityID      *string   `json:"entity_id,omitempty" db:"entity_id"`
	ItemName      string    `json:"item_name" db:"item_name"`
	ItemKind      ItemKind  `json:"item_kind" db:"item_kind"`
	SpecRaw       string    `json:"-" db:"specifications"` // JSON-encoded ItemSpec
	Quantity      int       `json:"quantity" db:"quantity"`
	Status        string    `json:"status" db:"status"`
	Justification string    `json:"justification" db:"justification"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Spec *ItemSpec `json:"specifications,omitempty" db:"-"`
}

// EncodeSpec serializes Spec into SpecRaw for storage.
func (p *ProcurementRequest) EncodeSpec() error {
	if p.Spec == nil {
		p.SpecRaw = ""
		return nil
	}
	if err := p.Spec.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(p.Spec)
	if err != nil {
		return fmt.Errorf("failed to encode specifications: %w", err)
	}
	p.SpecRaw = string(b)
	return nil
}

// DecodeSpec populates Spec from SpecRaw after a read.
func (p *ProcurementRequest) DecodeSpec() error {
	if p.SpecRaw == "" {
		p.Spec = nil
		return nil
	}
	var spec ItemSpec
	if err := json.Unmarshal([]byte(p.SpecRaw), &spec); err != nil {
		return fmt.Errorf("failed to decode specifications: %w", err)
	}
	p.Spec = &spec
	return nil
}
