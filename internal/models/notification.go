package models

import "time"

// Notification event names.
const (
	EventTicketCreated      = "ticket_created"
	EventTicketUpdated      = "ticket_updated"
	EventEquipmentCreated   = "equipment_created"
	EventRuleEmail          = "rule_email"
	EventVulnerabilityFound = "vulnerability_found"
)

// NotificationChannel is a configured webhook endpoint that receives
// lifecycle events and rule-triggered emails.
type NotificationChannel struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	EndpointURL string `json:"endpoint_url" db:"endpoint_url"`
	// EventTypes is the set of event names this channel subscribes to.
	// Empty means the channel receives every event.
	EventTypes    []string  `json:"event_types" db:"-"`
	EventTypesRaw string    `json:"-" db:"event_types"` // JSON-encoded, stored in DB
	Enabled       bool      `json:"enabled" db:"-"`
	EnabledDB     int       `json:"-" db:"enabled"` // 0/1 in SQLite
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// NotifyEvent is the payload delivered to each subscribed channel.
type NotifyEvent struct {
	EventType     string `json:"event_type"`
	ResourceTable string `json:"resource_table,omitempty"`
	ResourceID    string `json:"resource_id,omitempty"`
	Recipient     string `json:"recipient,omitempty"` // for rule_email events
	Subject       string `json:"subject,omitempty"`
	Message       string `json:"message,omitempty"`
	// OccurredAt is the server-side timestamp of the event.
	OccurredAt string `json:"occurred_at"`
}
