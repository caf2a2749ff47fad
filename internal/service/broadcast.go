package service

// Broadcaster pushes refresh hints to connected dashboard clients. The
// WebSocket hub implements it; services stay transport-agnostic.
type Broadcaster interface {
	BroadcastRefresh(domain, event string, resource interface{})
}

// NopBroadcaster discards broadcasts, used when no hub is wired (tests, CLI).
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastRefresh(domain, event string, resource interface{}) {}

// Domains announced in refresh broadcasts.
const (
	DomainInventory    = "inventory"
	DomainOrganization = "organization"
	DomainSupport      = "support"
	DomainProcurement  = "procurement"
	DomainCompliance   = "compliance"
)

// Events announced in refresh broadcasts.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)
