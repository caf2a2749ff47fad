package automation

import (
	"github.com/inventra/inventra-backend/internal/models"
)

// fieldSource resolves condition fields and applies action writes for one
// trigger type. Field names form a closed catalog per trigger: get reports
// whether the name is known, so a typo in a rule is distinguishable from a
// field that is merely unset.
type fieldSource interface {
	get(name string) (value interface{}, known bool)
	set(name string, value string) bool
}

// Permitted field names per trigger. Assignment actions target the
// foreign-key fields listed here.
const (
	ticketFieldTeam = "assigned_team"
	ticketFieldUser = "assigned_user"

	equipmentFieldTeam = "team_id"
	equipmentFieldUser = "assigned_to"
)

type ticketSource struct {
	t *models.Ticket
}

func (s ticketSource) get(name string) (interface{}, bool) {
	switch name {
	case "title":
		return s.t.Title, true
	case "description":
		return s.t.Description, true
	case "category":
		return s.t.Category, true
	case "priority":
		return s.t.Priority, true
	case "status":
		return s.t.Status, true
	case "requester_id":
		return strPtrValue(s.t.RequesterID), true
	case ticketFieldTeam:
		return strPtrValue(s.t.AssignedTeam), true
	case ticketFieldUser:
		return strPtrValue(s.t.AssignedUser), true
	case "security_incident_type":
		return strPtrValue(s.t.SecurityIncidentType), true
	case "impact_criticality":
		return strPtrValue(s.t.ImpactCriticality), true
	}
	return nil, false
}

func (s ticketSource) set(name, value string) bool {
	switch name {
	case "title":
		s.t.Title = value
	case "description":
		s.t.Description = value
	case "category":
		s.t.Category = value
	case "priority":
		s.t.Priority = value
	case "status":
		s.t.Status = value
	case ticketFieldTeam:
		s.t.AssignedTeam = &value
	case ticketFieldUser:
		s.t.AssignedUser = &value
	case "security_incident_type":
		s.t.SecurityIncidentType = &value
	case "impact_criticality":
		s.t.ImpactCriticality = &value
	default:
		return false
	}
	return true
}

type equipmentSource struct {
	e *models.Equipment
}

func (s equipmentSource) get(name string) (interface{}, bool) {
	switch name {
	case "name":
		return s.e.Name, true
	case "category":
		return s.e.Category, true
	case "brand":
		return s.e.Brand, true
	case "model":
		return s.e.Model, true
	case "serial_number":
		return s.e.SerialNumber, true
	case "status":
		return s.e.Status, true
	case "notes":
		return s.e.Notes, true
	case "entity_id":
		return strPtrValue(s.e.EntityID), true
	case equipmentFieldTeam:
		return strPtrValue(s.e.TeamID), true
	case equipmentFieldUser:
		return strPtrValue(s.e.AssignedTo), true
	}
	return nil, false
}

func (s equipmentSource) set(name, value string) bool {
	switch name {
	case "name":
		s.e.Name = value
	case "category":
		s.e.Category = value
	case "brand":
		s.e.Brand = value
	case "model":
		s.e.Model = value
	case "serial_number":
		s.e.SerialNumber = value
	case "status":
		s.e.Status = value
	case "notes":
		s.e.Notes = value
	case equipmentFieldTeam:
		s.e.TeamID = &value
	case equipmentFieldUser:
		s.e.AssignedTo = &value
	default:
		return false
	}
	return true
}

// mapSource adapts a plain field map, used by tests and by callers that
// evaluate rules against ad hoc records.
type mapSource map[string]interface{}

func (m mapSource) get(name string) (interface{}, bool) {
	v, ok := m[name]
	return v, ok
}

func (m mapSource) set(name, value string) bool {
	m[name] = value
	return true
}

func strPtrValue(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
