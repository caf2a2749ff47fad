package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TriggerEvent names the record-creation event a rule listens on.
type TriggerEvent string

const (
	TriggerTicketCreated    TriggerEvent = "TICKET_CREATED"
	TriggerEquipmentCreated TriggerEvent = "EQUIPMENT_CREATED"
)

// ConditionOperator is the comparison applied by a rule condition.
type ConditionOperator string

const (
	OpEquals      ConditionOperator = "equals"
	OpNotEquals   ConditionOperator = "not_equals"
	OpContains    ConditionOperator = "contains"
	OpStartsWith  ConditionOperator = "starts_with"
	OpGreaterThan ConditionOperator = "greater_than"
	OpLessThan    ConditionOperator = "less_than"
	OpIsEmpty     ConditionOperator = "is_empty"
	OpIsNotEmpty  ConditionOperator = "is_not_empty"
)

// ActionType names the mutation or side effect a rule action performs.
type ActionType string

const (
	ActionAssignTeam  ActionType = "ASSIGN_TEAM"
	ActionAssignUser  ActionType = "ASSIGN_USER"
	ActionSetPriority ActionType = "SET_PRIORITY"
	ActionSetStatus   ActionType = "SET_STATUS"
	ActionUpdateField ActionType = "UPDATE_FIELD"
	ActionSendEmail   ActionType = "SEND_EMAIL"
)

// RuleCondition is one predicate over a field of the triggering record.
// Conditions of a rule are combined with logical AND.
type RuleCondition struct {
	Field    string            `json:"field"`
	Operator ConditionOperator `json:"operator"`
	Value    json.RawMessage   `json:"value,omitempty"`
}

// RuleAction is one mutation or side effect applied when a rule matches.
// Actions run in array order; later writes win on field conflicts.
type RuleAction struct {
	Type        ActionType      `json:"type"`
	Value       json.RawMessage `json:"value,omitempty"`
	TargetField string          `json:"target_field,omitempty"`
}

// AutomationRule matches newly created tickets or equipment and applies its
// actions before the record is persisted. Rules with empty conditions always
// match their trigger. Rules are applied in ascending priority; the lowest
// number is evaluated first.
type AutomationRule struct {
	ID           string       `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	TriggerEvent TriggerEvent `json:"trigger_event" db:"trigger_event"`
	Priority     int          `json:"priority" db:"priority"`
	Active       bool         `json:"is_active" db:"-"`
	ActiveDB     int          `json:"-" db:"is_active"` // 0/1 in SQLite

	Conditions    []RuleCondition `json:"conditions" db:"-"`
	ConditionsRaw string          `json:"-" db:"conditions"` // JSON-encoded, stored in DB
	Actions       []RuleAction    `json:"actions" db:"-"`
	ActionsRaw    string          `json:"-" db:"actions"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EncodeRule serializes conditions and actions for storage and mirrors the
// Active flag into its SQLite integer column.
func (r *AutomationRule) EncodeRule() error {
	if r.Conditions == nil {
		r.Conditions = []RuleCondition{}
	}
	if r.Actions == nil {
		r.Actions = []RuleAction{}
	}
	cb, err := json.Marshal(r.Conditions)
	if err != nil {
		return fmt.Errorf("failed to encode rule conditions: %w", err)
	}
	ab, err := json.Marshal(r.Actions)
	if err != nil {
		return fmt.Errorf("failed to encode rule actions: %w", err)
	}
	r.ConditionsRaw = string(cb)
	r.ActionsRaw = string(ab)
	r.ActiveDB = 0
	if r.Active {
		r.ActiveDB = 1
	}
	return nil
}

// DecodeRule populates conditions, actions, and the Active flag after a read.
// Malformed stored JSON yields empty sets rather than an error so that one bad
// row cannot break rule evaluation for every other rule.
func (r *AutomationRule) DecodeRule() {
	r.Active = r.ActiveDB != 0
	r.Conditions = []RuleCondition{}
	r.Actions = []RuleAction{}
	if r.ConditionsRaw != "" {
		_ = json.Unmarshal([]byte(r.ConditionsRaw), &r.Conditions)
	}
	if r.ActionsRaw != "" {
		_ = json.Unmarshal([]byte(r.ActionsRaw), &r.Actions)
	}
}
