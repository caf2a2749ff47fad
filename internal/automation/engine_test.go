package automation

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/models"
)

func raw(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

type staticLoader struct {
	rules []models.AutomationRule
}

func (l staticLoader) ListActiveRules(ctx context.Context) ([]models.AutomationRule, error) {
	return l.rules, nil
}

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) SendRuleEmail(recipient, subject, message string) {
	m.sent = append(m.sent, recipient)
}

func newTestEngine(t *testing.T, rules ...models.AutomationRule) (*Engine, *recordingMailer) {
	t.Helper()
	mailer := &recordingMailer{}
	e := NewEngine(staticLoader{rules: rules}, mailer, nil)
	require.NoError(t, e.Refresh(context.Background()))
	return e, mailer
}

func TestOperatorTable(t *testing.T) {
	record := mapSource{"category": "Hardware", "priority": 3}

	cases := []struct {
		name string
		cond models.RuleCondition
		want bool
	}{
		{"equals match", models.RuleCondition{Field: "category", Operator: models.OpEquals, Value: raw("Hardware")}, true},
		{"equals case mismatch", models.RuleCondition{Field: "category", Operator: models.OpEquals, Value: raw("hardware")}, false},
		{"not_equals", models.RuleCondition{Field: "category", Operator: models.OpNotEquals, Value: raw("Software")}, true},
		{"contains", models.RuleCondition{Field: "category", Operator: models.OpContains, Value: raw("ard")}, true},
		{"contains case insensitive", models.RuleCondition{Field: "category", Operator: models.OpContains, Value: raw("HARD")}, true},
		{"contains on number fails", models.RuleCondition{Field: "priority", Operator: models.OpContains, Value: raw("3")}, false},
		{"starts_with", models.RuleCondition{Field: "category", Operator: models.OpStartsWith, Value: raw("hard")}, true},
		{"starts_with miss", models.RuleCondition{Field: "category", Operator: models.OpStartsWith, Value: raw("soft")}, false},
		{"greater_than", models.RuleCondition{Field: "priority", Operator: models.OpGreaterThan, Value: raw(2)}, true},
		{"greater_than equal fails", models.RuleCondition{Field: "priority", Operator: models.OpGreaterThan, Value: raw(3)}, false},
		{"less_than", models.RuleCondition{Field: "priority", Operator: models.OpLessThan, Value: raw(5)}, true},
		{"greater_than on string fails", models.RuleCondition{Field: "category", Operator: models.OpGreaterThan, Value: raw(1)}, false},
		{"is_empty on missing field", models.RuleCondition{Field: "missing", Operator: models.OpIsEmpty}, true},
		{"is_not_empty on missing field", models.RuleCondition{Field: "missing", Operator: models.OpIsNotEmpty}, false},
		{"is_not_empty on set field", models.RuleCondition{Field: "category", Operator: models.OpIsNotEmpty}, true},
		{"unknown field equals never matches", models.RuleCondition{Field: "missing", Operator: models.OpEquals, Value: raw("x")}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, evaluateCondition(tc.cond, record))
		})
	}
}

func TestEqualsNumericCanonicalForm(t *testing.T) {
	record := mapSource{"priority": float64(3)}
	cond := models.RuleCondition{Field: "priority", Operator: models.OpEquals, Value: raw(3)}
	assert.True(t, evaluateCondition(cond, record))
}

func TestEmptyConditionsAlwaysMatchTrigger(t *testing.T) {
	rule := models.AutomationRule{
		Name:         "catch-all",
		TriggerEvent: models.TriggerTicketCreated,
		Active:       true,
		Actions:      []models.RuleAction{{Type: models.ActionSetPriority, Value: raw("high")}},
	}
	e, _ := newTestEngine(t, rule)

	ticket := &models.Ticket{Title: "anything", Priority: "normal"}
	e.ApplyTicketRules(ticket)
	assert.Equal(t, "high", ticket.Priority)

	// Same rule does not fire for the other trigger.
	eq := &models.Equipment{Name: "laptop", Status: "in_stock"}
	e.ApplyEquipmentRules(eq)
	assert.Equal(t, "in_stock", eq.Status)
}

func TestConditionsAreMonotonic(t *testing.T) {
	// Adding a condition can only narrow the set of matching records.
	base := models.AutomationRule{
		TriggerEvent: models.TriggerTicketCreated,
		Conditions: []models.RuleCondition{
			{Field: "category", Operator: models.OpEquals, Value: raw("Hardware")},
		},
	}
	narrowed := base
	narrowed.Conditions = append([]models.RuleCondition{}, base.Conditions...)
	narrowed.Conditions = append(narrowed.Conditions, models.RuleCondition{
		Field: "priority", Operator: models.OpEquals, Value: raw("urgent"),
	})

	e, _ := newTestEngine(t)
	records := []mapSource{
		{"category": "Hardware", "priority": "urgent"},
		{"category": "Hardware", "priority": "low"},
		{"category": "Software", "priority": "urgent"},
		{},
	}
	for _, rec := range records {
		if e.matches(narrowed, rec) {
			assert.True(t, e.matches(base, rec), "narrowed rule matched a record the base rule did not")
		}
	}
}

func TestRulesApplyInAscendingPriority(t *testing.T) {
	// Both rules match; the higher priority number runs last and wins the
	// field conflict.
	first := models.AutomationRule{
		Name:         "first",
		TriggerEvent: models.TriggerTicketCreated,
		Priority:     1,
		Active:       true,
		Actions:      []models.RuleAction{{Type: models.ActionSetStatus, Value: raw("triaged")}},
	}
	second := models.AutomationRule{
		Name:         "second",
		TriggerEvent: models.TriggerTicketCreated,
		Priority:     10,
		Active:       true,
		Actions:      []models.RuleAction{{Type: models.ActionSetStatus, Value: raw("escalated")}},
	}
	// Deliberately registered out of order; Refresh sorts.
	e, _ := newTestEngine(t, second, first)

	ticket := &models.Ticket{}
	e.ApplyTicketRules(ticket)
	assert.Equal(t, "escalated", ticket.Status)
}

func TestActionApplicationIsIdempotent(t *testing.T) {
	teamID := raw("team-net")
	rule := models.AutomationRule{
		Name:         "route-network",
		TriggerEvent: models.TriggerTicketCreated,
		Active:       true,
		Conditions: []models.RuleCondition{
			{Field: "category", Operator: models.OpContains, Value: raw("network")},
		},
		Actions: []models.RuleAction{
			{Type: models.ActionAssignTeam, Value: teamID},
			{Type: models.ActionSetPriority, Value: raw("high")},
		},
	}
	e, _ := newTestEngine(t, rule)

	once := &models.Ticket{Category: "Network Outage"}
	e.ApplyTicketRules(once)

	twice := &models.Ticket{Category: "Network Outage"}
	e.ApplyTicketRules(twice)
	e.ApplyTicketRules(twice)

	assert.Equal(t, once.Priority, twice.Priority)
	require.NotNil(t, twice.AssignedTeam)
	assert.Equal(t, "team-net", *twice.AssignedTeam)
	assert.Equal(t, *once.AssignedTeam, *twice.AssignedTeam)
}

func TestLaterActionsWinOnFieldConflict(t *testing.T) {
	rule := models.AutomationRule{
		Name:         "conflicting",
		TriggerEvent: models.TriggerTicketCreated,
		Active:       true,
		Actions: []models.RuleAction{
			{Type: models.ActionSetPriority, Value: raw("low")},
			{Type: models.ActionSetPriority, Value: raw("urgent")},
		},
	}
	e, _ := newTestEngine(t, rule)

	ticket := &models.Ticket{}
	e.ApplyTicketRules(ticket)
	assert.Equal(t, "urgent", ticket.Priority)
}

func TestMalformedActionIsSkippedNotFatal(t *testing.T) {
	rule := models.AutomationRule{
		Name:         "partly-broken",
		TriggerEvent: models.TriggerEquipmentCreated,
		Active:       true,
		Actions: []models.RuleAction{
			{Type: models.ActionUpdateField, TargetField: "no_such_field", Value: raw("x")},
			{Type: models.ActionUpdateField, TargetField: "notes", Value: raw("tagged by rule")},
		},
	}
	e, _ := newTestEngine(t, rule)

	eq := &models.Equipment{Name: "switch", Category: "Network"}
	e.ApplyEquipmentRules(eq)
	assert.Equal(t, "tagged by rule", eq.Notes)
}

func TestSendEmailActionDispatchesToMailer(t *testing.T) {
	rule := models.AutomationRule{
		Name:         "notify-secops",
		TriggerEvent: models.TriggerTicketCreated,
		Active:       true,
		Conditions: []models.RuleCondition{
			{Field: "security_incident_type", Operator: models.OpIsNotEmpty},
		},
		Actions: []models.RuleAction{
			{Type: models.ActionSendEmail, Value: raw("secops@example.com")},
		},
	}
	e, mailer := newTestEngine(t, rule)

	incident := "phishing"
	e.ApplyTicketRules(&models.Ticket{SecurityIncidentType: &incident})
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "secops@example.com", mailer.sent[0])

	// Plain ticket: condition fails, no email.
	e.ApplyTicketRules(&models.Ticket{Title: "printer jam"})
	assert.Len(t, mailer.sent, 1)
}

func TestAssignActionsUsePerTriggerForeignKeys(t *testing.T) {
	rule := models.AutomationRule{
		Name:         "assign-owner",
		TriggerEvent: models.TriggerEquipmentCreated,
		Active:       true,
		Actions: []models.RuleAction{
			{Type: models.ActionAssignUser, Value: raw("collab-7")},
			{Type: models.ActionAssignTeam, Value: raw("team-it")},
		},
	}
	e, _ := newTestEngine(t, rule)

	eq := &models.Equipment{Name: "dock"}
	e.ApplyEquipmentRules(eq)
	require.NotNil(t, eq.AssignedTo)
	assert.Equal(t, "collab-7", *eq.AssignedTo)
	require.NotNil(t, eq.TeamID)
	assert.Equal(t, "team-it", *eq.TeamID)
}
