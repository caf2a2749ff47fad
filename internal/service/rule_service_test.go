package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/models"
)

func validRule() *models.AutomationRule {
	return &models.AutomationRule{
		Name:         "escalate urgent",
		TriggerEvent: models.TriggerTicketCreated,
		Active:       true,
		Conditions: []models.RuleCondition{
			{Field: "priority", Operator: models.OpEquals, Value: json.RawMessage(`"urgent"`)},
		},
		Actions: []models.RuleAction{
			{Type: models.ActionSetStatus, Value: json.RawMessage(`"in_progress"`)},
		},
	}
}

func TestRuleCreateRefreshesEngine(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	engine := newTestEngine(t, repo)
	svc := NewRuleService(repo, engine)

	assert.Zero(t, engine.RuleCount())
	require.NoError(t, svc.Create(ctx, validRule()))
	assert.Equal(t, 1, engine.RuleCount())
	assert.Equal(t, 100, mustGetOnly(t, svc).Priority) // default priority
}

func TestRuleDeleteRefreshesEngine(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	engine := newTestEngine(t, repo)
	svc := NewRuleService(repo, engine)

	r := validRule()
	require.NoError(t, svc.Create(ctx, r))
	require.NoError(t, svc.Delete(ctx, r.ID))
	assert.Zero(t, engine.RuleCount())
}

func TestRuleInactiveNotCached(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	engine := newTestEngine(t, repo)
	svc := NewRuleService(repo, engine)

	r := validRule()
	r.Active = false
	require.NoError(t, svc.Create(ctx, r))
	assert.Zero(t, engine.RuleCount())

	// Listing for the admin UI still shows it.
	rules, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestRuleValidation(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewRuleService(repo, nil)
	ctx := context.Background()

	t.Run("missing name", func(t *testing.T) {
		r := validRule()
		r.Name = " "
		assert.Error(t, svc.Create(ctx, r))
	})

	t.Run("unknown trigger", func(t *testing.T) {
		r := validRule()
		r.TriggerEvent = "LICENSE_CREATED"
		assert.Error(t, svc.Create(ctx, r))
	})

	t.Run("unknown operator", func(t *testing.T) {
		r := validRule()
		r.Conditions[0].Operator = "matches_regex"
		assert.Error(t, svc.Create(ctx, r))
	})

	t.Run("no actions", func(t *testing.T) {
		r := validRule()
		r.Actions = nil
		assert.Error(t, svc.Create(ctx, r))
	})

	t.Run("update_field without target", func(t *testing.T) {
		r := validRule()
		r.Actions = []models.RuleAction{{Type: models.ActionUpdateField}}
		assert.Error(t, svc.Create(ctx, r))
	})
}

func TestRuleRoundTripPreservesConditions(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	svc := NewRuleService(repo, nil)

	r := validRule()
	require.NoError(t, svc.Create(ctx, r))

	stored, err := svc.Get(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Conditions, 1)
	assert.Equal(t, models.OpEquals, stored.Conditions[0].Operator)
	require.Len(t, stored.Actions, 1)
	assert.Equal(t, models.ActionSetStatus, stored.Actions[0].Type)
	assert.True(t, stored.Active)
}

func mustGetOnly(t *testing.T, svc RuleService) *models.AutomationRule {
	t.Helper()
	rules, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	return &rules[0]
}
