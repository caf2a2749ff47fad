package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/models"
)

func TestCreateTicketAppliesRulesBeforePersisting(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rule := &models.AutomationRule{
		Name:         "route hardware to IT",
		TriggerEvent: models.TriggerTicketCreated,
		Priority:     10,
		Active:       true,
		Conditions: []models.RuleCondition{
			{Field: "category", Operator: models.OpEquals, Value: json.RawMessage(`"hardware"`)},
		},
		Actions: []models.RuleAction{
			{Type: models.ActionAssignTeam, Value: json.RawMessage(`"team-it"`)},
			{Type: models.ActionSetPriority, Value: json.RawMessage(`"high"`)},
		},
	}
	require.NoError(t, repo.CreateRule(ctx, rule))

	engine := newTestEngine(t, repo)
	svc := NewSupportService(repo, repo, engine, nil, nil)

	ticket := &models.Ticket{Title: "Broken dock", Category: "hardware"}
	require.NoError(t, svc.CreateTicket(ctx, ticket))

	// Rule output must be in the stored row, not only in memory.
	stored, err := repo.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "high", stored.Priority)
	require.NotNil(t, stored.AssignedTeam)
	assert.Equal(t, "team-it", *stored.AssignedTeam)
	assert.Equal(t, models.TicketOpen, stored.Status)
}

func TestCreateTicketDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	svc := NewSupportService(repo, repo, nil, nil, nil)

	ticket := &models.Ticket{Title: "No category"}
	require.NoError(t, svc.CreateTicket(ctx, ticket))
	assert.Equal(t, models.TicketOpen, ticket.Status)
	assert.Equal(t, "normal", ticket.Priority)
	assert.NotEmpty(t, ticket.ID)
}

func TestUpdateTicketMissingRow(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewSupportService(repo, repo, nil, nil, nil)

	err := svc.UpdateTicket(context.Background(), &models.Ticket{ID: "nope", Title: "x"})
	assert.Error(t, err)
}

func TestSupportBroadcasts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	bc := &recordingBroadcaster{}
	svc := NewSupportService(repo, repo, nil, nil, bc)

	ticket := &models.Ticket{Title: "t"}
	require.NoError(t, svc.CreateTicket(ctx, ticket))
	require.NoError(t, svc.DeleteTicket(ctx, ticket.ID))

	assert.Equal(t, []string{"support:created", "support:deleted"}, bc.all())
}

func TestSupportSnapshotAlwaysHasLists(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewSupportService(repo, repo, nil, nil, nil)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snap.Tickets)
	assert.NotNil(t, snap.Teams)
}
