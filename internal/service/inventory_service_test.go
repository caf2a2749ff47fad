package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/models"
)

func seedCollaborators(t *testing.T, svc OrganizationService, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		c := &models.Collaborator{FullName: "Person", Email: "", Role: "staff"}
		require.NoError(t, svc.CreateCollaborator(context.Background(), c))
		ids = append(ids, c.ID)
	}
	return ids
}

func TestCreateEquipmentAppliesRules(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rule := &models.AutomationRule{
		Name:         "tag network gear",
		TriggerEvent: models.TriggerEquipmentCreated,
		Active:       true,
		Conditions: []models.RuleCondition{
			{Field: "category", Operator: models.OpEquals, Value: json.RawMessage(`"Network"`)},
		},
		Actions: []models.RuleAction{
			{Type: models.ActionUpdateField, TargetField: "notes", Value: json.RawMessage(`"review quarterly"`)},
		},
	}
	require.NoError(t, repo.CreateRule(ctx, rule))

	engine := newTestEngine(t, repo)
	svc := NewInventoryService(repo, repo, repo, engine, nil, nil)

	eq := &models.Equipment{Name: "Core switch", Category: "Network"}
	require.NoError(t, svc.CreateEquipment(ctx, eq))

	stored, err := repo.GetEquipment(ctx, eq.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "review quarterly", stored.Notes)
	assert.Equal(t, models.EquipmentInStock, stored.Status)
}

func TestSyncAssignmentsEnforcesSeatCount(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	org := NewOrganizationService(repo, repo, nil)
	svc := NewInventoryService(repo, repo, repo, nil, nil, nil)

	collabs := seedCollaborators(t, org, 3)

	license := &models.License{Name: "IDE Pro", Vendor: "Acme", Seats: 2}
	require.NoError(t, svc.CreateLicense(ctx, license))

	err := svc.SyncAssignments(ctx, license.ID, collabs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seats")

	require.NoError(t, svc.SyncAssignments(ctx, license.ID, collabs[:2]))
	assigned, err := svc.ListAssignments(ctx, license.ID)
	require.NoError(t, err)
	assert.Len(t, assigned, 2)
}

func TestSyncAssignmentsReplacesSet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	org := NewOrganizationService(repo, repo, nil)
	svc := NewInventoryService(repo, repo, repo, nil, nil, nil)

	collabs := seedCollaborators(t, org, 3)
	license := &models.License{Name: "Suite", Vendor: "Acme", Seats: 3}
	require.NoError(t, svc.CreateLicense(ctx, license))

	require.NoError(t, svc.SyncAssignments(ctx, license.ID, collabs[:2]))
	require.NoError(t, svc.SyncAssignments(ctx, license.ID, []string{collabs[1], collabs[2]}))

	assigned, err := svc.ListAssignments(ctx, license.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 2)
	got := map[string]bool{}
	for _, a := range assigned {
		got[a.CollaboratorID] = true
	}
	assert.True(t, got[collabs[1]])
	assert.True(t, got[collabs[2]])
	assert.False(t, got[collabs[0]])
}

func TestSyncAssignmentsDeduplicates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	org := NewOrganizationService(repo, repo, nil)
	svc := NewInventoryService(repo, repo, repo, nil, nil, nil)

	collabs := seedCollaborators(t, org, 1)
	license := &models.License{Name: "Single", Vendor: "Acme", Seats: 1}
	require.NoError(t, svc.CreateLicense(ctx, license))

	// Repeating the same collaborator must not count against the seat limit.
	require.NoError(t, svc.SyncAssignments(ctx, license.ID, []string{collabs[0], collabs[0]}))
	assigned, err := svc.ListAssignments(ctx, license.ID)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)
}

func TestUpdateLicenseCannotShrinkBelowAssignments(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	org := NewOrganizationService(repo, repo, nil)
	svc := NewInventoryService(repo, repo, repo, nil, nil, nil)

	collabs := seedCollaborators(t, org, 2)
	license := &models.License{Name: "Suite", Vendor: "Acme", Seats: 2}
	require.NoError(t, svc.CreateLicense(ctx, license))
	require.NoError(t, svc.SyncAssignments(ctx, license.ID, collabs))

	license.Seats = 1
	err := svc.UpdateLicense(ctx, license)
	assert.Error(t, err)
}
