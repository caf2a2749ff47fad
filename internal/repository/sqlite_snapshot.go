package repository

import (
	"context"
	"fmt"

	"github.com/inventra/inventra-backend/internal/models"
)

// SnapshotRepository implementation. Each snapshot hydrates one dashboard in
// a single round trip; every list is present even when empty.

func (r *SQLiteRepository) InventorySnapshot(ctx context.Context) (*models.InventorySnapshot, error) {
	equipment, err := r.ListEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	licenses, err := r.ListLicenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	assignments := []models.LicenseAssignment{}
	if err := r.db.SelectContext(ctx, &assignments,
		`SELECT * FROM license_assignments ORDER BY assigned_at`); err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	return &models.InventorySnapshot{
		Equipment:   equipment,
		Licenses:    licenses,
		Assignments: assignments,
	}, nil
}

func (r *SQLiteRepository) OrganizationSnapshot(ctx context.Context) (*models.OrganizationSnapshot, error) {
	institutions, err := r.ListInstitutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("organization snapshot: %w", err)
	}
	entities, err := r.ListEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("organization snapshot: %w", err)
	}
	teams, err := r.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("organization snapshot: %w", err)
	}
	collaborators, err := r.ListCollaborators(ctx)
	if err != nil {
		return nil, fmt.Errorf("organization snapshot: %w", err)
	}
	return &models.OrganizationSnapshot{
		Institutions:  institutions,
		Entities:      entities,
		Teams:         teams,
		Collaborators: collaborators,
	}, nil
}

func (r *SQLiteRepository) SupportSnapshot(ctx context.Context) (*models.SupportSnapshot, error) {
	tickets, err := r.ListTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("support snapshot: %w", err)
	}
	teams, err := r.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("support snapshot: %w", err)
	}
	return &models.SupportSnapshot{Tickets: tickets, Teams: teams}, nil
}

func (r *SQLiteRepository) ComplianceSnapshot(ctx context.Context) (*models.ComplianceSnapshot, error) {
	tickets, err := r.ListTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("compliance snapshot: %w", err)
	}
	vulns, err := r.ListVulnerabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("compliance snapshot: %w", err)
	}
	backups, err := r.ListBackupExecutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("compliance snapshot: %w", err)
	}
	trainings, err := r.ListTrainingRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("compliance snapshot: %w", err)
	}
	collaborators, err := r.ListCollaborators(ctx)
	if err != nil {
		return nil, fmt.Errorf("compliance snapshot: %w", err)
	}
	return &models.ComplianceSnapshot{
		Tickets:         tickets,
		Vulnerabilities: vulns,
		Backups:         backups,
		Trainings:       trainings,
		Collaborators:   collaborators,
	}, nil
}
