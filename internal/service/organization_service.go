package service

import (
	"context"
	"fmt"

	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/pkg/validate"
	"github.com/inventra/inventra-backend/internal/repository"
)

// OrganizationService manages the institution > entity > team > collaborator
// hierarchy.
type OrganizationService interface {
	ListInstitutions(ctx context.Context) ([]models.Institution, error)
	GetInstitution(ctx context.Context, id string) (*models.Institution, error)
	CreateInstitution(ctx context.Context, in *models.Institution) error
	UpdateInstitution(ctx context.Context, in *models.Institution) error
	DeleteInstitution(ctx context.Context, id string) error

	ListEntities(ctx context.Context) ([]models.OrgEntity, error)
	GetEntity(ctx context.Context, id string) (*models.OrgEntity, error)
	CreateEntity(ctx context.Context, e *models.OrgEntity) error
	UpdateEntity(ctx context.Context, e *models.OrgEntity) error
	DeleteEntity(ctx context.Context, id string) error

	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	CreateTeam(ctx context.Context, t *models.Team) error
	UpdateTeam(ctx context.Context, t *models.Team) error
	DeleteTeam(ctx context.Context, id string) error

	ListCollaborators(ctx context.Context) ([]models.Collaborator, error)
	GetCollaborator(ctx context.Context, id string) (*models.Collaborator, error)
	CreateCollaborator(ctx context.Context, c *models.Collaborator) error
	UpdateCollaborator(ctx context.Context, c *models.Collaborator) error
	DeleteCollaborator(ctx context.Context, id string) error

	Snapshot(ctx context.Context) (*models.OrganizationSnapshot, error)
}

type organizationService struct {
	repo      repository.OrganizationRepository
	snapshots repository.SnapshotRepository
	broadcast Broadcaster
}

func NewOrganizationService(
	repo repository.OrganizationRepository,
	snapshots repository.SnapshotRepository,
	broadcast Broadcaster,
) OrganizationService {
	if broadcast == nil {
		broadcast = NopBroadcaster{}
	}
	return &organizationService{repo: repo, snapshots: snapshots, broadcast: broadcast}
}

func (s *organizationService) ListInstitutions(ctx context.Context) ([]models.Institution, error) {
	return s.repo.ListInstitutions(ctx)
}

func (s *organizationService) GetInstitution(ctx context.Context, id string) (*models.Institution, error) {
	return s.repo.GetInstitution(ctx, id)
}

func (s *organizationService) CreateInstitution(ctx context.Context, in *models.Institution) error {
	if !validate.Required(in.Name) {
		return fmt.Errorf("institution name is required")
	}
	if err := s.repo.CreateInstitution(ctx, in); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventCreated, in)
	return nil
}

func (s *organizationService) UpdateInstitution(ctx context.Context, in *models.Institution) error {
	existing, err := s.repo.GetInstitution(ctx, in.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("institution %s not found", in.ID)
	}
	if err := s.repo.UpdateInstitution(ctx, in); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventUpdated, in)
	return nil
}

func (s *organizationService) DeleteInstitution(ctx context.Context, id string) error {
	// Entities under the institution block deletion; forcing the user to move
	// or delete them first keeps the hierarchy consistent.
	entities, err := s.repo.ListEntities(ctx)
	if err != nil {
		return err
	}
	for i := range entities {
		if entities[i].InstitutionID == id {
			return fmt.Errorf("institution %s still has entities", id)
		}
	}
	if err := s.repo.DeleteInstitution(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventDeleted, nil)
	return nil
}

func (s *organizationService) ListEntities(ctx context.Context) ([]models.OrgEntity, error) {
	return s.repo.ListEntities(ctx)
}

func (s *organizationService) GetEntity(ctx context.Context, id string) (*models.OrgEntity, error) {
	return s.repo.GetEntity(ctx, id)
}

func (s *organizationService) CreateEntity(ctx context.Context, e *models.OrgEntity) error {
	if !validate.Required(e.Name, e.InstitutionID) {
		return fmt.Errorf("entity name and institution_id are required")
	}
	parent, err := s.repo.GetInstitution(ctx, e.InstitutionID)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("institution %s not found", e.InstitutionID)
	}
	if err := s.repo.CreateEntity(ctx, e); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventCreated, e)
	return nil
}

func (s *organizationService) UpdateEntity(ctx context.Context, e *models.OrgEntity) error {
	existing, err := s.repo.GetEntity(ctx, e.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("entity %s not found", e.ID)
	}
	if err := s.repo.UpdateEntity(ctx, e); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventUpdated, e)
	return nil
}

func (s *organizationService) DeleteEntity(ctx context.Context, id string) error {
	if err := s.repo.DeleteEntity(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventDeleted, nil)
	return nil
}

func (s *organizationService) ListTeams(ctx context.Context) ([]models.Team, error) {
	return s.repo.ListTeams(ctx)
}

func (s *organizationService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	return s.repo.GetTeam(ctx, id)
}

func (s *organizationService) CreateTeam(ctx context.Context, t *models.Team) error {
	if !validate.Required(t.Name) {
		return fmt.Errorf("team name is required")
	}
	if err := s.repo.CreateTeam(ctx, t); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventCreated, t)
	return nil
}

func (s *organizationService) UpdateTeam(ctx context.Context, t *models.Team) error {
	existing, err := s.repo.GetTeam(ctx, t.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("team %s not found", t.ID)
	}
	if err := s.repo.UpdateTeam(ctx, t); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventUpdated, t)
	return nil
}

func (s *organizationService) DeleteTeam(ctx context.Context, id string) error {
	if err := s.repo.DeleteTeam(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventDeleted, nil)
	return nil
}

func (s *organizationService) ListCollaborators(ctx context.Context) ([]models.Collaborator, error) {
	return s.repo.ListCollaborators(ctx)
}

func (s *organizationService) GetCollaborator(ctx context.Context, id string) (*models.Collaborator, error) {
	return s.repo.GetCollaborator(ctx, id)
}

func (s *organizationService) CreateCollaborator(ctx context.Context, c *models.Collaborator) error {
	if !validate.Required(c.FullName) {
		return fmt.Errorf("collaborator full_name is required")
	}
	if c.Email != "" && !validate.Email(c.Email) {
		return fmt.Errorf("invalid collaborator email %q", c.Email)
	}
	if c.Status == "" {
		c.Status = "active"
	}
	if err := s.repo.CreateCollaborator(ctx, c); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventCreated, c)
	return nil
}

func (s *organizationService) UpdateCollaborator(ctx context.Context, c *models.Collaborator) error {
	existing, err := s.repo.GetCollaborator(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("collaborator %s not found", c.ID)
	}
	if c.Email != "" && !validate.Email(c.Email) {
		return fmt.Errorf("invalid collaborator email %q", c.Email)
	}
	if err := s.repo.UpdateCollaborator(ctx, c); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventUpdated, c)
	return nil
}

func (s *organizationService) DeleteCollaborator(ctx context.Context, id string) error {
	if err := s.repo.DeleteCollaborator(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainOrganization, EventDeleted, nil)
	return nil
}

func (s *organizationService) Snapshot(ctx context.Context) (*models.OrganizationSnapshot, error) {
	return s.snapshots.OrganizationSnapshot(ctx)
}
