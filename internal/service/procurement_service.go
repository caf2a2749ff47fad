package service

import (
	"context"
	"fmt"

	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/pkg/validate"
	"github.com/inventra/inventra-backend/internal/repository"
)

// validProcurementTransitions is the status machine for purchase requests.
// Terminal states have no outgoing edges.
var validProcurementTransitions = map[string][]string{
	models.ProcurementPending:  {models.ProcurementApproved, models.ProcurementRejected},
	models.ProcurementApproved: {models.ProcurementOrdered, models.ProcurementRejected},
	models.ProcurementOrdered:  {models.ProcurementReceived},
}

// ProcurementService manages purchase requests for hardware and software.
type ProcurementService interface {
	List(ctx context.Context) ([]models.ProcurementRequest, error)
	Get(ctx context.Context, id string) (*models.ProcurementRequest, error)
	Create(ctx context.Context, p *models.ProcurementRequest) error
	Update(ctx context.Context, p *models.ProcurementRequest) error
	Delete(ctx context.Context, id string) error
}

type procurementService struct {
	repo      repository.ProcurementRepository
	broadcast Broadcaster
}

func NewProcurementService(repo repository.ProcurementRepository, broadcast Broadcaster) ProcurementService {
	if broadcast == nil {
		broadcast = NopBroadcaster{}
	}
	return &procurementService{repo: repo, broadcast: broadcast}
}

func (s *procurementService) List(ctx context.Context) ([]models.ProcurementRequest, error) {
	return s.repo.ListProcurementRequests(ctx)
}

func (s *procurementService) Get(ctx context.Context, id string) (*models.ProcurementRequest, error) {
	return s.repo.GetProcurementRequest(ctx, id)
}

func (s *procurementService) Create(ctx context.Context, p *models.ProcurementRequest) error {
	if !validate.Required(p.ItemName) {
		return fmt.Errorf("procurement item_name is required")
	}
	if p.Quantity <= 0 {
		p.Quantity = 1
	}
	if p.Status == "" {
		p.Status = models.ProcurementPending
	}
	if p.Status != models.ProcurementPending {
		return fmt.Errorf("new procurement requests must start as %s", models.ProcurementPending)
	}
	if p.Spec != nil {
		if p.Spec.Kind != p.ItemKind {
			return fmt.Errorf("specification kind %q does not match item kind %q", p.Spec.Kind, p.ItemKind)
		}
		if err := p.Spec.Validate(); err != nil {
			return err
		}
	}
	if err := s.repo.CreateProcurementRequest(ctx, p); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainProcurement, EventCreated, p)
	return nil
}

func (s *procurementService) Update(ctx context.Context, p *models.ProcurementRequest) error {
	existing, err := s.repo.GetProcurementRequest(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("procurement request %s not found", p.ID)
	}
	if p.Status != existing.Status && !transitionAllowed(existing.Status, p.Status) {
		return fmt.Errorf("invalid procurement status transition %s -> %s", existing.Status, p.Status)
	}
	if p.Spec != nil {
		if p.Spec.Kind != p.ItemKind {
			return fmt.Errorf("specification kind %q does not match item kind %q", p.Spec.Kind, p.ItemKind)
		}
		if err := p.Spec.Validate(); err != nil {
			return err
		}
	}
	if err := s.repo.UpdateProcurementRequest(ctx, p); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainProcurement, EventUpdated, p)
	return nil
}

func (s *procurementService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteProcurementRequest(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainProcurement, EventDeleted, nil)
	return nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range validProcurementTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
