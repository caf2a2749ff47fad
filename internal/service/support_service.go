package service

import (
	"context"
	"fmt"

	"github.com/inventra/inventra-backend/internal/automation"
	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/notifications"
	"github.com/inventra/inventra-backend/internal/repository"
)

// SupportService manages support tickets.
type SupportService interface {
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	// CreateTicket runs TICKET_CREATED automation rules against the ticket
	// before it is persisted, so assignments and priority changes made by
	// rules land in the initial row.
	CreateTicket(ctx context.Context, t *models.Ticket) error
	UpdateTicket(ctx context.Context, t *models.Ticket) error
	DeleteTicket(ctx context.Context, id string) error

	Snapshot(ctx context.Context) (*models.SupportSnapshot, error)
}

type supportService struct {
	tickets   repository.TicketRepository
	snapshots repository.SnapshotRepository
	engine    *automation.Engine
	notifier  *notifications.Notifier
	broadcast Broadcaster
}

func NewSupportService(
	tickets repository.TicketRepository,
	snapshots repository.SnapshotRepository,
	engine *automation.Engine,
	notifier *notifications.Notifier,
	broadcast Broadcaster,
) SupportService {
	if broadcast == nil {
		broadcast = NopBroadcaster{}
	}
	return &supportService{
		tickets:   tickets,
		snapshots: snapshots,
		engine:    engine,
		notifier:  notifier,
		broadcast: broadcast,
	}
}

func (s *supportService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return s.tickets.ListTickets(ctx)
}

func (s *supportService) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	return s.tickets.GetTicket(ctx, id)
}

func (s *supportService) CreateTicket(ctx context.Context, t *models.Ticket) error {
	if t.Status == "" {
		t.Status = models.TicketOpen
	}
	if t.Priority == "" {
		t.Priority = "normal"
	}
	if s.engine != nil {
		s.engine.ApplyTicketRules(t)
	}
	if err := s.tickets.CreateTicket(ctx, t); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.Notify(models.NotifyEvent{
			EventType:     models.EventTicketCreated,
			ResourceTable: "tickets",
			ResourceID:    t.ID,
			Message:       t.Title,
		})
	}
	s.broadcast.BroadcastRefresh(DomainSupport, EventCreated, t)
	return nil
}

func (s *supportService) UpdateTicket(ctx context.Context, t *models.Ticket) error {
	existing, err := s.tickets.GetTicket(ctx, t.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("ticket %s not found", t.ID)
	}
	if err := s.tickets.UpdateTicket(ctx, t); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.Notify(models.NotifyEvent{
			EventType:     models.EventTicketUpdated,
			ResourceTable: "tickets",
			ResourceID:    t.ID,
			Message:       t.Title,
		})
	}
	s.broadcast.BroadcastRefresh(DomainSupport, EventUpdated, t)
	return nil
}

func (s *supportService) DeleteTicket(ctx context.Context, id string) error {
	if err := s.tickets.DeleteTicket(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainSupport, EventDeleted, nil)
	return nil
}

func (s *supportService) Snapshot(ctx context.Context) (*models.SupportSnapshot, error) {
	return s.snapshots.SupportSnapshot(ctx)
}
