package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inventra/inventra-backend/internal/models"
)

// TicketRepository implementation

func (r *SQLiteRepository) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	err := instrumentQuery("ticket_list", func() error {
		return r.db.SelectContext(ctx, &tickets, `SELECT * FROM tickets ORDER BY created_at DESC`)
	})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (r *SQLiteRepository) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	var t models.Ticket
	err := r.db.GetContext(ctx, &t, `SELECT * FROM tickets WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket %s: %w", id, err)
	}
	return &t, nil
}

func (r *SQLiteRepository) CreateTicket(ctx context.Context, t *models.Ticket) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Category == "" {
		t.Category = "general"
	}
	if t.Priority == "" {
		t.Priority = "normal"
	}
	if t.Status == "" {
		t.Status = models.TicketOpen
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO tickets (id, title, description, category, priority, status, requester_id,
			assigned_team, assigned_user, security_incident_type, impact_criticality, due_date,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	err := instrumentQuery("ticket_create", func() error {
		_, err := r.db.ExecContext(ctx, query,
			t.ID, t.Title, t.Description, t.Category, t.Priority, t.Status, t.RequesterID,
			t.AssignedTeam, t.AssignedUser, t.SecurityIncidentType, t.ImpactCriticality, t.DueDate,
			t.CreatedAt, t.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateTicket(ctx context.Context, t *models.Ticket) error {
	t.UpdatedAt = time.Now()
	query := `
		UPDATE tickets
		SET title = ?, description = ?, category = ?, priority = ?, status = ?, requester_id = ?,
		    assigned_team = ?, assigned_user = ?, security_incident_type = ?, impact_criticality = ?,
		    due_date = ?, updated_at = ?
		WHERE id = ?
	`
	err := instrumentQuery("ticket_update", func() error {
		_, err := r.db.ExecContext(ctx, query,
			t.Title, t.Description, t.Category, t.Priority, t.Status, t.RequesterID,
			t.AssignedTeam, t.AssignedUser, t.SecurityIncidentType, t.ImpactCriticality,
			t.DueDate, t.UpdatedAt, t.ID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("update ticket %s: %w", t.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteTicket(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete ticket %s: %w", id, err)
	}
	return nil
}

// ProcurementRepository implementation

func (r *SQLiteRepository) ListProcurementRequests(ctx context.Context) ([]models.ProcurementRequest, error) {
	reqs := []models.ProcurementRequest{}
	err := instrumentQuery("procurement_list", func() error {
		return r.db.SelectContext(ctx, &reqs, `SELECT * FROM procurement_requests ORDER BY created_at DESC`)
	})
	if err != nil {
		return nil, fmt.Errorf("list procurement requests: %w", err)
	}
	for i := range reqs {
		if err := reqs[i].DecodeSpec(); err != nil {
			return nil, fmt.Errorf("list procurement requests: %w", err)
		}
	}
	return reqs, nil
}

func (r *SQLiteRepository) GetProcurementRequest(ctx context.Context, id string) (*models.ProcurementRequest, error) {
	var p models.ProcurementRequest
	err := r.db.GetContext(ctx, &p, `SELECT * FROM procurement_requests WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get procurement request %s: %w", id, err)
	}
	if err := p.DecodeSpec(); err != nil {
		return nil, fmt.Errorf("get procurement request %s: %w", id, err)
	}
	return &p, nil
}

func (r *SQLiteRepository) CreateProcurementRequest(ctx context.Context, p *models.ProcurementRequest) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = models.ProcurementPending
	}
	if p.Quantity <= 0 {
		p.Quantity = 1
	}
	if err := p.EncodeSpec(); err != nil {
		return fmt.Errorf("create procurement request: %w", err)
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO procurement_requests (id, requester_id, entity_id, item_name, item_kind,
			specifications, quantity, status, justification, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.RequesterID, p.EntityID, p.ItemName, p.ItemKind,
		p.SpecRaw, p.Quantity, p.Status, p.Justification, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create procurement request: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateProcurementRequest(ctx context.Context, p *models.ProcurementRequest) error {
	if err := p.EncodeSpec(); err != nil {
		return fmt.Errorf("update procurement request %s: %w", p.ID, err)
	}
	p.UpdatedAt = time.Now()
	query := `
		UPDATE procurement_requests
		SET requester_id = ?, entity_id = ?, item_name = ?, item_kind = ?, specifications = ?,
		    quantity = ?, status = ?, justification = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		p.RequesterID, p.EntityID, p.ItemName, p.ItemKind, p.SpecRaw,
		p.Quantity, p.Status, p.Justification, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update procurement request %s: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteProcurementRequest(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM procurement_requests WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete procurement request %s: %w", id, err)
	}
	return nil
}
