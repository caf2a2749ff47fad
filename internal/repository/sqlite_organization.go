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

// OrganizationRepository implementation

func (r *SQLiteRepository) ListInstitutions(ctx context.Context) ([]models.Institution, error) {
	out := []models.Institution{}
	err := instrumentQuery("institution_list", func() error {
		return r.db.SelectContext(ctx, &out, `SELECT * FROM institutions ORDER BY name`)
	})
	if err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) GetInstitution(ctx context.Context, id string) (*models.Institution, error) {
	var in models.Institution
	err := r.db.GetContext(ctx, &in, `SELECT * FROM institutions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get institution %s: %w", id, err)
	}
	return &in, nil
}

func (r *SQLiteRepository) CreateInstitution(ctx context.Context, in *models.Institution) error {
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	now := time.Now()
	in.CreatedAt = now
	in.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO institutions (id, name, tax_id, address, contact_email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.TaxID, in.Address, in.ContactEmail, in.CreatedAt, in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create institution: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateInstitution(ctx context.Context, in *models.Institution) error {
	in.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE institutions SET name = ?, tax_id = ?, address = ?, contact_email = ?, updated_at = ? WHERE id = ?`,
		in.Name, in.TaxID, in.Address, in.ContactEmail, in.UpdatedAt, in.ID)
	if err != nil {
		return fmt.Errorf("update institution %s: %w", in.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteInstitution(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM institutions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete institution %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ListEntities(ctx context.Context) ([]models.OrgEntity, error) {
	out := []models.OrgEntity{}
	err := instrumentQuery("entity_list", func() error {
		return r.db.SelectContext(ctx, &out, `SELECT * FROM org_entities ORDER BY name`)
	})
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) GetEntity(ctx context.Context, id string) (*models.OrgEntity, error) {
	var e models.OrgEntity
	err := r.db.GetContext(ctx, &e, `SELECT * FROM org_entities WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entity %s: %w", id, err)
	}
	return &e, nil
}

func (r *SQLiteRepository) CreateEntity(ctx context.Context, e *models.OrgEntity) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO org_entities (id, institution_id, name, cost_center, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.InstitutionID, e.Name, e.CostCenter, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create entity: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateEntity(ctx context.Context, e *models.OrgEntity) error {
	e.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE org_entities SET institution_id = ?, name = ?, cost_center = ?, updated_at = ? WHERE id = ?`,
		e.InstitutionID, e.Name, e.CostCenter, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update entity %s: %w", e.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteEntity(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM org_entities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete entity %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ListTeams(ctx context.Context) ([]models.Team, error) {
	out := []models.Team{}
	err := instrumentQuery("team_list", func() error {
		return r.db.SelectContext(ctx, &out, `SELECT * FROM teams ORDER BY name`)
	})
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	var t models.Team
	err := r.db.GetContext(ctx, &t, `SELECT * FROM teams WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get team %s: %w", id, err)
	}
	return &t, nil
}

func (r *SQLiteRepository) CreateTeam(ctx context.Context, t *models.Team) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO teams (id, entity_id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.EntityID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateTeam(ctx context.Context, t *models.Team) error {
	t.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE teams SET entity_id = ?, name = ?, description = ?, updated_at = ? WHERE id = ?`,
		t.EntityID, t.Name, t.Description, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("update team %s: %w", t.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteTeam(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete team %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ListCollaborators(ctx context.Context) ([]models.Collaborator, error) {
	out := []models.Collaborator{}
	err := instrumentQuery("collaborator_list", func() error {
		return r.db.SelectContext(ctx, &out, `SELECT * FROM collaborators ORDER BY full_name`)
	})
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) GetCollaborator(ctx context.Context, id string) (*models.Collaborator, error) {
	var c models.Collaborator
	err := r.db.GetContext(ctx, &c, `SELECT * FROM collaborators WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collaborator %s: %w", id, err)
	}
	return &c, nil
}

func (r *SQLiteRepository) CreateCollaborator(ctx context.Context, c *models.Collaborator) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = "active"
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO collaborators (id, entity_id, team_id, full_name, email, role, status, photo_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.EntityID, c.TeamID, c.FullName, c.Email, c.Role, c.Status, c.PhotoURL, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create collaborator: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateCollaborator(ctx context.Context, c *models.Collaborator) error {
	c.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE collaborators SET entity_id = ?, team_id = ?, full_name = ?, email = ?, role = ?,
		 status = ?, photo_url = ?, updated_at = ? WHERE id = ?`,
		c.EntityID, c.TeamID, c.FullName, c.Email, c.Role, c.Status, c.PhotoURL, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update collaborator %s: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteCollaborator(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collaborators WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete collaborator %s: %w", id, err)
	}
	return nil
}
