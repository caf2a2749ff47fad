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

// AutomationRuleRepository implementation

func (r *SQLiteRepository) ListRules(ctx context.Context) ([]models.AutomationRule, error) {
	rules := []models.AutomationRule{}
	err := instrumentQuery("rule_list", func() error {
		return r.db.SelectContext(ctx, &rules, `SELECT * FROM automation_rules ORDER BY priority, created_at`)
	})
	if err != nil {
		return nil, fmt.Errorf("list automation rules: %w", err)
	}
	for i := range rules {
		rules[i].DecodeRule()
	}
	return rules, nil
}

// ListActiveRules returns active rules ordered by ascending priority, the
// order the engine applies them in.
func (r *SQLiteRepository) ListActiveRules(ctx context.Context) ([]models.AutomationRule, error) {
	rules := []models.AutomationRule{}
	err := instrumentQuery("rule_list_active", func() error {
		return r.db.SelectContext(ctx, &rules,
			`SELECT * FROM automation_rules WHERE is_active = 1 ORDER BY priority, created_at`)
	})
	if err != nil {
		return nil, fmt.Errorf("list active automation rules: %w", err)
	}
	for i := range rules {
		rules[i].DecodeRule()
	}
	return rules, nil
}

func (r *SQLiteRepository) GetRule(ctx context.Context, id string) (*models.AutomationRule, error) {
	var rule models.AutomationRule
	err := r.db.GetContext(ctx, &rule, `SELECT * FROM automation_rules WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get automation rule %s: %w", id, err)
	}
	rule.DecodeRule()
	return &rule, nil
}

func (r *SQLiteRepository) CreateRule(ctx context.Context, rule *models.AutomationRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if err := rule.EncodeRule(); err != nil {
		return fmt.Errorf("create automation rule: %w", err)
	}
	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO automation_rules (id, name, trigger_event, conditions, actions, priority, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.Name, rule.TriggerEvent, rule.ConditionsRaw, rule.ActionsRaw,
		rule.Priority, rule.ActiveDB, rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create automation rule: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateRule(ctx context.Context, rule *models.AutomationRule) error {
	if err := rule.EncodeRule(); err != nil {
		return fmt.Errorf("update automation rule %s: %w", rule.ID, err)
	}
	rule.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE automation_rules SET name = ?, trigger_event = ?, conditions = ?, actions = ?,
		 priority = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		rule.Name, rule.TriggerEvent, rule.ConditionsRaw, rule.ActionsRaw,
		rule.Priority, rule.ActiveDB, rule.UpdatedAt, rule.ID)
	if err != nil {
		return fmt.Errorf("update automation rule %s: %w", rule.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteRule(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM automation_rules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete automation rule %s: %w", id, err)
	}
	return nil
}
