package service

import (
	"context"
	"fmt"

	"github.com/inventra/inventra-backend/internal/automation"
	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/pkg/validate"
	"github.com/inventra/inventra-backend/internal/repository"
)

// RuleService manages automation rules. Every mutation refreshes the engine
// cache so the next record creation sees the updated rule set.
type RuleService interface {
	List(ctx context.Context) ([]models.AutomationRule, error)
	Get(ctx context.Context, id string) (*models.AutomationRule, error)
	Create(ctx context.Context, r *models.AutomationRule) error
	Update(ctx context.Context, r *models.AutomationRule) error
	Delete(ctx context.Context, id string) error
}

type ruleService struct {
	repo   repository.AutomationRuleRepository
	engine *automation.Engine
}

func NewRuleService(repo repository.AutomationRuleRepository, engine *automation.Engine) RuleService {
	return &ruleService{repo: repo, engine: engine}
}

func (s *ruleService) List(ctx context.Context) ([]models.AutomationRule, error) {
	return s.repo.ListRules(ctx)
}

func (s *ruleService) Get(ctx context.Context, id string) (*models.AutomationRule, error) {
	return s.repo.GetRule(ctx, id)
}

func (s *ruleService) Create(ctx context.Context, r *models.AutomationRule) error {
	if err := validateRule(r); err != nil {
		return err
	}
	if r.Priority == 0 {
		r.Priority = 100
	}
	if err := s.repo.CreateRule(ctx, r); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *ruleService) Update(ctx context.Context, r *models.AutomationRule) error {
	existing, err := s.repo.GetRule(ctx, r.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("automation rule %s not found", r.ID)
	}
	if err := validateRule(r); err != nil {
		return err
	}
	if err := s.repo.UpdateRule(ctx, r); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *ruleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteRule(ctx, id); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *ruleService) refresh(ctx context.Context) error {
	if s.engine == nil {
		return nil
	}
	return s.engine.Refresh(ctx)
}

// validateRule rejects rules that could never fire or would silently no-op.
// Evaluation itself stays lenient; strictness lives at the admin boundary.
func validateRule(r *models.AutomationRule) error {
	if !validate.Required(r.Name) {
		return fmt.Errorf("rule name is required")
	}
	switch r.TriggerEvent {
	case models.TriggerTicketCreated, models.TriggerEquipmentCreated:
	default:
		return fmt.Errorf("unknown trigger event %q", r.TriggerEvent)
	}
	for i, c := range r.Conditions {
		switch c.Operator {
		case models.OpEquals, models.OpNotEquals, models.OpContains, models.OpStartsWith,
			models.OpGreaterThan, models.OpLessThan, models.OpIsEmpty, models.OpIsNotEmpty:
		default:
			return fmt.Errorf("condition %d has unknown operator %q", i, c.Operator)
		}
		if c.Field == "" {
			return fmt.Errorf("condition %d is missing a field", i)
		}
	}
	if len(r.Actions) == 0 {
		return fmt.Errorf("rule needs at least one action")
	}
	for i, a := range r.Actions {
		switch a.Type {
		case models.ActionAssignTeam, models.ActionAssignUser, models.ActionSetPriority,
			models.ActionSetStatus, models.ActionSendEmail:
		case models.ActionUpdateField:
			if a.TargetField == "" {
				return fmt.Errorf("action %d (UPDATE_FIELD) is missing target_field", i)
			}
		default:
			return fmt.Errorf("action %d has unknown type %q", i, a.Type)
		}
	}
	return nil
}
