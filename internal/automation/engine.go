// Package automation evaluates admin-defined rules against newly created
// tickets and equipment. Evaluation is total: a bad condition or action skips
// itself and the rest of the run continues, so rule problems can never block
// record creation.
package automation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/pkg/metrics"
)

// RuleLoader supplies the active rule set, ordered by ascending priority.
type RuleLoader interface {
	ListActiveRules(ctx context.Context) ([]models.AutomationRule, error)
}

// EmailSender delivers SEND_EMAIL actions. Implementations must not block.
type EmailSender interface {
	SendRuleEmail(recipient, subject, message string)
}

// Engine holds the in-memory cache of active rules. The hot path works only
// against memory; Refresh reloads the cache from the store after any rule
// mutation and at startup.
type Engine struct {
	mu    sync.RWMutex
	rules []models.AutomationRule

	loader RuleLoader
	mailer EmailSender
	logger *slog.Logger
}

// NewEngine creates an Engine with an empty rule cache. Call Refresh before
// the first evaluation.
func NewEngine(loader RuleLoader, mailer EmailSender, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{loader: loader, mailer: mailer, logger: logger}
}

// Refresh replaces the cached rule set from the store. The new set is built
// aside and swapped in whole, so concurrent evaluations always see a
// consistent snapshot.
func (e *Engine) Refresh(ctx context.Context) error {
	rules, err := e.loader.ListActiveRules(ctx)
	if err != nil {
		return fmt.Errorf("refresh automation rules: %w", err)
	}
	// Lowest priority number evaluated first; creation order breaks ties.
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
	e.mu.Lock()
	e.rules = rules
	e.mu.Unlock()
	e.logger.Info("automation rule cache refreshed", "count", len(rules))
	return nil
}

// RuleCount returns the size of the cached active rule set.
func (e *Engine) RuleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rules)
}

// ApplyTicketRules mutates the ticket in place with every matching
// TICKET_CREATED rule. Never fails.
func (e *Engine) ApplyTicketRules(t *models.Ticket) {
	e.apply(models.TriggerTicketCreated, ticketSource{t: t})
}

// ApplyEquipmentRules mutates the equipment in place with every matching
// EQUIPMENT_CREATED rule. Never fails.
func (e *Engine) ApplyEquipmentRules(eq *models.Equipment) {
	e.apply(models.TriggerEquipmentCreated, equipmentSource{e: eq})
}

func (e *Engine) apply(event models.TriggerEvent, src fieldSource) {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	for _, rule := range rules {
		if rule.TriggerEvent != event {
			continue
		}
		if !e.matches(rule, src) {
			metrics.RuleEvaluationsTotal.WithLabelValues(string(event), "skipped").Inc()
			continue
		}
		metrics.RuleEvaluationsTotal.WithLabelValues(string(event), "matched").Inc()
		for _, action := range rule.Actions {
			e.applyAction(rule, action, src)
		}
	}
}

// matches reports whether every condition of the rule holds against the
// record. A rule with no conditions always matches its trigger.
func (e *Engine) matches(rule models.AutomationRule, src fieldSource) bool {
	for _, cond := range rule.Conditions {
		if !evaluateCondition(cond, src) {
			return false
		}
	}
	return true
}

// evaluateCondition applies one operator. Unknown fields never match, except
// for the emptiness operators, which treat an unknown field as unset.
func evaluateCondition(cond models.RuleCondition, src fieldSource) bool {
	value, known := src.get(cond.Field)

	switch cond.Operator {
	case models.OpIsEmpty:
		return !known || isEmpty(value)
	case models.OpIsNotEmpty:
		return known && !isEmpty(value)
	}

	if !known {
		return false
	}

	switch cond.Operator {
	case models.OpEquals:
		return canonical(value) == canonical(decodeValue(cond.Value))
	case models.OpNotEquals:
		return canonical(value) != canonical(decodeValue(cond.Value))
	case models.OpContains:
		field, want, ok := stringPair(value, cond.Value)
		return ok && strings.Contains(strings.ToLower(field), strings.ToLower(want))
	case models.OpStartsWith:
		field, want, ok := stringPair(value, cond.Value)
		return ok && strings.HasPrefix(strings.ToLower(field), strings.ToLower(want))
	case models.OpGreaterThan:
		field, want, ok := numericPair(value, cond.Value)
		return ok && field > want
	case models.OpLessThan:
		field, want, ok := numericPair(value, cond.Value)
		return ok && field < want
	}
	return false
}

func (e *Engine) applyAction(rule models.AutomationRule, action models.RuleAction, src fieldSource) {
	value := canonical(decodeValue(action.Value))

	var target string
	switch action.Type {
	case models.ActionAssignTeam:
		// Foreign-key field name differs per trigger; try both catalogs.
		if !src.set(ticketFieldTeam, value) && !src.set(equipmentFieldTeam, value) {
			return
		}
	case models.ActionAssignUser:
		if !src.set(ticketFieldUser, value) && !src.set(equipmentFieldUser, value) {
			return
		}
	case models.ActionSetPriority:
		target = "priority"
	case models.ActionSetStatus:
		target = "status"
	case models.ActionUpdateField:
		target = action.TargetField
	case models.ActionSendEmail:
		if e.mailer != nil {
			e.mailer.SendRuleEmail(value, "Automation rule: "+rule.Name, rule.Name)
		}
		metrics.RuleActionsTotal.WithLabelValues(string(action.Type)).Inc()
		return
	default:
		e.logger.Warn("unknown automation action skipped", "rule", rule.Name, "action", string(action.Type))
		return
	}

	if target != "" {
		if !src.set(target, value) {
			// Malformed target_field is a no-op, not fatal.
			e.logger.Warn("automation action target not settable", "rule", rule.Name, "field", target)
			return
		}
	}
	metrics.RuleActionsTotal.WithLabelValues(string(action.Type)).Inc()
}

// decodeValue interprets the raw JSON condition/action value. Malformed JSON
// is kept as its literal text rather than failing the whole rule.
func decodeValue(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// canonical renders a value in its comparison form. Comparison is strict and
// case-sensitive; numbers render without a trailing ".0" so 3 and 3.0 agree.
func canonical(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// stringPair extracts both sides of a substring comparison; non-string
// fields fail the condition.
func stringPair(field interface{}, raw json.RawMessage) (string, string, bool) {
	fs, ok := field.(string)
	if !ok {
		return "", "", false
	}
	ws, ok := decodeValue(raw).(string)
	if !ok {
		return "", "", false
	}
	return fs, ws, true
}

// numericPair extracts both sides of a numeric comparison; non-numeric
// values fail the condition.
func numericPair(field interface{}, raw json.RawMessage) (float64, float64, bool) {
	fn, ok := toNumber(field)
	if !ok {
		return 0, 0, false
	}
	wn, ok := toNumber(decodeValue(raw))
	if !ok {
		return 0, 0, false
	}
	return fn, wn, true
}

func toNumber(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
