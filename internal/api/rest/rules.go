package rest

import (
	"net/http"

	"github.com/inventra/inventra-backend/internal/models"
)

// ListRules handles GET /automation/rules. Inactive rules are included so
// the admin UI can toggle them.
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.rules.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, rules)
}

// GetRule handles GET /automation/rules/{id}
func (h *Handler) GetRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rule, err := h.rules.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rule == nil {
		respondError(w, http.StatusNotFound, "automation rule not found")
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

// CreateRule handles POST /automation/rules
func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var rule models.AutomationRule
	if !decodeBody(w, r, &rule) {
		return
	}
	if err := h.rules.Create(r.Context(), &rule); err != nil {
		respondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

// UpdateRule handles PUT /automation/rules/{id}
func (h *Handler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var rule models.AutomationRule
	if !decodeBody(w, r, &rule) {
		return
	}
	rule.ID = id
	if err := h.rules.Update(r.Context(), &rule); err != nil {
		respondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

// DeleteRule handles DELETE /automation/rules/{id}
func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.rules.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "automation rule deleted"})
}
