package rest

import (
	"net/http"

	"github.com/inventra/inventra-backend/internal/models"
)

// ListTickets handles GET /tickets
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.support.ListTickets(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, tickets)
}

// GetTicket handles GET /tickets/{id}
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.support.GetTicket(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "ticket not found")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// CreateTicket handles POST /tickets. Automation rules run against the
// ticket before it is stored, so the response reflects rule output.
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var t models.Ticket
	if !decodeBody(w, r, &t) {
		return
	}
	if t.Title == "" {
		respondError(w, http.StatusBadRequest, "ticket title is required")
		return
	}
	if err := h.support.CreateTicket(r.Context(), &t); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// UpdateTicket handles PUT /tickets/{id}
func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var t models.Ticket
	if !decodeBody(w, r, &t) {
		return
	}
	t.ID = id
	if err := h.support.UpdateTicket(r.Context(), &t); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// DeleteTicket handles DELETE /tickets/{id}
func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.support.DeleteTicket(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "ticket deleted"})
}

// SupportSnapshot handles GET /support/snapshot
func (h *Handler) SupportSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.support.Snapshot(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
