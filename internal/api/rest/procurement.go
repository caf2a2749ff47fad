package rest

import (
	"net/http"

	"github.com/inventra/inventra-backend/internal/models"
)

// ListProcurement handles GET /procurement
func (h *Handler) ListProcurement(w http.ResponseWriter, r *http.Request) {
	requests, err := h.procurement.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// GetProcurement handles GET /procurement/{id}
func (h *Handler) GetProcurement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.procurement.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "procurement request not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// CreateProcurement handles POST /procurement
func (h *Handler) CreateProcurement(w http.ResponseWriter, r *http.Request) {
	var p models.ProcurementRequest
	if !decodeBody(w, r, &p) {
		return
	}
	if err := h.procurement.Create(r.Context(), &p); err != nil {
		respondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// UpdateProcurement handles PUT /procurement/{id}. Status changes are
// validated against the procurement state machine.
func (h *Handler) UpdateProcurement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var p models.ProcurementRequest
	if !decodeBody(w, r, &p) {
		return
	}
	p.ID = id
	if err := h.procurement.Update(r.Context(), &p); err != nil {
		respondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DeleteProcurement handles DELETE /procurement/{id}
func (h *Handler) DeleteProcurement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.procurement.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "procurement request deleted"})
}
