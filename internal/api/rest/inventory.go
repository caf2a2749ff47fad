package rest

import (
	"net/http"

	"github.com/inventra/inventra-backend/internal/models"
)

// ListEquipment handles GET /equipment
func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.inventory.ListEquipment(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, equipment)
}

// GetEquipment handles GET /equipment/{id}
func (h *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := h.inventory.GetEquipment(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if e == nil {
		respondError(w, http.StatusNotFound, "equipment not found")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// CreateEquipment handles POST /equipment
func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var e models.Equipment
	if !decodeBody(w, r, &e) {
		return
	}
	if e.Name == "" {
		respondError(w, http.StatusBadRequest, "equipment name is required")
		return
	}
	if err := h.inventory.CreateEquipment(r.Context(), &e); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

// UpdateEquipment handles PUT /equipment/{id}
func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var e models.Equipment
	if !decodeBody(w, r, &e) {
		return
	}
	e.ID = id
	if err := h.inventory.UpdateEquipment(r.Context(), &e); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// DeleteEquipment handles DELETE /equipment/{id}
func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.inventory.DeleteEquipment(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "equipment deleted"})
}

// ListLicenses handles GET /licenses
func (h *Handler) ListLicenses(w http.ResponseWriter, r *http.Request) {
	licenses, err := h.inventory.ListLicenses(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, licenses)
}

// GetLicense handles GET /licenses/{id}
func (h *Handler) GetLicense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	l, err := h.inventory.GetLicense(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if l == nil {
		respondError(w, http.StatusNotFound, "license not found")
		return
	}
	respondJSON(w, http.StatusOK, l)
}

// CreateLicense handles POST /licenses
func (h *Handler) CreateLicense(w http.ResponseWriter, r *http.Request) {
	var l models.License
	if !decodeBody(w, r, &l) {
		return
	}
	if l.Name == "" {
		respondError(w, http.StatusBadRequest, "license name is required")
		return
	}
	if err := h.inventory.CreateLicense(r.Context(), &l); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, l)
}

// UpdateLicense handles PUT /licenses/{id}
func (h *Handler) UpdateLicense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var l models.License
	if !decodeBody(w, r, &l) {
		return
	}
	l.ID = id
	if err := h.inventory.UpdateLicense(r.Context(), &l); err != nil {
		respondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusOK, l)
}

// DeleteLicense handles DELETE /licenses/{id}
func (h *Handler) DeleteLicense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.inventory.DeleteLicense(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "license deleted"})
}

// ListAssignments handles GET /licenses/{id}/assignments
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	assignments, err := h.inventory.ListAssignments(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, assignments)
}

// SyncAssignments handles PUT /licenses/{id}/assignments. The body carries
// the complete desired collaborator set.
func (h *Handler) SyncAssignments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		CollaboratorIDs []string `json:"collaborator_ids"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.inventory.SyncAssignments(r.Context(), id, req.CollaboratorIDs); err != nil {
		respondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, err.Error(), "")
		return
	}
	assignments, err := h.inventory.ListAssignments(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, assignments)
}

// InventorySnapshot handles GET /inventory/snapshot
func (h *Handler) InventorySnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.inventory.Snapshot(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
