package rest

import (
	"net/http"

	"github.com/inventra/inventra-backend/internal/models"
)

// Institutions

func (h *Handler) ListInstitutions(w http.ResponseWriter, r *http.Request) {
	institutions, err := h.organization.ListInstitutions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, institutions)
}

func (h *Handler) GetInstitution(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, err := h.organization.GetInstitution(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if in == nil {
		respondError(w, http.StatusNotFound, "institution not found")
		return
	}
	respondJSON(w, http.StatusOK, in)
}

func (h *Handler) CreateInstitution(w http.ResponseWriter, r *http.Request) {
	var in models.Institution
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.organization.CreateInstitution(r.Context(), &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, in)
}

func (h *Handler) UpdateInstitution(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.Institution
	if !decodeBody(w, r, &in) {
		return
	}
	in.ID = id
	if err := h.organization.UpdateInstitution(r.Context(), &in); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, in)
}

func (h *Handler) DeleteInstitution(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.organization.DeleteInstitution(r.Context(), id); err != nil {
		respondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "institution deleted"})
}

// Entities

func (h *Handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	entities, err := h.organization.ListEntities(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, entities)
}

func (h *Handler) GetEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := h.organization.GetEntity(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if e == nil {
		respondError(w, http.StatusNotFound, "entity not found")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (h *Handler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	var e models.OrgEntity
	if !decodeBody(w, r, &e) {
		return
	}
	if err := h.organization.CreateEntity(r.Context(), &e); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var e models.OrgEntity
	if !decodeBody(w, r, &e) {
		return
	}
	e.ID = id
	if err := h.organization.UpdateEntity(r.Context(), &e); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.organization.DeleteEntity(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "entity deleted"})
}

// Teams

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.organization.ListTeams(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	team, err := h.organization.GetTeam(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if team == nil {
		respondError(w, http.StatusNotFound, "team not found")
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var team models.Team
	if !decodeBody(w, r, &team) {
		return
	}
	if err := h.organization.CreateTeam(r.Context(), &team); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, team)
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var team models.Team
	if !decodeBody(w, r, &team) {
		return
	}
	team.ID = id
	if err := h.organization.UpdateTeam(r.Context(), &team); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.organization.DeleteTeam(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "team deleted"})
}

// Collaborators

func (h *Handler) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	collaborators, err := h.organization.ListCollaborators(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, collaborators)
}

func (h *Handler) GetCollaborator(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.organization.GetCollaborator(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "collaborator not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateCollaborator(w http.ResponseWriter, r *http.Request) {
	var c models.Collaborator
	if !decodeBody(w, r, &c) {
		return
	}
	if err := h.organization.CreateCollaborator(r.Context(), &c); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCollaborator(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var c models.Collaborator
	if !decodeBody(w, r, &c) {
		return
	}
	c.ID = id
	if err := h.organization.UpdateCollaborator(r.Context(), &c); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCollaborator(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.organization.DeleteCollaborator(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "collaborator deleted"})
}

// OrganizationSnapshot handles GET /organization/snapshot
func (h *Handler) OrganizationSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.organization.Snapshot(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
