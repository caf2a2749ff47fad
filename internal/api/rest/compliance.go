package rest

import (
	"net/http"

	"github.com/inventra/inventra-backend/internal/audit"
	"github.com/inventra/inventra-backend/internal/models"
)

// ComplianceDashboard handles GET /compliance/dashboard. The score is
// recomputed from live data on every call.
func (h *Handler) ComplianceDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.compliance.Dashboard(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, dash)
}

// AcknowledgeRisk handles POST /compliance/acknowledge. Records the monthly
// executive sign-off in the audit log.
func (h *Handler) AcknowledgeRisk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Details string `json:"details"`
	}
	// An empty body is acceptable; details are optional.
	_ = decodeOptionalBody(r, &req)

	email, ip := audit.RequestInfo(r)
	if err := h.compliance.Acknowledge(r.Context(), email, ip, req.Details); err != nil {
		respondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "risk acknowledged"})
}

// RunAIScan handles POST /compliance/scan
func (h *Handler) RunAIScan(w http.ResponseWriter, r *http.Request) {
	result, err := h.compliance.RunAIScan(r.Context())
	if err != nil {
		respondErrorWithCode(w, http.StatusServiceUnavailable, ErrCodeNotConfigured, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListVulnerabilities handles GET /vulnerabilities
func (h *Handler) ListVulnerabilities(w http.ResponseWriter, r *http.Request) {
	vulns, err := h.compliance.ListVulnerabilities(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, vulns)
}

// CreateVulnerability handles POST /vulnerabilities
func (h *Handler) CreateVulnerability(w http.ResponseWriter, r *http.Request) {
	var v models.Vulnerability
	if !decodeBody(w, r, &v) {
		return
	}
	if err := h.compliance.CreateVulnerability(r.Context(), &v); err != nil {
		respondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusCreated, v)
}

// UpdateVulnerability handles PUT /vulnerabilities/{id}
func (h *Handler) UpdateVulnerability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var v models.Vulnerability
	if !decodeBody(w, r, &v) {
		return
	}
	v.ID = id
	if err := h.compliance.UpdateVulnerability(r.Context(), &v); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// DeleteVulnerability handles DELETE /vulnerabilities/{id}
func (h *Handler) DeleteVulnerability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.compliance.DeleteVulnerability(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "vulnerability deleted"})
}

// ListBackups handles GET /backups
func (h *Handler) ListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := h.compliance.ListBackupExecutions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, backups)
}

// CreateBackup handles POST /backups
func (h *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	var b models.BackupExecution
	if !decodeBody(w, r, &b) {
		return
	}
	if err := h.compliance.CreateBackupExecution(r.Context(), &b); err != nil {
		respondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

// DeleteBackup handles DELETE /backups/{id}
func (h *Handler) DeleteBackup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.compliance.DeleteBackupExecution(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "backup execution deleted"})
}

// ListTrainings handles GET /trainings
func (h *Handler) ListTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.compliance.ListTrainingRecords(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, trainings)
}

// CreateTraining handles POST /trainings
func (h *Handler) CreateTraining(w http.ResponseWriter, r *http.Request) {
	var t models.TrainingRecord
	if !decodeBody(w, r, &t) {
		return
	}
	if err := h.compliance.CreateTrainingRecord(r.Context(), &t); err != nil {
		respondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), "")
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// DeleteTraining handles DELETE /trainings/{id}
func (h *Handler) DeleteTraining(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.compliance.DeleteTrainingRecord(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "training record deleted"})
}
