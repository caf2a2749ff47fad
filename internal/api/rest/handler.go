package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inventra/inventra-backend/internal/pkg/logger"
	"github.com/inventra/inventra-backend/internal/pkg/validate"
	"github.com/inventra/inventra-backend/internal/repository"
	"github.com/inventra/inventra-backend/internal/service"
)

// Handler manages HTTP request handlers
type Handler struct {
	inventory    service.InventoryService
	organization service.OrganizationService
	support      service.SupportService
	procurement  service.ProcurementService
	compliance   service.ComplianceService
	rules        service.RuleService
	auditLogs    repository.AuditLogRepository
	channels     repository.NotificationRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(
	inventory service.InventoryService,
	organization service.OrganizationService,
	support service.SupportService,
	procurement service.ProcurementService,
	compliance service.ComplianceService,
	rules service.RuleService,
	auditLogs repository.AuditLogRepository,
	channels repository.NotificationRepository,
) *Handler {
	return &Handler{
		inventory:    inventory,
		organization: organization,
		support:      support,
		procurement:  procurement,
		compliance:   compliance,
		rules:        rules,
		auditLogs:    auditLogs,
		channels:     channels,
	}
}

// SetupRoutes configures API routes
func SetupRoutes(router *mux.Router, h *Handler) {
	// Inventory
	router.HandleFunc("/equipment", h.ListEquipment).Methods("GET")
	router.HandleFunc("/equipment", h.CreateEquipment).Methods("POST")
	router.HandleFunc("/equipment/{id}", h.GetEquipment).Methods("GET")
	router.HandleFunc("/equipment/{id}", h.UpdateEquipment).Methods("PUT")
	router.HandleFunc("/equipment/{id}", h.DeleteEquipment).Methods("DELETE")
	router.HandleFunc("/licenses", h.ListLicenses).Methods("GET")
	router.HandleFunc("/licenses", h.CreateLicense).Methods("POST")
	router.HandleFunc("/licenses/{id}", h.GetLicense).Methods("GET")
	router.HandleFunc("/licenses/{id}", h.UpdateLicense).Methods("PUT")
	router.HandleFunc("/licenses/{id}", h.DeleteLicense).Methods("DELETE")
	router.HandleFunc("/licenses/{id}/assignments", h.ListAssignments).Methods("GET")
	router.HandleFunc("/licenses/{id}/assignments", h.SyncAssignments).Methods("PUT")
	router.HandleFunc("/inventory/snapshot", h.InventorySnapshot).Methods("GET")

	// Organization
	router.HandleFunc("/institutions", h.ListInstitutions).Methods("GET")
	router.HandleFunc("/institutions", h.CreateInstitution).Methods("POST")
	router.HandleFunc("/institutions/{id}", h.GetInstitution).Methods("GET")
	router.HandleFunc("/institutions/{id}", h.UpdateInstitution).Methods("PUT")
	router.HandleFunc("/institutions/{id}", h.DeleteInstitution).Methods("DELETE")
	router.HandleFunc("/entities", h.ListEntities).Methods("GET")
	router.HandleFunc("/entities", h.CreateEntity).Methods("POST")
	router.HandleFunc("/entities/{id}", h.GetEntity).Methods("GET")
	router.HandleFunc("/entities/{id}", h.UpdateEntity).Methods("PUT")
	router.HandleFunc("/entities/{id}", h.DeleteEntity).Methods("DELETE")
	router.HandleFunc("/teams", h.ListTeams).Methods("GET")
	router.HandleFunc("/teams", h.CreateTeam).Methods("POST")
	router.HandleFunc("/teams/{id}", h.GetTeam).Methods("GET")
	router.HandleFunc("/teams/{id}", h.UpdateTeam).Methods("PUT")
	router.HandleFunc("/teams/{id}", h.DeleteTeam).Methods("DELETE")
	router.HandleFunc("/collaborators", h.ListCollaborators).Methods("GET")
	router.HandleFunc("/collaborators", h.CreateCollaborator).Methods("POST")
	router.HandleFunc("/collaborators/{id}", h.GetCollaborator).Methods("GET")
	router.HandleFunc("/collaborators/{id}", h.UpdateCollaborator).Methods("PUT")
	router.HandleFunc("/collaborators/{id}", h.DeleteCollaborator).Methods("DELETE")
	router.HandleFunc("/organization/snapshot", h.OrganizationSnapshot).Methods("GET")

	// Support
	router.HandleFunc("/tickets", h.ListTickets).Methods("GET")
	router.HandleFunc("/tickets", h.CreateTicket).Methods("POST")
	router.HandleFunc("/tickets/{id}", h.GetTicket).Methods("GET")
	router.HandleFunc("/tickets/{id}", h.UpdateTicket).Methods("PUT")
	router.HandleFunc("/tickets/{id}", h.DeleteTicket).Methods("DELETE")
	router.HandleFunc("/support/snapshot", h.SupportSnapshot).Methods("GET")

	// Procurement
	router.HandleFunc("/procurement", h.ListProcurement).Methods("GET")
	router.HandleFunc("/procurement", h.CreateProcurement).Methods("POST")
	router.HandleFunc("/procurement/{id}", h.GetProcurement).Methods("GET")
	router.HandleFunc("/procurement/{id}", h.UpdateProcurement).Methods("PUT")
	router.HandleFunc("/procurement/{id}", h.DeleteProcurement).Methods("DELETE")

	// Compliance
	router.HandleFunc("/compliance/dashboard", h.ComplianceDashboard).Methods("GET")
	router.HandleFunc("/compliance/acknowledge", h.AcknowledgeRisk).Methods("POST")
	router.HandleFunc("/compliance/scan", h.RunAIScan).Methods("POST")
	router.HandleFunc("/vulnerabilities", h.ListVulnerabilities).Methods("GET")
	router.HandleFunc("/vulnerabilities", h.CreateVulnerability).Methods("POST")
	router.HandleFunc("/vulnerabilities/{id}", h.UpdateVulnerability).Methods("PUT")
	router.HandleFunc("/vulnerabilities/{id}", h.DeleteVulnerability).Methods("DELETE")
	router.HandleFunc("/backups", h.ListBackups).Methods("GET")
	router.HandleFunc("/backups", h.CreateBackup).Methods("POST")
	router.HandleFunc("/backups/{id}", h.DeleteBackup).Methods("DELETE")
	router.HandleFunc("/trainings", h.ListTrainings).Methods("GET")
	router.HandleFunc("/trainings", h.CreateTraining).Methods("POST")
	router.HandleFunc("/trainings/{id}", h.DeleteTraining).Methods("DELETE")

	// Automation rules
	router.HandleFunc("/automation/rules", h.ListRules).Methods("GET")
	router.HandleFunc("/automation/rules", h.CreateRule).Methods("POST")
	router.HandleFunc("/automation/rules/{id}", h.GetRule).Methods("GET")
	router.HandleFunc("/automation/rules/{id}", h.UpdateRule).Methods("PUT")
	router.HandleFunc("/automation/rules/{id}", h.DeleteRule).Methods("DELETE")

	// Audit + notifications
	router.HandleFunc("/audit", h.ListAuditLogs).Methods("GET")
	router.HandleFunc("/notifications/channels", h.ListChannels).Methods("GET")
	router.HandleFunc("/notifications/channels", h.CreateChannel).Methods("POST")
	router.HandleFunc("/notifications/channels/{id}", h.DeleteChannel).Methods("DELETE")
}

// pathID extracts and validates the {id} path variable. Writes the error
// response itself and returns false when invalid.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if !validate.ID(id) {
		respondErrorWithCode(w, http.StatusBadRequest, ErrCodeInvalidRequest,
			"invalid resource id", logger.FromContext(r.Context()))
		return "", false
	}
	return id, true
}

// decodeBody decodes the JSON request body into dst. Writes the error
// response itself and returns false when the body is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondErrorWithCode(w, http.StatusBadRequest, ErrCodeInvalidRequest,
			"invalid request body", logger.FromContext(r.Context()))
		return false
	}
	return true
}

// decodeOptionalBody decodes the body when present; an empty or absent body
// is not an error.
func decodeOptionalBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	return err
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
