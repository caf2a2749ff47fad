package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/automation"
	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/repository"
	"github.com/inventra/inventra-backend/internal/service"
	"github.com/inventra/inventra-backend/migrations"
)

// newTestRouter wires the full handler stack over an in-memory database.
func newTestRouter(t *testing.T) (*mux.Router, *repository.SQLiteRepository) {
	t.Helper()
	repo, err := repository.NewSQLiteRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	schema, err := migrations.FS.ReadFile("001_initial_schema.sql")
	require.NoError(t, err)
	require.NoError(t, repo.RunMigrations(string(schema)))

	engine := automation.NewEngine(repo, nil, nil)
	require.NoError(t, engine.Refresh(context.Background()))

	h := NewHandler(
		service.NewInventoryService(repo, repo, repo, engine, nil, nil),
		service.NewOrganizationService(repo, repo, nil),
		service.NewSupportService(repo, repo, engine, nil, nil),
		service.NewProcurementService(repo, nil),
		service.NewComplianceService(repo, repo, repo, repo, nil, nil, nil, 30),
		service.NewRuleService(repo, engine),
		repo,
		repo,
	)
	router := mux.NewRouter().PathPrefix("/api").Subrouter()
	SetupRoutes(router, h)
	return router, repo
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEquipmentCRUD(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/equipment", models.Equipment{Name: "ThinkPad", Category: "Hardware"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Equipment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.EquipmentInStock, created.Status)

	rec = doJSON(t, router, "GET", "/api/equipment/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	created.Status = models.EquipmentAssigned
	rec = doJSON(t, router, "PUT", "/api/equipment/"+created.ID, created)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "DELETE", "/api/equipment/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "GET", "/api/equipment/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEquipmentInvalidID(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, "GET", "/api/equipment/bad..id", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEquipmentRequiresName(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, "POST", "/api/equipment", models.Equipment{Category: "Hardware"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTicketCreationAppliesRules(t *testing.T) {
	router, _ := newTestRouter(t)

	rule := models.AutomationRule{
		Name:         "urgent printer issues",
		TriggerEvent: models.TriggerTicketCreated,
		Active:       true,
		Conditions: []models.RuleCondition{
			{Field: "title", Operator: models.OpContains, Value: json.RawMessage(`"printer"`)},
		},
		Actions: []models.RuleAction{
			{Type: models.ActionSetPriority, Value: json.RawMessage(`"low"`)},
		},
	}
	rec := doJSON(t, router, "POST", "/api/automation/rules", rule)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, "POST", "/api/tickets", models.Ticket{Title: "Printer out of toner"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var ticket models.Ticket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
	assert.Equal(t, "low", ticket.Priority)
}

func TestRuleValidationSurfacesAsBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)
	rule := models.AutomationRule{
		Name:         "broken",
		TriggerEvent: "NOPE",
		Actions:      []models.RuleAction{{Type: models.ActionSetStatus}},
	}
	rec := doJSON(t, router, "POST", "/api/automation/rules", rule)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, ErrCodeValidationFailed, apiErr.Code)
}

func TestLicenseAssignmentFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/collaborators", models.Collaborator{FullName: "Maria Souza"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var collab models.Collaborator
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collab))

	rec = doJSON(t, router, "POST", "/api/licenses", models.License{Name: "Office Suite", Seats: 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	var license models.License
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &license))

	body := map[string][]string{"collaborator_ids": {collab.ID}}
	rec = doJSON(t, router, "PUT", "/api/licenses/"+license.ID+"/assignments", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var assignments []models.LicenseAssignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assignments))
	require.Len(t, assignments, 1)
	assert.Equal(t, collab.ID, assignments[0].CollaboratorID)

	// Over-capacity set is rejected with 409.
	rec = doJSON(t, router, "POST", "/api/collaborators", models.Collaborator{FullName: "Joao Lima"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var second models.Collaborator
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	body["collaborator_ids"] = []string{collab.ID, second.ID}
	rec = doJSON(t, router, "PUT", "/api/licenses/"+license.ID+"/assignments", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProcurementTransitionConflict(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/procurement", models.ProcurementRequest{
		ItemName: "Laptops", ItemKind: models.ItemHardware, Quantity: 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p models.ProcurementRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))

	p.Status = models.ProcurementReceived
	rec = doJSON(t, router, "PUT", "/api/procurement/"+p.ID, p)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestComplianceDashboardAndAcknowledge(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/api/compliance/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash struct {
		Report struct {
			Score int    `json:"score"`
			Band  string `json:"band"`
		} `json:"report"`
		Acknowledgement struct {
			Acknowledged bool `json:"acknowledged"`
		} `json:"acknowledgement"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.False(t, dash.Acknowledgement.Acknowledged)

	req := httptest.NewRequest("POST", "/api/compliance/acknowledge", bytes.NewReader([]byte(`{"details":"reviewed"}`)))
	req.Header.Set("X-User-Email", "ciso@example.com")
	ackRec := httptest.NewRecorder()
	router.ServeHTTP(ackRec, req)
	require.Equal(t, http.StatusCreated, ackRec.Code)

	rec = doJSON(t, router, "GET", "/api/compliance/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.True(t, dash.Acknowledgement.Acknowledged)
}

func TestAcknowledgeWithoutIdentityFails(t *testing.T) {
	router, _ := newTestRouter(t)
	// No X-User-Email header: identity falls back to "anonymous", which is
	// not a valid email for the sign-off.
	rec := doJSON(t, router, "POST", "/api/compliance/acknowledge", map[string]string{"details": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAIScanUnconfigured(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, "POST", "/api/compliance/scan", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuditListFiltersByAction(t *testing.T) {
	router, repo := newTestRouter(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateAuditLog(ctx, &models.AuditLogEntry{UserEmail: "a@b.co", Action: "create", RequestIP: "1"}))
	require.NoError(t, repo.CreateAuditLog(ctx, &models.AuditLogEntry{UserEmail: "a@b.co", Action: "delete", RequestIP: "1"}))

	rec := doJSON(t, router, "GET", "/api/audit?action=delete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []models.AuditLogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "delete", entries[0].Action)
}

func TestNotificationChannelValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/notifications/channels", models.NotificationChannel{
		Name: "ops", EndpointURL: "not-a-url",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, "POST", "/api/notifications/channels", models.NotificationChannel{
		Name: "ops", EndpointURL: "https://hooks.example.com/ops", Enabled: true,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSnapshotsAlwaysReturnLists(t *testing.T) {
	router, _ := newTestRouter(t)
	for _, path := range []string{
		"/api/inventory/snapshot",
		"/api/organization/snapshot",
		"/api/support/snapshot",
	} {
		rec := doJSON(t, router, "GET", path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		var snap map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		for key, v := range snap {
			assert.NotNil(t, v, "%s field %s", path, key)
		}
	}
}
