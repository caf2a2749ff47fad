package rest

import (
	"net/http"
	"strconv"
)

// ListAuditLogs handles GET /audit?action=...&limit=N. Entries come back
// newest first.
func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respondErrorWithCode(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid limit", "")
			return
		}
		limit = n
	}
	entries, err := h.auditLogs.ListAuditLogs(r.Context(), action, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
