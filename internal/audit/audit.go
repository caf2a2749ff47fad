// Package audit writes the append-only audit trail. Entries are best-effort:
// a failed audit write never fails the operation it records.
package audit

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/repository"
)

// CreateEntry writes an audit log entry. Append-only.
func CreateEntry(ctx context.Context, repo repository.AuditLogRepository, e *models.AuditLogEntry) {
	if repo == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	_ = repo.CreateAuditLog(ctx, e)
}

// RecordMutation appends an entry for a state-changing request.
func RecordMutation(ctx context.Context, repo repository.AuditLogRepository, r *http.Request, table, resourceID string, statusCode int) {
	email, ip := RequestInfo(r)
	entry := &models.AuditLogEntry{
		UserEmail:  email,
		Action:     actionFromMethod(r.Method),
		RequestIP:  ip,
		StatusCode: &statusCode,
		Details:    r.Method + " " + r.URL.Path,
	}
	if table != "" {
		entry.ResourceTable = &table
	}
	if resourceID != "" {
		entry.ResourceID = &resourceID
	}
	CreateEntry(ctx, repo, entry)
}

// RequestInfo extracts the acting user and client IP for audit logging. The
// identity header is set by the reverse proxy in front of the API.
func RequestInfo(r *http.Request) (userEmail, requestIP string) {
	requestIP = r.RemoteAddr
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			requestIP = strings.TrimSpace(xff[:idx])
		} else {
			requestIP = strings.TrimSpace(xff)
		}
	}
	userEmail = r.Header.Get("X-User-Email")
	if userEmail == "" {
		userEmail = "anonymous"
	}
	return userEmail, requestIP
}

func actionFromMethod(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	return strings.ToLower(method)
}
