package middleware

import (
	"net/http"
	"strings"

	"github.com/inventra/inventra-backend/internal/audit"
	"github.com/inventra/inventra-backend/internal/repository"
)

// responseRecorder wraps http.ResponseWriter to capture status code.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// AuditLog returns middleware that records mutating operations (POST, PUT,
// PATCH, DELETE) in the audit log. Read methods are not audited.
func AuditLog(repo repository.AuditLogRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			if repo == nil {
				return
			}
			table, resourceID := resourceFromPath(r.URL.Path)
			audit.RecordMutation(r.Context(), repo, r, table, resourceID, rec.statusCode)
		})
	}
}

// resourceFromPath maps /api/<collection>[/<id>...] to its table and ID.
func resourceFromPath(path string) (table, id string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] != "api" {
		return "", ""
	}
	table = parts[1]
	if len(parts) >= 3 {
		id = parts[2]
	}
	return table, id
}
