package audit

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestInfo(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/tickets", nil)
	r.RemoteAddr = "10.0.0.5:4312"

	email, ip := RequestInfo(r)
	assert.Equal(t, "anonymous", email)
	assert.Equal(t, "10.0.0.5:4312", ip)

	r.Header.Set("X-User-Email", "ops@example.com")
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	email, ip = RequestInfo(r)
	assert.Equal(t, "ops@example.com", email)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestActionFromMethod(t *testing.T) {
	assert.Equal(t, "create", actionFromMethod("POST"))
	assert.Equal(t, "update", actionFromMethod("PUT"))
	assert.Equal(t, "update", actionFromMethod("PATCH"))
	assert.Equal(t, "delete", actionFromMethod("DELETE"))
	assert.Equal(t, "get", actionFromMethod("GET"))
}
