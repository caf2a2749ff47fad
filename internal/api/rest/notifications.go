package rest

import (
	"net/http"
	"net/url"

	"github.com/inventra/inventra-backend/internal/models"
)

// ListChannels handles GET /notifications/channels
func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.channels.ListChannels(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, channels)
}

// CreateChannel handles POST /notifications/channels
func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var c models.NotificationChannel
	if !decodeBody(w, r, &c) {
		return
	}
	if c.Name == "" {
		respondError(w, http.StatusBadRequest, "channel name is required")
		return
	}
	u, err := url.Parse(c.EndpointURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		respondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidationFailed,
			"endpoint_url must be an absolute http(s) URL", "")
		return
	}
	if err := h.channels.CreateChannel(r.Context(), &c); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// DeleteChannel handles DELETE /notifications/channels/{id}
func (h *Handler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.channels.DeleteChannel(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "notification channel deleted"})
}
