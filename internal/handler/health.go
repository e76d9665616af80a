package handler

import "net/http"

// Health handles GET /api/health. It always reports healthy and touches
// neither the store nor the mail relay.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "healthy",
		Message: "Contact API is running",
	})
}
