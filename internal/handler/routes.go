package handler

import "net/http"

// NewRouter wires the API routes and middleware.
func NewRouter(h *Handler, contact *ContactHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/contact", contact.Submit)

	return RequestLogger(SecurityHeaders(h.CORS(mux)))
}
