package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/portfolio/contact-api/internal/model"
	"github.com/portfolio/contact-api/internal/service"
)

const (
	maxBodyBytes = 1 << 20

	msgInvalidBody = "Invalid request body."
	msgSubmitted   = "Thank you for your message! I will get back to you soon."
	msgFailed      = "Failed to send message. Please try again later."
)

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact.
// name, email, subject and message are all required.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req model.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: msgInvalidBody})
		return
	}

	res := h.contactService.Submit(r.Context(), req)
	switch res.Outcome {
	case service.OutcomeSuccess:
		slog.Info("contact submission stored", "contact_id", res.ID)
		writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: msgSubmitted})
	case service.OutcomeInvalid:
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: res.Reason})
	default:
		// Store and relay failures look the same to the caller.
		slog.Error("contact submission failed", "error", res.Err, "contact_id", res.ID)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Message: msgFailed})
	}
}
