package handler

import (
	"log/slog"
	"net/http"

	"github.com/linkhubhq/linkhub/internal/service"
)

// ContactHandler receives the public contact form and exposes the
// submissions list for the admin view.
type ContactHandler struct {
	contactSvc *service.ContactService
	logger     *slog.Logger
}

func NewContactHandler(contactSvc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc, logger: logger}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// HandleSubmit stores a contact form message.
//
// HTTP: POST /api/contact
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sub, err := h.contactSvc.Submit(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// HandleList returns every submission, newest first.
//
// HTTP: GET /api/admin/contact (auth required)
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.contactSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}
