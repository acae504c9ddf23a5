package handler

import (
	"log/slog"
	"net/http"

	"github.com/linkhubhq/linkhub/internal/auth"
	"github.com/linkhubhq/linkhub/internal/service"
)

// ThemeHandler serves the current user's page styling.
type ThemeHandler struct {
	themeSvc *service.ThemeService
	logger   *slog.Logger
}

func NewThemeHandler(themeSvc *service.ThemeService, logger *slog.Logger) *ThemeHandler {
	return &ThemeHandler{themeSvc: themeSvc, logger: logger}
}

// HandleGet returns the user's theme, falling back to the default styling
// when nothing has been customized yet.
//
// HTTP: GET /api/theme (auth required)
func (h *ThemeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	theme, err := h.themeSvc.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, theme)
}

type updateThemeRequest struct {
	Background  *string `json:"background"`
	ButtonStyle *string `json:"buttonStyle"`
	TextColor   *string `json:"textColor"`
	AccentColor *string `json:"accentColor"`
}

// HandleUpdate merges a partial styling change and persists the result.
//
// HTTP: PUT /api/theme (auth required)
func (h *ThemeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req updateThemeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	theme, err := h.themeSvc.Update(r.Context(), userID, service.ThemeUpdate{
		Background:  req.Background,
		ButtonStyle: req.ButtonStyle,
		TextColor:   req.TextColor,
		AccentColor: req.AccentColor,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, theme)
}
