package handler

import (
	"log/slog"
	"net/http"

	"github.com/linkhubhq/linkhub/internal/model"
	"github.com/linkhubhq/linkhub/internal/service"
)

// ProfileHandler serves the public link page for a username: the owner's
// profile, their visible links, and their theme in one response.
type ProfileHandler struct {
	authSvc      *service.AuthService
	linkSvc      *service.LinkService
	themeSvc     *service.ThemeService
	analyticsSvc *service.AnalyticsService
	logger       *slog.Logger
}

func NewProfileHandler(
	authSvc *service.AuthService,
	linkSvc *service.LinkService,
	themeSvc *service.ThemeService,
	analyticsSvc *service.AnalyticsService,
	logger *slog.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		authSvc:      authSvc,
		linkSvc:      linkSvc,
		themeSvc:     themeSvc,
		analyticsSvc: analyticsSvc,
		logger:       logger,
	}
}

type publicProfile struct {
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	Bio          string       `json:"bio"`
	ProfilePhoto string       `json:"profilePhoto"`
	Links        []model.Link `json:"links"`
	Theme        model.Theme  `json:"theme"`
}

// HandleGet composes the public page for {username}. Each request records a
// page view; a failed recording is logged and swallowed so the page still
// renders for the visitor.
//
// HTTP: GET /api/profiles/{username}
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	user, err := h.authSvc.GetByUsername(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	links, err := h.linkSvc.ListVisible(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	theme, err := h.themeSvc.Get(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.analyticsSvc.TrackView(r.Context(), user.Username, r.UserAgent(), r.Referer()); err != nil {
		h.logger.Warn("failed to record page view", "username", user.Username, "error", err)
	}

	writeJSON(w, http.StatusOK, publicProfile{
		Username:     user.Username,
		Name:         user.Name,
		Bio:          user.Bio,
		ProfilePhoto: user.ProfilePhoto,
		Links:        links,
		Theme:        *theme,
	})
}
