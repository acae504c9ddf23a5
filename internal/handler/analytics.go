package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/linkhubhq/linkhub/internal/auth"
	"github.com/linkhubhq/linkhub/internal/service"
)

// AnalyticsHandler serves the dashboard's traffic numbers.
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
	logger       *slog.Logger
}

func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc, logger: logger}
}

// HandleSummary returns the aggregate view and click totals.
//
// HTTP: GET /api/analytics (auth required)
func (h *AnalyticsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	summary, err := h.analyticsSvc.Summary(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleHistory returns recent page views, newest first. The optional
// ?limit= query caps the page size.
//
// HTTP: GET /api/analytics/views (auth required)
func (h *AnalyticsHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err == nil {
			limit = n
		}
	}

	views, err := h.analyticsSvc.History(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}
