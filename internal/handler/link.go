package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/linkhubhq/linkhub/internal/apperror"
	"github.com/linkhubhq/linkhub/internal/auth"
	"github.com/linkhubhq/linkhub/internal/service"
)

// LinkHandler manages the authenticated link-management routes plus the
// public click-through counter.
type LinkHandler struct {
	linkSvc *service.LinkService
	logger  *slog.Logger
}

func NewLinkHandler(linkSvc *service.LinkService, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{linkSvc: linkSvc, logger: logger}
}

// HandleList returns the current user's links, position order.
//
// HTTP: GET /api/links (auth required)
func (h *LinkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	links, err := h.linkSvc.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, links)
}

type createLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// HandleCreate appends a new link to the current user's page.
//
// HTTP: POST /api/links (auth required)
func (h *LinkHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req createLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	link, err := h.linkSvc.Create(r.Context(), userID, req.Title, req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

type updateLinkRequest struct {
	Title   *string `json:"title"`
	URL     *string `json:"url"`
	Visible *bool   `json:"visible"`
}

// HandleUpdate merges a partial update into one link.
//
// HTTP: PUT /api/links/{id} (auth required)
func (h *LinkHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	id, err := linkID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	link, err := h.linkSvc.Update(r.Context(), userID, id, service.LinkUpdate{
		Title:   req.Title,
		URL:     req.URL,
		Visible: req.Visible,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, link)
}

// HandleDelete removes one link.
//
// HTTP: DELETE /api/links/{id} (auth required)
func (h *LinkHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	id, err := linkID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.linkSvc.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	LinkIDs []int64 `json:"linkIds"`
}

// HandleReorder applies a drag-and-drop result: the body carries the user's
// complete link set in its new display order, applied atomically.
//
// HTTP: PUT /api/links/reorder (auth required)
func (h *LinkHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	links, err := h.linkSvc.Reorder(r.Context(), userID, req.LinkIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, links)
}

// HandleClick counts one public click-through. No auth: the caller is an
// anonymous visitor about to navigate to the link's destination.
//
// HTTP: POST /api/links/{id}/click
func (h *LinkHandler) HandleClick(w http.ResponseWriter, r *http.Request) {
	id, err := linkID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.linkSvc.IncrementClicks(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// linkID parses the {id} path parameter.
func linkID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", "link id must be a positive integer")
	}
	return id, nil
}
