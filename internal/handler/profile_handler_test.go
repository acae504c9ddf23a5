package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkhubhq/linkhub/internal/model"
)

type profileResponse struct {
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	Bio          string       `json:"bio"`
	ProfilePhoto string       `json:"profilePhoto"`
	Links        []model.Link `json:"links"`
	Theme        model.Theme  `json:"theme"`
}

func TestPublicProfile(t *testing.T) {
	api := newTestAPI(t)
	session := signupUser(t, api, "alice")

	visible := createLink(t, api, session, "Blog", "https://blog.example.com")
	hidden := createLink(t, api, session, "Secret", "https://secret.example.com")
	rr := doJSON(t, api, http.MethodPut, "/api/links/"+itoa(hidden.ID), `{"visible":false}`, session)
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("composes user, visible links and theme", func(t *testing.T) {
		rr := doJSON(t, api, http.MethodGet, "/api/profiles/alice", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var profile profileResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&profile))
		assert.Equal(t, "alice", profile.Username)
		require.Len(t, profile.Links, 1)
		assert.Equal(t, visible.ID, profile.Links[0].ID)
		assert.Equal(t, "#ffffff", profile.Theme.Background)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		rr := doJSON(t, api, http.MethodGet, "/api/profiles/ALICE", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown username is 404", func(t *testing.T) {
		rr := doJSON(t, api, http.MethodGet, "/api/profiles/nobody", "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("each load records a page view", func(t *testing.T) {
		rr := doJSON(t, api, http.MethodGet, "/api/analytics", "", session)
		require.Equal(t, http.StatusOK, rr.Code)

		var summary model.Analytics
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&summary))
		// Two successful profile loads above; the 404 recorded nothing.
		assert.Equal(t, int64(2), summary.TotalViews)
	})
}

func TestAnalyticsEndpoints(t *testing.T) {
	api := newTestAPI(t)
	session := signupUser(t, api, "alice")
	link := createLink(t, api, session, "Blog", "https://blog.example.com")

	// Three profile loads, two clicks.
	for i := 0; i < 3; i++ {
		rr := doJSON(t, api, http.MethodGet, "/api/profiles/alice", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	for i := 0; i < 2; i++ {
		rr := doJSON(t, api, http.MethodPost, "/api/links/"+itoa(link.ID)+"/click", "", nil)
		require.Equal(t, http.StatusNoContent, rr.Code)
	}

	t.Run("summary", func(t *testing.T) {
		rr := doJSON(t, api, http.MethodGet, "/api/analytics", "", session)
		require.Equal(t, http.StatusOK, rr.Code)

		var summary model.Analytics
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&summary))
		assert.Equal(t, int64(3), summary.TotalViews)
		assert.Equal(t, int64(2), summary.TotalClicks)
	})

	t.Run("history respects limit", func(t *testing.T) {
		rr := doJSON(t, api, http.MethodGet, "/api/analytics/views?limit=2", "", session)
		require.Equal(t, http.StatusOK, rr.Code)

		var views []model.PageView
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&views))
		assert.Len(t, views, 2)
	})

	t.Run("history default limit", func(t *testing.T) {
		rr := doJSON(t, api, http.MethodGet, "/api/analytics/views", "", session)
		require.Equal(t, http.StatusOK, rr.Code)

		var views []model.PageView
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&views))
		assert.Len(t, views, 3)
		for _, v := range views {
			assert.Equal(t, "alice", v.Username)
		}
	})

	t.Run("deleting a link removes its clicks from the total", func(t *testing.T) {
		rr := doJSON(t, api, http.MethodDelete, "/api/links/"+itoa(link.ID), "", session)
		require.Equal(t, http.StatusNoContent, rr.Code)

		rr = doJSON(t, api, http.MethodGet, "/api/analytics", "", session)
		require.Equal(t, http.StatusOK, rr.Code)

		var summary model.Analytics
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&summary))
		assert.Equal(t, int64(0), summary.TotalClicks)
		// Views survive: they belong to the profile, not the link.
		assert.Equal(t, int64(3), summary.TotalViews)
	})
}
