package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkhubhq/linkhub/internal/model"
)

func TestContactEndpoints(t *testing.T) {
	api := newTestAPI(t)

	t.Run("anonymous submission", func(t *testing.T) {
		body := `{"name":"Visitor","email":"visitor@example.com","message":"love the site"}`
		rr := doJSON(t, api, http.MethodPost, "/api/contact", body, nil)
		require.Equal(t, http.StatusCreated, rr.Code)

		var sub model.ContactSubmission
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&sub))
		assert.Equal(t, model.ContactStatusNew, sub.Status)
		assert.NotZero(t, sub.ID)
	})

	t.Run("invalid submission", func(t *testing.T) {
		body := `{"name":"Visitor","email":"not-an-email","message":"hi"}`
		rr := doJSON(t, api, http.MethodPost, "/api/contact", body, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("inbox requires a session", func(t *testing.T) {
		rr := doJSON(t, api, http.MethodGet, "/api/admin/contact", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("inbox lists newest first", func(t *testing.T) {
		session := signupUser(t, api, "admin_user")

		body := `{"name":"Second","email":"second@example.com","message":"another"}`
		rr := doJSON(t, api, http.MethodPost, "/api/contact", body, nil)
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = doJSON(t, api, http.MethodGet, "/api/admin/contact", "", session)
		require.Equal(t, http.StatusOK, rr.Code)

		var subs []model.ContactSubmission
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&subs))
		require.Len(t, subs, 2)
		assert.Equal(t, "Second", subs[0].Name)
		assert.Equal(t, "Visitor", subs[1].Name)
	})
}
