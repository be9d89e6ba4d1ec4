package me

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrikanet/satellite-console/internal/http/middlewarectx"
	"github.com/afrikanet/satellite-console/internal/models"
)

func TestMeHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("authenticated", func(t *testing.T) {
		user := &models.User{Username: "admin", Role: "admin", Email: "admin@afrikanet.com"}
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, user))
		rec := httptest.NewRecorder()

		New(log).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got models.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "admin", got.Username)
	})

	t.Run("missing context user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		New(log).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "not authenticated")
	})
}
