package console

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrikanet/satellite-console/internal/config"
	"github.com/afrikanet/satellite-console/internal/models"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "incorrect username or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"token_type":   "bearer",
			"user":         models.User{Username: "admin", Role: "admin"},
		})
	})
	mux.HandleFunc("/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "not authenticated"})
			return
		}
		_ = json.NewEncoder(w).Encode([]models.Subscription{{
			ID:         "sub-1",
			ClientName: "Hotel Sawa",
			Technology: models.TechnologyStarlink,
			Plan:       "Starlink Business",
			EndDate:    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			Status:     models.StatusActive,
		}})
	})
	return httptest.NewServer(mux)
}

func newTestApp(t *testing.T, srv *httptest.Server, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Console.APIBaseURL = srv.URL
	cfg.Console.RequestTimeout = 5 * time.Second
	cfg.Console.TokenFile = filepath.Join(t.TempDir(), "token")

	out := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := New(cfg, log, strings.NewReader(input), out)
	require.NoError(t, err)
	return app, out
}

func TestRun_LoginAndList(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	app, out := newTestApp(t, srv, "login admin admin123\nsubscriptions\nquit\n")
	require.NoError(t, app.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Connecté en tant que admin")
	assert.Contains(t, output, "Hotel Sawa")
	assert.Contains(t, output, "[active]")
}

func TestRun_BadCredentialsShowServerDetail(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	app, out := newTestApp(t, srv, "login admin wrong\nquit\n")
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "Échec de connexion: incorrect username or password")
}

func TestRun_ViewsRequireLogin(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	app, out := newTestApp(t, srv, "subscriptions\nquit\n")
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "Veuillez vous connecter d'abord")
}
