package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t        *testing.T
	server   *httptest.Server
	dir      string
	lastType string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, dir: t.TempDir()}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("username") != "admin@example.com" || r.PostForm.Get("password") != "s3cret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "good-token", "token_type": "bearer"})
	})
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer good-token" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
				return
			}
			h(w, r)
		}
	}
	mux.HandleFunc("GET /users/me", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "email": "admin@example.com", "first_name": "Ada", "last_name": "Admin", "role": "admin"})
	}))
	mux.HandleFunc("GET /users/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		role := "user"
		if r.PathValue("id") == "1" {
			role = "admin"
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "email": "x@example.com", "role": role})
	}))
	mux.HandleFunc("DELETE /users/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("GET /price-plans", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 10, "name": "starter", "monthly_price": "9.00", "annual_price": "81.00", "included_seats": 1, "is_active": true},
		})
	}))
	mux.HandleFunc("GET /activities/recent", authed(func(w http.ResponseWriter, r *http.Request) {
		f.lastType = r.URL.Query().Get("activity_type")
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "activity_type": "LOGIN", "description": "Admin signed in", "ip_address": "10.0.0.1", "created_at": "2026-10-14T11:58:00Z"},
			{"id": 2, "activity_type": "LOGIN", "description": "Grace signed in", "ip_address": "10.0.0.2", "created_at": "2026-10-14T11:00:00Z"},
		})
	}))

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fixture) tokenFile() string { return filepath.Join(f.dir, "token") }

func (f *fixture) run(args ...string) (string, error) {
	f.t.Helper()
	var out bytes.Buffer
	env := newEnv(&out)
	env.logger = zerolog.Nop()
	env.now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }

	root := newRootCmd(env)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--api", f.server.URL, "--token-file", f.tokenFile(), "--out", f.dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestLoginStoresTokenAndWhoami(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("login", "--email", " admin@example.com ", "--password", "s3cret")
	require.NoError(t, err)
	assert.Contains(t, out, "signed in as admin@example.com")

	raw, err := os.ReadFile(f.tokenFile())
	require.NoError(t, err)
	assert.Equal(t, "good-token", strings.TrimSpace(string(raw)))

	out, err = f.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Admin")
	assert.Contains(t, out, "Admin")
}

func TestLoginFailureKeepsDetail(t *testing.T) {
	f := newFixture(t)

	_, err := f.run("login", "--email", "admin@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "error: login failed: Incorrect email or password", errorMessage(err))
	assert.NoFileExists(t, f.tokenFile())
}

func TestExpiredTokenIsCleared(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.tokenFile(), []byte("stale\n"), 0o600))

	_, err := f.run("whoami")
	require.Error(t, err)
	assert.Equal(t, sessionExpired, errorMessage(err))
	assert.NoFileExists(t, f.tokenFile())
}

func TestDeleteRefusesAdmin(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.tokenFile(), []byte("good-token\n"), 0o600))

	_, err := f.run("users", "delete", "1")
	require.EqualError(t, err, "admin accounts cannot be deleted")

	out, err := f.run("users", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted user 2")
}

func TestPlansCSVExportWritesFile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.tokenFile(), []byte("good-token\n"), 0o600))

	out, err := f.run("plans", "list", "--csv")
	require.NoError(t, err)

	path := filepath.Join(f.dir, "price-plans-2026-10-14.csv")
	assert.Contains(t, out, path)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "ID,Name,Monthly Price"))
	assert.Contains(t, string(raw), "starter")
}

func TestLogsListFiltersAndSearches(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.tokenFile(), []byte("good-token\n"), 0o600))

	out, err := f.run("logs", "list", "--type", "login", "-q", "grace")
	require.NoError(t, err)
	assert.Equal(t, "LOGIN", f.lastType)
	assert.Contains(t, out, "Grace signed in")
	assert.NotContains(t, out, "Admin signed in")
	assert.Contains(t, out, "1 hour ago")

	_, err = f.run("logs", "list", "--type", "all")
	require.NoError(t, err)
	assert.Empty(t, f.lastType)
}

func TestInvalidID(t *testing.T) {
	f := newFixture(t)
	_, err := f.run("plans", "delete", "abc")
	require.EqualError(t, err, `invalid id "abc"`)
}

func TestLogoutRemovesToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.tokenFile(), []byte("good-token\n"), 0o600))

	out, err := f.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, f.tokenFile())
	assert.NoFileExists(t, f.tokenFile())

	_, err = f.run("logout")
	require.NoError(t, err, "logging out twice is not an error")
}
