package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"console/internal/backend"
	"console/internal/domain"
	"console/internal/forms"
	"console/internal/infra"
	"console/internal/infra/geoip"
	"console/internal/listing"
	"console/internal/middleware"
	"console/internal/session"
)

// BackendFunc binds the shared backend client to one request's credentials.
type BackendFunc func(domain.Credentials) domain.Backend

type App struct {
	Backend  BackendFunc
	Sessions *session.CookieStore
	Logger   infra.Logger
	Geo      geoip.Locator
	PageSize int
	Now      func() time.Time
}

// NewApp wires handlers to client. geo may be nil.
func NewApp(client *backend.Client, sessions *session.CookieStore, logger infra.Logger, geo geoip.Locator, pageSize int) *App {
	if pageSize <= 0 {
		pageSize = listing.DefaultLimit
	}
	return &App{
		Backend: func(c domain.Credentials) domain.Backend {
			return client.WithCredentials(c)
		},
		Sessions: sessions,
		Logger:   logger,
		Geo:      geo,
		PageSize: pageSize,
		Now:      time.Now,
	}
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, errorEnvelope{Error: errorBody{Code: errCode, Message: msg}})
}

// client returns the backend bound to the caller's session cookie.
func (a *App) client(w http.ResponseWriter, r *http.Request) domain.Backend {
	return a.Backend(a.Sessions.Bind(w, r))
}

// fail reports a backend or validation error. An expired session redirects to
// the login page; the bound credentials have already expired the cookie.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var ve *forms.ValidationError
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
	case errors.As(err, &ve):
		a.json(w, http.StatusUnprocessableEntity, errorEnvelope{Error: errorBody{
			Code:    "validation_failed",
			Message: ve.Error(),
			Fields:  ve.Fields,
		}})
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		a.error(w, apiErr.Status, statusCode(apiErr.Status), backend.Detail(err, fallback))
	case errors.As(err, &apiErr):
		a.log(r).Error().Err(err).Int("upstream_status", apiErr.Status).Msg(fallback)
		a.error(w, http.StatusBadGateway, "upstream_error", backend.Detail(err, fallback))
	case r.Context().Err() != nil:
		a.log(r).Warn().Err(err).Msg("request canceled")
	default:
		a.log(r).Error().Err(err).Msg(fallback)
		a.error(w, http.StatusBadGateway, "upstream_error", fallback)
	}
}

func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	case http.StatusTooManyRequests:
		return "rate_limited"
	}
	return "request_failed"
}

func (a *App) log(r *http.Request) *infra.Logger {
	l := a.Logger.With().Str("request_id", middleware.RequestIDFromContext(r.Context())).Logger()
	return &l
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) page(r *http.Request) listing.Page {
	idx, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return listing.NewPage(idx, a.PageSize)
}

// idParam parses the {id} route segment and writes a 400 when it is not a positive integer.
func (a *App) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid id")
		return 0, false
	}
	return id, true
}

// decode reads a JSON body. Validation is left to the form's Payload.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		msg := "invalid payload"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return false
	}
	return true
}

func (a *App) download(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func intPtr(v int) *int { return &v }
