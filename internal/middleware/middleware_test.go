package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"console/internal/session"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDReusesOrMints(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != "abc-123" || rr.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected inbound id to be reused, got %q / %q", seen, rr.Header().Get(RequestIDHeader))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "bad id\n")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "" || strings.Contains(seen, " ") || len(seen) != 36 {
		t.Fatalf("expected a minted uuid, got %q", seen)
	}
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow("203.0.113.1"); !ok {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}
	ok, retry := l.Allow("203.0.113.1")
	if ok || retry != time.Minute {
		t.Fatalf("third attempt: ok=%v retry=%s", ok, retry)
	}
	if ok, _ := l.Allow("198.51.100.2"); !ok {
		t.Fatalf("other clients have their own window")
	}

	now = now.Add(time.Minute + time.Second)
	if ok, _ := l.Allow("203.0.113.1"); !ok {
		t.Fatalf("window should reset")
	}
}

func TestRateLimiterHandler(t *testing.T) {
	h := NewRateLimiter(1, time.Minute).Handler(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "203.0.113.1:5000"

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests || rr.Header().Get("Retry-After") == "" {
		t.Fatalf("expected 429 with Retry-After, got %d", rr.Code)
	}

	if NewRateLimiter(0, time.Minute).Handler(okHandler()) == nil {
		t.Fatalf("disabled limiter must pass through")
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://admin.example.com/"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/dashboard/users", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent || rr.Header().Get("Access-Control-Allow-Origin") != "https://admin.example.com" {
		t.Fatalf("preflight from allowed origin: %d %q", rr.Code, rr.Header().Get("Access-Control-Allow-Origin"))
	}

	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden || rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("preflight from unknown origin: %d", rr.Code)
	}
}

func TestRequireSession(t *testing.T) {
	store := session.NewCookieStore("adminToken", false, time.Hour)
	h := RequireSession(store)(okHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != LoginPath {
		t.Fatalf("expected redirect to login, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "adminToken", Value: "tok"})
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected pass-through with cookie, got %d", rr.Code)
	}
}
