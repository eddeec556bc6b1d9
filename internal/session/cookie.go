package session

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"console/internal/domain"
)

// CookieStore persists the operator's bearer token in a browser cookie.
type CookieStore struct {
	Name   string
	Secure bool
	TTL    time.Duration
	Now    func() time.Time
}

// NewCookieStore returns a store with defaults applied.
func NewCookieStore(name string, secure bool, ttl time.Duration) *CookieStore {
	if strings.TrimSpace(name) == "" {
		name = "adminToken"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CookieStore{Name: name, Secure: secure, TTL: ttl, Now: time.Now}
}

// Token returns the stored token from the request, or "".
func (s *CookieStore) Token(r *http.Request) string {
	c, err := r.Cookie(s.Name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// Save writes the token cookie. Its lifetime follows the token's exp claim
// when present and the configured TTL otherwise.
func (s *CookieStore) Save(w http.ResponseWriter, token string) {
	now := s.now()
	expires := now.Add(s.TTL)
	if exp, ok := TokenExpiry(token); ok && exp.After(now) {
		expires = exp
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(expires.Sub(now).Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the token cookie on the response.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Bind returns credentials scoped to one request/response pair.
func (s *CookieStore) Bind(w http.ResponseWriter, r *http.Request) *RequestCredentials {
	return &RequestCredentials{store: s, w: w, token: s.Token(r)}
}

func (s *CookieStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RequestCredentials adapts a CookieStore to domain.Credentials for a single
// request. It is safe for the concurrent calls of one handler.
type RequestCredentials struct {
	store *CookieStore
	w     http.ResponseWriter

	mu      sync.Mutex
	token   string
	cleared bool
}

var _ domain.Credentials = (*RequestCredentials)(nil)

func (c *RequestCredentials) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Clear forgets the token and expires the cookie once.
func (c *RequestCredentials) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	if c.cleared {
		return
	}
	c.cleared = true
	c.store.Clear(c.w)
}

// Cleared reports whether the backend rejected the token during this request.
func (c *RequestCredentials) Cleared() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleared
}
