package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"console/internal/domain"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "s3cret"
	goodToken     = "good-token"
)

type cannedResponse struct {
	status int
	body   string
}

// fakeBackend is an in-memory admin REST API. It is served through an
// in-process transport, so no sockets or server goroutines are involved.
type fakeBackend struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.UserWithSubscription
	plans  map[int64]domain.PricePlan
	brands map[int64]domain.BrandSettings
	logs   []domain.ActivityLog
	fail   map[string]cannedResponse
	router chi.Router
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{
		nextID: 100,
		users:  map[int64]domain.UserWithSubscription{},
		plans:  map[int64]domain.PricePlan{},
		brands: map[int64]domain.BrandSettings{},
		fail:   map[string]cannedResponse{},
	}
	f.users[1] = domain.UserWithSubscription{UserProfile: domain.UserProfile{
		ID: 1, Email: adminEmail, FirstName: "Ada", LastName: "Admin", Role: domain.UserRoleAdmin,
		StorageLimitBytes: 1000,
	}, StorageUsedBytes: &adminStorageUsed}
	f.users[2] = domain.UserWithSubscription{UserProfile: domain.UserProfile{
		ID: 2, Email: "grace@example.com", FirstName: "Grace", LastName: "Hopper", Role: domain.UserRoleUser,
	}}
	f.plans[10] = domain.PricePlan{ID: 10, Name: "starter", MonthlyPrice: "9.00", AnnualPrice: "81.00", IncludedSeats: 1, AdditionalSeatPrice: "0", IsActive: true,
		Features: []domain.Feature{{Description: "1 project", Included: true}}}
	f.plans[11] = domain.PricePlan{ID: 11, Name: "pro", MonthlyPrice: "29.00", AnnualPrice: "261.00", IncludedSeats: 3, AdditionalSeatPrice: "5.00", IsActive: true}
	f.brands[20] = domain.BrandSettings{ID: 20, BrandName: "Acme", Domain: "acme.test", PrimaryColor: "#3b82f6", SecondaryColor: "#1e40af", IsActive: true, StorageLimitGB: 1, MaxAccounts: 5}
	f.logs = []domain.ActivityLog{
		{ID: 3, ActivityType: "LOGIN", Description: "Admin signed in", IPAddress: "203.0.113.5", CreatedAt: "2026-10-14T11:59:30"},
		{ID: 2, ActivityType: "PLAN_UPDATE", Description: "Updated pro plan", IPAddress: "203.0.113.5", CreatedAt: "2026-10-14T10:00:00"},
		{ID: 1, ActivityType: "USER_DELETE", Description: "Removed test account", IPAddress: "198.51.100.7", CreatedAt: "2026-10-12T12:00:00"},
	}
	f.router = f.routes()
	return f
}

// RoundTrip serves the request in-process. The outbound request inherits the
// console's context, so its chi route state is dropped before routing.
func (f *fakeBackend) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, nil))
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	resp := rr.Result()
	resp.Request = req
	return resp, nil
}

var adminStorageUsed int64 = 750

func (f *fakeBackend) failOn(route string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[route] = cannedResponse{status: status, body: body}
}

func (f *fakeBackend) routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/auth/login", f.login)
	r.Group(func(r chi.Router) {
		r.Use(f.authenticate, f.canned)
		r.Get("/users/me", f.me)
		r.Get("/users/trial-status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, domain.TrialStatus{TrialActive: false})
		})
		r.Get("/users", f.listUsers)
		r.Post("/users", f.createUser)
		r.Get("/users/{id}", f.getUser)
		r.Put("/users/{id}", f.updateUser)
		r.Delete("/users/{id}", f.deleteUser)
		r.Get("/activities/recent", f.listLogs)
		r.Get("/activities/me", f.listLogs)
		r.Get("/price-plans", f.listPlans)
		r.Post("/price-plans/", f.createPlan)
		r.Get("/price-plans/{id}", f.getPlan)
		r.Put("/price-plans/{id}", f.updatePlan)
		r.Delete("/price-plans/{id}", f.deletePlan)
		r.Get("/settings/brands/", f.listBrands)
		r.Post("/settings/brands/", f.createBrand)
		r.Delete("/settings/brands/{id}", f.deleteBrand)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (f *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		detail(w, http.StatusBadRequest, "bad form")
		return
	}
	if r.PostForm.Get("username") != adminEmail || r.PostForm.Get("password") != adminPassword {
		detail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	writeJSON(w, http.StatusOK, domain.LoginResponse{AccessToken: goodToken, TokenType: "bearer"})
}

func (f *fakeBackend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+goodToken {
			detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeBackend) canned(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		c, ok := f.fail[r.Method+" "+r.URL.Path]
		f.mu.Unlock()
		if ok {
			w.WriteHeader(c.status)
			_, _ = w.Write([]byte(c.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func window[T any](items []T, r *http.Request) []T {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = len(items)
	}
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func (f *fakeBackend) newID() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeBackend) me(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.users[1])
}

func (f *fakeBackend) listUsers(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.UserWithSubscription, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, window(out, r))
}

func (f *fakeBackend) createUser(w http.ResponseWriter, r *http.Request) {
	var in domain.UserAdminCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, in.Email) {
			detail(w, http.StatusBadRequest, "Email already registered")
			return
		}
	}
	role := domain.UserRoleUser
	if in.Role != nil {
		role = *in.Role
	}
	u := domain.UserWithSubscription{UserProfile: domain.UserProfile{
		ID: f.newID(), Email: in.Email, FirstName: in.FirstName, LastName: in.LastName, Role: role,
	}}
	f.users[u.ID] = u
	writeJSON(w, http.StatusOK, u)
}

func (f *fakeBackend) getUser(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[pathID(r)]
	if !ok {
		detail(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (f *fakeBackend) updateUser(w http.ResponseWriter, r *http.Request) {
	var in domain.UserAdminUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[pathID(r)]
	if !ok {
		detail(w, http.StatusNotFound, "User not found")
		return
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	f.users[u.ID] = u
	writeJSON(w, http.StatusOK, u)
}

func (f *fakeBackend) deleteUser(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, pathID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeBackend) listLogs(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	typ := r.URL.Query().Get("activity_type")
	out := make([]domain.ActivityLog, 0, len(f.logs))
	for _, l := range f.logs {
		if typ == "" || strings.Contains(l.ActivityType, typ) {
			out = append(out, l)
		}
	}
	writeJSON(w, http.StatusOK, window(out, r))
}

func (f *fakeBackend) sortedPlans(activeOnly bool) []domain.PricePlan {
	out := make([]domain.PricePlan, 0, len(f.plans))
	for _, p := range f.plans {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeBackend) listPlans(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.sortedPlans(r.URL.Query().Get("active_only") == "true"))
}

func (f *fakeBackend) createPlan(w http.ResponseWriter, r *http.Request) {
	var in domain.PricePlanCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := domain.PricePlan{
		ID: f.newID(), Name: in.Name, MonthlyPrice: in.MonthlyPrice, AnnualPrice: in.AnnualPrice,
		IncludedSeats: in.IncludedSeats, AdditionalSeatPrice: in.AdditionalSeatPrice, Features: in.Features,
		IsBestValue: in.IsBestValue, IsActive: in.IsActive,
	}
	f.plans[p.ID] = p
	writeJSON(w, http.StatusOK, p)
}

func (f *fakeBackend) getPlan(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[pathID(r)]
	if !ok {
		detail(w, http.StatusNotFound, "Price plan not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (f *fakeBackend) updatePlan(w http.ResponseWriter, r *http.Request) {
	var in domain.PricePlanUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[pathID(r)]
	if !ok {
		detail(w, http.StatusNotFound, "Price plan not found")
		return
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.MonthlyPrice != nil {
		p.MonthlyPrice = *in.MonthlyPrice
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.Features != nil {
		p.Features = *in.Features
	}
	f.plans[p.ID] = p
	writeJSON(w, http.StatusOK, p)
}

func (f *fakeBackend) deletePlan(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.plans, pathID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeBackend) listBrands(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.BrandSettings, 0, len(f.brands))
	for _, b := range f.brands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeBackend) createBrand(w http.ResponseWriter, r *http.Request) {
	var in domain.BrandSettingsCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b := domain.BrandSettings{
		ID: f.newID(), BrandName: in.BrandName, Domain: in.Domain, PrimaryColor: in.PrimaryColor,
		SecondaryColor: in.SecondaryColor, IsActive: in.IsActive, StorageLimitGB: in.StorageLimitGB,
		MaxAccounts: in.MaxAccounts, SubscriptionInterval: in.SubscriptionInterval, PriceAmount: in.PriceAmount,
	}
	f.brands[b.ID] = b
	writeJSON(w, http.StatusOK, b)
}

func (f *fakeBackend) deleteBrand(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.brands, pathID(r))
	w.WriteHeader(http.StatusNoContent)
}
