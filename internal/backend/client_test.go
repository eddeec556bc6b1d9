package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"console/internal/domain"
)

type memCreds struct {
	token   string
	cleared int
}

func (m *memCreds) Token() string { return m.token }
func (m *memCreds) Clear()        { m.token = ""; m.cleared++ }

type captureTransport struct {
	responses map[string]responseStub
	requests  []*http.Request
	bodies    [][]byte
}

type responseStub struct {
	status int
	body   []byte
}

func newCaptureTransport() *captureTransport {
	return &captureTransport{responses: map[string]responseStub{}}
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		body = raw
	}
	c.requests = append(c.requests, req)
	c.bodies = append(c.bodies, body)
	stub, ok := c.responses[req.Method+" "+req.URL.Path]
	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader(`{"detail":"Not Found"}`)),
		}, nil
	}
	return &http.Response{
		StatusCode: stub.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(stub.body)),
	}, nil
}

func (c *captureTransport) setJSON(route string, status int, payload any) {
	body, _ := json.Marshal(payload)
	c.responses[route] = responseStub{status: status, body: body}
}

func (c *captureTransport) setRaw(route string, status int, body string) {
	c.responses[route] = responseStub{status: status, body: []byte(body)}
}

func (c *captureTransport) last() (*http.Request, []byte) {
	n := len(c.requests)
	return c.requests[n-1], c.bodies[n-1]
}

func newTestClient(t *testing.T, transport *captureTransport, creds domain.Credentials) *Client {
	t.Helper()
	client, err := NewClient(Options{
		BaseURL:    "http://api.test/",
		HTTPClient: &http.Client{Transport: transport},
	})
	require.NoError(t, err)
	return client.WithCredentials(creds)
}

func TestNewClientRejectsRelativeBaseURL(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "api.test"})
	require.Error(t, err)
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	client, err := NewClient(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
}

func TestAuthenticatedRequestCarriesBearerToken(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("GET /users/me", http.StatusOK, map[string]any{"id": 7, "email": "root@example.com", "role": "admin"})
	creds := &memCreds{token: "tok-123"}
	client := newTestClient(t, transport, creds)

	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), profile.ID)
	assert.True(t, profile.IsAdmin())

	req, _ := transport.last()
	assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "http://api.test/users/me", req.URL.String())
}

func TestRequestWithoutTokenOmitsAuthorization(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("GET /settings/brands/", http.StatusOK, []any{})
	client := newTestClient(t, transport, nil)

	_, err := client.ListBrands(context.Background())
	require.NoError(t, err)
	req, _ := transport.last()
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestUnauthorizedClearsCredentialsOnEveryCall(t *testing.T) {
	calls := []struct {
		name  string
		route string
		call  func(*Client) error
	}{
		{"profile", "GET /users/me", func(c *Client) error { _, err := c.Profile(context.Background()); return err }},
		{"users", "GET /users", func(c *Client) error { _, err := c.ListUsers(context.Background(), domain.UserQuery{}); return err }},
		{"delete plan", "DELETE /price-plans/3", func(c *Client) error { return c.DeletePlan(context.Background(), 3) }},
		{"brands", "GET /settings/brands/", func(c *Client) error { _, err := c.ListBrands(context.Background()); return err }},
		{"activities", "GET /activities/recent", func(c *Client) error {
			_, err := c.RecentActivities(context.Background(), domain.ActivityQuery{})
			return err
		}},
	}
	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			transport := newCaptureTransport()
			transport.setRaw(tc.route, http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`)
			creds := &memCreds{token: "expired"}
			client := newTestClient(t, transport, creds)

			err := tc.call(client)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.Equal(t, 1, creds.cleared)
			assert.Empty(t, creds.Token())
		})
	}
}

func TestErrorDetailSurfacedVerbatim(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"Email already registered"}`, "Email already registered"},
		{"validation list", `{"detail":[{"loc":["body","email"],"msg":"field required"},{"msg":"value is not a valid integer"}]}`, "field required; value is not a valid integer"},
		{"empty detail", `{"detail":""}`, "An error occurred"},
		{"not json", `<html>bad gateway</html>`, "An error occurred"},
		{"no detail", `{"error":"boom"}`, "An error occurred"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			transport := newCaptureTransport()
			transport.setRaw("POST /users", http.StatusBadRequest, tc.body)
			creds := &memCreds{token: "tok"}
			client := newTestClient(t, transport, creds)

			_, err := client.CreateUser(context.Background(), domain.UserAdminCreate{})
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Error())
			assert.Equal(t, tc.want, Detail(err, "Failed to create user"))
			assert.Zero(t, creds.cleared)
		})
	}
}

func TestDetailFallsBackForTransportErrors(t *testing.T) {
	assert.Equal(t, "Failed to fetch users", Detail(errors.New("dial tcp: refused"), "Failed to fetch users"))
}

func TestNotFoundMatchesDomainError(t *testing.T) {
	transport := newCaptureTransport()
	client := newTestClient(t, transport, &memCreds{token: "tok"})

	_, err := client.BrandByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Not Found", Detail(err, "x"))
}

func TestForbiddenMatchesDomainError(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("DELETE /users/1", http.StatusForbidden, map[string]string{"detail": "Not enough permissions"})
	creds := &memCreds{token: "tok"}
	client := newTestClient(t, transport, creds)

	err := client.DeleteUser(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "tok", creds.Token(), "403 must not clear credentials")
}

func TestLoginPostsForm(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("POST /auth/login", http.StatusOK, map[string]string{"access_token": "abc", "token_type": "bearer"})
	client := newTestClient(t, transport, nil)

	out, err := client.Login(context.Background(), "admin@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "abc", out.AccessToken)

	req, body := transport.last()
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
	assert.Equal(t, "password=s3cret%21&username=admin%40example.com", string(body))
}

func TestLoginFailureDoesNotClearCredentials(t *testing.T) {
	transport := newCaptureTransport()
	transport.setRaw("POST /auth/login", http.StatusUnauthorized, `{"detail":"Incorrect email or password"}`)
	creds := &memCreds{token: "previous"}
	client := newTestClient(t, transport, creds)

	_, err := client.Login(context.Background(), "a@b.c", "nope")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Incorrect email or password", err.Error())
	assert.Zero(t, creds.cleared)

	transport.setRaw("POST /auth/login", http.StatusUnauthorized, `oops`)
	_, err = client.Login(context.Background(), "a@b.c", "nope")
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestActivityQueryOnlySendsSetParams(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("GET /activities/recent", http.StatusOK, []any{})
	transport.setJSON("GET /activities/me", http.StatusOK, []any{})
	client := newTestClient(t, transport, &memCreds{token: "tok"})

	_, err := client.RecentActivities(context.Background(), domain.ActivityQuery{})
	require.NoError(t, err)
	req, _ := transport.last()
	assert.Empty(t, req.URL.RawQuery)

	skip, limit := 200, 100
	_, err = client.MyActivities(context.Background(), domain.ActivityQuery{Skip: &skip, Limit: &limit, ActivityType: "LOGIN"})
	require.NoError(t, err)
	req, _ = transport.last()
	assert.Equal(t, "/activities/me", req.URL.Path)
	assert.Equal(t, "200", req.URL.Query().Get("skip"))
	assert.Equal(t, "100", req.URL.Query().Get("limit"))
	assert.Equal(t, "LOGIN", req.URL.Query().Get("activity_type"))
}

func TestListPlansAlwaysSendsActiveOnly(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("GET /price-plans", http.StatusOK, []any{})
	client := newTestClient(t, transport, &memCreds{token: "tok"})

	_, err := client.ListPlans(context.Background(), false)
	require.NoError(t, err)
	req, _ := transport.last()
	assert.Equal(t, "false", req.URL.Query().Get("active_only"))
}

func TestCreatePlanNormalizesFeatures(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("POST /price-plans/", http.StatusCreated, map[string]any{"id": 1, "name": "Pro"})
	client := newTestClient(t, transport, &memCreds{token: "tok"})

	_, err := client.CreatePlan(context.Background(), domain.PricePlanCreate{
		Name:         "Pro",
		MonthlyPrice: " 19.99 ",
		AnnualPrice:  "179.88",
		Features: []domain.Feature{
			{Description: "Unlimited projects", Included: false},
			{Description: "   "},
			{Description: "Priority support", Included: true},
		},
	})
	require.NoError(t, err)

	_, body := transport.last()
	var sent domain.PricePlanCreate
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, "19.99", sent.MonthlyPrice)
	assert.Equal(t, []domain.Feature{
		{Description: "Unlimited projects", Included: true},
		{Description: "Priority support", Included: true},
	}, sent.Features)
}

func TestUpdatePlanSendsOnlyChangedFields(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("PUT /price-plans/4", http.StatusOK, map[string]any{"id": 4, "is_active": false})
	client := newTestClient(t, transport, &memCreds{token: "tok"})

	active := false
	plan, err := client.UpdatePlan(context.Background(), 4, domain.PricePlanUpdate{IsActive: &active})
	require.NoError(t, err)
	assert.False(t, plan.IsActive)

	_, body := transport.last()
	assert.JSONEq(t, `{"is_active":false}`, string(body))
}

func TestDeleteAcceptsEmptyBody(t *testing.T) {
	transport := newCaptureTransport()
	transport.setRaw("DELETE /users/5", http.StatusNoContent, "")
	client := newTestClient(t, transport, &memCreds{token: "tok"})

	require.NoError(t, client.DeleteUser(context.Background(), 5))
}

func TestBrandCountCountsList(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("GET /settings/brands/", http.StatusOK, []map[string]any{{"id": 1}, {"id": 2}})
	client := newTestClient(t, transport, &memCreds{token: "tok"})

	n, err := client.BrandCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRequestIDForwarded(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("GET /users/me", http.StatusOK, map[string]any{"id": 1})
	client, err := NewClient(Options{
		BaseURL:    "http://api.test",
		HTTPClient: &http.Client{Transport: transport},
		RequestID:  func(context.Context) string { return "rid-42" },
	})
	require.NoError(t, err)

	_, err = client.WithCredentials(&memCreds{token: "tok"}).Profile(context.Background())
	require.NoError(t, err)
	req, _ := transport.last()
	assert.Equal(t, "rid-42", req.Header.Get("X-Request-ID"))
}

func TestWithCredentialsDoesNotMutateReceiver(t *testing.T) {
	base, err := NewClient(Options{BaseURL: "http://api.test"})
	require.NoError(t, err)
	bound := base.WithCredentials(&memCreds{token: "x"})
	assert.Empty(t, base.token())
	assert.Equal(t, "x", bound.token())
}
