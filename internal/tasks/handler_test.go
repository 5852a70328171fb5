package tasks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/bootcamp/internal/httpx"
	"github.com/idilsaglam/bootcamp/internal/logging"
	"github.com/idilsaglam/bootcamp/internal/model"
)

func newTestServer(t *testing.T, opt ServerOptions) http.Handler {
	t.Helper()
	return NewServer(newStore(t), logging.Discard(), opt)
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		wantCode  int
		wantError string
	}{
		{name: "list", method: http.MethodGet, path: "/api/tasks", wantCode: http.StatusOK},
		{name: "create", method: http.MethodPost, path: "/api/tasks", body: `{"title":"Write Go"}`, wantCode: http.StatusCreated},
		{name: "create blank title", method: http.MethodPost, path: "/api/tasks", body: `{"title":""}`, wantCode: http.StatusBadRequest, wantError: "Title is required"},
		{name: "create bad json", method: http.MethodPost, path: "/api/tasks", body: `{`, wantCode: http.StatusBadRequest, wantError: "Invalid JSON body"},
		{name: "get", method: http.MethodGet, path: "/api/tasks/1", wantCode: http.StatusOK},
		{name: "get missing", method: http.MethodGet, path: "/api/tasks/99", wantCode: http.StatusNotFound, wantError: "Task not found"},
		{name: "get bad id", method: http.MethodGet, path: "/api/tasks/abc", wantCode: http.StatusBadRequest, wantError: "Invalid task id"},
		{name: "get zero id", method: http.MethodGet, path: "/api/tasks/0", wantCode: http.StatusBadRequest, wantError: "Invalid task id"},
		{name: "put", method: http.MethodPut, path: "/api/tasks/1", body: `{"title":"Learn Go","completed":true}`, wantCode: http.StatusOK},
		{name: "put missing", method: http.MethodPut, path: "/api/tasks/5", body: `{"title":"x"}`, wantCode: http.StatusNotFound, wantError: "Task not found"},
		{name: "patch", method: http.MethodPatch, path: "/api/tasks/1", body: `{"completed":true}`, wantCode: http.StatusOK},
		{name: "delete", method: http.MethodDelete, path: "/api/tasks/1", wantCode: http.StatusNoContent},
		{name: "delete missing", method: http.MethodDelete, path: "/api/tasks/8", wantCode: http.StatusNotFound, wantError: "Task not found"},
		{name: "unknown route", method: http.MethodGet, path: "/api/unknown", wantCode: http.StatusNotFound, wantError: "Route not found"},
		{name: "unsupported method", method: http.MethodPatch, path: "/api/tasks", body: `{}`, wantCode: http.StatusNotFound, wantError: "Route not found"},
		{name: "outside api", method: http.MethodGet, path: "/nope", wantCode: http.StatusNotFound, wantError: "Route not found"},
		{name: "health", method: http.MethodGet, path: "/health", wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, ServerOptions{})
			rec := do(h, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorOf(t, rec))
			}
		})
	}
}

func TestCreateThenFetch(t *testing.T) {
	h := newTestServer(t, ServerOptions{})

	rec := do(h, http.MethodPost, "/api/tasks", `{"title":"Ship it"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 2, created.ID)

	rec = do(h, http.MethodGet, "/api/tasks/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.Title, fetched.Title)

	rec = do(h, http.MethodGet, "/api/tasks", "")
	var all []model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestPatchKeepsOtherFields(t *testing.T) {
	h := newTestServer(t, ServerOptions{})

	rec := do(h, http.MethodPatch, "/api/tasks/1", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Completed)
	assert.Equal(t, "Learn Express", got.Title)
}

func TestTokenGuard(t *testing.T) {
	h := newTestServer(t, ServerOptions{Token: "s3cret"})

	rec := do(h, http.MethodGet, "/api/tasks", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code, "health is not guarded")
}

func TestTokenGuardLeavesUnknownRoutes(t *testing.T) {
	h := newTestServer(t, ServerOptions{Token: "s3cret"})

	rec := do(h, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", errorOf(t, rec))

	rec = do(h, http.MethodDelete, "/api/tasks/1", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "item routes stay guarded")
}

func TestOversizedBody(t *testing.T) {
	h := newTestServer(t, ServerOptions{})
	body := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`

	rec := do(h, http.MethodPost, "/api/tasks", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", errorOf(t, rec))

	rec = do(h, http.MethodGet, "/api/tasks", "")
	var list []model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := httpx.NewMetrics(prometheus.NewRegistry(), "tasks")
	h := newTestServer(t, ServerOptions{Metrics: metrics})

	do(h, http.MethodGet, "/api/tasks", "")
	rec := do(h, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bootcamp_http_requests_total{code="200",method="GET",server="tasks"}`)
}

func TestResponsesCarryRequestID(t *testing.T) {
	h := newTestServer(t, ServerOptions{})
	rec := do(h, http.MethodGet, "/api/tasks", "")
	assert.NotEmpty(t, rec.Header().Get(httpx.RequestIDHeader))
}
