package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encodergroup/portal-go/internal/api/middleware"
	"github.com/encodergroup/portal-go/internal/application"
	"github.com/encodergroup/portal-go/internal/config"
	"github.com/encodergroup/portal-go/internal/domain/user"
	"github.com/encodergroup/portal-go/internal/notify"
	"github.com/encodergroup/portal-go/internal/repository"
	"github.com/encodergroup/portal-go/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.JwtSecret = "router-test-secret"
	config.Issuer = "portal-test"
	config.TokenTTL = time.Hour
	config.AllowedOrigins = []string{"http://localhost:3000"}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	repos, err := repository.NewMemory("", 0)
	require.NoError(t, err)

	hub := notify.NewHub()
	services := application.New(repos, storage.NewMemoryStore(), hub)

	r := gin.New()
	RegisterRoutes(r, services, hub)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func loginAs(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":     email,
		"password":  "a long enough password",
		"firstName": "Test",
		"lastName":  "User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "a long enough password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateToken(&user.User{
		ID:    "0e7a2c54-8f7d-4b4f-9b7a-1f2d3c4b5a60",
		Email: "staff@encodergroup.test",
		Role:  user.RoleAdmin,
	})
	require.NoError(t, err)
	return token
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := loginAs(t, r, "client@example.com")

	// Create lands on submitted with one ledger row.
	w := doJSON(t, r, http.MethodPost, "/api/v1/requests", token, gin.H{
		"title":       "Company website",
		"description": "Marketing site with CMS",
		"tags":        []string{"web"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	reqBody := created["request"].(map[string]interface{})
	assert.Equal(t, "submitted", reqBody["status"])
	assert.Equal(t, "Submitted", reqBody["statusLabel"])
	history := reqBody["statusHistory"].([]interface{})
	require.Len(t, history, 1)

	id := reqBody["id"].(string)

	// List envelope shape.
	w = doJSON(t, r, http.MethodGet, "/api/v1/requests?limit=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listBody := decode(t, w)
	assert.Equal(t, true, listBody["success"])
	assert.Equal(t, float64(1), listBody["total"])
	assert.Len(t, listBody["requests"].([]interface{}), 1)

	// Clients cannot change status.
	w = doJSON(t, r, http.MethodPut, "/api/v1/requests/"+id+"/status", token, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins can, but not to the same status.
	admin := adminToken(t)
	w = doJSON(t, r, http.MethodPut, "/api/v1/requests/"+id+"/status", admin, gin.H{"status": "submitted"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/requests/"+id+"/advance", admin, gin.H{"reason": "picked up"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	advanced := decode(t, w)["request"].(map[string]interface{})
	assert.Equal(t, "requirements_analysis", advanced["status"])
	assert.Len(t, advanced["statusHistory"].([]interface{}), 2)

	// The owner got a notification for the status change.
	w = doJSON(t, r, http.MethodGet, "/api/v1/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])
}

func TestRequestNotFoundAndValidation(t *testing.T) {
	r := newTestRouter(t)
	token := loginAs(t, r, "client@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/requests/0e7a2c54-8f7d-4b4f-9b7a-1f2d3c4b5a99", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/requests/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/requests", token, gin.H{"description": "missing title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusCatalogEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token := loginAs(t, r, "client@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/requests/statuses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	statuses := decode(t, w)["statuses"].([]interface{})
	assert.Equal(t, 13, len(statuses))
	first := statuses[0].(map[string]interface{})
	assert.Equal(t, "draft", first["value"])
	assert.Equal(t, "Draft", first["label"])
	assert.NotEmpty(t, first["color"])
}

func TestAdminRoutesRejectClients(t *testing.T) {
	r := newTestRouter(t)
	token := loginAs(t, r, "client@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/audit", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/users", adminToken(t), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/requests", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
