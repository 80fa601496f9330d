package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/dental-lab/internal/auth"
	domain "github.com/BruksfildServices01/dental-lab/internal/domain/admin"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type stubAuthenticator struct {
	admins map[string]*models.Administrator
}

func (s stubAuthenticator) Authenticate(_ context.Context, subject, _ string) (*models.Administrator, error) {
	a, ok := s.admins[subject]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if a.Status != string(domain.StatusActive) {
		return nil, httperr.ErrBusiness(httperr.CodeInactiveAdmin)
	}
	return a, nil
}

func newAdmin(subject string, role domain.Role, status domain.Status) *models.Administrator {
	return &models.Administrator{
		Subject:     subject,
		Email:       subject + "@lab.pe",
		Role:        string(role),
		Status:      string(status),
		Permissions: datatypes.NewJSONType(domain.DefaultPermissions(role)),
	}
}

func setup(t *testing.T) (*gin.Engine, *auth.Tokens) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	tokens := auth.NewTokens("secret", "dental-lab", time.Hour, now)

	authn := stubAuthenticator{admins: map[string]*models.Administrator{
		"root":   newAdmin("root", domain.RoleSuperAdmin, domain.StatusActive),
		"mod":    newAdmin("mod", domain.RoleModerator, domain.StatusActive),
		"former": newAdmin("former", domain.RoleAdmin, domain.StatusSuspended),
	}}

	r := gin.New()
	g := r.Group("/admin", RequireAdmin(tokens, authn))
	g.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, ActorSubject(c))
	})
	g.GET("/export", RequirePermission(domain.PermExportData), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens
}

func get(t *testing.T, r http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func issue(t *testing.T, tokens *auth.Tokens, subject string) string {
	t.Helper()
	tok, err := tokens.Issue(subject, subject+"@lab.pe")
	require.NoError(t, err)
	return tok
}

func TestRequireAdmin(t *testing.T) {
	r, tokens := setup(t)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"unknown subject", issue(t, tokens, "ghost"), http.StatusUnauthorized},
		{"suspended admin", issue(t, tokens, "former"), http.StatusForbidden},
		{"active admin", issue(t, tokens, "root"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, r, "/admin/me", tt.token)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	rec := get(t, r, "/admin/me", issue(t, tokens, "root"))
	assert.Equal(t, "root", rec.Body.String())
}

func TestRequirePermission(t *testing.T) {
	r, tokens := setup(t)

	assert.Equal(t, http.StatusOK, get(t, r, "/admin/export", issue(t, tokens, "root")).Code)
	assert.Equal(t, http.StatusForbidden, get(t, r, "/admin/export", issue(t, tokens, "mod")).Code)
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, get(t, r, "/", "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	assert.True(t, rl.Allow("10.0.0.2"), "budgets are per client")
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://laboratorio-dental.pe"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://laboratorio-dental.pe")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://laboratorio-dental.pe", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
