package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amara-wedding/backend/internal/auth"
)

func setupProtectedRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService("test-secret", 24)
	router := gin.New()
	router.GET("/admin/ping", JWT(jwtService), RequireRole("admin"), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router, jwtService
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTMiddlewareAllowsAdmin(t *testing.T) {
	router, jwtService := setupProtectedRouter(t)

	token, err := jwtService.Generate(uuid.New(), "admin@amaraanddev.example", "admin")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	w := request(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestJWTMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	router, _ := setupProtectedRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := request(router, tt.header); w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestJWTMiddlewareRejectsWrongRole(t *testing.T) {
	router, jwtService := setupProtectedRouter(t)

	token, err := jwtService.Generate(uuid.New(), "guest@example.com", "guest")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if w := request(router, "Bearer "+token); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
