package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"limocontrol/internal/auth"
	"limocontrol/internal/domain/models"
)

var testSecret = []byte("test-secret")

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", RequireAuth(testSecret))
	authed.GET("/ping", func(c *gin.Context) {
		ident, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"sub": ident.UserID})
	})
	authed.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := protectedRouter()

	if w := get(r, "/ping", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := get(r, "/ping", "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", w.Code)
	}

	token, err := auth.GenerateToken(testSecret, "u_1", models.RoleUser)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if w := get(r, "/ping", token); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	r := protectedRouter()

	userToken, err := auth.GenerateToken(testSecret, "u_1", models.RoleUser)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if w := get(r, "/admin", userToken); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}

	adminToken, err := auth.GenerateToken(testSecret, "u_2", models.RoleAdmin)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if w := get(r, "/admin", adminToken); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}
