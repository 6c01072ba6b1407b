package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
)

func withSession(id, name, email, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Set("userName", name)
		c.Set("userEmail", email)
		c.Set("userRole", role)
		c.Next()
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(withSession("u1", "User", "u@example.com", role))
		r.GET("/publisher-only", RequireRoles(entity.RolePublisher), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		r.GET("/any", RequireRoles(entity.RoleUser, entity.RolePublisher), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	get := func(r *gin.Engine, path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, get(newRouter(entity.RolePublisher), "/publisher-only"))
	assert.Equal(t, http.StatusForbidden, get(newRouter(entity.RoleUser), "/publisher-only"))
	assert.Equal(t, http.StatusNoContent, get(newRouter(entity.RoleUser), "/any"))
	assert.Equal(t, http.StatusForbidden, get(newRouter("admin"), "/any"))
	assert.Equal(t, http.StatusForbidden, get(newRouter(""), "/any"))
}

func TestIdentityFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got entity.Identity
	r := gin.New()
	r.Use(withSession("u1", "Alice", "alice@example.com", entity.RoleUser))
	r.GET("/", func(c *gin.Context) {
		got = IdentityFrom(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, entity.Identity{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: entity.RoleUser}, got)
}
