package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/container"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

// PostModule wires post routes.
// Public: GET /posts (paginated keyword listing)
// Protected: everything else; mutations additionally require a known role.

type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	listLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/posts", listLimiter, m.Handler.List)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/posts/search", m.Handler.Search)
		auth.GET("/posts/category/:category", m.Handler.ListByCategory)
		auth.GET("/posts/:id", m.Handler.Get)

		mutate := auth.Group("/")
		mutate.Use(middleware.RequireRoles(entity.RoleUser, entity.RolePublisher))
		{
			mutate.POST("/posts", m.Handler.Create)
			mutate.PUT("/posts/:id", m.Handler.Update)
			mutate.DELETE("/posts/:id", m.Handler.Delete)
		}
	}
}
