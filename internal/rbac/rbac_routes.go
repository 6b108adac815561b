package rbac

import (
	"go-hiring/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, logger *zap.Logger) {
	group := r.Group("/rbac")
	group.Use(auth, middleware.ContextLogger(logger))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/policies", middleware.RoleMiddleware(middleware.RoleHR), handler.ListPolicies)
	}
}
