package profile

import (
	"go-hiring/internal/domain"
	"go-hiring/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	auth gin.HandlerFunc,
	logger *zap.Logger,
) {
	me := r.Group("/me")
	me.Use(auth, middleware.ContextLogger(logger))
	{
		me.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionRead), handler.GetMe)
		me.PUT("/profile", middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionUpdate), handler.UpdateProfile)
	}

	hr := r.Group("/hr/employees")
	hr.Use(auth, middleware.ContextLogger(logger), middleware.RBACAuthorize(rbacService, domain.ResourceEmployees, domain.ActionRead))
	{
		hr.GET("", handler.ListEmployees)
		hr.GET("/:id", handler.GetEmployee)
	}
}
