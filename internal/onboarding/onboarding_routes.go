package onboarding

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
	writeGuards ...gin.HandlerFunc,
) {
	self := r.Group("/onboarding")
	self.Use(auth, middleware.ContextLogger(logger))
	{
		self.POST("", middleware.Guarded(middleware.RBACAuthorize(rbacService, domain.ResourceOnboarding, domain.ActionSubmit), writeGuards, handler.Submit)...)
		self.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceOnboarding, domain.ActionRead), handler.GetMine)
	}

	hr := r.Group("/hr/onboarding")
	hr.Use(auth, middleware.ContextLogger(logger), middleware.RBACAuthorize(rbacService, domain.ResourceOnboarding, domain.ActionReview))
	{
		hr.GET("", handler.List)
		hr.GET("/:employeeId", handler.GetApplication)
		hr.PATCH("/:employeeId", handler.Decide)
	}
}
