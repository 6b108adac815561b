package visa

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
	self := r.Group("/visa")
	self.Use(auth, middleware.ContextLogger(logger))
	{
		self.GET("/status", middleware.RBACAuthorize(rbacService, domain.ResourceVisa, domain.ActionRead), handler.GetMyStatus)
		self.GET("/documents", middleware.RBACAuthorize(rbacService, domain.ResourceVisa, domain.ActionRead), handler.ListMyDocuments)
		self.POST("/documents/:type", middleware.Guarded(middleware.RBACAuthorize(rbacService, domain.ResourceVisa, domain.ActionUpload), writeGuards, handler.Upload)...)
	}

	hr := r.Group("/hr/visa")
	hr.Use(auth, middleware.ContextLogger(logger))
	{
		review := middleware.RBACAuthorize(rbacService, domain.ResourceVisa, domain.ActionReview)
		hr.GET("/in-progress", review, handler.ListInProgress)
		hr.GET("/all", review, handler.ListAll)
		hr.PATCH("/documents/:employeeId/:type", review, handler.Review)
		hr.POST("/notify/:employeeId", middleware.Guarded(middleware.RBACAuthorize(rbacService, domain.ResourceVisa, domain.ActionNotify), writeGuards, handler.Notify)...)
	}
}
