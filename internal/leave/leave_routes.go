package leave

import (
	"go-hrpos/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", h.GetAll)
		leaves.GET("/:id", h.GetByID)
		leaves.POST("", h.Create)
		leaves.POST("/:id/approve", middleware.RoleMiddleware("admin", "manager", "hr"), h.Approve)
		leaves.POST("/:id/reject", middleware.RoleMiddleware("admin", "manager", "hr"), h.Reject)
		leaves.POST("/:id/cancel", h.Cancel)
		leaves.DELETE("/:id", middleware.RoleMiddleware("admin"), h.Delete)
	}
}
