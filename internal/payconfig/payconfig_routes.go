package payconfig

import (
	"go-hrpos/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	settings := r.Group("/payroll-settings")
	settings.Use(middleware.AuthMiddleware())
	settings.Use(middleware.RoleMiddleware("admin"))
	{
		settings.GET("", h.Get)
		settings.PUT("", h.Update)
	}
}
