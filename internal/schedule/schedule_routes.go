package schedule

import (
	"go-hrpos/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	regs := r.Group("/shift-registrations")
	regs.Use(middleware.AuthMiddleware())
	{
		regs.GET("", handler.GetAll)
		regs.POST("", handler.Register)
		regs.POST("/select-shift", middleware.RoleMiddleware("admin", "manager"), handler.SelectShift)
		regs.POST("/approve-batch", middleware.RoleMiddleware("admin", "manager"), handler.ApproveBatch)
	}
}
