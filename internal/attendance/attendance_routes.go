package attendance

import (
	"go-hrpos/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", h.GetAll)
		attendances.POST("/clock-in", h.ClockIn)
		attendances.POST("/clock-out", h.ClockOut)
		attendances.GET("/summary/:employee_id", middleware.RoleMiddleware("admin", "manager", "hr"), h.GetMonthlySummary)
	}
}
