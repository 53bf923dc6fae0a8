package contract

import (
	"go-hrpos/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	contracts := r.Group("/contract-terms")
	contracts.Use(middleware.AuthMiddleware())
	contracts.Use(middleware.RoleMiddleware("admin", "hr"))
	{
		contracts.GET("", middleware.RateLimitByUser(1, 5), handler.GetAll)
		contracts.GET("/:id", middleware.RateLimitByUser(2, 5), handler.GetByID)
		contracts.GET("/active/:employee_id", middleware.RateLimitByUser(2, 5), handler.GetActiveForEmployee)
		contracts.POST("", middleware.RateLimitByUser(0.1, 1), handler.Create)
		contracts.PUT("/:id", middleware.RateLimitByUser(0.1, 1), handler.Update)
		contracts.DELETE("/:id", middleware.RateLimitByUser(0.05, 1), handler.Delete)
	}
}
