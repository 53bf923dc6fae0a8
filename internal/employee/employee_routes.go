package employee

import (
	"go-hrpos/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RoleMiddleware("admin", "manager", "hr"),
			h.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RoleMiddleware("admin", "manager", "hr"),
			h.GetOptions,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RoleMiddleware("admin", "manager", "hr"),
			h.GetByID,
		)

		employees.POST("",
			middleware.RateLimitByUser(rate.Limit(0.1), 1),
			middleware.RoleMiddleware("admin", "hr"),
			h.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(rate.Limit(0.5), 2),
			middleware.RoleMiddleware("admin", "hr"),
			h.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(rate.Limit(0.05), 1),
			middleware.RoleMiddleware("admin"),
			h.Delete,
		)
	}
}
