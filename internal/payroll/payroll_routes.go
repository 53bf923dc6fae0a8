package payroll

import (
	"go-hrpos/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb ...*redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", middleware.RoleMiddleware("admin", "manager", "hr"), h.GetAll)
		payrolls.GET("/:id", middleware.RoleMiddleware("admin", "manager", "hr"), h.GetByID)
		payrolls.GET("/:id/breakdown", middleware.RoleMiddleware("admin", "manager", "hr"), h.GetBreakdown)
		payrolls.PATCH("/:id", middleware.RoleMiddleware("admin", "hr"), h.Edit)
		payrolls.POST("/:id/payslip", middleware.RoleMiddleware("admin", "hr"), h.GeneratePayslip)
		payrolls.GET("/:id/payslip", middleware.RoleMiddleware("admin", "manager", "hr"), h.DownloadPayslip)

		generate := payrolls.Group("")
		generate.Use(middleware.RoleMiddleware("admin", "hr"), middleware.RateLimitByUser(rate.Limit(1), 3))
		if len(rdb) > 0 && rdb[0] != nil {
			generate.Use(middleware.Idempotency(rdb[0]))
		}
		{
			generate.POST("/generate", h.Generate)
			generate.POST("/finalize", h.Finalize)
			// Reopening a finalized month reverses a published payroll,
			// so it stays admin-only.
			generate.POST("/unfinalize", middleware.RoleMiddleware("admin"), h.Unfinalize)
		}
	}
}
