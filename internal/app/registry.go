package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"go-hrpos/internal/attendance"
	"go-hrpos/internal/contract"
	"go-hrpos/internal/employee"
	"go-hrpos/internal/leave"
	"go-hrpos/internal/messaging/kafka"
	"go-hrpos/internal/payconfig"
	"go-hrpos/internal/payroll"
	"go-hrpos/internal/schedule"
	"go-hrpos/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	contractRepo := contract.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payconfigRepo := payconfig.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo)
	contractService := contract.NewService(db, contractRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo)
	payconfigService := payconfig.NewService(payconfigRepo, rdb)
	scheduleService := schedule.NewServiceWithOutbox(db, scheduleRepo, outboxRepo)

	storageDir := os.Getenv("PAYSLIP_STORAGE_DIR")
	if storageDir == "" {
		storageDir = filepath.Join("storage", "payslips")
	}
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		attendanceService,
		contractService,
		payconfigService,
		outboxRepo,
		payroll.NewPDFRenderer(storageDir),
	)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	contractHandler := contract.NewHandler(contractService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	payconfigHandler := payconfig.NewHandler(payconfigService)
	payrollHandler := payroll.NewHandler(payrollService)
	scheduleHandler := schedule.NewHandler(scheduleService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		contract.RegisterRoutes(api, contractHandler)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler)
		payconfig.RegisterRoutes(api, payconfigHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
		schedule.RegisterRoutes(api, scheduleHandler)
	}

	return nil
}
