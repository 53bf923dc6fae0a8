package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go-hrpos/internal/attendance"
	"go-hrpos/internal/contract"
	"go-hrpos/internal/payconfig"
	"go-hrpos/internal/payroll"
	"go-hrpos/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer reacts to domain events: seeding contract stubs for new
// employees and rendering payslip PDFs after a month is finalized.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	contractRepo := contract.NewRepository(gormDB)
	contractService := contract.NewService(sqlDB, contractRepo)

	attendanceService := attendance.NewService(sqlDB, attendance.NewRepository(gormDB))
	payconfigService := payconfig.NewService(payconfig.NewRepository(gormDB), nil)

	storageDir := os.Getenv("PAYSLIP_STORAGE_DIR")
	if storageDir == "" {
		storageDir = filepath.Join("storage", "payslips")
	}
	payrollService := payroll.NewService(
		sqlDB,
		payroll.NewRepository(gormDB),
		attendanceService,
		contractService,
		payconfigService,
		nil,
		payroll.NewPDFRenderer(storageDir),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	contractConsumer := contract.NewEmployeeCreatedConsumer(
		kafkaBroker,
		"go-hrpos-contract-terms",
		contractService,
	)
	contractConsumer.Start(ctx)

	payslipConsumer := payroll.NewPayslipRequestedConsumer(
		kafkaBroker,
		"go-hrpos-payslip-render",
		payrollService,
	)
	payslipConsumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
