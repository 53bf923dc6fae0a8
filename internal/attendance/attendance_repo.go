package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrpos/internal/shared/gormtx"
	"go-hrpos/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Attendance, error)
	FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	AggregateMonth(ctx context.Context, companyID, employeeID string, from, to time.Time) (MonthlyAggregate, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: gormtx.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("work_date DESC, clock_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("work_date DESC, clock_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

type attendanceTotals struct {
	ActualWorkDays   int             `gorm:"column:actual_work_days"`
	TotalHoursWorked decimal.Decimal `gorm:"column:total_hours_worked"`
	OvertimeHours    decimal.Decimal `gorm:"column:overtime_hours"`
}

type leaveTotals struct {
	PaidLeaveDays   int `gorm:"column:paid_leave_days"`
	UnpaidLeaveDays int `gorm:"column:unpaid_leave_days"`
}

// AggregateMonth folds the employee's attendance rows and APPROVED leave rows
// over [from, to) into one MonthlyAggregate. Leave requests spanning a month
// boundary only contribute the days inside the window.
func (r *repository) AggregateMonth(ctx context.Context, companyID, employeeID string, from, to time.Time) (MonthlyAggregate, error) {
	agg := MonthlyAggregate{
		EmployeeID: employeeID,
		Month:      from.Format("2006-01"),
	}

	var att attendanceTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status IN ('PRESENT', 'LATE')) AS actual_work_days,
			COALESCE(SUM(worked_hours), 0)                        AS total_hours_worked,
			COALESCE(SUM(overtime_hours), 0)                      AS overtime_hours
		FROM attendances
		WHERE company_id = ?
		  AND employee_id = ?
		  AND work_date >= ? AND work_date < ?
		  AND deleted_at IS NULL`,
		companyID, employeeID, from.Format("2006-01-02"), to.Format("2006-01-02"),
	).Scan(&att).Error
	if err != nil {
		return MonthlyAggregate{}, err
	}

	lastDay := to.AddDate(0, 0, -1)
	var lv leaveTotals
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN leave_type <> 'UNPAID'
				THEN LEAST(end_date, ?::date) - GREATEST(start_date, ?::date) + 1
				ELSE 0 END), 0) AS paid_leave_days,
			COALESCE(SUM(CASE WHEN leave_type = 'UNPAID'
				THEN LEAST(end_date, ?::date) - GREATEST(start_date, ?::date) + 1
				ELSE 0 END), 0) AS unpaid_leave_days
		FROM leaves
		WHERE company_id = ?
		  AND employee_id = ?
		  AND status = 'APPROVED'
		  AND start_date < ? AND end_date >= ?
		  AND deleted_at IS NULL`,
		lastDay.Format("2006-01-02"), from.Format("2006-01-02"),
		lastDay.Format("2006-01-02"), from.Format("2006-01-02"),
		companyID, employeeID,
		to.Format("2006-01-02"), from.Format("2006-01-02"),
	).Scan(&lv).Error
	if err != nil {
		return MonthlyAggregate{}, err
	}

	agg.ActualWorkDays = att.ActualWorkDays
	agg.TotalHoursWorked = att.TotalHoursWorked
	agg.OvertimeHours = att.OvertimeHours
	agg.PaidLeaveDays = lv.PaidLeaveDays
	agg.UnpaidLeaveDays = lv.UnpaidLeaveDays
	return agg, nil
}
