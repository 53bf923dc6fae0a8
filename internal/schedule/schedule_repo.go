package schedule

import (
	"context"
	"database/sql"
	"time"

	"go-hrpos/internal/shared/gormtx"
	"go-hrpos/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, reg *ShiftRegistration) error
	FindAllByCompany(ctx context.Context, companyID string, filter RegistrationQueryFilter) ([]ShiftRegistration, error)
	FindPendingForDate(ctx context.Context, companyID, branchID string, shiftDate time.Time) ([]ShiftRegistration, error)
	FindActiveForEmployeeDate(ctx context.Context, companyID, employeeID string, shiftDate time.Time) ([]ShiftRegistration, error)
	UpdateStatuses(ctx context.Context, companyID string, ids []string, status string, decidedBy string, decidedAt time.Time) (int64, error)
}

type RegistrationQueryFilter struct {
	BranchID  *string
	ShiftDate *time.Time
	Status    *string
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

func (r *repository) Create(ctx context.Context, reg *ShiftRegistration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter RegistrationQueryFilter) ([]ShiftRegistration, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID))

	if filter.BranchID != nil && *filter.BranchID != "" {
		db = db.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.ShiftDate != nil {
		db = db.Where("shift_date = ?", *filter.ShiftDate)
	}
	if filter.Status != nil && *filter.Status != "" {
		db = db.Where("status = ?", *filter.Status)
	}

	var regs []ShiftRegistration
	err := db.Order("shift_date DESC, start_minute ASC").Find(&regs).Error
	return regs, err
}

func (r *repository) FindPendingForDate(ctx context.Context, companyID, branchID string, shiftDate time.Time) ([]ShiftRegistration, error) {
	var regs []ShiftRegistration
	err := r.db.WithContext(ctx).
		Scopes(tenant.BranchScope(companyID, branchID)).
		Where("shift_date = ?", shiftDate).
		Where("status = ?", StatusPending).
		Order("registered_at ASC").
		Find(&regs).Error
	return regs, err
}

// FindActiveForEmployeeDate returns the employee's PENDING and APPROVED
// registrations on a date; used to block duplicate overlapping requests at
// registration time.
func (r *repository) FindActiveForEmployeeDate(ctx context.Context, companyID, employeeID string, shiftDate time.Time) ([]ShiftRegistration, error) {
	var regs []ShiftRegistration
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("shift_date = ?", shiftDate).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Find(&regs).Error
	return regs, err
}

func (r *repository) UpdateStatuses(ctx context.Context, companyID string, ids []string, status string, decidedBy string, decidedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Model(&ShiftRegistration{}).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": decidedAt,
		})
	return res.RowsAffected, res.Error
}
