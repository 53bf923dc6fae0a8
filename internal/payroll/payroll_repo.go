package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-hrpos/internal/shared/gormtx"
	"go-hrpos/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRef is the slice of the employees table payroll needs when walking
// a branch: identity plus display name for payslip rendering.
type EmployeeRef struct {
	ID       uuid.UUID `gorm:"column:id"`
	FullName string    `gorm:"column:full_name"`
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payslip) error
	Update(ctx context.Context, p *Payslip) error
	FindAllByCompany(ctx context.Context, companyID string, filter PayslipQueryFilter) ([]Payslip, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error)
	FindByMonthBranch(ctx context.Context, companyID, branchID, month string) ([]Payslip, error)
	DeleteDraft(ctx context.Context, companyID, id string) error
	SetFinalized(ctx context.Context, companyID string, ids []string, finalizedBy string, finalizedAt time.Time) (int64, error)
	ClearFinalized(ctx context.Context, companyID string, ids []string) (int64, error)
	ListActiveEmployees(ctx context.Context, companyID, branchID string) ([]EmployeeRef, error)
}

type PayslipQueryFilter struct {
	BranchID   *string
	EmployeeID *string
	Month      *string
	Finalized  *bool
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

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter PayslipQueryFilter) ([]Payslip, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID))

	if filter.BranchID != nil && *filter.BranchID != "" {
		db = db.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Month != nil && *filter.Month != "" {
		db = db.Where("month = ?", *filter.Month)
	}
	if filter.Finalized != nil {
		db = db.Where("is_finalized = ?", *filter.Finalized)
	}

	var rows []Payslip
	err := db.Order("month DESC, employee_id ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByMonthBranch(ctx context.Context, companyID, branchID, month string) ([]Payslip, error) {
	var rows []Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.BranchScope(companyID, branchID)).
		Where("month = ?", month).
		Order("employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteDraft(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_finalized = ?", false).
		Delete(&Payslip{}, "id = ?", id).Error
}

// SetFinalized flips the lock on every listed draft. The is_finalized = false
// predicate makes the row count an exact concurrency check: fewer rows than
// ids means someone finalized part of the batch first.
func (r *repository) SetFinalized(ctx context.Context, companyID string, ids []string, finalizedBy string, finalizedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Where("is_finalized = ?", false).
		Updates(map[string]any{
			"is_finalized": true,
			"finalized_by": finalizedBy,
			"finalized_at": finalizedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) ClearFinalized(ctx context.Context, companyID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Where("is_finalized = ?", true).
		Updates(map[string]any{
			"is_finalized": false,
			"finalized_by": nil,
			"finalized_at": nil,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) ListActiveEmployees(ctx context.Context, companyID, branchID string) ([]EmployeeRef, error) {
	var refs []EmployeeRef
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, full_name").
		Where("company_id = ?", companyID).
		Where("branch_id = ?", branchID).
		Where("status = ?", "ACTIVE").
		Where("deleted_at IS NULL").
		Order("full_name ASC").
		Find(&refs).Error
	return refs, err
}
