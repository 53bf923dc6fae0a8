package contract

import (
	"context"
	"database/sql"
	"time"

	"go-hrpos/internal/shared/gormtx"
	"go-hrpos/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=contract_repo.go -destination=mock/contract_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, terms *Terms) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Terms, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Terms, error)
	FindActiveByEmployee(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Terms, error)
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, terms *Terms) error {
	return r.db.WithContext(ctx).Create(terms).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Terms, error) {
	var rows []Terms
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("employee_id ASC, effective_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Terms, error) {
	var terms Terms
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&terms, "id = ?", id).Error
	return &terms, err
}

// FindActiveByEmployee returns the newest version effective on or before asOf.
func (r *repository) FindActiveByEmployee(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Terms, error) {
	var terms Terms
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("effective_date <= ?", asOf.Format("2006-01-02")).
		Order("effective_date DESC, created_at DESC").
		First(&terms).Error
	return &terms, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Terms{}, "id = ?", id).Error
}
