package contract

import (
	"context"
	"database/sql"
	"testing"
	"time"

	contracterrors "go-hrpos/internal/contract/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn               func(tx *sql.Tx) Repository
	createFn               func(ctx context.Context, terms *Terms) error
	findAllByCompanyFn     func(ctx context.Context, companyID string) ([]Terms, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*Terms, error)
	findActiveByEmployeeFn func(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Terms, error)
	deleteFn               func(ctx context.Context, companyID, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository               { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, t *Terms) error { return f.createFn(ctx, t) }
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Terms, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Terms, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}
func (f *fakeRepo) FindActiveByEmployee(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Terms, error) {
	return f.findActiveByEmployeeFn(ctx, companyID, employeeID, asOf)
}
func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func TestTerms_Missing(t *testing.T) {
	assert.True(t, Terms{}.Missing())
	assert.True(t, Terms{PayType: PayTypeMonthly}.Missing())
	assert.True(t, Terms{BaseRate: 8_000_000}.Missing())
	assert.True(t, Terms{PayType: "WEEKLY", BaseRate: 8_000_000}.Missing())
	assert.False(t, Terms{PayType: PayTypeMonthly, BaseRate: 8_000_000}.Missing())
	assert.False(t, Terms{PayType: PayTypeHourly, BaseRate: 30_000}.Missing())
}

func TestService_Create_SeedsIncompleteStub(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Terms
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, terms *Terms) error { saved = *terms; return nil }

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), uuid.NewString(), CreateTermsRequest{
		EmployeeID:    uuid.NewString(),
		EffectiveDate: "2026-01-01",
	})
	assert.NoError(t, err)
	assert.False(t, resp.Complete)
	assert.True(t, saved.Missing())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_MapsUniqueViolation(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, terms *Terms) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_contract_terms_effective"}
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateTermsRequest{
		EmployeeID:    uuid.NewString(),
		PayType:       PayTypeMonthly,
		BaseRate:      8_000_000,
		EffectiveDate: "2026-01-01",
	})
	assert.ErrorIs(t, err, contracterrors.ErrEffectiveDateAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetActiveForEmployee_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findActiveByEmployeeFn = func(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Terms, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	_, err := svc.GetActiveForEmployee(context.Background(), uuid.NewString(), uuid.NewString(), time.Now())
	assert.ErrorIs(t, err, contracterrors.ErrTermsNotFound)
}

func TestService_Update_InsertsNewVersion(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New()
	employeeID := uuid.New()
	currentID := uuid.New()

	var inserted Terms
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDAndCompanyFn = func(ctx context.Context, cID, id string) (*Terms, error) {
		return &Terms{ID: currentID, CompanyID: companyID, EmployeeID: employeeID, PayType: PayTypeMonthly, BaseRate: 8_000_000}, nil
	}
	repo.createFn = func(ctx context.Context, terms *Terms) error { inserted = *terms; return nil }

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Update(context.Background(), companyID.String(), currentID.String(), UpdateTermsRequest{
		PayType:       PayTypeMonthly,
		BaseRate:      9_500_000,
		EffectiveDate: "2026-04-01",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, currentID.String(), resp.ID)
	assert.Equal(t, employeeID, inserted.EmployeeID)
	assert.Equal(t, int64(9_500_000), inserted.BaseRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
