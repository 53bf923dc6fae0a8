package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	leaveerrors "go-hrpos/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn               func(tx *sql.Tx) Repository
	createFn               func(ctx context.Context, l *Leave) error
	findAllByCompanyFn     func(ctx context.Context, companyID string) ([]Leave, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*Leave, error)
	updateFn               func(ctx context.Context, l *Leave) error
	deleteFn               func(ctx context.Context, companyID, id string) error
	hasOverlappingPeriodFn func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository               { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, l *Leave) error { return f.createFn(ctx, l) }
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Leave, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}
func (f *fakeRepo) Update(ctx context.Context, l *Leave) error { return f.updateFn(ctx, l) }
func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}
func (f *fakeRepo) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	return f.hasOverlappingPeriodFn(ctx, companyID, employeeID, startDate, endDate, excludeID)
}

func TestIsPaidType(t *testing.T) {
	assert.True(t, IsPaidType(TypeAnnual))
	assert.True(t, IsPaidType(TypeSick))
	assert.False(t, IsPaidType(TypeUnpaid))
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	actorID := uuid.NewString()

	var saved Leave
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, l *Leave) error { saved = *l; return nil }
	repo.hasOverlappingPeriodFn = func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
		return false, nil
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), companyID, actorID, CreateLeaveRequest{
		EmployeeID: uuid.NewString(),
		LeaveType:  TypeUnpaid,
		StartDate:  "2026-02-10",
		EndDate:    "2026-02-12",
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, resp.TotalDays)
	assert.False(t, resp.Paid)
	assert.Equal(t, StatusPending, saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_Overlap(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.hasOverlappingPeriodFn = func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
		return true, nil
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), CreateLeaveRequest{
		EmployeeID: uuid.NewString(),
		LeaveType:  TypeAnnual,
		StartDate:  "2026-02-10",
		EndDate:    "2026-02-12",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_SetsApprover(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	approver := uuid.NewString()
	leaveID := uuid.New()

	stored := &Leave{ID: leaveID, Status: StatusPending}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*Leave, error) {
		return stored, nil
	}
	repo.updateFn = func(ctx context.Context, l *Leave) error { stored = l; return nil }

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Approve(context.Background(), companyID, approver, leaveID.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.Equal(t, approver, *resp.ApprovedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Transition_TerminalStatusRejected(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*Leave, error) {
		return &Leave{ID: uuid.New(), Status: StatusApproved}, nil
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), uuid.NewString(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Reject_RequiresReason(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*Leave, error) {
		return &Leave{ID: uuid.New(), Status: StatusPending}, nil
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Reject(context.Background(), uuid.NewString(), uuid.NewString(), uuid.NewString(), "")
	assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
