package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                      func(tx *sql.Tx) Repository
	createFn                      func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn       func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	findAllByCompanyFn            func(ctx context.Context, companyID string) ([]Attendance, error)
	findAllByCompanyAndEmployeeFn func(ctx context.Context, companyID, employeeID string) ([]Attendance, error)
	updateFn                      func(ctx context.Context, a *Attendance) error
	aggregateMonthFn              func(ctx context.Context, companyID, employeeID string, from, to time.Time) (MonthlyAggregate, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                    { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Attendance, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Attendance, error) {
	return f.findAllByCompanyAndEmployeeFn(ctx, companyID, employeeID)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }
func (f *fakeRepo) AggregateMonth(ctx context.Context, companyID, employeeID string, from, to time.Time) (MonthlyAggregate, error) {
	return f.aggregateMonthFn(ctx, companyID, employeeID, from, to)
}

func TestService_ClockInAndClockOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	branchID := uuid.New().String()
	employeeID := uuid.New().String()
	ctx := context.Background()

	var saved Attendance
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		if saved.ID == uuid.Nil {
			return nil, gorm.ErrRecordNotFound
		}
		return &saved, nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.ClockIn(ctx, companyID, branchID, employeeID, ClockInRequest{})
	assert.NoError(t, err)
	assert.NotEmpty(t, inResp.ID)
	assert.Equal(t, branchID, inResp.BranchID)

	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.ClockOut(ctx, companyID, employeeID, ClockOutRequest{})
	assert.NoError(t, err)
	assert.NotNil(t, outResp.ClockOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New()}, nil
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockIn(context.Background(), uuid.NewString(), uuid.NewString(), uuid.NewString(), ClockInRequest{})
	assert.EqualError(t, err, "already clocked in for today")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSplitWorkedHours(t *testing.T) {
	in := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	worked, ot := splitWorkedHours(in, in.Add(10*time.Hour+30*time.Minute))
	assert.True(t, worked.Equal(decimal.RequireFromString("10.5")), worked.String())
	assert.True(t, ot.Equal(decimal.RequireFromString("2.5")), ot.String())

	worked, ot = splitWorkedHours(in, in.Add(6*time.Hour))
	assert.True(t, worked.Equal(decimal.NewFromInt(6)))
	assert.True(t, ot.IsZero())
}

func TestService_AggregateMonth(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	employeeID := uuid.NewString()

	var gotFrom, gotTo time.Time
	repo := &fakeRepo{}
	repo.aggregateMonthFn = func(ctx context.Context, cID, eID string, from, to time.Time) (MonthlyAggregate, error) {
		gotFrom, gotTo = from, to
		return MonthlyAggregate{
			EmployeeID:      eID,
			Month:           from.Format("2006-01"),
			ActualWorkDays:  20,
			PaidLeaveDays:   2,
			UnpaidLeaveDays: 1,
		}, nil
	}

	svc := NewService(db, repo)
	agg, err := svc.AggregateMonth(context.Background(), companyID, employeeID, "2026-02")
	assert.NoError(t, err)
	assert.Equal(t, 20, agg.ActualWorkDays)
	assert.Equal(t, "2026-02-01", gotFrom.Format("2006-01-02"))
	assert.Equal(t, "2026-03-01", gotTo.Format("2006-01-02"))

	_, err = svc.AggregateMonth(context.Background(), companyID, employeeID, "02-2026")
	assert.Error(t, err)
}
