package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	employeeerrors "go-hrpos/internal/employee/errors"
	"go-hrpos/internal/events"
	"go-hrpos/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn               func(tx *sql.Tx) Repository
	createFn               func(ctx context.Context, empl *Employee) error
	findAllByCompanyFn     func(ctx context.Context, companyID string) ([]Employee, error)
	findOptionsByCompanyFn func(ctx context.Context, companyID string) ([]Employee, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*Employee, error)
	updateFn               func(ctx context.Context, empl *Employee) error
	deleteFn               func(ctx context.Context, companyID, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                  { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	return f.findOptionsByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                  { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestService_Create_GeneratesNumberAndQueuesEvent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	branchID := uuid.NewString()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *Employee) error { saved = *e; return nil }

	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, &fakeCounter{}, outbox, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), companyID, CreateEmployeeRequest{
		FullName: "Nguyen Van A",
		Email:    "a.nguyen@example.com",
		BranchID: branchID,
		HireDate: "2026-01-15",
	})
	assert.NoError(t, err)
	assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
	assert.Equal(t, StatusActive, saved.Status)
	assert.Equal(t, "staff", saved.Role)

	if assert.Len(t, outbox.created, 1) {
		assert.Equal(t, events.EmployeeCreatedTopic, outbox.created[0].Topic)
		var event events.EmployeeCreatedEvent
		assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
		assert.Equal(t, saved.ID.String(), event.EmployeeID)
		assert.Equal(t, branchID, event.BranchID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_InvalidHireDate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounter{}, nil)

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateEmployeeRequest{
		FullName: "Nguyen Van A",
		Email:    "a.nguyen@example.com",
		BranchID: uuid.NewString(),
		HireDate: "15/01/2026",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
}

func TestService_Update_DeactivatesEmployee(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	branchID := uuid.New()
	existing := Employee{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		BranchID:  branchID,
		FullName:  "Tran Thi B",
		Email:     "b.tran@example.com",
		Role:      "staff",
		HireDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:    StatusActive,
	}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*Employee, error) {
		e := existing
		return &e, nil
	}
	var updated Employee
	repo.updateFn = func(ctx context.Context, e *Employee) error { updated = *e; return nil }

	svc := NewService(db, repo, &fakeCounter{}, nil)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Update(context.Background(), companyID, existing.ID.String(), UpdateEmployeeRequest{
		FullName: existing.FullName,
		Email:    existing.Email,
		BranchID: branchID.String(),
		Status:   StatusInactive,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusInactive, updated.Status)
	assert.Equal(t, StatusInactive, resp.Status)
}

func TestMapRepositoryError_UniqueViolations(t *testing.T) {
	numberErr := mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_number"})
	assert.ErrorIs(t, numberErr, employeeerrors.ErrEmployeeNumberAlreadyExists)

	emailErr := mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"})
	assert.ErrorIs(t, emailErr, employeeerrors.ErrEmployeeAlreadyExists)
}

func TestService_GetOptions_FiltersToActive(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	repo := &fakeRepo{}
	repo.findOptionsByCompanyFn = func(ctx context.Context, companyID string) ([]Employee, error) {
		return []Employee{{ID: uuid.New(), FullName: "Nguyen Van A", Status: StatusActive}}, nil
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	resp, err := svc.GetOptions(context.Background(), companyID)
	assert.NoError(t, err)
	if assert.Len(t, resp, 1) {
		assert.Equal(t, "Nguyen Van A", resp[0].FullName)
	}
}
