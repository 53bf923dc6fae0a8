package schedule_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrpos/internal/events"
	"go-hrpos/internal/messaging/kafka"
	"go-hrpos/internal/schedule"
	scheduleerrors "go-hrpos/internal/schedule/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeScheduleRepository struct {
	withTxFn                    func(tx *sql.Tx) schedule.Repository
	createFn                    func(ctx context.Context, reg *schedule.ShiftRegistration) error
	findAllByCompanyFn          func(ctx context.Context, companyID string, filter schedule.RegistrationQueryFilter) ([]schedule.ShiftRegistration, error)
	findPendingForDateFn        func(ctx context.Context, companyID, branchID string, shiftDate time.Time) ([]schedule.ShiftRegistration, error)
	findActiveForEmployeeDateFn func(ctx context.Context, companyID, employeeID string, shiftDate time.Time) ([]schedule.ShiftRegistration, error)
	updateStatusesFn            func(ctx context.Context, companyID string, ids []string, status string, decidedBy string, decidedAt time.Time) (int64, error)
}

func (f *fakeScheduleRepository) WithTx(tx *sql.Tx) schedule.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeScheduleRepository) Create(ctx context.Context, reg *schedule.ShiftRegistration) error {
	if f.createFn != nil {
		return f.createFn(ctx, reg)
	}
	return nil
}

func (f *fakeScheduleRepository) FindAllByCompany(ctx context.Context, companyID string, filter schedule.RegistrationQueryFilter) ([]schedule.ShiftRegistration, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeScheduleRepository) FindPendingForDate(ctx context.Context, companyID, branchID string, shiftDate time.Time) ([]schedule.ShiftRegistration, error) {
	if f.findPendingForDateFn != nil {
		return f.findPendingForDateFn(ctx, companyID, branchID, shiftDate)
	}
	return nil, nil
}

func (f *fakeScheduleRepository) FindActiveForEmployeeDate(ctx context.Context, companyID, employeeID string, shiftDate time.Time) ([]schedule.ShiftRegistration, error) {
	if f.findActiveForEmployeeDateFn != nil {
		return f.findActiveForEmployeeDateFn(ctx, companyID, employeeID, shiftDate)
	}
	return nil, nil
}

func (f *fakeScheduleRepository) UpdateStatuses(ctx context.Context, companyID string, ids []string, status string, decidedBy string, decidedAt time.Time) (int64, error) {
	if f.updateStatusesFn != nil {
		return f.updateStatusesFn(ctx, companyID, ids, status, decidedBy, decidedAt)
	}
	return int64(len(ids)), nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestScheduleService_Register_RejectsOverlap(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	existing := makeReg(t, uuid.MustParse(employeeID), uuid.New(), "Morning", "08:00", "12:00")
	repo := &fakeScheduleRepository{
		findActiveForEmployeeDateFn: func(ctx context.Context, cid, eid string, shiftDate time.Time) ([]schedule.ShiftRegistration, error) {
			return []schedule.ShiftRegistration{existing}, nil
		},
	}
	svc := schedule.NewService(db, repo)

	_, err = svc.Register(ctx, companyID, employeeID, schedule.CreateRegistrationRequest{
		EmployeeID: employeeID,
		BranchID:   uuid.New().String(),
		ShiftID:    uuid.New().String(),
		ShiftName:  "Midday",
		ShiftDate:  existing.ShiftDate.Format("2006-01-02"),
		StartTime:  "10:00",
		EndTime:    "14:00",
	})

	assert.ErrorIs(t, err, scheduleerrors.ErrDuplicateRegistration)
}

func TestScheduleService_Register_BackToBackAllowed(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	existing := makeReg(t, uuid.MustParse(employeeID), uuid.New(), "Morning", "08:00", "12:00")
	var created *schedule.ShiftRegistration
	repo := &fakeScheduleRepository{
		findActiveForEmployeeDateFn: func(ctx context.Context, cid, eid string, shiftDate time.Time) ([]schedule.ShiftRegistration, error) {
			return []schedule.ShiftRegistration{existing}, nil
		},
		createFn: func(ctx context.Context, reg *schedule.ShiftRegistration) error {
			created = reg
			return nil
		},
	}
	svc := schedule.NewService(db, repo)

	resp, err := svc.Register(ctx, companyID, employeeID, schedule.CreateRegistrationRequest{
		EmployeeID: employeeID,
		BranchID:   uuid.New().String(),
		ShiftID:    uuid.New().String(),
		ShiftName:  "Afternoon",
		ShiftDate:  existing.ShiftDate.Format("2006-01-02"),
		StartTime:  "12:00",
		EndTime:    "17:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, schedule.StatusPending, resp.Status)
	if assert.NotNil(t, created) {
		assert.Equal(t, 12*60, created.StartMinute)
		assert.Equal(t, 17*60, created.EndMinute)
	}
}

func TestScheduleService_ApproveBatch(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	branchID := uuid.New().String()
	alice := uuid.New()

	first := makeReg(t, alice, uuid.New(), "Morning", "08:00", "12:00")
	second := makeReg(t, alice, uuid.New(), "Midday", "10:00", "14:00")
	third := makeReg(t, uuid.New(), uuid.New(), "Midday", "10:00", "14:00")
	shiftDate := first.ShiftDate.Format("2006-01-02")

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	approvedByStatus := map[string][]string{}
	repo := &fakeScheduleRepository{
		findPendingForDateFn: func(ctx context.Context, cid, bid string, d time.Time) ([]schedule.ShiftRegistration, error) {
			return []schedule.ShiftRegistration{first, second, third}, nil
		},
		updateStatusesFn: func(ctx context.Context, cid string, ids []string, status string, decidedBy string, decidedAt time.Time) (int64, error) {
			approvedByStatus[status] = append(approvedByStatus[status], ids...)
			return int64(len(ids)), nil
		},
	}

	var queued *kafka.OutboxEvent
	outbox := &fakeOutboxRepository{
		createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = &event
			return nil
		},
	}
	svc := schedule.NewServiceWithOutbox(db, repo, outbox)

	expectTx(t, sqlMock, true)
	resp, err := svc.ApproveBatch(ctx, companyID, actorID, schedule.ApproveBatchRequest{
		BranchID:    branchID,
		ShiftDate:   shiftDate,
		SelectedIDs: []string{first.ID.String(), second.ID.String(), third.ID.String()},
	})

	assert.NoError(t, err)
	// alice's second registration collides with her first: skipped and rejected
	assert.Len(t, resp.Approved, 2)
	assert.Len(t, resp.Rejected, 1)
	if assert.Len(t, resp.Conflicts, 1) {
		assert.Equal(t, second.ID.String(), resp.Conflicts[0].RegistrationID)
		assert.Equal(t, "Morning", resp.Conflicts[0].ConflictsWith)
	}
	assert.ElementsMatch(t, []string{first.ID.String(), third.ID.String()}, approvedByStatus[schedule.StatusApproved])
	assert.Equal(t, []string{second.ID.String()}, approvedByStatus[schedule.StatusRejected])

	if assert.NotNil(t, queued) {
		assert.Equal(t, events.ShiftScheduleGeneratedTopic, queued.Topic)
		var payload events.ShiftScheduleGeneratedEvent
		assert.NoError(t, json.Unmarshal(queued.Payload, &payload))
		assert.Equal(t, 2, payload.ApprovedCount)
		assert.Equal(t, 1, payload.RejectedCount)
	}
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestScheduleService_ApproveBatch_UnselectedAreRejected(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	reg := makeReg(t, uuid.New(), uuid.New(), "Morning", "08:00", "12:00")

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeScheduleRepository{
		findPendingForDateFn: func(ctx context.Context, cid, bid string, d time.Time) ([]schedule.ShiftRegistration, error) {
			return []schedule.ShiftRegistration{reg}, nil
		},
	}
	svc := schedule.NewService(db, repo)

	expectTx(t, sqlMock, true)
	resp, err := svc.ApproveBatch(ctx, companyID, actorID, schedule.ApproveBatchRequest{
		BranchID:    uuid.New().String(),
		ShiftDate:   reg.ShiftDate.Format("2006-01-02"),
		SelectedIDs: nil,
	})

	assert.NoError(t, err)
	assert.Empty(t, resp.Approved)
	assert.Len(t, resp.Rejected, 1)
	assert.Equal(t, schedule.StatusRejected, resp.Rejected[0].Status)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestScheduleService_ApproveBatch_EmptyBatch(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeScheduleRepository{
		findPendingForDateFn: func(ctx context.Context, cid, bid string, d time.Time) ([]schedule.ShiftRegistration, error) {
			return nil, nil
		},
	}
	svc := schedule.NewService(db, repo)

	expectTx(t, sqlMock, false)
	_, err = svc.ApproveBatch(ctx, companyID, actorID, schedule.ApproveBatchRequest{
		BranchID:  uuid.New().String(),
		ShiftDate: "2026-03-09",
	})

	assert.ErrorIs(t, err, scheduleerrors.ErrEmptyApprovalBatch)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestScheduleService_ApproveBatch_UpdateFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	reg := makeReg(t, uuid.New(), uuid.New(), "Morning", "08:00", "12:00")

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeScheduleRepository{
		findPendingForDateFn: func(ctx context.Context, cid, bid string, d time.Time) ([]schedule.ShiftRegistration, error) {
			return []schedule.ShiftRegistration{reg}, nil
		},
		updateStatusesFn: func(ctx context.Context, cid string, ids []string, status string, decidedBy string, decidedAt time.Time) (int64, error) {
			return 0, errors.New("db error")
		},
	}
	svc := schedule.NewService(db, repo)

	expectTx(t, sqlMock, false)
	_, err = svc.ApproveBatch(ctx, companyID, actorID, schedule.ApproveBatchRequest{
		BranchID:    uuid.New().String(),
		ShiftDate:   reg.ShiftDate.Format("2006-01-02"),
		SelectedIDs: []string{reg.ID.String()},
	})

	assert.Error(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
