package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-hrpos/internal/events"
	"go-hrpos/internal/messaging/kafka"
	scheduleerrors "go-hrpos/internal/schedule/errors"
	"go-hrpos/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, companyID, actorID string, req CreateRegistrationRequest) (RegistrationResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetRegistrationsFilterRequest) ([]RegistrationResponse, error)
	SelectShift(ctx context.Context, companyID string, req SelectShiftRequest) (SelectShiftResponse, error)
	ApproveBatch(ctx context.Context, companyID, actorID string, req ApproveBatchRequest) (ApproveBatchResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Register(ctx context.Context, companyID, actorID string, req CreateRegistrationRequest) (RegistrationResponse, error) {
	s.logger.Debug("shift registration requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("shift_date", req.ShiftDate),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RegistrationResponse{}, scheduleerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RegistrationResponse{}, scheduleerrors.ErrInvalidEmployeeID
	}
	branchUUID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return RegistrationResponse{}, scheduleerrors.ErrInvalidBranchID
	}
	shiftUUID, err := uuid.Parse(req.ShiftID)
	if err != nil {
		return RegistrationResponse{}, scheduleerrors.ErrInvalidShiftID
	}

	shiftDate, err := parseDate(req.ShiftDate)
	if err != nil {
		return RegistrationResponse{}, err
	}
	interval, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return RegistrationResponse{}, err
	}

	// a duplicate overlapping request is rejected up front; the manager
	// never sees two colliding rows from the same employee
	existing, err := s.repo.FindActiveForEmployeeDate(ctx, companyID, req.EmployeeID, shiftDate)
	if err != nil {
		s.logger.Error("register shift active lookup failed", zap.Error(err))
		return RegistrationResponse{}, err
	}
	for _, other := range existing {
		if Overlaps(interval, other.Interval()) {
			s.logger.Warn("register shift overlap rejected",
				zap.String("employee_id", req.EmployeeID),
				zap.String("shift_date", req.ShiftDate),
				zap.String("conflicts_with", other.ShiftName),
			)
			return RegistrationResponse{}, scheduleerrors.ErrDuplicateRegistration
		}
	}

	reg := &ShiftRegistration{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		BranchID:     branchUUID,
		EmployeeID:   employeeUUID,
		ShiftID:      shiftUUID,
		ShiftName:    req.ShiftName,
		ShiftDate:    shiftDate,
		StartMinute:  int(interval.Start),
		EndMinute:    int(interval.End),
		Status:       StatusPending,
		RegisteredAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		s.logger.Error("register shift persist failed", zap.Error(err))
		return RegistrationResponse{}, err
	}

	s.logger.Info("shift registration created",
		zap.String("registration_id", reg.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*reg), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetRegistrationsFilterRequest) ([]RegistrationResponse, error) {
	repoFilter := RegistrationQueryFilter{}
	if filter.BranchID != "" {
		repoFilter.BranchID = &filter.BranchID
	}
	if filter.ShiftDate != "" {
		d, err := parseDate(filter.ShiftDate)
		if err != nil {
			return nil, err
		}
		repoFilter.ShiftDate = &d
	}
	if filter.Status != "" {
		repoFilter.Status = &filter.Status
	}

	regs, err := s.repo.FindAllByCompany(ctx, companyID, repoFilter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(regs), nil
}

// SelectShift serves the bulk "select every registration of this shift"
// toggle. It is read-only: nothing is persisted until ApproveBatch.
func (s *service) SelectShift(ctx context.Context, companyID string, req SelectShiftRequest) (SelectShiftResponse, error) {
	shiftDate, err := parseDate(req.ShiftDate)
	if err != nil {
		return SelectShiftResponse{}, err
	}

	regs, err := s.repo.FindPendingForDate(ctx, companyID, req.BranchID, shiftDate)
	if err != nil {
		s.logger.Error("select shift pending lookup failed", zap.Error(err))
		return SelectShiftResponse{}, err
	}

	current := make(Selection, len(req.SelectedIDs))
	for _, id := range req.SelectedIDs {
		current[id] = true
	}

	pick := req.Pick != nil && *req.Pick
	result := SelectAllForShift(regs, current, req.ShiftID, pick)

	resp := SelectShiftResponse{Skipped: result.Skipped}
	for _, r := range regs {
		if result.Selection[r.ID.String()] {
			resp.SelectedIDs = append(resp.SelectedIDs, r.ID.String())
		}
	}
	return resp, nil
}

func (s *service) ApproveBatch(ctx context.Context, companyID, actorID string, req ApproveBatchRequest) (ApproveBatchResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("approval batch requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("branch_id", req.BranchID),
		zap.String("shift_date", req.ShiftDate),
		zap.Int("selected", len(req.SelectedIDs)),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return ApproveBatchResponse{}, scheduleerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return ApproveBatchResponse{}, scheduleerrors.ErrInvalidActorID
	}
	shiftDate, err := parseDate(req.ShiftDate)
	if err != nil {
		return ApproveBatchResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approval batch begin tx failed", zap.Error(err))
		return ApproveBatchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pending, err := qtx.FindPendingForDate(ctx, companyID, req.BranchID, shiftDate)
	if err != nil {
		s.logger.Error("approval batch pending lookup failed", zap.Error(err))
		return ApproveBatchResponse{}, err
	}
	if len(pending) == 0 {
		return ApproveBatchResponse{}, scheduleerrors.ErrEmptyApprovalBatch
	}

	// conflicts silently demote a registration to the rejected set; the
	// response carries them so the caller can surface the skips
	result := ApplySelection(pending, req.SelectedIDs)

	now := time.Now().UTC()
	var approvedIDs, rejectedIDs []string
	resp := ApproveBatchResponse{
		BranchID:  req.BranchID,
		ShiftDate: req.ShiftDate,
		Conflicts: result.Skipped,
	}

	for _, reg := range pending {
		id := reg.ID.String()
		decided := reg
		actorUUID := uuid.MustParse(actorID)
		decided.DecidedBy = &actorUUID
		decided.DecidedAt = &now

		if result.Selection[id] {
			decided.Status = StatusApproved
			approvedIDs = append(approvedIDs, id)
			resp.Approved = append(resp.Approved, mapToResponse(decided))
		} else {
			// pending registrations left unselected are terminal REJECTED
			decided.Status = StatusRejected
			rejectedIDs = append(rejectedIDs, id)
			resp.Rejected = append(resp.Rejected, mapToResponse(decided))
		}
	}

	if _, err := qtx.UpdateStatuses(ctx, companyID, approvedIDs, StatusApproved, actorID, now); err != nil {
		s.logger.Error("approval batch approve update failed", zap.Error(err))
		return ApproveBatchResponse{}, err
	}
	if _, err := qtx.UpdateStatuses(ctx, companyID, rejectedIDs, StatusRejected, actorID, now); err != nil {
		s.logger.Error("approval batch reject update failed", zap.Error(err))
		return ApproveBatchResponse{}, err
	}

	if s.outbox != nil {
		event := events.ShiftScheduleGeneratedEvent{
			EventType:     "shift_schedule_generated",
			RequestID:     rid,
			CompanyID:     companyID,
			BranchID:      req.BranchID,
			ShiftDate:     req.ShiftDate,
			ApprovedCount: len(approvedIDs),
			RejectedCount: len(rejectedIDs),
			DecidedBy:     actorID,
			OccurredAt:    now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal schedule event failed", zap.Error(err))
			return ApproveBatchResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "shift_schedule",
			AggregateID:   req.BranchID,
			EventType:     event.EventType,
			Topic:         events.ShiftScheduleGeneratedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("approval batch outbox persist failed", zap.Error(err))
			return ApproveBatchResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approval batch commit failed", zap.Error(err))
		return ApproveBatchResponse{}, err
	}

	s.logger.Info("approval batch settled",
		zap.String("request_id", rid),
		zap.String("branch_id", req.BranchID),
		zap.String("shift_date", req.ShiftDate),
		zap.Int("approved", len(approvedIDs)),
		zap.Int("rejected", len(rejectedIDs)),
		zap.Int("conflicts", len(result.Skipped)),
	)
	return resp, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, scheduleerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseInterval(start, end string) (ShiftInterval, error) {
	startTOD, err := ParseTimeOfDay(start)
	if err != nil {
		return ShiftInterval{}, scheduleerrors.ErrInvalidTimeFormat
	}
	endTOD, err := ParseTimeOfDay(end)
	if err != nil {
		return ShiftInterval{}, scheduleerrors.ErrInvalidTimeFormat
	}
	interval, err := NewShiftInterval(startTOD, endTOD)
	if err != nil {
		return ShiftInterval{}, scheduleerrors.ErrInvalidInterval
	}
	return interval, nil
}

func mapToResponse(r ShiftRegistration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:           r.ID.String(),
		CompanyID:    r.CompanyID.String(),
		BranchID:     r.BranchID.String(),
		EmployeeID:   r.EmployeeID.String(),
		ShiftID:      r.ShiftID.String(),
		ShiftName:    r.ShiftName,
		ShiftDate:    r.ShiftDate.Format("2006-01-02"),
		StartTime:    TimeOfDay(r.StartMinute).String(),
		EndTime:      TimeOfDay(r.EndMinute).String(),
		Status:       r.Status,
		RegisteredAt: r.RegisteredAt.Format(time.RFC3339),
	}
	if r.DecidedBy != nil {
		v := r.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if r.DecidedAt != nil {
		v := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(regs []ShiftRegistration) []RegistrationResponse {
	resp := make([]RegistrationResponse, len(regs))
	for i, r := range regs {
		resp[i] = mapToResponse(r)
	}
	return resp
}
