package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-hrpos/internal/attendance"
	"go-hrpos/internal/contract"
	contracterrors "go-hrpos/internal/contract/errors"
	"go-hrpos/internal/events"
	"go-hrpos/internal/messaging/kafka"
	"go-hrpos/internal/payconfig"
	payrollerrors "go-hrpos/internal/payroll/errors"
	"go-hrpos/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	reasonMissingTerms     = "missing contract terms"
	reasonAlreadyFinalized = "payslip already finalized"
)

// Aggregator supplies one employee's attendance and leave totals for a month.
type Aggregator interface {
	AggregateMonth(ctx context.Context, companyID, employeeID, month string) (attendance.MonthlyAggregate, error)
}

// ContractSource supplies the contract terms in force for an employee.
type ContractSource interface {
	GetActiveForEmployee(ctx context.Context, companyID, employeeID string, asOf time.Time) (contract.Terms, error)
}

// ConfigSource supplies one payroll configuration snapshot per company.
type ConfigSource interface {
	Load(ctx context.Context, companyID string) (payconfig.Snapshot, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GenerateMonthly(ctx context.Context, companyID, actorID string, req GenerateMonthlyRequest) (GenerateMonthlyResponse, error)
	ApplyEdit(ctx context.Context, companyID, actorID, payslipID string, req ApplyEditRequest) (ApplyEditResponse, error)
	FinalizeMonth(ctx context.Context, companyID, actorID string, req FinalizeMonthRequest) (FinalizeMonthResponse, error)
	UnfinalizeMonth(ctx context.Context, companyID, actorID string, req FinalizeMonthRequest) (UnfinalizeMonthResponse, error)
	GetAll(ctx context.Context, companyID string, filter PayslipQueryFilter) ([]PayslipResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error)
	GetBreakdown(ctx context.Context, companyID, id string) (BreakdownResponse, error)
	GeneratePayslip(ctx context.Context, companyID, payslipID string) (PayslipResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	aggregator Aggregator
	contracts  ContractSource
	config     ConfigSource
	outbox     kafka.OutboxRepository
	renderer   PayslipRenderer
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	aggregator Aggregator,
	contracts ContractSource,
	config ConfigSource,
	outbox kafka.OutboxRepository,
	renderer PayslipRenderer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		aggregator: aggregator,
		contracts:  contracts,
		config:     config,
		outbox:     outbox,
		renderer:   renderer,
		logger:     l,
	}
}

func (s *service) GenerateMonthly(ctx context.Context, companyID, actorID string, req GenerateMonthlyRequest) (GenerateMonthlyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("payroll generation requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("branch_id", req.BranchID),
		zap.String("month", req.Month),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return GenerateMonthlyResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return GenerateMonthlyResponse{}, payrollerrors.ErrInvalidActorID
	}
	branchUUID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return GenerateMonthlyResponse{}, payrollerrors.ErrInvalidBranchID
	}
	monthStart, err := parseMonth(req.Month)
	if err != nil {
		return GenerateMonthlyResponse{}, err
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	// one snapshot for the whole run: every payslip in the batch sees the
	// same work-day count, rates and brackets
	cfg, err := s.config.Load(ctx, companyID)
	if err != nil {
		s.logger.Error("payroll generation config load failed", zap.Error(err))
		return GenerateMonthlyResponse{}, err
	}

	employees, err := s.repo.ListActiveEmployees(ctx, companyID, req.BranchID)
	if err != nil {
		s.logger.Error("payroll generation employee list failed", zap.Error(err))
		return GenerateMonthlyResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payroll generation begin tx failed", zap.Error(err))
		return GenerateMonthlyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByMonthBranch(ctx, companyID, req.BranchID, req.Month)
	if err != nil {
		s.logger.Error("payroll generation existing lookup failed", zap.Error(err))
		return GenerateMonthlyResponse{}, err
	}
	existingByEmployee := make(map[string]Payslip, len(existing))
	for _, row := range existing {
		existingByEmployee[row.EmployeeID.String()] = row
	}

	resp := GenerateMonthlyResponse{Month: req.Month, BranchID: req.BranchID}

	for _, emp := range employees {
		employeeID := emp.ID.String()

		if prior, ok := existingByEmployee[employeeID]; ok && prior.IsFinalized {
			// finalized rows are history; regeneration never touches them
			resp.AlreadyFinalized = append(resp.AlreadyFinalized, employeeID)
			continue
		}

		agg, err := s.aggregator.AggregateMonth(ctx, companyID, employeeID, req.Month)
		if err != nil {
			s.logger.Error("payroll generation aggregate failed",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return GenerateMonthlyResponse{}, err
		}

		terms, err := s.contracts.GetActiveForEmployee(ctx, companyID, employeeID, monthEnd)
		if err != nil {
			if errors.Is(err, contracterrors.ErrTermsNotFound) {
				resp.Skipped = append(resp.Skipped, SkippedEmployee{EmployeeID: employeeID, Reason: reasonMissingTerms})
				continue
			}
			return GenerateMonthlyResponse{}, err
		}

		slip, _, err := Compute(agg, terms, cfg)
		if err != nil {
			if errors.Is(err, payrollerrors.ErrMissingContractTerms) {
				// never pay a silent zero: surface the employee instead
				resp.Skipped = append(resp.Skipped, SkippedEmployee{EmployeeID: employeeID, Reason: reasonMissingTerms})
				continue
			}
			return GenerateMonthlyResponse{}, err
		}

		if prior, ok := existingByEmployee[employeeID]; ok {
			if err := qtx.DeleteDraft(ctx, companyID, prior.ID.String()); err != nil {
				s.logger.Error("payroll generation draft replace failed", zap.Error(err))
				return GenerateMonthlyResponse{}, err
			}
		}

		slip.ID = uuid.New()
		slip.CompanyID = companyUUID
		slip.BranchID = branchUUID
		slip.EmployeeID = emp.ID
		slip.Month = req.Month
		slip.CreatedBy = actorUUID

		if err := qtx.Create(ctx, &slip); err != nil {
			s.logger.Error("payroll generation persist failed",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return GenerateMonthlyResponse{}, err
		}
		resp.Generated = append(resp.Generated, mapToResponse(slip))
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("payroll generation commit failed", zap.Error(err))
		return GenerateMonthlyResponse{}, err
	}

	s.logger.Info("payroll generation settled",
		zap.String("request_id", rid),
		zap.String("month", req.Month),
		zap.String("branch_id", req.BranchID),
		zap.Int("generated", len(resp.Generated)),
		zap.Int("skipped", len(resp.Skipped)),
		zap.Int("already_finalized", len(resp.AlreadyFinalized)),
	)
	return resp, nil
}

// editableMoneyFields maps an edit request field to the payslip line it
// writes. work_days and ot_hours are handled separately because they re-derive
// dependent lines.
var editableMoneyFields = map[string]func(p *Payslip, v int64){
	"base_salary":         func(p *Payslip, v int64) { p.BaseSalary = v },
	"lunch_allowance":     func(p *Payslip, v int64) { p.LunchAllowance = v },
	"transport_allowance": func(p *Payslip, v int64) { p.TransportAllowance = v },
	"phone_allowance":     func(p *Payslip, v int64) { p.PhoneAllowance = v },
	"other_allowance":     func(p *Payslip, v int64) { p.OtherAllowance = v },
	"kpi_bonus":           func(p *Payslip, v int64) { p.KPIBonus = v },
	"bonus":               func(p *Payslip, v int64) { p.Bonus = v },
	"penalty":             func(p *Payslip, v int64) { p.Penalty = v },
}

func (s *service) ApplyEdit(ctx context.Context, companyID, actorID, payslipID string, req ApplyEditRequest) (ApplyEditResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return ApplyEditResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return ApplyEditResponse{}, payrollerrors.ErrInvalidActorID
	}

	cfg, err := s.config.Load(ctx, companyID)
	if err != nil {
		return ApplyEditResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ApplyEditResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, payslipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplyEditResponse{}, payrollerrors.ErrPayslipNotFound
		}
		return ApplyEditResponse{}, err
	}
	if p.IsFinalized {
		s.logger.Warn("edit rejected on finalized payslip",
			zap.String("payslip_id", payslipID),
			zap.String("field", req.Field),
		)
		return ApplyEditResponse{}, payrollerrors.ErrPayslipFinalized
	}

	switch req.Field {
	case "work_days":
		days, err := strconv.Atoi(req.Value)
		if err != nil || days < 0 {
			return ApplyEditResponse{}, payrollerrors.ErrInvalidEditValue
		}
		p.ActualWorkDays = days
		// lunch follows days actually worked, at the per-diem rate the
		// payslip was generated with
		p.LunchAllowance = p.LunchAllowanceRate * int64(days)
	case "ot_hours":
		hours, err := decimal.NewFromString(req.Value)
		if err != nil || hours.IsNegative() {
			return ApplyEditResponse{}, payrollerrors.ErrInvalidEditValue
		}
		p.OTHours = hours
	default:
		set, ok := editableMoneyFields[req.Field]
		if !ok {
			return ApplyEditResponse{}, payrollerrors.ErrFieldNotEditable
		}
		v, err := strconv.ParseInt(req.Value, 10, 64)
		if err != nil {
			return ApplyEditResponse{}, payrollerrors.ErrInvalidEditValue
		}
		if v < 0 {
			return ApplyEditResponse{}, payrollerrors.ErrInvalidMoneyValue
		}
		set(p, v)
	}

	clamps := Recalculate(p, cfg)

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("edit persist failed", zap.String("payslip_id", payslipID), zap.Error(err))
		return ApplyEditResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ApplyEditResponse{}, err
	}

	s.logger.Info("payslip edited",
		zap.String("payslip_id", payslipID),
		zap.String("field", req.Field),
		zap.Int("clamps", len(clamps)),
	)
	return ApplyEditResponse{Payslip: mapToResponse(*p), Clamps: clamps}, nil
}

func (s *service) FinalizeMonth(ctx context.Context, companyID, actorID string, req FinalizeMonthRequest) (FinalizeMonthResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(companyID); err != nil {
		return FinalizeMonthResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return FinalizeMonthResponse{}, payrollerrors.ErrInvalidActorID
	}
	if _, err := parseMonth(req.Month); err != nil {
		return FinalizeMonthResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FinalizeMonthResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rows, err := qtx.FindByMonthBranch(ctx, companyID, req.BranchID, req.Month)
	if err != nil {
		return FinalizeMonthResponse{}, err
	}

	var (
		ids      []string
		totalNet int64
	)
	for _, row := range rows {
		if row.IsFinalized {
			continue
		}
		ids = append(ids, row.ID.String())
		totalNet += row.NetSalary
	}
	if len(ids) == 0 {
		return FinalizeMonthResponse{}, payrollerrors.ErrEmptyFinalizeBatch
	}

	now := time.Now().UTC()
	affected, err := qtx.SetFinalized(ctx, companyID, ids, actorID, now)
	if err != nil {
		s.logger.Error("finalize update failed", zap.Error(err))
		return FinalizeMonthResponse{}, err
	}
	// all-or-nothing: a shortfall means the batch raced another finalize,
	// roll everything back
	if affected != int64(len(ids)) {
		s.logger.Warn("finalize batch conflict",
			zap.String("month", req.Month),
			zap.Int("expected", len(ids)),
			zap.Int64("updated", affected),
		)
		return FinalizeMonthResponse{}, payrollerrors.ErrFinalizeConflict
	}

	if s.outbox != nil {
		outboxTx := s.outbox.WithTx(tx)

		event := events.PayrollFinalizedEvent{
			EventType:    "payroll_finalized",
			RequestID:    rid,
			CompanyID:    companyID,
			BranchID:     req.BranchID,
			Month:        req.Month,
			PayslipCount: len(ids),
			FinalizedBy:  actorID,
			OccurredAt:   now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return FinalizeMonthResponse{}, err
		}
		if err := outboxTx.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll_batch",
			AggregateID:   req.BranchID,
			EventType:     event.EventType,
			Topic:         events.PayrollFinalizedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("finalize outbox persist failed", zap.Error(err))
			return FinalizeMonthResponse{}, err
		}

		for _, id := range ids {
			slipEvent := events.PayrollPayslipRequestedEvent{
				EventType:   "payslip_requested",
				RequestID:   rid,
				PayslipID:   id,
				CompanyID:   companyID,
				RequestedBy: actorID,
				OccurredAt:  now,
			}
			slipPayload, err := json.Marshal(slipEvent)
			if err != nil {
				return FinalizeMonthResponse{}, err
			}
			if err := outboxTx.Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				RequestID:     rid,
				AggregateType: "payslip",
				AggregateID:   id,
				EventType:     slipEvent.EventType,
				Topic:         events.PayrollPayslipRequestedTopic,
				Payload:       slipPayload,
				Status:        kafka.OutboxStatusPending,
			}); err != nil {
				s.logger.Error("finalize payslip outbox persist failed", zap.Error(err))
				return FinalizeMonthResponse{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("finalize commit failed", zap.Error(err))
		return FinalizeMonthResponse{}, err
	}

	s.logger.Info("payroll month finalized",
		zap.String("request_id", rid),
		zap.String("month", req.Month),
		zap.String("branch_id", req.BranchID),
		zap.Int("payslips", len(ids)),
		zap.Int64("total_net", totalNet),
	)
	return FinalizeMonthResponse{
		Month:     req.Month,
		BranchID:  req.BranchID,
		Finalized: len(ids),
		TotalNet:  totalNet,
	}, nil
}

func (s *service) UnfinalizeMonth(ctx context.Context, companyID, actorID string, req FinalizeMonthRequest) (UnfinalizeMonthResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return UnfinalizeMonthResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return UnfinalizeMonthResponse{}, payrollerrors.ErrInvalidActorID
	}
	if _, err := parseMonth(req.Month); err != nil {
		return UnfinalizeMonthResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UnfinalizeMonthResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rows, err := qtx.FindByMonthBranch(ctx, companyID, req.BranchID, req.Month)
	if err != nil {
		return UnfinalizeMonthResponse{}, err
	}

	var ids []string
	for _, row := range rows {
		if row.IsFinalized {
			ids = append(ids, row.ID.String())
		}
	}
	if len(ids) == 0 {
		return UnfinalizeMonthResponse{}, payrollerrors.ErrEmptyUnfinalizeBatch
	}

	affected, err := qtx.ClearFinalized(ctx, companyID, ids)
	if err != nil {
		s.logger.Error("unfinalize update failed", zap.Error(err))
		return UnfinalizeMonthResponse{}, err
	}
	if affected != int64(len(ids)) {
		return UnfinalizeMonthResponse{}, payrollerrors.ErrFinalizeConflict
	}

	if err := tx.Commit(); err != nil {
		return UnfinalizeMonthResponse{}, err
	}

	s.logger.Info("payroll month unlocked",
		zap.String("month", req.Month),
		zap.String("branch_id", req.BranchID),
		zap.String("actor_id", actorID),
		zap.Int("payslips", len(ids)),
	)
	return UnfinalizeMonthResponse{Month: req.Month, BranchID: req.BranchID, Unlocked: len(ids)}, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter PayslipQueryFilter) ([]PayslipResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]PayslipResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) GetBreakdown(ctx context.Context, companyID, id string) (BreakdownResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BreakdownResponse{}, payrollerrors.ErrPayslipNotFound
		}
		return BreakdownResponse{}, err
	}

	breakdown := BreakdownResponse{
		PayslipID:  p.ID.String(),
		EmployeeID: p.EmployeeID.String(),
		Month:      p.Month,
		Gross:      p.GrossSalary,
		Net:        p.NetSalary,
		Earnings: []BreakdownLine{
			{Label: "Base salary", Amount: p.BaseSalary},
			{Label: "Lunch allowance", Amount: p.LunchAllowance},
			{Label: "Transport allowance", Amount: p.TransportAllowance},
			{Label: "Phone allowance", Amount: p.PhoneAllowance},
			{Label: "Other allowance", Amount: p.OtherAllowance},
			{Label: "KPI bonus", Amount: p.KPIBonus},
			{Label: "Overtime pay", Amount: p.OTPay},
			{Label: "Bonus", Amount: p.Bonus},
		},
		Deductions: []BreakdownLine{
			{Label: "Penalty", Amount: p.Penalty},
			{Label: "Social insurance", Amount: p.InsuranceDeduction},
			{Label: "Personal income tax", Amount: p.PITDeduction},
		},
	}
	return breakdown, nil
}

func (s *service) GeneratePayslip(ctx context.Context, companyID, payslipID string) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, payslipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}
	if !p.IsFinalized {
		return PayslipResponse{}, payrollerrors.ErrPayslipNotFinalized
	}

	url, err := s.renderer.Render(p)
	if err != nil {
		s.logger.Error("payslip render failed", zap.String("payslip_id", payslipID), zap.Error(err))
		return PayslipResponse{}, err
	}

	now := time.Now().UTC()
	p.PayslipURL = &url
	p.PayslipGeneratedAt = &now

	if err := qtx.Update(ctx, p); err != nil {
		return PayslipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	s.logger.Info("payslip generated",
		zap.String("payslip_id", payslipID),
		zap.String("url", url),
	)
	return mapToResponse(*p), nil
}

func parseMonth(v string) (time.Time, error) {
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidMonthFormat
	}
	return t, nil
}

func mapToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:         p.ID.String(),
		CompanyID:  p.CompanyID.String(),
		BranchID:   p.BranchID.String(),
		EmployeeID: p.EmployeeID.String(),
		Month:      p.Month,

		PayType:         p.PayType,
		WorkDays:        p.WorkDays,
		ActualWorkDays:  p.ActualWorkDays,
		PaidLeaveDays:   p.PaidLeaveDays,
		UnpaidLeaveDays: p.UnpaidLeaveDays,
		OTHours:         p.OTHours.StringFixed(2),

		BaseSalary:         p.BaseSalary,
		LunchAllowanceRate: p.LunchAllowanceRate,
		LunchAllowance:     p.LunchAllowance,
		TransportAllowance: p.TransportAllowance,
		PhoneAllowance:     p.PhoneAllowance,
		OtherAllowance:     p.OtherAllowance,
		KPIBonus:           p.KPIBonus,
		OTPay:              p.OTPay,
		Bonus:              p.Bonus,
		Penalty:            p.Penalty,

		GrossSalary:        p.GrossSalary,
		InsuranceBase:      p.InsuranceBase,
		InsuranceDeduction: p.InsuranceDeduction,
		PITDeduction:       p.PITDeduction,
		NetSalary:          p.NetSalary,

		IsFinalized: p.IsFinalized,
		PayslipURL:  p.PayslipURL,
	}
	if p.FinalizedAt != nil {
		v := p.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &v
	}
	if p.FinalizedBy != nil {
		v := p.FinalizedBy.String()
		resp.FinalizedBy = &v
	}
	return resp
}
