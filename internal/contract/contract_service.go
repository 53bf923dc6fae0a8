package contract

import (
	"context"
	"database/sql"
	"errors"
	"time"

	contracterrors "go-hrpos/internal/contract/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=contract_service.go -destination=mock/contract_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateTermsRequest) (TermsResponse, error)
	GetAll(ctx context.Context, companyID string) ([]TermsResponse, error)
	GetByID(ctx context.Context, companyID, id string) (TermsResponse, error)
	GetActiveForEmployee(ctx context.Context, companyID, employeeID string, asOf time.Time) (Terms, error)
	Update(ctx context.Context, companyID, id string, req UpdateTermsRequest) (TermsResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateTermsRequest) (TermsResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TermsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TermsResponse{}, err
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return TermsResponse{}, err
	}
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return TermsResponse{}, err
	}

	terms := &Terms{
		ID:                   uuid.New(),
		CompanyID:            companyUUID,
		EmployeeID:           employeeUUID,
		PayType:              req.PayType,
		BaseRate:             req.BaseRate,
		LunchAllowancePerDay: req.LunchAllowancePerDay,
		TransportAllowance:   req.TransportAllowance,
		PhoneAllowance:       req.PhoneAllowance,
		OtherAllowance:       req.OtherAllowance,
		KPITarget:            req.KPITarget,
		EffectiveDate:        effectiveDate,
	}

	if err := qtx.Create(ctx, terms); err != nil {
		return TermsResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return TermsResponse{}, err
	}
	return mapToResponse(*terms), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]TermsResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	resp := make([]TermsResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TermsResponse, error) {
	terms, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TermsResponse{}, contracterrors.ErrTermsNotFound
		}
		return TermsResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*terms), nil
}

// GetActiveForEmployee returns the version in force at asOf. Payroll calls
// this per employee; a gorm not-found surfaces as ErrTermsNotFound so the
// caller can report the employee as skipped.
func (s *service) GetActiveForEmployee(ctx context.Context, companyID, employeeID string, asOf time.Time) (Terms, error) {
	terms, err := s.repo.FindActiveByEmployee(ctx, companyID, employeeID, asOf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Terms{}, contracterrors.ErrTermsNotFound
		}
		return Terms{}, err
	}
	return *terms, nil
}

// Update inserts a new version rather than mutating history; payslips already
// generated keep pointing at the figures they were computed from.
func (s *service) Update(ctx context.Context, companyID, id string, req UpdateTermsRequest) (TermsResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TermsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TermsResponse{}, contracterrors.ErrTermsNotFound
		}
		return TermsResponse{}, mapRepositoryError(err)
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return TermsResponse{}, err
	}

	next := &Terms{
		ID:                   uuid.New(),
		CompanyID:            current.CompanyID,
		EmployeeID:           current.EmployeeID,
		PayType:              req.PayType,
		BaseRate:             req.BaseRate,
		LunchAllowancePerDay: req.LunchAllowancePerDay,
		TransportAllowance:   req.TransportAllowance,
		PhoneAllowance:       req.PhoneAllowance,
		OtherAllowance:       req.OtherAllowance,
		KPITarget:            req.KPITarget,
		EffectiveDate:        effectiveDate,
	}

	if err := qtx.Create(ctx, next); err != nil {
		return TermsResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return TermsResponse{}, err
	}
	return mapToResponse(*next), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func mapToResponse(t Terms) TermsResponse {
	return TermsResponse{
		ID:                   t.ID.String(),
		CompanyID:            t.CompanyID.String(),
		EmployeeID:           t.EmployeeID.String(),
		PayType:              t.PayType,
		BaseRate:             t.BaseRate,
		LunchAllowancePerDay: t.LunchAllowancePerDay,
		TransportAllowance:   t.TransportAllowance,
		PhoneAllowance:       t.PhoneAllowance,
		OtherAllowance:       t.OtherAllowance,
		KPITarget:            t.KPITarget,
		EffectiveDate:        t.EffectiveDate.Format("2006-01-02"),
		Complete:             !t.Missing(),
	}
}
