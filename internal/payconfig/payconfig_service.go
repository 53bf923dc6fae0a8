package payconfig

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-hrpos/internal/shared/apperror"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyPrefix = "payconfig:snapshot:"
	cacheTTL       = 10 * time.Minute
)

var (
	ErrEmptyBrackets = apperror.New(
		apperror.CodeInvalidInput,
		"tax bracket schedule must not be empty",
		http.StatusBadRequest,
	)
	ErrBracketOrder = apperror.New(
		apperror.CodeInvalidInput,
		"tax bracket ceilings must be strictly increasing",
		http.StatusBadRequest,
	)
	ErrBracketNotOpenEnded = apperror.New(
		apperror.CodeInvalidInput,
		"last tax bracket must be open-ended (ceiling 0)",
		http.StatusBadRequest,
	)
	ErrBracketRate = apperror.New(
		apperror.CodeInvalidInput,
		"tax bracket rates must be between 0 and 1",
		http.StatusBadRequest,
	)
	ErrUnknownSettingKey = apperror.New(
		apperror.CodeInvalidInput,
		"unknown payroll setting key",
		http.StatusBadRequest,
	)
)

//go:generate mockgen -source=payconfig_service.go -destination=mock/payconfig_service_mock.go -package=mock
type Service interface {
	Load(ctx context.Context, companyID string) (Snapshot, error)
	UpdateSetting(ctx context.Context, companyID, key, value string) (Snapshot, error)
}

type service struct {
	repo   Repository
	cache  *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

// NewService builds the settings loader. cache may be nil; the loader then
// hits the settings table on every uncached Load.
func NewService(repo Repository, cache *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("payconfig.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payconfig.service")
	}
	return &service{repo: repo, cache: cache, logger: l}
}

// Load returns the company's payroll configuration, falling back to stock
// defaults for keys the company never overrode. Concurrent loads for the same
// company collapse into a single settings query.
func (s *service) Load(ctx context.Context, companyID string) (Snapshot, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKeyPrefix+companyID).Result()
		if err == nil {
			var snap Snapshot
			if err := json.Unmarshal([]byte(raw), &snap); err == nil {
				return snap, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("payconfig cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(companyID, func() (any, error) {
		values, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return Snapshot{}, err
		}
		snap, err := buildSnapshot(values)
		if err != nil {
			return Snapshot{}, err
		}

		if s.cache != nil {
			if raw, err := json.Marshal(snap); err == nil {
				if err := s.cache.Set(ctx, cacheKeyPrefix+companyID, raw, cacheTTL).Err(); err != nil {
					s.logger.Warn("payconfig cache write failed", zap.Error(err))
				}
			}
		}
		return snap, nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

func (s *service) UpdateSetting(ctx context.Context, companyID, key, value string) (Snapshot, error) {
	if err := validateSetting(key, value); err != nil {
		return Snapshot{}, err
	}
	if err := s.repo.Upsert(ctx, companyID, key, value); err != nil {
		s.logger.Error("payconfig upsert failed", zap.String("key", key), zap.Error(err))
		return Snapshot{}, err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKeyPrefix+companyID).Err(); err != nil {
			s.logger.Warn("payconfig cache invalidate failed", zap.Error(err))
		}
	}
	s.logger.Info("payroll setting updated",
		zap.String("company_id", companyID),
		zap.String("key", key),
	)
	return s.Load(ctx, companyID)
}

func buildSnapshot(values map[string]string) (Snapshot, error) {
	snap := DefaultSnapshot()

	if v, ok := values[KeyStandardWorkDays]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Snapshot{}, apperror.Wrap(err, apperror.CodeInvalidInput, "invalid standard_work_days setting", http.StatusUnprocessableEntity)
		}
		snap.StandardWorkDays = n
	}
	if v, ok := values[KeyOTMultiplierWeekday]; ok {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return Snapshot{}, apperror.Wrap(err, apperror.CodeInvalidInput, "invalid ot_multiplier_weekday setting", http.StatusUnprocessableEntity)
		}
		snap.OTMultiplierWeekday = d
	}
	if v, ok := values[KeyInsuranceEmployeeRate]; ok {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
			return Snapshot{}, apperror.Wrap(err, apperror.CodeInvalidInput, "invalid insurance_employee_rate setting", http.StatusUnprocessableEntity)
		}
		snap.InsuranceEmployeeRate = d
	}
	if v, ok := values[KeyPersonalDeductionThreshold]; ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return Snapshot{}, apperror.Wrap(err, apperror.CodeInvalidInput, "invalid personal_deduction_threshold setting", http.StatusUnprocessableEntity)
		}
		snap.PersonalDeductionThreshold = n
	}
	if v, ok := values[KeyTaxBrackets]; ok {
		var brackets []TaxBracket
		if err := json.Unmarshal([]byte(v), &brackets); err != nil {
			return Snapshot{}, apperror.Wrap(err, apperror.CodeInvalidInput, "invalid tax_brackets setting", http.StatusUnprocessableEntity)
		}
		if err := ValidateBrackets(brackets); err != nil {
			return Snapshot{}, err
		}
		snap.TaxBrackets = brackets
	}
	return snap, nil
}

// ValidateBrackets checks a progressive schedule: ceilings strictly
// increasing, rates within [0, 1], and exactly the last bracket open-ended.
func ValidateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return ErrEmptyBrackets
	}
	one := decimal.NewFromInt(1)
	var prev int64
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return ErrBracketRate
		}
		last := i == len(brackets)-1
		if last {
			if b.Ceiling != 0 {
				return ErrBracketNotOpenEnded
			}
			continue
		}
		if b.Ceiling <= prev {
			return ErrBracketOrder
		}
		prev = b.Ceiling
	}
	return nil
}

func validateSetting(key, value string) error {
	switch key {
	case KeyStandardWorkDays, KeyOTMultiplierWeekday, KeyInsuranceEmployeeRate,
		KeyPersonalDeductionThreshold, KeyTaxBrackets:
		_, err := buildSnapshot(map[string]string{key: value})
		if err != nil {
			return err
		}
		return nil
	default:
		return ErrUnknownSettingKey
	}
}
