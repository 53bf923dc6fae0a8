package payconfig

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	findAllByCompanyFn func(ctx context.Context, companyID string) (map[string]string, error)
	upsertFn           func(ctx context.Context, companyID, key, value string) error
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) (map[string]string, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) Upsert(ctx context.Context, companyID, key, value string) error {
	return f.upsertFn(ctx, companyID, key, value)
}

func TestService_Load_Defaults(t *testing.T) {
	repo := &fakeRepo{
		findAllByCompanyFn: func(ctx context.Context, companyID string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	}
	svc := NewService(repo, nil)

	snap, err := svc.Load(context.Background(), uuid.NewString())
	assert.NoError(t, err)
	assert.Equal(t, 26, snap.StandardWorkDays)
	assert.True(t, snap.OTMultiplierWeekday.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, snap.InsuranceEmployeeRate.Equal(decimal.RequireFromString("0.105")))
	assert.Equal(t, int64(11_000_000), snap.PersonalDeductionThreshold)
	assert.Len(t, snap.TaxBrackets, 7)
	assert.Equal(t, int64(0), snap.TaxBrackets[6].Ceiling)
}

func TestService_Load_Overrides(t *testing.T) {
	repo := &fakeRepo{
		findAllByCompanyFn: func(ctx context.Context, companyID string) (map[string]string, error) {
			return map[string]string{
				KeyStandardWorkDays:           "22",
				KeyOTMultiplierWeekday:        "2.0",
				KeyPersonalDeductionThreshold: "15000000",
				KeyTaxBrackets:                `[{"ceiling":5000000,"rate":"0.1"},{"ceiling":0,"rate":"0.2"}]`,
			}, nil
		},
	}
	svc := NewService(repo, nil)

	snap, err := svc.Load(context.Background(), uuid.NewString())
	assert.NoError(t, err)
	assert.Equal(t, 22, snap.StandardWorkDays)
	assert.True(t, snap.OTMultiplierWeekday.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, int64(15_000_000), snap.PersonalDeductionThreshold)
	assert.Len(t, snap.TaxBrackets, 2)
}

func TestService_Load_RejectsBrokenValues(t *testing.T) {
	cases := map[string]map[string]string{
		"non-numeric work days": {KeyStandardWorkDays: "many"},
		"zero work days":        {KeyStandardWorkDays: "0"},
		"negative multiplier":   {KeyOTMultiplierWeekday: "-1"},
		"rate above one":        {KeyInsuranceEmployeeRate: "1.5"},
		"bad brackets json":     {KeyTaxBrackets: "{"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &fakeRepo{
				findAllByCompanyFn: func(ctx context.Context, companyID string) (map[string]string, error) {
					return values, nil
				},
			}
			_, err := NewService(repo, nil).Load(context.Background(), uuid.NewString())
			assert.Error(t, err)
		})
	}
}

func TestService_Load_SingleFlight(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	repo := &fakeRepo{
		findAllByCompanyFn: func(ctx context.Context, companyID string) (map[string]string, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return map[string]string{}, nil
		},
	}
	svc := NewService(repo, nil)
	companyID := uuid.NewString()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Load(context.Background(), companyID)
			assert.NoError(t, err)
		}()
	}
	// let every goroutine join the in-flight load before it finishes
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestValidateBrackets(t *testing.T) {
	rate := decimal.RequireFromString("0.1")

	assert.ErrorIs(t, ValidateBrackets(nil), ErrEmptyBrackets)

	assert.NoError(t, ValidateBrackets([]TaxBracket{{Ceiling: 0, Rate: rate}}))

	assert.ErrorIs(t, ValidateBrackets([]TaxBracket{
		{Ceiling: 10, Rate: rate},
		{Ceiling: 5, Rate: rate},
		{Ceiling: 0, Rate: rate},
	}), ErrBracketOrder)

	assert.ErrorIs(t, ValidateBrackets([]TaxBracket{
		{Ceiling: 10, Rate: rate},
		{Ceiling: 20, Rate: rate},
	}), ErrBracketNotOpenEnded)

	assert.ErrorIs(t, ValidateBrackets([]TaxBracket{
		{Ceiling: 0, Rate: decimal.RequireFromString("1.2")},
	}), ErrBracketRate)
}

func TestService_UpdateSetting(t *testing.T) {
	stored := map[string]string{}
	repo := &fakeRepo{
		findAllByCompanyFn: func(ctx context.Context, companyID string) (map[string]string, error) {
			return stored, nil
		},
		upsertFn: func(ctx context.Context, companyID, key, value string) error {
			stored[key] = value
			return nil
		},
	}
	svc := NewService(repo, nil)
	companyID := uuid.NewString()

	snap, err := svc.UpdateSetting(context.Background(), companyID, KeyStandardWorkDays, "24")
	assert.NoError(t, err)
	assert.Equal(t, 24, snap.StandardWorkDays)

	_, err = svc.UpdateSetting(context.Background(), companyID, "unknown_key", "1")
	assert.ErrorIs(t, err, ErrUnknownSettingKey)

	_, err = svc.UpdateSetting(context.Background(), companyID, KeyTaxBrackets, `[{"ceiling":10,"rate":"0.1"},{"ceiling":20,"rate":"0.2"}]`)
	assert.ErrorIs(t, err, ErrBracketNotOpenEnded)
}
