package money_test

import (
	"testing"

	"go-hrpos/internal/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, int64(385), money.Round(decimal.NewFromFloat(384.5)))
	assert.Equal(t, int64(384), money.Round(decimal.NewFromFloat(384.4)))
	assert.Equal(t, int64(-385), money.Round(decimal.NewFromFloat(-384.5)))
}

func TestShare(t *testing.T) {
	rate := decimal.NewFromFloat(0.105)
	assert.Equal(t, int64(1050000), money.Share(10000000, rate))

	// rounding at the line, not inside the multiplication
	assert.Equal(t, int64(105), money.Share(1001, rate))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, int64(0), money.Clamp(-125000))
	assert.Equal(t, int64(0), money.Clamp(0))
	assert.Equal(t, int64(42), money.Clamp(42))
}
