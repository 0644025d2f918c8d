package utility

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		expect string
	}{
		{25.5, "25.5"},
		{100, "100"},
		{0.1, "0.1"},
		{99.99, "99.99"},
		{math.Inf(1), ""},
		{math.NaN(), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, FloatAmount(tt.amount))
	}
}

func TestHasAtMostTwoDecimals(t *testing.T) {
	tests := []struct {
		amount string
		expect bool
	}{
		{"10", true},
		{"10.5", true},
		{"10.55", true},
		{"10.550", true},
		{"10.555", false},
		{"0.001", false},
	}
	for _, tt := range tests {
		d, err := ParseAmount(tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.expect, HasAtMostTwoDecimals(d), tt.amount)
	}

	_, err := ParseAmount("ten")
	assert.Error(t, err)
}

func TestToMoney(t *testing.T) {
	m := ToMoney("BDT", decimal.RequireFromString("150.75"))
	assert.Equal(t, "BDT", m.CurrencyCode)
	assert.Equal(t, int64(150), m.Units)
	assert.Equal(t, int32(750000000), m.Nanos)

	assert.True(t, decimal.RequireFromString("150.75").Equal(FromMoney(&m)))
}
