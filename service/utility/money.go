package utility

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"google.golang.org/genproto/googleapis/type/money"
)

const NanoSize = 1000000000

var MaxDecimalValue = decimal.NewFromInt(math.MaxInt64).Add(decimal.New(999999999, -9))

// ParseAmount reads a gateway amount string.
func ParseAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d, nil
}

// HasAtMostTwoDecimals reports whether d has no more than two fractional digits.
func HasAtMostTwoDecimals(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// NormalizeAmount renders amount the way the gateway expects it: no exponent,
// no trailing fractional zeros.
func NormalizeAmount(amount decimal.Decimal) string {
	return amount.String()
}

// FloatAmount converts a legacy float amount without binary noise, so 25.5 stays "25.5".
// Infinities and NaN have no decimal form and yield "".
func FloatAmount(amount float64) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return ""
	}
	return NormalizeAmount(decimal.NewFromFloat(amount))
}

func ToMoney(currency string, amount decimal.Decimal) money.Money {
	amount = CleanDecimal(amount)

	units := amount.IntPart()
	nanos := amount.Sub(decimal.NewFromInt(units)).Mul(decimal.NewFromInt(NanoSize)).IntPart()

	return money.Money{CurrencyCode: currency, Units: units, Nanos: int32(nanos)}
}

// FromMoney is the inverse of ToMoney.
func FromMoney(m *money.Money) decimal.Decimal {
	units := decimal.NewFromInt(m.GetUnits())
	nanos := decimal.NewFromInt(int64(m.GetNanos())).Div(decimal.NewFromInt(NanoSize))
	return units.Add(nanos)
}

// CleanDecimal rounds to nine places and clamps into what int64 units plus nanos can hold.
func CleanDecimal(d decimal.Decimal) decimal.Decimal {
	rounded := d.Round(9)

	minValue := MaxDecimalValue.Neg()
	if rounded.GreaterThan(MaxDecimalValue) {
		return MaxDecimalValue
	} else if rounded.LessThan(minValue) {
		return minValue
	}
	return rounded
}
