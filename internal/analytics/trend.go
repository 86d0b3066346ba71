package analytics

import (
	"github.com/modamart/shop-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// trendOf computes the period-over-period movement between two scalars:
// the absolute percentage change to one decimal place and its direction.
// A zero baseline with a positive current reads as +100%. Zero on zero
// still reports "up" with zero change; the dashboard shows an empty
// baseline as a flat up-state.
func trendOf(current, previous decimal.Decimal) (decimal.Decimal, entity.Trend) {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred, entity.TrendUp
		}
		return decimal.Zero, entity.TrendUp
	}
	pct := current.Sub(previous).Div(previous).Mul(hundred).Round(1)
	if pct.IsNegative() {
		return pct.Neg(), entity.TrendDown
	}
	return pct, entity.TrendUp
}
