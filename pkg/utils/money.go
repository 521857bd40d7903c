package utils

import (
	"github.com/shopspring/decimal"
)

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// FormatMoney renders an amount the way the game shows it: $50.0M, $750K, $300
func FormatMoney(amount int64) string {
	d := decimal.NewFromInt(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	switch {
	case d.GreaterThanOrEqual(million):
		return sign + "$" + d.Div(million).StringFixed(1) + "M"
	case d.GreaterThanOrEqual(thousand):
		return sign + "$" + d.Div(thousand).Round(0).String() + "K"
	default:
		return sign + "$" + d.String()
	}
}

// Millions converts a number of millions into an amount, e.g. 2.5 -> 2500000
func Millions(m float64) int64 {
	return decimal.NewFromFloat(m).Mul(million).Round(0).IntPart()
}
