package offshore

import (
	"github.com/etnz/offshore/date"
	"github.com/shopspring/decimal"
)

// BRL is a helper for test to create money from const.
func BRL(v float64) Money { return M(v, DefaultCurrency) }

// dec is a helper for test to create a valid nullable decimal.
func dec(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

// null is an unreadable value.
var null = decimal.NullDecimal{}

// pos is a helper for test to create a position with a market value.
func pos(fund string, value decimal.NullDecimal) PositionRecord {
	return PositionRecord{FundID: fund, MarketValue: value}
}

// day is a helper for test to parse dates.
func day(s string) date.Date { return date.MustParse(s) }
