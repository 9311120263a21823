package offshore

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a share of a total, 0..100.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// Short formats the percent with a single decimal.
func (p Percent) Short() string {
	return fmt.Sprintf("%.1f%%", p)
}

// Share returns part/total*100 rounded to 2 decimals.
// A non positive total has no meaningful share: the result is 0.
func Share(part, total Money) Percent {
	if !total.IsPositive() {
		return 0
	}
	p := part.value.Div(total.value).Mul(decimal.NewFromInt(100)).Round(2)
	return Percent(p.InexactFloat64())
}
