package offshore

import (
	"slices"
)

// TotalMarketValue sums the market value of managers.
func TotalMarketValue(managers []AggregatedManager, currency string) Money {
	total := M(0, currency)
	for _, m := range managers {
		total = total.Add(m.MarketValue)
	}
	return total
}

// Rank sorts managers by market value, largest first, and assigns each one
// its share of the total and its 1-based rank.
//
// The sort is stable: managers with equal values keep their input order.
// When the total is not positive every share is 0.
// The input slice is not modified.
func Rank(managers []AggregatedManager, currency string) []AggregatedManager {
	ranked := slices.Clone(managers)
	slices.SortStableFunc(ranked, func(a, b AggregatedManager) int {
		return b.MarketValue.Cmp(a.MarketValue)
	})

	total := TotalMarketValue(ranked, currency)
	for i := range ranked {
		ranked[i].Percent = Share(ranked[i].MarketValue, total)
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Top returns the first n managers, or all of them when n <= 0.
func Top(ranked []AggregatedManager, n int) []AggregatedManager {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
