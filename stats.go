package offshore

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Concentration bands of the Herfindahl–Hirschman index.
const (
	Unconcentrated = "unconcentrated"
	Moderate       = "moderately concentrated"
	High           = "highly concentrated"
)

// Summary holds the descriptive statistics of a ranked table.
type Summary struct {
	Managers int
	Funds    int
	Total    Money
	Mean     Money
	Median   Money
	Top10    Percent // sum of the ten largest shares
	HHI      float64 // sum of squared percentage shares, 0..10000
	Band     string
}

// Summarize computes statistics over ranked managers. Shares are read from
// the managers so they must come out of Rank.
func Summarize(ranked []AggregatedManager, currency string) Summary {
	s := Summary{
		Managers: len(ranked),
		Total:    TotalMarketValue(ranked, currency),
		Mean:     M(0, currency),
		Median:   M(0, currency),
	}
	if len(ranked) == 0 {
		s.Band = Unconcentrated
		return s
	}
	for i, m := range ranked {
		s.Funds += m.Funds
		if i < 10 {
			s.Top10 += m.Percent
		}
		s.HHI += float64(m.Percent) * float64(m.Percent)
	}
	s.Mean = s.Total.DivInt(len(ranked))

	values := make([]decimal.Decimal, len(ranked))
	for i, m := range ranked {
		values[i] = m.MarketValue.Decimal()
	}
	slices.SortFunc(values, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	mid := len(values) / 2
	if len(values)%2 == 1 {
		s.Median = M(values[mid], currency)
	} else {
		s.Median = M(values[mid-1].Add(values[mid]), currency).DivInt(2)
	}
	s.Band = ConcentrationBand(s.HHI)
	return s
}

// ConcentrationBand classifies a Herfindahl–Hirschman index.
func ConcentrationBand(hhi float64) string {
	switch {
	case hhi < 1500:
		return Unconcentrated
	case hhi < 2500:
		return Moderate
	default:
		return High
	}
}

// StateShare is the part of the total held by managers of one state.
type StateShare struct {
	State       string
	MarketValue Money
	Managers    int
	Percent     Percent
}

// StateBreakdown groups managers by state, largest amount first, with shares
// computed against total. Managers without a state are skipped.
func StateBreakdown(managers []AggregatedManager, total Money) []StateShare {
	index := make(map[string]int)
	var shares []StateShare
	for _, m := range managers {
		state := strings.ToUpper(strings.TrimSpace(m.State))
		if state == "" {
			continue
		}
		i, ok := index[state]
		if !ok {
			i = len(shares)
			index[state] = i
			shares = append(shares, StateShare{State: state, MarketValue: M(0, total.Currency())})
		}
		shares[i].MarketValue = shares[i].MarketValue.Add(m.MarketValue)
		shares[i].Managers++
	}
	slices.SortStableFunc(shares, func(a, b StateShare) int {
		return b.MarketValue.Cmp(a.MarketValue)
	})
	for i := range shares {
		shares[i].Percent = Share(shares[i].MarketValue, total)
	}
	return shares
}
