package offshore

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/offshore/date"
)

// Column is a sortable column of the ranked table.
type Column int

const (
	ColumnRank Column = iota
	ColumnName
	ColumnCity
	ColumnState
	ColumnMarketValue
	ColumnCostValue
	ColumnFunds
)

var columnNames = []string{"rank", "name", "city", "state", "assets", "cost", "funds"}

func (c Column) String() string {
	if c < 0 || int(c) >= len(columnNames) {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnNames[c]
}

// ParseColumn parses a column name as printed by Column.String.
func ParseColumn(s string) (Column, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ColumnRank, nil
	}
	for i, name := range columnNames {
		if name == s {
			return Column(i), nil
		}
	}
	return ColumnRank, fmt.Errorf("unknown column %q want one of %s", s, strings.Join(columnNames, ", "))
}

// Filter selects and orders a ranked table. Zero values select everything.
type Filter struct {
	States         []string   // any of, case insensitive
	Cities         []string   // any of, case insensitive
	MinMarketValue Money      // inclusive
	Query          string     // substring of the name, case insensitive
	Dates          date.Range // on the manager reference date
	SortBy         Column
	Reverse        bool // reverses the column's natural order
	Limit          int
}

// ViewResult is a filtered ranked table with its totals.
type ViewResult struct {
	Managers         []AggregatedManager
	TotalMarketValue Money
	TotalFunds       int
	ByState          []StateShare // shares of the filtered total
	Dates            date.Range   // reference dates the table was restricted to
}

// location returns the value compared by filters: unknown values read as N/A.
func location(s string) string {
	return strings.ToUpper(DisplayName(NotAvailable, s))
}

func anyOf(values []string, v string) bool {
	if len(values) == 0 {
		return true
	}
	for _, x := range values {
		if location(x) == v {
			return true
		}
	}
	return false
}

func (f Filter) keep(m AggregatedManager) bool {
	if !anyOf(f.States, location(m.State)) || !anyOf(f.Cities, location(m.City)) {
		return false
	}
	if !f.MinMarketValue.IsZero() && m.MarketValue.LessThan(f.MinMarketValue) {
		return false
	}
	if q := NormalizeName(f.Query); q != "" && !strings.Contains(NormalizeName(m.Name), q) {
		return false
	}
	if !f.Dates.Contains(m.ReferenceDate) {
		return false
	}
	return true
}

// compare orders managers by f.SortBy in the column's natural order: rank
// and text ascending, amounts and fund counts largest first.
func (f Filter) compare(a, b AggregatedManager) int {
	var c int
	switch f.SortBy {
	case ColumnName:
		c = strings.Compare(NormalizeName(a.Name), NormalizeName(b.Name))
	case ColumnCity:
		c = strings.Compare(location(a.City), location(b.City))
	case ColumnState:
		c = strings.Compare(location(a.State), location(b.State))
	case ColumnMarketValue:
		c = b.MarketValue.Cmp(a.MarketValue)
	case ColumnCostValue:
		c = b.CostValue.Cmp(a.CostValue)
	case ColumnFunds:
		c = b.Funds - a.Funds
	default:
		c = a.Rank - b.Rank
	}
	if f.Reverse {
		return -c
	}
	return c
}

// View applies f to ranked managers. Ranks and shares are left as computed
// against the whole table.
func View(ranked []AggregatedManager, f Filter, currency string) ViewResult {
	var kept []AggregatedManager
	for _, m := range ranked {
		if f.keep(m) {
			kept = append(kept, m)
		}
	}
	slices.SortStableFunc(kept, f.compare)

	res := ViewResult{TotalMarketValue: TotalMarketValue(kept, currency), Dates: f.Dates}
	for _, m := range kept {
		res.TotalFunds += m.Funds
	}
	res.ByState = StateBreakdown(kept, res.TotalMarketValue)
	if f.Limit > 0 && f.Limit < len(kept) {
		kept = kept[:f.Limit]
	}
	res.Managers = kept
	return res
}
