package offshore

import (
	"strings"

	"github.com/etnz/offshore/date"
	"github.com/shopspring/decimal"
)

// FundAggregate is the offshore position of a single fund.
type FundAggregate struct {
	FundID        ID
	RawFundID     string
	Name          string
	ReferenceDate date.Date
	MarketValue   Money
	CostValue     Money
	Positions     int
}

// FundStats counts what happened while aggregating positions by fund.
type FundStats struct {
	Records          int // positions aggregated
	NullMarketValues int // positions whose market value could not be read
	Funds            int // funds before the positive filter
	Discarded        int // funds with a non positive market value
}

// fundKey groups records by normalized identifier. Records whose identifier
// does not normalize group by their raw text so unrelated malformed rows are
// not merged together.
func fundKey(id ID, raw string) string {
	if id.Valid() {
		return "id:" + string(id)
	}
	return "raw:" + strings.TrimSpace(raw)
}

// AggregateByFund sums positions per fund and keeps funds whose market value
// is strictly positive, in order of first appearance.
//
// Fund name and reference date are only collected when p declares them.
func AggregateByFund(p Positions, currency string) ([]FundAggregate, FundStats) {
	type group struct {
		agg    FundAggregate
		market decimal.Decimal
		cost   decimal.Decimal
	}
	var stats FundStats
	index := make(map[string]int)
	var groups []*group

	for _, r := range p.Records {
		stats.Records++
		id := NormalizeID(r.FundID)
		key := fundKey(id, r.FundID)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, &group{agg: FundAggregate{FundID: id, RawFundID: strings.TrimSpace(r.FundID)}})
		}
		g := groups[i]
		g.agg.Positions++

		if r.MarketValue.Valid {
			g.market = g.market.Add(r.MarketValue.Decimal)
		} else {
			stats.NullMarketValues++
		}
		if p.Fields.Has(FieldCostValue) && r.CostValue.Valid {
			g.cost = g.cost.Add(r.CostValue.Decimal)
		}
		if p.Fields.Has(FieldFundName) && g.agg.Name == "" {
			g.agg.Name = strings.TrimSpace(r.FundName)
		}
		if p.Fields.Has(FieldReferenceDate) && g.agg.ReferenceDate.IsZero() {
			g.agg.ReferenceDate = r.ReferenceDate
		}
	}

	stats.Funds = len(groups)
	funds := make([]FundAggregate, 0, len(groups))
	for _, g := range groups {
		if !g.market.IsPositive() {
			stats.Discarded++
			continue
		}
		g.agg.MarketValue = M(g.market, currency)
		g.agg.CostValue = M(g.cost, currency)
		funds = append(funds, g.agg)
	}
	return funds, stats
}

// DefaultPlaceholder names entities that could not be resolved.
const DefaultPlaceholder = "Unknown Manager"

// NotAvailable is displayed for unknown locations.
const NotAvailable = "N/A"

// unknownKey is the bucket of funds whose entity could not be identified.
const unknownKey = "unknown"

// ManagedFund is a fund aggregate together with the registry rows it was
// reconciled to, for the entity playing Role. Either registry row may be nil.
type ManagedFund struct {
	Fund     FundAggregate
	Registry *FundRegistryEntry
	Entity   *ManagerRegistryEntry
	Role     Role
}

// AggregatedManager is the offshore position of one managing entity.
type AggregatedManager struct {
	Key           string
	ID            ID // empty when the entity is only known by name, or unknown
	Name          string
	City          string
	State         string
	MarketValue   Money
	CostValue     Money
	Funds         int
	ReferenceDate date.Date // latest reference date among its funds
	Percent       Percent
	Rank          int
}

// Unknown reports whether m is the bucket of unresolved funds.
func (m AggregatedManager) Unknown() bool { return m.Key == unknownKey }

// DisplayName returns the first non blank candidate, or placeholder.
// It is the one place resolving names and locations for display.
func DisplayName(placeholder string, candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return placeholder
}

// EntityKey resolves the grouping key of a fund's entity: the fund registry
// identifier when valid, else the identifier of the registry row the name
// fallback resolved, else the entity name, else the unknown bucket.
func EntityKey(f ManagedFund) (key string, id ID) {
	var rawID, name string
	if f.Registry != nil {
		rawID, name = f.Registry.Entity(f.Role)
	}
	if id := NormalizeID(rawID); id.Valid() {
		return "id:" + string(id), id
	}
	if f.Entity != nil {
		if id := NormalizeID(f.Entity.ID); id.Valid() {
			return "id:" + string(id), id
		}
	}
	if n := NormalizeName(name); n != "" {
		return "name:" + n, ""
	}
	return unknownKey, ""
}

// AggregateByManager groups fund rows by entity. Fund count is the number of
// contributing fund rows. Name, city and state are the first non blank values
// of the group; a group without any name gets placeholder.
func AggregateByManager(rows []ManagedFund, currency, placeholder string) []AggregatedManager {
	type group struct {
		m            AggregatedManager
		legalName    string // from the manager registry
		registryName string // from the fund registry
	}
	index := make(map[string]int)
	var groups []*group

	for _, f := range rows {
		key, id := EntityKey(f)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, &group{m: AggregatedManager{
				Key:         key,
				ID:          id,
				MarketValue: M(0, currency),
				CostValue:   M(0, currency),
			}})
		}
		g := groups[i]
		g.m.MarketValue = g.m.MarketValue.Add(f.Fund.MarketValue)
		g.m.CostValue = g.m.CostValue.Add(f.Fund.CostValue)
		g.m.Funds++
		g.m.ReferenceDate = date.Latest(g.m.ReferenceDate, f.Fund.ReferenceDate)

		if f.Registry != nil && g.registryName == "" {
			_, name := f.Registry.Entity(f.Role)
			g.registryName = strings.TrimSpace(name)
		}
		if f.Entity != nil {
			if g.legalName == "" {
				g.legalName = strings.TrimSpace(f.Entity.Name)
			}
			if g.m.City == "" {
				g.m.City = strings.TrimSpace(f.Entity.City)
			}
			if g.m.State == "" {
				g.m.State = strings.TrimSpace(f.Entity.State)
			}
		}
	}

	managers := make([]AggregatedManager, len(groups))
	for i, g := range groups {
		g.m.Name = DisplayName(placeholder, g.legalName, g.registryName)
		managers[i] = g.m
	}
	return managers
}
