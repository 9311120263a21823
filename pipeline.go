package offshore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/offshore/date"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrMatchRate is returned for a minimum match rate outside [0, 1].
var ErrMatchRate = errors.New("minimum match rate must be between 0 and 1")

// Pipeline reconciles the three datasets and ranks the entities.
// The zero value aggregates by manager, in BRL, over every investment type.
type Pipeline struct {
	Currency        string
	InvestmentTypes []string // empty keeps every record
	Role            Role
	MinMatchRate    float64
	Placeholder     string
	Log             logrus.FieldLogger
}

// Inputs are the loaded datasets.
type Inputs struct {
	Positions Positions
	Funds     []FundRegistryEntry
	Managers  []ManagerRegistryEntry
}

// Diagnostics reports what each stage of a run did.
type Diagnostics struct {
	Run           string
	Records       int // before the investment type filter
	Selected      int
	Fund          FundStats
	FundMatch     MatchResult
	EntityMatch   MatchResult
	Managers      int
	UnknownFunds  int // funds in the unknown bucket
	UnnamedGroups int // groups displayed with the placeholder
}

// Analysis is the outcome of a run.
type Analysis struct {
	Managers      []AggregatedManager // ranked
	Funds         []ManagedFund
	Total         Money
	ReferenceDate date.Date // latest date declared by the positions
	Role          Role
	Currency      string
	Diagnostics   Diagnostics
}

func (p Pipeline) currency() string {
	if p.Currency == "" {
		return DefaultCurrency
	}
	return p.Currency
}

func (p Pipeline) placeholder() string {
	if strings.TrimSpace(p.Placeholder) == "" {
		return DefaultPlaceholder
	}
	return p.Placeholder
}

func (p Pipeline) log() logrus.FieldLogger {
	if p.Log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		return l
	}
	return p.Log
}

// SelectPositions keeps the records whose investment type is one of types,
// compared case insensitively. An empty types list, or positions without an
// investment type column, keep every record.
func SelectPositions(p Positions, types []string) Positions {
	if len(types) == 0 || !p.Fields.Has(FieldInvestmentType) {
		return p
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[NormalizeName(t)] = true
	}
	selected := Positions{Fields: p.Fields}
	for _, r := range p.Records {
		if want[NormalizeName(r.InvestmentType)] {
			selected.Records = append(selected.Records, r)
		}
	}
	return selected
}

// Run executes every stage in sequence. An empty input is not an error, it
// produces an empty analysis.
func (p Pipeline) Run(in Inputs) (*Analysis, error) {
	if p.MinMatchRate < 0 || p.MinMatchRate > 1 {
		return nil, fmt.Errorf("%w: %v", ErrMatchRate, p.MinMatchRate)
	}
	if p.Role != RoleManager && p.Role != RoleAdministrator {
		return nil, fmt.Errorf("invalid role %v", p.Role)
	}
	cur := p.currency()
	diag := Diagnostics{Run: uuid.NewString(), Records: len(in.Positions.Records)}
	log := p.log().WithField("run", diag.Run)

	positions := SelectPositions(in.Positions, p.InvestmentTypes)
	if len(p.InvestmentTypes) > 0 && !in.Positions.Fields.Has(FieldInvestmentType) {
		log.Warn("positions carry no investment type, the type filter is ignored")
	}
	diag.Selected = len(positions.Records)
	log.WithFields(logrus.Fields{"stage": "select", "records": diag.Records, "selected": diag.Selected}).Debug("positions selected")

	funds, fundStats := AggregateByFund(positions, cur)
	diag.Fund = fundStats
	log.WithFields(logrus.Fields{
		"stage":     "funds",
		"funds":     fundStats.Funds,
		"kept":      len(funds),
		"discarded": fundStats.Discarded,
		"nulls":     fundStats.NullMarketValues,
	}).Debug("positions aggregated by fund")

	fundJoin := FundRegistryMatcher(p.MinMatchRate).Match(funds, in.Funds)
	diag.FundMatch = fundJoin.Result
	p.logMatch(log, fundJoin.Result)

	links := make([]FundLink, len(funds))
	for i, f := range funds {
		links[i] = FundLink{Fund: f, Registry: fundJoin.Rows[i]}
	}
	entityJoin := EntityRegistryMatcher(p.Role, p.MinMatchRate).Match(links, in.Managers)
	diag.EntityMatch = entityJoin.Result
	p.logMatch(log, entityJoin.Result)

	rows := make([]ManagedFund, len(links))
	for i, l := range links {
		rows[i] = ManagedFund{Fund: l.Fund, Registry: l.Registry, Entity: entityJoin.Rows[i], Role: p.Role}
	}
	placeholder := p.placeholder()
	managers := AggregateByManager(rows, cur, placeholder)
	for _, m := range managers {
		if m.Unknown() {
			diag.UnknownFunds = m.Funds
		}
		if m.Name == placeholder {
			diag.UnnamedGroups++
		}
	}
	ranked := Rank(managers, cur)
	diag.Managers = len(ranked)
	log.WithFields(logrus.Fields{"stage": "rank", "managers": diag.Managers, "unknown_funds": diag.UnknownFunds}).Debug("entities ranked")

	a := &Analysis{
		Managers:    ranked,
		Funds:       rows,
		Total:       TotalMarketValue(ranked, cur),
		Role:        p.Role,
		Currency:    cur,
		Diagnostics: diag,
	}
	for _, f := range funds {
		a.ReferenceDate = date.Latest(a.ReferenceDate, f.ReferenceDate)
	}
	return a, nil
}

func (p Pipeline) logMatch(log logrus.FieldLogger, r MatchResult) {
	entry := log.WithFields(logrus.Fields{
		"stage":    r.Stage,
		"strategy": r.Strategy.String(),
		"matched":  r.Matched,
		"total":    r.Total,
	})
	switch {
	case r.Total > 0 && r.Strategy == StrategyNone:
		entry.Warn("no row matched, entities fall back to the placeholder")
	case r.FellBack():
		entry.Info("fell back to name matching")
	default:
		entry.Debug("registry joined")
	}
}
