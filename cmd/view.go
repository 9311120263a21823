package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/offshore"
	"github.com/etnz/offshore/date"
	"github.com/etnz/offshore/renderer"
	"github.com/google/subcommands"
)

// viewCmd holds the flags for the 'view' subcommand.
type viewCmd struct {
	states  string
	cities  string
	min     float64
	query   string
	sort    string
	reverse bool
	top     int
	from    string
	to      string
	entity  string
	types   string
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "filter and sort the ranked table" }
func (*viewCmd) Usage() string {
	return `cvmoff view [-state <SP,RJ>] [-city <name>] [-min <value>] [-q <name>] [-sort <column>] [-reverse] [-top <n>] [-from <date>] [-to <date>]

  Filters the ranked table by state, city, minimum assets, name or reference
  date, and sorts it by a column. Ranks and shares stay those of the whole
  table; totals and the distribution by state are those of the selection.

  Columns: rank, name, city, state, assets, cost, funds.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.states, "state", "", "comma separated states to keep")
	f.StringVar(&c.cities, "city", "", "comma separated cities to keep")
	f.Float64Var(&c.min, "min", 0, "minimum market value")
	f.StringVar(&c.query, "q", "", "keep names containing this text")
	f.StringVar(&c.sort, "sort", "rank", "column to sort by")
	f.BoolVar(&c.reverse, "reverse", false, "reverse the sort order")
	f.IntVar(&c.top, "top", 0, "number of rows (default topN of the config)")
	f.StringVar(&c.from, "from", "", "keep reference dates on or after this date")
	f.StringVar(&c.to, "to", "", "keep reference dates on or before this date")
	f.StringVar(&c.entity, "entity", "", "entity to rank: manager or administrator (default role of the config)")
	f.StringVar(&c.types, "types", "", "comma separated investment types to keep (default investmentTypes of the config)")
}

// filter builds the view filter from the flags.
func (c *viewCmd) filter() (offshore.Filter, error) {
	f := offshore.Filter{
		States:  splitList(c.states),
		Cities:  splitList(c.cities),
		Query:   c.query,
		Reverse: c.reverse,
		Limit:   c.top,
	}
	if c.min < 0 {
		return f, fmt.Errorf("-min must not be negative: %v", c.min)
	}
	var err error
	if f.SortBy, err = offshore.ParseColumn(c.sort); err != nil {
		return f, err
	}
	if c.from != "" {
		if f.Dates.From, err = date.Parse(c.from); err != nil {
			return f, err
		}
	}
	if c.to != "" {
		if f.Dates.To, err = date.Parse(c.to); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (c *viewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, status := runAnalysis(c.entity, splitList(c.types))
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(c.render(a, filter))
	return subcommands.ExitSuccess
}

// render applies the filter to the analysis. The threshold is in the analysis
// currency, known once it ran.
func (c *viewCmd) render(a *analysis, filter offshore.Filter) string {
	if c.min > 0 {
		filter.MinMarketValue = offshore.M(c.min, a.Currency)
	}
	if filter.Limit == 0 {
		filter.Limit = a.Config.TopN
	}
	return renderer.RenderView(offshore.View(a.Managers, filter, a.Currency))
}
