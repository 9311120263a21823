package renderer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/etnz/offshore"
)

// width of the text report.
const width = 80

// rowFormat lays out the ranking table.
const rowFormat = "%-4s %-30s %-20s %-15s %-6s %-6s\n"

// RenderText writes the report as fixed width text.
func RenderText(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, rule("="))
	fmt.Fprintln(bw, r.Title)
	fmt.Fprintln(bw, rule("="))
	fmt.Fprintf(bw, "Analysis Date: %s\n", r.Generated.Format("2006-01-02 15:04:05"))
	if !r.ReferenceDate.IsZero() {
		fmt.Fprintf(bw, "Reference Date: %s\n", r.ReferenceDate)
	}
	fmt.Fprintf(bw, "Total Offshore Assets Analyzed: %s\n", r.Total)
	fmt.Fprintf(bw, "Number of %s with Offshore Assets: %d\n", heading(entityLabel(r.Role)), r.Managers)
	fmt.Fprintln(bw, rule("="))
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "TOP %d %s:\n", r.TopN, entityLabel(r.Role))
	fmt.Fprintln(bw, rule("-"))
	fmt.Fprintf(bw, rowFormat, "Rank", "Manager", "Location", "Assets", "%", "Funds")
	fmt.Fprintln(bw, rule("-"))
	for _, m := range r.Top {
		fmt.Fprintf(bw, rowFormat,
			fmt.Sprint(m.Rank),
			truncate(m.Name, 29),
			truncate(Location(m), 19),
			m.MarketValue.Whole(),
			m.Percent.Short(),
			fmt.Sprint(m.Funds),
		)
	}
	fmt.Fprintln(bw, rule("-"))

	s := r.Summary
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "SUMMARY STATISTICS:")
	fmt.Fprintf(bw, "Total Offshore Assets: %s\n", s.Total)
	fmt.Fprintf(bw, "Average Assets per Manager: %s\n", s.Mean)
	fmt.Fprintf(bw, "Median Assets per Manager: %s\n", s.Median)
	fmt.Fprintf(bw, "Top 10 Managers Control: %s of total offshore assets\n", s.Top10.Short())
	fmt.Fprintf(bw, "Herfindahl-Hirschman Index: %.0f (%s)\n", s.HHI, s.Band)

	ConditionalBlock(bw, func(w io.Writer) bool {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "GEOGRAPHIC DISTRIBUTION (Top %d):\n", r.TopN)
		for _, st := range r.States {
			fmt.Fprintf(w, "%s: %s (%s)\n", st.State, st.MarketValue.Whole(), st.Percent.Short())
		}
		return len(r.States) > 0
	})

	if d := r.Diagnostics; d != nil {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "DIAGNOSTICS:")
		fmt.Fprintf(bw, "Run: %s\n", d.Run)
		fmt.Fprintf(bw, "Positions: %d read, %d selected, %d without market value\n", d.Records, d.Selected, d.Fund.NullMarketValues)
		fmt.Fprintf(bw, "Funds: %d aggregated, %d without positive assets\n", d.Fund.Funds, d.Fund.Discarded)
		for _, m := range []offshore.MatchResult{d.FundMatch, d.EntityMatch} {
			fmt.Fprintln(bw, m)
		}
		fmt.Fprintf(bw, "Unresolved funds: %d\n", d.UnknownFunds)
	}
	return bw.Flush()
}
