package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
)

// RenderMarkdown renders the report as a Markdown document.
func RenderMarkdown(r *Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(heading(r.Title))
	doc.PlainText(fmt.Sprintf("Analysis Date: %s", r.Generated.Format("2006-01-02 15:04:05")))
	if !r.ReferenceDate.IsZero() {
		doc.PlainText(fmt.Sprintf("Reference Date: %s", r.ReferenceDate))
	}
	doc.Table(md.TableSet{
		Header: []string{"Total Offshore Assets", heading(entityLabel(r.Role))},
		Rows:   [][]string{{md.Bold(r.Total.String()), fmt.Sprint(r.Managers)}},
	})

	doc.H2(fmt.Sprintf("Top %d", r.TopN))
	rows := make([][]string, 0, len(r.Top))
	for _, m := range r.Top {
		rows = append(rows, []string{
			fmt.Sprint(m.Rank),
			m.Name,
			Location(m),
			m.MarketValue.Whole(),
			m.Percent.Short(),
			fmt.Sprint(m.Funds),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Rank", "Manager", "Location", "Assets", "%", "Funds"},
		Rows:   rows,
	})

	s := r.Summary
	doc.H2("Summary Statistics")
	doc.Table(md.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Total Offshore Assets", s.Total.String()},
			{"Average Assets per Manager", s.Mean.String()},
			{"Median Assets per Manager", s.Median.String()},
			{"Top 10 Managers Control", s.Top10.Short()},
			{"Herfindahl-Hirschman Index", fmt.Sprintf("%.0f (%s)", s.HHI, s.Band)},
		},
	})

	if len(r.States) > 0 {
		doc.H2(fmt.Sprintf("Geographic Distribution (Top %d)", r.TopN))
		rows := make([][]string, 0, len(r.States))
		for _, st := range r.States {
			rows = append(rows, []string{st.State, st.MarketValue.Whole(), st.Percent.Short(), fmt.Sprint(st.Managers)})
		}
		doc.Table(md.TableSet{
			Header: []string{"State", "Assets", "%", "Managers"},
			Rows:   rows,
		})
	}

	if d := r.Diagnostics; d != nil {
		doc.H2("Diagnostics")
		doc.Table(md.TableSet{
			Header: []string{"Stage", "Strategy", "Matched", "Total"},
			Rows: [][]string{
				{d.FundMatch.Stage, d.FundMatch.Strategy.String(), fmt.Sprint(d.FundMatch.Matched), fmt.Sprint(d.FundMatch.Total)},
				{d.EntityMatch.Stage, d.EntityMatch.Strategy.String(), fmt.Sprint(d.EntityMatch.Matched), fmt.Sprint(d.EntityMatch.Total)},
			},
		})
		doc.PlainText(fmt.Sprintf("Unresolved funds: %d", d.UnknownFunds))
	}

	return doc.String()
}
