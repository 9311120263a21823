package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/offshore"
	md "github.com/nao1215/markdown"
)

// RenderView renders a filtered table, its totals and its distribution by
// state as Markdown.
func RenderView(v offshore.ViewResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	rows := make([][]string, 0, len(v.Managers))
	for _, m := range v.Managers {
		rows = append(rows, []string{
			fmt.Sprint(m.Rank),
			m.Name,
			Location(m),
			m.MarketValue.Whole(),
			m.CostValue.Whole(),
			m.Percent.String(),
			fmt.Sprint(m.Funds),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Rank", "Name", "Location", "Assets", "Cost", "%", "Funds"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("Filtered total: %s in %d funds.", md.Bold(v.TotalMarketValue.String()), v.TotalFunds))
	if !v.Dates.IsOpen() {
		doc.PlainText(fmt.Sprintf("Reference dates: %s.", md.Code(v.Dates.Identifier())))
	}

	if len(v.ByState) > 0 {
		doc.H2("By State")
		rows := make([][]string, 0, len(v.ByState))
		for _, st := range v.ByState {
			rows = append(rows, []string{st.State, st.MarketValue.Whole(), st.Percent.Short(), fmt.Sprint(st.Managers)})
		}
		doc.Table(md.TableSet{
			Header: []string{"State", "Assets", "%", "Managers"},
			Rows:   rows,
		})
	}
	return doc.String()
}
