// Package renderer turns an analysis into a human readable report, either as
// fixed width text for terminals and logs or as Markdown.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/offshore"
	"github.com/etnz/offshore/date"
)

// DefaultTopN is the number of managers listed when Options.TopN is not set.
const DefaultTopN = 20

// Options tunes the report.
type Options struct {
	TopN        int       // managers listed, DefaultTopN when 0
	Generated   time.Time // analysis time, now when zero
	Diagnostics bool      // include the diagnostics section
}

// Report is the content of a ranking report, ready to be rendered.
type Report struct {
	Title         string
	Generated     time.Time
	ReferenceDate date.Date
	Role          offshore.Role
	Total         offshore.Money
	Managers      int
	TopN          int
	Top           []offshore.AggregatedManager
	Summary       offshore.Summary
	States        []offshore.StateShare // of the listed managers, as a share of the whole total
	Diagnostics   *offshore.Diagnostics
}

// entityLabel is the plural display name of the ranked entities.
func entityLabel(r offshore.Role) string {
	if r == offshore.RoleAdministrator {
		return "ADMINISTRATORS"
	}
	return "MANAGERS"
}

// NewReport builds the report of a ranked analysis.
func NewReport(a *offshore.Analysis, opts Options) *Report {
	n := opts.TopN
	if n <= 0 {
		n = DefaultTopN
	}
	generated := opts.Generated
	if generated.IsZero() {
		generated = time.Now()
	}
	top := offshore.Top(a.Managers, n)
	r := &Report{
		Title:         fmt.Sprintf("TOP %d FUND %s BY OFFSHORE ASSETS", n, entityLabel(a.Role)),
		Generated:     generated,
		ReferenceDate: a.ReferenceDate,
		Role:          a.Role,
		Total:         a.Total,
		Managers:      len(a.Managers),
		TopN:          n,
		Top:           top,
		Summary:       offshore.Summarize(a.Managers, a.Currency),
		States:        offshore.StateBreakdown(top, a.Total),
	}
	if opts.Diagnostics {
		d := a.Diagnostics
		r.Diagnostics = &d
	}
	return r
}

// heading is the lower case section title, capitalized for Markdown.
func heading(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
