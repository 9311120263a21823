package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/offshore/renderer"
	"github.com/google/subcommands"
)

// rankCmd holds the flags for the 'rank' subcommand.
type rankCmd struct {
	top    int
	text   bool
	entity string
	types  string
	diag   bool
	output string
}

func (*rankCmd) Name() string     { return "rank" }
func (*rankCmd) Synopsis() string { return "rank fund managers by offshore assets" }
func (*rankCmd) Usage() string {
	return `cvmoff rank [-top <n>] [-text] [-entity manager|administrator] [-types <a,b>] [-diag] [-o <file>]

  Reconciles the offshore positions with the fund and manager registries,
  then reports the top entities by offshore market value, summary
  statistics and their distribution by state.
`
}

func (c *rankCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.top, "top", 0, "number of entities in the report (default topN of the config)")
	f.BoolVar(&c.text, "text", false, "print the fixed-width text report instead of Markdown")
	f.StringVar(&c.entity, "entity", "", "entity to rank: manager or administrator (default role of the config)")
	f.StringVar(&c.types, "types", "", "comma separated investment types to keep (default investmentTypes of the config)")
	f.BoolVar(&c.diag, "diag", false, "append the matching diagnostics")
	f.StringVar(&c.output, "o", "", "write the report to a file instead of the terminal")
}

func (c *rankCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.top < 0 {
		fmt.Fprintf(os.Stderr, "Error: -top must not be negative: %d\n", c.top)
		return subcommands.ExitUsageError
	}
	a, status := runAnalysis(c.entity, splitList(c.types))
	if status != subcommands.ExitSuccess {
		return status
	}

	top := c.top
	if top == 0 {
		top = a.Config.TopN
	}
	report := renderer.NewReport(a.Analysis, renderer.Options{TopN: top, Diagnostics: c.diag})

	var out string
	if c.text {
		var b bytes.Buffer
		if err := renderer.RenderText(&b, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
			return subcommands.ExitFailure
		}
		out = b.String()
	} else {
		out = renderer.RenderMarkdown(report)
	}

	if c.output != "" {
		if err := os.WriteFile(c.output, []byte(out), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Report saved to %s\n", c.output)
		return subcommands.ExitSuccess
	}
	if c.text {
		fmt.Print(out)
	} else {
		printMarkdown(out)
	}
	return subcommands.ExitSuccess
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(s string) []string {
	var list []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			list = append(list, e)
		}
	}
	return list
}
