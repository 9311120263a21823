package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/offshore"
	"github.com/google/subcommands"
)

type queryCmd struct {
	entity string
	types  string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over the ranked table" }
func (*queryCmd) Usage() string {
	return `cvmoff query [-entity manager|administrator] [-types <a,b>] <jsonpath>

  Evaluates a JSONPath expression over the ranked table as exported by
  'cvmoff export -format json', and prints the result as JSON.

  Examples:
    cvmoff query '$[0:10].name'
    cvmoff query '$[?(@.state == "RJ")].market_value'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entity, "entity", "", "entity to rank: manager or administrator (default role of the config)")
	f.StringVar(&c.types, "types", "", "comma separated investment types to keep (default investmentTypes of the config)")
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query needs exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}

	a, status := runAnalysis(c.entity, splitList(c.types))
	if status != subcommands.ExitSuccess {
		return status
	}

	jval, err := offshore.Query(ctx, a.Managers, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying: %v\n", err)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jval); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing result: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
