package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/etnz/offshore"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	format string
	output string
	top    int
	bom    bool
	comma  string
	entity string
	types  string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the ranked table as CSV, JSON or XLSX" }
func (*exportCmd) Usage() string {
	return `cvmoff export [-format csv|json|xlsx] [-o <file>] [-top <n>] [-bom] [-comma <c>]

  Writes every ranked entity, or the top n, with its identifier, name,
  location, market and cost values, number of funds and share of the total.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "output format: csv, json or xlsx")
	f.StringVar(&c.output, "o", "", "output file (default stdout, required for xlsx)")
	f.IntVar(&c.top, "top", 0, "export only the top n entities (default all)")
	f.BoolVar(&c.bom, "bom", false, "prefix CSV output with a UTF-8 byte order mark, for spreadsheets")
	f.StringVar(&c.comma, "comma", ",", "CSV field delimiter")
	f.StringVar(&c.entity, "entity", "", "entity to rank: manager or administrator (default role of the config)")
	f.StringVar(&c.types, "types", "", "comma separated investment types to keep (default investmentTypes of the config)")
}

// encoder returns the function writing managers in format.
func (c *exportCmd) encoder() (func(io.Writer, []offshore.AggregatedManager) error, error) {
	switch c.format {
	case "csv":
		comma, size := utf8.DecodeRuneInString(c.comma)
		if size == 0 || size != len(c.comma) || comma == '"' || comma == '\n' || comma == '\r' {
			return nil, fmt.Errorf("invalid CSV delimiter %q", c.comma)
		}
		opts := offshore.CSVOptions{Comma: comma, BOM: c.bom}
		return func(w io.Writer, m []offshore.AggregatedManager) error {
			return offshore.EncodeCSV(w, m, opts)
		}, nil
	case "json":
		return offshore.EncodeJSON, nil
	case "xlsx":
		if c.output == "" {
			return nil, fmt.Errorf("xlsx output needs a file, use -o")
		}
		return offshore.EncodeXLSX, nil
	default:
		return nil, fmt.Errorf("unknown format %q want csv, json or xlsx", c.format)
	}
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	encode, err := c.encoder()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, status := runAnalysis(c.entity, splitList(c.types))
	if status != subcommands.ExitSuccess {
		return status
	}
	managers := offshore.Top(a.Managers, c.top)

	if c.output == "" {
		if err := encode(os.Stdout, managers); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing table: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	file, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	if err := encode(file, managers); err != nil {
		file.Close()
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "%d entities saved to %s\n", len(managers), c.output)
	return subcommands.ExitSuccess
}
