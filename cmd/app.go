// Package cmd implements the CLI application ranking fund managers by the
// offshore assets of their funds.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/offshore"
	"github.com/etnz/offshore/config"
	"github.com/etnz/offshore/cvm"
	"github.com/etnz/offshore/date"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&rankCmd{}, "analysis")
	c.Register(&viewCmd{}, "analysis")
	c.Register(&exportCmd{}, "analysis")
	c.Register(&queryCmd{}, "analysis")
	c.Register(&explainCmd{}, "analysis")

	c.Register(&configCmd{}, "settings")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	positionsFile = flag.String("positions-file", "", "Path to the offshore positions file (default $"+EnvPositionsFile+" or the file of -month)")
	fundsFile     = flag.String("funds-file", "", "Path to the fund registry file (default $"+EnvFundsFile+" or "+cvm.FundsFile+")")
	managersFile  = flag.String("managers-file", "", "Path to the portfolio manager registry file (default $"+EnvManagersFile+" or "+cvm.ManagersFile+")")
	month         = flag.String("month", "", "Competence month YYYYMM of the default positions file (default previous month)")
	configFile    = flag.String("config", "", "Path to the configuration file (default $"+EnvConfig+" or cvmoff.yaml)")
	Verbose       = flag.Bool("v", false, "log every stage of the analysis")
)

// DefaultConfigFile is read when neither -config nor $CVMOFF_CONFIG is set.
const DefaultConfigFile = "cvmoff.yaml"

// setting returns the flag value, else the environment variable, else def.
// Environment variables are read at use time so a .env file loaded after
// flag declaration still applies.
func setting(flagValue, env, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// Files are the resolved paths of the three input files.
type Files struct {
	Positions string
	Funds     string
	Managers  string
}

// resolveFiles applies the flags, the environment and the defaults. The
// default positions file is the one of the previous month, the latest
// published, relative to today.
func resolveFiles(today date.Date) (Files, error) {
	m := date.MonthOf(today).Previous()
	if *month != "" {
		var err error
		if m, err = date.ParseMonth(*month); err != nil {
			return Files{}, err
		}
	}
	return Files{
		Positions: setting(*positionsFile, EnvPositionsFile, cvm.PositionsFile(m)),
		Funds:     setting(*fundsFile, EnvFundsFile, cvm.FundsFile),
		Managers:  setting(*managersFile, EnvManagersFile, cvm.ManagersFile),
	}, nil
}

// loadConfig reads the configuration file.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath())
}

func configPath() string { return setting(*configFile, EnvConfig, DefaultConfigFile) }

// newLogger logs to stderr: warnings only, or every stage with -v.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if *Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadInputs reads the three datasets.
func loadInputs(cfg *config.Config, files Files, log logrus.FieldLogger) (offshore.Inputs, error) {
	var in offshore.Inputs
	schema, err := cfg.Schema()
	if err != nil {
		return in, err
	}
	opts, err := cfg.ReadOptions()
	if err != nil {
		return in, err
	}

	var stats cvm.ReadStats
	if in.Positions, stats, err = cvm.OpenPositions(files.Positions, schema.Positions, opts); err != nil {
		return in, err
	}
	log.WithFields(logrus.Fields{"file": files.Positions, "rows": stats.Rows, "skipped": stats.Skipped, "fields": in.Positions.Fields}).Info("read positions")

	if in.Funds, stats, err = cvm.OpenFunds(files.Funds, schema.Funds, opts); err != nil {
		return in, err
	}
	log.WithFields(logrus.Fields{"file": files.Funds, "rows": stats.Rows, "skipped": stats.Skipped}).Info("read fund registry")

	if in.Managers, stats, err = cvm.OpenManagers(files.Managers, schema.Managers, opts); err != nil {
		return in, err
	}
	log.WithFields(logrus.Fields{"file": files.Managers, "rows": stats.Rows, "skipped": stats.Skipped}).Info("read manager registry")
	return in, nil
}

// analysis holds what every analysis command needs.
type analysis struct {
	*offshore.Analysis
	Config *config.Config
}

// runAnalysis loads the configuration and the files, then runs the pipeline.
// Errors are reported on stderr and turned into an exit status.
func runAnalysis(entity string, types []string) (*analysis, subcommands.ExitStatus) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	if entity != "" {
		cfg.Role = entity
	}
	if len(types) > 0 {
		cfg.InvestmentTypes = types
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in settings: %v\n", err)
		return nil, subcommands.ExitUsageError
	}

	files, err := resolveFiles(date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
		return nil, subcommands.ExitUsageError
	}

	log := newLogger()
	in, err := loadInputs(cfg, files, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading data: %v\n", err)
		return nil, subcommands.ExitFailure
	}

	p, err := cfg.Pipeline(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in settings: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	a, err := p.Run(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analysing data: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return &analysis{Analysis: a, Config: cfg}, subcommands.ExitSuccess
}

// renderMarkdown renders md for the terminal, falling back to the raw text.
func renderMarkdown(md string) string {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }
