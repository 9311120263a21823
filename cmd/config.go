package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/offshore/config"
	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"
)

type configCmd struct {
	write bool
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "print or write the effective settings" }
func (*configCmd) Usage() string {
	return `cvmoff config [-w]

  Prints the settings read from the configuration file, defaults included.
  With -w, writes them to the configuration file, a good start to edit it.
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "write the settings to the configuration file")
}

func (c *configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := configPath()
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.write {
		if err := config.Dump(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Settings saved to %s\n", path)
		return subcommands.ExitSuccess
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("# %s\n%s", path, data)
	return subcommands.ExitSuccess
}
