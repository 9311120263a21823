// Command cvmoff ranks Brazilian fund managers by the offshore assets of
// their funds, from the open data files of the CVM.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/offshore/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, values already in the environment win.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Answers shell completion requests, and exits, when COMP_LINE is set.
	cmd.Completion(commander, flag.CommandLine).Complete("cvmoff")

	flag.Parse()

	if name := flag.Arg(0); name != "" && !cmd.Known(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
