package cmd

import (
	"flag"

	"github.com/etnz/offshore/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors complete the values of flags by name, in every subcommand.
var flagPredictors = map[string]complete.Predictor{
	"positions-file": predict.Files("*.csv"),
	"funds-file":     predict.Files("*.csv"),
	"managers-file":  predict.Files("*.csv"),
	"config":         predict.Files("*.yaml"),
	"o":              predict.Files("*"),
	"format":         predict.Set{"csv", "json", "xlsx"},
	"entity":         predict.Set{"manager", "administrator"},
	"sort":           predict.Set{"rank", "name", "city", "state", "assets", "cost", "funds"},
}

// predictFlags returns the completion of every flag of fs.
func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion describes the commands of c, their flags and arguments, for
// shell completion.
func Completion(c *subcommands.Commander, global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(global),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		cmd := &complete.Command{Flags: predictFlags(fs)}
		if sub.Name() == "topic" {
			topics, _ := docs.GetAllTopics()
			cmd.Args = predict.Set(topics)
		}
		root.Sub[sub.Name()] = cmd
	})
	return root
}

// Known reports whether name is a subcommand of c.
func Known(c *subcommands.Commander, name string) bool {
	known := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		if sub.Name() == name {
			known = true
		}
	})
	return known
}
