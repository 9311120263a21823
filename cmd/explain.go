package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/offshore/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// explainCmd is the subcommand for the AI assistant.
type explainCmd struct {
	entity string
	types  string
}

func (*explainCmd) Name() string { return "explain" }
func (*explainCmd) Synopsis() string {
	return "ask an AI assistant about the ranking"
}
func (*explainCmd) Usage() string {
	return `cvmoff explain [-entity manager|administrator] [-types <a,b>] [question]

  Start an interactive session with an assistant that reads the ranking,
  the funds of each entity and the documentation to answer questions.
  Needs GEMINI_API_KEY in the environment.
`
}

func (c *explainCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entity, "entity", "", "entity to rank: manager or administrator (default role of the config)")
	f.StringVar(&c.types, "types", "", "comma separated investment types to keep (default investmentTypes of the config)")
}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	a, status := runAnalysis(c.entity, splitList(c.types))
	if status != subcommands.ExitSuccess {
		return status
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	assistant := agent.New(os.Stdout, os.Stdin, agent.NewAnalyst(a.Analysis))
	assistant.Print = func(w io.Writer, md string) { fmt.Fprint(w, renderMarkdown(md)) }

	if err := assistant.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
