// Package agent is a chat assistant answering questions about a ranking.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w      io.Writer
	r      *bufio.Reader
	Expert *Expert
	// Print writes an answer, as Markdown. Defaults to plain text.
	Print func(w io.Writer, markdown string)
}

// New creates an Agent reading questions from r and writing answers to w.
func New(w io.Writer, r io.Reader, expert *Expert) *Agent {
	return &Agent{
		w:      w,
		r:      bufio.NewReader(r),
		Expert: expert,
		Print:  func(w io.Writer, s string) { fmt.Fprintln(w, s) },
	}
}

const prompt = "explain> "

// Run starts the interactive session. Prompts are asked first, then questions
// are read until "bye" or the end of input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Expert.chat == nil {
		if err := a.Expert.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Ask about the ranking. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Ctrl+D
				}
				return err
			}
		}

		input = strings.TrimSpace(input)
		if input == "bye" {
			return nil
		}
		if input == "" {
			continue
		}

		content, err := a.Expert.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		a.Print(a.w, text(content))
	}
}

// text joins the text parts of content.
func text(content *genai.Content) string {
	var parts []string
	for _, p := range content.Parts {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n")
}
