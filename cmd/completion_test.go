package cmd

import (
	"flag"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

func newCommander() *subcommands.Commander {
	c := subcommands.NewCommander(flag.NewFlagSet("cvmoff", flag.ContinueOnError), "cvmoff")
	Register(c)
	return c
}

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("cvmoff", flag.ContinueOnError)
	global.String("positions-file", "", "")
	global.Bool("v", false, "")

	root := Completion(newCommander(), global)

	var names []string
	for name := range root.Sub {
		names = append(names, name)
	}
	sort.Strings(names)
	want := []string{"config", "explain", "export", "query", "rank", "topic", "view"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("subcommands mismatch (-want +got):\n%s", diff)
	}

	if _, ok := root.Flags["positions-file"]; !ok {
		t.Errorf("global flag positions-file is not completed")
	}
	export := root.Sub["export"]
	for _, name := range []string{"format", "o", "top", "bom", "comma"} {
		if _, ok := export.Flags[name]; !ok {
			t.Errorf("export flag %q is not completed", name)
		}
	}
	if root.Sub["topic"].Args == nil {
		t.Errorf("topic arguments are not completed")
	}
}

func TestKnown(t *testing.T) {
	c := newCommander()
	for name, want := range map[string]bool{"rank": true, "view": true, "hello": false, "": false} {
		if got := Known(c, name); got != want {
			t.Errorf("Known(%q) = %v, want %v", name, got, want)
		}
	}
}
