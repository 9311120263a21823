package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file is listed.
	summaries := Summaries()
	if len(summaries) == 0 {
		t.Fatalf("no topic found in %s", index)
	}
	for topic := range summaries {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, file := range files {
		if file == index {
			continue
		}
		topic := strings.TrimSuffix(file, ".md")
		if _, ok := summaries[topic]; !ok {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	if len(all) != len(files)-1 {
		t.Errorf("GetAllTopics() = %v, want %d topics", all, len(files)-1)
	}
}

func TestGetTopic_Unknown(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Errorf("GetTopic(nope) succeeded, want an error")
	}
}

func TestGetTopic_All(t *testing.T) {
	content, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) error = %v", err)
	}
	for _, want := range []string{"# Identifiers", "# Matching", "# Ranking"} {
		if !strings.Contains(content, want) {
			t.Errorf("GetTopic(*) does not contain %q", want)
		}
	}
}

// TestHeadings checks that every topic starts with a level 1 heading, which
// the topic command uses as its title.
func TestHeadings(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read %s: %v", file, err)
			}
			root := goldmark.DefaultParser().Parse(text.NewReader(content))
			h, ok := root.FirstChild().(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("%s does not start with a level 1 heading", file)
			}
		})
	}
}
