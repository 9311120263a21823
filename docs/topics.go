// Package docs embeds the user documentation of cvmoff.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the file listing the topics.
const index = "readme.md"

// topicLine matches a topic entry of the index: "* name: summary".
var topicLine = regexp.MustCompile(`^\*\s+([^:]+):\s*(.*)$`)

// GetTopic returns the content of a documentation topic. "*" returns every topic.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(topics...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of multiple documentation topics concatenated together.
func GetTopics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns a list of all available documentation topics.
func GetAllTopics() ([]string, error) {
	var topics []string
	err := fs.WalkDir(docs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == index {
			return nil
		}
		topics = append(topics, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(topics)
	return topics, nil
}

// Index returns the documentation index.
func Index() string {
	content, _ := docs.ReadFile(index)
	return string(content)
}

// Summaries returns the one line summary of every topic listed in the index.
func Summaries() map[string]string {
	summaries := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(Index()))
	for scanner.Scan() {
		if m := topicLine.FindStringSubmatch(scanner.Text()); m != nil {
			summaries[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
		}
	}
	return summaries
}
