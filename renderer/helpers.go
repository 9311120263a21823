package renderer

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/etnz/offshore"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Location formats "City, State", or N/A when the city is unknown.
func Location(m offshore.AggregatedManager) string {
	if strings.TrimSpace(m.City) == "" {
		return offshore.NotAvailable
	}
	return strings.TrimSpace(m.City) + ", " + offshore.DisplayName(offshore.NotAvailable, m.State)
}

// rule is a horizontal line of the text report.
func rule(c string) string { return strings.Repeat(c, width) }
