package pagination

import (
	"regexp"
	"strings"
)

// blankLines matches a line break followed by one or more whitespace-only lines.
var blankLines = regexp.MustCompile(`\n\s*\n`)

// Segment splits text into trimmed, non-empty paragraphs on blank-line
// boundaries. Empty or whitespace-only text yields nil.
func Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var paragraphs []string
	for _, unit := range blankLines.Split(text, -1) {
		unit = strings.TrimSpace(unit)
		if unit != "" {
			paragraphs = append(paragraphs, unit)
		}
	}
	return paragraphs
}
