package pagination

import (
	"regexp"
	"strings"
)

// sentencePattern matches a run ending in terminal punctuation (plus any closing
// quotes or brackets), or the unterminated tail of the paragraph.
var sentencePattern = regexp.MustCompile(`[^.!?]*[.!?]+["'”’»)\]]*|[^.!?]+$`)

// SplitSentences splits an oversized paragraph into trimmed sentences. A
// paragraph without terminal punctuation comes back as a single sentence.
func SplitSentences(paragraph string) []string {
	paragraph = strings.TrimSpace(paragraph)
	if paragraph == "" {
		return nil
	}

	var sentences []string
	for _, m := range sentencePattern.FindAllString(paragraph, -1) {
		m = strings.TrimSpace(m)
		if m != "" {
			sentences = append(sentences, m)
		}
	}
	if len(sentences) == 0 {
		return []string{paragraph}
	}
	return sentences
}
