package pagination

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPages_PacksUnderLineBudget(t *testing.T) {
	b := Budgets{WordsPerPage: 10, MinLinesPerPage: 2, MaxLinesPerPage: 4, CharsPerLine: 10}
	paragraphs := []string{"alpha one", "alpha two", "alpha six", "alpha ten", "omega end"}

	pages := BuildPages(paragraphs, b, NewEstimator(b))

	assert.Equal(t, []string{
		"alpha one\n\nalpha two\n\nalpha six\n\nalpha ten",
		"omega end",
	}, pages)
}

func TestBuildPages_MinimumDelaysFlush(t *testing.T) {
	b := Budgets{WordsPerPage: 3, MinLinesPerPage: 3, MaxLinesPerPage: 10, CharsPerLine: 60}

	pages := BuildPages([]string{"a b", "c d", "e f", "g h"}, b, NewEstimator(b))

	assert.Equal(t, []string{"a b\n\nc d\n\ne f", "g h"}, pages)
}

func TestBuildPages_OversizedByWords(t *testing.T) {
	b := Budgets{WordsPerPage: 10, MinLinesPerPage: 1, MaxLinesPerPage: 100, CharsPerLine: 1000}
	big := "One two three four five. Six seven eight nine ten. " +
		"Eleven twelve thirteen fourteen fifteen. Sixteen seventeen eighteen nineteen twenty."

	pages := BuildPages([]string{"Intro.", big, "Outro."}, b, NewEstimator(b))

	assert.Equal(t, []string{
		"Intro.",
		"One two three four five. Six seven eight nine ten.",
		"Eleven twelve thirteen fourteen fifteen. Sixteen seventeen eighteen nineteen twenty.",
		"Outro.",
	}, pages)
}

func TestBuildPages_OversizedByLines(t *testing.T) {
	b := Budgets{WordsPerPage: 100, MinLinesPerPage: 1, MaxLinesPerPage: 3, CharsPerLine: 10}
	big := "Aaaaaaaaa bbbbbbbbb. Ccccccccc ddddddddd."

	pages := BuildPages([]string{big}, b, NewEstimator(b))

	assert.Equal(t, []string{"Aaaaaaaaa bbbbbbbbb.", "Ccccccccc ddddddddd."}, pages)
}

func TestBuildPages_UnsplittableParagraph(t *testing.T) {
	b := DefaultBudgets()
	big := strings.TrimSpace(strings.Repeat("word ", 400))

	pages := BuildPages([]string{big}, b, NewEstimator(b))

	assert.Equal(t, []string{big}, pages)
}

func TestBuildPages_Empty(t *testing.T) {
	b := DefaultBudgets()
	assert.Empty(t, BuildPages(nil, b, NewEstimator(b)))
}
