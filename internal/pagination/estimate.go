package pagination

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Estimate is the approximate size of a paragraph or sentence.
type Estimate struct {
	Words int
	Lines int
}

// Estimator approximates how many rendered lines a text unit occupies.
type Estimator struct {
	CharsPerLine int
	Measure      Measure
}

// NewEstimator builds the estimator described by b.
func NewEstimator(b Budgets) Estimator {
	b = b.Normalize()
	return Estimator{CharsPerLine: b.CharsPerLine, Measure: b.Measure}
}

// Width returns the character count of s under the configured measure.
func (e Estimator) Width(s string) int {
	if e.Measure == MeasureCells {
		return runewidth.StringWidth(s)
	}
	return utf8.RuneCountInString(s)
}

// Estimate returns the word count and the line estimate of unit:
// max(1, ceil(width/CharsPerLine)) plus one line per explicit newline.
func (e Estimator) Estimate(unit string) Estimate {
	cpl := e.CharsPerLine
	if cpl <= 0 {
		cpl = DefaultCharsPerLine
	}

	lines := (e.Width(unit) + cpl - 1) / cpl
	if lines < 1 {
		lines = 1
	}

	return Estimate{
		Words: len(strings.Fields(unit)),
		Lines: lines + strings.Count(unit, "\n"),
	}
}

// CoarseLines is the page-level estimate used by the rebalancer: line breaks
// plus half the sentence terminators.
func CoarseLines(page string) int {
	return strings.Count(page, "\n") + countTerminators(page)/2
}

func countTerminators(s string) int {
	n := 0
	for _, r := range s {
		switch r {
		case '.', '!', '?':
			n++
		}
	}
	return n
}
