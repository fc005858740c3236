package pagination

import "fmt"

// Measure selects how the size estimator counts the width of a text unit.
type Measure string

const (
	// MeasureRunes counts Unicode code points.
	MeasureRunes Measure = "runes"
	// MeasureCells counts terminal cells, so wide (CJK) runes count double.
	MeasureCells Measure = "cells"
)

const (
	DefaultWordsPerPage    = 150
	DefaultMinLinesPerPage = 8
	DefaultMaxLinesPerPage = 18
	DefaultCharsPerLine    = 60
	DefaultRebalancePasses = 1

	// maxRebalancePasses guards the fixed-point mode against configuration typos.
	maxRebalancePasses = 16
)

// Budgets are the tunable constants governing page granularity.
type Budgets struct {
	WordsPerPage    int     `json:"words_per_page"`
	MinLinesPerPage int     `json:"min_lines_per_page"`
	MaxLinesPerPage int     `json:"max_lines_per_page"`
	CharsPerLine    int     `json:"chars_per_line"`
	Measure         Measure `json:"measure"`

	// RebalancePasses is 1 for the classic single rebalancing pass. Larger
	// values repeat the pass until the pages stop changing.
	RebalancePasses int `json:"rebalance_passes"`
}

// DefaultBudgets returns the budgets used when nothing is configured.
func DefaultBudgets() Budgets {
	return Budgets{
		WordsPerPage:    DefaultWordsPerPage,
		MinLinesPerPage: DefaultMinLinesPerPage,
		MaxLinesPerPage: DefaultMaxLinesPerPage,
		CharsPerLine:    DefaultCharsPerLine,
		Measure:         MeasureRunes,
		RebalancePasses: DefaultRebalancePasses,
	}
}

// Normalize replaces unset or invalid fields with defaults. A minimum above the
// maximum is lowered to the maximum.
func (b Budgets) Normalize() Budgets {
	if b.WordsPerPage <= 0 {
		b.WordsPerPage = DefaultWordsPerPage
	}
	if b.MaxLinesPerPage <= 0 {
		b.MaxLinesPerPage = DefaultMaxLinesPerPage
	}
	if b.MinLinesPerPage <= 0 {
		b.MinLinesPerPage = DefaultMinLinesPerPage
	}
	if b.MinLinesPerPage > b.MaxLinesPerPage {
		b.MinLinesPerPage = b.MaxLinesPerPage
	}
	if b.CharsPerLine <= 0 {
		b.CharsPerLine = DefaultCharsPerLine
	}
	if b.Measure != MeasureCells {
		b.Measure = MeasureRunes
	}
	if b.RebalancePasses <= 0 {
		b.RebalancePasses = DefaultRebalancePasses
	}
	if b.RebalancePasses > maxRebalancePasses {
		b.RebalancePasses = maxRebalancePasses
	}
	return b
}

// Key fingerprints the normalized budgets. Two budgets with the same key always
// produce the same page boundaries for the same text.
func (b Budgets) Key() string {
	n := b.Normalize()
	return fmt.Sprintf("w%d-min%d-max%d-cpl%d-%s-p%d",
		n.WordsPerPage, n.MinLinesPerPage, n.MaxLinesPerPage, n.CharsPerLine, n.Measure, n.RebalancePasses)
}

// ParseMeasure maps a configuration string to a Measure, defaulting to runes.
func ParseMeasure(s string) Measure {
	if Measure(s) == MeasureCells {
		return MeasureCells
	}
	return MeasureRunes
}
