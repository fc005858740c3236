package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebalance_MergesUndersizedPage(t *testing.T) {
	b := DefaultBudgets()

	pages := Rebalance([]string{"Short.", "Another short page."}, b, NewEstimator(b))

	assert.Equal(t, []string{"Short.\n\nAnother short page."}, pages)
}

func TestRebalance_LastPageMayBeSmall(t *testing.T) {
	b := DefaultBudgets()

	pages := Rebalance([]string{"x"}, b, NewEstimator(b))

	assert.Equal(t, []string{"x"}, pages)
}

func TestRebalance_SplitsOversizedPage(t *testing.T) {
	b := Budgets{WordsPerPage: 100, MinLinesPerPage: 1, MaxLinesPerPage: 4, CharsPerLine: 60}

	pages := Rebalance([]string{"a\nb\n\nc\nd\n\ne\nf"}, b, NewEstimator(b))

	assert.Equal(t, []string{"a\nb\n\nc\nd", "e\nf"}, pages)
}

func TestRebalance_SinglePassByDefault(t *testing.T) {
	b := DefaultBudgets()

	pages := Rebalance([]string{"x", "y", "z"}, b, NewEstimator(b))

	assert.Equal(t, []string{"x\n\ny", "z"}, pages)
}

func TestRebalance_RepeatsUntilStable(t *testing.T) {
	b := DefaultBudgets()
	b.RebalancePasses = 5

	pages := Rebalance([]string{"x", "y", "z"}, b, NewEstimator(b))

	assert.Equal(t, []string{"x\n\ny\n\nz"}, pages)
}

func TestRebalance_Empty(t *testing.T) {
	b := DefaultBudgets()
	assert.Empty(t, Rebalance(nil, b, NewEstimator(b)))
}
