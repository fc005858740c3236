package pagination

import "strings"

// Rebalance runs the configured number of rebalancing passes over built pages.
// With the default of one pass it is a single forward scan; with more it stops
// early once a pass leaves the pages unchanged.
func Rebalance(pages []string, b Budgets, est Estimator) []string {
	b = b.Normalize()

	for i := 0; i < b.RebalancePasses; i++ {
		next := rebalancePass(pages, b, est)
		if equalPages(next, pages) {
			return next
		}
		pages = next
	}
	return pages
}

// rebalancePass merges undersized pages into their successor and re-splits
// oversized pages along paragraph boundaries.
func rebalancePass(pages []string, b Budgets, est Estimator) []string {
	out := make([]string, 0, len(pages))

	for i := 0; i < len(pages); i++ {
		page := pages[i]

		if CoarseLines(page) < b.MinLinesPerPage && i+1 < len(pages) {
			page = page + paragraphSeparator + pages[i+1]
			i++
		}

		if CoarseLines(page) > b.MaxLinesPerPage {
			out = append(out, splitByLines(page, b, est)...)
			continue
		}
		out = append(out, page)
	}

	return out
}

// splitByLines re-packs the paragraphs of page using only the line budget.
func splitByLines(page string, b Budgets, est Estimator) []string {
	var pieces []string
	var acc chunk

	for _, unit := range strings.Split(page, paragraphSeparator) {
		e := est.Estimate(unit)
		over := acc.lines+e.Lines > b.MaxLinesPerPage
		if over && acc.lines >= b.MinLinesPerPage {
			pieces = append(pieces, acc.join(paragraphSeparator))
			acc.reset()
		}
		acc.add(unit, e)
	}
	if !acc.empty() {
		pieces = append(pieces, acc.join(paragraphSeparator))
	}

	return pieces
}

func equalPages(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
