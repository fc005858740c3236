package pagination

// Result is the ordered page sequence for one (text, budgets) pair.
// It is never modified after Paginate returns it.
type Result struct {
	Pages      []string `json:"pages"`
	TotalPages int      `json:"total_pages"`
}

// Page returns the text of the 1-based page n.
func (r Result) Page(n int) (string, bool) {
	if n < 1 || n > len(r.Pages) {
		return "", false
	}
	return r.Pages[n-1], true
}

// Empty reports the "no content" state.
func (r Result) Empty() bool {
	return r.TotalPages == 0
}

// Paginate segments text, packs the paragraphs into pages and rebalances them.
// Empty or whitespace-only text yields a Result with no pages.
func Paginate(text string, b Budgets) Result {
	b = b.Normalize()

	paragraphs := Segment(text)
	if len(paragraphs) == 0 {
		return Result{}
	}

	est := NewEstimator(b)
	pages := Rebalance(BuildPages(paragraphs, b, est), b, est)

	return Result{Pages: pages, TotalPages: len(pages)}
}
