// Package pagination turns the full text of a book into an ordered list of
// bounded pages for the paged reading view.
//
// The pipeline is a pure function of (text, budgets):
//
//	Segment -> BuildPages -> Rebalance
//
// Page numbers handed to callers are 1-based positions in Result.Pages. They are
// only meaningful for the budgets that produced them, which is why Budgets.Key
// is persisted next to reading progress.
//
// Sizes are heuristics. Estimator approximates rendered lines from character
// counts and CoarseLines gives the rebalancer a cheaper page-level estimate.
// Neither knows anything about fonts.
//
// # Usage
//
//	res := pagination.Paginate(text, pagination.DefaultBudgets())
//	first, ok := res.Page(1)
package pagination
