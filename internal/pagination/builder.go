package pagination

import "strings"

const (
	paragraphSeparator = "\n\n"
	sentenceSeparator  = " "
)

// chunk accumulates the units of one candidate page.
type chunk struct {
	units []string
	words int
	lines int
}

func (c *chunk) add(unit string, e Estimate) {
	c.units = append(c.units, unit)
	c.words += e.Words
	c.lines += e.Lines
}

func (c *chunk) empty() bool {
	return len(c.units) == 0
}

// full reports whether adding e would exceed the budgets while the chunk
// already satisfies the minimum page size.
func (c *chunk) full(e Estimate, wordsPerPage, minLines, maxLines int) bool {
	over := c.words+e.Words > wordsPerPage || c.lines+e.Lines > maxLines
	return over && c.lines >= minLines
}

func (c *chunk) join(sep string) string {
	return strings.Join(c.units, sep)
}

func (c *chunk) reset() {
	*c = chunk{}
}

// BuildPages greedily packs paragraphs into pages in a single forward pass.
// Paragraphs too large for any page are split into sentences first; pages made
// of sentences are joined with a space instead of a blank line.
func BuildPages(paragraphs []string, b Budgets, est Estimator) []string {
	b = b.Normalize()

	var pages []string
	var acc chunk

	flush := func(c *chunk, sep string) {
		if !c.empty() {
			pages = append(pages, c.join(sep))
			c.reset()
		}
	}

	for _, p := range paragraphs {
		e := est.Estimate(p)

		if oversized(e, b) {
			flush(&acc, paragraphSeparator)

			var sc chunk
			for _, s := range SplitSentences(p) {
				se := est.Estimate(s)
				if sc.full(se, b.WordsPerPage, b.MinLinesPerPage, b.MaxLinesPerPage) {
					flush(&sc, sentenceSeparator)
				}
				sc.add(s, se)
			}
			flush(&sc, sentenceSeparator)
			continue
		}

		if acc.full(e, b.WordsPerPage, b.MinLinesPerPage, b.MaxLinesPerPage) {
			flush(&acc, paragraphSeparator)
		}
		acc.add(p, e)
	}
	flush(&acc, paragraphSeparator)

	return pages
}

// oversized reports whether a paragraph can never fit a page as a whole:
// more than 1.5x the word budget or more lines than a page holds.
func oversized(e Estimate, b Budgets) bool {
	return 2*e.Words > 3*b.WordsPerPage || e.Lines > b.MaxLinesPerPage
}
