package reading

import (
	"math"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Reconcile adapts stored progress to a fresh pagination of total pages under
// budgets key. The stored row is not modified. A nil stored progress starts at
// page 1; zero pages leave the position at 0.
func Reconcile(stored *entities.ReadingProgress, bookID uint, total int, key string) *entities.ReadingProgress {
	p := &entities.ReadingProgress{BookID: bookID}
	if stored != nil {
		copied := *stored
		p = &copied
	}

	if total == 0 {
		p.CurrentPage = 0
		p.TotalPages = 0
		p.PaginationKey = key
		return p
	}

	switch {
	case stored == nil:
		p.CurrentPage = 1
	case stored.PaginationKey != key || stored.TotalPages != total:
		p.CurrentPage = ProjectPage(stored.ProgressPercentage, total)
	default:
		p.CurrentPage = clamp(stored.CurrentPage, 1, total)
	}

	p.TotalPages = total
	p.PaginationKey = key
	if stored == nil || stored.PaginationKey == key && stored.TotalPages == total {
		p.ProgressPercentage = Percentage(p.CurrentPage, total)
	}
	return p
}

// Percentage is the share of the book read once page n of total is finished.
func Percentage(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(clamp(n, 0, total)) * 100 / float64(total)
}

// ProjectPage maps a percentage onto a pagination of total pages. It inverts
// Percentage: ProjectPage(Percentage(n, t), t) == n.
func ProjectPage(pct float64, total int) int {
	if total <= 0 {
		return 0
	}
	// tolerance absorbs float error so exact page percentages map back
	page := int(math.Ceil(pct*float64(total)/100 - 1e-9))
	return clamp(page, 1, total)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
