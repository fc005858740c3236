package reading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestReconcile(t *testing.T) {
	const key = "w150-min8-max18-cpl60-runes-p1"

	tests := []struct {
		name     string
		stored   *entities.ReadingProgress
		total    int
		wantPage int
		wantPct  float64
	}{
		{"no progress", nil, 10, 1, 10},
		{"same pagination", &entities.ReadingProgress{CurrentPage: 4, TotalPages: 10, ProgressPercentage: 40, PaginationKey: key}, 10, 4, 40},
		{"page past the end", &entities.ReadingProgress{CurrentPage: 14, TotalPages: 10, ProgressPercentage: 40, PaginationKey: key}, 10, 10, 100},
		{"page before the start", &entities.ReadingProgress{CurrentPage: 0, TotalPages: 10, PaginationKey: key}, 10, 1, 10},
		{"other budgets", &entities.ReadingProgress{CurrentPage: 4, TotalPages: 10, ProgressPercentage: 40, PaginationKey: "w90-min8-max18-cpl60-runes-p1"}, 25, 10, 40},
		{"text changed", &entities.ReadingProgress{CurrentPage: 5, TotalPages: 10, ProgressPercentage: 50, PaginationKey: key}, 4, 2, 50},
		{"legacy row", &entities.ReadingProgress{ProgressPercentage: 33}, 3, 1, 33},
		{"no pages", &entities.ReadingProgress{CurrentPage: 3, TotalPages: 10, ProgressPercentage: 30, PaginationKey: key}, 0, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before entities.ReadingProgress
			if tt.stored != nil {
				before = *tt.stored
			}

			got := Reconcile(tt.stored, 7, tt.total, key)

			assert.Equal(t, tt.wantPage, got.CurrentPage)
			assert.Equal(t, tt.total, got.TotalPages)
			assert.Equal(t, key, got.PaginationKey)
			assert.InDelta(t, tt.wantPct, got.ProgressPercentage, 1e-9)
			if tt.stored != nil {
				assert.Equal(t, before, *tt.stored, "stored progress must not change")
			} else {
				assert.Equal(t, uint(7), got.BookID)
			}
		})
	}
}

func TestProjectPage_InvertsPercentage(t *testing.T) {
	for total := 1; total <= 60; total++ {
		for n := 1; n <= total; n++ {
			assert.Equal(t, n, ProjectPage(Percentage(n, total), total), "page %d of %d", n, total)
		}
	}
}

func TestProjectPage_Bounds(t *testing.T) {
	assert.Equal(t, 1, ProjectPage(0, 10))
	assert.Equal(t, 1, ProjectPage(-5, 10))
	assert.Equal(t, 10, ProjectPage(100, 10))
	assert.Equal(t, 10, ProjectPage(250, 10))
	assert.Equal(t, 0, ProjectPage(50, 0))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(3, 0))
	assert.Equal(t, 25.0, Percentage(1, 4))
	assert.Equal(t, 100.0, Percentage(4, 4))
	assert.Equal(t, 100.0, Percentage(9, 4))
}
