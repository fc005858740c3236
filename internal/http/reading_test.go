package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/pagination"
	"github.com/mrlokans/bookshelf/internal/reading"
)

func TestReadingController_GetContent(t *testing.T) {
	env := newTestEnv(t)
	book := env.addBook(t, "long.txt", longText())
	want := pagination.Paginate(longText(), pagination.DefaultBudgets())
	require.Greater(t, want.TotalPages, 2)

	w := env.do(t, "GET", fmt.Sprintf("/api/books/%d/content", book.ID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	response := decode[ContentResponse](t, w)
	assert.Equal(t, book.ID, response.BookID)
	assert.Equal(t, "long.txt", response.Title)
	assert.Equal(t, want.TotalPages, response.TotalPages)
	assert.Equal(t, want.Pages, response.Pages)
	assert.Equal(t, pagination.DefaultBudgets().Key(), response.BudgetsKey)
}

func TestReadingController_GetContentEmptyBook(t *testing.T) {
	env := newTestEnv(t)
	book := env.addBook(t, "empty.txt", "  \n\n  ")

	w := env.do(t, "GET", fmt.Sprintf("/api/books/%d/content", book.ID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	response := decode[ContentResponse](t, w)
	assert.Equal(t, 0, response.TotalPages)
	assert.NotNil(t, response.Pages)
	assert.Empty(t, response.Pages)

	w = env.do(t, "GET", fmt.Sprintf("/api/books/%d/pages", book.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "no_content", decode[ErrorResponse](t, w).Code)
}

func TestReadingController_GetPage(t *testing.T) {
	env := newTestEnv(t)
	book := env.addBook(t, "long.txt", longText())
	want := pagination.Paginate(longText(), pagination.DefaultBudgets())
	base := fmt.Sprintf("/api/books/%d/pages", book.ID)

	t.Run("defaults to current page", func(t *testing.T) {
		w := env.do(t, "GET", base, nil)

		require.Equal(t, http.StatusOK, w.Code)
		page := decode[reading.PageView](t, w)
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, want.Pages[0], page.Text)
		assert.False(t, page.HasPrev)
		assert.True(t, page.HasNext)
	})

	t.Run("returns requested page", func(t *testing.T) {
		w := env.do(t, "GET", base+"?page=2", nil)

		require.Equal(t, http.StatusOK, w.Code)
		page := decode[reading.PageView](t, w)
		assert.Equal(t, 2, page.Number)
		assert.Equal(t, want.TotalPages, page.TotalPages)
		assert.Equal(t, want.Pages[1], page.Text)
		assert.True(t, page.HasPrev)
		assert.InDelta(t, reading.Percentage(2, want.TotalPages), page.Percentage, 1e-9)
	})

	t.Run("last page has no next", func(t *testing.T) {
		w := env.do(t, "GET", fmt.Sprintf("%s?page=%d", base, want.TotalPages), nil)

		require.Equal(t, http.StatusOK, w.Code)
		page := decode[reading.PageView](t, w)
		assert.False(t, page.HasNext)
		assert.InDelta(t, 100.0, page.Percentage, 1e-9)
	})

	t.Run("rejects page out of range", func(t *testing.T) {
		w := env.do(t, "GET", fmt.Sprintf("%s?page=%d", base, want.TotalPages+1), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "page_out_of_range", decode[ErrorResponse](t, w).Code)
	})

	t.Run("rejects malformed page", func(t *testing.T) {
		w := env.do(t, "GET", base+"?page=first", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReadingController_Errors(t *testing.T) {
	env := newTestEnv(t)
	noFile := &entities.Book{Title: "Paper only"}
	require.NoError(t, env.db.CreateBook(noFile))
	missing := &entities.Book{Title: "Lost", EbookPath: "lost.txt"}
	require.NoError(t, env.db.CreateBook(missing))
	unsupported := &entities.Book{Title: "Kindle", EbookPath: "book.mobi"}
	require.NoError(t, env.db.CreateBook(unsupported))

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"unknown book", "/api/books/9999/pages", http.StatusNotFound, ""},
		{"book without file", fmt.Sprintf("/api/books/%d/pages", noFile.ID), http.StatusUnprocessableEntity, "no_content"},
		{"file missing on disk", fmt.Sprintf("/api/books/%d/content", missing.ID), http.StatusUnprocessableEntity, "missing_file"},
		{"unsupported format", fmt.Sprintf("/api/books/%d/content", unsupported.ID), http.StatusUnprocessableEntity, "unsupported_format"},
		{"progress of book without file", fmt.Sprintf("/api/books/%d/progress", noFile.ID), http.StatusUnprocessableEntity, "no_content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, "GET", tt.path, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode[ErrorResponse](t, w).Code)
		})
	}
}

func TestReadingController_Progress(t *testing.T) {
	env := newTestEnv(t)
	book := env.addBook(t, "long.txt", longText())
	total := pagination.Paginate(longText(), pagination.DefaultBudgets()).TotalPages
	path := fmt.Sprintf("/api/books/%d/progress", book.ID)

	w := env.do(t, "GET", path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	initial := decode[entities.ReadingProgress](t, w)
	assert.Equal(t, 1, initial.CurrentPage)
	assert.Equal(t, total, initial.TotalPages)

	w = env.do(t, "PUT", path, map[string]any{"current_page": 2, "current_chapter": "Two"})
	require.Equal(t, http.StatusOK, w.Code)
	saved := decode[entities.ReadingProgress](t, w)
	assert.Equal(t, 2, saved.CurrentPage)
	assert.Equal(t, "Two", saved.CurrentChapter)
	assert.InDelta(t, reading.Percentage(2, total), saved.ProgressPercentage, 1e-9)
	assert.Equal(t, pagination.DefaultBudgets().Key(), saved.PaginationKey)

	stored, err := env.db.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BookStatusReading, stored.Status)
	assert.NotNil(t, stored.StartDate)

	w = env.do(t, "GET", path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[entities.ReadingProgress](t, w).CurrentPage)

	w = env.do(t, "PUT", path, map[string]any{"current_page": total + 10})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, total, decode[entities.ReadingProgress](t, w).CurrentPage, "page is clamped")

	stored, err = env.db.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BookStatusRead, stored.Status)
	assert.NotNil(t, stored.FinishDate)

	w = env.do(t, "PUT", path, "{broken")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadingController_ProgressFollowsBudgetChange(t *testing.T) {
	env := newTestEnv(t)
	book := env.addBook(t, "long.txt", longText())
	oldTotal := pagination.Paginate(longText(), pagination.DefaultBudgets()).TotalPages
	path := fmt.Sprintf("/api/books/%d/progress", book.ID)

	w := env.do(t, "PUT", path, map[string]any{"current_page": 2})
	require.Equal(t, http.StatusOK, w.Code)
	pct := reading.Percentage(2, oldTotal)

	w = env.do(t, "PUT", "/api/settings/pagination", map[string]any{"words_per_page": 40, "min_lines_per_page": 2})
	require.Equal(t, http.StatusOK, w.Code)

	smaller := pagination.DefaultBudgets()
	smaller.WordsPerPage = 40
	smaller.MinLinesPerPage = 2
	newTotal := pagination.Paginate(longText(), smaller).TotalPages
	require.NotEqual(t, oldTotal, newTotal)

	w = env.do(t, "GET", path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[entities.ReadingProgress](t, w)
	assert.Equal(t, newTotal, progress.TotalPages)
	assert.Equal(t, reading.ProjectPage(pct, newTotal), progress.CurrentPage)
	assert.Equal(t, smaller.Key(), progress.PaginationKey)
	assert.InDelta(t, pct, progress.ProgressPercentage, 1e-9)
}
