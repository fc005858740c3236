// Package reading serves paginated books to a reader and keeps their reading
// position.
//
// A book is paginated on demand: its text comes from the content loader, the
// budgets from the settings store, and the pages from a memoizing
// pagination.Paginator, so repeated page requests do not re-run the engine.
//
// Stored progress records the budgets key it was computed under. When the
// budgets or the book's text change, the stored percentage is projected onto
// the new page count; otherwise the stored page is only clamped.
package reading

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mrlokans/bookshelf/internal/content"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/pagination"
)

var (
	ErrNoContent      = errors.New("book has no readable content")
	ErrPageOutOfRange = errors.New("page out of range")
)

// Store is the persistence the service needs.
type Store interface {
	GetBookByID(id uint) (*entities.Book, error)
	GetProgress(bookID uint) (*entities.ReadingProgress, error)
	SaveProgress(p *entities.ReadingProgress) error
	SaveProgressAndStatus(p *entities.ReadingProgress, book *entities.Book) error
}

// ContentLoader returns the normalized text of a book.
type ContentLoader interface {
	Load(ctx context.Context, book *entities.Book) (string, error)
}

// BudgetsProvider returns the effective pagination budgets.
type BudgetsProvider interface {
	GetPaginationBudgets() pagination.Budgets
}

type Service struct {
	store     Store
	loader    ContentLoader
	budgets   BudgetsProvider
	paginator *pagination.Paginator
	now       func() time.Time
}

func NewService(store Store, loader ContentLoader, budgets BudgetsProvider, paginator *pagination.Paginator) *Service {
	return &Service{
		store:     store,
		loader:    loader,
		budgets:   budgets,
		paginator: paginator,
		now:       time.Now,
	}
}

// Session is a book paginated under the current budgets.
type Session struct {
	Book       *entities.Book            `json:"book"`
	Budgets    pagination.Budgets        `json:"budgets"`
	BudgetsKey string                    `json:"budgets_key"`
	TotalPages int                       `json:"total_pages"`
	Progress   *entities.ReadingProgress `json:"progress"`

	// stored is the progress row as loaded, nil when none exists.
	stored *entities.ReadingProgress
	result pagination.Result
}

// PageView is one page of a book as presented to a reader.
type PageView struct {
	BookID     uint    `json:"book_id"`
	Number     int     `json:"number"`
	TotalPages int     `json:"total_pages"`
	Text       string  `json:"text"`
	HasPrev    bool    `json:"has_prev"`
	HasNext    bool    `json:"has_next"`
	Percentage float64 `json:"percentage"`
}

// ProgressUpdate is a partial progress change. Nil fields are left as they are.
type ProgressUpdate struct {
	CurrentPage        *int     `json:"current_page"`
	ProgressPercentage *float64 `json:"progress_percentage"`
	CurrentChapter     *string  `json:"current_chapter"`
	AudiobookPosition  *int     `json:"audiobook_position"`
	ScrollPosition     *float64 `json:"scroll_position"`
	Notes              *string  `json:"notes"`
}

// Open loads, paginates and reconciles a book. Books without an ebook file
// yield ErrNoContent; a file with no text yields a session with zero pages.
func (s *Service) Open(ctx context.Context, bookID uint) (*Session, error) {
	book, err := s.store.GetBookByID(bookID)
	if err != nil {
		return nil, err
	}

	text, err := s.loader.Load(ctx, book)
	if errors.Is(err, content.ErrNoFile) {
		return nil, ErrNoContent
	}
	if err != nil {
		return nil, fmt.Errorf("load book %d: %w", bookID, err)
	}

	budgets := s.budgets.GetPaginationBudgets().Normalize()
	result := s.paginator.Paginate(text, budgets)

	stored, err := s.store.GetProgress(bookID)
	if err != nil {
		return nil, fmt.Errorf("load progress of book %d: %w", bookID, err)
	}

	return &Session{
		Book:       book,
		Budgets:    budgets,
		BudgetsKey: budgets.Key(),
		TotalPages: result.TotalPages,
		Progress:   Reconcile(stored, bookID, result.TotalPages, budgets.Key()),
		stored:     stored,
		result:     result,
	}, nil
}

// Page returns page n of a book. n == 0 selects the reader's current page.
func (s *Service) Page(ctx context.Context, bookID uint, n int) (*PageView, error) {
	session, err := s.Open(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return session.Page(n)
}

// Page returns page n of the session, 0 meaning the current page.
func (sess *Session) Page(n int) (*PageView, error) {
	if sess.TotalPages == 0 {
		return nil, ErrNoContent
	}
	if n == 0 {
		n = sess.Progress.CurrentPage
	}
	text, ok := sess.result.Page(n)
	if !ok {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, n, sess.TotalPages)
	}
	return &PageView{
		BookID:     sess.Book.ID,
		Number:     n,
		TotalPages: sess.TotalPages,
		Text:       text,
		HasPrev:    n > 1,
		HasNext:    n < sess.TotalPages,
		Percentage: Percentage(n, sess.TotalPages),
	}, nil
}

// Pages returns every page of the session.
func (sess *Session) Pages() []string {
	return sess.result.Pages
}

// GetProgress returns the reconciled progress of a book.
func (s *Service) GetProgress(ctx context.Context, bookID uint) (*entities.ReadingProgress, error) {
	session, err := s.Open(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return session.Progress, nil
}

// SaveProgress applies an update and persists it together with the status
// change it implies: the first save starts a to_read book, reaching the last
// page finishes it.
func (s *Service) SaveProgress(ctx context.Context, bookID uint, update ProgressUpdate) (*entities.ReadingProgress, error) {
	session, err := s.Open(ctx, bookID)
	if err != nil {
		return nil, err
	}
	total := session.TotalPages
	p := session.Progress

	switch {
	case update.CurrentPage != nil:
		if total == 0 {
			return nil, ErrNoContent
		}
		p.CurrentPage = clamp(*update.CurrentPage, 1, total)
		p.ProgressPercentage = Percentage(p.CurrentPage, total)
	case update.ProgressPercentage != nil:
		pct := math.Max(0, math.Min(100, *update.ProgressPercentage))
		p.ProgressPercentage = pct
		if total > 0 {
			p.CurrentPage = ProjectPage(pct, total)
		}
	}
	if update.CurrentChapter != nil {
		p.CurrentChapter = *update.CurrentChapter
	}
	if update.AudiobookPosition != nil {
		p.AudiobookPosition = max(0, *update.AudiobookPosition)
	}
	if update.ScrollPosition != nil {
		p.ScrollPosition = math.Max(0, *update.ScrollPosition)
	}
	if update.Notes != nil {
		p.Notes = *update.Notes
	}

	now := s.now()
	p.LastReadDate = now

	book := session.Book
	applyStatus(book, p, total, now)

	if err := s.store.SaveProgressAndStatus(p, book); err != nil {
		return nil, fmt.Errorf("save progress of book %d: %w", bookID, err)
	}
	return p, nil
}

// Warm paginates a book and, when the book already has stored progress that
// was computed under other budgets or text, stores the reconciled position.
func (s *Service) Warm(ctx context.Context, bookID uint) (*Session, error) {
	session, err := s.Open(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if session.stored == nil {
		return session, nil
	}
	if session.stored.PaginationKey == session.BudgetsKey && session.stored.TotalPages == session.TotalPages {
		return session, nil
	}
	if err := s.store.SaveProgress(session.Progress); err != nil {
		return nil, fmt.Errorf("save reconciled progress of book %d: %w", bookID, err)
	}
	return session, nil
}

// PaginateText paginates arbitrary text. Nil budgets select the effective
// budgets. The result is not cached.
func (s *Service) PaginateText(text string, budgets *pagination.Budgets) (pagination.Result, pagination.Budgets) {
	b := s.budgets.GetPaginationBudgets()
	if budgets != nil {
		b = *budgets
	}
	b = b.Normalize()
	return pagination.Paginate(text, b), b
}

// InvalidateCache drops memoized paginations, e.g. after the budgets changed.
func (s *Service) InvalidateCache() {
	s.paginator.Invalidate()
}

// CacheStats reports the paginator cache usage.
func (s *Service) CacheStats() pagination.CacheStats {
	return s.paginator.Stats()
}

func applyStatus(book *entities.Book, p *entities.ReadingProgress, total int, now time.Time) {
	if book.Status == entities.BookStatusToRead {
		book.Status = entities.BookStatusReading
	}
	if book.Status == entities.BookStatusReading && book.StartDate == nil {
		book.StartDate = &now
	}
	if total > 0 && p.CurrentPage == total && book.Status != entities.BookStatusRead {
		book.Status = entities.BookStatusRead
		if book.StartDate == nil {
			book.StartDate = &now
		}
		book.FinishDate = &now
	}
}
