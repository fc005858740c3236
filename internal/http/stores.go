package http

import (
	"context"
	"time"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/pagination"
	"github.com/mrlokans/bookshelf/internal/reading"
	"github.com/mrlokans/bookshelf/internal/settingsstore"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls.

// BookStore provides the book catalogue.
type BookStore interface {
	CreateBook(book *entities.Book) error
	GetBookByID(id uint) (*entities.Book, error)
	ListBooks(filter books.Filter) ([]entities.Book, error)
	UpdateBook(book *entities.Book) error
	DeleteBook(id uint) error
	GetBookStats() (*books.Stats, error)
}

// Reader serves paginated books and reading progress.
type Reader interface {
	Open(ctx context.Context, bookID uint) (*reading.Session, error)
	Page(ctx context.Context, bookID uint, n int) (*reading.PageView, error)
	GetProgress(ctx context.Context, bookID uint) (*entities.ReadingProgress, error)
	SaveProgress(ctx context.Context, bookID uint, update reading.ProgressUpdate) (*entities.ReadingProgress, error)
	PaginateText(text string, budgets *pagination.Budgets) (pagination.Result, pagination.Budgets)
	InvalidateCache()
	CacheStats() pagination.CacheStats
}

// PaginationSettingsStore reads and overrides the pagination budgets.
type PaginationSettingsStore interface {
	GetPaginationBudgets() pagination.Budgets
	GetPaginationBudgetsInfo() settingsstore.PaginationBudgetsInfo
	SetPaginationBudgets(b pagination.Budgets) error
	ClearPaginationBudgets() error
}

// WarmupSettingsStore reads and overrides the scheduled warm-up settings.
type WarmupSettingsStore interface {
	GetWarmupConfigInfo() settingsstore.WarmupConfigInfo
	GetWarmupStatus() settingsstore.WarmupStatus
	SetWarmupEnabled(enabled bool) error
	SetWarmupSchedule(schedule string) error
	ClearWarmupSettings() error
}

// WarmupScheduler runs the library warm-up on its schedule.
type WarmupScheduler interface {
	Reschedule() error
	RunNow() error
	IsRunning() bool
	IsWarming() bool
	NextRun() *time.Time
}

// WarmupProgressSource reports the progress of the last library warm-up.
type WarmupProgressSource interface {
	GetSyncProgress() (*entities.SyncProgress, error)
}
