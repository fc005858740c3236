package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/mikestefanello/backlite"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/reading"
)

// ErrAlreadyRunning is returned when a library pagination run is in progress.
var ErrAlreadyRunning = errors.New("library pagination is already running")

// BookLister lists the books that have an ebook file attached.
type BookLister interface {
	ListBooksWithContent() ([]entities.Book, error)
}

// ProgressTracker records the progress of a library run.
type ProgressTracker interface {
	IsSyncRunning() (bool, error)
	StartSync(totalItems int) error
	RecordItem(outcome entities.SyncOutcome, currentItem string) error
	CompleteSync(succeeded bool, errorMsg string) error
}

// WarmAllResult summarizes a library run.
type WarmAllResult struct {
	Total    int           `json:"total"`
	Warmed   int           `json:"warmed"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

func (r *WarmAllResult) String() string {
	return fmt.Sprintf("Paginated %d of %d books (%d skipped, %d failed) in %v",
		r.Warmed, r.Total, r.Skipped, r.Failed, r.Duration.Round(time.Millisecond))
}

// LibraryWarmer paginates every book with content, a bounded number at a time.
type LibraryWarmer struct {
	books    BookLister
	warmer   BookWarmer
	progress ProgressTracker
	limit    int
}

// NewLibraryWarmer creates a LibraryWarmer. progress may be nil.
func NewLibraryWarmer(books BookLister, warmer BookWarmer, progress ProgressTracker, limit int) *LibraryWarmer {
	if limit < 1 {
		limit = 1
	}
	return &LibraryWarmer{
		books:    books,
		warmer:   warmer,
		progress: progress,
		limit:    limit,
	}
}

// WarmAll paginates the whole library. A failing book is logged and counted;
// only listing errors and cancellation abort the run.
func (w *LibraryWarmer) WarmAll(ctx context.Context) (*WarmAllResult, error) {
	if w.progress != nil {
		running, err := w.progress.IsSyncRunning()
		if err != nil {
			return nil, fmt.Errorf("check running pagination: %w", err)
		}
		if running {
			return nil, ErrAlreadyRunning
		}
	}

	books, err := w.books.ListBooksWithContent()
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	start := time.Now()
	if w.progress != nil {
		if err := w.progress.StartSync(len(books)); err != nil {
			return nil, fmt.Errorf("start progress tracking: %w", err)
		}
	}

	var warmed, skipped, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.limit)

	for _, book := range books {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			outcome := entities.SyncOutcomeSucceeded
			_, err := w.warmer.Warm(gctx, book.ID)
			switch {
			case errors.Is(err, reading.ErrNoContent):
				outcome = entities.SyncOutcomeSkipped
				skipped.Add(1)
			case err != nil:
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("[TASK] Failed to paginate book %d (%s): %v", book.ID, book.Title, err)
				outcome = entities.SyncOutcomeFailed
				failed.Add(1)
			default:
				warmed.Add(1)
			}

			if w.progress != nil {
				if err := w.progress.RecordItem(outcome, book.Title); err != nil {
					log.Printf("[TASK] Failed to record pagination progress: %v", err)
				}
			}
			return nil
		})
	}

	runErr := g.Wait()
	result := &WarmAllResult{
		Total:    len(books),
		Warmed:   int(warmed.Load()),
		Skipped:  int(skipped.Load()),
		Failed:   int(failed.Load()),
		Duration: time.Since(start),
	}

	if w.progress != nil {
		msg := ""
		if runErr != nil {
			msg = runErr.Error()
		}
		if err := w.progress.CompleteSync(runErr == nil, msg); err != nil {
			log.Printf("[TASK] Failed to complete pagination progress: %v", err)
		}
	}

	if runErr != nil {
		return result, fmt.Errorf("paginate library: %w", runErr)
	}
	return result, nil
}

// PaginateAllTask re-paginates every book that has content.
type PaginateAllTask struct{}

// Config returns the queue configuration for library pagination tasks.
func (t PaginateAllTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "paginate_all",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     60 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PaginateAllProcessor creates a processor function for PaginateAllTask.
func PaginateAllProcessor(warmer *LibraryWarmer) backlite.QueueProcessor[PaginateAllTask] {
	return func(ctx context.Context, task PaginateAllTask) error {
		if warmer == nil {
			return fmt.Errorf("library warmer not configured")
		}

		result, err := warmer.WarmAll(ctx)
		if errors.Is(err, ErrAlreadyRunning) {
			log.Printf("[TASK] Library pagination already running, skipping")
			return nil
		}
		if err != nil {
			return err
		}

		log.Printf("[TASK] %s", result)
		return nil
	}
}

// NewPaginateAllQueue creates a backlite queue for library pagination tasks.
func NewPaginateAllQueue(warmer *LibraryWarmer) backlite.Queue {
	return backlite.NewQueue(PaginateAllProcessor(warmer))
}
