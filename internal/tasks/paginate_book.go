package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/reading"
)

// BookWarmer paginates a book and stores its reconciled reading position.
type BookWarmer interface {
	Warm(ctx context.Context, bookID uint) (*reading.Session, error)
}

// PaginateBookTask paginates a single book under the current budgets.
type PaginateBookTask struct {
	BookID uint `json:"book_id"`
}

// Config returns the queue configuration for single-book pagination tasks.
func (t PaginateBookTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "paginate_book",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PaginateBookProcessor creates a processor function for PaginateBookTask.
// Books without readable content are skipped rather than retried.
func PaginateBookProcessor(warmer BookWarmer) backlite.QueueProcessor[PaginateBookTask] {
	return func(ctx context.Context, task PaginateBookTask) error {
		if warmer == nil {
			return fmt.Errorf("reading service not configured")
		}

		session, err := warmer.Warm(ctx, task.BookID)
		if errors.Is(err, reading.ErrNoContent) {
			log.Printf("[TASK] Book %d has no readable content, skipping", task.BookID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("paginate book %d: %w", task.BookID, err)
		}

		log.Printf("[TASK] Paginated book %d (%s): %d pages under %s",
			task.BookID, session.Book.Title, session.TotalPages, session.BudgetsKey)
		return nil
	}
}

// NewPaginateBookQueue creates a backlite queue for single-book pagination tasks.
func NewPaginateBookQueue(warmer BookWarmer) backlite.Queue {
	return backlite.NewQueue(PaginateBookProcessor(warmer))
}
