package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookshelf/internal/settingsstore"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// LibraryWarmer re-paginates the whole library.
type LibraryWarmer interface {
	WarmAll(ctx context.Context) (*tasks.WarmAllResult, error)
}

// PaginationWarmScheduler periodically re-paginates every book so reading
// positions follow budget changes before the reader opens the book.
type PaginationWarmScheduler struct {
	settingsStore *settingsstore.SettingsStore
	warmer        LibraryWarmer

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isWarming  bool
	cancelFunc context.CancelFunc
}

// NewPaginationWarmScheduler creates a new scheduler instance
func NewPaginationWarmScheduler(settingsStore *settingsstore.SettingsStore, warmer LibraryWarmer) *PaginationWarmScheduler {
	return &PaginationWarmScheduler{
		settingsStore: settingsStore,
		warmer:        warmer,
		cron:          newCron(),
	}
}

func newCron() *cron.Cron {
	return cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
}

// Start begins the scheduler if the warm-up is enabled
func (s *PaginationWarmScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settingsStore.GetWarmupConfig()

	if !config.Enabled {
		log.Printf("Pagination warmup scheduler: disabled")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	// A stopped cron cannot be restarted with a clean entry table
	s.cron = newCron()
	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		s.runWarmup(context.Background(), false)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule warmup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(config.Schedule)
	log.Printf("Pagination warmup scheduler: started with schedule '%s' (%s). Next run: %v",
		config.Schedule,
		settingsstore.GetCronDescription(config.Schedule),
		nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *PaginationWarmScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	c := s.cron
	cancel := s.cancelFunc
	s.isRunning = false
	s.cancelFunc = nil
	s.mu.Unlock()

	// Wait outside the lock: a running job takes it to finish
	<-c.Stop().Done()
	if cancel != nil {
		cancel()
	}

	log.Printf("Pagination warmup scheduler: stopped")
}

// Reschedule applies changed warm-up settings
func (s *PaginationWarmScheduler) Reschedule() error {
	s.Stop()
	return s.Start(context.Background())
}

// RunNow triggers an immediate warm-up in the background, even when the
// schedule is disabled.
func (s *PaginationWarmScheduler) RunNow() error {
	if s.IsWarming() {
		return tasks.ErrAlreadyRunning
	}
	go s.runWarmup(context.Background(), true)
	return nil
}

// IsRunning returns whether the scheduler is active
func (s *PaginationWarmScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsWarming returns whether a warm-up is in progress
func (s *PaginationWarmScheduler) IsWarming() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isWarming
}

// NextRun returns when the next warm-up will occur
func (s *PaginationWarmScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runWarmup re-paginates the library and records the outcome.
// Scheduled runs are skipped when the warm-up was disabled in the meantime.
func (s *PaginationWarmScheduler) runWarmup(ctx context.Context, force bool) {
	if !force && !s.settingsStore.GetWarmupEnabled() {
		log.Printf("Pagination warmup: skipped (disabled)")
		return
	}

	s.mu.Lock()
	if s.isWarming {
		s.mu.Unlock()
		log.Printf("Pagination warmup: skipped (already in progress)")
		return
	}
	s.isWarming = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isWarming = false
		s.mu.Unlock()
	}()

	log.Printf("Pagination warmup: starting")

	result, err := s.warmer.WarmAll(ctx)
	if errors.Is(err, tasks.ErrAlreadyRunning) {
		log.Printf("Pagination warmup: skipped (library pagination already running)")
		return
	}
	if err != nil {
		errMsg := fmt.Sprintf("Warmup failed: %v", err)
		log.Printf("Pagination warmup: %s", errMsg)
		_ = s.settingsStore.SetWarmupStatus("failed", errMsg)
		return
	}

	log.Printf("Pagination warmup: %s", result)
	_ = s.settingsStore.SetWarmupStatus("success", result.String())
}
