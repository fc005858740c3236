package tasks

import "time"

// Config holds configuration for the pagination task queue.
// Retry and timeout policy is per task type, see PaginateBookTask.Config.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished tasks past retention are removed. Default: 1h
	CleanupInterval time.Duration

	// PaginateAllLimit caps the books paginate_all works on at once. Default: 4
	PaginateAllLimit int
}

func DefaultConfig() Config {
	return Config{
		Workers:          2,
		ReleaseAfter:     15 * time.Minute,
		CleanupInterval:  time.Hour,
		PaginateAllLimit: 4,
	}
}
