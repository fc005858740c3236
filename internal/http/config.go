package http

import (
	"github.com/mrlokans/bookshelf/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database  *database.Database
	BookStore BookStore
	Reader    Reader

	// Settings
	PaginationSettings PaginationSettingsStore
	WarmupSettings     WarmupSettingsStore
	WarmupScheduler    WarmupScheduler      // optional
	WarmupProgress     WarmupProgressSource // optional

	// Task queue (optional)
	TaskQueue TaskQueue

	// Library directory, reported by the health check
	LibraryDir string

	// Application info
	Version string
}
