package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/content"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/sync"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/reading"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/settingsstore"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ http.BookStore = (*database.Database)(nil)

// Reading progress store
var _ reading.Store = (*database.Database)(nil)

// Settings stores
var _ reading.BudgetsProvider = (*settingsstore.SettingsStore)(nil)
var _ http.PaginationSettingsStore = (*settingsstore.SettingsStore)(nil)
var _ http.WarmupSettingsStore = (*settingsstore.SettingsStore)(nil)

// =============================================================================
// Content Extraction
// =============================================================================

var _ reading.ContentLoader = (*content.Loader)(nil)

var _ content.Extractor = (*content.TextExtractor)(nil)
var _ content.Extractor = (*content.MarkdownExtractor)(nil)
var _ content.Extractor = (*content.HTMLExtractor)(nil)
var _ content.Extractor = (*content.EPUBExtractor)(nil)
var _ content.Extractor = (*content.PDFExtractor)(nil)
var _ content.Extractor = (*content.DOCXExtractor)(nil)

// =============================================================================
// Reading
// =============================================================================

var _ http.Reader = (*reading.Service)(nil)
var _ tasks.BookWarmer = (*reading.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ tasks.BookLister = (*database.Database)(nil)
var _ scheduler.LibraryWarmer = (*tasks.LibraryWarmer)(nil)
var _ http.WarmupScheduler = (*scheduler.PaginationWarmScheduler)(nil)

// Warm-up progress implementations
var _ tasks.ProgressTracker = (*sync.Repository)(nil)
var _ http.WarmupProgressSource = (*sync.Repository)(nil)
