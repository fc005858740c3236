// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help code agents understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Book catalogue CRUD (internal/http/stores.go)
//   - reading.Store: Books and reading progress (internal/reading/reading.go)
//   - BookLister: Books with attached content (internal/tasks/paginate_all.go)
//
// ## Settings Interfaces
//
//   - BudgetsProvider: Effective pagination budgets (internal/reading/reading.go)
//   - PaginationSettingsStore: Budget overrides (internal/http/stores.go)
//   - WarmupSettingsStore: Warm-up schedule and status (internal/http/stores.go)
//
// ## Content Interfaces
//
//   - ContentLoader: Normalized text of a book (internal/reading/reading.go)
//   - Extractor: Plain text from one file format (internal/content/content.go)
//
// ## Background Work Interfaces
//
//   - BookWarmer: Paginates and reconciles one book (internal/tasks/paginate_book.go)
//   - LibraryWarmer: Paginates the whole library (internal/scheduler/pagination_warm.go)
//   - ProgressTracker: Warm-up progress reporting (internal/tasks/paginate_all.go)
//   - WarmupProgressSource: Warm-up progress for the API (internal/http/stores.go)
//   - TaskQueue: Enqueue and inspect background tasks (internal/http/tasks.go)
//   - WarmupScheduler: Cron driven warm-up control (internal/http/stores.go)
//
// # Adding a New Ebook Format
//
//  1. Implement Extractor in internal/content/
//
//     type RTFExtractor struct{}
//
//     // Extract returns paragraphs separated by blank lines.
//     func (e *RTFExtractor) Extract(data []byte) (string, error)
//
//  2. Add a Format constant and register the extractor in the extractors map
//
//  3. Add a compile-time check to checks.go:
//
//     var _ content.Extractor = (*content.RTFExtractor)(nil)
//
// # Adding a New Background Task
//
//  1. Define the task and its processor in internal/tasks/
//
//     type ReindexTask struct{ BookID uint }
//
//     func (t ReindexTask) Config() backlite.QueueConfig
//     func (p *ReindexProcessor) Process(ctx context.Context, task ReindexTask) error
//
//  2. Register the queue in entrypoint.go with taskClient.Register
//
//  3. List the task type in internal/http/tasks.go so it can be run over the API
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
