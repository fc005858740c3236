// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, facade methods
//	├── books/           # Book catalogue CRUD, filters and stats
//	├── progress/        # Reading positions per book
//	├── sync/            # Library warm-up progress tracking
//	└── settings/        # Application settings
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./bookshelf.db")
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	progressRepo := progress.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetByID(123)
//	p, err := progressRepo.Get(book.ID)
//
// # Interface Implementations
//
// The Database facade implements reading.Store, http.BookStore and
// tasks.BookLister. sync.Repository implements tasks.ProgressTracker.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Expose the operations the rest of the application needs on Database
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
