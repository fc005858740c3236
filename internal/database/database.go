package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/progress"
	"github.com/mrlokans/bookshelf/internal/database/settings"
	"github.com/mrlokans/bookshelf/internal/database/sync"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type Database struct {
	DB *gorm.DB

	books    *books.Repository
	progress *progress.Repository
	settings *settings.Repository
}

// NewDatabase opens the sqlite database at dbPath and migrates all entities.
func NewDatabase(dbPath string) (*Database, error) {
	return open(dbPath, logger.Default.LogMode(logger.Info))
}

// NewQuietDatabase is NewDatabase without SQL statement logging.
func NewQuietDatabase(dbPath string) (*Database, error) {
	return open(dbPath, logger.Default.LogMode(logger.Silent))
}

func open(dbPath string, gormLogger logger.Interface) (*Database, error) {
	// DSN options apply to every pooled connection, unlike a one-off PRAGMA
	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.ReadingProgress{},
		&entities.Setting{},
		&entities.SyncProgress{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{
		DB:       db,
		books:    books.NewRepository(db),
		progress: progress.NewRepository(db),
		settings: settings.NewRepository(db),
	}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// PaginationSync returns the progress tracker of the paginate-all job.
func (d *Database) PaginationSync() *sync.Repository {
	return sync.NewRepositoryWithType(d.DB, entities.SyncTypePagination)
}

// --- Books ---

func (d *Database) CreateBook(book *entities.Book) error {
	return d.books.Create(book)
}

func (d *Database) GetBookByID(id uint) (*entities.Book, error) {
	return d.books.GetByID(id)
}

func (d *Database) ListBooks(filter books.Filter) ([]entities.Book, error) {
	return d.books.List(filter)
}

func (d *Database) GetAllBooks() ([]entities.Book, error) {
	return d.books.List(books.Filter{})
}

func (d *Database) ListBooksWithContent() ([]entities.Book, error) {
	return d.books.ListWithContent()
}

func (d *Database) UpdateBook(book *entities.Book) error {
	return d.books.Update(book)
}

// DeleteBook removes a book together with its reading progress.
func (d *Database) DeleteBook(id uint) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := progress.NewRepository(tx).Delete(id); err != nil {
			return err
		}
		return books.NewRepository(tx).Delete(id)
	})
}

func (d *Database) GetBookStats() (*books.Stats, error) {
	return d.books.Stats()
}

// --- Reading progress ---

func (d *Database) GetProgress(bookID uint) (*entities.ReadingProgress, error) {
	return d.progress.Get(bookID)
}

func (d *Database) SaveProgress(p *entities.ReadingProgress) error {
	return d.progress.Upsert(p)
}

// SaveProgressAndStatus stores progress and the book's reading status atomically.
func (d *Database) SaveProgressAndStatus(p *entities.ReadingProgress, book *entities.Book) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := progress.NewRepository(tx).Upsert(p); err != nil {
			return err
		}
		return books.NewRepository(tx).UpdateStatus(book.ID, book.Status, book.StartDate, book.FinishDate)
	})
}

// --- Settings ---

func (d *Database) GetSetting(key string) (*entities.Setting, error) {
	return d.settings.GetSetting(key)
}

func (d *Database) GetSettings(keys ...string) (map[string]string, error) {
	return d.settings.GetSettings(keys...)
}

func (d *Database) SetSetting(key, value string) error {
	return d.settings.SetSetting(key, value)
}

func (d *Database) SetSettings(values map[string]string) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return settings.NewRepository(tx).SetSettings(values)
	})
}

func (d *Database) DeleteSetting(key string) error {
	return d.settings.DeleteSetting(key)
}

func (d *Database) DeleteSettings(keys ...string) error {
	return d.settings.DeleteSettings(keys...)
}
