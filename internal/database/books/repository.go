// Package books provides database operations for the book catalogue.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(123)
//	reading, err := repo.List(books.Filter{Status: entities.BookStatusReading})
package books

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Status    entities.BookStatus
	Query     string // case-insensitive match on title or author
	WithEbook bool
}

// Stats summarizes the library.
type Stats struct {
	Total            int64   `json:"total"`
	ToRead           int64   `json:"to_read"`
	Reading          int64   `json:"reading"`
	Read             int64   `json:"read"`
	WithEbook        int64   `json:"with_ebook"`
	FinishedThisYear int64   `json:"finished_this_year"`
	AverageProgress  float64 `json:"average_progress"` // over books currently being read
}

// Create inserts a new book.
func (r *Repository) Create(book *entities.Book) error {
	if book.Status == "" {
		book.Status = entities.BookStatusToRead
	}
	if !book.Status.Valid() {
		return fmt.Errorf("invalid book status %q", book.Status)
	}
	return r.db.Create(book).Error
}

// GetByID retrieves a book with its reading progress.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("ReadingProgress").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns books matching the filter, most recently updated first.
func (r *Repository) List(filter Filter) ([]entities.Book, error) {
	query := r.db.Preload("ReadingProgress").Order("updated_at DESC, id DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", like, like)
	}
	if filter.WithEbook {
		query = query.Where("ebook_path <> ''")
	}

	var books []entities.Book
	err := query.Find(&books).Error
	return books, err
}

// ListWithContent returns every book that has an ebook attached.
func (r *Repository) ListWithContent() ([]entities.Book, error) {
	return r.List(Filter{WithEbook: true})
}

// Update saves all fields of an existing book.
func (r *Repository) Update(book *entities.Book) error {
	if !book.Status.Valid() {
		return fmt.Errorf("invalid book status %q", book.Status)
	}
	return r.db.Omit("ReadingProgress").Save(book).Error
}

// UpdateStatus changes only the reading status and its dates.
func (r *Repository) UpdateStatus(id uint, status entities.BookStatus, start, finish *time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("invalid book status %q", status)
	}
	return r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(map[string]any{
		"status":      status,
		"start_date":  start,
		"finish_date": finish,
		"updated_at":  time.Now(),
	}).Error
}

// Delete soft-deletes a book. Reading progress is removed by the caller.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stats computes library totals.
func (r *Repository) Stats() (*Stats, error) {
	stats := &Stats{}

	if err := r.db.Model(&entities.Book{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	var byStatus []struct {
		Status entities.BookStatus
		Count  int64
	}
	err := r.db.Model(&entities.Book{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, fmt.Errorf("count books by status: %w", err)
	}
	for _, row := range byStatus {
		switch row.Status {
		case entities.BookStatusToRead:
			stats.ToRead = row.Count
		case entities.BookStatusReading:
			stats.Reading = row.Count
		case entities.BookStatusRead:
			stats.Read = row.Count
		}
	}

	err = r.db.Model(&entities.Book{}).Where("ebook_path <> ''").Count(&stats.WithEbook).Error
	if err != nil {
		return nil, fmt.Errorf("count books with ebook: %w", err)
	}

	yearStart := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.Local)
	err = r.db.Model(&entities.Book{}).
		Where("status = ? AND finish_date >= ?", entities.BookStatusRead, yearStart).
		Count(&stats.FinishedThisYear).Error
	if err != nil {
		return nil, fmt.Errorf("count finished books: %w", err)
	}

	var avg sql.NullFloat64
	err = r.db.Model(&entities.ReadingProgress{}).
		Joins("JOIN books ON books.id = reading_progress.book_id AND books.deleted_at IS NULL").
		Where("books.status = ?", entities.BookStatusReading).
		Select("AVG(reading_progress.progress_percentage)").
		Row().Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("average progress: %w", err)
	}
	stats.AverageProgress = avg.Float64

	return stats, nil
}
