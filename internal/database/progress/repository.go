// Package progress stores per-book reading positions.
//
// Each book has at most one ReadingProgress row; Upsert replaces it.
package progress

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles reading progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the progress of a book, or (nil, nil) when none was saved.
func (r *Repository) Get(bookID uint) (*entities.ReadingProgress, error) {
	var p entities.ReadingProgress
	err := r.db.Where("book_id = ?", bookID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts or replaces the progress row of p.BookID.
func (r *Repository) Upsert(p *entities.ReadingProgress) error {
	if p.LastReadDate.IsZero() {
		p.LastReadDate = time.Now()
	}

	var existing entities.ReadingProgress
	err := r.db.Where("book_id = ?", p.BookID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p.ID = 0
		return r.db.Create(p).Error
	} else if err != nil {
		return err
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	return r.db.Save(p).Error
}

// Delete removes the progress of a book. Missing rows are not an error.
func (r *Repository) Delete(bookID uint) error {
	return r.db.Where("book_id = ?", bookID).Delete(&entities.ReadingProgress{}).Error
}
