package entities

import (
	"time"

	"gorm.io/gorm"
)

type BookStatus string

const (
	BookStatusToRead  BookStatus = "to_read"
	BookStatusReading BookStatus = "reading"
	BookStatusRead    BookStatus = "read"
)

// Valid reports whether s is one of the known statuses.
func (s BookStatus) Valid() bool {
	switch s {
	case BookStatusToRead, BookStatusReading, BookStatusRead:
		return true
	}
	return false
}

type Book struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"index;size:512" json:"title"`
	Author      string     `gorm:"index;size:256" json:"author"`
	CoverURL    string     `gorm:"size:2048" json:"cover_url,omitempty"`
	ISBN        string     `gorm:"index;size:20" json:"isbn,omitempty"`
	Publisher   string     `gorm:"size:256" json:"publisher,omitempty"`
	PublishYear int        `json:"publish_year,omitempty"`
	Pages       int        `json:"pages,omitempty"` // printed page count, unrelated to reader pages
	Language    string     `gorm:"size:16" json:"language,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Status      BookStatus `gorm:"index;size:20;default:'to_read'" json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	FinishDate  *time.Time `json:"finish_date,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`

	// Ebook content. EbookPath is relative to the library directory unless absolute.
	EbookURL    string `gorm:"size:2048" json:"ebook_url,omitempty"`
	EbookPath   string `gorm:"size:1024" json:"ebook_path,omitempty"`
	EbookFormat string `gorm:"size:16" json:"ebook_format,omitempty"` // txt, md, html, epub, pdf, docx

	AudiobookURL    string `gorm:"size:2048" json:"audiobook_url,omitempty"`
	AudiobookPath   string `gorm:"size:1024" json:"audiobook_path,omitempty"`
	AudiobookFormat string `gorm:"size:16" json:"audiobook_format,omitempty"`

	ReadingProgress *ReadingProgress `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"reading_progress,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// HasEbook reports whether the book has readable content attached.
func (b *Book) HasEbook() bool {
	return b.EbookPath != ""
}

func (Book) TableName() string {
	return "books"
}

// ReadingProgress is the stored reading position of a book. CurrentPage is a
// 1-based page of the pagination identified by PaginationKey.
type ReadingProgress struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	BookID             uint      `gorm:"uniqueIndex" json:"book_id"`
	CurrentPage        int       `json:"current_page"`
	TotalPages         int       `json:"total_pages"`
	CurrentChapter     string    `gorm:"size:256" json:"current_chapter,omitempty"`
	AudiobookPosition  int       `json:"audiobook_position,omitempty"` // seconds
	ScrollPosition     float64   `json:"scroll_position"`
	ProgressPercentage float64   `json:"progress_percentage"`
	PaginationKey      string    `gorm:"size:128" json:"pagination_key,omitempty"`
	LastReadDate       time.Time `json:"last_read_date"`
	Notes              string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}
