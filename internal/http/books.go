package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/content"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// BookRequest is the body of book create and update requests.
type BookRequest struct {
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	CoverURL    string     `json:"cover_url"`
	ISBN        string     `json:"isbn"`
	Publisher   string     `json:"publisher"`
	PublishYear int        `json:"publish_year"`
	Pages       int        `json:"pages"`
	Language    string     `json:"language"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	FinishDate  *time.Time `json:"finish_date"`
	Notes       string     `json:"notes"`

	EbookURL    string `json:"ebook_url"`
	EbookPath   string `json:"ebook_path"`
	EbookFormat string `json:"ebook_format"`

	AudiobookURL    string `json:"audiobook_url"`
	AudiobookPath   string `json:"audiobook_path"`
	AudiobookFormat string `json:"audiobook_format"`
}

func (r *BookRequest) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if r.Status != "" && !entities.BookStatus(r.Status).Valid() {
		return errors.New("invalid status")
	}
	if r.EbookFormat != "" {
		if _, err := content.ParseFormat(r.EbookFormat); err != nil {
			return errors.New("unsupported ebook_format")
		}
	}
	return nil
}

func (r *BookRequest) apply(book *entities.Book) {
	book.Title = strings.TrimSpace(r.Title)
	book.Author = strings.TrimSpace(r.Author)
	book.CoverURL = r.CoverURL
	book.ISBN = r.ISBN
	book.Publisher = r.Publisher
	book.PublishYear = r.PublishYear
	book.Pages = r.Pages
	book.Language = r.Language
	book.Description = r.Description
	if r.Status != "" {
		book.Status = entities.BookStatus(r.Status)
	}
	book.StartDate = r.StartDate
	book.FinishDate = r.FinishDate
	book.Notes = r.Notes
	book.EbookURL = r.EbookURL
	book.EbookPath = r.EbookPath
	book.EbookFormat = strings.ToLower(r.EbookFormat)
	book.AudiobookURL = r.AudiobookURL
	book.AudiobookPath = r.AudiobookPath
	book.AudiobookFormat = r.AudiobookFormat
}

// GetAllBooks handles GET /api/books?status=&q=&with_ebook=
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	filter := books.Filter{
		Status:    entities.BookStatus(c.Query("status")),
		Query:     c.Query("q"),
		WithEbook: c.Query("with_ebook") == "true",
	}
	if filter.Status != "" && !filter.Status.Valid() {
		respondBadRequest(c, "invalid status")
		return
	}

	list, err := bc.store.ListBooks(filter)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"books": list,
		"count": len(list),
	})
}

// GetBook handles GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}

	c.IndentedJSON(http.StatusOK, book)
}

// CreateBook handles POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var book entities.Book
	req.apply(&book)
	if err := bc.store.CreateBook(&book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	respondCreated(c, book)
}

// UpdateBook handles PUT /api/books/:id
// The request replaces the book's fields; an empty status keeps the current one.
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book, err := bc.store.GetBookByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}

	req.apply(book)
	if err := bc.store.UpdateBook(book); err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	c.IndentedJSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := bc.store.DeleteBook(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	respondSuccess(c, "book deleted")
}

// GetBookStats handles GET /api/books/stats
func (bc *BooksController) GetBookStats(c *gin.Context) {
	stats, err := bc.store.GetBookStats()
	if err != nil {
		respondInternalError(c, err, "book stats")
		return
	}

	c.IndentedJSON(http.StatusOK, stats)
}
