package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/reading"
)

// ReadingController serves the pages of a book and its reading progress.
type ReadingController struct {
	reader Reader
}

func NewReadingController(reader Reader) *ReadingController {
	return &ReadingController{reader: reader}
}

// ContentResponse is a whole book split into pages.
type ContentResponse struct {
	BookID     uint     `json:"book_id"`
	Title      string   `json:"title"`
	TotalPages int      `json:"total_pages"`
	BudgetsKey string   `json:"budgets_key"`
	Pages      []string `json:"pages"`
}

// GetContent handles GET /api/books/:id/content
func (rc *ReadingController) GetContent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := rc.reader.Open(c.Request.Context(), id)
	if err != nil {
		respondReadingError(c, err, "open book")
		return
	}

	pages := session.Pages()
	if pages == nil {
		pages = []string{}
	}
	c.JSON(http.StatusOK, ContentResponse{
		BookID:     session.Book.ID,
		Title:      session.Book.Title,
		TotalPages: session.TotalPages,
		BudgetsKey: session.BudgetsKey,
		Pages:      pages,
	})
}

// GetPage handles GET /api/books/:id/pages?page=N
// Without a page number the reader's current page is returned.
func (rc *ReadingController) GetPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	n, ok := parseQueryInt(c, "page", 0)
	if !ok {
		return
	}

	page, err := rc.reader.Page(c.Request.Context(), id, n)
	if err != nil {
		respondReadingError(c, err, "get page")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetProgress handles GET /api/books/:id/progress
func (rc *ReadingController) GetProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	progress, err := rc.reader.GetProgress(c.Request.Context(), id)
	if err != nil {
		respondReadingError(c, err, "get progress")
		return
	}

	c.JSON(http.StatusOK, progress)
}

// UpdateProgress handles PUT /api/books/:id/progress
// Only the fields present in the body change.
func (rc *ReadingController) UpdateProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var update reading.ProgressUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	progress, err := rc.reader.SaveProgress(c.Request.Context(), id, update)
	if err != nil {
		respondReadingError(c, err, "save progress")
		return
	}

	c.JSON(http.StatusOK, progress)
}
