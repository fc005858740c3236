package http

import (
	"errors"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/content"
	"github.com/mrlokans/bookshelf/internal/reading"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // validation errors and similar context
}

type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Responses ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs err and hides it from the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// readingError is the API form of a failure to open or page through a book.
type readingError struct {
	target  error
	status  int
	code    string
	message string // empty: use the error text
}

// Checked in order; content errors may wrap fs errors.
var readingErrors = []readingError{
	{reading.ErrPageOutOfRange, http.StatusBadRequest, "page_out_of_range", ""},
	{reading.ErrNoContent, http.StatusUnprocessableEntity, "no_content", ""},
	{content.ErrUnsupportedFormat, http.StatusUnprocessableEntity, "unsupported_format", "unsupported ebook format"},
	{content.ErrDRMProtected, http.StatusUnprocessableEntity, "drm_protected", "ebook is DRM protected"},
	{content.ErrTooLarge, http.StatusUnprocessableEntity, "too_large", "ebook file is too large"},
	{content.ErrOutsideLibrary, http.StatusUnprocessableEntity, "invalid_path", "ebook path is outside the library"},
	{fs.ErrNotExist, http.StatusUnprocessableEntity, "missing_file", "ebook file does not exist"},
}

// respondReadingError maps reading and content failures to API errors.
// Unknown books are 404s and anything unrecognized is a 500.
func respondReadingError(c *gin.Context, err error, context string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "book")
		return
	}
	for _, re := range readingErrors {
		if !errors.Is(err, re.target) {
			continue
		}
		message := re.message
		if message == "" {
			message = err.Error()
		}
		respondError(c, re.status, re.code, message)
		return
	}
	respondInternalError(c, err, context)
}

// --- Success Responses ---

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted acknowledges work that continues in the background.
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam parses a positive ID path parameter, answering 400 when it is
// malformed.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseQueryInt parses an optional non-negative query parameter. A missing
// parameter yields def.
func parseQueryInt(c *gin.Context, paramName string, def int) (int, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return n, true
}
