package http

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/content"
	"github.com/mrlokans/bookshelf/internal/reading"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestParseIDParam_Negative(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseIDParam_Zero(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "0"}}

	_, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseQueryInt(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected int
		ok       bool
	}{
		{"missing uses default", "/", 7, true},
		{"valid", "/?page=3", 3, true},
		{"zero", "/?page=0", 0, true},
		{"negative", "/?page=-2", 0, false},
		{"not a number", "/?page=two", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", tt.url, nil)

			n, ok := parseQueryInt(c, "page", 7)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, n)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), "invalid page")
			}
		})
	}
}

func TestRespondHelpers(t *testing.T) {
	tests := []struct {
		name   string
		call   func(c *gin.Context)
		status int
		body   string
	}{
		{"not found", func(c *gin.Context) { respondNotFound(c, "book") }, http.StatusNotFound, `"error":"book not found"`},
		{"internal error hides cause", func(c *gin.Context) { respondInternalError(c, errors.New("disk on fire"), "test") }, http.StatusInternalServerError, `"error":"internal server error"`},
		{"error with code", func(c *gin.Context) { respondError(c, http.StatusUnprocessableEntity, "no_content", "nothing to read") }, http.StatusUnprocessableEntity, `"code":"no_content"`},
		{"success", func(c *gin.Context) { respondSuccess(c, "done") }, http.StatusOK, `"message":"done"`},
		{"created", func(c *gin.Context) { respondCreated(c, gin.H{"id": 1}) }, http.StatusCreated, `"id":1`},
		{"accepted", func(c *gin.Context) { respondAccepted(c, "queued", gin.H{"task_id": "abc"}) }, http.StatusAccepted, `"task_id":"abc"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.call(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}

func TestRespondReadingError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unknown book", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound, ""},
		{"page out of range", fmt.Errorf("page 9: %w", reading.ErrPageOutOfRange), http.StatusBadRequest, "page_out_of_range"},
		{"no content", reading.ErrNoContent, http.StatusUnprocessableEntity, "no_content"},
		{"unsupported format", fmt.Errorf("load book 1: %w", content.ErrUnsupportedFormat), http.StatusUnprocessableEntity, "unsupported_format"},
		{"drm", content.ErrDRMProtected, http.StatusUnprocessableEntity, "drm_protected"},
		{"too large", content.ErrTooLarge, http.StatusUnprocessableEntity, "too_large"},
		{"outside library", content.ErrOutsideLibrary, http.StatusUnprocessableEntity, "invalid_path"},
		{"missing file", fmt.Errorf("stat ebook: %w", fs.ErrNotExist), http.StatusUnprocessableEntity, "missing_file"},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondReadingError(c, tt.err, "test")

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				assert.Contains(t, w.Body.String(), `"code":"`+tt.code+`"`)
			}
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}
