package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/content"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/pagination"
	"github.com/mrlokans/bookshelf/internal/reading"
	"github.com/mrlokans/bookshelf/internal/settingsstore"
)

// testEnv is the full API stack on a temporary database and library.
type testEnv struct {
	db       *database.Database
	settings *settingsstore.SettingsStore
	reader   *reading.Service
	library  string
	router   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	for _, key := range []string{
		"PAGINATION_WORDS_PER_PAGE", "PAGINATION_MIN_LINES", "PAGINATION_MAX_LINES",
		"PAGINATION_CHARS_PER_LINE", "PAGINATION_MEASURE", "PAGINATION_REBALANCE_PASSES",
		"PAGINATION_WARM_ENABLED", "PAGINATION_WARM_SCHEDULE",
	} {
		t.Setenv(key, "")
	}

	db, err := database.NewQuietDatabase(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	library := t.TempDir()
	settings := settingsstore.New(db)
	reader := reading.NewService(db, content.NewLoader(library, 0), settings, pagination.NewPaginator(8))

	env := &testEnv{
		db:       db,
		settings: settings,
		reader:   reader,
		library:  library,
	}
	env.router = NewRouter(RouterConfig{
		Database:           db,
		BookStore:          db,
		Reader:             reader,
		PaginationSettings: settings,
		WarmupSettings:     settings,
		WarmupProgress:     db.PaginationSync(),
		LibraryDir:         library,
		Version:            "test",
	})
	return env
}

// addBook stores text as a file in the library and catalogues it.
func (e *testEnv) addBook(t *testing.T, name, text string) *entities.Book {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.library, name), []byte(text), 0o644))
	book := &entities.Book{Title: name, Author: "Tester", EbookPath: name}
	require.NoError(t, e.db.CreateBook(book))
	return book
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// longText has enough paragraphs to span several pages under the default budgets.
func longText() string {
	var paragraphs []string
	for i := 1; i <= 30; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"Paragraph %d walks through a long and deliberately wordy sentence so that the page fills up quickly.", i))
	}
	return strings.Join(paragraphs, "\n\n")
}
