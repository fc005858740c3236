package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/settingsstore"
)

func TestWarmCommand_ParseFlags(t *testing.T) {
	cmd := NewWarmCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", "lib.db", "-library", "/books", "-concurrency", "2"}))

	assert.Equal(t, "lib.db", cmd.DatabasePath)
	assert.Equal(t, "/books", cmd.LibraryDir)
	assert.Equal(t, 2, cmd.Concurrency)

	err := NewWarmCommand().ParseFlags([]string{"-concurrency", "0"})
	assert.Error(t, err)
}

func TestWarmCommand_Run(t *testing.T) {
	clearPaginationEnv(t)
	t.Setenv("PAGINATION_WARM_ENABLED", "")
	t.Setenv("PAGINATION_WARM_SCHEDULE", "")

	dir := t.TempDir()
	library := filepath.Join(dir, "library")
	require.NoError(t, os.MkdirAll(filepath.Join(library, "folder.txt"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(library, "story.txt"), []byte(sampleText()), 0o644))
	dbPath := filepath.Join(dir, "bookshelf.db")

	db, err := database.NewQuietDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.CreateBook(&entities.Book{Title: "Story", EbookPath: "story.txt"}))
	require.NoError(t, db.CreateBook(&entities.Book{Title: "Folder", EbookPath: "folder.txt"}))
	require.NoError(t, db.CreateBook(&entities.Book{Title: "Gone", EbookPath: "gone.txt"}))
	require.NoError(t, db.CreateBook(&entities.Book{Title: "Paper only"}))
	require.NoError(t, db.Close())

	var out bytes.Buffer
	cmd := &WarmCommand{DatabasePath: dbPath, LibraryDir: library, Concurrency: 2, Out: &out}

	require.NoError(t, cmd.Run(context.Background()))

	assert.Contains(t, out.String(), "Paginated 1 of 3 books (1 skipped, 1 failed)")
	assert.Contains(t, out.String(), "1 books failed to paginate")

	db, err = database.NewQuietDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()
	status := settingsstore.New(db).GetWarmupStatus()
	assert.Equal(t, "success", status.Status)
	assert.NotNil(t, status.LastRunAt)
}

func TestWarmCommand_RunMissingDatabase(t *testing.T) {
	cmd := &WarmCommand{DatabasePath: filepath.Join(t.TempDir(), "none.db"), Concurrency: 1, Out: &bytes.Buffer{}}

	err := cmd.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database does not exist")
}
