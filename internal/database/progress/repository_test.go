package progress

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	dbPath := filepath.Join(t.TempDir(), "progress.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{}, &entities.ReadingProgress{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func TestRepository_Get_Missing(t *testing.T) {
	repo := setupTestDB(t)

	p, err := repo.Get(42)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestRepository_Upsert_Insert(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Upsert(&entities.ReadingProgress{
		BookID:             1,
		CurrentPage:        3,
		TotalPages:         10,
		ProgressPercentage: 30,
		PaginationKey:      "w150-min8-max18-cpl60-runes-p1",
	})
	require.NoError(t, err)

	p, err := repo.Get(1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 10, p.TotalPages)
	assert.Equal(t, 30.0, p.ProgressPercentage)
	assert.Equal(t, "w150-min8-max18-cpl60-runes-p1", p.PaginationKey)
	assert.False(t, p.LastReadDate.IsZero())
}

func TestRepository_Upsert_Replace(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Upsert(&entities.ReadingProgress{BookID: 1, CurrentPage: 1, TotalPages: 10}))
	require.NoError(t, repo.Upsert(&entities.ReadingProgress{BookID: 1, CurrentPage: 7, TotalPages: 12, Notes: "good part"}))

	p, err := repo.Get(1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 7, p.CurrentPage)
	assert.Equal(t, 12, p.TotalPages)
	assert.Equal(t, "good part", p.Notes)

	var count int64
	require.NoError(t, repo.db.Model(&entities.ReadingProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Upsert(&entities.ReadingProgress{BookID: 5, CurrentPage: 2}))
	require.NoError(t, repo.Delete(5))

	p, err := repo.Get(5)
	require.NoError(t, err)
	assert.Nil(t, p)

	assert.NoError(t, repo.Delete(5))
}
