package settingsstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestWarmupEnabled(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)

	assert.False(t, store.GetWarmupEnabled())
	assert.Equal(t, SourceDefault, store.GetWarmupEnabledSource())

	require.NoError(t, store.SetWarmupEnabled(true))
	assert.True(t, store.GetWarmupEnabled())
	assert.Equal(t, SourceDatabase, store.GetWarmupEnabledSource())

	require.NoError(t, db.DeleteSetting(entities.SettingKeyPaginationWarmEnabled))
	assert.False(t, store.GetWarmupEnabled())
}

func TestWarmupEnabledWithEnv(t *testing.T) {
	store := New(setupTestDB(t))
	t.Setenv("PAGINATION_WARM_ENABLED", "true")

	assert.True(t, store.GetWarmupEnabled())
	assert.Equal(t, SourceEnvironment, store.GetWarmupEnabledSource())

	require.NoError(t, store.SetWarmupEnabled(false))
	assert.False(t, store.GetWarmupEnabled())
	assert.Equal(t, SourceDatabase, store.GetWarmupEnabledSource())
}

func TestWarmupSchedule(t *testing.T) {
	store := New(setupTestDB(t))

	assert.Equal(t, DefaultWarmupSchedule, store.GetWarmupSchedule())
	assert.Equal(t, SourceDefault, store.GetWarmupScheduleSource())

	t.Setenv("PAGINATION_WARM_SCHEDULE", "0 */6 * * *")
	assert.Equal(t, "0 */6 * * *", store.GetWarmupSchedule())
	assert.Equal(t, SourceEnvironment, store.GetWarmupScheduleSource())

	require.NoError(t, store.SetWarmupSchedule("30 2 * * *"))
	assert.Equal(t, "30 2 * * *", store.GetWarmupSchedule())
	assert.Equal(t, SourceDatabase, store.GetWarmupScheduleSource())

	assert.Error(t, store.SetWarmupSchedule("whenever"))
	assert.Equal(t, "30 2 * * *", store.GetWarmupSchedule())
}

func TestWarmupConfigInfo(t *testing.T) {
	store := New(setupTestDB(t))

	info := store.GetWarmupConfigInfo()
	assert.False(t, info.Enabled)
	assert.Equal(t, DefaultWarmupSchedule, info.Schedule)
	assert.Equal(t, "Daily at 03:00", info.ScheduleDescription)

	cfg := store.GetWarmupConfig()
	assert.Equal(t, WarmupConfig{Enabled: false, Schedule: DefaultWarmupSchedule}, cfg)
}

func TestWarmupStatus(t *testing.T) {
	store := New(setupTestDB(t))

	assert.Equal(t, WarmupStatus{}, store.GetWarmupStatus())

	before := time.Now().Add(-time.Second)
	require.NoError(t, store.SetWarmupStatus("success", "paginated 3 books"))

	status := store.GetWarmupStatus()
	assert.Equal(t, "success", status.Status)
	assert.Equal(t, "paginated 3 books", status.Message)
	require.NotNil(t, status.LastRunAt)
	assert.True(t, status.LastRunAt.After(before))
}

func TestClearWarmupSettings(t *testing.T) {
	store := New(setupTestDB(t))
	require.NoError(t, store.SetWarmupEnabled(true))
	require.NoError(t, store.SetWarmupSchedule("0 0 * * *"))

	require.NoError(t, store.ClearWarmupSettings())

	assert.Equal(t, SourceDefault, store.GetWarmupEnabledSource())
	assert.Equal(t, SourceDefault, store.GetWarmupScheduleSource())
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("0 3 * *"))
	assert.Error(t, ValidateCronSchedule("not a schedule"))
}

func TestGetNextRunTime(t *testing.T) {
	next, err := GetNextRunTime("0 * * * *")
	require.NoError(t, err)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 0, next.Minute())

	_, err = GetNextRunTime("bad")
	assert.Error(t, err)
}

func TestNewWarmupConfigFromEnv(t *testing.T) {
	cfg := NewWarmupConfigFromEnv(config.Warmup{Enabled: true, Schedule: "0 1 * * *"})
	assert.Equal(t, WarmupConfig{Enabled: true, Schedule: "0 1 * * *"}, cfg)
}
