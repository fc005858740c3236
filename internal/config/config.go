package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/mrlokans/bookshelf/internal/pagination"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Library
		Pagination
		Tasks
		Warmup
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path      string
		TasksPath string // backlite queue database
	}
	Library struct {
		Dir             string // base for relative ebook paths
		ContentMaxBytes int64
	}
	Pagination struct {
		WordsPerPage    int
		MinLinesPerPage int
		MaxLinesPerPage int
		CharsPerLine    int
		Measure         string // "runes" or "cells"
		RebalancePasses int
		CacheSize       int // paginated books kept in memory
	}
	Tasks struct {
		Enabled          bool
		Workers          int
		ReleaseAfter     time.Duration
		CleanupInterval  time.Duration
		PaginateAllLimit int // books paginated concurrently by paginate_all
	}
	Warmup struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

// Budgets converts the environment pagination settings into engine budgets.
// The result is normalized.
func (p Pagination) Budgets() pagination.Budgets {
	return pagination.Budgets{
		WordsPerPage:    p.WordsPerPage,
		MinLinesPerPage: p.MinLinesPerPage,
		MaxLinesPerPage: p.MaxLinesPerPage,
		CharsPerLine:    p.CharsPerLine,
		Measure:         pagination.ParseMeasure(p.Measure),
		RebalancePasses: p.RebalancePasses,
	}.Normalize()
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)
	v.SetDefault("library_dir", DefaultLibraryDir)
	v.SetDefault("content_max_bytes", DefaultContentMaxBytes)

	// Pagination defaults
	v.SetDefault("pagination_words_per_page", pagination.DefaultWordsPerPage)
	v.SetDefault("pagination_min_lines", pagination.DefaultMinLinesPerPage)
	v.SetDefault("pagination_max_lines", pagination.DefaultMaxLinesPerPage)
	v.SetDefault("pagination_chars_per_line", pagination.DefaultCharsPerLine)
	v.SetDefault("pagination_measure", string(pagination.MeasureRunes))
	v.SetDefault("pagination_rebalance_passes", pagination.DefaultRebalancePasses)
	v.SetDefault("pagination_cache_size", pagination.DefaultCacheSize)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("paginate_all_concurrency", 4)

	// Warm-up defaults
	v.SetDefault("pagination_warm_enabled", false)
	v.SetDefault("pagination_warm_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:      v.GetString("DATABASE_PATH"),
			TasksPath: v.GetString("TASKS_DATABASE_PATH"),
		},
		Library: Library{
			Dir:             v.GetString("LIBRARY_DIR"),
			ContentMaxBytes: v.GetInt64("CONTENT_MAX_BYTES"),
		},
		Pagination: Pagination{
			WordsPerPage:    v.GetInt("PAGINATION_WORDS_PER_PAGE"),
			MinLinesPerPage: v.GetInt("PAGINATION_MIN_LINES"),
			MaxLinesPerPage: v.GetInt("PAGINATION_MAX_LINES"),
			CharsPerLine:    v.GetInt("PAGINATION_CHARS_PER_LINE"),
			Measure:         v.GetString("PAGINATION_MEASURE"),
			RebalancePasses: v.GetInt("PAGINATION_REBALANCE_PASSES"),
			CacheSize:       v.GetInt("PAGINATION_CACHE_SIZE"),
		},
		Tasks: Tasks{
			Enabled:          v.GetBool("TASKS_ENABLED"),
			Workers:          v.GetInt("TASK_WORKERS"),
			ReleaseAfter:     v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:  v.GetDuration("TASK_CLEANUP_INTERVAL"),
			PaginateAllLimit: v.GetInt("PAGINATE_ALL_CONCURRENCY"),
		},
		Warmup: Warmup{
			Enabled:  v.GetBool("PAGINATION_WARM_ENABLED"),
			Schedule: v.GetString("PAGINATION_WARM_SCHEDULE"),
		},
	}
}
