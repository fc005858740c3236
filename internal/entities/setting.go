package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Pagination budgets
	SettingKeyPaginationWordsPerPage    = "pagination_words_per_page"
	SettingKeyPaginationMinLines        = "pagination_min_lines"
	SettingKeyPaginationMaxLines        = "pagination_max_lines"
	SettingKeyPaginationCharsPerLine    = "pagination_chars_per_line"
	SettingKeyPaginationMeasure         = "pagination_measure"
	SettingKeyPaginationRebalancePasses = "pagination_rebalance_passes"

	// Pagination warm-up job
	SettingKeyPaginationWarmEnabled  = "pagination_warm_enabled"
	SettingKeyPaginationWarmSchedule = "pagination_warm_schedule"

	SettingKeyPaginationWarmLastAt      = "pagination_warm_last_at"
	SettingKeyPaginationWarmLastStatus  = "pagination_warm_last_status"
	SettingKeyPaginationWarmLastMessage = "pagination_warm_last_message"
)
