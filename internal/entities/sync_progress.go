package entities

import (
	"time"
)

// SyncType identifies a long-running batch job whose progress is tracked.
type SyncType string

const (
	SyncTypePagination SyncType = "pagination"
)

type SyncStatus string

const (
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncOutcome is the result of processing one item of a batch job.
type SyncOutcome string

const (
	SyncOutcomeSucceeded SyncOutcome = "succeeded"
	SyncOutcomeFailed    SyncOutcome = "failed"
	SyncOutcomeSkipped   SyncOutcome = "skipped"
)

type SyncProgress struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SyncType    SyncType   `gorm:"size:50;uniqueIndex" json:"sync_type"`
	Status      SyncStatus `gorm:"size:20" json:"status"`
	TotalItems  int        `json:"total_items"`
	Processed   int        `json:"processed"`
	Succeeded   int        `json:"succeeded"`
	Failed      int        `json:"failed"`
	Skipped     int        `json:"skipped"`
	CurrentItem string     `gorm:"size:512" json:"current_item,omitempty"`
	Error       string     `gorm:"type:text" json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (SyncProgress) TableName() string {
	return "sync_progress"
}

// Done reports whether the job is no longer running.
func (p *SyncProgress) Done() bool {
	return p.Status != SyncStatusRunning
}
