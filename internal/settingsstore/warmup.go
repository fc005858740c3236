package settingsstore

import (
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// DefaultWarmupSchedule re-paginates the library daily at 03:00.
const DefaultWarmupSchedule = "0 3 * * *"

// WarmupConfig represents the effective configuration of the pagination warm-up
type WarmupConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// WarmupConfigInfo includes source information for each field
type WarmupConfigInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"` // "database", "environment", "default"

	Schedule            string `json:"schedule"`
	ScheduleSource      string `json:"schedule_source"`
	ScheduleDescription string `json:"schedule_description"`
}

// WarmupStatus represents the outcome of the last warm-up run
type WarmupStatus struct {
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	Status    string     `json:"status,omitempty"`  // "success", "failed", ""
	Message   string     `json:"message,omitempty"` // Error message or stats summary
}

// GetWarmupEnabled returns whether the warm-up is enabled (database > env > default)
func (s *SettingsStore) GetWarmupEnabled() bool {
	setting, err := s.db.GetSetting(entities.SettingKeyPaginationWarmEnabled)
	if err == nil && setting.Value != "" {
		return setting.Value == "true" || setting.Value == "1"
	}

	if envVal := os.Getenv("PAGINATION_WARM_ENABLED"); envVal != "" {
		return envVal == "true" || envVal == "1"
	}

	return false
}

// GetWarmupEnabledSource returns the source of the enabled setting
func (s *SettingsStore) GetWarmupEnabledSource() string {
	setting, err := s.db.GetSetting(entities.SettingKeyPaginationWarmEnabled)
	if err == nil && setting.Value != "" {
		return SourceDatabase
	}
	if envVal := os.Getenv("PAGINATION_WARM_ENABLED"); envVal != "" {
		return SourceEnvironment
	}
	return SourceDefault
}

// SetWarmupEnabled saves the enabled setting to database
func (s *SettingsStore) SetWarmupEnabled(enabled bool) error {
	return s.db.SetSetting(entities.SettingKeyPaginationWarmEnabled, strconv.FormatBool(enabled))
}

// GetWarmupSchedule returns the cron schedule (database > env > default)
func (s *SettingsStore) GetWarmupSchedule() string {
	setting, err := s.db.GetSetting(entities.SettingKeyPaginationWarmSchedule)
	if err == nil && setting.Value != "" {
		return setting.Value
	}

	if envVal := os.Getenv("PAGINATION_WARM_SCHEDULE"); envVal != "" {
		return envVal
	}

	return DefaultWarmupSchedule
}

// GetWarmupScheduleSource returns the source of the schedule setting
func (s *SettingsStore) GetWarmupScheduleSource() string {
	setting, err := s.db.GetSetting(entities.SettingKeyPaginationWarmSchedule)
	if err == nil && setting.Value != "" {
		return SourceDatabase
	}
	if envVal := os.Getenv("PAGINATION_WARM_SCHEDULE"); envVal != "" {
		return SourceEnvironment
	}
	return SourceDefault
}

// SetWarmupSchedule validates and saves the schedule to database
func (s *SettingsStore) SetWarmupSchedule(schedule string) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return err
	}
	return s.db.SetSetting(entities.SettingKeyPaginationWarmSchedule, schedule)
}

// GetWarmupConfig returns the effective configuration
func (s *SettingsStore) GetWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Enabled:  s.GetWarmupEnabled(),
		Schedule: s.GetWarmupSchedule(),
	}
}

// GetWarmupConfigInfo returns the configuration with source information
func (s *SettingsStore) GetWarmupConfigInfo() WarmupConfigInfo {
	schedule := s.GetWarmupSchedule()
	return WarmupConfigInfo{
		Enabled:             s.GetWarmupEnabled(),
		EnabledSource:       s.GetWarmupEnabledSource(),
		Schedule:            schedule,
		ScheduleSource:      s.GetWarmupScheduleSource(),
		ScheduleDescription: GetCronDescription(schedule),
	}
}

// GetWarmupStatus returns the status of the last warm-up run
func (s *SettingsStore) GetWarmupStatus() WarmupStatus {
	status := WarmupStatus{}

	if setting, err := s.db.GetSetting(entities.SettingKeyPaginationWarmLastAt); err == nil && setting.Value != "" {
		if ts, err := time.Parse(time.RFC3339, setting.Value); err == nil {
			status.LastRunAt = &ts
		}
	}

	if setting, err := s.db.GetSetting(entities.SettingKeyPaginationWarmLastStatus); err == nil {
		status.Status = setting.Value
	}

	if setting, err := s.db.GetSetting(entities.SettingKeyPaginationWarmLastMessage); err == nil {
		status.Message = setting.Value
	}

	return status
}

// SetWarmupStatus records the outcome of a warm-up run
func (s *SettingsStore) SetWarmupStatus(status, message string) error {
	return s.db.SetSettings(map[string]string{
		entities.SettingKeyPaginationWarmLastAt:      time.Now().UTC().Format(time.RFC3339),
		entities.SettingKeyPaginationWarmLastStatus:  status,
		entities.SettingKeyPaginationWarmLastMessage: message,
	})
}

// ClearWarmupSettings clears all database overrides, reverting to env/default
func (s *SettingsStore) ClearWarmupSettings() error {
	return s.db.DeleteSettings(
		entities.SettingKeyPaginationWarmEnabled,
		entities.SettingKeyPaginationWarmSchedule,
	)
}

// ValidateCronSchedule validates a cron schedule string
func ValidateCronSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	case DefaultWarmupSchedule:
		return "Daily at 03:00"
	case "0 3 * * 0":
		return "Weekly on Sunday at 03:00"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the next warm-up will run based on the schedule
func GetNextRunTime(schedule string) (*time.Time, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}

// NewWarmupConfigFromEnv creates settings from environment config (for use when database not yet ready)
func NewWarmupConfigFromEnv(cfg config.Warmup) WarmupConfig {
	return WarmupConfig{
		Enabled:  cfg.Enabled,
		Schedule: cfg.Schedule,
	}
}
