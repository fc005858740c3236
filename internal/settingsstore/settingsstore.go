package settingsstore

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/pagination"
)

const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
	SourceDefault     = "default"
)

// Priority: database > environment > default
type SettingsStore struct {
	db *database.Database
}

func New(db *database.Database) *SettingsStore {
	return &SettingsStore{db: db}
}

// budgetField binds one Budgets field to its setting key and env variable.
type budgetField struct {
	name       string
	settingKey string
	envKey     string
}

var budgetFields = []budgetField{
	{"words_per_page", entities.SettingKeyPaginationWordsPerPage, "PAGINATION_WORDS_PER_PAGE"},
	{"min_lines_per_page", entities.SettingKeyPaginationMinLines, "PAGINATION_MIN_LINES"},
	{"max_lines_per_page", entities.SettingKeyPaginationMaxLines, "PAGINATION_MAX_LINES"},
	{"chars_per_line", entities.SettingKeyPaginationCharsPerLine, "PAGINATION_CHARS_PER_LINE"},
	{"measure", entities.SettingKeyPaginationMeasure, "PAGINATION_MEASURE"},
	{"rebalance_passes", entities.SettingKeyPaginationRebalancePasses, "PAGINATION_REBALANCE_PASSES"},
}

func budgetSettingKeys() []string {
	keys := make([]string, len(budgetFields))
	for i, f := range budgetFields {
		keys[i] = f.settingKey
	}
	return keys
}

// PaginationBudgetsInfo includes source information for each field
type PaginationBudgetsInfo struct {
	Budgets pagination.Budgets `json:"budgets"`
	Key     string             `json:"key"`
	Source  string             `json:"source"`  // highest-priority source of any field
	Sources map[string]string  `json:"sources"` // per field: "database", "environment", "default"
}

// GetPaginationBudgets returns the effective, normalized budgets.
func (s *SettingsStore) GetPaginationBudgets() pagination.Budgets {
	return s.GetPaginationBudgetsInfo().Budgets
}

// GetPaginationBudgetsSource returns "database" when any field is overridden in
// the database, "environment" when any comes from the environment, else "default".
func (s *SettingsStore) GetPaginationBudgetsSource() string {
	return s.GetPaginationBudgetsInfo().Source
}

// GetPaginationBudgetsInfo resolves every budget field (database > env > default).
func (s *SettingsStore) GetPaginationBudgetsInfo() PaginationBudgetsInfo {
	stored, err := s.db.GetSettings(budgetSettingKeys()...)
	if err != nil {
		stored = map[string]string{}
	}

	raw := make(map[string]string, len(budgetFields))
	sources := make(map[string]string, len(budgetFields))
	for _, f := range budgetFields {
		if v := strings.TrimSpace(stored[f.settingKey]); v != "" {
			raw[f.name], sources[f.name] = v, SourceDatabase
		} else if v := strings.TrimSpace(os.Getenv(f.envKey)); v != "" {
			raw[f.name], sources[f.name] = v, SourceEnvironment
		} else {
			sources[f.name] = SourceDefault
		}
	}

	defaults := pagination.DefaultBudgets()
	budgets := pagination.Budgets{
		WordsPerPage:    intOr(raw["words_per_page"], defaults.WordsPerPage),
		MinLinesPerPage: intOr(raw["min_lines_per_page"], defaults.MinLinesPerPage),
		MaxLinesPerPage: intOr(raw["max_lines_per_page"], defaults.MaxLinesPerPage),
		CharsPerLine:    intOr(raw["chars_per_line"], defaults.CharsPerLine),
		Measure:         pagination.ParseMeasure(raw["measure"]),
		RebalancePasses: intOr(raw["rebalance_passes"], defaults.RebalancePasses),
	}.Normalize()

	source := SourceDefault
	for _, src := range sources {
		if src == SourceDatabase {
			source = SourceDatabase
			break
		}
		if src == SourceEnvironment {
			source = SourceEnvironment
		}
	}

	return PaginationBudgetsInfo{
		Budgets: budgets,
		Key:     budgets.Key(),
		Source:  source,
		Sources: sources,
	}
}

// SetPaginationBudgets validates b and stores every field in the database.
func (s *SettingsStore) SetPaginationBudgets(b pagination.Budgets) error {
	if err := ValidatePaginationBudgets(b); err != nil {
		return err
	}
	return s.db.SetSettings(map[string]string{
		entities.SettingKeyPaginationWordsPerPage:    strconv.Itoa(b.WordsPerPage),
		entities.SettingKeyPaginationMinLines:        strconv.Itoa(b.MinLinesPerPage),
		entities.SettingKeyPaginationMaxLines:        strconv.Itoa(b.MaxLinesPerPage),
		entities.SettingKeyPaginationCharsPerLine:    strconv.Itoa(b.CharsPerLine),
		entities.SettingKeyPaginationMeasure:         string(b.Measure),
		entities.SettingKeyPaginationRebalancePasses: strconv.Itoa(b.RebalancePasses),
	})
}

// ClearPaginationBudgets drops database overrides, reverting to env/default.
func (s *SettingsStore) ClearPaginationBudgets() error {
	return s.db.DeleteSettings(budgetSettingKeys()...)
}

// ValidatePaginationBudgets rejects budgets a user would not mean to save.
// Zero fields are rejected too: stored settings are always explicit.
func ValidatePaginationBudgets(b pagination.Budgets) error {
	switch {
	case b.WordsPerPage <= 0:
		return fmt.Errorf("words_per_page must be positive")
	case b.MinLinesPerPage <= 0:
		return fmt.Errorf("min_lines_per_page must be positive")
	case b.MaxLinesPerPage <= 0:
		return fmt.Errorf("max_lines_per_page must be positive")
	case b.MinLinesPerPage > b.MaxLinesPerPage:
		return fmt.Errorf("min_lines_per_page (%d) exceeds max_lines_per_page (%d)", b.MinLinesPerPage, b.MaxLinesPerPage)
	case b.CharsPerLine <= 0:
		return fmt.Errorf("chars_per_line must be positive")
	case b.Measure != pagination.MeasureRunes && b.Measure != pagination.MeasureCells:
		return fmt.Errorf("measure must be %q or %q", pagination.MeasureRunes, pagination.MeasureCells)
	case b.RebalancePasses <= 0:
		return fmt.Errorf("rebalance_passes must be positive")
	}
	return nil
}

func intOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
