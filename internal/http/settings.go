package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/settingsstore"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// SettingsController manages pagination and warm-up settings.
type SettingsController struct {
	pagination PaginationSettingsStore
	warmup     WarmupSettingsStore
	reader     Reader
	scheduler  WarmupScheduler // nil when the scheduler is not running
}

func NewSettingsController(pagination PaginationSettingsStore, warmup WarmupSettingsStore, reader Reader, scheduler WarmupScheduler) *SettingsController {
	return &SettingsController{
		pagination: pagination,
		warmup:     warmup,
		reader:     reader,
		scheduler:  scheduler,
	}
}

// GetPaginationSettings handles GET /api/settings/pagination
func (sc *SettingsController) GetPaginationSettings(c *gin.Context) {
	c.JSON(http.StatusOK, sc.pagination.GetPaginationBudgetsInfo())
}

// UpdatePaginationSettings handles PUT /api/settings/pagination
// Fields missing from the body keep their effective value. Every field is
// stored, so the result no longer depends on the environment.
func (sc *SettingsController) UpdatePaginationSettings(c *gin.Context) {
	var override BudgetsOverride
	if err := c.ShouldBindJSON(&override); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	budgets := override.apply(sc.pagination.GetPaginationBudgets())
	if err := settingsstore.ValidatePaginationBudgets(budgets); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := sc.pagination.SetPaginationBudgets(budgets); err != nil {
		respondInternalError(c, err, "save pagination settings")
		return
	}
	sc.reader.InvalidateCache()

	c.JSON(http.StatusOK, sc.pagination.GetPaginationBudgetsInfo())
}

// ResetPaginationSettings handles DELETE /api/settings/pagination
func (sc *SettingsController) ResetPaginationSettings(c *gin.Context) {
	if err := sc.pagination.ClearPaginationBudgets(); err != nil {
		respondInternalError(c, err, "reset pagination settings")
		return
	}
	sc.reader.InvalidateCache()

	c.JSON(http.StatusOK, sc.pagination.GetPaginationBudgetsInfo())
}

// GetCacheStats handles GET /api/settings/cache
func (sc *SettingsController) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, sc.reader.CacheStats())
}

// WarmupSettingsResponse is the warm-up configuration with its runtime state.
type WarmupSettingsResponse struct {
	settingsstore.WarmupConfigInfo
	LastRun          settingsstore.WarmupStatus `json:"last_run"`
	SchedulerRunning bool                       `json:"scheduler_running"`
	InProgress       bool                       `json:"in_progress"`
	NextRun          *time.Time                 `json:"next_run,omitempty"`
}

func (sc *SettingsController) warmupResponse() WarmupSettingsResponse {
	resp := WarmupSettingsResponse{
		WarmupConfigInfo: sc.warmup.GetWarmupConfigInfo(),
		LastRun:          sc.warmup.GetWarmupStatus(),
	}
	if sc.scheduler != nil {
		resp.SchedulerRunning = sc.scheduler.IsRunning()
		resp.InProgress = sc.scheduler.IsWarming()
		resp.NextRun = sc.scheduler.NextRun()
	}
	return resp
}

// GetWarmupSettings handles GET /api/settings/warmup
func (sc *SettingsController) GetWarmupSettings(c *gin.Context) {
	c.JSON(http.StatusOK, sc.warmupResponse())
}

// WarmupSettingsRequest is the body of PUT /api/settings/warmup.
type WarmupSettingsRequest struct {
	Enabled  *bool   `json:"enabled"`
	Schedule *string `json:"schedule"`
}

// UpdateWarmupSettings handles PUT /api/settings/warmup
func (sc *SettingsController) UpdateWarmupSettings(c *gin.Context) {
	var req WarmupSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Schedule != nil {
		if err := settingsstore.ValidateCronSchedule(*req.Schedule); err != nil {
			respondBadRequest(c, "invalid schedule: "+err.Error())
			return
		}
		if err := sc.warmup.SetWarmupSchedule(*req.Schedule); err != nil {
			respondInternalError(c, err, "save warmup schedule")
			return
		}
	}
	if req.Enabled != nil {
		if err := sc.warmup.SetWarmupEnabled(*req.Enabled); err != nil {
			respondInternalError(c, err, "save warmup enabled")
			return
		}
	}

	sc.reschedule()
	c.JSON(http.StatusOK, sc.warmupResponse())
}

// ResetWarmupSettings handles DELETE /api/settings/warmup
func (sc *SettingsController) ResetWarmupSettings(c *gin.Context) {
	if err := sc.warmup.ClearWarmupSettings(); err != nil {
		respondInternalError(c, err, "reset warmup settings")
		return
	}

	sc.reschedule()
	c.JSON(http.StatusOK, sc.warmupResponse())
}

// RunWarmup handles POST /api/settings/warmup/run
func (sc *SettingsController) RunWarmup(c *gin.Context) {
	if sc.scheduler == nil {
		respondError(c, http.StatusServiceUnavailable, "scheduler_unavailable", "warmup scheduler is not configured")
		return
	}

	err := sc.scheduler.RunNow()
	if errors.Is(err, tasks.ErrAlreadyRunning) {
		respondError(c, http.StatusConflict, "already_running", err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "run warmup")
		return
	}

	respondAccepted(c, "warmup started", nil)
}

func (sc *SettingsController) reschedule() {
	if sc.scheduler == nil {
		return
	}
	if err := sc.scheduler.Reschedule(); err != nil {
		log.Printf("Failed to reschedule pagination warmup: %v", err)
	}
}

// WarmupProgressController reports how far the current or last warm-up got.
type WarmupProgressController struct {
	source WarmupProgressSource
}

func NewWarmupProgressController(source WarmupProgressSource) *WarmupProgressController {
	return &WarmupProgressController{source: source}
}

// GetProgress handles GET /api/settings/warmup/progress
func (pc *WarmupProgressController) GetProgress(c *gin.Context) {
	progress, err := pc.source.GetSyncProgress()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "warmup progress")
		return
	}
	if err != nil {
		respondInternalError(c, err, "warmup progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"progress": progress,
		"done":     progress.Done(),
	})
}
