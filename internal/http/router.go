package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.LibraryDir, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Books API endpoints
	if cfg.BookStore != nil {
		booksController := NewBooksController(cfg.BookStore)
		api.GET("/books", booksController.GetAllBooks)
		api.POST("/books", booksController.CreateBook)
		api.GET("/books/stats", booksController.GetBookStats)
		api.GET("/books/:id", booksController.GetBook)
		api.PUT("/books/:id", booksController.UpdateBook)
		api.DELETE("/books/:id", booksController.DeleteBook)
	}

	// Reading endpoints
	if cfg.Reader != nil {
		readingController := NewReadingController(cfg.Reader)
		api.GET("/books/:id/content", readingController.GetContent)
		api.GET("/books/:id/pages", readingController.GetPage)
		api.GET("/books/:id/progress", readingController.GetProgress)
		api.PUT("/books/:id/progress", readingController.UpdateProgress)

		if cfg.PaginationSettings != nil {
			paginateController := NewPaginateController(cfg.Reader, cfg.PaginationSettings)
			api.POST("/paginate", paginateController.Paginate)
		}
	}

	// Settings endpoints
	if cfg.Reader != nil && cfg.PaginationSettings != nil && cfg.WarmupSettings != nil {
		settingsController := NewSettingsController(cfg.PaginationSettings, cfg.WarmupSettings, cfg.Reader, cfg.WarmupScheduler)
		api.GET("/settings/pagination", settingsController.GetPaginationSettings)
		api.PUT("/settings/pagination", settingsController.UpdatePaginationSettings)
		api.DELETE("/settings/pagination", settingsController.ResetPaginationSettings)
		api.GET("/settings/cache", settingsController.GetCacheStats)
		api.GET("/settings/warmup", settingsController.GetWarmupSettings)
		api.PUT("/settings/warmup", settingsController.UpdateWarmupSettings)
		api.DELETE("/settings/warmup", settingsController.ResetWarmupSettings)
		api.POST("/settings/warmup/run", settingsController.RunWarmup)
	}
	if cfg.WarmupProgress != nil {
		progressController := NewWarmupProgressController(cfg.WarmupProgress)
		api.GET("/settings/warmup/progress", progressController.GetProgress)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
