package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/content"
	"github.com/mrlokans/bookshelf/internal/database"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/pagination"
	"github.com/mrlokans/bookshelf/internal/reading"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/settingsstore"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then shut down within the configured timeout.
	// SIGKILL can't be caught, so it is not registered.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	checkLibraryDir(cfg.Library.Dir)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	settingsStore := settingsstore.New(db)
	budgets := settingsStore.GetPaginationBudgetsInfo()
	log.Printf("Pagination budgets: %s (source: %s)", budgets.Key, budgets.Source)

	loader := content.NewLoader(cfg.Library.Dir, cfg.Library.ContentMaxBytes)
	reader := reading.NewService(db, loader, settingsStore, pagination.NewPaginator(cfg.Pagination.CacheSize))
	libraryWarmer := tasks.NewLibraryWarmer(db, reader, db.PaginationSync(), cfg.Tasks.PaginateAllLimit)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:          cfg.Tasks.Workers,
			ReleaseAfter:     cfg.Tasks.ReleaseAfter,
			CleanupInterval:  cfg.Tasks.CleanupInterval,
			PaginateAllLimit: cfg.Tasks.PaginateAllLimit,
		}

		taskClient, err = tasks.NewClient(cfg.Database.TasksPath, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.RegisterPagination(reader, libraryWarmer)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Scheduled warm-up follows the stored settings and can be rescheduled at runtime
	warmScheduler := scheduler.NewPaginationWarmScheduler(settingsStore, libraryWarmer)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := warmScheduler.Start(schedulerCtx); err != nil {
		log.Printf("WARNING: Pagination warmup scheduler not started: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:           db,
		BookStore:          db,
		Reader:             reader,
		PaginationSettings: settingsStore,
		WarmupSettings:     settingsStore,
		WarmupScheduler:    warmScheduler,
		WarmupProgress:     db.PaginationSync(),
		LibraryDir:         cfg.Library.Dir,
		Version:            version,
	}
	// A nil *tasks.Client stored in the interface would not compare equal to nil
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		warmScheduler.Stop()
		schedulerCancel()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

func checkLibraryDir(dir string) {
	if dir == "" {
		log.Printf("WARNING: LIBRARY_DIR is not set. Only books with absolute ebook paths can be read.")
		return
	}
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		log.Printf("WARNING: Library directory %s does not exist", dir)
	case err != nil:
		log.Printf("WARNING: Cannot access library directory %s: %v", dir, err)
	case !info.IsDir():
		log.Printf("WARNING: Library path %s is not a directory", dir)
	default:
		log.Printf("Library directory: %s", dir)
	}
}
