package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/content"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/pagination"
	"github.com/mrlokans/bookshelf/internal/reading"
	"github.com/mrlokans/bookshelf/internal/settingsstore"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// WarmCommand re-paginates the whole library without starting the server.
type WarmCommand struct {
	DatabasePath string
	LibraryDir   string
	MaxBytes     int64
	Concurrency  int

	Out io.Writer
}

func NewWarmCommand() *WarmCommand {
	return &WarmCommand{Out: os.Stdout}
}

func (cmd *WarmCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("warm", flag.ContinueOnError)
	cfg := config.NewConfig()

	fs.StringVar(&cmd.DatabasePath, "db", cfg.Database.Path, "Path to the library database")
	fs.StringVar(&cmd.LibraryDir, "library", cfg.Library.Dir, "Directory relative ebook paths are resolved in")
	fs.Int64Var(&cmd.MaxBytes, "max-bytes", cfg.Library.ContentMaxBytes, "Largest file accepted, in bytes")
	fs.IntVar(&cmd.Concurrency, "concurrency", cfg.Tasks.PaginateAllLimit, "Books paginated at once")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s warm [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Paginate every book with an ebook file and update stored reading positions.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	return nil
}

func (cmd *WarmCommand) Run(ctx context.Context) error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database does not exist: %s", cmd.DatabasePath)
	}

	db, err := database.NewQuietDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	store := settingsstore.New(db)
	budgets := store.GetPaginationBudgets()
	// Every book is paginated once, so nothing is worth caching.
	reader := reading.NewService(db, content.NewLoader(cmd.LibraryDir, cmd.MaxBytes), store, pagination.NewPaginator(1))
	warmer := tasks.NewLibraryWarmer(db, reader, db.PaginationSync(), cmd.Concurrency)

	fmt.Fprintf(cmd.Out, "Paginating library %s with budgets %s\n", cmd.LibraryDir, budgets.Key())

	result, err := warmer.WarmAll(ctx)
	if errors.Is(err, tasks.ErrAlreadyRunning) {
		return err
	}
	if err != nil {
		_ = store.SetWarmupStatus("failed", err.Error())
		return err
	}
	_ = store.SetWarmupStatus("success", result.String())

	fmt.Fprintf(cmd.Out, "%s\n", result)
	if result.Failed > 0 {
		fmt.Fprintf(cmd.Out, "%d books failed to paginate (see log above)\n", result.Failed)
	}
	return nil
}
