// Command notectl drives the note store from the shell: schema migrations,
// state assignment and the desktop command bridge.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"juan-note/internal/bridge"
	"juan-note/internal/config"
	"juan-note/internal/logging"
	"juan-note/internal/service"
	"juan-note/internal/storage"
)

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "notectl",
	Short:         "Manage the juan-note store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: DB_PATH or ./data/notes.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level to stderr")
}

// app is everything a subcommand needs, opened against one store.
type app struct {
	db         *storage.DB
	notes      service.NoteService
	dispatcher *bridge.Dispatcher
}

func (a *app) Close() error {
	return a.db.Close()
}

// openApp loads configuration, opens the store and wires the services.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger, _, err := logging.New(logging.Options{Level: level, Format: cfg.LogFormat, Writer: os.Stderr})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	db, err := storage.NewWithOptions(cfg.DBPath, storage.Options{CacheSizeKB: cfg.DBCacheSizeKB})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	notes := service.NewNoteService(storage.NewNoteRepo(db), nil)
	states := service.NewStateService(storage.NewStateRepo(db), nil)
	bulk := service.NewBulkService(storage.NewBulkRepo(db), nil)

	return &app{
		db:    db,
		notes: notes,
		dispatcher: bridge.NewDispatcher(notes, states, bulk, func(ctx context.Context) error {
			return storage.Migrate(ctx, db)
		}),
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
