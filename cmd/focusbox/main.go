package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/focusbox/internal/aggregate"
	"github.com/alexanderramin/focusbox/internal/cli"
	"github.com/alexanderramin/focusbox/internal/clock"
	"github.com/alexanderramin/focusbox/internal/config"
	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/effects"
	"github.com/alexanderramin/focusbox/internal/logging"
	"github.com/alexanderramin/focusbox/internal/repository"
	"github.com/alexanderramin/focusbox/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath picks --config out of the arguments before cobra runs, since
// the App has to be built from the loaded settings first.
func configPath(args []string) string {
	flag := "--" + cli.ConfigFlag
	for i, a := range args {
		switch {
		case a == "--":
			return ""
		case a == flag && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(a, flag+"="):
			return strings.TrimPrefix(a, flag+"=")
		}
	}
	return ""
}

func run() error {
	v, err := config.NewViper(configPath(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, logCloser, err := logging.Open(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	settings := config.NewLive(v, cfg, logger)
	settings.Watch()

	// FOCUSBOX_DB wins over paths.database.
	dbPath := os.Getenv("FOCUSBOX_DB")
	if dbPath == "" {
		dbPath = cfg.Paths.Database
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	measurementRepo := repository.NewSQLiteMeasurementRepo(database)
	boxRepo := repository.NewSQLiteBoxRepo(database)
	catalogRepo := repository.NewSQLiteCatalogRepo(database)
	activeRepo := repository.NewSQLiteActiveMeasurementRepo(database)
	trashRepo := repository.NewSQLiteTrashRepo(database)
	guardRepo := repository.NewSQLiteGuardRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	store := service.NewSessionStore(measurementRepo, boxRepo, catalogRepo, uow,
		service.WithObserver(service.NewLogUseCaseObserver(logger)),
	)
	ctx := context.Background()
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}

	clk := clock.Real()
	app := &cli.App{
		Store:    store,
		Tracker:  service.NewTrackerService(store, activeRepo, uow, clk),
		Trash:    service.NewTrashService(store, trashRepo, clk),
		Exchange: service.NewExchangeService(store, clk),
		View:     aggregate.NewView(store, cfg.Timer.Location(), logger),
		Settings: settings,
		Effects:  effects.NewSystemDispatcher(settings, cfg.Sound.Dir, cfg.Sound.Command, logger),
		Guards:   guardRepo,
		Clock:    clk,
		Logger:   logger,
	}

	// Detect interactive terminal for the box view and prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
