package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/tiendo/internal/cli"
	"github.com/alexanderramin/tiendo/internal/config"
	"github.com/alexanderramin/tiendo/internal/db"
	"github.com/alexanderramin/tiendo/internal/logging"
	"github.com/alexanderramin/tiendo/internal/metrics"
	"github.com/alexanderramin/tiendo/internal/repository"
	"github.com/alexanderramin/tiendo/internal/server"
	"github.com/alexanderramin/tiendo/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug().Str("db", dbPath).Msg("catalog opened")

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	importRunRepo := repository.NewSQLiteImportRunRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	m := metrics.New()
	observer := service.NewLogUseCaseObserver(logger)
	clock := cfg.Clock()

	projects := service.NewProjectService(projectRepo)
	timelines := service.NewTimelineService(projectRepo, service.TimelineConfig{
		PixelsPerDay: cfg.PixelsPerDay,
		PadDays:      cfg.PadDaysOrNone(),
		Clock:        clock,
	}, m, observer)
	status := service.NewStatusService(projectRepo, clock)

	app := &cli.App{
		Projects:    projects,
		Imports:     service.NewImportService(uow, importRunRepo, observer),
		Timeline:    timelines,
		Status:      status,
		Clock:       clock,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
	app.Serve = func(ctx context.Context, addr string) error {
		if addr == "" {
			addr = cfg.ListenAddr
		}
		srv := server.New(server.Config{ListenAddr: addr}, server.Services{
			Projects: projects,
			Timeline: timelines,
			Status:   status,
		}, m, logger)
		return serve(ctx, srv, logger)
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}

// serve runs srv until it fails or ctx is cancelled.
func serve(ctx context.Context, srv *server.Server, logger zerolog.Logger) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	if err := srv.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
