package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/studyplanner/internal/cli"
	"github.com/alexanderramin/studyplanner/internal/config"
	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/observability"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/service"
	"github.com/mattn/go-isatty"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	shutdown := observability.InitOTel(ctx, logger, observability.OtelConfig{
		ServiceName: "studyplanner",
		Version:     version,
	})
	defer shutdown(ctx)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	courseRepo := repository.NewSQLiteCourseRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	sessionRepo := repository.NewSQLitePlanSessionRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Planner: service.NewPlannerService(courseRepo, progressRepo, planRepo, uow, service.PlannerOptions{
			HorizonDays:      cfg.HorizonDays,
			BatchSize:        cfg.BatchSize,
			FetchConcurrency: cfg.FetchConcurrency,
			Location:         cfg.Location,
		}, observers...),
		Adherence: service.NewAdherenceService(sessionRepo, nil, observers...),
		Sessions:  service.NewSessionService(sessionRepo, uow, nil, observers...),
		Catalog:   service.NewCatalogService(courseRepo, uow, observers...),
		OwnerID:   cfg.OwnerID,
		Location:  cfg.Location,
	}

	// Styled output only when stdout is a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
