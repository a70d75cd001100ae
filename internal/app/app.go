package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"rx-analytics/internal/events"
	internalhttp "rx-analytics/internal/http"
	"rx-analytics/internal/ingestors"
	"rx-analytics/internal/models"
	"rx-analytics/internal/reports"
	"rx-analytics/internal/shared/configs"
	"rx-analytics/internal/shared/filestorages"
	"rx-analytics/internal/shared/loggers"
	"rx-analytics/internal/simulators"
	"rx-analytics/internal/stores"
	"rx-analytics/internal/streams"
	"rx-analytics/internal/views"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
	location  *time.Location

	reportService         reports.Service
	generator             *simulators.Generator
	scheduler             *simulators.Scheduler
	ingestedEventConsumer streams.IngestedEventConsumer
	backgroundCtx         context.Context
	backgroundCancel      context.CancelFunc

	mu            sync.Mutex
	schedulerDone <-chan error
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level, config.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "rx-analytics").
		Logger()

	location, err := time.LoadLocation(config.Reports.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", config.Reports.Timezone, err)
	}

	// Initialize export storage
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	exportStore := stores.NewExportStore(fileStorage)

	// Initialize reports
	reportService := reports.NewService(reports.Catalog(), exportStore, reports.Config{
		DefaultPageSize: config.Reports.DefaultPageSize,
		MaxPageSize:     config.Reports.MaxPageSize,
		RetentionDays:   config.Live.RetentionDays,
		Location:        location,
	})

	// Initialize stream queue and its consumer
	ingestedEventQueue := streams.NewPartitionedQueue[events.IngestedEvent](streams.QueueConfig{
		Partitions: config.Streams.Partitions,
		Buffer:     config.Streams.Buffer,
	})
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	ingestedEventConsumer := streams.NewIngestedEventConsumer(ingestedEventQueue, reportService, consumerLogger)

	// Initialize ingestionService
	ingestionService := ingestors.NewIngestionService(
		ingestors.NewEventNormalizer(),
		stores.NewEventStore(location),
		reportService,
		streams.NewIngestedEventProducer(ingestedEventQueue),
		ingestors.Config{RetentionDays: config.Live.RetentionDays, Location: location},
	)

	// Initialize live simulation. Without it no report has a live target and views cannot go live.
	generator := simulators.NewGenerator(config.Simulation.Seed, config.Simulation.Employees, location)
	var targets []simulators.Target
	if config.Simulation.Enabled {
		targets = reportService.LiveTargets()
	}
	simulationLogger := appLogger.With().Str(loggers.FieldComponent, "simulation").Logger()
	scheduler := simulators.NewScheduler(generator, reportService, targets, simulators.SchedulerConfig{
		Interval: time.Duration(config.Simulation.TickIntervalMs) * time.Millisecond,
	}, simulationLogger)

	viewService := views.NewService(reportService, scheduler)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(ingestionService, reportService, viewService, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	backgroundCtx, backgroundCancel := context.WithCancel(context.Background())

	return &App{
		backgroundCtx:         backgroundCtx,
		backgroundCancel:      backgroundCancel,
		config:                config,
		appLogger:             appLogger,
		server:                server,
		location:              location,
		reportService:         reportService,
		generator:             generator,
		scheduler:             scheduler,
		ingestedEventConsumer: ingestedEventConsumer,
	}, nil
}

// Start seeds report history and starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting rx-analytics service on port %d (log_level=%s, timezone=%s, simulation=%t, file_storage_root_dir=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.location,
			app.config.Simulation.Enabled,
			app.config.FileStorage.RootDir)

	if app.config.Simulation.Enabled {
		app.seedHistory(app.appLogger.WithContext(app.backgroundCtx), time.Now())
	}

	// start background consumers and the live tick supervisor
	app.ingestedEventConsumer.Start(app.backgroundCtx)
	app.mu.Lock()
	app.schedulerDone = app.scheduler.ServeBackground(app.backgroundCtx)
	app.mu.Unlock()

	return app.server.ListenAndServe()
}

// seedHistory fills every report with simulated events for the configured number of past days.
// Reports reading the same kind share one generated history.
func (app *App) seedHistory(ctx context.Context, now time.Time) {
	days := app.config.Simulation.HistoryDays
	if days <= 0 {
		return
	}
	today := models.StartOfDay(now, app.location)
	dateRange := models.NewDateRange(today.AddDate(0, 0, -days), today)

	for _, kind := range []models.EventKind{models.EventDecode, models.EventBreak, models.EventCall} {
		history := app.generator.History(kind, dateRange, now, app.config.Simulation.EventsPerDay)
		for _, report := range app.reportService.ReportsFor(kind) {
			stored, err := app.reportService.Seed(ctx, report, history)
			if err != nil {
				app.appLogger.Warn().Err(err).Str(loggers.FieldReport, report).Msg("failed to seed report history")
				continue
			}
			app.appLogger.Info().
				Str(loggers.FieldReport, report).
				Int("events", stored).
				Str("range", dateRange.String()).
				Msg("seeded report history")
		}
	}
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel background consumers and live tick services
	app.backgroundCancel()
	app.appLogger.Info().Msg("Background workers cancelled")

	// 3) Wait for background consumers and the supervisor to finish
	app.ingestedEventConsumer.Stop()
	app.mu.Lock()
	schedulerDone := app.schedulerDone
	app.mu.Unlock()
	if schedulerDone != nil {
		select {
		case <-schedulerDone:
		case <-ctx.Done():
			return fmt.Errorf("live simulation shutdown timed out: %w", ctx.Err())
		}
	}
	app.appLogger.Info().Msg("Background workers stopped")

	return nil
}
