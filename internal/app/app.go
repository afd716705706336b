package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"SportsNewsHub/internal/api"
	"SportsNewsHub/internal/categorize"
	"SportsNewsHub/internal/config"
	"SportsNewsHub/internal/feed"
	"SportsNewsHub/internal/infrastructure/extract"
	"SportsNewsHub/internal/infrastructure/llm"
	"SportsNewsHub/internal/infrastructure/scheduler"
	"SportsNewsHub/internal/infrastructure/storage"
	"SportsNewsHub/internal/infrastructure/telegram"
	"SportsNewsHub/internal/logging"
	"SportsNewsHub/internal/ports"
	"SportsNewsHub/internal/summarize"
	"SportsNewsHub/internal/usecase"
)

// Application wires config to the pipeline, scheduler, and query API.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sql.DB
	store  *storage.PostgresRepository
	runner *usecase.Runner
	server *http.Server
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := storage.NewPostgresRepository(db)

	var backend ports.ChatCompleter
	if cfg.OpenAI.APIKey != "" {
		backend = llm.NewClient(cfg.OpenAI)
	}

	reader := feed.NewReader(nil, baseLogger.With("component", "feed"))
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:      feed.NewAggregator(reader, cfg.Sources, baseLogger.With("component", "aggregator")),
		Extractor:   extract.NewExtractor(nil, baseLogger.With("component", "extractor")),
		Summarizer:  summarize.New(backend, baseLogger.With("component", "summarizer")),
		Categorizer: categorize.New(backend, baseLogger.With("component", "categorizer")),
		Store:       store,
		Logger:      baseLogger.With("component", "pipeline"),
	})

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	interval := time.Duration(cfg.Scheduler.IntervalHours) * time.Hour
	runner := usecase.NewRunner(
		scheduler.NewCronScheduler(interval),
		pipeline,
		notifier,
		baseLogger.With("component", "runner"),
	)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewServer(store, baseLogger.With("component", "api")).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Application{
		cfg:    cfg,
		logger: baseLogger,
		db:     db,
		store:  store,
		runner: runner,
		server: server,
	}, nil
}

// Run migrates the schema, starts the scheduler, and serves the query API
// until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.store.Migrate(ctx); err != nil {
		return err
	}
	// Seed sports so the query API has categories before the first run.
	if _, err := a.store.SaveArticles(ctx, nil); err != nil {
		return fmt.Errorf("seed sports: %w", err)
	}

	if err := a.runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("query api listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.runner.Stop(shutdownCtx); err != nil {
		a.logger.Warn("scheduler stop", "error", err)
	}
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("http shutdown", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("db close", "error", err)
	}

	return nil
}
