package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/app/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/wordle"
	wordlehttp "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/httpapi"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/app/observability"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App owns the long-running serve process: store, message bus, HTTP listener.
type App struct {
	Config       *config.Config
	Logger       *slog.Logger
	Registry     *prometheus.Registry
	Repository   wordledb.Repository
	EventBus     eventbus.EventBus
	Router       *message.Router
	WordleModule *wordle.Module

	server *http.Server
}

// NewApp initializes the application with the necessary services and configuration.
// NATS is optional: with an empty nats.url only the HTTP API is served.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	repo, err := wordle.OpenRepository(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open result store: %w", err)
	}

	app := &App{
		Config:     cfg,
		Logger:     logger,
		Registry:   registry,
		Repository: repo,
	}

	if cfg.NATS.URL != "" {
		app.EventBus, err = eventbus.NewEventBus(ctx, cfg.NATS.URL, cfg.NATS.QueueGroup, logger)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize event bus: %w", err)
		}
		app.Router, err = message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(logger))
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create message router: %w", err)
		}
	} else {
		logger.InfoContext(ctx, "NATS URL not set, serving HTTP only")
	}

	app.WordleModule, err = wordle.NewModule(ctx, cfg, logger, repo, metrics, registry, app.EventBus, app.Router)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize wordle module: %w", err)
	}

	app.server = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           app.WordleModule.HTTPRouter(app.healthChecks(), registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// Handler returns the HTTP handler served by Start.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

func (app *App) healthChecks() map[string]wordlehttp.HealthCheck {
	checks := map[string]wordlehttp.HealthCheck{}
	if app.EventBus != nil {
		checks["nats"] = func() error {
			if !app.EventBus.Healthy() {
				return errors.New("disconnected")
			}
			return nil
		}
	}
	return checks
}

// Close releases the module, message bus and store in reverse order of creation.
func (app *App) Close() error {
	var errs []error
	if app.WordleModule != nil {
		errs = append(errs, app.WordleModule.Close())
	} else if app.Router != nil {
		errs = append(errs, app.Router.Close())
	}
	if app.EventBus != nil {
		errs = append(errs, app.EventBus.Close())
	}
	if app.Repository != nil {
		errs = append(errs, app.Repository.Close())
	}
	return errors.Join(errs...)
}
