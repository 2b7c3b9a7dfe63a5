package wordle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/wordle-bot/app/eventbus"
	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	wordlehandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/handlers"
	wordlehttp "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/httpapi"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/puzzledate"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	wordlemigrations "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories/migrations"
	wordlerouter "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/router"
	"github.com/Black-And-White-Club/wordle-bot/app/observability"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Module represents the wordle module.
type Module struct {
	config     *config.Config
	Service    wordleservice.Service
	Resolver   *puzzledate.Resolver
	router     *wordlerouter.WordleRouter
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewModule builds the wordle service over repo. When eventBus and router are both
// set, inbound chat messages are routed to the service and replies published back.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	repo wordledb.Repository,
	metrics *observability.Metrics,
	registerer prometheus.Registerer,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger.InfoContext(ctx, "Initializing wordle module", slog.String("driver", cfg.Database.Driver))

	service, resolver, err := NewService(cfg, repo, logger, metrics, observability.Tracer())
	if err != nil {
		return nil, err
	}

	module := &Module{
		config:   cfg,
		Service:  service,
		Resolver: resolver,
		logger:   logger,
	}

	if eventBus != nil && router != nil {
		handlers := wordlehandlers.NewWordleHandlers(service, logger, cfg.NATS.GroupName)
		module.router = wordlerouter.NewWordleRouter(logger, router, eventBus, eventBus, registerer)
		if err := module.router.Configure(ctx, handlers, cfg.NATS.InboundTopic, cfg.NATS.ReplyTopic); err != nil {
			return nil, fmt.Errorf("failed to configure wordle router: %w", err)
		}
	}

	return module, nil
}

// NewService wires the lookup client, resolver and leaderboard engine into a service.
// metrics may be nil.
func NewService(
	cfg *config.Config,
	repo wordledb.Repository,
	logger *slog.Logger,
	metrics *observability.Metrics,
	tracer trace.Tracer,
) (*wordleservice.WordleService, *puzzledate.Resolver, error) {
	ranking, err := cfg.Leaderboard.RankingPolicy()
	if err != nil {
		return nil, nil, fmt.Errorf("leaderboard ranking: %w", err)
	}
	points, err := cfg.Leaderboard.PointsPolicy()
	if err != nil {
		return nil, nil, fmt.Errorf("leaderboard points: %w", err)
	}

	resolver := NewResolver(cfg.Lookup, logger, metrics)

	var serviceMetrics wordleservice.Metrics
	if metrics != nil {
		serviceMetrics = metrics
	}
	engine := wordleservice.NewLeaderboardEngine(repo, ranking, points)
	return wordleservice.NewWordleService(repo, resolver, engine, logger, serviceMetrics, tracer), resolver, nil
}

// NewResolver builds the puzzle date resolver over the configured lookup endpoint.
func NewResolver(cfg config.LookupConfig, logger *slog.Logger, metrics *observability.Metrics) *puzzledate.Resolver {
	client := puzzledate.NewNYTClient(puzzledate.ClientConfig{
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})

	opts := []puzzledate.Option{puzzledate.WithMaxSteps(cfg.MaxSteps)}
	if metrics != nil {
		opts = append(opts, puzzledate.WithMetrics(metrics))
	}
	return puzzledate.NewResolver(client, logger, opts...)
}

// OpenRepository opens the store named by cfg.Driver. SQLite databases are migrated
// on open; Postgres schemas are managed with cmd/bun.
func OpenRepository(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (wordledb.Repository, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return wordledb.NewMemoryRepository(), nil
	case config.DriverFirestore:
		client, err := wordledb.OpenFirestore(ctx, cfg.FirestoreProject, cfg.FirestoreCredentials)
		if err != nil {
			return nil, err
		}
		return wordledb.NewFirestoreRepository(client, cfg.Collection), nil
	case config.DriverPostgres, config.DriverSQLite:
		db, err := wordledb.OpenDB(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.Driver == config.DriverSQLite {
			if err := Migrate(ctx, db, logger); err != nil {
				db.Close()
				return nil, err
			}
		}
		return wordledb.NewBunRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Migrate creates the migration tables if needed and applies pending migrations.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrator := migrate.NewMigrator(db, wordlemigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if !group.IsZero() {
		logger.InfoContext(ctx, "Applied migrations", slog.String("group", group.String()))
	}
	return nil
}

// HTTPRouter mounts the API over the module's service.
func (m *Module) HTTPRouter(checks map[string]wordlehttp.HealthCheck, gatherer prometheus.Gatherer) chi.Router {
	handlers := wordlehttp.NewHandlers(m.Service, m.logger, checks)
	limiter := wordlehttp.NewIPRateLimiter(rate.Limit(m.config.HTTP.RequestsPerSecond), m.config.HTTP.Burst)
	return wordlehttp.NewRouter(handlers, limiter, gatherer)
}

// Run processes routed messages until ctx is canceled. Without a message router it
// only waits for cancellation.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting wordle module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.router != nil {
		if err := m.router.Run(ctx); err != nil {
			m.logger.ErrorContext(ctx, "Wordle router stopped with error", slog.Any("error", err))
		}
		return
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Wordle module goroutine stopped")
}

// Close stops the wordle module.
func (m *Module) Close() error {
	m.logger.Info("Stopping wordle module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.router != nil {
		if err := m.router.Close(); err != nil {
			m.logger.Error("Error stopping wordle router", "error", err)
			return fmt.Errorf("error stopping router: %w", err)
		}
	}

	m.logger.Info("Wordle module stopped")
	return nil
}
