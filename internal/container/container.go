package container

import (
	"context"
	"fmt"
	"log"

	"fraudlens/adapters/heuristic"
	"fraudlens/adapters/memory"
	"fraudlens/adapters/postgres"
	redisadapter "fraudlens/adapters/redis"
	"fraudlens/adapters/scoringapi"
	"fraudlens/app"
	"fraudlens/domain/history"
	"fraudlens/internal/config"
	"fraudlens/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB    *sqlx.DB
	Redis *redis.Client

	// Repositories (data access layer)
	HistoryRepo ports.HistoryRepository

	// Domain services
	Scorer    ports.Scorer
	Store     *history.Store
	Analyzer  *app.AnalyzerService
	Dashboard *app.DashboardService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
	}

	return c, nil
}

// Init wires every component: the configured history backend, the scorer,
// and the services on top of them.
func (c *Container) Init(ctx context.Context) error {
	if err := c.initHistoryBackend(ctx); err != nil {
		return fmt.Errorf("failed to initialize history backend: %w", err)
	}

	c.initScorer()
	c.initServices()

	log.Printf("[Container] Initialized with %s history backend", c.Config.History.Backend)
	return nil
}

// initHistoryBackend selects the persistence layer named by the configuration.
func (c *Container) initHistoryBackend(ctx context.Context) error {
	switch c.Config.History.Backend {
	case config.BackendPostgres:
		db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.History.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return err
		}
		c.DB = db
		c.HistoryRepo = postgres.NewHistoryRepository(db)

	case config.BackendRedis:
		client, err := redisadapter.Connect(ctx, c.Config.History.RedisAddr,
			c.Config.History.RedisPassword, c.Config.History.RedisDB)
		if err != nil {
			return err
		}
		c.Redis = client
		c.HistoryRepo = redisadapter.NewHistoryRepository(client)

	default:
		c.HistoryRepo = memory.NewHistoryRepository()
	}

	return nil
}

// initScorer picks the remote client when a service URL is configured and the
// built-in heuristic engine otherwise.
func (c *Container) initScorer() {
	if c.Config.Scoring.UseRemote() {
		c.Scorer = scoringapi.NewClient(scoringapi.Config{
			BaseURL:     c.Config.Scoring.APIURL,
			APIKey:      c.Config.Scoring.APIKey,
			Timeout:     c.Config.Scoring.Timeout,
			MaxParallel: int64(c.Config.Scoring.MaxParallel),
		})
		log.Printf("[Container] Using remote scoring service at %s", c.Config.Scoring.APIURL)
		return
	}

	c.Scorer = heuristic.NewScorer()
	log.Printf("[Container] No scoring service configured, using built-in heuristic engine")
}

// initServices builds the application services over the wired adapters.
func (c *Container) initServices() {
	c.Store = history.NewStore(c.HistoryRepo, c.Config.History.MaxEntries)
	c.Analyzer = app.NewAnalyzerService(c.Scorer, c.Store, c.Config.Upload.MaxRows)
	c.Dashboard = app.NewDashboardService(c.Store)
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("[Container] Redis close failed: %v", err)
		}
	}

	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
