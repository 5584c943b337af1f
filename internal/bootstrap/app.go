package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/taskdash/apigateway/internal/auth"
	"github.com/taskdash/apigateway/internal/config"
	"github.com/taskdash/apigateway/internal/database"
	"github.com/taskdash/apigateway/internal/domain"
	"github.com/taskdash/apigateway/internal/events"
	"github.com/taskdash/apigateway/internal/export"
	"github.com/taskdash/apigateway/internal/handler"
	"github.com/taskdash/apigateway/internal/logger"
	"github.com/taskdash/apigateway/internal/repository"
	"github.com/taskdash/apigateway/internal/search"
	"github.com/taskdash/apigateway/internal/service"
)

type App struct {
	Echo     *echo.Echo
	DB       *sql.DB
	Store    *repository.DatastoreClient
	Redis    *redis.Client
	Producer *events.Producer
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	// Initialize logging
	logger.InitLogging(cfg.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Postgres holds the users; a connection failure here is fatal.
	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db

	// Datastore holds the tasks; equally fatal.
	store, err := repository.NewDatastoreClient(ctx, cfg.GCP_PROJECT_ID)
	if err != nil {
		return fmt.Errorf("failed to initialize datastore client: %w", err)
	}
	a.Store = store

	userRepo := repository.NewPostgresUserRepository(db)
	if err := userRepo.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate users schema: %w", err)
	}
	taskRepo := repository.NewDatastoreTaskRepository(store)

	// Optional collaborators degrade to disabled when unconfigured or
	// unreachable; the API works without them. The nil checks keep typed
	// nils out of the service's interface fields.
	var statsCache domain.StatsCache
	if c := a.initStatsCache(ctx, cfg); c != nil {
		statsCache = c
	}
	var searcher service.TaskSearcher
	if s := initSearcher(ctx, cfg); s != nil {
		searcher = s
	}
	var publisher service.EventPublisher
	if p := a.initPublisher(ctx, cfg); p != nil {
		publisher = p
	}

	jwtManager := auth.NewJWTManager(cfg.JWT_SECRET, time.Duration(cfg.JWT_TTL_HOURS)*time.Hour)

	taskSvc := service.NewTaskService(taskRepo, statsCache, searcher, publisher, cfg.REDIS_STATS_TTL)
	authSvc := service.NewAuthService(userRepo, jwtManager)

	exporter, err := initExporter(ctx, cfg)
	if err != nil {
		return err
	}

	taskHandler := handler.NewTaskHandler(taskSvc, exporter)
	authHandler := handler.NewAuthHandler(authSvc)

	a.RegisterMiddlewares()
	a.RegisterRoutes(taskHandler, authHandler, jwtManager)

	return nil
}

func (a *App) initStatsCache(ctx context.Context, cfg config.EnvConfig) *repository.RedisStatsCache {
	if cfg.REDIS_ADDR == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.REDIS_ADDR,
		Password: cfg.REDIS_PASSWORD,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.ErrorLog(ctx, "redis unreachable, stats cache disabled: %v", err)
		rdb.Close()
		return nil
	}
	a.Redis = rdb
	logger.InfoLog(ctx, "stats cache enabled at %s", cfg.REDIS_ADDR)
	return repository.NewRedisStatsCache(rdb)
}

func initSearcher(ctx context.Context, cfg config.EnvConfig) *search.ElasticTaskIndex {
	if cfg.ELASTIC_URL == "" {
		return nil
	}
	idx, err := search.NewElasticTaskIndex(cfg.ELASTIC_URL)
	if err != nil {
		logger.ErrorLog(ctx, "elasticsearch unreachable, search index disabled: %v", err)
		return nil
	}
	logger.InfoLog(ctx, "search index enabled at %s", cfg.ELASTIC_URL)
	return idx
}

func (a *App) initPublisher(ctx context.Context, cfg config.EnvConfig) *events.Producer {
	if cfg.KAFKA_BROKER == "" {
		return nil
	}
	a.Producer = events.NewProducer(cfg.KAFKA_BROKER, cfg.KAFKA_TOPIC)
	logger.InfoLog(ctx, "task events enabled on topic %s", cfg.KAFKA_TOPIC)
	return a.Producer
}

func initExporter(ctx context.Context, cfg config.EnvConfig) (*export.TaskExporter, error) {
	layout := export.DefaultLayout()
	if cfg.EXPORT_LAYOUT_PATH != "" {
		loaded, err := export.LoadLayout(cfg.EXPORT_LAYOUT_PATH)
		if err != nil {
			return nil, fmt.Errorf("failed to load export layout: %w", err)
		}
		layout = loaded
		logger.InfoLog(ctx, "export layout loaded from %s", cfg.EXPORT_LAYOUT_PATH)
	}
	return export.NewTaskExporter(layout), nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(taskHandler *handler.TaskHandler, authHandler *handler.AuthHandler, jwtManager *auth.JWTManager) {
	a.Echo.POST("/api/auth/register", authHandler.RegisterHandler)
	a.Echo.POST("/api/auth/login", authHandler.LoginHandler)

	tasks := a.Echo.Group("/api/tasks", auth.Middleware(jwtManager))
	tasks.GET("", taskHandler.ListHandler)
	tasks.POST("", taskHandler.CreateHandler)
	tasks.GET("/stats/summary", taskHandler.StatsHandler)
	tasks.GET("/export", taskHandler.ExportHandler)
	tasks.GET("/:id", taskHandler.GetHandler)
	tasks.PUT("/:id", taskHandler.UpdateHandler)
	tasks.DELETE("/:id", taskHandler.DeleteHandler)
	tasks.PATCH("/:id/complete", taskHandler.CompleteHandler)
}

func (a *App) Run() error {
	defer a.DB.Close()
	defer a.Store.Close()
	if a.Redis != nil {
		defer a.Redis.Close()
	}
	if a.Producer != nil {
		defer a.Producer.Close()
	}
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
