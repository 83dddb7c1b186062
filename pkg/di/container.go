package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-manager-api/application/serviceimpl"
	"task-manager-api/domain/ports"
	"task-manager-api/domain/repositories"
	"task-manager-api/domain/services"
	"task-manager-api/infrastructure/memory"
	natspkg "task-manager-api/infrastructure/nats"
	"task-manager-api/infrastructure/postgres"
	redispkg "task-manager-api/infrastructure/redis"
	"task-manager-api/infrastructure/websocket"
	"task-manager-api/interfaces/api/handlers"
	"task-manager-api/interfaces/api/routes"
	"task-manager-api/pkg/config"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/scheduler"
	"task-manager-api/pkg/token"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB         // nil in memory mode
	RedisClient    *redispkg.Client // optional
	NATSClient     *natspkg.Client  // optional
	NATSSubscriber *natspkg.Subscriber
	Hub            *websocket.Hub
	EventScheduler scheduler.EventScheduler
	TokenManager   *token.Manager

	// Repositories
	UserRepository repositories.UserRepository
	TaskRepository repositories.TaskRepository

	// Ports
	StatsCache     ports.StatsCache
	EventPublisher ports.TaskEventPublisher

	// Services
	UserService        services.UserService
	TaskService        services.TaskService
	PoolMonitorService *serviceimpl.PoolMonitorService

	hubCancel context.CancelFunc
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	c.initEvents()

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	logger.Info("Container initialized")
	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)

	if c.Config.HasDefaultJWTSecret() {
		logger.Warn("JWT_SECRET is not set, using the built-in default secret")
	}
	return nil
}

func (c *Container) initInfrastructure() error {
	c.TokenManager = token.NewManager(c.Config.JWT.Secret)

	if c.Config.Database.Driver != "memory" {
		if err := c.initDatabase(); err != nil {
			return err
		}
	} else {
		logger.Warn("Using in-memory store, data is lost on restart")
	}

	// Redis is optional, the stats cache degrades to direct queries
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.StatsCache = redispkg.NewStatsCache(redisClient, c.Config.Redis.StatsTTL)
		}
	}

	// NATS is optional, events stay in-process without it
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:  c.Config.NATS.URL,
			Name: c.Config.App.Name,
		})
		if err != nil {
			logger.Warn("NATS client initialization failed (events stay local)", "error", err)
		} else {
			c.NATSClient = natsClient
		}
	}

	return nil
}

// initDatabase builds the pool. An unreachable server is logged and the API
// keeps serving; requests that need the database fail with 500.
func (c *Container) initDatabase() error {
	dbConfig := postgres.DatabaseConfig{
		Host:            c.Config.Database.Host,
		Port:            c.Config.Database.Port,
		User:            c.Config.Database.User,
		Password:        c.Config.Database.Password,
		DBName:          c.Config.Database.DBName,
		SSLMode:         c.Config.Database.SSLMode,
		MaxOpenConns:    c.Config.Database.MaxOpenConns,
		MaxIdleConns:    c.Config.Database.MaxIdleConns,
		ConnMaxIdleTime: c.Config.Database.ConnMaxIdleTime,
		ConnectTimeout:  c.Config.Database.ConnectTimeout,
		LogLevel:        c.Config.Log.Level,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db

	ctx, cancel := context.WithTimeout(context.Background(), c.Config.Database.ConnectTimeout+time.Second)
	defer cancel()

	if err := postgres.Ping(ctx, db); err != nil {
		logger.Error("Database connection failed", "host", dbConfig.Host, "db", dbConfig.DBName, "error", err)
		return nil
	}
	logger.Info("Database connected", "host", dbConfig.Host, "db", dbConfig.DBName)

	if err := postgres.Migrate(db); err != nil {
		logger.Error("Database migration failed", "error", err)
		return nil
	}
	logger.Info("Database migrated")
	return nil
}

func (c *Container) initRepositories() error {
	if c.DB == nil {
		c.UserRepository = memory.NewUserRepository()
		c.TaskRepository = memory.NewTaskRepository()
	} else {
		c.UserRepository = postgres.NewUserRepository(c.DB)
		c.TaskRepository = postgres.NewTaskRepository(c.DB)
	}

	logger.Info("Repositories initialized")
	return nil
}

// initEvents starts the hub. With NATS the hub is fed by a subscriber,
// without it the hub is the publisher.
func (c *Container) initEvents() {
	c.Hub = websocket.NewHub()
	hubCtx, cancel := context.WithCancel(context.Background())
	c.hubCancel = cancel
	go c.Hub.Run(hubCtx)

	if c.NATSClient == nil {
		c.EventPublisher = c.Hub
		return
	}

	c.EventPublisher = natspkg.NewTaskEventPublisher(c.NATSClient.Conn())
	c.NATSSubscriber = natspkg.NewSubscriber(c.NATSClient.Conn(), c.Hub)
	if err := c.NATSSubscriber.Start(); err != nil {
		logger.Warn("NATS subscriber failed to start, falling back to local events", "error", err)
		c.NATSSubscriber = nil
		c.EventPublisher = c.Hub
	}
}

func (c *Container) initServices() error {
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.TokenManager)

	if c.StatsCache != nil {
		c.TaskService = serviceimpl.NewTaskServiceWithCache(c.TaskRepository, c.EventPublisher, c.StatsCache)
	} else {
		c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.EventPublisher)
	}

	logger.Info("Services initialized")
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to access connection pool: %w", err)
		}
		c.PoolMonitorService = serviceimpl.NewPoolMonitorService(sqlDB, c.EventScheduler, c.Config.Database.StatsCron)
		if err := c.PoolMonitorService.RegisterMonitorJob(); err != nil {
			logger.Warn("Failed to schedule pool monitor", "error", err)
		}
	}

	c.EventScheduler.Start()
	return nil
}

// Cleanup releases everything in reverse order. The database pool is drained
// last so in-flight work can finish.
func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
	}

	if c.NATSSubscriber != nil {
		c.NATSSubscriber.Stop()
	}

	if c.hubCancel != nil {
		c.hubCancel()
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		if err := postgres.Close(c.DB); err != nil {
			logger.Warn("Failed to close database connection", "error", err)
		} else {
			logger.Info("Database connection closed")
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService: c.UserService,
		TaskService: c.TaskService,
	}
}

func (c *Container) GetRouteDeps() routes.Deps {
	return routes.Deps{
		Tokens: c.TokenManager,
		Hub:    c.Hub,
	}
}
