package main

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nakayamaryo0731/oaiko/config"
	"github.com/nakayamaryo0731/oaiko/db"
	"github.com/nakayamaryo0731/oaiko/handlers"
	"github.com/nakayamaryo0731/oaiko/internal/store/postgres"
	"github.com/nakayamaryo0731/oaiko/logger"
	"github.com/nakayamaryo0731/oaiko/models"
	"github.com/nakayamaryo0731/oaiko/router"
	"github.com/nakayamaryo0731/oaiko/services"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbURL := cfg.Database.URL()
	if err := db.RunMigrations(dbURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConnections)
	if cfg.Server.Environment == config.EnvProduction {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisOptions := &redis.Options{
		Addr:         cfg.Redis.Address,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warnw("Failed to close redis client", "error", err)
		}
	}()

	// Stores
	groupStore := postgres.NewGroupStore(pool)
	categoryStore := postgres.NewCategoryStore(pool)
	tagStore := postgres.NewTagStore(pool)
	expenseStore := postgres.NewExpenseStore(pool)
	invitationStore := postgres.NewInvitationStore(pool)
	settlementStore := postgres.NewSettlementStore(pool)

	// Models
	clock := models.Clock(time.Now)
	inviteTTL := time.Duration(cfg.Invitation.ExpiryHours) * time.Hour
	groupModel := models.NewGroupModel(groupStore, categoryStore, invitationStore, inviteTTL, clock)
	tagModel := models.NewTagModel(tagStore, groupStore)
	expenseModel := models.NewExpenseModel(expenseStore, groupStore, categoryStore, tagStore, settlementStore, clock)
	settlementModel := models.NewSettlementModel(expenseStore, groupStore, settlementStore, clock)
	analyticsModel := models.NewAnalyticsModel(expenseStore, groupStore, categoryStore, tagStore, clock)

	// Services and handlers
	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	deps := router.Dependencies{
		Config:            cfg,
		RedisClient:       redisClient,
		GroupHandler:      handlers.NewGroupHandler(groupModel),
		ExpenseHandler:    handlers.NewExpenseHandler(expenseModel),
		TagHandler:        handlers.NewTagHandler(tagModel),
		SettlementHandler: handlers.NewSettlementHandler(settlementModel, expenseModel),
		AnalyticsHandler:  handlers.NewAnalyticsHandler(analyticsModel, expenseModel),
		InvitationHandler: handlers.NewInvitationHandler(groupModel, &cfg.Server),
		HealthHandler:     handlers.NewHealthHandler(healthService),
		Logger:            log,
	}

	r := router.SetupRouter(deps)
	if len(cfg.Server.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
			log.Fatalf("Failed to set trusted proxies: %v", err)
		}
	}

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
