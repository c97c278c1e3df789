package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/motopecas/pos-core/docs"
	"github.com/motopecas/pos-core/internal/alert"
	"github.com/motopecas/pos-core/internal/config"
	"github.com/motopecas/pos-core/internal/db"
	api "github.com/motopecas/pos-core/internal/http"
	"github.com/motopecas/pos-core/internal/http/handlers"
	rl "github.com/motopecas/pos-core/internal/http/rate_limiter"
	"github.com/motopecas/pos-core/internal/repo"
	"github.com/motopecas/pos-core/internal/sale"
	"github.com/motopecas/pos-core/internal/view"
)

var ctx = context.Background()

// @title POS Order Engine API
// @version 1.0
// @description Atomic order placement over the inventory ledger, with replenishment and customer history views.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("could not init logger: %v", err)
	}
	defer logger.Sync()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("could not connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()

	productRepo := repo.NewPostgresProductRepository(database)
	customerRepo := repo.NewPostgresCustomerRepository(database)
	orderRepo := repo.NewPostgresOrderRepository(database)
	movementRepo := repo.NewPostgresMovementRepository(database)

	engine := sale.NewEngine(sale.NewPostgresSaleStore(database, cfg.SaleTxTimeout), logger)

	notifier := alert.NewNotifier(rdb, ctx, alert.SMTPConfig{
		From:         cfg.AlertFrom,
		To:           cfg.AlertTo,
		Server:       cfg.SMTPServer,
		Port:         cfg.SMTPPort,
		User:         cfg.SMTPUser,
		Password:     cfg.SMTPPassword,
		AuthDisabled: cfg.SMTPAuthDisabled,
	}, logger)
	go notifier.StartDailySummary(24 * time.Hour)
	go rl.StartVisitorCleanupLoop()

	handlers.SetLogger(logger)
	handlers.SetEngine(engine)
	handlers.SetProductRepo(productRepo)
	handlers.SetOrderRepo(orderRepo)
	handlers.SetMovementRepo(movementRepo)
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handlers.SetReplenishmentService(view.NewReplenishmentService(productRepo))
	handlers.SetHistoryService(view.NewHistoryService(customerRepo, orderRepo))
	handlers.SetAlerter(notifier)

	api.SetJWTSecret(cfg.JWTSecret)

	r := api.NewRouter()
	logger.Info("server running", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
