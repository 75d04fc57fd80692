package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"social_network_service/internal/user/app"
	"social_network_service/internal/user/domain"
	"social_network_service/internal/user/repository"
	"social_network_service/internal/user/router"
	"social_network_service/pkg/config"
	"social_network_service/pkg/database"
	"social_network_service/pkg/logger"
	testtool "social_network_service/pkg/test_tool"
	"social_network_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.UserService, config.EnvConfig.UserServiceLogPath)
	defer logger.Log.Sync()
	cfg := config.LoadConfig[config.User](config.EnvConfig.UserService, config.EnvConfig.UserServiceYAMLPath)
	if err := token.CheckSecret(config.IsProduction(), config.EnvConfig.JWTSecret); err != nil {
		logger.Log.Fatal("jwt secret", zap.Error(err))
	}
	testtool.StartPprof()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. PostgreSQL: users 用 pgx, registration_orders 用 gorm
	conn := database.PostgresConnection(cfg.PostgreSQL)
	pool, err := database.NewDatabaseConnection(ctx, conn)
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL after retries", zap.Error(err))
	}
	defer pool.Close()

	gormDB, err := database.NewPGConnection(conn)
	if err != nil {
		logger.Log.Fatal("Unable to open gorm connection", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pool)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		logger.Log.Fatal("create users table", zap.Error(err))
	}
	orderRepo := repository.NewOrderRepository(gormDB)
	if err := orderRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal("migrate registration orders", zap.Error(err))
	}

	// 2. Redis session
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.RedisUser.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	defer redisClient.Close()

	userUC := app.NewUserUseCase(userRepo, orderRepo, cfg.SessionTTL, database.NewRedisRepository[domain.UserSession](redisClient))
	if err := userUC.SeedAdmin(ctx, cfg.Admin); err != nil {
		logger.Log.Error("seed admin", zap.Error(err))
	}

	// 3. Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.UserServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		logger.Log.Fatal("Failed to open log file", zap.Error(err))
	}
	defer file.Close()
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, app.NewUserHandler(userUC))

	go func() {
		<-ctx.Done()
		_ = r.Shutdown()
	}()

	port := ":" + cfg.Port
	logger.Log.Info("User Service listening", zap.String("port", port))
	if err := r.Listen(port); err != nil {
		logger.Log.Fatal("Failed to start Fiber", zap.Error(err))
	}
}
