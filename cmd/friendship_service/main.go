package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"social_network_service/internal/friendship/app"
	"social_network_service/internal/friendship/repository"
	"social_network_service/internal/friendship/router"
	"social_network_service/pkg/config"
	"social_network_service/pkg/database"
	"social_network_service/pkg/logger"
	"social_network_service/pkg/notify"
	testtool "social_network_service/pkg/test_tool"
	"social_network_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.FriendshipService, config.EnvConfig.FriendshipServiceLogPath)
	defer logger.Log.Sync()
	cfg := config.LoadConfig[config.Friendship](config.EnvConfig.FriendshipService, config.EnvConfig.FriendshipServiceYAMLPath)
	if err := token.CheckSecret(config.IsProduction(), config.EnvConfig.JWTSecret); err != nil {
		logger.Log.Fatal("jwt secret", zap.Error(err))
	}
	testtool.StartPprof()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Mongo (friendships)
	mongo, err := database.NewMongoDB(ctx, database.MongoConnection(cfg.MongoSQL), cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal("Unable to connect to mongoDB database after retries", zap.Error(err))
	}
	defer mongo.Close(context.Background())
	if err := repository.EnsureIndexes(ctx, mongo.Database); err != nil {
		logger.Log.Warn("create friendship index", zap.Error(err))
	}

	// 2. Redis, 通知交給 chat service 推送
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	defer redisClient.Close()

	friendshipUC := app.NewFriendshipUseCase(repository.NewMongoFriendshipRepository(mongo.Database), notify.NewRedisPubSub(redisClient))

	// 3. Kafka post_events consumer
	consumer := app.NewPostConsumer(database.NewKafkaReader(database.NewKafkaSetting(cfg.KafKa)), friendshipUC)
	go func() {
		if err := consumer.Run(ctx); err != nil {
			logger.Log.Error("post event consumer stopped", zap.Error(err))
		}
	}()

	// 4. Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.FriendshipServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		logger.Log.Fatal("Failed to open log file", zap.Error(err))
	}
	defer file.Close()
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	resolver := app.NewProfileResolver(repository.NewUserClient(cfg.UserService.URL(), 0))
	router.RegisterRoutes(r, app.NewFriendshipHandler(friendshipUC, resolver))

	go func() {
		<-ctx.Done()
		_ = r.Shutdown()
	}()

	port := ":" + cfg.Port
	logger.Log.Info("Friendship Service listening", zap.String("port", port))
	if err := r.Listen(port); err != nil {
		logger.Log.Fatal("Failed to start Fiber", zap.Error(err))
	}
}
