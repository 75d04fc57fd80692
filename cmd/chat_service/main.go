package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"social_network_service/internal/chat/app"
	"social_network_service/internal/chat/repository"
	"social_network_service/internal/chat/router"
	"social_network_service/pkg/config"
	"social_network_service/pkg/database"
	"social_network_service/pkg/logger"
	"social_network_service/pkg/notify"
	testtool "social_network_service/pkg/test_tool"
	"social_network_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	defer logger.Log.Sync()
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)
	if err := token.CheckSecret(config.IsProduction(), config.EnvConfig.JWTSecret); err != nil {
		logger.Log.Fatal("jwt secret", zap.Error(err))
	}
	testtool.StartPprof()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. 建立 Mongo 連線 (存訊息)
	mongo, err := database.NewMongoDB(ctx, database.MongoConnection(cfg.MongoSQL), cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal("Unable to connect to mongoDB database after retries", zap.Error(err))
	}
	defer mongo.Close(context.Background())
	if err := repository.EnsureIndexes(ctx, mongo.Database); err != nil {
		logger.Log.Warn("create message index", zap.Error(err))
	}

	// 2. 建立 Redis 連線 (通知 Pub/Sub)
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	defer redisClient.Close()

	// 3. MinIO (附件), 連不上時停用上傳
	var mediaUC *app.MediaUseCase
	minioClient, err := database.NewMinIOConnection(ctx, database.NewMinIOSetting(cfg.MinIO))
	if err != nil {
		logger.Log.Error("minIO unavailable, media upload disabled", zap.Error(err))
	} else {
		mediaUC = app.NewMediaUseCase(minioClient, cfg.MinIO.PresignExpiry)
	}

	// 4. metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := app.NewMetrics(reg)

	// 5. hub & usecase
	hub := app.NewHub(metrics)
	go hub.Run(ctx)

	msgRepo := repository.NewMongoMessageRepository(mongo.Database)
	messageUC := app.NewMessageUseCase(msgRepo, hub, metrics)

	if err := app.StartNoticeRelay(ctx, notify.NewRedisPubSub(redisClient), hub); err != nil {
		logger.Log.Fatal("subscribe notices", zap.Error(err))
	}

	// 6. 啟動 Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		logger.Log.Fatal("Failed to open log file", zap.Error(err))
	}
	defer file.Close()
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	router.RegisterRoutes(ctx, r,
		app.NewMessageHandler(messageUC, mediaUC),
		app.NewChatWebsocketHandler(hub, messageUC, metrics, cfg.Realtime),
		reg,
	)

	go func() {
		<-ctx.Done()
		_ = r.Shutdown()
	}()

	port := ":" + cfg.Port
	logger.Log.Info("Chat Service listening", zap.String("port", port))
	if err := r.Listen(port); err != nil {
		logger.Log.Fatal("Failed to start Fiber", zap.Error(err))
	}
}
