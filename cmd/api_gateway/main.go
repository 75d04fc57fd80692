package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "social_network_service/cmd/api_gateway/docs" // 引入生成的 Swagger 文档
	"social_network_service/internal/api/handlers"
	"social_network_service/internal/api/router"
	"social_network_service/pkg/config"
	"social_network_service/pkg/logger"
	"social_network_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.APIGateway, config.EnvConfig.APIGatewayLogPath)
	defer logger.Log.Sync()
	cfg := config.LoadConfig[config.APIGateway](config.EnvConfig.APIGateway, config.EnvConfig.APIGatewayYAMLPath)
	if err := token.CheckSecret(config.IsProduction(), config.EnvConfig.JWTSecret); err != nil {
		logger.Log.Fatal("jwt secret", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 创建 Fiber 应用
	r := fiber.New()
	// 添加日志中间件
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.APIGatewayLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		logger.Log.Fatal("Failed to open log file", zap.Error(err))
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	// 注册路由, websocket 由 client 直接連 chat service
	routes := handlers.Routes(cfg)
	router.RegisterRoutes(r, handlers.NewProxyHandler(cfg.ProxyTimeout), routes)
	for _, rt := range routes {
		logger.Log.Info("proxy route", zap.String("prefix", rt.Prefix), zap.String("service", rt.Service.URL()+rt.Target), zap.Bool("auth", rt.Auth))
	}

	go func() {
		<-ctx.Done()
		_ = r.Shutdown()
	}()

	// 启动服务器
	if err := r.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}
