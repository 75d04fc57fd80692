package router

import (
	"context"

	"social_network_service/internal/chat/app"
	"social_network_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes 注册 chat 相关的路由
func RegisterRoutes(ctx context.Context, r *fiber.App, messageHandler *app.MessageHandler, chatWebsocket *app.ChatWebsocketHandler, gatherer prometheus.Gatherer) {
	r.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	auth := middlewares.JWTMiddleware(nil)

	// token 驗證失敗時不會 upgrade
	r.Get("/ws", auth, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}, websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(ctx, c)
	}))

	messages := r.Group("/messages", auth)
	messages.Post("/", messageHandler.Send)
	messages.Post("/media", messageHandler.UploadMedia)
	messages.Get("/:otherUserId", messageHandler.History)
	messages.Put("/:id", messageHandler.Update)
	messages.Delete("/:id", messageHandler.Delete)
	messages.Post("/:id/react", messageHandler.React)
}
