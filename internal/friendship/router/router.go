package router

import (
	"social_network_service/internal/friendship/app"
	"social_network_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes 注册 friendship 相关的路由
func RegisterRoutes(r *fiber.App, h *app.FriendshipHandler) {
	g := r.Group("/friendships", middlewares.JWTMiddleware(nil))
	g.Post("/request", h.Request)
	g.Post("/accept", h.Accept)
	g.Post("/reject", h.Reject)
	g.Delete("/remove", h.Remove)
	g.Get("/list", h.List)
	g.Get("/pending", h.Pending)
}
