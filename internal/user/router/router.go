package router

import (
	"social_network_service/internal/user/app"
	"social_network_service/pkg/middlewares"
	"social_network_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes 注册 user 相关的路由
func RegisterRoutes(r *fiber.App, h *app.UserHandler) {
	auth := middlewares.JWTMiddleware(nil)

	authRoutes := r.Group("/auth")
	authRoutes.Post("/register", h.Register)
	authRoutes.Post("/login", h.Login)
	authRoutes.Post("/logout", auth, h.RequireSession, h.Logout)
	authRoutes.Get("/session", auth, h.RequireSession, h.Session)
	authRoutes.Get("/me", auth, h.RequireSession, h.Me)

	users := r.Group("/users", auth)
	users.Put("/me", h.RequireSession, h.UpdateProfile)
	users.Get("/search/:username", h.Search)
	users.Get("/:id", h.GetUser)

	admin := r.Group("/admin", auth, middlewares.RequireRole(token.RoleAdmin), h.RequireSession)
	admin.Get("/orders", h.ListOrders)
	admin.Post("/orders/:id/approve", h.ApproveOrder)
	admin.Delete("/orders/:id", h.RejectOrder)
}
