package router

import (
	"social_network_service/internal/api/handlers"
	"social_network_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes 注册 gateway 路由
// @title Social Network Service API
// @version 1.0
// @description API gateway of the social network services
// @host localhost:8080
// @BasePath /
func RegisterRoutes(app *fiber.App, proxyHandler *handlers.ProxyHandler, routes []handlers.Route) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	auth := middlewares.JWTMiddleware(nil)
	for _, rt := range routes {
		chain := []fiber.Handler{}
		if rt.Auth {
			chain = append(chain, auth)
		}
		chain = append(chain, proxyHandler.Forward(rt))

		app.All(rt.Prefix, chain...)
		app.All(rt.Prefix+"/*", chain...)
	}
}
