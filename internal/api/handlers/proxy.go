package handlers

import (
	"strings"
	"time"

	"social_network_service/pkg/config"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"go.uber.org/zap"
)

// DefaultProxyTimeout 單次轉發逾時
const DefaultProxyTimeout = 10 * time.Second

// Route /api/<Prefix>/* 轉到 Service 的 /<Target>/*
type Route struct {
	Prefix  string
	Target  string
	Service config.ServiceConfig
	// Auth 為 true 時 gateway 先驗 token
	Auth bool
}

// ProxyHandler 以 prefix 轉發到後端服務
type ProxyHandler struct {
	timeout time.Duration
}

// NewProxyHandler create ProxyHandler
func NewProxyHandler(timeout time.Duration) *ProxyHandler {
	if timeout <= 0 {
		timeout = DefaultProxyTimeout
	}
	return &ProxyHandler{timeout: timeout}
}

// Routes gateway 對外的所有 prefix
func Routes(cfg config.APIGateway) []Route {
	return []Route{
		{Prefix: "/api/auth", Target: "/auth", Service: cfg.UserService},
		{Prefix: "/api/users", Target: "/users", Service: cfg.UserService},
		{Prefix: "/api/admin", Target: "/admin", Service: cfg.UserService},
		{Prefix: "/api/messages", Target: "/messages", Service: cfg.ChatService, Auth: true},
		{Prefix: "/api/friendships", Target: "/friendships", Service: cfg.FriendshipService, Auth: true},
	}
}

// Forward 去掉 prefix 後轉發, query 保留
func (h *ProxyHandler) Forward(rt Route) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := h.TargetURL(rt, c.Path(), string(c.Request().URI().QueryString()))
		logger.Log.Debug("proxy", zap.String("path", c.Path()), zap.String("target", target))

		if err := proxy.DoTimeout(c, target, h.timeout); err != nil {
			logger.Log.Warn("proxy failed", zap.String("target", target), zap.Error(err))
			return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "%s unavailable", rt.Service.Name))
		}
		// 後端的 Server header 不外露
		c.Response().Header.Del(fiber.HeaderServer)
		return nil
	}
}

// TargetURL /api/messages/m-1?x=1 -> http://chat_service:8082/messages/m-1?x=1
func (h *ProxyHandler) TargetURL(rt Route, path, query string) string {
	rest := strings.TrimPrefix(path, rt.Prefix)
	if rest != "" && !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	target := strings.TrimRight(rt.Service.URL(), "/") + rt.Target + rest
	if query != "" {
		target += "?" + query
	}
	return target
}
