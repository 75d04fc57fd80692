package errprocess

import (
	"errors"
	"fmt"

	"social_network_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// 錯誤分類, 各服務的 usecase 用 %w 包裝後往上丟, handler 再轉成 http status
var (
	// ErrUnauthorized missing or invalid credential
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden authenticated but not entitled
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound entity absent
	ErrNotFound = errors.New("not found")
	// ErrValidation missing or malformed field
	ErrValidation = errors.New("validation error")
	// ErrUpstreamUnavailable dependent service or store did not respond
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// Wrap 將 kind 加上說明, errors.Is(err, kind) 仍成立
func Wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Status map error kind to http status
func Status(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUpstreamUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Reply 將 err 寫回 client, 500 以上記錄 error log
func Reply(c *fiber.Ctx, err error) error {
	status := Status(err)
	if status >= fiber.StatusInternalServerError {
		logger.Log.Errorf(fmt.Sprintf("%s %s", c.Method(), c.Path()), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
