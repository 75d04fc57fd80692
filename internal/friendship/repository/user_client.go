package repository

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"social_network_service/internal/friendship/domain"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// UserClient 向 user service 查詢公開資料
type UserClient interface {
	GetProfile(ctx context.Context, userID string) (domain.UserProfile, error)
}

type credentialKey struct{}

// WithCredential 呼叫 user service 時轉送使用者的 token
func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialKey{}, token.StripBearer(credential))
}

type httpUserClient struct {
	baseURL string
	timeout time.Duration
}

// NewUserClient baseURL 例如 http://user_service:8081
func NewUserClient(baseURL string, timeout time.Duration) UserClient {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &httpUserClient{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *httpUserClient) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	agent := fiber.Get(c.baseURL + "/users/" + url.PathEscape(userID))
	agent.Timeout(timeout)
	if t, _ := ctx.Value(credentialKey{}).(string); t != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+t)
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return domain.UserProfile{}, errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "user service: %v", errs[0])
	}

	switch {
	case code == fiber.StatusNotFound:
		return domain.UserProfile{}, errprocess.Wrap(errprocess.ErrNotFound, "user %s", userID)
	case code != fiber.StatusOK:
		return domain.UserProfile{}, errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "user service status %d", code)
	}

	var p domain.UserProfile
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.UserProfile{}, errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "decode profile: %v", err)
	}
	return p, nil
}
