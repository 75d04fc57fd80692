package middlewares

import (
	"social_network_service/pkg"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	//QueryToken token in query name
	QueryToken = "auth"

	//CookieToken token in cookie name
	CookieToken = "auth_token"

	//TokenUserID get user form token, set c.locals name
	TokenUserID = "UserID"
	//TokenRole get role form token, set c.locals name
	TokenRole = "role"
)

// Credential 依序從 Authorization header, auth query, auth_token cookie 取得
func Credential(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		return h
	}
	if q := c.Query(QueryToken); q != "" {
		return q
	}
	return c.Cookies(CookieToken)
}

// JWTMiddleware validates JWT and sets user id / role into c.Locals
func JWTMiddleware(v token.Verifier) fiber.Handler {
	if v == nil {
		v = token.Default
	}
	return func(c *fiber.Ctx) error {
		id, err := v.Verify(Credential(c))
		if err != nil {
			return errprocess.Reply(c, err)
		}

		c.Locals(TokenUserID, id.Subject)
		c.Locals(TokenRole, string(id.Role))
		return c.Next()
	}
}

// RequireRole 必須在 JWTMiddleware 之後
func RequireRole(roles ...token.RoleType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, _ := c.Locals(TokenRole).(string)
		if !pkg.Contains(roles, token.RoleType(r)) {
			return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrForbidden, "role %v required", roles))
		}
		return c.Next()
	}
}

// UserID get authenticated user id from c.Locals
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(TokenUserID).(string)
	return id
}

// Identity get authenticated identity from c.Locals
func Identity(c *fiber.Ctx) token.Identity {
	role, _ := c.Locals(TokenRole).(string)
	return token.Identity{Subject: UserID(c), Role: token.RoleType(role)}
}
