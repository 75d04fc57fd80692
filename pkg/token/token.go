package token

import (
	"errors"
	"strings"
	"time"

	"social_network_service/pkg/config"
	errprocess "social_network_service/pkg/err"

	"github.com/golang-jwt/jwt/v5"
)

// RoleType set user role
type RoleType string

const (
	// RoleAdmin is the admin role
	RoleAdmin RoleType = "admin"
	// RoleUser is the user role
	RoleUser RoleType = "user"
)

// Claims structure for custom claims in JWT
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity 驗證後取得的身分
type Identity struct {
	Subject string
	Role    RoleType
}

// IsAdmin check identity is admin
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// DevSecret JWT_SECRET 未設定時 local/test 使用
const DevSecret = "secure_secret_key"

// ErrMissingSecret production 必須設定 JWT_SECRET
var ErrMissingSecret = errors.New("JWT_SECRET is required in production")

// Secret Key for JWT signing and validation
var (
	JWTSecret       = secretFrom(config.EnvConfig.JWTSecret)
	tokenExpiration = 60 * time.Minute
)

func secretFrom(s string) []byte {
	if s != "" {
		return []byte(s)
	}
	return []byte(DevSecret)
}

// CheckSecret 服務啟動時呼叫, production 不允許使用 DevSecret
func CheckSecret(production bool, secret string) error {
	if production && (secret == "" || secret == DevSecret) {
		return ErrMissingSecret
	}
	return nil
}

// GenerateJWT generates a JWT token
func GenerateJWT(userID, role, issuer string) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseJWT parses a JWT and extracts the Claims
func ParseJWT(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Check if the signing method is HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token without subject")
	}

	return claims, nil
}

// StripBearer 去掉 "Bearer " 前綴, 沒有前綴時原樣返回
func StripBearer(credential string) string {
	const prefix = "bearer "
	if len(credential) > len(prefix) && strings.EqualFold(credential[:len(prefix)], prefix) {
		return strings.TrimSpace(credential[len(prefix):])
	}
	return strings.TrimSpace(credential)
}

// Verify bearer credential, return identity or ErrUnauthorized
func Verify(credential string) (Identity, error) {
	tokenStr := StripBearer(credential)
	if tokenStr == "" {
		return Identity{}, errprocess.Wrap(errprocess.ErrUnauthorized, "missing token")
	}

	claims, err := ParseJWTFunc(tokenStr)
	if err != nil {
		return Identity{}, errprocess.Wrap(errprocess.ErrUnauthorized, "invalid token: %v", err)
	}
	return Identity{Subject: claims.UserID, Role: RoleType(claims.Role)}, nil
}

// ExpiresAt 取得 token 到期時間
func ExpiresAt(credential string) (time.Time, error) {
	claims, err := ParseJWTFunc(StripBearer(credential))
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token without expiry")
	}
	return claims.ExpiresAt.Time, nil
}
