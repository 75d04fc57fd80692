package token

import (
	"errors"
	"testing"
	"time"

	errprocess "social_network_service/pkg/err"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	tok, err := GenerateJWT("user-1", string(RoleAdmin), "user_service")
	require.NoError(t, err)

	id, err := Verify("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.Subject)
	assert.True(t, id.IsAdmin())

	// 沒有 Bearer 前綴也接受 (query / cookie)
	id, err = Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.Subject)
}

func TestVerify_Unauthorized(t *testing.T) {
	cases := map[string]string{
		"empty":   "",
		"bearer":  "Bearer ",
		"garbage": "Bearer not.a.token",
	}
	for name, credential := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Verify(credential)
			assert.True(t, errors.Is(err, errprocess.ErrUnauthorized))
		})
	}
}

func TestVerify_Expired(t *testing.T) {
	claims := Claims{
		UserID: "user-1",
		Role:   string(RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret)
	require.NoError(t, err)

	_, err = Verify("Bearer " + tok)
	assert.True(t, errors.Is(err, errprocess.ErrUnauthorized))
}

func TestVerify_WrongSecret(t *testing.T) {
	claims := Claims{UserID: "user-1", Role: string(RoleUser)}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	require.NoError(t, err)

	_, err = Verify(tok)
	assert.Error(t, err)
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "abc", StripBearer("Bearer abc"))
	assert.Equal(t, "abc", StripBearer("bearer abc"))
	assert.Equal(t, "abc", StripBearer("abc"))
}

func TestCheckSecret(t *testing.T) {
	t.Run("production 沒設定", func(t *testing.T) {
		assert.ErrorIs(t, CheckSecret(true, ""), ErrMissingSecret)
		assert.ErrorIs(t, CheckSecret(true, DevSecret), ErrMissingSecret)
	})
	t.Run("production 有設定", func(t *testing.T) {
		assert.NoError(t, CheckSecret(true, "s3cr3t"))
	})
	t.Run("local 可用預設值", func(t *testing.T) {
		assert.NoError(t, CheckSecret(false, ""))
		assert.Equal(t, []byte(DevSecret), secretFrom(""))
		assert.Equal(t, []byte("s3cr3t"), secretFrom("s3cr3t"))
	})
}
