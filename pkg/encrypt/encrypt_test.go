package encrypt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("Secret#123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret#123", hashed)

	assert.NoError(t, CheckPassword(hashed, "Secret#123"))
	assert.ErrorIs(t, CheckPassword(hashed, "secret#123"), ErrPasswordMismatch)
}

func TestValidatePasswordStrength(t *testing.T) {
	weak := []string{"short", "alllowercase1!", "NoDigits!!", "NoSpecial123"}
	for _, p := range weak {
		err := ValidatePasswordStrength(p)
		assert.True(t, errors.Is(err, ErrWeakPassword), p)
	}
	assert.NoError(t, ValidatePasswordStrength("Strong#Pass1"))
}
