package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("64f0c2a7e13b4a0001a2b3c4", "alice@example.com", []string{"USER", "ADMIN"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c2a7e13b4a0001a2b3c4", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{"USER", "ADMIN"}, claims.Roles)
}

func TestValidateTokenTampered(t *testing.T) {
	token, err := GenerateToken("64f0c2a7e13b4a0001a2b3c4", "alice@example.com", []string{"USER"})
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken("64f0c2a7e13b4a0001a2b3c4", "alice@example.com", nil)
	require.NoError(t, err)

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], sig)

	_, err = ExtractSignature("not-a-jwt")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	assert.NoError(t, CheckPasswordHash("s3cret-password", hash))
	assert.Error(t, CheckPasswordHash("wrong", hash))
}
