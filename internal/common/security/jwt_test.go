package security_test

import (
	"context"
	"os"
	"testing"

	"newsdesk/internal/common/security"
	"newsdesk/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokenString, err := security.GenerateAccessToken("user-123", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := security.TokenAuth.Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	userID, err := security.GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	role, err := security.GetUserRoleFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "admin", role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tokenString, jti, err := security.GenerateRefreshToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	userID, gotJti, err := security.DecodeRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, jti, gotJti)
}

func TestDecodeRefreshToken_RejectsAccessToken(t *testing.T) {
	access, err := security.GenerateAccessToken("user-123", "contributor")
	require.NoError(t, err)

	_, _, err = security.DecodeRefreshToken(access)
	assert.Error(t, err)
}

func TestGetClaims_MissingFields(t *testing.T) {
	_, err := security.GetUserIDFromClaims(map[string]interface{}{})
	assert.Error(t, err)
	_, err = security.GetUserRoleFromClaims(map[string]interface{}{"role": 42})
	assert.Error(t, err)
}
