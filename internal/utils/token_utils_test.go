package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahpay/spp_billing_app/internal/platform/config"
	"github.com/sekolahpay/spp_billing_app/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "spp-billing",
		JWTExpiryDuration: time.Hour,
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	cfg := testConfig()

	token, err := utils.GenerateJWT("user-1", "admin", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseAndValidateJWT(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, cfg.JWTIssuer, claims.Issuer)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	cfg := testConfig()
	token, err := utils.GenerateJWT("user-1", "admin", cfg)
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "different-secret"
	_, err = utils.ParseAndValidateJWT(token, other)
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpiryDuration = -time.Minute

	token, err := utils.GenerateJWT("user-1", "kasir1", cfg)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, cfg)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("kasir123")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("kasir123", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}
