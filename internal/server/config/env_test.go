package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/auth")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_ACCESS_EXPIRY", "10m")
	t.Setenv("JWT_REFRESH_EXPIRY", "2d")
	t.Setenv("FRONTEND_URL", "http://localhost:3000")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("BCRYPT_COST", "11")
	t.Setenv("LOG_BACKEND", "zap")
	t.Setenv("LOG_FILE", "/tmp/auth.log")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":4000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://u:p@db:5432/auth", cfg.DatabaseDSN)
	assert.Equal(t, "s3cr3t", cfg.SecretKey)
	assert.Equal(t, 10*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 11, cfg.BcryptCost)
	assert.Equal(t, "zap", cfg.LogBackend)
	assert.Equal(t, "/tmp/auth.log", cfg.LogFile)
}

func TestParseEnv_Errors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"JWT_ACCESS_EXPIRY", "x"},
		{"JWT_REFRESH_EXPIRY", "forever"},
		{"COOKIE_SECURE", "maybe"},
		{"BCRYPT_COST", "ten"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			err := parseEnv(&Config{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadDotEnv_FromFlag(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nFRONTEND_URL=http://localhost:3000\n"), 0o600))
	withArgs(t, "-env", path)

	require.NoError(t, loadDotEnv())
	assert.Equal(t, "from-file", os.Getenv("JWT_SECRET"))
	assert.Equal(t, "http://localhost:3000", os.Getenv("FRONTEND_URL"))
}

func TestLoadDotEnv_ExistingEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "from-env")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\n"), 0o600))
	withArgs(t, "-env", path)

	require.NoError(t, loadDotEnv())
	assert.Equal(t, "from-env", os.Getenv("JWT_SECRET"))
}

func TestLoadDotEnv_MissingExplicitFile(t *testing.T) {
	withArgs(t, "-env", filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, loadDotEnv())
}

func TestLoadDotEnv_NoFlagNoFile(t *testing.T) {
	withArgs(t)
	require.NoError(t, loadDotEnv())
}
