package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
	"github.com/joho/godotenv"
)

// defaultEnvFile is loaded when present and no -env flag is given.
const defaultEnvFile = ".env"

// loadDotEnv reads KEY=VALUE pairs into the process environment. Variables
// already set in the environment win over the file.
func loadDotEnv() error {
	path := flagx.EnvFileFlags()
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays Config with environment variables.
//
// Recognized variables:
//
//	PORT                 HTTP port; sets EndpointAddrHTTP to ":PORT"
//	DATABASE_DSN         PostgreSQL DSN
//	JWT_SECRET           HMAC secret
//	JWT_ACCESS_EXPIRY    access token lifetime ("15m")
//	JWT_REFRESH_EXPIRY   refresh token lifetime ("7d")
//	FRONTEND_URL         CORS origin
//	COOKIE_SECURE        bool
//	BCRYPT_COST          int
//	LOG_BACKEND          slog | zap
//	LOG_FILE             rotated log file path
func parseEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		cfg.EndpointAddrHTTP = ":" + v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		cfg.SecretKey = v
	}
	if v, ok := os.LookupEnv("FRONTEND_URL"); ok {
		cfg.FrontendURL = v
	}
	if v, ok := os.LookupEnv("LOG_BACKEND"); ok {
		cfg.LogBackend = v
	}
	if v, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.LogFile = v
	}

	if v, ok := os.LookupEnv("JWT_ACCESS_EXPIRY"); ok {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_ACCESS_EXPIRY: %w", err)
		}
		cfg.AccessTokenValidityDuration = d
	}
	if v, ok := os.LookupEnv("JWT_REFRESH_EXPIRY"); ok {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_REFRESH_EXPIRY: %w", err)
		}
		cfg.RefreshTokenValidityDuration = d
	}
	if v, ok := os.LookupEnv("COOKIE_SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = b
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = n
	}

	return nil
}
