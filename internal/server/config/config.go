// Package config handles configuration for the server component:
// defaults, an optional dotenv file, a JSON overlay, environment variables
// and command-line flags, applied in that order and then validated.
package config

import (
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
)

// Config holds runtime settings for the AuthKeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory user store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - FrontendURL: the single origin allowed by CORS (credentials enabled). Required.
//   - CookieSecure: sets the Secure flag on the refresh cookie.
//   - BcryptCost: password hashing work factor.
//   - LogBackend / LogFile: "slog" or "zap"; LogFile adds a rotated file sink.
type Config struct {
	EndpointAddrHTTP             string        `validate:"required"`
	DatabaseDSN                  string        `validate:"omitempty"`
	SecretKey                    string        `validate:"required"`
	AccessTokenValidityDuration  time.Duration `validate:"gt=0"`
	RefreshTokenValidityDuration time.Duration `validate:"gtfield=AccessTokenValidityDuration"`
	FrontendURL                  string        `validate:"required,url"`
	CookieSecure                 bool          `validate:"-"`
	BcryptCost                   int           `validate:"min=4,max=31"`
	LogBackend                   string        `validate:"oneof=slog zap"`
	LogFile                      string        `validate:"omitempty"`
}

// LoadDefaults populates Config with development defaults. SecretKey and
// FrontendURL have no defaults and must be supplied.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 7 * 24 * time.Hour
	c.CookieSecure = true
	c.BcryptCost = cryptox.DefaultCost
	c.LogBackend = "slog"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from a dotenv file, a JSON file, the environment and finally command-line
// flags. The result is validated; a missing secret or frontend origin is an
// error.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
