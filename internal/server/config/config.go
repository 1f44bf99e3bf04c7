// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment overlay and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the eventboard server. It is loaded once
// at startup and passed explicitly to the components that need it; nothing
// reads it from global state afterwards.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty means an in-memory user directory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration: token lifetime.
//   - BcryptCost: bcrypt work factor for password hashes.
//   - RequestTimeout / ShutdownTimeout: HTTP request budget and graceful stop budget.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP            string        `env:"EVENTBOARD_ADDR"`
	DatabaseDSN                 string        `env:"DATABASE_DSN"`
	SecretKey                   string        `env:"JWT_TOKEN_SECRET"`
	AccessTokenValidityDuration time.Duration `env:"ACCESS_TOKEN_TTL"`
	BcryptCost                  int           `env:"BCRYPT_COST"`
	RequestTimeout              time.Duration `env:"REQUEST_TIMEOUT"`
	ShutdownTimeout             time.Duration `env:"SHUTDOWN_TIMEOUT"`
	LogLevel                    string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey is insecure for production and must be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 1 * time.Hour
	c.BcryptCost = 10
	c.RequestTimeout = 15 * time.Second
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key must not be empty"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("access token validity must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
