package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrijs2005/authgate/internal/durationx"
)

// envConfig is the DTO for environment overrides. Pointer fields
// distinguish "variable unset" from "set to the zero value", so only
// variables that are present override the layered value.
type envConfig struct {
	Addr               *string             `env:"ADDR"`
	DatabaseDSN        *string             `env:"DATABASE_DSN"`
	Env                *string             `env:"ENV"`
	AccessTokenSecret  *string             `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret *string             `env:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTL     *durationx.Duration `env:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL    *durationx.Duration `env:"REFRESH_TOKEN_TTL"`
	CORSOrigin         *string             `env:"CORS_ORIGIN"`
	DBMaxOpenConns     *int                `env:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns     *int                `env:"DB_MAX_IDLE_CONNS"`
	QueryTimeout       *durationx.Duration `env:"QUERY_TIMEOUT"`
	ShutdownTimeout    *durationx.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// parseEnv overlays environment variables onto the provided Config.
// Duration variables use the compact form, e.g. ACCESS_TOKEN_TTL=15m.
func parseEnv(config *Config) error {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		return err
	}

	if c.Addr != nil {
		config.Addr = *c.Addr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.Env != nil {
		config.Env = *c.Env
	}
	if c.AccessTokenSecret != nil {
		config.AccessTokenSecret = *c.AccessTokenSecret
	}
	if c.RefreshTokenSecret != nil {
		config.RefreshTokenSecret = *c.RefreshTokenSecret
	}
	if c.AccessTokenTTL != nil {
		config.AccessTokenTTL = time.Duration(*c.AccessTokenTTL)
	}
	if c.RefreshTokenTTL != nil {
		config.RefreshTokenTTL = time.Duration(*c.RefreshTokenTTL)
	}
	if c.CORSOrigin != nil {
		config.CORSOrigin = *c.CORSOrigin
	}
	if c.DBMaxOpenConns != nil {
		config.DBMaxOpenConns = *c.DBMaxOpenConns
	}
	if c.DBMaxIdleConns != nil {
		config.DBMaxIdleConns = *c.DBMaxIdleConns
	}
	if c.QueryTimeout != nil {
		config.QueryTimeout = time.Duration(*c.QueryTimeout)
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = time.Duration(*c.ShutdownTimeout)
	}

	return nil
}
