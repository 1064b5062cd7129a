package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/authgate/internal/durationx"
	"github.com/dmitrijs2005/authgate/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses durationx.Duration for lifetime fields, which allows parsing compact
// string values such as "15m" or "7d" as well as integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, set fields are copied into the runtime Config.
// Pointer fields distinguish "absent" from "zero" so a partial file only
// overrides what it names.
type JsonConfig struct {
	Addr               *string             `json:"addr"`
	DatabaseDSN        *string             `json:"database_dsn"`
	Env                *string             `json:"env"`
	AccessTokenSecret  *string             `json:"access_token_secret"`
	RefreshTokenSecret *string             `json:"refresh_token_secret"`
	AccessTokenTTL     *durationx.Duration `json:"access_token_ttl"`
	RefreshTokenTTL    *durationx.Duration `json:"refresh_token_ttl"`
	CORSOrigin         *string             `json:"cors_origin"`
	DBMaxOpenConns     *int                `json:"db_max_open_conns"`
	DBMaxIdleConns     *int                `json:"db_max_idle_conns"`
	QueryTimeout       *durationx.Duration `json:"query_timeout"`
	ShutdownTimeout    *durationx.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
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
}
