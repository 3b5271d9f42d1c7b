// Package config loads client settings from env and an optional .env file using Viper.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds the client's construction parameters, resolved from the
// environment.
type Config struct {
	// APIEmail is the account email used for the login call.
	APIEmail string `mapstructure:"CHIRPSTACK_API_EMAIL"`
	// APIPassword is the account password used for the login call.
	APIPassword string `mapstructure:"CHIRPSTACK_API_PASSWORD"`
	// APIServer is the ChirpStack gRPC API address (host:port, usually port 8080).
	APIServer string `mapstructure:"CHIRPSTACK_API_SERVER"`
	// PageSize is the page size used when aggregating full listings.
	PageSize int `mapstructure:"CHIRPSTACK_PAGE_SIZE"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored (e.g. in CI). Env vars
// override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("CHIRPSTACK_API_EMAIL", "")
	v.SetDefault("CHIRPSTACK_API_PASSWORD", "")
	v.SetDefault("CHIRPSTACK_API_SERVER", "localhost:8080")
	v.SetDefault("CHIRPSTACK_PAGE_SIZE", 100)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIEmail == "" {
		return nil, errors.New("config: CHIRPSTACK_API_EMAIL must be set")
	}
	if cfg.APIPassword == "" {
		return nil, errors.New("config: CHIRPSTACK_API_PASSWORD must be set")
	}
	if cfg.APIServer == "" {
		return nil, errors.New("config: CHIRPSTACK_API_SERVER must be set")
	}
	if cfg.PageSize <= 0 {
		return nil, errors.New("config: CHIRPSTACK_PAGE_SIZE must be positive")
	}

	return &cfg, nil
}
