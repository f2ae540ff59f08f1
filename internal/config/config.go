// Package config loads the client configuration.
//
// Sources, in decreasing priority:
//  1. explicit --config path;
//  2. CONFIG_PATH environment variable;
//  3. ./teranga.yaml;
//  4. environment variables only (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the complete client configuration
type Config struct {
	ServerURL string         `yaml:"server_url" env:"TERANGA_SERVER_URL" env-default:"http://localhost:8080"`
	DBPath    string         `yaml:"db_path" env:"TERANGA_DB_PATH" env-default:"teranga-client.db"`
	HTTP      HTTPConfig     `yaml:"http"`
	Callback  CallbackConfig `yaml:"callback"`
	Payment   PaymentConfig  `yaml:"payment"`
}

// HTTPConfig holds client-side HTTP behavior
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TERANGA_HTTP_TIMEOUT" env-default:"30s"`
}

// CallbackConfig is the local listener for the checkout return path
type CallbackConfig struct {
	Host string `yaml:"host" env:"TERANGA_CALLBACK_HOST" env-default:"127.0.0.1"`
	Port string `yaml:"port" env:"TERANGA_CALLBACK_PORT" env-default:"0"`
}

// Addr returns the listen address of the callback listener
func (c CallbackConfig) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

// PaymentConfig holds checkout defaults
type PaymentConfig struct {
	Currency string `yaml:"currency" env:"TERANGA_CURRENCY" env-default:"XOF"`
}

// defaultConfigFile is tried when no explicit path is given
const defaultConfigFile = "teranga.yaml"

// MustLoad panics on a load failure
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration following the priority chain
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./teranga.yaml
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return tryRead(defaultConfigFile)
	}

	// 4) env only
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env config: %w", err)
	}

	return &cfg, nil
}
