package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds settings read from the environment at startup.
// None are required: without a pet API key the alternate catalog stays unconfigured.
type EnvConfig struct {
	PetAPIKey    string `env:"SIMPLEPATH_PET_API_KEY"`
	PetAPIURL    string `env:"SIMPLEPATH_PET_API_URL" envDefault:"https://api.petproducts.com"`
	Addr         string `env:"SIMPLEPATH_ADDR"`
	OTelEndpoint string `env:"SIMPLEPATH_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"SIMPLEPATH_OTEL_ENABLED" envDefault:"true"`
}

// LoadEnvConfig parses EnvConfig from the process environment
func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ApplyTo overrides file settings with environment values that are set
func (e EnvConfig) ApplyTo(config *Config) {
	if e.Addr != "" {
		config.Server.Addr = e.Addr
	}
}
