package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rickgao/disclosure-data/internal/auth"
	"github.com/rickgao/disclosure-data/internal/model"
)

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data after expanding ${VAR} references.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns a config with every default applied and no file read.
// API keys are taken from QUIVER_API_KEY and SEC_API_KEY.
func Default() *Config {
	cfg := &Config{
		Quiver: ServiceConfig{APIKey: os.Getenv("QUIVER_API_KEY")},
		SECAPI: ServiceConfig{APIKey: os.Getenv("SEC_API_KEY")},
	}
	cfg.applyDefaults()
	return cfg
}

// Credentials resolves both services' API keys. A service with nothing
// configured gets an absent credential.
func (c *Config) Credentials() (auth.Credentials, error) {
	quiver, err := auth.LoadCredential(model.Quiver, c.Quiver.APIKey, c.Quiver.APIKeyFile)
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("quiver credential: %w", err)
	}
	secAPI, err := auth.LoadCredential(model.SECAPI, c.SECAPI.APIKey, c.SECAPI.APIKeyFile)
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("sec_api credential: %w", err)
	}
	return auth.Credentials{Quiver: quiver, SECAPI: secAPI}, nil
}
