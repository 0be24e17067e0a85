package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAPIKey names the environment variable holding the AI bearer credential.
// The secret is only ever read from the process environment, never from the
// config file and never sent to clients.
const EnvAPIKey = "X_AI_API_KEY"

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	AI struct {
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
	} `yaml:"ai"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Session struct {
		TTL string `yaml:"ttl"`
	} `yaml:"session"`
	Share struct {
		// BaseURL is the page URL share links point at; the token is
		// appended as the quiz query parameter.
		BaseURL string `yaml:"base_url"`
	} `yaml:"share"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// APIKey returns the AI credential from the environment, or "" when unset.
func APIKey() string {
	return os.Getenv(EnvAPIKey)
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
