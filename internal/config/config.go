package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Host string `yaml:"host"`
	} `yaml:"server"`

	ElevenLabs struct {
		BaseURL             string `yaml:"base_url"`
		PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
		MaxPollAttempts     int    `yaml:"max_poll_attempts"`
	} `yaml:"elevenlabs"`

	Limits struct {
		MaxUploadMB int `yaml:"max_upload_mb"`
	} `yaml:"limits"`

	Web struct {
		Dir string `yaml:"dir"`
	} `yaml:"web"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var c Config
	c.Server.Host = "0.0.0.0"
	c.Server.Port = 5000
	c.ElevenLabs.BaseURL = "https://api.elevenlabs.io/v1"
	c.ElevenLabs.PollIntervalSeconds = 2
	c.ElevenLabs.MaxPollAttempts = 30
	c.Limits.MaxUploadMB = 10
	c.Web.Dir = "./web"
	return &c
}

// Load reads the YAML config at path, falling back to defaults when the
// file does not exist. Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if c.Limits.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("limits.max_upload_mb must be positive, got %d", c.Limits.MaxUploadMB)
	}
	return c, nil
}

// APIKey returns the ElevenLabs credential from the environment. The key
// is required; the caller treats an empty result as a fatal startup error.
func APIKey() string {
	return os.Getenv("ELEVENLABS_API_KEY")
}
