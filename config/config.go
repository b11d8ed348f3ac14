package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weatherdash.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Geocoding GeocodingConfig `split_words:"true"`
	Forecast  ForecastConfig  `split_words:"true"`
	Gemini    GeminiConfig    `split_words:"true"`
	Explorer  ExplorerConfig  `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// GeocodingConfig contains settings for the Open-Meteo geocoding API
type GeocodingConfig struct {
	BaseURL string `envconfig:"GEOCODING_API_BASE_URL" default:"https://geocoding-api.open-meteo.com/v1"`
}

// ForecastConfig contains settings for the Open-Meteo forecast API
type ForecastConfig struct {
	BaseURL string `envconfig:"FORECAST_API_BASE_URL" default:"https://api.open-meteo.com/v1"`
}

// GeminiConfig contains settings for the Gemini chat API.
// The API key is the only credential the application reads from the environment.
type GeminiConfig struct {
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_API_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	Model   string `envconfig:"GEMINI_MODEL" default:"gemini-pro"`
}

// ExplorerConfig contains input bounds for the data explorer page
type ExplorerConfig struct {
	MaxLookbackDays    int `envconfig:"EXPLORER_MAX_LOOKBACK_DAYS" default:"92"`
	MaxSmoothingWindow int `envconfig:"EXPLORER_MAX_SMOOTHING_WINDOW" default:"7"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Geocoding.Validate(); err != nil {
		return err
	}
	if err := c.Forecast.Validate(); err != nil {
		return err
	}
	if err := c.Gemini.Validate(); err != nil {
		return err
	}
	if err := c.Explorer.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks geocoding API configuration
func (g *GeocodingConfig) Validate() error {
	return validateBaseURL("GEOCODING_API_BASE_URL", g.BaseURL)
}

// Validate checks forecast API configuration
func (f *ForecastConfig) Validate() error {
	return validateBaseURL("FORECAST_API_BASE_URL", f.BaseURL)
}

// Validate checks Gemini API configuration
func (g *GeminiConfig) Validate() error {
	if g.APIKey == "" {
		return errors.NewConfigurationError("GEMINI_API_KEY cannot be empty", nil)
	}
	if g.Model == "" {
		return errors.NewConfigurationError("GEMINI_MODEL cannot be empty", nil)
	}
	return validateBaseURL("GEMINI_API_BASE_URL", g.BaseURL)
}

// Validate checks explorer input bounds
func (e *ExplorerConfig) Validate() error {
	if e.MaxLookbackDays < 1 {
		return errors.NewConfigurationError("EXPLORER_MAX_LOOKBACK_DAYS must be at least 1", nil)
	}
	if e.MaxSmoothingWindow < 1 {
		return errors.NewConfigurationError("EXPLORER_MAX_SMOOTHING_WINDOW must be at least 1", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}
