package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("RequiredFieldsMissing", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "required key GEMINI_API_KEY missing")
	})

	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("GEMINI_API_KEY", "test-api-key"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "https://geocoding-api.open-meteo.com/v1", config.Geocoding.BaseURL)
		assert.Equal(t, "https://api.open-meteo.com/v1", config.Forecast.BaseURL)
		assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", config.Gemini.BaseURL)
		assert.Equal(t, "gemini-pro", config.Gemini.Model)
		assert.Equal(t, 92, config.Explorer.MaxLookbackDays)
		assert.Equal(t, 7, config.Explorer.MaxSmoothingWindow)
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("GEMINI_API_KEY", "test-api-key"))
		require.NoError(t, os.Setenv("SERVER_PORT", "9090"))
		require.NoError(t, os.Setenv("GEOCODING_API_BASE_URL", "http://localhost:9001"))
		require.NoError(t, os.Setenv("FORECAST_API_BASE_URL", "http://localhost:9002"))
		require.NoError(t, os.Setenv("GEMINI_MODEL", "gemini-1.5-flash"))
		require.NoError(t, os.Setenv("EXPLORER_MAX_LOOKBACK_DAYS", "30"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "http://localhost:9001", config.Geocoding.BaseURL)
		assert.Equal(t, "http://localhost:9002", config.Forecast.BaseURL)
		assert.Equal(t, "gemini-1.5-flash", config.Gemini.Model)
		assert.Equal(t, 30, config.Explorer.MaxLookbackDays)
	})

	t.Run("InvalidPort", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("GEMINI_API_KEY", "test-api-key"))
		require.NoError(t, os.Setenv("SERVER_PORT", "70000"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "SERVER_PORT must be between 1 and 65535")
	})

	t.Run("InvalidBaseURL", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("GEMINI_API_KEY", "test-api-key"))
		require.NoError(t, os.Setenv("FORECAST_API_BASE_URL", "localhost:9002"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "FORECAST_API_BASE_URL must start with http:// or https://")
	})
}

func TestGeminiConfigValidate(t *testing.T) {
	t.Run("EmptyModel", func(t *testing.T) {
		cfg := GeminiConfig{APIKey: "key", BaseURL: "https://example.com", Model: ""}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Valid", func(t *testing.T) {
		cfg := GeminiConfig{APIKey: "key", BaseURL: "https://example.com", Model: "gemini-pro"}
		assert.NoError(t, cfg.Validate())
	})
}

func TestExplorerConfigValidate(t *testing.T) {
	t.Run("ZeroLookback", func(t *testing.T) {
		cfg := ExplorerConfig{MaxLookbackDays: 0, MaxSmoothingWindow: 7}
		assert.Error(t, cfg.Validate())
	})

	t.Run("ZeroWindow", func(t *testing.T) {
		cfg := ExplorerConfig{MaxLookbackDays: 92, MaxSmoothingWindow: 0}
		assert.Error(t, cfg.Validate())
	})
}
