package app

import (
	"fmt"
	"strings"

	"weatherdash.app/config"
)

// ConfigDisplayer prints the effective configuration for debugging without
// leaking the chat API credential
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig displays the loaded configuration with the API key masked
func (d *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	fmt.Println("=== Configuration ===")
	fmt.Printf("Server port:        %d\n", cfg.Server.Port)
	fmt.Printf("Geocoding base URL: %s\n", cfg.Geocoding.BaseURL)
	fmt.Printf("Forecast base URL:  %s\n", cfg.Forecast.BaseURL)
	fmt.Printf("Gemini base URL:    %s\n", cfg.Gemini.BaseURL)
	fmt.Printf("Gemini model:       %s\n", cfg.Gemini.Model)
	fmt.Printf("Gemini API key:     %s\n", maskSecret(cfg.Gemini.APIKey))
	fmt.Printf("Max lookback days:  %d\n", cfg.Explorer.MaxLookbackDays)
	fmt.Printf("Max smoothing:      %d\n", cfg.Explorer.MaxSmoothingWindow)
	fmt.Println("=====================")
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
