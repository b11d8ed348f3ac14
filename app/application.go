package app

import (
	"fmt"
	"log/slog"

	"weatherdash.app/api"
	"weatherdash.app/config"
	"weatherdash.app/providers"
	"weatherdash.app/service"
	"weatherdash.app/session"
)

// Application represents the main application with all its dependencies
type Application struct {
	config *config.Config
	server *api.Server
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	app.initializeServices()

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeServices() {
	slog.Info("Initializing services...")

	geocoder := providers.NewOpenMeteoGeocodingClient(&app.config.Geocoding)
	forecast := providers.NewOpenMeteoForecastClient(&app.config.Forecast)
	chat := providers.NewGeminiClient(&app.config.Gemini)
	sessions := session.NewStore()

	explorerService := service.NewExplorerService(geocoder, forecast, app.config.Explorer)
	chatService := service.NewChatService(geocoder, forecast, chat, sessions)

	app.server = api.NewServer(app.config, explorerService, chatService)
	slog.Info("Services initialized successfully")
}

// Config returns the loaded application configuration
func (app *Application) Config() *config.Config {
	return app.config
}

// Start begins serving HTTP requests
func (app *Application) Start() error {
	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown releases application resources. Session transcripts are in-memory
// only and are discarded with the process.
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")
	return nil
}
