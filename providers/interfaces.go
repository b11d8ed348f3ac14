package providers

import (
	"time"

	"weatherdash.app/models"
)

// GeocodingProvider resolves a free-text place name to coordinates
type GeocodingProvider interface {
	Resolve(place string) (*models.Location, error)
}

// ForecastProvider fetches an hourly weather series for a location and date
// range. fields selects the hourly variables requested from the upstream API.
type ForecastProvider interface {
	FetchHourly(loc *models.Location, start, end time.Time, units models.UnitSystem, fields []string) (*models.TimeSeries, error)
}

// ChatProvider forwards a text prompt to a hosted LLM and returns its reply
type ChatProvider interface {
	Generate(prompt string) (string, error)
}
