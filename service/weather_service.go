package service

import (
	"fmt"
	"log/slog"
	"time"

	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/models"
	"weatherdash.app/pkg/validation"
	"weatherdash.app/providers"
	"weatherdash.app/weather"
)

const (
	defaultDaysBack        = 14
	defaultSmoothingWindow = 3
)

// ExplorerService runs the data explorer pipeline: geocode the place, fetch
// the hourly series for the lookback range, and compute daily aggregates and
// rolling averages. One synchronous run per request; any stage failure halts
// the run with no partial result.
type ExplorerService struct {
	geocoder providers.GeocodingProvider
	forecast providers.ForecastProvider
	bounds   config.ExplorerConfig
	now      func() time.Time
}

// NewExplorerService creates a new explorer service
func NewExplorerService(
	geocoder providers.GeocodingProvider,
	forecast providers.ForecastProvider,
	bounds config.ExplorerConfig,
) *ExplorerService {
	return &ExplorerService{
		geocoder: geocoder,
		forecast: forecast,
		bounds:   bounds,
		now:      time.Now,
	}
}

// Explore resolves the request inputs and returns the analyzed series
func (s *ExplorerService) Explore(req *models.ExploreRequest) (*models.ExploreResponse, error) {
	city, ok := validation.TrimAndValidate(req.City)
	if !ok {
		return nil, errors.NewValidationError("city is required")
	}
	if !req.ShowTemperature && !req.ShowWind {
		return nil, errors.NewValidationError("select at least one variable to display")
	}

	daysBack := req.DaysBack
	if daysBack == 0 {
		daysBack = defaultDaysBack
	}
	if daysBack < 1 || daysBack > s.bounds.MaxLookbackDays {
		return nil, errors.NewValidationError(
			fmt.Sprintf("days must be between 1 and %d", s.bounds.MaxLookbackDays))
	}

	window := req.SmoothingWindow
	if window == 0 {
		window = defaultSmoothingWindow
	}
	if window < 1 || window > s.bounds.MaxSmoothingWindow {
		return nil, errors.NewValidationError(
			fmt.Sprintf("window must be between 1 and %d", s.bounds.MaxSmoothingWindow))
	}

	units, err := models.ParseUnitSystem(req.Units)
	if err != nil {
		return nil, errors.NewValidationError("units must be metric or imperial")
	}

	loc, err := s.geocoder.Resolve(city)
	if err != nil {
		slog.Error("Geocoding failed", "error", err, "city", city)
		return nil, err
	}

	end := s.now()
	start := end.AddDate(0, 0, -daysBack)

	fields := []string{providers.HourlyFieldTemperature, providers.HourlyFieldWindSpeed}
	series, err := s.forecast.FetchHourly(loc, start, end, units, fields)
	if err != nil {
		slog.Error("Forecast fetch failed", "error", err, "city", city)
		return nil, err
	}

	resp := &models.ExploreResponse{
		Location:         *loc,
		Units:            units,
		TemperatureLabel: units.TemperatureLabel(),
		WindSpeedLabel:   units.WindSpeedLabel(),
		Start:            validation.FormatISODate(start),
		End:              validation.FormatISODate(end),
		Samples:          series.Samples,
		Daily:            weather.DailyAggregates(series),
	}
	if req.ShowTemperature {
		resp.TemperatureMA = weather.RollingAverage(series, weather.FieldTemperature, window)
	}
	if req.ShowWind {
		resp.WindSpeedMA = weather.RollingAverage(series, weather.FieldWindSpeed, window)
	}

	slog.Debug("Explore pipeline complete",
		"city", city, "samples", len(series.Samples), "days", daysBack, "window", window)
	return resp, nil
}
