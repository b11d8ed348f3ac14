package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/metrics"
	"weatherdash.app/models"
)

// Hourly variable identifiers understood by the Open-Meteo forecast API
const (
	HourlyFieldTemperature   = "temperature_2m"
	HourlyFieldWindSpeed     = "wind_speed_10m"
	HourlyFieldPrecipitation = "precipitation"
)

// Open-Meteo returns hourly timestamps in the location's local time without a
// zone designator when timezone=auto is requested.
const hourlyTimeLayout = "2006-01-02T15:04"

// OpenMeteoForecastClient fetches hourly weather series from the Open-Meteo
// forecast API
type OpenMeteoForecastClient struct {
	baseURL string
	client  *http.Client
	metrics *metrics.UpstreamMetrics
}

// NewOpenMeteoForecastClient creates a new forecast client
func NewOpenMeteoForecastClient(cfg *config.ForecastConfig) *OpenMeteoForecastClient {
	return &OpenMeteoForecastClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		metrics: metrics.NewUpstreamMetrics("forecast"),
	}
}

type forecastResponse struct {
	UTCOffsetSeconds     int            `json:"utc_offset_seconds"`
	TimezoneAbbreviation string         `json:"timezone_abbreviation"`
	Hourly               forecastHourly `json:"hourly"`
}

type forecastHourly struct {
	Time          []string  `json:"time"`
	Temperature2M []float64 `json:"temperature_2m"`
	WindSpeed10M  []float64 `json:"wind_speed_10m"`
	Precipitation []float64 `json:"precipitation"`
}

// FetchHourly retrieves the hourly series for the given coordinates and date
// range. The requested unit system is applied server-side and recorded on the
// returned TimeSeries. A partial response from the API is accepted as-is.
func (c *OpenMeteoForecastClient) FetchHourly(
	loc *models.Location,
	start, end time.Time,
	units models.UnitSystem,
	fields []string,
) (*models.TimeSeries, error) {
	if loc == nil {
		return nil, errors.NewValidationError("location is required")
	}
	if end.Before(start) {
		return nil, errors.NewValidationError("end date must not be before start date")
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	params.Set("hourly", strings.Join(fields, ","))
	params.Set("start_date", start.Format("2006-01-02"))
	params.Set("end_date", end.Format("2006-01-02"))
	params.Set("temperature_unit", units.TemperatureUnit())
	params.Set("wind_speed_unit", units.WindSpeedUnit())
	params.Set("timezone", "auto")

	c.metrics.RecordRequest()
	started := time.Now()
	resp, err := c.client.Get(fmt.Sprintf("%s/forecast?%s", c.baseURL, params.Encode()))
	c.metrics.ObserveLatency(time.Since(started))
	if err != nil {
		c.metrics.RecordFailure()
		return nil, errors.NewExternalAPIError("failed to query forecast API", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordFailure()
		return nil, errors.NewExternalAPIError(fmt.Sprintf("forecast API returned status code %d", resp.StatusCode), nil)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.RecordFailure()
		return nil, errors.NewSchemaError("failed to decode forecast response", err)
	}

	return buildTimeSeries(&payload, units, fields)
}

func buildTimeSeries(payload *forecastResponse, units models.UnitSystem, fields []string) (*models.TimeSeries, error) {
	hourly := payload.Hourly
	n := len(hourly.Time)

	for _, field := range fields {
		var got int
		switch field {
		case HourlyFieldTemperature:
			got = len(hourly.Temperature2M)
		case HourlyFieldWindSpeed:
			got = len(hourly.WindSpeed10M)
		case HourlyFieldPrecipitation:
			got = len(hourly.Precipitation)
		default:
			return nil, errors.NewSchemaError(fmt.Sprintf("unknown hourly field %q requested", field), nil)
		}
		if got != n {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("forecast response missing or truncated field %s: expected %d values, got %d", field, n, got), nil)
		}
	}

	// Timestamps are local to the location; anchor them to the UTC offset the
	// API reports so calendar-date grouping follows the location's day.
	zone := time.FixedZone(payload.TimezoneAbbreviation, payload.UTCOffsetSeconds)

	samples := make([]models.HourlySample, n)
	for i := 0; i < n; i++ {
		ts, err := time.ParseInLocation(hourlyTimeLayout, hourly.Time[i], zone)
		if err != nil {
			return nil, errors.NewSchemaError(fmt.Sprintf("invalid hourly timestamp %q", hourly.Time[i]), err)
		}
		samples[i] = models.HourlySample{Time: ts}
		if len(hourly.Temperature2M) == n {
			samples[i].Temperature = hourly.Temperature2M[i]
		}
		if len(hourly.WindSpeed10M) == n {
			samples[i].WindSpeed = hourly.WindSpeed10M[i]
		}
		if len(hourly.Precipitation) == n {
			samples[i].Precipitation = hourly.Precipitation[i]
		}
	}

	return &models.TimeSeries{Units: units, Samples: samples}, nil
}
