package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/metrics"
	"weatherdash.app/models"
)

// OpenMeteoGeocodingClient resolves place names via the Open-Meteo geocoding
// API. Every call is a live query; results are never cached.
type OpenMeteoGeocodingClient struct {
	baseURL string
	client  *http.Client
	metrics *metrics.UpstreamMetrics
}

// NewOpenMeteoGeocodingClient creates a new geocoding client
func NewOpenMeteoGeocodingClient(cfg *config.GeocodingConfig) *OpenMeteoGeocodingClient {
	return &OpenMeteoGeocodingClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		metrics: metrics.NewUpstreamMetrics("geocoding"),
	}
}

type geocodingResult struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

// Resolve looks up a place name and returns the single best match
func (c *OpenMeteoGeocodingClient) Resolve(place string) (*models.Location, error) {
	if place == "" {
		return nil, errors.NewValidationError("place name cannot be empty")
	}

	params := url.Values{}
	params.Set("name", place)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	c.metrics.RecordRequest()
	started := time.Now()
	resp, err := c.client.Get(fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode()))
	c.metrics.ObserveLatency(time.Since(started))
	if err != nil {
		c.metrics.RecordFailure()
		return nil, errors.NewExternalAPIError("failed to query geocoding API", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordFailure()
		return nil, errors.NewExternalAPIError(fmt.Sprintf("geocoding API returned status code %d", resp.StatusCode), nil)
	}

	var payload geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.RecordFailure()
		return nil, errors.NewSchemaError("failed to decode geocoding response", err)
	}

	if len(payload.Results) == 0 {
		return nil, errors.NewNotFoundError("location not found")
	}

	best := payload.Results[0]
	return &models.Location{
		Name:        best.Name,
		AdminRegion: best.Admin1,
		Country:     best.Country,
		Latitude:    best.Latitude,
		Longitude:   best.Longitude,
	}, nil
}
