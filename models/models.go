// Package models defines data structures used throughout the application
package models

import (
	"fmt"
	"strings"
	"time"
)

// UnitSystem selects the unit convention requested from the forecast API.
// It is carried alongside every numeric payload so displays never re-derive
// units from a label string.
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// ParseUnitSystem maps a request parameter to a UnitSystem, defaulting to metric
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "metric":
		return UnitsMetric, nil
	case "imperial":
		return UnitsImperial, nil
	default:
		return "", fmt.Errorf("unknown unit system %q", s)
	}
}

// TemperatureUnit returns the forecast API temperature_unit parameter value
func (u UnitSystem) TemperatureUnit() string {
	if u == UnitsImperial {
		return "fahrenheit"
	}
	return "celsius"
}

// WindSpeedUnit returns the forecast API wind_speed_unit parameter value
func (u UnitSystem) WindSpeedUnit() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "ms"
}

// TemperatureLabel returns the display label for temperatures in this system
func (u UnitSystem) TemperatureLabel() string {
	if u == UnitsImperial {
		return "°F"
	}
	return "°C"
}

// WindSpeedLabel returns the display label for wind speeds in this system
func (u UnitSystem) WindSpeedLabel() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// Location represents a geocoded place
type Location struct {
	Name        string  `json:"name"`
	AdminRegion string  `json:"admin_region"`
	Country     string  `json:"country"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// DisplayName returns the "City, Region, Country" form used on both pages
func (l Location) DisplayName() string {
	return fmt.Sprintf("%s, %s, %s", l.Name, l.AdminRegion, l.Country)
}

// HourlySample is one row of an hourly weather series. Timestamps are in the
// timezone the forecast API resolved for the location.
type HourlySample struct {
	Time          time.Time `json:"time"`
	Temperature   float64   `json:"temperature"`
	WindSpeed     float64   `json:"wind_speed"`
	Precipitation float64   `json:"precipitation"`
}

// TimeSeries is an ordered hourly series tagged with the unit system that was
// in effect when it was fetched
type TimeSeries struct {
	Units   UnitSystem     `json:"units"`
	Samples []HourlySample `json:"samples"`
}

// DailyAggregate holds per-calendar-date reductions over the hourly series.
// Date is the local calendar date in ISO form (2006-01-02).
type DailyAggregate struct {
	Date            string  `json:"date"`
	TemperatureMin  float64 `json:"temperature_min"`
	TemperatureMean float64 `json:"temperature_mean"`
	TemperatureMax  float64 `json:"temperature_max"`
	WindSpeedMean   float64 `json:"wind_speed_mean"`
	WindSpeedMax    float64 `json:"wind_speed_max"`
}

// DaySummary condenses a single day's hourly series for the chatbot prompt
type DaySummary struct {
	HighTemp    float64 `json:"high_temp"`
	LowTemp     float64 `json:"low_temp"`
	AvgWind     float64 `json:"avg_wind"`
	TotalPrecip float64 `json:"total_precip"`
}

// Speaker identifies who produced a chat turn
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// ChatTurn is one entry in a session transcript
type ChatTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// ExploreRequest represents the explorer page inputs
type ExploreRequest struct {
	City            string `form:"city" binding:"required"`
	DaysBack        int    `form:"days" binding:"omitempty,min=1"`
	Units           string `form:"units" binding:"omitempty,oneof=metric imperial"`
	ShowTemperature bool   `form:"temp"`
	ShowWind        bool   `form:"wind"`
	SmoothingWindow int    `form:"window" binding:"omitempty,min=1"`
}

// ExploreResponse is the explorer API payload: the resolved location, the raw
// hourly series, rolling averages for the requested variables, and the daily
// summary table
type ExploreResponse struct {
	Location         Location         `json:"location"`
	Units            UnitSystem       `json:"units"`
	TemperatureLabel string           `json:"temperature_label"`
	WindSpeedLabel   string           `json:"wind_speed_label"`
	Start            string           `json:"start"`
	End              string           `json:"end"`
	Samples          []HourlySample   `json:"samples"`
	TemperatureMA    []float64        `json:"temperature_ma,omitempty"`
	WindSpeedMA      []float64        `json:"wind_speed_ma,omitempty"`
	Daily            []DailyAggregate `json:"daily"`
}

// AskRequest represents one chatbot interaction
type AskRequest struct {
	City     string `json:"city" binding:"required"`
	Date     string `json:"date" binding:"required,isodate"`
	Units    string `json:"units" binding:"omitempty,oneof=metric imperial"`
	Question string `json:"question"`
}

// AskResponse carries the forecast summary, the assistant's reply, and the full
// transcript after this interaction
type AskResponse struct {
	Location         Location   `json:"location"`
	Date             string     `json:"date"`
	Units            UnitSystem `json:"units"`
	TemperatureLabel string     `json:"temperature_label"`
	WindSpeedLabel   string     `json:"wind_speed_label"`
	Summary          DaySummary `json:"summary"`
	Reply            string     `json:"reply"`
	Transcript       []ChatTurn `json:"transcript"`
}

// SessionResponse is returned when a chat session is created
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// TranscriptResponse is the full transcript of one session in append order
type TranscriptResponse struct {
	SessionID string     `json:"session_id"`
	Turns     []ChatTurn `json:"turns"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
