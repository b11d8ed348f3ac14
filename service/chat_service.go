package service

import (
	"log/slog"
	"time"

	"weatherdash.app/errors"
	"weatherdash.app/models"
	"weatherdash.app/pkg/validation"
	"weatherdash.app/providers"
	"weatherdash.app/session"
	"weatherdash.app/weather"
)

// ChatService runs the chatbot pipeline: fetch a single day's forecast,
// summarize it, build the prompt, and forward it to the chat provider. Each
// Ask call is one synchronous run against one session transcript.
type ChatService struct {
	geocoder providers.GeocodingProvider
	forecast providers.ForecastProvider
	chat     providers.ChatProvider
	sessions *session.Store
	now      func() time.Time
}

// NewChatService creates a new chat service
func NewChatService(
	geocoder providers.GeocodingProvider,
	forecast providers.ForecastProvider,
	chat providers.ChatProvider,
	sessions *session.Store,
) *ChatService {
	return &ChatService{
		geocoder: geocoder,
		forecast: forecast,
		chat:     chat,
		sessions: sessions,
		now:      time.Now,
	}
}

// NewSession opens a fresh chat session with an empty transcript
func (s *ChatService) NewSession() *session.Session {
	return s.sessions.Create()
}

// Transcript returns the full transcript of a session in append order
func (s *ChatService) Transcript(sessionID string) ([]models.ChatTurn, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Turns(), nil
}

// EndSession ends a session and discards its transcript
func (s *ChatService) EndSession(sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// Ask handles one chatbot interaction. The trimmed question is recorded as a
// user turn once the forecast summary is in hand; if the chat provider then
// fails, the user turn stays and no assistant turn is appended.
func (s *ChatService) Ask(sessionID string, req *models.AskRequest) (*models.AskResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	question, ok := validation.TrimAndValidate(req.Question)
	if !ok {
		return nil, errors.NewValidationError("please enter a question")
	}

	city, ok := validation.TrimAndValidate(req.City)
	if !ok {
		return nil, errors.NewValidationError("city is required")
	}

	units, err := models.ParseUnitSystem(req.Units)
	if err != nil {
		return nil, errors.NewValidationError("units must be metric or imperial")
	}

	forecastDate, err := validation.ParseISODate(req.Date)
	if err != nil {
		return nil, errors.NewValidationError("date must be in YYYY-MM-DD form")
	}

	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if forecastDate.Before(today) {
		return nil, errors.NewValidationError("please select today or a future date for the forecast")
	}

	loc, err := s.geocoder.Resolve(city)
	if err != nil {
		slog.Error("Geocoding failed", "error", err, "city", city)
		return nil, err
	}

	fields := []string{
		providers.HourlyFieldTemperature,
		providers.HourlyFieldWindSpeed,
		providers.HourlyFieldPrecipitation,
	}
	series, err := s.forecast.FetchHourly(loc, forecastDate, forecastDate, units, fields)
	if err != nil {
		slog.Error("Forecast fetch failed", "error", err, "city", city, "date", req.Date)
		return nil, err
	}

	summary := weather.SummarizeDay(series)
	dateText := validation.FormatISODate(forecastDate)

	// The question is recorded before the chat call so a failed reply still
	// leaves it in the transcript.
	sess.Append(models.SpeakerUser, question)

	prompt := BuildPrompt(loc, dateText, summary, units, question)
	reply, err := s.chat.Generate(prompt)
	if err != nil {
		slog.Error("Chat provider failed", "error", err, "session", sessionID)
		return nil, err
	}

	sess.Append(models.SpeakerAssistant, reply)

	return &models.AskResponse{
		Location:         *loc,
		Date:             dateText,
		Units:            units,
		TemperatureLabel: units.TemperatureLabel(),
		WindSpeedLabel:   units.WindSpeedLabel(),
		Summary:          summary,
		Reply:            reply,
		Transcript:       sess.Turns(),
	}, nil
}
